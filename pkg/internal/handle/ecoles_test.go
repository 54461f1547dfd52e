package handle_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/yeisme/ecolevault/pkg/internal/model"
	"github.com/yeisme/ecolevault/pkg/internal/types"
)

// TestEcoleCreateRequiresAdmin 普通用户创建学校被拒且库里不新增任何行.
func TestEcoleCreateRequiresAdmin(t *testing.T) {
	env := setupEnv(t)

	user := env.registerAndLogin(t, uniqueName("reader"), "Str0ngPass!42", "user")

	w := env.doJSON(t, http.MethodPost, "/ecoles/", user.Access, types.EcoleCreateRequest{
		Name:       "Lycee Pilote",
		Address:    "Avenue Bourguiba",
		City:       "Tunis",
		PostalCode: "1002",
		Phone:      "+216 71 123 456",
	})
	if w.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403, body %s", w.Code, w.Body.String())
	}

	var count int64
	env.db.Model(&model.Ecole{}).Count(&count)

	if count != 0 {
		t.Errorf("ecole count = %d, want 0", count)
	}
}

// TestEcoleCRUD 管理员完整走一遍增查改删.
func TestEcoleCRUD(t *testing.T) {
	env := setupEnv(t)

	admin := env.registerAndLogin(t, uniqueName("chief"), "Str0ngPass!42", "admin")
	ecole := env.createEcole(t, admin.Access, "Ecole Primaire Sousse")

	if ecole.StudentsCount != 0 {
		t.Errorf("new ecole students_count = %d, want 0", ecole.StudentsCount)
	}

	// 读取
	w := env.doJSON(t, http.MethodGet, fmt.Sprintf("/ecoles/%d", ecole.ID), admin.Access, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("get status = %d, body %s", w.Code, w.Body.String())
	}

	// 部分更新：只改电话，其它字段保持原值
	newPhone := "+216 73 999 888"

	w = env.doJSON(t, http.MethodPut, fmt.Sprintf("/ecoles/%d", ecole.ID), admin.Access,
		types.EcoleUpdateRequest{Phone: &newPhone})
	if w.Code != http.StatusOK {
		t.Fatalf("update status = %d, body %s", w.Code, w.Body.String())
	}

	var updated types.EcoleResponse
	decode(t, w, &updated)

	if updated.Phone != newPhone {
		t.Errorf("phone = %q, want %q", updated.Phone, newPhone)
	}

	if updated.Name != ecole.Name || updated.City != ecole.City {
		t.Errorf("partial update lost fields: %+v", updated)
	}

	// 删除
	w = env.doJSON(t, http.MethodDelete, fmt.Sprintf("/ecoles/%d", ecole.ID), admin.Access, nil)
	if w.Code != http.StatusNoContent {
		t.Fatalf("delete status = %d, want 204", w.Code)
	}

	w = env.doJSON(t, http.MethodGet, fmt.Sprintf("/ecoles/%d", ecole.ID), admin.Access, nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("get after delete status = %d, want 404", w.Code)
	}
}

// TestEcoleListVisibleToAllAuthenticated 普通用户也能读列表.
func TestEcoleListVisibleToAllAuthenticated(t *testing.T) {
	env := setupEnv(t)

	admin := env.registerAndLogin(t, uniqueName("owner"), "Str0ngPass!42", "admin")
	env.createEcole(t, admin.Access, "Ecole A Monastir")
	env.createEcole(t, admin.Access, "Ecole B Monastir")

	user := env.registerAndLogin(t, uniqueName("viewer"), "Str0ngPass!42", "user")

	w := env.doJSON(t, http.MethodGet, "/ecoles/", user.Access, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("list status = %d, body %s", w.Code, w.Body.String())
	}

	var list []types.EcoleResponse
	decode(t, w, &list)

	if len(list) != 2 {
		t.Errorf("list len = %d, want 2", len(list))
	}
}

// TestEcoleListRequiresAuthentication 未认证请求返回 401.
func TestEcoleListRequiresAuthentication(t *testing.T) {
	env := setupEnv(t)

	w := env.doJSON(t, http.MethodGet, "/ecoles/", "", nil)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
}

// TestEcoleValidation 非法字段逐个触发 400 并带字段错误.
func TestEcoleValidation(t *testing.T) {
	env := setupEnv(t)

	admin := env.registerAndLogin(t, uniqueName("strict"), "Str0ngPass!42", "admin")

	base := types.EcoleCreateRequest{
		Name:       "Ecole Valide",
		Address:    "Rue de la Liberte",
		City:       "Sfax",
		PostalCode: "3000",
		Phone:      "+216 74 123 456",
	}

	cases := []struct {
		name   string
		mutate func(r *types.EcoleCreateRequest)
	}{
		{"postal code too short", func(r *types.EcoleCreateRequest) { r.PostalCode = "300" }},
		{"postal code non numeric", func(r *types.EcoleCreateRequest) { r.PostalCode = "30a0" }},
		{"phone wrong country", func(r *types.EcoleCreateRequest) { r.Phone = "+33 74 123 456" }},
		{"name too short after trim", func(r *types.EcoleCreateRequest) { r.Name = "  ab  " }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := base
			tc.mutate(&req)

			w := env.doJSON(t, http.MethodPost, "/ecoles/", admin.Access, req)
			if w.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400, body %s", w.Code, w.Body.String())
			}
		})
	}
}

// TestEcoleResponseShape 响应只暴露对外字段，内部时间戳不出现.
func TestEcoleResponseShape(t *testing.T) {
	env := setupEnv(t)

	admin := env.registerAndLogin(t, uniqueName("shape"), "Str0ngPass!42", "admin")
	ecole := env.createEcole(t, admin.Access, "Ecole Shape Test")

	w := env.doJSON(t, http.MethodGet, fmt.Sprintf("/ecoles/%d", ecole.ID), admin.Access, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("get status = %d, body %s", w.Code, w.Body.String())
	}

	var raw map[string]any
	decode(t, w, &raw)

	for _, key := range []string{"id", "name", "address", "city", "postal_code", "phone", "students_count"} {
		if _, ok := raw[key]; !ok {
			t.Errorf("missing field %q", key)
		}
	}

	for _, key := range []string{"created_at", "updated_at"} {
		if _, ok := raw[key]; ok {
			t.Errorf("unexpected field %q in response", key)
		}
	}
}

// TestEcoleNotFound 不存在的 ID 返回 404.
func TestEcoleNotFound(t *testing.T) {
	env := setupEnv(t)

	admin := env.registerAndLogin(t, uniqueName("seeker"), "Str0ngPass!42", "admin")

	w := env.doJSON(t, http.MethodGet, "/ecoles/99999", admin.Access, nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404, body %s", w.Code, w.Body.String())
	}
}
