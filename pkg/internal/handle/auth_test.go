package handle_test

import (
	"net/http"
	"testing"

	"github.com/yeisme/ecolevault/pkg/internal/types"
)

// TestRegisterAndLogin 注册后可以登录并拿到双 token.
func TestRegisterAndLogin(t *testing.T) {
	env := setupEnv(t)

	name := uniqueName("alice")
	resp := env.registerAndLogin(t, name, "Str0ngPass!42", "user")

	if resp.Access == "" || resp.Refresh == "" {
		t.Fatalf("expected both tokens, got %+v", resp)
	}

	if resp.Username != name {
		t.Errorf("username = %q, want %q", resp.Username, name)
	}

	if resp.Role != "user" {
		t.Errorf("role = %q, want user", resp.Role)
	}
}

// TestRegisterRejectsWeakPassword 弱口令在注册时被拒.
func TestRegisterRejectsWeakPassword(t *testing.T) {
	env := setupEnv(t)

	cases := []struct {
		name     string
		password string
	}{
		{"too short", "ab1"},
		{"all numeric", "92837465102938"},
		{"common password", "password123"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := env.doJSON(t, http.MethodPost, "/register/", "", types.RegisterRequest{
				Username: uniqueName("weak"),
				Password: tc.password,
			})
			if w.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400, body %s", w.Code, w.Body.String())
			}
		})
	}
}

// TestRegisterDuplicateUsername 重复用户名返回 400.
func TestRegisterDuplicateUsername(t *testing.T) {
	env := setupEnv(t)

	name := uniqueName("dup")
	env.registerAndLogin(t, name, "Str0ngPass!42", "user")

	w := env.doJSON(t, http.MethodPost, "/register/", "", types.RegisterRequest{
		Username: name,
		Password: "Other3quallyG00d",
	})
	if w.Code != http.StatusBadRequest {
		t.Errorf("duplicate register status = %d, want 400, body %s", w.Code, w.Body.String())
	}
}

// TestLoginBadCredentials 错误口令与不存在的用户都返回同样的 401.
func TestLoginBadCredentials(t *testing.T) {
	env := setupEnv(t)

	name := uniqueName("bob")
	env.registerAndLogin(t, name, "Str0ngPass!42", "user")

	for _, req := range []types.LoginRequest{
		{Username: name, Password: "wrong-password-1"},
		{Username: uniqueName("ghost"), Password: "Str0ngPass!42"},
	} {
		w := env.doJSON(t, http.MethodPost, "/login/", "", req)
		if w.Code != http.StatusUnauthorized {
			t.Errorf("login %q status = %d, want 401", req.Username, w.Code)
		}

		var resp types.ErrorResponse
		decode(t, w, &resp)

		if resp.Error != "invalid credentials" {
			t.Errorf("error = %q, want invalid credentials", resp.Error)
		}
	}
}

// TestLogoutRevokesRefreshToken 注销成功返回 205，重放同一 refresh token 返回 400.
func TestLogoutRevokesRefreshToken(t *testing.T) {
	env := setupEnv(t)

	login := env.registerAndLogin(t, uniqueName("carol"), "Str0ngPass!42", "user")

	w := env.doJSON(t, http.MethodPost, "/logout/", login.Access, types.LogoutRequest{
		Refresh: login.Refresh,
	})
	if w.Code != http.StatusResetContent {
		t.Fatalf("logout status = %d, want 205, body %s", w.Code, w.Body.String())
	}

	// 重放
	w = env.doJSON(t, http.MethodPost, "/logout/", login.Access, types.LogoutRequest{
		Refresh: login.Refresh,
	})
	if w.Code != http.StatusBadRequest {
		t.Errorf("replayed logout status = %d, want 400", w.Code)
	}

	var resp types.ErrorResponse
	decode(t, w, &resp)

	if resp.Error != "invalid or already used token" {
		t.Errorf("error = %q, want invalid or already used token", resp.Error)
	}
}

// TestLogoutMissingToken 缺 refresh token 返回 400.
func TestLogoutMissingToken(t *testing.T) {
	env := setupEnv(t)

	login := env.registerAndLogin(t, uniqueName("dave"), "Str0ngPass!42", "user")

	w := env.doJSON(t, http.MethodPost, "/logout/", login.Access, map[string]string{})
	if w.Code != http.StatusBadRequest {
		t.Errorf("logout without token status = %d, want 400, body %s", w.Code, w.Body.String())
	}
}

// TestLogoutRequiresAuthentication 未带访问令牌时注销返回 401.
func TestLogoutRequiresAuthentication(t *testing.T) {
	env := setupEnv(t)

	login := env.registerAndLogin(t, uniqueName("eve"), "Str0ngPass!42", "user")

	w := env.doJSON(t, http.MethodPost, "/logout/", "", types.LogoutRequest{
		Refresh: login.Refresh,
	})
	if w.Code != http.StatusUnauthorized {
		t.Errorf("unauthenticated logout status = %d, want 401", w.Code)
	}
}
