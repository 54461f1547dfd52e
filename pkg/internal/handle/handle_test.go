package handle_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/yeisme/ecolevault/pkg/configs"
	"github.com/yeisme/ecolevault/pkg/internal/model"
	"github.com/yeisme/ecolevault/pkg/internal/router"
	"github.com/yeisme/ecolevault/pkg/internal/storage"
	dbc "github.com/yeisme/ecolevault/pkg/internal/storage/db"
	"github.com/yeisme/ecolevault/pkg/internal/storage/kv"
	"github.com/yeisme/ecolevault/pkg/internal/storage/s3"
	"github.com/yeisme/ecolevault/pkg/internal/types"
	"github.com/yeisme/ecolevault/pkg/middleware"
	"github.com/yeisme/ecolevault/pkg/rule"
)

// fakeObjectStore 内存对象存储，语义对齐 s3.Client：幂等删除、缺失返回 ErrObjectNotFound.
type fakeObjectStore struct {
	mu       sync.Mutex
	data     map[string][]byte
	modTimes map[string]time.Time
}

func newFakeObjectStore() *fakeObjectStore {
	return &fakeObjectStore{data: map[string][]byte{}, modTimes: map[string]time.Time{}}
}

func (f *fakeObjectStore) Put(_ context.Context, key string, r io.Reader, _ int64, _ string) error {
	b, err := io.ReadAll(r)
	if err != nil {
		return err
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.data[key] = b
	f.modTimes[key] = time.Now()

	return nil
}

func (f *fakeObjectStore) Get(_ context.Context, key string) (io.ReadCloser, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	b, ok := f.data[key]
	if !ok {
		return nil, s3.ErrObjectNotFound
	}

	return io.NopCloser(bytes.NewReader(b)), nil
}

func (f *fakeObjectStore) Exists(_ context.Context, key string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	_, ok := f.data[key]

	return ok, nil
}

func (f *fakeObjectStore) Remove(_ context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.data, key)
	delete(f.modTimes, key)

	return nil
}

func (f *fakeObjectStore) List(_ context.Context, prefix string) ([]s3.ObjectInfo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var objects []s3.ObjectInfo

	for k := range f.data {
		if strings.HasPrefix(k, prefix) {
			objects = append(objects, s3.ObjectInfo{Key: k, LastModified: f.modTimes[k]})
		}
	}

	return objects, nil
}

func (f *fakeObjectStore) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()

	return len(f.data)
}

// testEnv 一套完整的内存栈：sqlite + 内存 KV + 内存对象存储.
type testEnv struct {
	engine  *gin.Engine
	objects *fakeObjectStore
	db      *gorm.DB
}

func setupEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)
	// 域规则注册到 gin 的 binding 引擎，DTO 校验才能生效
	rule.Engine()

	if err := configs.InitConfig(""); err != nil {
		t.Fatalf("init config: %v", err)
	}

	gdb, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	// 共享内存库在所有连接关闭后即销毁，测试之间互相隔离
	t.Cleanup(func() {
		if sqlDB, err := gdb.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	if err := gdb.AutoMigrate(&model.User{}, &model.Ecole{}, &model.File{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	// 测试间隔离：清空业务表
	for _, table := range []string{"files", "ecoles", "users"} {
		gdb.Exec("DELETE FROM " + table)
	}

	store, err := kv.NewMemoryKV(context.Background(), nil)
	if err != nil {
		t.Fatalf("create memory kv: %v", err)
	}

	objects := newFakeObjectStore()
	mgr := &storage.Manager{
		DB:      &dbc.Client{DB: gdb},
		Objects: objects,
		KV:      store,
	}

	engine := gin.New()
	engine.Use(middleware.StorageMiddleware(mgr))
	router.Register(engine, configs.GetConfig())

	return &testEnv{engine: engine, objects: objects, db: gdb}
}

// doJSON 发送 JSON 请求，token 非空时带 Bearer 头.
func (e *testEnv) doJSON(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader

	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}

		reader = bytes.NewReader(b)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")

	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	e.engine.ServeHTTP(w, req)

	return w
}

// uploadPart 一个 multipart 文件项.
type uploadPart struct {
	field   string
	name    string
	content []byte
}

// doMultipart 发送 multipart 请求.
func (e *testEnv) doMultipart(t *testing.T, path, token string,
	fields map[string]string, parts []uploadPart,
) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	for k, v := range fields {
		if err := mw.WriteField(k, v); err != nil {
			t.Fatalf("write field %s: %v", k, err)
		}
	}

	for _, p := range parts {
		fw, err := mw.CreateFormFile(p.field, p.name)
		if err != nil {
			t.Fatalf("create form file %s: %v", p.name, err)
		}

		if _, err := fw.Write(p.content); err != nil {
			t.Fatalf("write form file %s: %v", p.name, err)
		}
	}

	if err := mw.Close(); err != nil {
		t.Fatalf("close multipart writer: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())

	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	e.engine.ServeHTTP(w, req)

	return w
}

// registerAndLogin 注册并登录，返回登录响应.
func (e *testEnv) registerAndLogin(t *testing.T, username, password, role string) types.LoginResponse {
	t.Helper()

	w := e.doJSON(t, http.MethodPost, "/register/", "", types.RegisterRequest{
		Username: username,
		Password: password,
		Role:     role,
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("register %s: status %d body %s", username, w.Code, w.Body.String())
	}

	w = e.doJSON(t, http.MethodPost, "/login/", "", types.LoginRequest{
		Username: username,
		Password: password,
	})
	if w.Code != http.StatusOK {
		t.Fatalf("login %s: status %d body %s", username, w.Code, w.Body.String())
	}

	var resp types.LoginResponse
	decode(t, w, &resp)

	return resp
}

// createEcole 以管理员身份创建学校并返回响应.
func (e *testEnv) createEcole(t *testing.T, token, name string) types.EcoleResponse {
	t.Helper()

	w := e.doJSON(t, http.MethodPost, "/ecoles/", token, types.EcoleCreateRequest{
		Name:       name,
		Address:    "Route de Tunis",
		City:       "Sousse",
		PostalCode: "4000",
		Phone:      "+216 73 123 456",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("create ecole: status %d body %s", w.Code, w.Body.String())
	}

	var resp types.EcoleResponse
	decode(t, w, &resp)

	return resp
}

func decode(t *testing.T, w *httptest.ResponseRecorder, out any) {
	t.Helper()

	if err := json.Unmarshal(w.Body.Bytes(), out); err != nil {
		t.Fatalf("decode response %q: %v", w.Body.String(), err)
	}
}

// uniqueName 避免共享 sqlite 内存库下的用户名冲突.
var nameSeq int

func uniqueName(prefix string) string {
	nameSeq++

	return fmt.Sprintf("%s%d", prefix, nameSeq)
}
