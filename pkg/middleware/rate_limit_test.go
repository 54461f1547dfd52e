package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/yeisme/ecolevault/pkg/configs"
	"github.com/yeisme/ecolevault/pkg/middleware"
)

func newLimitedEngine(cfg configs.RateLimitConfig) *gin.Engine {
	gin.SetMode(gin.TestMode)

	engine := gin.New()
	engine.Use(middleware.RateLimitMiddleware(cfg))
	engine.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })

	return engine
}

func hit(engine *gin.Engine, remoteAddr string) int {
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	if remoteAddr != "" {
		req.RemoteAddr = remoteAddr
	}

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	return w.Code
}

// TestRateLimitGlobal 全局限流：突发额度用尽后返回 429.
func TestRateLimitGlobal(t *testing.T) {
	engine := newLimitedEngine(configs.RateLimitConfig{
		Enabled: true, RPS: 1, Burst: 1, Key: "global",
	})

	if code := hit(engine, ""); code != http.StatusOK {
		t.Fatalf("first request status = %d, want 200", code)
	}

	if code := hit(engine, ""); code != http.StatusTooManyRequests {
		t.Errorf("second request status = %d, want 429", code)
	}
}

// TestRateLimitPerIP 按 IP 限流：一个客户端打满不影响另一个.
func TestRateLimitPerIP(t *testing.T) {
	engine := newLimitedEngine(configs.RateLimitConfig{
		Enabled: true, RPS: 1, Burst: 1, Key: "ip",
	})

	if code := hit(engine, "10.0.0.1:1000"); code != http.StatusOK {
		t.Fatalf("first client status = %d, want 200", code)
	}

	if code := hit(engine, "10.0.0.1:1000"); code != http.StatusTooManyRequests {
		t.Errorf("exhausted client status = %d, want 429", code)
	}

	if code := hit(engine, "10.0.0.2:1000"); code != http.StatusOK {
		t.Errorf("other client status = %d, want 200", code)
	}
}

// TestRateLimitDisabled 关闭时直通.
func TestRateLimitDisabled(t *testing.T) {
	engine := newLimitedEngine(configs.RateLimitConfig{Enabled: false})

	for i := 0; i < 5; i++ {
		if code := hit(engine, ""); code != http.StatusOK {
			t.Fatalf("request %d status = %d, want 200", i, code)
		}
	}
}
