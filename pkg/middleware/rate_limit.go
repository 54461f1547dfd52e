package middleware

import (
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/yeisme/ecolevault/pkg/configs"
)

// limiterPool 按键维护限流器，闲置条目定期回收.
type limiterPool struct {
	mu      sync.Mutex
	entries map[string]*limiterEntry
	rps     rate.Limit
	burst   int
}

type limiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

func newLimiterPool(rps float64, burst int) *limiterPool {
	p := &limiterPool{
		entries: map[string]*limiterEntry{},
		rps:     rate.Limit(rps),
		burst:   burst,
	}
	go p.pruneLoop()

	return p
}

func (p *limiterPool) allow(key string) bool {
	p.mu.Lock()

	e, ok := p.entries[key]
	if !ok {
		e = &limiterEntry{limiter: rate.NewLimiter(p.rps, p.burst)}
		p.entries[key] = e
	}

	e.lastSeen = time.Now()
	p.mu.Unlock()

	return e.limiter.Allow()
}

// pruneLoop 回收长时间未出现的键，防止 map 无界增长.
func (p *limiterPool) pruneLoop() {
	const (
		pruneInterval = 5 * time.Minute
		idleTimeout   = 15 * time.Minute
	)

	ticker := time.NewTicker(pruneInterval)
	defer ticker.Stop()

	for range ticker.C {
		cutoff := time.Now().Add(-idleTimeout)

		p.mu.Lock()
		for key, e := range p.entries {
			if e.lastSeen.Before(cutoff) {
				delete(p.entries, key)
			}
		}
		p.mu.Unlock()
	}
}

// RateLimitMiddleware 请求限流. key 配置决定限流维度：
// global（单一限流器）、ip（按客户端 IP）、header:<名称>（按请求头，缺头退回 IP）.
func RateLimitMiddleware(cfg configs.RateLimitConfig) gin.HandlerFunc {
	if !cfg.Enabled || cfg.RPS <= 0 {
		return func(c *gin.Context) { c.Next() }
	}

	keyMode := strings.ToLower(strings.TrimSpace(cfg.Key))
	if keyMode == "" || keyMode == "global" {
		limiter := rate.NewLimiter(rate.Limit(cfg.RPS), cfg.Burst)

		return func(c *gin.Context) {
			if !limiter.Allow() {
				tooManyRequests(c)
				return
			}

			c.Next()
		}
	}

	keyOf := requestKeyFunc(keyMode)
	pool := newLimiterPool(cfg.RPS, cfg.Burst)

	return func(c *gin.Context) {
		if !pool.allow(keyOf(c)) {
			tooManyRequests(c)
			return
		}

		c.Next()
	}
}

// requestKeyFunc 根据配置选定请求键的提取方式.
func requestKeyFunc(keyMode string) func(*gin.Context) string {
	if header, ok := strings.CutPrefix(keyMode, "header:"); ok {
		return func(c *gin.Context) string {
			if v := c.GetHeader(header); v != "" {
				return v
			}

			return clientIP(c)
		}
	}

	// ip 与未识别的配置值都按客户端 IP
	return clientIP
}

func tooManyRequests(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "rate limit exceeded"})
}

func clientIP(c *gin.Context) string {
	if ip := c.ClientIP(); ip != "" {
		return ip
	}

	if host, _, err := net.SplitHostPort(c.Request.RemoteAddr); err == nil {
		return host
	}

	if c.Request.RemoteAddr != "" {
		return c.Request.RemoteAddr
	}

	return "unknown"
}
