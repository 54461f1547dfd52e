package middleware

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sony/gobreaker"

	"github.com/yeisme/ecolevault/pkg/configs"
)

// errServerFault 标记一次 5xx 响应，只用于熔断计数.
var errServerFault = errors.New("server fault")

// CircuitBreakerMiddleware 整站熔断：5xx 比例超过阈值后打开，
// 打开期间直接拒绝请求返回 503.
func CircuitBreakerMiddleware(cfg configs.CircuitBreakerConfig) gin.HandlerFunc {
	if !cfg.Enabled {
		return func(c *gin.Context) { c.Next() }
	}

	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "ecolevault-http",
		MaxRequests: cfg.MaxRequestsInHalf,
		Interval:    time.Duration(cfg.IntervalSeconds) * time.Second,
		Timeout:     time.Duration(cfg.TimeoutSeconds) * time.Second,
		ReadyToTrip: tripFunc(cfg.MinRequests, cfg.FailureRate),
	})

	return func(c *gin.Context) {
		_, err := cb.Execute(func() (any, error) {
			c.Next()

			if c.Writer.Status() >= http.StatusInternalServerError {
				return nil, errServerFault
			}

			return nil, nil
		})

		// 熔断器拒绝时处理器未执行，此处写出响应；
		// errServerFault 只是计数标记，响应已由处理器写完
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			c.AbortWithStatusJSON(http.StatusServiceUnavailable,
				gin.H{"error": "service temporarily unavailable"})
		}
	}
}

// tripFunc 样本量达到下限后按失败率判断是否打开熔断.
func tripFunc(minRequests uint32, failureRate float64) func(gobreaker.Counts) bool {
	return func(counts gobreaker.Counts) bool {
		if counts.Requests < minRequests {
			return false
		}

		return float64(counts.TotalFailures)/float64(counts.Requests) >= failureRate
	}
}
