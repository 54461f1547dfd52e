package configs

import "github.com/spf13/viper"

const (
	DefaultBreakerEnabled           = false // 默认关闭熔断
	DefaultBreakerMaxRequestsInHalf = 5     // 半开状态允许的请求数
	DefaultBreakerIntervalSeconds   = 60    // 统计窗口（秒）
	DefaultBreakerTimeoutSeconds    = 30    // 熔断打开后的恢复等待（秒）
	DefaultBreakerMinRequests       = 20    // 触发判定前的最小请求数
	DefaultBreakerFailureRate       = 0.5   // 失败率阈值
)

// CircuitBreakerConfig 熔断配置.
type CircuitBreakerConfig struct {
	Enabled           bool    `mapstructure:"enabled"`
	MaxRequestsInHalf uint32  `mapstructure:"max_requests_in_half"`
	IntervalSeconds   int     `mapstructure:"interval_seconds"`
	TimeoutSeconds    int     `mapstructure:"timeout_seconds"`
	MinRequests       uint32  `mapstructure:"min_requests"`
	FailureRate       float64 `mapstructure:"failure_rate"`
}

func (c *CircuitBreakerConfig) setDefaults(v *viper.Viper) {
	v.SetDefault("breaker.enabled", DefaultBreakerEnabled)
	v.SetDefault("breaker.max_requests_in_half", DefaultBreakerMaxRequestsInHalf)
	v.SetDefault("breaker.interval_seconds", DefaultBreakerIntervalSeconds)
	v.SetDefault("breaker.timeout_seconds", DefaultBreakerTimeoutSeconds)
	v.SetDefault("breaker.min_requests", DefaultBreakerMinRequests)
	v.SetDefault("breaker.failure_rate", DefaultBreakerFailureRate)
}
