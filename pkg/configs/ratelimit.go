package configs

import "github.com/spf13/viper"

const (
	DefaultRateLimitEnabled = false // 默认关闭限流
	DefaultRateLimitRPS     = 50    // 默认每秒请求数
	DefaultRateLimitBurst   = 100   // 默认突发容量
	DefaultRateLimitKey     = "ip"  // 默认限流维度
)

// RateLimitConfig 限流配置，key 支持 global、ip 或 header:<name>.
type RateLimitConfig struct {
	Enabled bool    `mapstructure:"enabled"`
	RPS     float64 `mapstructure:"rps"     rule:"min=0"`
	Burst   int     `mapstructure:"burst"   rule:"min=0"`
	Key     string  `mapstructure:"key"`
}

func (c *RateLimitConfig) setDefaults(v *viper.Viper) {
	v.SetDefault("limit.enabled", DefaultRateLimitEnabled)
	v.SetDefault("limit.rps", DefaultRateLimitRPS)
	v.SetDefault("limit.burst", DefaultRateLimitBurst)
	v.SetDefault("limit.key", DefaultRateLimitKey)
}
