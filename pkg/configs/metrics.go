package configs

import "github.com/spf13/viper"

const (
	DefaultMetricsEnabled = false      // 默认关闭指标
	DefaultMetricsPath    = "/metrics" // 指标暴露路径
)

// MetricsConfig Prometheus 指标配置.
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"`
}

func (c *MetricsConfig) setDefaults(v *viper.Viper) {
	v.SetDefault("metrics.enabled", DefaultMetricsEnabled)
	v.SetDefault("metrics.path", DefaultMetricsPath)
}
