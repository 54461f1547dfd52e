package configs

import "github.com/spf13/viper"

const (
	DefaultJobsEnabled     = false       // 默认关闭定时任务
	DefaultOrphanSweepCron = "0 3 * * *" // 每天凌晨 3 点清扫孤儿负载
)

// JobsConfig 定时任务配置.
type JobsConfig struct {
	Enabled         bool   `mapstructure:"enabled"`
	OrphanSweepCron string `mapstructure:"orphan_sweep_cron"`
}

func (c *JobsConfig) setDefaults(v *viper.Viper) {
	v.SetDefault("jobs.enabled", DefaultJobsEnabled)
	v.SetDefault("jobs.orphan_sweep_cron", DefaultOrphanSweepCron)
}
