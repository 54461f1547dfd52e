package configs

import "github.com/spf13/viper"

const (
	DefaultKVType        = "memory"         // 默认 KV 类型
	DefaultKVRedisAddr   = "localhost:6379" // 默认 Redis 地址
	DefaultKVRedisDB     = 0                // 默认 Redis 数据库
	DefaultKVRedisPasswd = ""               // 默认 Redis 密码
)

type (
	// KVConfig 键值存储配置，用于刷新令牌黑名单等轻量状态.
	KVConfig struct {
		Type  string        `mapstructure:"type" rule:"oneof=memory redis"`
		Redis RedisKVConfig `mapstructure:"redis"`
	}

	// RedisKVConfig Redis KV 配置.
	RedisKVConfig struct {
		Addr     string `mapstructure:"addr"`
		Password string `mapstructure:"password"`
		DB       int    `mapstructure:"db"`
	}
)

func (c *KVConfig) setDefaults(v *viper.Viper) {
	v.SetDefault("kv.type", DefaultKVType)
	v.SetDefault("kv.redis.addr", DefaultKVRedisAddr)
	v.SetDefault("kv.redis.password", DefaultKVRedisPasswd)
	v.SetDefault("kv.redis.db", DefaultKVRedisDB)
}
