package configs

import (
	"time"

	"github.com/spf13/viper"
)

const (
	DefaultAuthSecret          = "change-me"  // 默认签名密钥，生产环境必须覆盖
	DefaultAccessTokenMinutes  = 15           // 访问令牌有效期（分钟）
	DefaultRefreshTokenHours   = 24 * 7       // 刷新令牌有效期（小时）
	DefaultAuthIssuer          = "ecolevault" // 令牌签发者
	DefaultPasswordMinLength   = 8            // 密码最小长度
)

// AuthConfig JWT 认证配置：访问/刷新令牌对 + 基于 KV 的刷新令牌黑名单.
type AuthConfig struct {
	Secret             string `mapstructure:"secret"`
	Issuer             string `mapstructure:"issuer"`
	AccessTokenMinutes int    `mapstructure:"access_token_minutes" rule:"min=1"`
	RefreshTokenHours  int    `mapstructure:"refresh_token_hours"  rule:"min=1"`
	PasswordMinLength  int    `mapstructure:"password_min_length"  rule:"min=4"`
}

// AccessTTL 返回访问令牌有效期.
func (c *AuthConfig) AccessTTL() time.Duration {
	return time.Duration(c.AccessTokenMinutes) * time.Minute
}

// RefreshTTL 返回刷新令牌有效期.
func (c *AuthConfig) RefreshTTL() time.Duration {
	return time.Duration(c.RefreshTokenHours) * time.Hour
}

func (c *AuthConfig) setDefaults(v *viper.Viper) {
	v.SetDefault("auth.secret", DefaultAuthSecret)
	v.SetDefault("auth.issuer", DefaultAuthIssuer)
	v.SetDefault("auth.access_token_minutes", DefaultAccessTokenMinutes)
	v.SetDefault("auth.refresh_token_hours", DefaultRefreshTokenHours)
	v.SetDefault("auth.password_min_length", DefaultPasswordMinLength)
}
