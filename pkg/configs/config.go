// Package configs 管理应用程序配置，包括服务器、数据库、对象存储、KV、消息队列、
// 认证与上传限制等配置信息. 支持多种配置格式（YAML、JSON、TOML、dotenv）并可启用热重载.
//
// Example:
//
//	err := configs.InitConfig("./")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	config := configs.GetConfig()
//	fmt.Println(config.Server.Port)
package configs

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"

	"github.com/yeisme/ecolevault/pkg/rule"
)

type (
	// AppConfig 全局应用程序配置.
	AppConfig struct {
		DB      DBConfig             `mapstructure:"db"`      // 数据库配置
		S3      S3Config             `mapstructure:"s3"`      // 对象存储配置
		KV      KVConfig             `mapstructure:"kv"`      // 键值存储配置（刷新令牌黑名单等）
		MQ      MQConfig             `mapstructure:"mq"`      // 消息队列配置（文件生命周期事件）
		Server  ServerConfig         `mapstructure:"server"`  // 服务器配置
		Log     LogConfig            `mapstructure:"log"`     // 日志配置
		Auth    AuthConfig           `mapstructure:"auth"`    // JWT 认证配置
		Upload  UploadConfig         `mapstructure:"upload"`  // 文件上传限制配置
		Limit   RateLimitConfig      `mapstructure:"limit"`   // 限流配置
		Breaker CircuitBreakerConfig `mapstructure:"breaker"` // 熔断配置
		Metrics MetricsConfig        `mapstructure:"metrics"` // 指标配置
		Jobs    JobsConfig           `mapstructure:"jobs"`    // 定时任务配置
	}
)

var (
	// globalConfig 全局配置实例.
	globalConfig AppConfig
	// appViper 全局 Viper 实例.
	appViper *viper.Viper
)

// InitConfig 加载应用程序配置，path 可以是配置文件或包含 config.* 的目录.
func InitConfig(path string) error {
	appViper = viper.New()
	setAllDefaults(appViper)

	// path 是文件时直接使用，Viper 根据扩展名自动检测类型
	if info, err := os.Stat(path); err == nil && !info.IsDir() {
		appViper.SetConfigFile(path)
	} else {
		appViper.SetConfigName("config")
		appViper.AddConfigPath(path)
		appViper.AddConfigPath(filepath.Join(path, "configs"))

		exts := []string{"yaml", "yml", "json", "toml", "env", "dotenv"}
		for _, ext := range exts {
			cfg := filepath.Join(path, "config."+ext)
			if _, err := os.Stat(cfg); err == nil {
				appViper.SetConfigFile(cfg)

				break
			}
		}
	}

	appViper.AutomaticEnv()
	appViper.SetEnvPrefix("ECOLEVAULT")

	// 没有配置文件时退回默认值 + 环境变量
	if err := appViper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("failed to read config: %w", err)
		}
	}

	if err := appViper.Unmarshal(&globalConfig); err != nil {
		return fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := rule.ValidateConfig(&globalConfig); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	reloadConfigs(appViper, globalConfig.Server.ReloadConfig)

	return nil
}

// setAllDefaults 设置所有配置的默认值.
func setAllDefaults(v *viper.Viper) {
	var (
		serverConfig  ServerConfig
		dbConfig      DBConfig
		s3Config      S3Config
		kvConfig      KVConfig
		mqConfig      MQConfig
		logConfig     LogConfig
		authConfig    AuthConfig
		uploadConfig  UploadConfig
		limitConfig   RateLimitConfig
		breakerConfig CircuitBreakerConfig
		metricsConfig MetricsConfig
		jobsConfig    JobsConfig
	)

	serverConfig.setDefaults(v)
	dbConfig.setDefaults(v)
	s3Config.setDefaults(v)
	kvConfig.setDefaults(v)
	mqConfig.setDefaults(v)
	logConfig.setDefaults(v)
	authConfig.setDefaults(v)
	uploadConfig.setDefaults(v)
	limitConfig.setDefaults(v)
	breakerConfig.setDefaults(v)
	metricsConfig.setDefaults(v)
	jobsConfig.setDefaults(v)
}

func reloadConfigs(v *viper.Viper, isHotReload bool) {
	if !isHotReload {
		return
	}

	v.OnConfigChange(func(e fsnotify.Event) {
		fmt.Println("Config file changed:", e.Name)

		if err := v.Unmarshal(&globalConfig); err != nil {
			fmt.Printf("Error reloading config: %v\n", err)
		}
	})
	v.WatchConfig()
}

// GetConfig 返回全局配置实例.
func GetConfig() *AppConfig {
	return &globalConfig
}

// GetViper 返回全局 Viper 实例.
func GetViper() *viper.Viper {
	return appViper
}
