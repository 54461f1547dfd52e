package configs

import "github.com/spf13/viper"

type (
	// MQType 消息队列类型.
	MQType string
)

const (
	MQTypeNone    MQType = "none"    // 不发布事件
	MQTypeChannel MQType = "channel" // 进程内 gochannel（默认）
	MQTypeNATS    MQType = "nats"    // NATS
)

const (
	DefaultMQType          = MQTypeChannel     // 默认消息队列类型
	DefaultMQURL           = "nats://127.0.0.1:4222" // 默认 NATS 地址
	DefaultMQClientID      = "ecolevault"      // 默认客户端标识
	DefaultMQMaxReconnects = 10                // 默认最大重连次数
	DefaultMQReconnectWait = 2                 // 默认重连等待（秒）
)

// MQConfig 消息队列配置，文件生命周期事件通过它发布.
type MQConfig struct {
	Type          MQType `mapstructure:"type" rule:"oneof=none channel nats"`
	URL           string `mapstructure:"url"`
	ClientID      string `mapstructure:"client_id"`
	MaxReconnects int    `mapstructure:"max_reconnects"`
	ReconnectWait int    `mapstructure:"reconnect_wait"`
}

// Enabled 报告是否需要初始化消息队列.
func (c *MQConfig) Enabled() bool {
	return c.Type != MQTypeNone && c.Type != ""
}

func (c *MQConfig) setDefaults(v *viper.Viper) {
	v.SetDefault("mq.type", DefaultMQType)
	v.SetDefault("mq.url", DefaultMQURL)
	v.SetDefault("mq.client_id", DefaultMQClientID)
	v.SetDefault("mq.max_reconnects", DefaultMQMaxReconnects)
	v.SetDefault("mq.reconnect_wait", DefaultMQReconnectWait)
}
