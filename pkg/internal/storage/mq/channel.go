package mq

import (
	"context"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"

	"github.com/yeisme/ecolevault/pkg/configs"
)

// channelFactory 创建进程内 gochannel 发布/订阅，pub 与 sub 为同一实例.
func channelFactory(_ context.Context, _ *configs.MQConfig) (message.Publisher, message.Subscriber, error) {
	ch := gochannel.NewGoChannel(gochannel.Config{}, newLoggerAdapter())

	return ch, ch, nil
}

// 注册 gochannel 工厂.
func init() {
	RegisterFactory(configs.MQTypeChannel, channelFactory)
}
