// Package mq 提供基于 Watermill 的统一消息发布/订阅接口，文件生命周期事件通过它流转.
// 支持 NATS 与进程内 gochannel 两种实现，通过工厂模式按配置选择.
package mq

import (
	"context"
	"fmt"

	"github.com/ThreeDotsLabs/watermill/message"

	"github.com/yeisme/ecolevault/pkg/configs"
	nlog "github.com/yeisme/ecolevault/pkg/log"
)

// Factory 定义创建 Publisher + Subscriber 的工厂函数.
type Factory func(ctx context.Context, cfg *configs.MQConfig) (message.Publisher, message.Subscriber, error)

// factories 存储 MQ 类型到工厂的映射.
var factories = map[configs.MQType]Factory{}

// RegisterFactory 注册指定 MQType 的工厂.
func RegisterFactory(t configs.MQType, f Factory) {
	factories[t] = f
}

// Client 封装 watermill Publisher 与 Subscriber.
type Client struct {
	publisher  message.Publisher
	subscriber message.Subscriber
}

// New 根据配置创建 MQ 客户端.
func New(ctx context.Context, cfg *configs.MQConfig) (*Client, error) {
	factory, exists := factories[cfg.Type]
	if !exists {
		return nil, fmt.Errorf("unsupported MQ type: %s", cfg.Type)
	}

	pub, sub, err := factory(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("create %s mq client: %w", cfg.Type, err)
	}

	nlog.Logger().Info().Str("type", string(cfg.Type)).Msg("mq connected")

	return &Client{publisher: pub, subscriber: sub}, nil
}

// Publisher 返回底层 watermill Publisher，供业务封装的事件发布函数使用.
func (c *Client) Publisher() message.Publisher {
	return c.publisher
}

// Publish 发布消息到主题.
func (c *Client) Publish(topic string, msgs ...*message.Message) error {
	return c.publisher.Publish(topic, msgs...)
}

// Subscribe 订阅主题并为每条消息调用 handler，handler 返回 nil 时自动 Ack.
func (c *Client) Subscribe(ctx context.Context, topic string, handler func(msg *message.Message) error) error {
	ch, err := c.subscriber.Subscribe(ctx, topic)
	if err != nil {
		return fmt.Errorf("subscribe %s: %w", topic, err)
	}

	go func() {
		for msg := range ch {
			if err := handler(msg); err != nil {
				nlog.Logger().Error().Err(err).Str("topic", topic).Msg("message handler failed")
				msg.Nack()

				continue
			}

			msg.Ack()
		}
	}()

	return nil
}

// Close 关闭发布者与订阅者.
func (c *Client) Close() error {
	if err := c.publisher.Close(); err != nil {
		return err
	}

	return c.subscriber.Close()
}
