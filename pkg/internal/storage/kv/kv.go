// Package kv 提供用于键值存储的接口和实现，刷新令牌黑名单等轻量状态存放于此.
package kv

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/yeisme/ecolevault/pkg/configs"
)

// ErrKeyNotFound 键不存在.
var ErrKeyNotFound = errors.New("key not found")

// Store 定义键值存储接口.
type Store interface {
	// Get 获取键的值，不存在时返回 ErrKeyNotFound.
	Get(ctx context.Context, key string) ([]byte, error)
	// Set 设置键的值，ttl 为 0 表示不过期.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	// Delete 删除键.
	Delete(ctx context.Context, key string) error
	// Exists 检查键是否存在.
	Exists(ctx context.Context, key string) (bool, error)
	// Close 关闭存储连接.
	Close() error
}

// Type 键值存储类型.
type Type string

const (
	TypeMemory Type = "memory"
	TypeRedis  Type = "redis"
)

// Factory 定义创建 Store 的工厂函数类型.
type Factory func(ctx context.Context, cfg *configs.KVConfig) (Store, error)

// factories 存储 KV 类型到工厂的映射.
var factories = make(map[Type]Factory)

// RegisterFactory 注册 KV 工厂函数.
func RegisterFactory(t Type, factory Factory) {
	factories[t] = factory
}

// New 根据配置创建 Store 实例.
func New(ctx context.Context, cfg *configs.KVConfig) (Store, error) {
	factory, exists := factories[Type(cfg.Type)]
	if !exists {
		return nil, fmt.Errorf("unsupported KV type: %s", cfg.Type)
	}

	return factory(ctx, cfg)
}
