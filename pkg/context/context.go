// Package context 拓展上下文功能，将存储管理器等集成到请求上下文中，方便在应用程序各处传递和使用.
package context

import (
	"context"

	"github.com/yeisme/ecolevault/pkg/internal/storage"
	dbc "github.com/yeisme/ecolevault/pkg/internal/storage/db"
	"github.com/yeisme/ecolevault/pkg/internal/storage/kv"
	mqc "github.com/yeisme/ecolevault/pkg/internal/storage/mq"
)

type contextKey string

const (
	storageManagerKey contextKey = "storageManager"
)

// WithStorageManager 将 Manager 存储到 context 中.
func WithStorageManager(ctx context.Context, mgr *storage.Manager) context.Context {
	return context.WithValue(ctx, storageManagerKey, mgr)
}

// GetManager 从 context 中获取 Manager.
func GetManager(ctx context.Context) *storage.Manager {
	if mgr, ok := ctx.Value(storageManagerKey).(*storage.Manager); ok {
		return mgr
	}

	return nil
}

// GetDBClient 从 context 中获取 DB 客户端.
func GetDBClient(ctx context.Context) *dbc.Client {
	if mgr := GetManager(ctx); mgr != nil {
		return mgr.DB
	}

	return nil
}

// GetObjectStore 从 context 中获取对象存储.
func GetObjectStore(ctx context.Context) storage.ObjectStore {
	if mgr := GetManager(ctx); mgr != nil {
		return mgr.Objects
	}

	return nil
}

// GetKVStore 从 context 中获取 KV 存储.
func GetKVStore(ctx context.Context) kv.Store {
	if mgr := GetManager(ctx); mgr != nil {
		return mgr.KV
	}

	return nil
}

// GetMQClient 从 context 中获取 MQ 客户端，可能为 nil.
func GetMQClient(ctx context.Context) *mqc.Client {
	if mgr := GetManager(ctx); mgr != nil {
		return mgr.MQ
	}

	return nil
}
