// Package storage 聚合持久化资源：关系数据库、对象存储、键值存储与消息队列.
//
// Example:
//
//	ctx := context.Background()
//	mgr, err := storage.Init(ctx)
//	if err != nil {
//		// 处理错误
//	}
//
//	db := mgr.DB
//	objects := mgr.Objects
package storage

import (
	"context"
	"io"
	"sync"

	"github.com/yeisme/ecolevault/pkg/configs"
	dbc "github.com/yeisme/ecolevault/pkg/internal/storage/db"
	"github.com/yeisme/ecolevault/pkg/internal/storage/kv"
	mqc "github.com/yeisme/ecolevault/pkg/internal/storage/mq"
	s3c "github.com/yeisme/ecolevault/pkg/internal/storage/s3"
	nlog "github.com/yeisme/ecolevault/pkg/log"
)

// ObjectStore 对象存储抽象，生产实现为 s3.Client，测试可注入内存实现.
type ObjectStore interface {
	// Put 写入对象.
	Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error
	// Get 打开对象读取流，对象不存在时返回 s3.ErrObjectNotFound.
	Get(ctx context.Context, key string) (io.ReadCloser, error)
	// Exists 报告对象是否存在.
	Exists(ctx context.Context, key string) (bool, error)
	// Remove 删除对象，对象不存在时视为成功.
	Remove(ctx context.Context, key string) error
	// List 列出指定前缀下的所有对象（键与最后修改时间）.
	List(ctx context.Context, prefix string) ([]s3c.ObjectInfo, error)
}

// Manager 聚合所有存储资源. MQ 在禁用时为 nil.
type Manager struct {
	DB      *dbc.Client
	Objects ObjectStore
	KV      kv.Store
	MQ      *mqc.Client
}

var (
	mgr     *Manager
	mgrOnce sync.Once
)

// Init 初始化默认存储，使用全局配置. 重复调用只返回已初始化实例.
func Init(ctx context.Context) (*Manager, error) {
	var err error

	mgrOnce.Do(func() {
		cfg := configs.GetConfig()
		m := &Manager{}

		// DB
		if dbi, e := dbc.New(ctx, &cfg.DB); e != nil {
			err = e

			return
		} else {
			m.DB = dbi
		}

		// S3
		if s3i, e := s3c.New(ctx, &cfg.S3); e != nil {
			err = e

			return
		} else {
			m.Objects = s3i
		}

		// KV
		if kvi, e := kv.New(ctx, &cfg.KV); e != nil {
			err = e

			return
		} else {
			m.KV = kvi
		}

		// MQ（可选）
		if cfg.MQ.Enabled() {
			if mqi, e := mqc.New(ctx, &cfg.MQ); e != nil {
				err = e

				return
			} else {
				m.MQ = mqi
			}
		}

		mgr = m

		nlog.Logger().Info().Msg("storage manager initialized")
	})

	return mgr, err
}
