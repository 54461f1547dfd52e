package jobs

import (
	"context"

	"github.com/ThreeDotsLabs/watermill/message"

	"github.com/yeisme/ecolevault/pkg/internal/storage"
	"github.com/yeisme/ecolevault/pkg/log"
	"github.com/yeisme/ecolevault/pkg/queue"
)

// StartAuditSubscriber 订阅文件生命周期事件并写入审计日志.
// MQ 未启用时为空操作.
func StartAuditSubscriber(ctx context.Context, mgr *storage.Manager) error {
	if mgr.MQ == nil {
		return nil
	}

	if err := mgr.MQ.Subscribe(ctx, queue.TopicFileStored, func(msg *message.Message) error {
		env, err := queue.ParseFileStored(msg)
		if err != nil {
			return err
		}

		log.Logger().Info().
			Uint("file_id", env.Payload.FileID).
			Uint("ecole_id", env.Payload.EcoleID).
			Str("object_key", env.Payload.Object.ObjectKey).
			Int64("size", env.Payload.Object.Size).
			Msg("audit: file stored")

		return nil
	}); err != nil {
		return err
	}

	return mgr.MQ.Subscribe(ctx, queue.TopicFileDeleted, func(msg *message.Message) error {
		env, err := queue.ParseFileDeleted(msg)
		if err != nil {
			return err
		}

		log.Logger().Info().
			Uint("file_id", env.Payload.FileID).
			Uint("ecole_id", env.Payload.EcoleID).
			Str("object_key", env.Payload.Object.ObjectKey).
			Msg("audit: file deleted")

		return nil
	})
}
