// Package jobs 提供后台任务：孤儿负载清扫与文件事件审计.
package jobs

import (
	"context"
	"time"

	"github.com/yeisme/ecolevault/pkg/internal/model"
	"github.com/yeisme/ecolevault/pkg/internal/storage"
	"github.com/yeisme/ecolevault/pkg/log"
)

// objectKeyPrefix 文件负载统一存放的键前缀.
const objectKeyPrefix = "schools/"

// sweepGrace 新写入的对象跳过本轮清扫. 上传先写负载后落库，
// 宽限期避免把两步之间的在途负载误判成孤儿.
const sweepGrace = 30 * time.Minute

// SweepOrphanPayloads 清扫对象存储中没有对应数据库记录的负载.
// 学校级联删除只清数据库行，对象负载靠这里兜底回收. 返回移除的对象数.
func SweepOrphanPayloads(ctx context.Context, mgr *storage.Manager) (int, error) {
	objects, err := mgr.Objects.List(ctx, objectKeyPrefix)
	if err != nil {
		return 0, err
	}

	if len(objects) == 0 {
		return 0, nil
	}

	var known []string
	if err := mgr.DB.WithContext(ctx).Model(&model.File{}).
		Pluck("object_key", &known).Error; err != nil {
		return 0, err
	}

	knownSet := make(map[string]struct{}, len(known))
	for _, k := range known {
		knownSet[k] = struct{}{}
	}

	cutoff := time.Now().Add(-sweepGrace)
	removed := 0

	for _, obj := range objects {
		if _, ok := knownSet[obj.Key]; ok {
			continue
		}

		if obj.LastModified.After(cutoff) {
			continue
		}

		if err := mgr.Objects.Remove(ctx, obj.Key); err != nil {
			log.Logger().Warn().Err(err).Str("object_key", obj.Key).Msg("remove orphan payload failed")

			continue
		}

		removed++
	}

	if removed > 0 {
		log.Logger().Info().Int("removed", removed).Msg("orphan payload sweep finished")
	}

	return removed, nil
}
