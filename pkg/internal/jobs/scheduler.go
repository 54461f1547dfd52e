package jobs

import (
	"context"

	"github.com/go-co-op/gocron/v2"

	"github.com/yeisme/ecolevault/pkg/configs"
	"github.com/yeisme/ecolevault/pkg/internal/storage"
	"github.com/yeisme/ecolevault/pkg/log"
)

// Scheduler 包装 gocron 调度器.
type Scheduler struct {
	scheduler gocron.Scheduler
}

// Start 按配置启动后台任务调度. 未启用时返回 nil.
func Start(ctx context.Context, cfg *configs.JobsConfig, mgr *storage.Manager) (*Scheduler, error) {
	if !cfg.Enabled {
		return nil, nil
	}

	s, err := gocron.NewScheduler()
	if err != nil {
		return nil, err
	}

	_, err = s.NewJob(
		gocron.CronJob(cfg.OrphanSweepCron, false),
		gocron.NewTask(func() {
			if _, err := SweepOrphanPayloads(ctx, mgr); err != nil {
				log.Logger().Error().Err(err).Msg("orphan payload sweep failed")
			}
		}),
		gocron.WithName("orphan-payload-sweep"),
	)
	if err != nil {
		_ = s.Shutdown()

		return nil, err
	}

	s.Start()
	log.Logger().Info().Str("cron", cfg.OrphanSweepCron).Msg("job scheduler started")

	return &Scheduler{scheduler: s}, nil
}

// Shutdown 停止调度器，等待在途任务结束.
func (s *Scheduler) Shutdown() error {
	if s == nil {
		return nil
	}

	return s.scheduler.Shutdown()
}
