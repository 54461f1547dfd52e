// Package app 提供应用程序的组装：配置、日志、存储、路由、中间件与后台任务.
package app

import (
	contextPkg "context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/yeisme/ecolevault/pkg/configs"
	"github.com/yeisme/ecolevault/pkg/internal/jobs"
	"github.com/yeisme/ecolevault/pkg/internal/model"
	"github.com/yeisme/ecolevault/pkg/internal/router"
	"github.com/yeisme/ecolevault/pkg/internal/storage"
	"github.com/yeisme/ecolevault/pkg/log"
	"github.com/yeisme/ecolevault/pkg/metrics"
	"github.com/yeisme/ecolevault/pkg/middleware"
	"github.com/yeisme/ecolevault/pkg/rule"
)

const shutdownTimeout = 10 * time.Second

// App 聚合 HTTP 引擎、配置与后台组件.
type App struct {
	Engine    *gin.Engine
	config    *configs.AppConfig
	manager   *storage.Manager
	scheduler *jobs.Scheduler
}

// NewApp 初始化配置、日志、存储与路由，返回可运行的应用.
func NewApp(configPath string) (*App, error) {
	ctx := contextPkg.Background()

	if err := configs.InitConfig(configPath); err != nil {
		return nil, fmt.Errorf("init config: %w", err)
	}

	log.Init()
	rule.Engine() // 注册领域校验规则

	config := configs.GetConfig()

	manager, err := storage.Init(ctx)
	if err != nil {
		return nil, fmt.Errorf("init storage: %w", err)
	}

	l := log.Logger()
	gin.DefaultWriter = log.NewGinWriter(l, zerolog.InfoLevel)
	gin.DefaultErrorWriter = log.NewGinWriter(l, zerolog.ErrorLevel)

	engine := gin.New()
	engine.Use(
		gin.Recovery(),
		middleware.StorageMiddleware(manager),
		middleware.GinLoggerMiddleware(),
		middleware.CORSMiddleware(config.Server),
		gzip.Gzip(gzip.DefaultCompression),
		middleware.RateLimitMiddleware(config.Limit),
		middleware.CircuitBreakerMiddleware(config.Breaker),
	)

	if config.Metrics.Enabled {
		engine.Use(middleware.PrometheusMiddleware())

		if err := metrics.Init(config.Metrics, engine); err != nil {
			return nil, fmt.Errorf("init metrics: %w", err)
		}
	}

	router.Register(engine, config)

	return &App{
		Engine:  engine,
		config:  config,
		manager: manager,
	}, nil
}

// Migrate 执行数据库迁移.
func (a *App) Migrate() error {
	return a.manager.DB.AutoMigrate(&model.User{}, &model.Ecole{}, &model.File{})
}

// Run 启动 HTTP 服务与后台任务，收到 SIGINT/SIGTERM 后优雅退出.
func (a *App) Run() error {
	ctx, stop := signal.NotifyContext(contextPkg.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sched, err := jobs.Start(ctx, &a.config.Jobs, a.manager)
	if err != nil {
		return fmt.Errorf("start jobs: %w", err)
	}

	a.scheduler = sched

	if err := jobs.StartAuditSubscriber(ctx, a.manager); err != nil {
		return fmt.Errorf("start audit subscriber: %w", err)
	}

	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", a.config.Server.Host, a.config.Server.Port),
		Handler:      a.Engine,
		ReadTimeout:  a.config.Server.GetTimeoutDuration(),
		WriteTimeout: a.config.Server.GetTimeoutDuration(),
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Logger().Info().Str("addr", srv.Addr).Msg("http server listening")

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}

		return nil
	})

	g.Go(func() error {
		<-gctx.Done()

		shutdownCtx, cancel := contextPkg.WithTimeout(contextPkg.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}

		if err := a.scheduler.Shutdown(); err != nil {
			log.Logger().Warn().Err(err).Msg("shutdown scheduler failed")
		}

		if a.manager.MQ != nil {
			if err := a.manager.MQ.Close(); err != nil {
				log.Logger().Warn().Err(err).Msg("close mq failed")
			}
		}

		if err := a.manager.KV.Close(); err != nil {
			log.Logger().Warn().Err(err).Msg("close kv failed")
		}

		return nil
	})

	return g.Wait()
}
