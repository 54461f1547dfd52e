// Package metrics 提供 Prometheus 指标的注册与暴露.
package metrics

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/yeisme/ecolevault/pkg/configs"
)

var (
	// RequestCounter HTTP 请求计数.
	RequestCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ecolevault_http_requests_total",
			Help: "Total number of HTTP requests.",
		},
		[]string{"method", "path", "status"},
	)

	// RequestDuration HTTP 请求耗时.
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "ecolevault_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	// UploadedBytes 上传负载累计字节数.
	UploadedBytes = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "ecolevault_uploaded_bytes_total",
			Help: "Total bytes of stored file payloads.",
		},
	)
)

// Init 注册指标并在引擎上暴露 /metrics.
func Init(cfg configs.MetricsConfig, engine *gin.Engine) error {
	if !cfg.Enabled {
		return nil
	}

	for _, c := range []prometheus.Collector{RequestCounter, RequestDuration, UploadedBytes} {
		if err := prometheus.Register(c); err != nil {
			return err
		}
	}

	engine.GET(cfg.Path, gin.WrapH(promhttp.Handler()))

	return nil
}
