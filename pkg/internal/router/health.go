package router

import (
	"github.com/gin-gonic/gin"

	"github.com/yeisme/ecolevault/pkg/internal/handle"
)

// RegisterHealthCheckRoute 注册健康检查路由.
func RegisterHealthCheckRoute(engine *gin.Engine) {
	engine.GET("/health", handle.Health)
}
