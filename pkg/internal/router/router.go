// Package router 管理路由配置，把路径绑定到 pkg/internal/handle 中的处理器.
package router

import (
	"github.com/gin-gonic/gin"

	"github.com/yeisme/ecolevault/pkg/configs"
	"github.com/yeisme/ecolevault/pkg/middleware"
)

// Register 注册全部业务路由.
// 认证接口对外开放；学校与文件接口要求 Bearer 认证，写操作再经管理员门禁.
func Register(engine *gin.Engine, cfg *configs.AppConfig) {
	RegisterAuthRoutes(engine)

	authed := engine.Group("", middleware.AuthMiddleware(&cfg.Auth))
	{
		RegisterLogoutRoute(authed)
		RegisterEcoleRoutes(authed)
		RegisterFileRoutes(authed)
	}

	RegisterHealthCheckRoute(engine)
}
