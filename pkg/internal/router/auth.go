package router

import (
	"github.com/gin-gonic/gin"

	"github.com/yeisme/ecolevault/pkg/internal/handle"
)

// RegisterAuthRoutes 注册开放的账户路由：注册与登录.
func RegisterAuthRoutes(engine *gin.Engine) {
	engine.POST("/register/", handle.Register)
	engine.POST("/login/", handle.Login)
}

// RegisterLogoutRoute 注册登出路由. 要求携带有效访问令牌，
// 被吊销的是请求体里的刷新令牌.
func RegisterLogoutRoute(g *gin.RouterGroup) {
	g.POST("/logout/", handle.Logout)
}
