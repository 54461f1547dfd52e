package router

import (
	"github.com/gin-gonic/gin"

	"github.com/yeisme/ecolevault/pkg/internal/handle"
	"github.com/yeisme/ecolevault/pkg/middleware"
)

// RegisterEcoleRoutes 注册学校相关路由. 读操作对所有认证用户开放，
// 创建/更新/删除要求管理员.
func RegisterEcoleRoutes(g *gin.RouterGroup) {
	ecoleRoutes := g.Group("/ecoles")
	{
		ecoleRoutes.GET("/", handle.ListEcoles)
		ecoleRoutes.GET("/:id", handle.GetEcole)

		adminGroup := ecoleRoutes.Group("", middleware.RequireAdmin())
		{
			adminGroup.POST("/", handle.CreateEcole)
			adminGroup.PUT("/:id", handle.UpdateEcole)
			adminGroup.DELETE("/:id", handle.DeleteEcole)
		}
	}
}
