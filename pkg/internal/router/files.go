package router

import (
	"github.com/gin-gonic/gin"

	"github.com/yeisme/ecolevault/pkg/internal/handle"
	"github.com/yeisme/ecolevault/pkg/middleware"
)

// RegisterFileRoutes 注册文件相关路由. 上传与读取对所有认证用户开放，
// 更新/删除要求管理员.
func RegisterFileRoutes(g *gin.RouterGroup) {
	fileRoutes := g.Group("/files")
	{
		fileRoutes.GET("/", handle.ListFiles)
		fileRoutes.POST("/", handle.UploadFile)
		fileRoutes.POST("/upload_multiple/", handle.UploadMultipleFiles)
		fileRoutes.GET("/:id", handle.GetFile)
		fileRoutes.GET("/:id/download/", handle.DownloadFile)

		adminGroup := fileRoutes.Group("", middleware.RequireAdmin())
		{
			adminGroup.PUT("/:id", handle.UpdateFile)
			adminGroup.PATCH("/:id", handle.UpdateFile)
			adminGroup.DELETE("/:id", handle.DeleteFile)
		}
	}
}
