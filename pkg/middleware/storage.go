package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/yeisme/ecolevault/pkg/context"
	"github.com/yeisme/ecolevault/pkg/internal/storage"
)

// StorageMiddleware 把存储管理器注入请求上下文，下游 service 从中取句柄.
func StorageMiddleware(manager *storage.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := context.WithStorageManager(c.Request.Context(), manager)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}
