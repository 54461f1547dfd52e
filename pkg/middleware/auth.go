// Package middleware 提供中间件.
package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/yeisme/ecolevault/pkg/configs"
	ctxPkg "github.com/yeisme/ecolevault/pkg/context"
	"github.com/yeisme/ecolevault/pkg/internal/token"
)

const identityKey = "identity"

// Identity 认证通过后注入 gin.Context 的请求方身份.
type Identity struct {
	UserID   uint
	Username string
	Role     string
	IsStaff  bool
}

// IsAdmin 管理员判定：提权标志或 admin 角色任一命中.
func (i *Identity) IsAdmin() bool {
	return i.IsStaff || i.Role == "admin"
}

// AuthMiddleware 校验 Authorization: Bearer <access token> 并注入身份.
// 令牌缺失、畸形或过期一律返回 401.
func AuthMiddleware(cfg *configs.AuthConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")

		raw, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || strings.TrimSpace(raw) == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})

			return
		}

		mgr := token.NewManager(cfg, ctxPkg.GetKVStore(c.Request.Context()))

		claims, err := mgr.ParseAccess(strings.TrimSpace(raw))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})

			return
		}

		c.Set(identityKey, &Identity{
			UserID:   claims.UserID,
			Username: claims.Username,
			Role:     claims.Role,
			IsStaff:  claims.IsStaff,
		})
		c.Next()
	}
}

// CurrentIdentity 返回认证中间件注入的身份，未认证的请求返回 nil.
func CurrentIdentity(c *gin.Context) *Identity {
	if v, ok := c.Get(identityKey); ok {
		if id, ok2 := v.(*Identity); ok2 {
			return id
		}
	}

	return nil
}
