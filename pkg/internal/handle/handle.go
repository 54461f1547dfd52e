// Package handle 提供 HTTP 请求处理器：参数绑定、权限检查、服务调用与错误翻译.
package handle

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/yeisme/ecolevault/pkg/apperr"
	"github.com/yeisme/ecolevault/pkg/log"
	"github.com/yeisme/ecolevault/pkg/middleware"
	"github.com/yeisme/ecolevault/pkg/rule"
)

// fail 把服务层错误翻译为 HTTP 响应. 未分类错误记录日志并按 500 处理.
func fail(c *gin.Context, err error) {
	switch apperr.KindOf(err) {
	case apperr.KindValidation:
		body := gin.H{"error": err.Error()}
		if fields := apperr.FieldsOf(err); len(fields) > 0 {
			body = gin.H{"error": "validation failed", "fields": fields}
		}

		c.JSON(http.StatusBadRequest, body)
	case apperr.KindAuthentication:
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case apperr.KindAuthorization:
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case apperr.KindNotFound:
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		log.Logger().Error().Err(err).Str("path", c.Request.URL.Path).Msg("request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

// bindFail 把绑定/校验错误转为 400，带字段明细（若可解析）.
func bindFail(c *gin.Context, err error) {
	log.Logger().Warn().Err(err).Msg("invalid request")

	if fields := rule.FieldErrors(err); len(fields) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "validation failed", "fields": fields})

		return
	}

	c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}

// pathID 解析路径中的数字 ID，非法时返回 ok=false 并已写出 400.
func pathID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})

		return 0, false
	}

	return uint(id), true
}

// identity 返回认证身份，未认证时写出 401 并返回 ok=false.
func identity(c *gin.Context) (*middleware.Identity, bool) {
	id := middleware.CurrentIdentity(c)
	if id == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})

		return nil, false
	}

	return id, true
}
