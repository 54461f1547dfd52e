package handle

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yeisme/ecolevault/pkg/internal/service"
	"github.com/yeisme/ecolevault/pkg/internal/types"
)

// ListEcoles 返回全部学校.
func ListEcoles(c *gin.Context) {
	svc := service.NewEcoleService(c.Request.Context())

	ecoles, err := svc.List(c.Request.Context())
	if err != nil {
		fail(c, err)

		return
	}

	c.JSON(http.StatusOK, ecoles)
}

// CreateEcole 创建学校. 仅管理员（路由层已做门禁）.
func CreateEcole(c *gin.Context) {
	var req types.EcoleCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFail(c, err)

		return
	}

	svc := service.NewEcoleService(c.Request.Context())

	ecole, err := svc.Create(c.Request.Context(), &req)
	if err != nil {
		fail(c, err)

		return
	}

	c.JSON(http.StatusCreated, ecole)
}

// GetEcole 按 ID 返回学校详情.
func GetEcole(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	svc := service.NewEcoleService(c.Request.Context())

	ecole, err := svc.Get(c.Request.Context(), id)
	if err != nil {
		fail(c, err)

		return
	}

	c.JSON(http.StatusOK, ecole)
}

// UpdateEcole 更新学校. 缺省字段保留存量值.
func UpdateEcole(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req types.EcoleUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFail(c, err)

		return
	}

	svc := service.NewEcoleService(c.Request.Context())

	ecole, err := svc.Update(c.Request.Context(), id, &req)
	if err != nil {
		fail(c, err)

		return
	}

	c.JSON(http.StatusOK, ecole)
}

// DeleteEcole 删除学校及其文件.
func DeleteEcole(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	svc := service.NewEcoleService(c.Request.Context())
	if err := svc.Delete(c.Request.Context(), id); err != nil {
		fail(c, err)

		return
	}

	c.Status(http.StatusNoContent)
}
