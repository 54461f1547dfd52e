package handle

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	ctxPkg "github.com/yeisme/ecolevault/pkg/context"
)

const healthTimeout = 2 * time.Second

// Health 存活探针：检查数据库连通性，其余组件按初始化状态报告.
func Health(c *gin.Context) {
	components := gin.H{}
	healthy := true

	dbc := ctxPkg.GetDBClient(c.Request.Context())
	if dbc == nil || dbc.DB == nil {
		components["db"] = "uninitialized"
		healthy = false
	} else {
		ctx, cancel := context.WithTimeout(c.Request.Context(), healthTimeout)
		defer cancel()

		sqlDB, err := dbc.DB.DB()
		if err == nil {
			err = sqlDB.PingContext(ctx)
		}

		if err != nil {
			components["db"] = err.Error()
			healthy = false
		} else {
			components["db"] = "ok"
		}
	}

	if ctxPkg.GetObjectStore(c.Request.Context()) == nil {
		components["objects"] = "uninitialized"
		healthy = false
	} else {
		components["objects"] = "ok"
	}

	if ctxPkg.GetKVStore(c.Request.Context()) == nil {
		components["kv"] = "uninitialized"
		healthy = false
	} else {
		components["kv"] = "ok"
	}

	status := http.StatusOK
	overall := "ok"

	if !healthy {
		status = http.StatusServiceUnavailable
		overall = "unhealthy"
	}

	c.JSON(status, gin.H{"status": overall, "components": components})
}
