package handle

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yeisme/ecolevault/pkg/internal/service"
	"github.com/yeisme/ecolevault/pkg/internal/types"
)

// Register 处理账户注册. 对所有人开放.
func Register(c *gin.Context) {
	var req types.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFail(c, err)

		return
	}

	svc := service.NewAuthService(c.Request.Context())
	if err := svc.Register(c.Request.Context(), &req); err != nil {
		fail(c, err)

		return
	}

	c.JSON(http.StatusCreated, types.RegisterResponse{Message: "user created successfully"})
}

// Login 处理登录，成功时返回令牌对与账户身份.
func Login(c *gin.Context) {
	var req types.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFail(c, err)

		return
	}

	svc := service.NewAuthService(c.Request.Context())

	resp, err := svc.Login(c.Request.Context(), &req)
	if err != nil {
		fail(c, err)

		return
	}

	c.JSON(http.StatusOK, resp)
}

// Logout 吊销刷新令牌. 成功返回 205，任何令牌问题统一返回 400.
func Logout(c *gin.Context) {
	var req types.LogoutRequest
	// 请求体可缺省，缺失的令牌由服务层统一处理
	_ = c.ShouldBindJSON(&req)

	svc := service.NewAuthService(c.Request.Context())
	if err := svc.Logout(c.Request.Context(), req.Refresh); err != nil {
		fail(c, err)

		return
	}

	c.JSON(http.StatusResetContent, types.MessageResponse{Message: "logout successful"})
}
