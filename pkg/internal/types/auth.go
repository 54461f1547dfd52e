// Package types 定义 API 请求与响应结构.
package types

// RegisterRequest 账户注册请求. 角色只允许 admin/user，缺省为 user.
type RegisterRequest struct {
	Username string `binding:"required"                    json:"username"`
	Email    string `binding:"omitempty,email"             json:"email"`
	Password string `binding:"required"                    json:"password"`
	Role     string `binding:"omitempty,oneof=admin user"  json:"role"`
}

// RegisterResponse 注册成功响应.
type RegisterResponse struct {
	Message string `json:"message"`
}

// LoginRequest 登录请求.
type LoginRequest struct {
	Username string `binding:"required" json:"username"`
	Password string `binding:"required" json:"password"`
}

// LoginResponse 登录成功响应：令牌对 + 账户身份.
type LoginResponse struct {
	Refresh  string `json:"refresh"`
	Access   string `json:"access"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

// LogoutRequest 登出请求，携带待吊销的刷新令牌.
type LogoutRequest struct {
	Refresh string `json:"refresh"`
}

// MessageResponse 通用消息响应.
type MessageResponse struct {
	Message string `json:"message"`
}

// ErrorResponse 通用错误响应.
type ErrorResponse struct {
	Error string `json:"error"`
}

// FieldErrorResponse 字段级校验错误响应，键为字段名.
type FieldErrorResponse map[string]string
