package model

import "time"

// 角色枚举：粗粒度的两级授权.
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// User 账户模型. 密码只保存 bcrypt 散列，序列化时永不外泄.
type User struct {
	ID           uint      `gorm:"primaryKey"              json:"id"`
	Username     string    `gorm:"size:150;uniqueIndex"    json:"username"`
	Email        string    `gorm:"size:254"                json:"email,omitempty"`
	PasswordHash string    `gorm:"size:255"                json:"-"`
	Role         string    `gorm:"size:10;default:user"    json:"role"`
	// IsStaff 历史遗留的提权标志，和 Role 并存；管理员判定取二者的 OR.
	IsStaff   bool      `gorm:"default:false" json:"-"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

// IsAdmin 统一的派生能力判定：提权标志或角色字段任一命中即视为管理员.
func (u *User) IsAdmin() bool {
	return u.IsStaff || u.Role == RoleAdmin
}
