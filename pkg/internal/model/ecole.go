package model

import "time"

// Ecole 学校记录. StudentsCount 由服务端维护，创建与更新时不可由客户端设置.
type Ecole struct {
	ID            uint      `gorm:"primaryKey"           json:"id"`
	Name          string    `gorm:"size:100;index"       json:"name"`
	Address       string    `gorm:"size:255"             json:"address"`
	City          string    `gorm:"size:100"             json:"city"`
	PostalCode    string    `gorm:"size:10"              json:"postal_code"`
	Phone         string    `gorm:"size:32"              json:"phone"`
	StudentsCount uint      `gorm:"default:0"            json:"students_count"`
	CreatedAt     time.Time `json:"-"`

	// 删除学校时由数据库级联删除其文件记录.
	Files []File `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}
