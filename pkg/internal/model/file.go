package model

import "time"

// 文件类型枚举，由扩展名映射得出.
const (
	FileTypePDF         = "pdf"
	FileTypeImage       = "image"
	FileTypeDocument    = "document"
	FileTypeSpreadsheet = "spreadsheet"
	FileTypeText        = "text"
	FileTypeOther       = "other"
)

// File 上传文件的元数据记录. 负载本体存放在对象存储中，键为
// schools/{ecoleID}/files/{filename}，按学校做命名空间隔离.
// FileName、FileType、FileSize、MimeType 均由上传负载推导，对客户端只读.
type File struct {
	ID           uint   `gorm:"primaryKey"                     json:"id"`
	EcoleID      uint   `gorm:"index:idx_ecole_uploaded;index" json:"ecole"`
	UploadedByID uint   `gorm:"index"                          json:"uploaded_by"`
	ObjectKey    string `gorm:"size:1024"                      json:"object_key"`
	FileName     string `gorm:"size:255"                       json:"filename"`
	FileType     string `gorm:"size:20;index;default:other"    json:"file_type"`
	FileSize     int64  `json:"file_size"`
	MimeType     string `gorm:"size:100"                       json:"mime_type"`
	Description  string `gorm:"type:text"                      json:"description"`
	// UploadedAt 只在创建时写入，UpdatedAt 随每次变更刷新.
	UploadedAt time.Time `gorm:"autoCreateTime;index:idx_ecole_uploaded,sort:desc" json:"uploaded_at"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime"                                    json:"updated_at"`

	Ecole      Ecole `gorm:"foreignKey:EcoleID"      json:"-"`
	UploadedBy User  `gorm:"foreignKey:UploadedByID" json:"-"`
}
