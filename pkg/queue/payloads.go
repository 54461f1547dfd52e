package queue

import "time"

// EventHeader 定义所有事件的通用头部元数据.
// 发布消息时建议填充 TraceID、Producer，便于追踪链路与审计.
type EventHeader struct {
	// Topic 冗余记录消息主题，便于离线处理或转储后定位来源主题.
	Topic string `json:"topic"`
	// TraceID 分布式追踪/关联 ID，可来自中间件或业务生成.
	TraceID string `json:"trace_id,omitempty"`
	// Producer 生产者服务名或节点标识.
	Producer string `json:"producer,omitempty"`
	// OccurredAt 事件发生时间（UTC，RFC3339）.
	OccurredAt time.Time `json:"occurred_at"`
	// Version 事件负载版本，便于向后兼容演进.
	Version string `json:"version,omitempty"`
}

// Message 是统一的消息封装，Header + Payload.
// T 即不同主题对应的负载结构体.
type Message[T any] struct {
	Header  EventHeader `json:"header"`
	Payload T           `json:"payload"`
}

// -------------------------- 文件领域 --------------------------

// ObjectRef 标识对象存储中的文件负载.
type ObjectRef struct {
	Bucket      string `json:"bucket"`
	ObjectKey   string `json:"object_key"`
	Size        int64  `json:"size,omitempty"`
	ContentType string `json:"content_type,omitempty"`
}

// FileStoredPayload 文件已写入对象存储且元数据落库.
type FileStoredPayload struct {
	FileID   uint      `json:"file_id"`
	EcoleID  uint      `json:"ecole_id"`
	Object   ObjectRef `json:"object"`
	FileName string    `json:"file_name"`
	FileType string    `json:"file_type,omitempty"`
	// UploadedBy 触发上传的账户名.
	UploadedBy string `json:"uploaded_by,omitempty"`
}

// FileUpdatedPayload 文件元数据更新.
type FileUpdatedPayload struct {
	FileID  uint `json:"file_id"`
	EcoleID uint `json:"ecole_id"`
}

// FileDeletedPayload 文件记录与对象负载删除.
type FileDeletedPayload struct {
	FileID  uint      `json:"file_id"`
	EcoleID uint      `json:"ecole_id"`
	Object  ObjectRef `json:"object"`
}

// -------------------------- 学校领域 --------------------------

// EcoleCreatedPayload 学校记录创建.
type EcoleCreatedPayload struct {
	EcoleID uint   `json:"ecole_id"`
	Name    string `json:"name"`
	City    string `json:"city,omitempty"`
}

// EcoleDeletedPayload 学校记录删除，FilesRemoved 为随之清理的文件数.
type EcoleDeletedPayload struct {
	EcoleID      uint `json:"ecole_id"`
	FilesRemoved int  `json:"files_removed,omitempty"`
}

// -------------------------- 账户领域 --------------------------

// AccountRegisteredPayload 新账户注册.
type AccountRegisteredPayload struct {
	UserID   uint   `json:"user_id"`
	Username string `json:"username"`
	Role     string `json:"role,omitempty"`
}
