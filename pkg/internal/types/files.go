package types

import "time"

// FileResponse 文件详情响应，含学校名、上传者名与格式化大小.
type FileResponse struct {
	ID                 uint      `json:"id"`
	Ecole              uint      `json:"ecole"`
	EcoleName          string    `json:"ecole_name"`
	File               string    `json:"file"`
	FileURL            string    `json:"file_url,omitempty"`
	FileName           string    `json:"filename"`
	FileType           string    `json:"file_type"`
	FileSize           int64     `json:"file_size"`
	FileSizeDisplay    string    `json:"file_size_display"`
	MimeType           string    `json:"mime_type"`
	Description        string    `json:"description"`
	UploadedBy         uint      `json:"uploaded_by"`
	UploadedByUsername string    `json:"uploaded_by_username"`
	UploadedAt         time.Time `json:"uploaded_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// FileListItem 文件列表的精简响应项.
type FileListItem struct {
	ID                 uint      `json:"id"`
	FileName           string    `json:"filename"`
	FileType           string    `json:"file_type"`
	FileSize           int64     `json:"file_size"`
	Ecole              uint      `json:"ecole"`
	EcoleName          string    `json:"ecole_name"`
	UploadedByUsername string    `json:"uploaded_by_username"`
	UploadedAt         time.Time `json:"uploaded_at"`
}

// FileUpdateRequest 更新文件请求. 仅描述与所属学校可变，其余元数据字段只读.
type FileUpdateRequest struct {
	Ecole       *uint   `binding:"omitempty" json:"ecole"`
	Description *string `binding:"omitempty" json:"description"`
}

// UploadError 批量上传中单个文件的失败详情.
type UploadError struct {
	FileName string   `json:"filename"`
	Errors   []string `json:"errors"`
}

// MultipleUploadResponse 批量上传结果：部分成功时同时返回成功列表与失败详情.
type MultipleUploadResponse struct {
	Uploaded int            `json:"uploaded"`
	Failed   int            `json:"failed"`
	Files    []FileResponse `json:"files"`
	Errors   []UploadError  `json:"errors,omitempty"`
}
