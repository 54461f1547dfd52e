package service

import (
	"fmt"
	"mime"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/yeisme/ecolevault/pkg/configs"
	"github.com/yeisme/ecolevault/pkg/internal/model"
)

// extTypeMapping 扩展名到文件类型的映射，未命中一律归为 other.
var extTypeMapping = map[string]string{
	".pdf":  model.FileTypePDF,
	".jpg":  model.FileTypeImage,
	".jpeg": model.FileTypeImage,
	".png":  model.FileTypeImage,
	".gif":  model.FileTypeImage,
	".doc":  model.FileTypeDocument,
	".docx": model.FileTypeDocument,
	".xls":  model.FileTypeSpreadsheet,
	".xlsx": model.FileTypeSpreadsheet,
	".csv":  model.FileTypeSpreadsheet,
	".txt":  model.FileTypeText,
}

// DetermineFileType 按扩展名归类文件类型.
func DetermineFileType(filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	if t, ok := extTypeMapping[ext]; ok {
		return t
	}

	return model.FileTypeOther
}

// GuessMimeType 按扩展名推测 MIME 类型，推测失败返回 application/octet-stream.
func GuessMimeType(filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))

	mimeType := mime.TypeByExtension(ext)
	if mimeType == "" {
		return "application/octet-stream"
	}

	// 去掉 charset 等参数，只留媒体类型本体
	if i := strings.Index(mimeType, ";"); i >= 0 {
		mimeType = mimeType[:i]
	}

	return strings.TrimSpace(mimeType)
}

// BuildObjectKey 构建对象存储键：schools/{ecoleID}/files/{filename}，按学校隔离命名空间.
func BuildObjectKey(ecoleID uint, filename string) string {
	return fmt.Sprintf("schools/%d/files/%s", ecoleID, filepath.Base(filename))
}

// AlternativeFileName 在扩展名前插入随机短后缀，生成一个不同的文件名.
// 同一所学校出现同名上传时用它避让，否则两条记录会共享一个对象键.
func AlternativeFileName(filename string) string {
	ext := filepath.Ext(filename)
	stem := strings.TrimSuffix(filename, ext)
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:7]

	return fmt.Sprintf("%s_%s%s", stem, suffix, ext)
}

// FormatFileSize 把字节数格式化为可读形式：B / KB / MB，保留两位小数.
func FormatFileSize(size int64) string {
	switch {
	case size < 1024:
		return fmt.Sprintf("%d B", size)
	case size < 1024*1024:
		return fmt.Sprintf("%.2f KB", float64(size)/1024)
	default:
		return fmt.Sprintf("%.2f MB", float64(size)/(1024*1024))
	}
}

// ValidateUpload 校验上传负载的扩展名与大小，返回人类可读的失败原因列表.
func ValidateUpload(cfg *configs.UploadConfig, filename string, size int64) []string {
	var reasons []string

	ext := strings.ToLower(filepath.Ext(filename))
	if !cfg.ExtensionAllowed(ext) {
		reasons = append(reasons, fmt.Sprintf("file extension %q is not allowed", ext))
	}

	if size > cfg.MaxSize {
		reasons = append(reasons, fmt.Sprintf("file size exceeds the %d MB limit", cfg.MaxSize>>20))
	}

	return reasons
}
