package configs

import (
	"strings"

	"github.com/spf13/viper"
)

const (
	// DefaultMaxUploadSize 默认上传大小上限：10 MiB.
	DefaultMaxUploadSize = 10 << 20
)

// DefaultAllowedExtensions 默认允许的文件扩展名（不含点，小写）.
var DefaultAllowedExtensions = []string{
	"pdf", "jpg", "jpeg", "png", "gif",
	"doc", "docx", "xls", "xlsx", "txt", "csv",
}

// UploadConfig 文件上传限制配置.
type UploadConfig struct {
	MaxSize           int64    `mapstructure:"max_size"           rule:"min=1"`
	AllowedExtensions []string `mapstructure:"allowed_extensions"`
}

// ExtensionAllowed 报告扩展名（不含点，大小写不敏感）是否在允许列表中.
func (c *UploadConfig) ExtensionAllowed(ext string) bool {
	ext = strings.ToLower(strings.TrimPrefix(ext, "."))
	for _, allowed := range c.AllowedExtensions {
		if ext == strings.ToLower(allowed) {
			return true
		}
	}

	return false
}

func (c *UploadConfig) setDefaults(v *viper.Viper) {
	v.SetDefault("upload.max_size", DefaultMaxUploadSize)
	v.SetDefault("upload.allowed_extensions", DefaultAllowedExtensions)
}
