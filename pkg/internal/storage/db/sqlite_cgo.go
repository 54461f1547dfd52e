//go:build !no_sqlite && cgo

package db

import (
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/yeisme/ecolevault/pkg/configs"
)

// createSQLiteDialector 创建 SQLite dialector（CGo 版本）.
func createSQLiteDialector(dsn string) gorm.Dialector {
	return sqlite.Open(dsn)
}

// 注册 SQLite dialector 工厂函数（CGo 版本）.
func init() {
	RegisterDialectorFactory(configs.SQLite, createSQLiteDialector)
}
