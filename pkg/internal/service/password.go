package service

import (
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/crypto/bcrypt"

	"github.com/yeisme/ecolevault/pkg/apperr"
	"github.com/yeisme/ecolevault/pkg/configs"
)

// commonPasswords 高频弱口令，注册时直接拒绝.
var commonPasswords = map[string]struct{}{
	"password":    {},
	"password1":   {},
	"password123": {},
	"12345678":    {},
	"123456789":   {},
	"1234567890":  {},
	"qwerty123":   {},
	"qwertyuiop":  {},
	"iloveyou":    {},
	"admin123":    {},
	"letmein":     {},
	"welcome1":    {},
	"sunshine":    {},
	"football":    {},
	"monkey123":   {},
}

// ValidatePassword 按注册口令规则校验：最小长度、与用户名过于相似、
// 常见弱口令、纯数字. 任一失败返回 password 字段的校验错误.
func ValidatePassword(cfg *configs.AuthConfig, username, password string) error {
	if len(password) < cfg.PasswordMinLength {
		return passwordError(fmt.Sprintf("password must contain at least %d characters", cfg.PasswordMinLength))
	}

	lowerPass := strings.ToLower(password)
	lowerUser := strings.ToLower(strings.TrimSpace(username))

	if lowerUser != "" && (strings.Contains(lowerPass, lowerUser) || strings.Contains(lowerUser, lowerPass)) {
		return passwordError("password is too similar to the username")
	}

	if _, ok := commonPasswords[lowerPass]; ok {
		return passwordError("password is too common")
	}

	if isNumeric(password) {
		return passwordError("password cannot be entirely numeric")
	}

	return nil
}

func passwordError(msg string) error {
	return apperr.ValidationFields("invalid password", map[string]string{"password": msg})
}

func isNumeric(s string) bool {
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}

	return len(s) > 0
}

// HashPassword 生成 bcrypt 散列.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}

	return string(hash), nil
}

// CheckPassword 校验明文与散列是否匹配.
func CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
