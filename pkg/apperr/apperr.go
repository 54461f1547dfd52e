// Package apperr 定义面向 API 边界的错误分类：校验失败、未认证、权限不足、资源不存在.
// 处理器在出口处把它们翻译为对应的 HTTP 状态码，其他错误一律视为 500.
package apperr

import (
	"errors"
	"fmt"
)

// Kind 错误分类.
type Kind int

const (
	KindValidation     Kind = iota + 1 // 400
	KindAuthentication                 // 401
	KindAuthorization                  // 403
	KindNotFound                       // 404
)

// Error 携带分类、消息和可选的字段级明细.
type Error struct {
	Kind    Kind
	Message string
	Fields  map[string]string
}

func (e *Error) Error() string {
	if len(e.Fields) == 0 {
		return e.Message
	}

	return fmt.Sprintf("%s: %v", e.Message, e.Fields)
}

// Validation 构造校验错误.
func Validation(message string) *Error {
	return &Error{Kind: KindValidation, Message: message}
}

// ValidationFields 构造带字段明细的校验错误.
func ValidationFields(message string, fields map[string]string) *Error {
	return &Error{Kind: KindValidation, Message: message, Fields: fields}
}

// Authentication 构造认证错误.
func Authentication(message string) *Error {
	return &Error{Kind: KindAuthentication, Message: message}
}

// Authorization 构造授权错误.
func Authorization(message string) *Error {
	return &Error{Kind: KindAuthorization, Message: message}
}

// NotFound 构造资源不存在错误.
func NotFound(message string) *Error {
	return &Error{Kind: KindNotFound, Message: message}
}

// KindOf 返回错误的分类，未分类时返回 0.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}

	return 0
}

// FieldsOf 返回错误的字段明细（可能为 nil）.
func FieldsOf(err error) map[string]string {
	var e *Error
	if errors.As(err, &e) {
		return e.Fields
	}

	return nil
}
