// Package errors 存储层通用错误，由 Service 层翻译为业务错误
package errors

import "errors"

var (
	// ErrDuplicateKey 唯一键冲突：同一日期已存在打卡记录
	ErrDuplicateKey = errors.New("记录已存在")

	// ErrNotFound 目标记录不存在
	ErrNotFound = errors.New("记录不存在")
)
