package domain

import (
	"errors"
	"fmt"
)

// 唯一键冲突涉及的列
const (
	ConflictFieldAccountID       = "account_id"
	ConflictFieldGoogleProfileID = "google_profile_id"
)

// ConflictError 存储层唯一键冲突。Field 为冲突列名，
// 无法判定时为空串。只有带列信息的冲突才允许本地恢复。
type ConflictError struct {
	Field string
	Err   error
}

func (e *ConflictError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("unique constraint violation: %v", e.Err)
	}
	return fmt.Sprintf("unique constraint violation on %s: %v", e.Field, e.Err)
}

func (e *ConflictError) Unwrap() error { return e.Err }

// AsConflict 判定 err 是否为唯一键冲突
func AsConflict(err error) (*ConflictError, bool) {
	var ce *ConflictError
	if errors.As(err, &ce) {
		return ce, true
	}
	return nil, false
}

// ErrUnauthorized 会话校验失败且调用方要求已登录
var ErrUnauthorized = errors.New("unauthorized")
