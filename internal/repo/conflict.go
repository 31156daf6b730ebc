package repo

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"sns-api/internal/domain"
)

// classifyConflict 把驱动返回的唯一键冲突归一化为 domain.ConflictError，
// 并尽量带上冲突列。不依赖 gorm.ErrDuplicatedKey 的文案，mysql/postgres
// 的报错格式都按子串匹配兜底。
func classifyConflict(err error) error {
	if err == nil {
		return nil
	}
	if !isDupKey(err) {
		return err
	}
	return &domain.ConflictError{Field: conflictField(err), Err: err}
}

func isDupKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate") ||
		strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "unique violation") ||
		strings.Contains(msg, "duplicate key")
}

// conflictField 从报错文案里认列名。postgres 会给出约束名/列名，
// mysql 给出索引名，两者都含下划线列名，直接找子串。
func conflictField(err error) string {
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, domain.ConflictFieldGoogleProfileID):
		return domain.ConflictFieldGoogleProfileID
	case strings.Contains(msg, domain.ConflictFieldAccountID):
		return domain.ConflictFieldAccountID
	}
	return ""
}
