package utils

import (
	"strings"

	"github.com/google/uuid"
)

// NewID 生成 32 位十六进制 ID（UUID 去掉连字符）
func NewID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}

// ShortToken 生成 n 位短随机串，用于 accountId 冲突时的后缀
func ShortToken(n int) string {
	s := NewID()
	if n <= 0 || n > len(s) {
		return s
	}
	return s[:n]
}

// SanitizeAccountID 只保留半角英数，accountId 列要求 alphanumeric
func SanitizeAccountID(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		}
	}
	return b.String()
}
