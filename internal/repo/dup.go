package repo

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

// isDupKey 不只依赖 gorm.ErrDuplicatedKey，避免驱动/版本差异
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
