package repo

import "strings"

// IsDupKey sniffs unique-violation errors by message so we do not depend on
// driver-specific error types across mysql/postgres/sqlite.
func IsDupKey(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate") ||
		strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "unique violation") ||
		strings.Contains(msg, "duplicate key")
}
