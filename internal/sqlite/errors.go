package sqlite

import "strings"

func isDiskFull(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "database or disk is full") ||
		strings.Contains(msg, "SQLITE_FULL") ||
		strings.Contains(msg, "string or blob too big")
}
