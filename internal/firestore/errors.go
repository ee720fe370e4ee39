package firestore

import "strings"

func isSizeMessage(msg string) bool {
	msg = strings.ToLower(msg)
	return strings.Contains(msg, "exceeds the maximum allowed size") ||
		strings.Contains(msg, "too big") ||
		strings.Contains(msg, "maximum size")
}
