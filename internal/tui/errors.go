package tui

import "strings"

// humanizeNetworkError folds the usual dial/timeout noise into one operator
// friendly line, anything else keeps its own message.
func humanizeNetworkError(err error) string {
	if err == nil {
		return ""
	}

	s := strings.ToLower(err.Error())
	if strings.Contains(s, "connection refused") ||
		strings.Contains(s, "dial tcp") ||
		strings.Contains(s, "no such host") ||
		strings.Contains(s, "network is unreachable") ||
		strings.Contains(s, "i/o timeout") ||
		strings.Contains(s, "context deadline exceeded") {
		return "No network or the backend is unreachable"
	}

	return err.Error()
}
