package auth

import "strings"

// StripBearer removes the "<scheme> " prefix from an authorization value.
// The scheme is matched case-insensitively; anything else is rejected.
func StripBearer(header, scheme string) (string, bool) {
	header = strings.TrimSpace(header)
	prefixLen := len(scheme) + 1
	if scheme == "" || len(header) <= prefixLen {
		return "", false
	}
	if !strings.EqualFold(header[:len(scheme)], scheme) || header[len(scheme)] != ' ' {
		return "", false
	}

	token := strings.TrimSpace(header[prefixLen:])
	if token == "" {
		return "", false
	}
	return token, true
}
