package httpx

import "strings"

// ExtractBearerToken pulls the opaque session token out of an
// Authorization header. Scheme matching is case-insensitive per RFC 9110.
func ExtractBearerToken(authz string) (string, bool) {
	const prefix = "bearer "
	if len(authz) <= len(prefix) || !strings.EqualFold(authz[:len(prefix)], prefix) {
		return "", false
	}
	tok := strings.TrimSpace(authz[len(prefix):])
	return tok, tok != ""
}
