// Package redact masks personal data before it reaches the logs.
package redact

import "strings"

// Email keeps the first two characters of the local part and the domain:
// "john.doe@example.com" becomes "jo***@example.com". Local parts of two
// characters or fewer are masked entirely.
func Email(email string) string {
	local, domain, ok := strings.Cut(email, "@")
	if !ok || domain == "" || strings.Contains(domain, "@") {
		return "***@***"
	}
	if len(local) > 2 {
		return local[:2] + "***@" + domain
	}
	return "***@" + domain
}
