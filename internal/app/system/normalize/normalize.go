// internal/app/system/normalize/normalize.go
package normalize

import "strings"

// Email lowercases and trims an email address so lookups and the
// unique index agree on one canonical form.
func Email(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Name trims surrounding whitespace. Case is preserved; the folded
// name_ci field handles case-insensitive sorting.
func Name(s string) string {
	return strings.TrimSpace(s)
}
