package orchestrator

import (
	"html"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

// Sanitizer cleans an identity value before it is placed in a UserRecord.
type Sanitizer func(string) string

var (
	strictPolicyOnce sync.Once
	strictPolicy     *bluemonday.Policy
)

// StripMarkup removes every HTML element from value. Entities produced by the
// policy are decoded again so plain text such as "O'Brien" survives intact.
func StripMarkup(value string) string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return ""
	}
	cleaned := html.UnescapeString(strictSanitizer().Sanitize(trimmed))
	return strings.TrimSpace(cleaned)
}

func strictSanitizer() *bluemonday.Policy {
	strictPolicyOnce.Do(func() {
		strictPolicy = bluemonday.StrictPolicy()
	})
	return strictPolicy
}
