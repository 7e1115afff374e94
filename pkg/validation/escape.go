package validation

import (
	"fmt"
	"strings"
)

var htmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#39;",
)

var blockedSchemes = []string{"javascript:", "data:", "vbscript:"}

// EscapeHTML replaces the five markup-significant characters. nil yields ""
// and other values are stringified first.
func EscapeHTML(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return htmlEscaper.Replace(v)
	default:
		return htmlEscaper.Replace(fmt.Sprint(v))
	}
}

// EscapeHTMLSlice escapes every element; nil yields an empty slice.
func EscapeHTMLSlice(values []string) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = htmlEscaper.Replace(v)
	}
	return out
}

// SanitizeURL trims the input and blanks it when it starts with a script or
// data scheme. Anything else is returned trimmed and otherwise unchanged.
func SanitizeURL(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	lower := strings.ToLower(trimmed)
	for _, scheme := range blockedSchemes {
		if strings.HasPrefix(lower, scheme) {
			return ""
		}
	}
	return trimmed
}

// SafeHref is the value placed in an href attribute: the sanitized URL when
// it is an absolute http(s) URL, "" otherwise.
func SafeHref(raw string) string {
	sanitized := SanitizeURL(raw)
	if sanitized == "" || !ValidateURL(sanitized) {
		return ""
	}
	return sanitized
}
