package validation

import (
	"fmt"
	"net/url"
	"regexp"
	"sort"
	"strings"

	"github.com/goliatone/go-resumegen/pkg/model"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Result carries the outcome of a multi-field check.
type Result struct {
	Valid  bool     `json:"valid"`
	Errors []string `json:"errors,omitempty"`
}

func newResult(errs []string) Result {
	return Result{Valid: len(errs) == 0, Errors: errs}
}

// ValidateEmail reports whether the trimmed input looks like `local@domain.tld`.
func ValidateEmail(email string) bool {
	if email == "" {
		return false
	}
	return emailPattern.MatchString(strings.TrimSpace(email))
}

// ValidatePhone accepts any punctuation as long as 7 to 15 digits remain.
func ValidatePhone(phone string) bool {
	if phone == "" {
		return false
	}
	digits := 0
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			digits++
		}
	}
	return digits >= 7 && digits <= 15
}

// ValidateURL reports whether the trimmed input parses as an http(s) URL
// with a host.
func ValidateURL(raw string) bool {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return false
	}
	parsed, err := url.Parse(trimmed)
	if err != nil {
		return false
	}
	switch strings.ToLower(parsed.Scheme) {
	case "http", "https":
	default:
		return false
	}
	if parsed.Host != "" {
		return true
	}
	// "http:example.com" carries its host in the opaque part.
	host, _, _ := strings.Cut(parsed.Opaque, "/")
	return host != ""
}

// IsNotEmpty reports whether value has content once trimmed. nil is empty;
// other values are stringified.
func IsNotEmpty(value any) bool {
	if value == nil {
		return false
	}
	return strings.TrimSpace(fmt.Sprint(value)) != ""
}

// ValidateRequired checks every named value. Messages are sorted by field
// name so results are stable.
func ValidateRequired(fields map[string]any) Result {
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)

	var errs []string
	for _, name := range names {
		if !IsNotEmpty(fields[name]) {
			errs = append(errs, name+" is required")
		}
	}
	return newResult(errs)
}

// ValidateFormData checks the contact block of a record. Only the name is
// required; the remaining fields are checked when present.
func ValidateFormData(data model.ResumeData) Result {
	p := data.Personal
	var errs []string
	if !IsNotEmpty(p.Name) {
		errs = append(errs, "Name is required")
	}
	if p.Email != "" && !ValidateEmail(p.Email) {
		errs = append(errs, "Invalid email format")
	}
	if p.Mobile != "" && !ValidatePhone(p.Mobile) {
		errs = append(errs, "Invalid phone number format")
	}
	if p.LinkedIn != "" && !ValidateURL(p.LinkedIn) {
		errs = append(errs, "Invalid LinkedIn URL")
	}
	if p.GitHub != "" && !ValidateURL(p.GitHub) {
		errs = append(errs, "Invalid GitHub URL")
	}
	return newResult(errs)
}

// FieldMessage returns the inline feedback for a contact field, or "" when the
// value is empty, valid, or the field has no format rule.
func FieldMessage(fieldID, value string) string {
	if strings.TrimSpace(value) == "" {
		return ""
	}
	switch fieldID {
	case model.FieldEmail:
		if !ValidateEmail(value) {
			return "Invalid email format"
		}
	case model.FieldMobile:
		if !ValidatePhone(value) {
			return "Invalid phone number format"
		}
	case model.FieldLinkedIn:
		if !ValidateURL(value) {
			return "Invalid LinkedIn URL"
		}
	case model.FieldGitHub:
		if !ValidateURL(value) {
			return "Invalid GitHub URL"
		}
	}
	return ""
}
