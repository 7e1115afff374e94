package gotemplate

import (
	"strings"

	"github.com/flosch/pongo2/v6"

	"github.com/goliatone/go-resumegen/pkg/model"
	"github.com/goliatone/go-resumegen/pkg/validation"
)

// Filters registered on every engine. Each returns a plain (unsafe) value so
// autoescaping still applies to the result.
var defaultFilters = map[string]pongo2.FilterFunction{
	"trim":         filterTrim,
	"sanitize_url": filterSanitizeURL,
	"safe_href":    filterSafeHref,
	"grade":        filterGrade,
	"handle":       filterHandle,
}

func registerDefaultFilters() {
	for name, fn := range defaultFilters {
		if !pongo2.FilterExists(name) {
			_ = pongo2.RegisterFilter(name, fn)
		}
	}
}

func filterTrim(in *pongo2.Value, _ *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	if in.IsNil() {
		return pongo2.AsValue(""), nil
	}
	return pongo2.AsValue(strings.TrimSpace(in.String())), nil
}

func filterSanitizeURL(in *pongo2.Value, _ *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	if in.IsNil() {
		return pongo2.AsValue(""), nil
	}
	return pongo2.AsValue(validation.SanitizeURL(in.String())), nil
}

// filterSafeHref only lets absolute http(s) URLs through.
func filterSafeHref(in *pongo2.Value, _ *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	if in.IsNil() {
		return pongo2.AsValue(""), nil
	}
	return pongo2.AsValue(validation.SafeHref(in.String())), nil
}

// filterGrade formats a grade with its type: `{{ e.grade|grade:e.gradeType }}`.
func filterGrade(in *pongo2.Value, param *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	gradeType := ""
	if param != nil && !param.IsNil() {
		gradeType = param.String()
	}
	if in.IsNil() {
		return pongo2.AsValue(""), nil
	}
	return pongo2.AsValue(FormatGrade(in.String(), gradeType)), nil
}

func filterHandle(in *pongo2.Value, _ *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	if in.IsNil() {
		return pongo2.AsValue(""), nil
	}
	return pongo2.AsValue(ProfileHandle(in.String())), nil
}

// FormatGrade renders "CGPA: 3.8" for cgpa grades and "76%" otherwise.
// An empty grade renders nothing.
func FormatGrade(grade, gradeType string) string {
	grade = strings.TrimSpace(grade)
	if grade == "" {
		return ""
	}
	if gradeType == model.GradeTypeCGPA {
		return "CGPA: " + grade
	}
	return grade + "%"
}

// ProfileHandle returns the last non-empty path segment of a profile URL.
func ProfileHandle(raw string) string {
	parts := strings.Split(raw, "/")
	for i := len(parts) - 1; i >= 0; i-- {
		if segment := strings.TrimSpace(parts[i]); segment != "" {
			return segment
		}
	}
	return ""
}
