package vanilla

// ChromeClass is a typed identifier for the CSS classes the editor runtime
// and stylesheet key off.
type ChromeClass string

const (
	ClassSection      ChromeClass = "form-section"
	ClassLegend       ChromeClass = "form-legend"
	ClassField        ChromeClass = "form-field"
	ClassInput        ChromeClass = "form-input"
	ClassRemoveButton ChromeClass = "remove-section-btn"
	ClassAddButton    ChromeClass = "add-section-btn"
	ClassSidebarLink  ChromeClass = "sidebar-link"
	ClassFormContent  ChromeClass = "form-content"
	ClassFieldError   ChromeClass = "field-error"
	ClassPreview      ChromeClass = "resume-preview"
)

// chromeClasses is handed to every template as `classes`.
func chromeClasses() map[string]string {
	return map[string]string{
		"section":     string(ClassSection),
		"legend":      string(ClassLegend),
		"field":       string(ClassField),
		"input":       string(ClassInput),
		"remove":      string(ClassRemoveButton),
		"add":         string(ClassAddButton),
		"sidebarLink": string(ClassSidebarLink),
		"formContent": string(ClassFormContent),
		"fieldError":  string(ClassFieldError),
		"preview":     string(ClassPreview),
	}
}
