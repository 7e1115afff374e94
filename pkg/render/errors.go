package render

import (
	"strings"

	"github.com/goliatone/go-resumegen/pkg/model"
	"github.com/goliatone/go-resumegen/pkg/validation"
)

// MergeFormErrors concatenates and normalises message slices, trimming
// whitespace and removing duplicates while preserving order.
func MergeFormErrors(existing []string, extras ...string) []string {
	combined := make([]string, 0, len(existing)+len(extras))
	combined = append(combined, existing...)
	combined = append(combined, extras...)
	return normalizeMessages(combined)
}

// ContactErrors maps the inline format checks of the contact block to field
// ids. Valid and empty fields are omitted; nil when nothing is wrong.
func ContactErrors(personal model.Personal) map[string][]string {
	var out map[string][]string
	for _, spec := range model.PersonalFieldSpecs() {
		msg := validation.FieldMessage(spec.ID, personal.Get(spec.ID))
		if msg == "" {
			continue
		}
		if out == nil {
			out = make(map[string][]string)
		}
		out[spec.ID] = MergeFormErrors(out[spec.ID], msg)
	}
	return out
}

func normalizeMessages(messages []string) []string {
	if len(messages) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(messages))
	out := make([]string, 0, len(messages))
	for _, msg := range messages {
		trimmed := strings.TrimSpace(msg)
		if trimmed == "" {
			continue
		}
		if _, ok := seen[trimmed]; ok {
			continue
		}
		seen[trimmed] = struct{}{}
		out = append(out, trimmed)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
