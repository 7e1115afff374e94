package model

import (
	"fmt"
	"strings"
)

// Format selects the preview layout.
type Format string

const (
	FormatGeneral Format = "general"
	FormatCompany Format = "company"
)

// ParseFormat resolves a format name; empty input yields the general format.
func ParseFormat(raw string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(raw))) {
	case "", FormatGeneral:
		return FormatGeneral, nil
	case FormatCompany:
		return FormatCompany, nil
	default:
		return "", fmt.Errorf("model: unknown format %q", raw)
	}
}

// Toggle returns the other format.
func (f Format) Toggle() Format {
	if f == FormatCompany {
		return FormatGeneral
	}
	return FormatCompany
}

// Visibility lists the format-specific parts of the form and preview.
type Visibility struct {
	Location    bool `json:"location"`
	Experiences bool `json:"experiences"`
	Hobbies     bool `json:"hobbies"`
}

// Visibility reports what the format shows: company shows experience and
// location, general shows hobbies.
func (f Format) Visibility() Visibility {
	if f == FormatCompany {
		return Visibility{Location: true, Experiences: true}
	}
	return Visibility{Hobbies: true}
}

// KindVisible reports whether the form section for kind is shown in format.
func (f Format) KindVisible(kind SectionKind) bool {
	v := f.Visibility()
	switch kind {
	case KindExperience:
		return v.Experiences
	case KindHobby:
		return v.Hobbies
	default:
		return true
	}
}
