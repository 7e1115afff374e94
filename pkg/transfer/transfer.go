// Package transfer moves résumé data in and out of the editor as JSON files.
package transfer

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/goliatone/go-resumegen/pkg/model"
	"github.com/goliatone/go-resumegen/pkg/validation"
)

// ErrInvalidImport wraps every reason an import payload is rejected.
var ErrInvalidImport = errors.New("transfer: invalid import")

// DefaultMaxImportBytes caps import payloads read through Import.
const DefaultMaxImportBytes int64 = 1 << 20

const (
	// DefaultFilename is used when the résumé has no name.
	DefaultFilename = "resume.json"
	filenameSuffix  = "_resume.json"
)

type Option func(*Importer)

// WithSchemaValidator enables the schema check after the presence check.
func WithSchemaValidator(v *validation.SchemaValidator) Option {
	return func(i *Importer) {
		i.schema = v
	}
}

// WithMaxBytes overrides the payload cap. Non-positive values keep the default.
func WithMaxBytes(n int64) Option {
	return func(i *Importer) {
		if n > 0 {
			i.maxBytes = n
		}
	}
}

// Importer validates and decodes import payloads.
type Importer struct {
	schema   *validation.SchemaValidator
	maxBytes int64
}

// NewImporter constructs an Importer.
func NewImporter(options ...Option) *Importer {
	i := &Importer{maxBytes: DefaultMaxImportBytes}
	for _, opt := range options {
		if opt != nil {
			opt(i)
		}
	}
	return i
}

// Import reads at most the configured number of bytes from r and parses them.
func (i *Importer) Import(r io.Reader) (model.ResumeData, error) {
	if r == nil {
		return model.ResumeData{}, fmt.Errorf("%w: no payload", ErrInvalidImport)
	}
	raw, err := io.ReadAll(io.LimitReader(r, i.maxBytes+1))
	if err != nil {
		return model.ResumeData{}, fmt.Errorf("transfer: read payload: %w", err)
	}
	if int64(len(raw)) > i.maxBytes {
		return model.ResumeData{}, fmt.Errorf("%w: payload exceeds %d bytes", ErrInvalidImport, i.maxBytes)
	}
	return i.Parse(raw)
}

// Parse accepts raw only when it is a JSON object carrying non-null
// `personal` and `skills` members and, when a schema validator is set, when
// it matches the ResumeData schema.
func (i *Importer) Parse(raw []byte) (model.ResumeData, error) {
	var members map[string]json.RawMessage
	if err := json.Unmarshal(raw, &members); err != nil {
		return model.ResumeData{}, fmt.Errorf("%w: %v", ErrInvalidImport, err)
	}
	for _, key := range []string{"personal", "skills"} {
		value, ok := members[key]
		if !ok || isNull(value) {
			return model.ResumeData{}, fmt.Errorf("%w: missing %q", ErrInvalidImport, key)
		}
	}

	if i.schema != nil {
		if err := i.schema.Validate(raw).Err(); err != nil {
			return model.ResumeData{}, fmt.Errorf("%w: %v", ErrInvalidImport, err)
		}
	}

	var data model.ResumeData
	if err := json.Unmarshal(raw, &data); err != nil {
		return model.ResumeData{}, fmt.Errorf("%w: %v", ErrInvalidImport, err)
	}
	return data.Normalize(), nil
}

// ExportJSON encodes data the way the export file is written: indented, with
// every sequence present.
func ExportJSON(data model.ResumeData) ([]byte, error) {
	out, err := json.MarshalIndent(data.Normalize(), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("transfer: encode export: %w", err)
	}
	return out, nil
}

// ExportFilename is `<name with spaces as underscores>_resume.json`, or
// resume.json when the name is empty.
func ExportFilename(name string) string {
	fields := strings.Fields(name)
	if len(fields) == 0 {
		return DefaultFilename
	}
	joined := strings.Join(fields, "_")
	joined = strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', '"', ':', '*', '?', '<', '>', '|':
			return -1
		}
		return r
	}, joined)
	if joined == "" {
		return DefaultFilename
	}
	return joined + filenameSuffix
}

func isNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}
