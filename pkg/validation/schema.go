package validation

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
)

//go:embed resume.openapi.yaml
var openAPIDocument []byte

// ResumeSchemaName is the component validated by SchemaValidator.
const ResumeSchemaName = "ResumeData"

// OpenAPIDocument returns a copy of the embedded API description.
func OpenAPIDocument() []byte {
	return append([]byte(nil), openAPIDocument...)
}

// SchemaIssue represents a validation error with optional location metadata.
type SchemaIssue struct {
	Path    string `json:"path,omitempty"`
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

// SchemaValidationResult captures the outcome of validating an import payload.
type SchemaValidationResult struct {
	Valid  bool          `json:"valid"`
	Issues []SchemaIssue `json:"issues,omitempty"`
}

// Err folds the issues into one error, nil when valid.
func (r SchemaValidationResult) Err() error {
	if r.Valid {
		return nil
	}
	parts := make([]string, 0, len(r.Issues))
	for _, issue := range r.Issues {
		if issue.Field != "" {
			parts = append(parts, issue.Field+": "+issue.Message)
			continue
		}
		parts = append(parts, issue.Message)
	}
	return errors.New(strings.Join(parts, "; "))
}

// SchemaValidator checks raw JSON against the ResumeData component of the
// embedded OpenAPI document.
type SchemaValidator struct {
	schema *openapi3.Schema
}

// NewSchemaValidator loads and validates the embedded document.
func NewSchemaValidator(ctx context.Context) (*SchemaValidator, error) {
	return NewSchemaValidatorFromData(ctx, openAPIDocument)
}

// NewSchemaValidatorFromData builds a validator from an arbitrary OpenAPI
// document that defines a ResumeData component.
func NewSchemaValidatorFromData(ctx context.Context, data []byte) (*SchemaValidator, error) {
	if len(data) == 0 {
		return nil, errors.New("schema validator: document payload is empty")
	}
	loader := &openapi3.Loader{Context: ctx}
	doc, err := loader.LoadFromData(data)
	if err != nil {
		return nil, fmt.Errorf("schema validator: load document: %w", err)
	}
	if err := doc.Validate(ctx, openapi3.DisableExamplesValidation()); err != nil {
		return nil, fmt.Errorf("schema validator: validate: %w", err)
	}
	if doc.Components == nil {
		return nil, errors.New("schema validator: document has no components")
	}
	ref, ok := doc.Components.Schemas[ResumeSchemaName]
	if !ok || ref == nil || ref.Value == nil {
		return nil, fmt.Errorf("schema validator: component %q not found", ResumeSchemaName)
	}
	return &SchemaValidator{schema: ref.Value}, nil
}

// Validate decodes raw and reports every schema violation.
func (v *SchemaValidator) Validate(raw []byte) SchemaValidationResult {
	var value any
	if err := json.Unmarshal(raw, &value); err != nil {
		return SchemaValidationResult{Issues: []SchemaIssue{{Message: "payload is not valid JSON: " + err.Error()}}}
	}
	return v.ValidateValue(value)
}

// ValidateValue checks an already decoded JSON value.
func (v *SchemaValidator) ValidateValue(value any) SchemaValidationResult {
	err := v.schema.VisitJSON(value, openapi3.MultiErrors())
	if err == nil {
		return SchemaValidationResult{Valid: true}
	}
	var issues []SchemaIssue
	var multi openapi3.MultiError
	if errors.As(err, &multi) {
		for _, item := range multi {
			issues = append(issues, issueFromError(item))
		}
	} else {
		issues = append(issues, issueFromError(err))
	}
	return SchemaValidationResult{Issues: issues}
}

func issueFromError(err error) SchemaIssue {
	if err == nil {
		return SchemaIssue{Message: "unknown error"}
	}
	var schemaErr *openapi3.SchemaError
	if errors.As(err, &schemaErr) {
		pointer := schemaErr.JSONPointer()
		path := ""
		if len(pointer) > 0 {
			path = "/" + strings.Join(pointer, "/")
		}
		msg := strings.TrimSpace(schemaErr.Reason)
		if msg == "" {
			msg = strings.TrimSpace(schemaErr.Error())
		}
		return SchemaIssue{Path: path, Field: fieldPathFromPointer(path), Message: msg}
	}
	return SchemaIssue{Message: strings.TrimSpace(err.Error())}
}

func fieldPathFromPointer(pointer string) string {
	trimmed := strings.TrimPrefix(strings.TrimSpace(pointer), "/")
	if trimmed == "" {
		return ""
	}
	parts := strings.Split(trimmed, "/")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		segment := strings.ReplaceAll(part, "~1", "/")
		segment = strings.ReplaceAll(segment, "~0", "~")
		if segment == "" {
			continue
		}
		out = append(out, segment)
	}
	return strings.Join(out, ".")
}
