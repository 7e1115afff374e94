package testsupport

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/goliatone/go-resumegen/pkg/model"
)

// MustLoadResume loads a JSON fixture into a ResumeData value.
func MustLoadResume(t testing.TB, path string) model.ResumeData {
	t.Helper()

	data, err := LoadResume(path)
	if err != nil {
		t.Fatalf("load resume: %v", err)
	}
	return data
}

// LoadResume reads a JSON fixture into a ResumeData, returning an error for
// callers managing setup outside of *testing.T.
func LoadResume(path string) (model.ResumeData, error) {
	if path == "" {
		return model.ResumeData{}, errors.New("testsupport: resume path is required")
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return model.ResumeData{}, fmt.Errorf("testsupport: read resume: %w", err)
	}
	var out model.ResumeData
	if err := json.Unmarshal(raw, &out); err != nil {
		return model.ResumeData{}, fmt.Errorf("testsupport: unmarshal resume: %w", err)
	}
	return out.Normalize(), nil
}

// MustMarshal encodes value as JSON or fails the test.
func MustMarshal(t testing.TB, value any) []byte {
	t.Helper()
	raw, err := json.Marshal(value)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	return raw
}

// ExampleResumePath is the export of model.Example kept as a fixture,
// relative to this package.
const ExampleResumePath = "testdata/example_resume.json"

// MustLoadExample loads the example fixture from any package directory.
func MustLoadExample(t testing.TB) model.ResumeData {
	t.Helper()
	_, here, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatalf("testsupport: unable to resolve fixture path")
	}
	return MustLoadResume(t, filepath.Join(filepath.Dir(here), ExampleResumePath))
}

// CaptureTemplateOutput executes a render function that writes to an
// io.Writer, returning both the string result and the writer contents.
func CaptureTemplateOutput(t testing.TB, render func(io.Writer) (string, error)) (string, string) {
	t.Helper()

	var buf bytes.Buffer
	out, err := render(&buf)
	if err != nil {
		t.Fatalf("render template: %v", err)
	}
	return out, buf.String()
}
