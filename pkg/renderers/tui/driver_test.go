package tui

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/AlecAivazis/survey/v2/terminal"
)

func TestStringValidator(t *testing.T) {
	var seen []string
	validate := stringValidator(func(s string) error {
		seen = append(seen, s)
		if strings.TrimSpace(s) == "" {
			return errors.New("required")
		}
		return nil
	})

	if err := validate("Ada"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := validate(nil); err == nil || err.Error() != "required" {
		t.Fatalf("expected required error for nil answer, got %v", err)
	}
	if err := validate(42); err != nil {
		t.Fatalf("non-string answers are stringified, got %v", err)
	}
	if got := strings.Join(seen, ","); got != "Ada,,42" {
		t.Fatalf("validator saw %q", got)
	}
}

func TestSurveyDriver_InputHonoursCancelledContext(t *testing.T) {
	driver := newSurveyDriver(&bytes.Buffer{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := driver.Input(ctx, InputConfig{
		Message:   "Name",
		Validator: func(string) error { return nil },
	})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestSurveyDriver_Info(t *testing.T) {
	var out bytes.Buffer
	driver := newSurveyDriver(&out)
	if err := driver.Info(context.Background(), "Resume data imported"); err != nil {
		t.Fatalf("info: %v", err)
	}
	if out.String() != "Resume data imported\n" {
		t.Fatalf("unexpected output %q", out.String())
	}
}

func TestTranslateSurveyErr(t *testing.T) {
	if err := translateSurveyErr(terminal.InterruptErr); !errors.Is(err, ErrAborted) {
		t.Fatalf("expected ErrAborted, got %v", err)
	}
	other := fmt.Errorf("boom")
	if err := translateSurveyErr(other); err != other {
		t.Fatalf("expected passthrough, got %v", err)
	}
	if got := indexOf([]string{"a", "b"}, "b"); got != 1 {
		t.Fatalf("indexOf = %d", got)
	}
	if got := indexOf([]string{"a"}, "z"); got != -1 {
		t.Fatalf("indexOf missing = %d", got)
	}
}
