package notify

import (
	"testing"
	"time"

	"github.com/goliatone/go-resumegen/pkg/debounce"
)

type manualTimer struct{ stopped bool }

func (m *manualTimer) Stop() bool {
	m.stopped = true
	return true
}

func TestNotifier_AutoDismiss(t *testing.T) {
	var delays []time.Duration
	var callbacks []func()
	n := New(WithAfterFunc(func(d time.Duration, f func()) debounce.Timer {
		delays = append(delays, d)
		callbacks = append(callbacks, f)
		return &manualTimer{}
	}))

	first := n.Success("Saved")
	n.Error("Storage full")
	if got := len(n.Active()); got != 2 {
		t.Fatalf("expected 2 toasts, got %d", got)
	}
	if delays[0] != DefaultDuration+DefaultRemovalDelay {
		t.Fatalf("unexpected dismissal delay %s", delays[0])
	}

	callbacks[0]()
	active := n.Active()
	if len(active) != 1 || active[0].ID == first.ID {
		t.Fatalf("expected first toast dismissed, got %#v", active)
	}
	if active[0].Level != LevelError {
		t.Fatalf("unexpected remaining toast %#v", active[0])
	}
}

func TestNotifier_DismissStopsTimer(t *testing.T) {
	timer := &manualTimer{}
	n := New(WithAfterFunc(func(time.Duration, func()) debounce.Timer { return timer }))
	toast := n.Info("hello")
	n.Dismiss(toast.ID)
	if !timer.stopped {
		t.Fatalf("expected timer stop on dismiss")
	}
	if len(n.Active()) != 0 {
		t.Fatalf("expected no toasts")
	}
	n.Dismiss("unknown")
}
