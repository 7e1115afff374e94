// Package notify keeps transient user-facing messages. Each toast dismisses
// itself after a fixed display time plus a short removal delay.
package notify

import (
	"strconv"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/goliatone/go-resumegen/pkg/debounce"
)

const (
	DefaultDuration     = 3 * time.Second
	DefaultRemovalDelay = 300 * time.Millisecond
)

// Level classifies a toast.
type Level string

const (
	LevelSuccess Level = "success"
	LevelError   Level = "error"
	LevelInfo    Level = "info"
)

// Toast is one visible message.
type Toast struct {
	ID      string `json:"id"`
	Level   Level  `json:"level"`
	Message string `json:"message"`
}

// Option configures a Notifier.
type Option func(*Notifier)

// WithDuration sets how long a toast stays visible.
func WithDuration(d time.Duration) Option {
	return func(n *Notifier) {
		if d > 0 {
			n.duration = d
		}
	}
}

// WithRemovalDelay sets the fade-out delay added after the duration.
func WithRemovalDelay(d time.Duration) Option {
	return func(n *Notifier) {
		if d >= 0 {
			n.removal = d
		}
	}
}

// WithAfterFunc replaces the timer factory.
func WithAfterFunc(fn debounce.AfterFunc) Option {
	return func(n *Notifier) {
		if fn != nil {
			n.after = fn
		}
	}
}

// WithLogger mirrors every toast to the logger.
func WithLogger(logger *zap.Logger) Option {
	return func(n *Notifier) {
		if logger != nil {
			n.logger = logger
		}
	}
}

// Notifier tracks the visible toasts.
type Notifier struct {
	mu       sync.Mutex
	duration time.Duration
	removal  time.Duration
	after    debounce.AfterFunc
	logger   *zap.Logger
	seq      int
	active   []Toast
	timers   map[string]debounce.Timer
}

// New returns a Notifier with the default timings.
func New(opts ...Option) *Notifier {
	n := &Notifier{
		duration: DefaultDuration,
		removal:  DefaultRemovalDelay,
		after: func(d time.Duration, f func()) debounce.Timer {
			return time.AfterFunc(d, f)
		},
		logger: zap.NewNop(),
		timers: make(map[string]debounce.Timer),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(n)
		}
	}
	return n
}

// Show adds a toast and schedules its removal.
func (n *Notifier) Show(level Level, message string) Toast {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.seq++
	toast := Toast{ID: "toast-" + strconv.Itoa(n.seq), Level: level, Message: message}
	n.active = append(n.active, toast)
	n.timers[toast.ID] = n.after(n.duration+n.removal, func() { n.Dismiss(toast.ID) })

	switch level {
	case LevelError:
		n.logger.Warn("notify: "+message, zap.String("toast", toast.ID))
	default:
		n.logger.Info("notify: "+message, zap.String("toast", toast.ID), zap.String("level", string(level)))
	}
	return toast
}

func (n *Notifier) Success(message string) Toast { return n.Show(LevelSuccess, message) }

func (n *Notifier) Error(message string) Toast { return n.Show(LevelError, message) }

func (n *Notifier) Info(message string) Toast { return n.Show(LevelInfo, message) }

// Dismiss removes a toast early.
func (n *Notifier) Dismiss(id string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if t, ok := n.timers[id]; ok {
		t.Stop()
		delete(n.timers, id)
	}
	for i, toast := range n.active {
		if toast.ID == id {
			n.active = append(n.active[:i:i], n.active[i+1:]...)
			return
		}
	}
}

// Active returns the visible toasts, oldest first.
func (n *Notifier) Active() []Toast {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]Toast(nil), n.active...)
}
