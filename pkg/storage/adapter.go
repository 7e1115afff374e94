// Package storage snapshots the résumé aggregate and editor preferences to a
// key/value backend. Every failure is logged and reported as false; nothing
// here panics or retries.
package storage

import (
	"context"
	"encoding/json"
	"errors"

	"go.uber.org/zap"

	"github.com/goliatone/go-resumegen/pkg/model"
)

const (
	// DefaultDataKey is the key the aggregate is stored under.
	DefaultDataKey = "resumeBuilderData"
	// DefaultPrefsKey is the key editor preferences are stored under.
	DefaultPrefsKey = "resumeBuilderPrefs"
)

// Prefs holds editor preferences that survive a restart.
type Prefs struct {
	Format model.Format `json:"format"`
}

// Option configures an Adapter.
type Option func(*Adapter)

// WithLogger sets the logger used to report failures.
func WithLogger(logger *zap.Logger) Option {
	return func(a *Adapter) {
		if logger != nil {
			a.logger = logger
		}
	}
}

// WithDataKey overrides the aggregate key.
func WithDataKey(key string) Option {
	return func(a *Adapter) {
		if key != "" {
			a.dataKey = key
		}
	}
}

// WithPrefsKey overrides the preferences key.
func WithPrefsKey(key string) Option {
	return func(a *Adapter) {
		if key != "" {
			a.prefsKey = key
		}
	}
}

// Adapter reads and writes snapshots through a KV backend.
type Adapter struct {
	kv       KV
	dataKey  string
	prefsKey string
	logger   *zap.Logger
}

// New returns an Adapter over kv; nil kv falls back to an in-memory backend.
func New(kv KV, opts ...Option) *Adapter {
	if kv == nil {
		kv = NewMemoryKV(0)
	}
	a := &Adapter{
		kv:       kv,
		dataKey:  DefaultDataKey,
		prefsKey: DefaultPrefsKey,
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(a)
		}
	}
	return a
}

// DataKey returns the key the aggregate is stored under.
func (a *Adapter) DataKey() string {
	return a.dataKey
}

// Save writes data and reports success.
func (a *Adapter) Save(ctx context.Context, data model.ResumeData) bool {
	raw, err := json.Marshal(data.Normalize())
	if err != nil {
		a.logger.Error("storage: encode resume", zap.Error(err))
		return false
	}
	if err := a.kv.Set(ctx, a.dataKey, raw); err != nil {
		fields := []zap.Field{zap.String("key", a.dataKey), zap.Int("bytes", len(raw)), zap.Error(err)}
		if errors.Is(err, ErrQuotaExceeded) {
			a.logger.Warn("storage: quota exceeded", fields...)
		} else {
			a.logger.Error("storage: save resume", fields...)
		}
		return false
	}
	a.logger.Debug("storage: resume saved", zap.String("key", a.dataKey), zap.Int("bytes", len(raw)))
	return true
}

// Load returns the stored aggregate. Missing, unreadable, unparsable, or
// personal-less snapshots are all reported as absent.
func (a *Adapter) Load(ctx context.Context) (model.ResumeData, bool) {
	raw, ok, err := a.kv.Get(ctx, a.dataKey)
	if err != nil {
		a.logger.Error("storage: load resume", zap.String("key", a.dataKey), zap.Error(err))
		return model.ResumeData{}, false
	}
	if !ok {
		return model.ResumeData{}, false
	}
	var probe map[string]json.RawMessage
	if err := json.Unmarshal(raw, &probe); err != nil {
		a.logger.Warn("storage: stored resume is not valid JSON", zap.Error(err))
		return model.ResumeData{}, false
	}
	if p, ok := probe["personal"]; !ok || string(p) == "null" {
		a.logger.Warn("storage: stored resume has no personal block")
		return model.ResumeData{}, false
	}
	var data model.ResumeData
	if err := json.Unmarshal(raw, &data); err != nil {
		a.logger.Warn("storage: stored resume has an unexpected shape", zap.Error(err))
		return model.ResumeData{}, false
	}
	return data.Normalize(), true
}

// Clear removes the stored aggregate. A missing key is not an error.
func (a *Adapter) Clear(ctx context.Context) bool {
	if err := a.kv.Delete(ctx, a.dataKey); err != nil {
		a.logger.Error("storage: clear resume", zap.String("key", a.dataKey), zap.Error(err))
		return false
	}
	return true
}

// SavePrefs writes editor preferences.
func (a *Adapter) SavePrefs(ctx context.Context, prefs Prefs) bool {
	raw, err := json.Marshal(prefs)
	if err != nil {
		a.logger.Error("storage: encode prefs", zap.Error(err))
		return false
	}
	if err := a.kv.Set(ctx, a.prefsKey, raw); err != nil {
		a.logger.Error("storage: save prefs", zap.String("key", a.prefsKey), zap.Error(err))
		return false
	}
	return true
}

// LoadPrefs returns stored preferences; unknown formats are reported absent.
func (a *Adapter) LoadPrefs(ctx context.Context) (Prefs, bool) {
	raw, ok, err := a.kv.Get(ctx, a.prefsKey)
	if err != nil {
		a.logger.Error("storage: load prefs", zap.String("key", a.prefsKey), zap.Error(err))
		return Prefs{}, false
	}
	if !ok {
		return Prefs{}, false
	}
	var prefs Prefs
	if err := json.Unmarshal(raw, &prefs); err != nil {
		a.logger.Warn("storage: stored prefs are not valid JSON", zap.Error(err))
		return Prefs{}, false
	}
	format, err := model.ParseFormat(string(prefs.Format))
	if err != nil {
		return Prefs{}, false
	}
	prefs.Format = format
	return prefs, true
}
