// Package tracker holds the in-memory domain model, its persistence
// lifecycle, and the transient workflow state around it. The Tracker is the
// single source of truth: all mutation happens through named operations,
// and every mutation of a loaded collection writes the whole collection
// back to the store.
package tracker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/starford/raido/internal/models"
	"github.com/starford/raido/internal/session"
	"github.com/starford/raido/internal/storage"
)

// Persisted collection keys.
const (
	KeyValueStreams = "valueStreams"
	KeyOneOnOnes    = "oneOnOnes"
	KeyInitiatives  = "initiatives"
)

// ChangeCallback is notified with the collection key after every mutation
// of that collection. It must not call back into the Tracker.
type ChangeCallback func(key string)

// Option is a functional option for configuring the Tracker.
type Option func(*Tracker)

// WithClock overrides the time source.
func WithClock(clock func() time.Time) Option {
	return func(t *Tracker) { t.clock = clock }
}

// WithOnChange registers a change callback.
func WithOnChange(cb ChangeCallback) Option {
	return func(t *Tracker) { t.onChange = cb }
}

// Tracker owns the three persisted collections plus the transient state
// around them: the current selection, the single active closure prompt, and
// the single in-progress session draft.
type Tracker struct {
	mu       sync.Mutex
	store    storage.Provider
	logger   *slog.Logger
	clock    func() time.Time
	onChange ChangeCallback

	valueStreams []models.ValueStream
	initiatives  []models.Initiative
	oneOnOnes    []models.OneOnOne

	// loaded gates saving: a collection may only be written back after
	// its initial load has resolved.
	loaded map[string]bool

	selectedStream     string
	selectedInitiative string
	selectedPerson     string

	prompt *promptTarget
	runner *session.Runner
}

// New creates a Tracker on top of the given store.
func New(store storage.Provider, logger *slog.Logger, opts ...Option) *Tracker {
	if logger == nil {
		logger = slog.Default()
	}
	t := &Tracker{
		store:        store,
		logger:       logger,
		clock:        time.Now,
		valueStreams: []models.ValueStream{},
		initiatives:  []models.Initiative{},
		oneOnOnes:    []models.OneOnOne{},
		loaded:       make(map[string]bool),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Load issues the initial load for each collection exactly once. A missing
// document leaves the default empty collection in place; either way that
// collection's gate opens and later mutations start triggering saves. On a
// load error the gate stays shut, so the empty in-memory default can never
// overwrite previously persisted data. The three loads are independent: one
// failing does not stop the others.
func (t *Tracker) Load(ctx context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	var errs []error
	if err := t.loadValueStreams(ctx); err != nil {
		errs = append(errs, err)
	}
	if err := t.loadOneOnOnes(ctx); err != nil {
		errs = append(errs, err)
	}
	if err := t.loadInitiatives(ctx); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

func (t *Tracker) loadValueStreams(ctx context.Context) error {
	if t.loaded[KeyValueStreams] {
		return nil
	}
	data, err := t.store.Load(ctx, KeyValueStreams)
	if err != nil {
		return fmt.Errorf("load %s: %w", KeyValueStreams, err)
	}
	if data != nil {
		var vs []models.ValueStream
		if err := json.Unmarshal(data, &vs); err != nil {
			return fmt.Errorf("decode %s: %w", KeyValueStreams, err)
		}
		t.valueStreams = vs
	}
	t.loaded[KeyValueStreams] = true
	t.logger.Info("collection loaded",
		slog.String("collection", KeyValueStreams),
		slog.Int("count", len(t.valueStreams)))
	return nil
}

func (t *Tracker) loadOneOnOnes(ctx context.Context) error {
	if t.loaded[KeyOneOnOnes] {
		return nil
	}
	data, err := t.store.Load(ctx, KeyOneOnOnes)
	if err != nil {
		return fmt.Errorf("load %s: %w", KeyOneOnOnes, err)
	}
	if data != nil {
		var oo []models.OneOnOne
		if err := json.Unmarshal(data, &oo); err != nil {
			return fmt.Errorf("decode %s: %w", KeyOneOnOnes, err)
		}
		t.oneOnOnes = oo
	}
	t.loaded[KeyOneOnOnes] = true
	t.logger.Info("collection loaded",
		slog.String("collection", KeyOneOnOnes),
		slog.Int("count", len(t.oneOnOnes)))
	return nil
}

func (t *Tracker) loadInitiatives(ctx context.Context) error {
	if t.loaded[KeyInitiatives] {
		return nil
	}
	data, err := t.store.Load(ctx, KeyInitiatives)
	if err != nil {
		return fmt.Errorf("load %s: %w", KeyInitiatives, err)
	}
	if data != nil {
		ins, err := migrateInitiatives(data)
		if err != nil {
			return fmt.Errorf("decode %s: %w", KeyInitiatives, err)
		}
		// Migrated records are not re-persisted here; the next mutation
		// of the collection writes them back in the new shape.
		t.initiatives = ins
	}
	t.loaded[KeyInitiatives] = true
	t.logger.Info("collection loaded",
		slog.String("collection", KeyInitiatives),
		slog.Int("count", len(t.initiatives)))
	return nil
}

// Loaded reports whether the initial load for key has resolved.
func (t *Tracker) Loaded(key string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.loaded[key]
}

// saveLocked writes the whole collection back when its load gate is open.
// A save failure is logged and otherwise dropped: the in-memory state stays
// ahead of the store until the next successful save. No retry, no user
// notification.
func (t *Tracker) saveLocked(ctx context.Context, key string) {
	if !t.loaded[key] {
		return
	}
	var payload any
	switch key {
	case KeyValueStreams:
		payload = t.valueStreams
	case KeyOneOnOnes:
		payload = t.oneOnOnes
	case KeyInitiatives:
		payload = t.initiatives
	default:
		return
	}
	data, err := json.Marshal(payload)
	if err != nil {
		t.logger.Error("encode collection failed",
			slog.String("collection", key),
			slog.String("error", err.Error()))
		return
	}
	if err := t.store.Save(ctx, key, data); err != nil {
		t.logger.Error("save collection failed",
			slog.String("collection", key),
			slog.String("error", err.Error()))
	}
}

func (t *Tracker) notify(key string) {
	if t.onChange != nil {
		t.onChange(key)
	}
}
