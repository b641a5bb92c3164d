package progress

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/alexanderramin/wisemind/internal/domain"
)

// StateStore reads and replaces the shared pre-treatment state document.
// *api.Client satisfies it.
type StateStore interface {
	PreTreatmentState(ctx context.Context) (domain.PreTreatmentState, error)
	UpdatePreTreatmentState(ctx context.Context, s domain.PreTreatmentState) (domain.PreTreatmentState, error)
}

// Result describes what one Observe call did.
type Result int

const (
	// Ignored means the step did not exceed the watermark.
	Ignored Result = iota
	// Written means the counter was updated remotely.
	Written
	// AlreadyRecorded means the server already held the step or higher.
	AlreadyRecorded
	// Failed means the round trip failed and the watermark was rolled back.
	Failed
)

func (r Result) String() string {
	switch r {
	case Ignored:
		return "ignored"
	case Written:
		return "written"
	case AlreadyRecorded:
		return "already_recorded"
	case Failed:
		return "failed"
	}
	return "unknown"
}

// Tracker persists forward-only increases of one counter for the lifetime
// of a screen. The read-modify-write against the server is not atomic; the
// last writer wins.
type Tracker struct {
	store   StateStore
	counter domain.Counter
	logger  *slog.Logger

	mu       sync.Mutex
	previous int

	// writeMu serializes round trips so one tracker never sends a lower
	// step after a higher one.
	writeMu sync.Mutex
}

// TrackerOption configures a Tracker.
type TrackerOption func(*Tracker)

// WithLogger sets the logger used for failed writes.
func WithLogger(l *slog.Logger) TrackerOption {
	return func(t *Tracker) { t.logger = l }
}

// WithWatermark seeds the previously recorded step.
func WithWatermark(step int) TrackerOption {
	return func(t *Tracker) { t.previous = step }
}

func NewTracker(store StateStore, counter domain.Counter, opts ...TrackerOption) (*Tracker, error) {
	if !counter.Valid() {
		return nil, fmt.Errorf("unknown counter %q", counter)
	}
	t := &Tracker{
		store:   store,
		counter: counter,
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t, nil
}

func (t *Tracker) Counter() domain.Counter { return t.counter }

// Watermark returns the highest step this tracker considers recorded.
func (t *Tracker) Watermark() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.previous
}

// Observe reports a freshly computed step. Only a step above the watermark
// triggers a write, and only this tracker's counter is changed. On failure
// the watermark drops to step-1 so the next increase retries.
func (t *Tracker) Observe(ctx context.Context, step int) (Result, error) {
	step = min(step, t.counter.Max())

	t.mu.Lock()
	if step <= t.previous {
		t.mu.Unlock()
		return Ignored, nil
	}
	t.previous = step
	t.mu.Unlock()

	result, err := t.persist(ctx, step)
	if err != nil {
		t.mu.Lock()
		if t.previous == step {
			t.previous = step - 1
		}
		t.mu.Unlock()
		t.logger.ErrorContext(ctx, "progress_write_failed",
			"counter", string(t.counter),
			"step", step,
			"error", err.Error(),
		)
		return Failed, err
	}
	t.logger.DebugContext(ctx, "progress_write",
		"counter", string(t.counter),
		"step", step,
		"result", result.String(),
	)
	return result, nil
}

func (t *Tracker) persist(ctx context.Context, step int) (Result, error) {
	t.writeMu.Lock()
	defer t.writeMu.Unlock()

	current, err := t.store.PreTreatmentState(ctx)
	if err != nil {
		return Failed, fmt.Errorf("reading pre-treatment state: %w", err)
	}
	if current.Counter(t.counter) >= step {
		return AlreadyRecorded, nil
	}
	updated, err := current.WithCounter(t.counter, step)
	if err != nil {
		return Failed, err
	}
	if _, err := t.store.UpdatePreTreatmentState(ctx, updated); err != nil {
		return Failed, fmt.Errorf("writing %s=%d: %w", t.counter, step, err)
	}
	return Written, nil
}
