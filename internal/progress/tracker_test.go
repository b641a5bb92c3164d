package progress

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"sync"
	"testing"

	"github.com/alexanderramin/wisemind/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memoryStore is a StateStore over an in-memory JSON document.
type memoryStore struct {
	mu       sync.Mutex
	doc      []byte
	writes   []int
	counter  domain.Counter
	failGet  error
	failPut  error
	getCalls int
}

func newMemoryStore(t *testing.T, doc string, counter domain.Counter) *memoryStore {
	t.Helper()
	return &memoryStore{doc: []byte(doc), counter: counter}
}

func (m *memoryStore) PreTreatmentState(context.Context) (domain.PreTreatmentState, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.getCalls++
	if m.failGet != nil {
		return domain.PreTreatmentState{}, m.failGet
	}
	var s domain.PreTreatmentState
	err := json.Unmarshal(m.doc, &s)
	return s, err
}

func (m *memoryStore) UpdatePreTreatmentState(_ context.Context, s domain.PreTreatmentState) (domain.PreTreatmentState, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failPut != nil {
		return domain.PreTreatmentState{}, m.failPut
	}
	data, err := json.Marshal(s)
	if err != nil {
		return domain.PreTreatmentState{}, err
	}
	m.doc = data
	m.writes = append(m.writes, s.Counter(m.counter))
	return s, nil
}

func (m *memoryStore) snapshot() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return string(m.doc)
}

func newTracker(t *testing.T, store StateStore, c domain.Counter, opts ...TrackerOption) *Tracker {
	t.Helper()
	tr, err := NewTracker(store, c, opts...)
	require.NoError(t, err)
	return tr
}

func TestTracker_WritesOnlyIncreases(t *testing.T) {
	store := newMemoryStore(t, `{}`, domain.CounterDBTSkills)
	tr := newTracker(t, store, domain.CounterDBTSkills)
	ctx := context.Background()

	for _, step := range []int{1, 2, 2, 1, 4, 3, 5, 2, 6, 6, 1} {
		_, err := tr.Observe(ctx, step)
		require.NoError(t, err)
	}

	assert.Equal(t, []int{1, 2, 4, 5, 6}, store.writes)
	assert.Equal(t, 6, tr.Watermark())
}

func TestTracker_MonotonicAcrossScrollSession(t *testing.T) {
	store := newMemoryStore(t, `{}`, domain.CounterAboutDBT)
	tr := newTracker(t, store, domain.CounterAboutDBT)
	scroll := NewScrollProgress(3)
	ctx := context.Background()

	for _, f := range []float64{0, 0.2, 0.4, 0.1, 0.7, 0.3, 0.99, 0.0, 0.5} {
		_, err := tr.Observe(ctx, scroll.Update(f))
		require.NoError(t, err)
	}

	assert.Equal(t, []int{1, 2, 3}, store.writes)
	for i := 1; i < len(store.writes); i++ {
		assert.GreaterOrEqual(t, store.writes[i], store.writes[i-1])
	}
}

func TestTracker_ChangesOnlyItsCounter(t *testing.T) {
	store := newMemoryStore(t,
		`{"stepsCompleted":2,"dbtOverviewPartsCompleted":{"aboutDBT":3,"dbtSkills":1},"note":"keep"}`,
		domain.CounterDBTSkills)
	tr := newTracker(t, store, domain.CounterDBTSkills)

	result, err := tr.Observe(context.Background(), 2)

	require.NoError(t, err)
	assert.Equal(t, Written, result)
	assert.JSONEq(t,
		`{"stepsCompleted":2,"dbtOverviewPartsCompleted":{"aboutDBT":3,"dbtSkills":2},"note":"keep"}`,
		store.snapshot())
}

func TestTracker_StepsCompletedIsTopLevel(t *testing.T) {
	store := newMemoryStore(t, `{"dbtOverviewPartsCompleted":{"aboutDBT":1}}`, domain.CounterStepsCompleted)
	tr := newTracker(t, store, domain.CounterStepsCompleted)

	_, err := tr.Observe(context.Background(), 3)

	require.NoError(t, err)
	assert.JSONEq(t, `{"stepsCompleted":3,"dbtOverviewPartsCompleted":{"aboutDBT":1}}`, store.snapshot())
}

func TestTracker_PutFailureRollsBackWatermark(t *testing.T) {
	const before = `{"dbtOverviewPartsCompleted":{"dbtJourney":1}}`
	store := newMemoryStore(t, before, domain.CounterDBTJourney)
	store.failPut = errors.New("HTTP 500")
	var logs bytes.Buffer
	tr := newTracker(t, store, domain.CounterDBTJourney,
		WithWatermark(1),
		WithLogger(slog.New(slog.NewTextHandler(&logs, nil))))

	result, err := tr.Observe(context.Background(), 2)

	assert.Error(t, err)
	assert.Equal(t, Failed, result)
	assert.Equal(t, 1, tr.Watermark())
	assert.JSONEq(t, before, store.snapshot())
	assert.Contains(t, logs.String(), "progress_write_failed")
	assert.Contains(t, logs.String(), "counter=dbtJourney")
}

func TestTracker_GetFailureRollsBackAndRetries(t *testing.T) {
	store := newMemoryStore(t, `{}`, domain.CounterAboutDBT)
	store.failGet = errors.New("offline")
	tr := newTracker(t, store, domain.CounterAboutDBT)
	ctx := context.Background()

	_, err := tr.Observe(ctx, 2)
	require.Error(t, err)
	assert.Equal(t, 1, tr.Watermark())
	assert.Empty(t, store.writes)

	store.failGet = nil
	result, err := tr.Observe(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, Written, result)
	assert.Equal(t, []int{2}, store.writes)
}

func TestTracker_SkipsWriteWhenServerAhead(t *testing.T) {
	store := newMemoryStore(t, `{"dbtOverviewPartsCompleted":{"dbtSkills":5}}`, domain.CounterDBTSkills)
	tr := newTracker(t, store, domain.CounterDBTSkills)

	result, err := tr.Observe(context.Background(), 3)

	require.NoError(t, err)
	assert.Equal(t, AlreadyRecorded, result)
	assert.Empty(t, store.writes, "never write a value below what was read")
	assert.Equal(t, 3, tr.Watermark())
}

func TestTracker_ClampsToCounterMax(t *testing.T) {
	store := newMemoryStore(t, `{}`, domain.CounterAboutDBT)
	tr := newTracker(t, store, domain.CounterAboutDBT)

	_, err := tr.Observe(context.Background(), 9)

	require.NoError(t, err)
	assert.Equal(t, []int{3}, store.writes)
	assert.Equal(t, 3, tr.Watermark())
}

func TestTracker_TerminalStepWritesOnce(t *testing.T) {
	store := newMemoryStore(t, `{}`, domain.CounterDBTJourney)
	tr := newTracker(t, store, domain.CounterDBTJourney)
	ctx := context.Background()

	_, _ = tr.Observe(ctx, 4)
	_, _ = tr.Observe(ctx, 4)
	result, _ := tr.Observe(ctx, 4)

	assert.Equal(t, Ignored, result)
	assert.Equal(t, 1, store.getCalls)
}

func TestTracker_ConcurrentObservationsStayMonotonic(t *testing.T) {
	store := newMemoryStore(t, `{}`, domain.CounterDBTSkills)
	tr := newTracker(t, store, domain.CounterDBTSkills)
	ctx := context.Background()

	var wg sync.WaitGroup
	for step := 1; step <= 6; step++ {
		wg.Add(1)
		go func(s int) {
			defer wg.Done()
			_, _ = tr.Observe(ctx, s)
		}(step)
	}
	wg.Wait()

	assert.Equal(t, 6, tr.Watermark())
	for i := 1; i < len(store.writes); i++ {
		assert.Greater(t, store.writes[i], store.writes[i-1])
	}
}

func TestNewTracker_RejectsUnknownCounter(t *testing.T) {
	_, err := NewTracker(newMemoryStore(t, `{}`, ""), domain.Counter("bogus"))
	assert.Error(t, err)
}
