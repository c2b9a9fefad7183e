package widget

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeAsker records calls and returns a canned answer or error. When block
// is set, each call signals started and waits for release.
type fakeAsker struct {
	mu      sync.Mutex
	queries []string
	answer  string
	err     error

	block   bool
	started chan struct{}
	release chan struct{}
}

func newFakeAsker(answer string, err error) *fakeAsker {
	return &fakeAsker{answer: answer, err: err}
}

func newBlockingAsker(answer string) *fakeAsker {
	return &fakeAsker{
		answer:  answer,
		block:   true,
		started: make(chan struct{}, 4),
		release: make(chan struct{}),
	}
}

func (f *fakeAsker) Ask(ctx context.Context, query string) (string, error) {
	f.mu.Lock()
	f.queries = append(f.queries, query)
	f.mu.Unlock()

	if f.block {
		f.started <- struct{}{}
		select {
		case <-f.release:
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	return f.answer, f.err
}

func (f *fakeAsker) calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.queries...)
}

func waitStarted(t *testing.T, f *fakeAsker) {
	t.Helper()
	select {
	case <-f.started:
	case <-time.After(2 * time.Second):
		t.Fatal("request was not dispatched")
	}
}

func TestInitialState(t *testing.T) {
	w := New(newFakeAsker("", nil))
	s := w.Snapshot()

	assert.Equal(t, StateClosed, s.State)
	assert.False(t, s.Open)
	assert.False(t, s.Loading)
	assert.Empty(t, s.Query)
	assert.Empty(t, s.Answer)
	assert.NotEmpty(t, w.ID())
}

func TestToggleOpen(t *testing.T) {
	w := New(newFakeAsker("", nil))

	w.ToggleOpen()
	assert.Equal(t, StateIdle, w.State())
	w.ToggleOpen()
	assert.Equal(t, StateClosed, w.State())

	w.ToggleOpen()
	w.Close()
	assert.Equal(t, StateClosed, w.State())
	w.Close()
	assert.Equal(t, StateClosed, w.State())
}

func TestSubmitEmptyQueryIsNoop(t *testing.T) {
	for _, q := range []string{"", "   ", "\t\n "} {
		asker := newFakeAsker("never", nil)
		w := New(asker)
		w.ToggleOpen()
		w.UpdateQuery(q)
		before := w.Snapshot()

		err := w.Submit(context.Background())
		assert.True(t, errors.Is(err, ErrEmptyQuery))
		assert.Empty(t, asker.calls())
		assert.Equal(t, before, w.Snapshot())
	}
}

func TestSubmitSuccess(t *testing.T) {
	asker := newFakeAsker("42", nil)
	w := New(asker)
	w.ToggleOpen()
	w.UpdateQuery("  life  ")

	require.NoError(t, w.Submit(context.Background()))

	s := w.Snapshot()
	assert.Equal(t, "42", s.Answer)
	assert.False(t, s.Loading)
	assert.Equal(t, StateAnswered, s.State)
	assert.Equal(t, "  life  ", s.Query)
	assert.Equal(t, []string{"life"}, asker.calls())
}

func TestSubmitFailure(t *testing.T) {
	asker := newFakeAsker("", errors.New("connection refused"))
	w := New(asker)
	w.ToggleOpen()
	w.UpdateQuery("anything")

	require.NoError(t, w.Submit(context.Background()))

	s := w.Snapshot()
	assert.Equal(t, ErrorMessage, s.Answer)
	assert.False(t, s.Loading)
	assert.Equal(t, StateErrored, s.State)
}

func TestSubmitAfterErrorRecovers(t *testing.T) {
	asker := newFakeAsker("", errors.New("down"))
	w := New(asker)
	w.ToggleOpen()
	w.UpdateQuery("q")
	require.NoError(t, w.Submit(context.Background()))
	require.Equal(t, StateErrored, w.State())

	asker.err = nil
	asker.answer = "back"
	require.NoError(t, w.Submit(context.Background()))
	assert.Equal(t, "back", w.Snapshot().Answer)
	assert.Equal(t, StateAnswered, w.State())
	assert.Len(t, asker.calls(), 2)
}

func TestLoadingUntilSettlement(t *testing.T) {
	asker := newBlockingAsker("done")
	w := New(asker)
	w.ToggleOpen()
	w.UpdateQuery("question")

	errc := make(chan error, 1)
	go func() { errc <- w.Submit(context.Background()) }()
	waitStarted(t, asker)

	s := w.Snapshot()
	assert.True(t, s.Loading)
	assert.Equal(t, StateLoading, s.State)

	close(asker.release)
	require.NoError(t, <-errc)

	s = w.Snapshot()
	assert.False(t, s.Loading)
	assert.Equal(t, "done", s.Answer)
}

func TestSubmitWhileLoadingIsRejected(t *testing.T) {
	asker := newBlockingAsker("first")
	w := New(asker)
	w.ToggleOpen()
	w.UpdateQuery("one")

	errc := make(chan error, 1)
	go func() { errc <- w.Submit(context.Background()) }()
	waitStarted(t, asker)

	w.UpdateQuery("two")
	assert.True(t, errors.Is(w.Submit(context.Background()), ErrBusy))
	assert.True(t, errors.Is(w.KeyPress(context.Background(), CommitKey), ErrBusy))

	close(asker.release)
	require.NoError(t, <-errc)
	assert.Equal(t, []string{"one"}, asker.calls())
	assert.Equal(t, "first", w.Snapshot().Answer)
}

func TestToggleDuringLoadingPreservesState(t *testing.T) {
	asker := newBlockingAsker("late")
	w := New(asker)
	w.ToggleOpen()
	w.UpdateQuery("q")

	errc := make(chan error, 1)
	go func() { errc <- w.Submit(context.Background()) }()
	waitStarted(t, asker)

	w.ToggleOpen()
	s := w.Snapshot()
	assert.Equal(t, StateClosed, s.State)
	assert.True(t, s.Loading)

	// A response arriving while closed still lands.
	close(asker.release)
	require.NoError(t, <-errc)
	assert.Equal(t, "late", w.Snapshot().Answer)

	w.ToggleOpen()
	assert.Equal(t, StateAnswered, w.State())
}

func TestTogglePreservesQueryAndAnswer(t *testing.T) {
	w := New(newFakeAsker("42", nil))
	w.ToggleOpen()
	w.UpdateQuery("life")
	require.NoError(t, w.Submit(context.Background()))

	for i := 0; i < 5; i++ {
		w.ToggleOpen()
		s := w.Snapshot()
		assert.Equal(t, "life", s.Query)
		assert.Equal(t, "42", s.Answer)
		assert.False(t, s.Loading)
	}
}

func TestKeyPress(t *testing.T) {
	asker := newFakeAsker("ok", nil)
	w := New(asker)
	w.ToggleOpen()
	w.UpdateQuery("q")

	require.NoError(t, w.KeyPress(context.Background(), "a"))
	assert.Empty(t, asker.calls())

	require.NoError(t, w.KeyPress(context.Background(), CommitKey))
	assert.Len(t, asker.calls(), 1)
	assert.Equal(t, "ok", w.Snapshot().Answer)
}

func TestDisposeDiscardsLateAnswer(t *testing.T) {
	asker := newBlockingAsker("stale")
	w := New(asker)
	w.ToggleOpen()
	w.UpdateQuery("q")

	errc := make(chan error, 1)
	go func() { errc <- w.Submit(context.Background()) }()
	waitStarted(t, asker)

	w.Dispose()
	require.NoError(t, <-errc)

	s := w.Snapshot()
	assert.Empty(t, s.Answer)
	assert.False(t, s.Loading)
	assert.True(t, errors.Is(w.Submit(context.Background()), ErrDisposed))
}

func TestOnChangeObservesTransitions(t *testing.T) {
	var states []State
	var mu sync.Mutex
	w := New(newFakeAsker("42", nil), WithOnChange(func(s Snapshot) {
		mu.Lock()
		states = append(states, s.State)
		mu.Unlock()
	}))

	w.ToggleOpen()
	w.UpdateQuery("life")
	require.NoError(t, w.Submit(context.Background()))
	w.ToggleOpen()

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []State{StateIdle, StateIdle, StateLoading, StateAnswered, StateClosed}, states)
}

func TestWidgetAgainstHTTPEndpoint(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		if r.URL.Query().Get("query") != "life" {
			http.Error(w, "unexpected query", http.StatusBadRequest)
			return
		}
		_, _ = w.Write([]byte(`{"answer":"42"}`))
	}))

	client, err := NewClient(srv.URL)
	require.NoError(t, err)
	w := New(client)
	w.ToggleOpen()
	w.UpdateQuery("life")
	require.NoError(t, w.Submit(context.Background()))
	assert.Equal(t, "42", w.Snapshot().Answer)
	assert.Equal(t, int32(1), hits.Load())

	// Endpoint gone: the fixed error string replaces the answer.
	srv.Close()
	require.NoError(t, w.Submit(context.Background()))
	s := w.Snapshot()
	assert.Equal(t, ErrorMessage, s.Answer)
	assert.False(t, s.Loading)
}
