// Package widget implements the floating chat widget: its interaction state,
// the single outbound request per question, and its HTML view.
package widget

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrorMessage replaces the answer when a request fails for any reason.
const ErrorMessage = "Error: Could not connect to chatbot server."

// CommitKey submits the question while the input has focus.
const CommitKey = "Enter"

var (
	// ErrEmptyQuery is returned by Submit when the trimmed query is empty.
	// Nothing is sent and no state changes.
	ErrEmptyQuery = errors.New("query is empty")

	// ErrBusy is returned by Submit while a previous question is in flight.
	ErrBusy = errors.New("a question is already in flight")

	// ErrDisposed is returned after Dispose.
	ErrDisposed = errors.New("widget disposed")
)

// State is the externally visible state of a widget.
type State string

const (
	StateClosed   State = "closed"
	StateIdle     State = "idle"
	StateLoading  State = "loading"
	StateAnswered State = "answered"
	StateErrored  State = "errored"
)

// Snapshot is a copy of the widget state at one point in time.
type Snapshot struct {
	ID      string
	Query   string
	Answer  string
	Loading bool
	Open    bool
	State   State
}

// Widget holds the state of one chat widget instance. It is safe for
// concurrent use; submissions are serialized by rejecting a second Submit
// while one is loading.
type Widget struct {
	id       string
	asker    Asker
	logger   *zap.Logger
	onChange func(Snapshot)

	mu         sync.Mutex
	query      string
	answer     string
	loading    bool
	open       bool
	phase      State // phase of the panel content, independent of open
	generation uint64
	cancel     context.CancelFunc
	disposed   bool
}

// Option configures a Widget.
type Option func(*Widget)

// WithLogger sets the logger used for request diagnostics.
func WithLogger(l *zap.Logger) Option {
	return func(w *Widget) {
		if l != nil {
			w.logger = l
		}
	}
}

// WithOnChange registers a callback invoked after every state change. The
// callback runs outside the widget lock.
func WithOnChange(fn func(Snapshot)) Option {
	return func(w *Widget) { w.onChange = fn }
}

// New creates a closed, idle widget that asks questions through asker.
func New(asker Asker, opts ...Option) *Widget {
	w := &Widget{
		id:     uuid.NewString(),
		asker:  asker,
		logger: zap.NewNop(),
		phase:  StateIdle,
	}
	for _, opt := range opts {
		opt(w)
	}
	w.logger = w.logger.With(zap.String("widget_id", w.id))
	return w
}

// ID returns the instance id.
func (w *Widget) ID() string { return w.id }

// Snapshot returns the current state.
func (w *Widget) Snapshot() Snapshot {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.snapshotLocked()
}

// State returns the current state machine state.
func (w *Widget) State() State {
	return w.Snapshot().State
}

func (w *Widget) snapshotLocked() Snapshot {
	state := w.phase
	if !w.open {
		state = StateClosed
	}
	return Snapshot{
		ID:      w.id,
		Query:   w.query,
		Answer:  w.answer,
		Loading: w.loading,
		Open:    w.open,
		State:   state,
	}
}

// ToggleOpen flips panel visibility. Everything else is preserved.
func (w *Widget) ToggleOpen() {
	w.mu.Lock()
	w.open = !w.open
	snap := w.snapshotLocked()
	w.mu.Unlock()
	w.notify(snap)
}

// Close hides the panel. It does not abort an in-flight question.
func (w *Widget) Close() {
	w.mu.Lock()
	if !w.open {
		w.mu.Unlock()
		return
	}
	w.open = false
	snap := w.snapshotLocked()
	w.mu.Unlock()
	w.notify(snap)
}

// UpdateQuery replaces the query text without validation.
func (w *Widget) UpdateQuery(text string) {
	w.mu.Lock()
	w.query = text
	snap := w.snapshotLocked()
	w.mu.Unlock()
	w.notify(snap)
}

// KeyPress submits when key is the commit key and ignores every other key.
func (w *Widget) KeyPress(ctx context.Context, key string) error {
	if key != CommitKey {
		return nil
	}
	return w.Submit(ctx)
}

// Submit sends the trimmed query and blocks until the request settles.
// Request failures never propagate: they become ErrorMessage in the answer.
// The returned error only reports why nothing was sent.
func (w *Widget) Submit(ctx context.Context) error {
	w.mu.Lock()
	if w.disposed {
		w.mu.Unlock()
		return ErrDisposed
	}
	query := strings.TrimSpace(w.query)
	if query == "" {
		w.mu.Unlock()
		return ErrEmptyQuery
	}
	if w.loading {
		w.mu.Unlock()
		return ErrBusy
	}

	w.generation++
	gen := w.generation
	reqCtx, cancel := context.WithCancel(ctx)
	w.cancel = cancel
	w.loading = true
	w.phase = StateLoading
	snap := w.snapshotLocked()
	w.mu.Unlock()
	w.notify(snap)

	w.logger.Debug("chat question dispatched", zap.Uint64("generation", gen), zap.Int("query_len", len(query)))
	answer, err := w.asker.Ask(reqCtx, query)
	cancel()

	w.mu.Lock()
	if gen != w.generation || w.disposed {
		w.mu.Unlock()
		w.logger.Debug("discarding stale chat answer", zap.Uint64("generation", gen))
		return nil
	}
	w.cancel = nil
	w.loading = false
	if err != nil {
		w.answer = ErrorMessage
		w.phase = StateErrored
	} else {
		w.answer = answer
		w.phase = StateAnswered
	}
	snap = w.snapshotLocked()
	w.mu.Unlock()

	if err != nil {
		w.logger.Warn("chat question failed", zap.Uint64("generation", gen), zap.Error(err))
	}
	w.notify(snap)
	return nil
}

// Dispose ends the widget's life: the in-flight request, if any, is
// cancelled and its eventual settlement is ignored.
func (w *Widget) Dispose() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.disposed {
		return
	}
	w.disposed = true
	w.generation++
	if w.loading {
		w.loading = false
		w.phase = StateIdle
	}
	if w.cancel != nil {
		w.cancel()
		w.cancel = nil
	}
}

func (w *Widget) notify(s Snapshot) {
	if w.onChange != nil {
		w.onChange(s)
	}
}
