package content

import (
	"sync"
	"time"

	"github.com/mindfeed-app/mindfeed/pkg/model"
)

// Store is the single authoritative record of in-flight and resolved
// content state. All mutations go through its methods under one lock, so
// the dispatch path and the listener callback never interleave mid-update.
type Store struct {
	mu sync.Mutex

	pendingRequestID model.RequestID
	loading          bool
	current          *model.GeneratedContent
	queue            []*model.GeneratedContent
	history          *Recorder
	err              error
	lastFetchedAt    time.Time
}

// View is a consistent copy of the store state for readers
type View struct {
	PendingRequestID model.RequestID
	Loading          bool
	Current          *model.GeneratedContent
	QueueLen         int
	Err              error
	LastFetchedAt    time.Time
}

// NewStore creates an empty store
func NewStore() *Store {
	return &Store{history: NewRecorder()}
}

// History returns the store's rolling history recorder
func (s *Store) History() *Recorder {
	return s.history
}

// BeginDispatch marks the start of a request. Loading stays true through
// dispatch success because the response is still outstanding; only a
// terminal listener event or a dispatch failure clears it.
func (s *Store) BeginDispatch() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.loading = true
	s.err = nil
}

// MarkPending records the in-flight request ID after a successful dispatch
func (s *Store) MarkPending(id model.RequestID) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.pendingRequestID = id
}

// DispatchFailed records a synchronous dispatch failure. The failed
// request's ID never becomes pending.
func (s *Store) DispatchFailed(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.loading = false
	s.err = err
}

// Resolve stores a completed content item as the current one, clears the
// in-flight state and appends the topic to the rolling history.
func (s *Store) Resolve(content *model.GeneratedContent) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.receive(content)
	s.current = content
}

// ResolveQueued stores a completed content item at the tail of the queue
// instead of replacing the current one (prefetch mode).
func (s *Store) ResolveQueued(content *model.GeneratedContent) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.receive(content)
	s.queue = append(s.queue, content)
}

// receive clears in-flight state and records history; callers hold the lock
func (s *Store) receive(content *model.GeneratedContent) {
	s.pendingRequestID = ""
	s.loading = false
	s.err = nil
	s.lastFetchedAt = time.Now()
	s.history.Record(model.NewHistoryEntry(content))
}

// Fail records a terminal failure and clears the in-flight state, leaving
// the current content and history untouched.
func (s *Store) Fail(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.pendingRequestID = ""
	s.loading = false
	s.err = err
}

// Cancel clears the in-flight state without recording an error
func (s *Store) Cancel() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.pendingRequestID = ""
	s.loading = false
}

// Advance pops the head of the queue into the current slot. Returns nil
// when the queue is empty, leaving the current content in place.
func (s *Store) Advance() *model.GeneratedContent {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.queue) == 0 {
		return nil
	}

	next := s.queue[0]
	s.queue = s.queue[1:]
	s.current = next
	return next
}

// ClearCurrent drops the current content if it belongs to the given
// request, e.g. when the item it shows has just been unsaved.
func (s *Store) ClearCurrent(id model.RequestID) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current != nil && s.current.RequestID == id {
		s.current = nil
	}
}

// PendingRequestID returns the in-flight request ID, if any
func (s *Store) PendingRequestID() model.RequestID {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pendingRequestID
}

// Snapshot returns a consistent copy of the store state
func (s *Store) Snapshot() View {
	s.mu.Lock()
	defer s.mu.Unlock()

	view := View{
		PendingRequestID: s.pendingRequestID,
		Loading:          s.loading,
		QueueLen:         len(s.queue),
		Err:              s.err,
		LastFetchedAt:    s.lastFetchedAt,
	}
	if s.current != nil {
		copied := *s.current
		view.Current = &copied
	}
	return view
}
