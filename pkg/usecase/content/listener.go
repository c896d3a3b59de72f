package content

import (
	"context"
	"sync"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/mindfeed-app/mindfeed/pkg/model"
	"github.com/mindfeed-app/mindfeed/pkg/repository"
	"github.com/mindfeed-app/mindfeed/pkg/utils/logging"
)

// DefaultTimeout is the wall-clock ceiling for one generation request
const DefaultTimeout = 60 * time.Second

// State of the result listener
type State string

const (
	StateIdle      State = "idle"
	StateListening State = "listening"
	StateResolved  State = "resolved"
	StateFailed    State = "failed"
	StateTimedOut  State = "timed_out"
)

// Outcome is the terminal result of one listening session. Exactly one of
// Content and Err is set.
type Outcome struct {
	Content *model.GeneratedContent
	Err     error
}

// resultSink receives the terminal transition of a listening session
type resultSink interface {
	Resolve(content *model.GeneratedContent)
	Fail(err error)
}

// Listener watches the response document of one in-flight request and
// drives the sink through at most one terminal transition. When the timeout
// and a late terminal record race, the first one to run its cleanup wins
// and the other is discarded.
type Listener struct {
	repo    repository.Repository
	sink    resultSink
	timeout time.Duration

	mu      sync.Mutex
	state   State
	current *watchSession
}

// watchSession is one subscription/timer pair. Re-entering the listening
// state always builds a fresh session; nothing carries over.
type watchSession struct {
	listener *Listener
	cancel   func()
	timer    *time.Timer
	done     chan Outcome
	once     sync.Once
}

// NewListener creates a listener in the idle state
func NewListener(repo repository.Repository, sink resultSink, timeout time.Duration) *Listener {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Listener{
		repo:    repo,
		sink:    sink,
		timeout: timeout,
		state:   StateIdle,
	}
}

// State returns the current listener state
func (l *Listener) State() State {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.state
}

// Start subscribes to the response document of the given request. Any
// previous session is cancelled synchronously first. The returned channel
// delivers exactly one Outcome unless Stop is called before a terminal
// transition.
func (l *Listener) Start(ctx context.Context, userID string, id model.RequestID) (<-chan Outcome, error) {
	l.Stop()

	l.mu.Lock()
	defer l.mu.Unlock()

	ch, cancel, err := l.repo.WatchGeneratedContent(ctx, userID, id)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to subscribe to content record",
			goerr.V("requestId", id))
	}

	session := &watchSession{
		listener: l,
		cancel:   cancel,
		timer:    time.NewTimer(l.timeout),
		done:     make(chan Outcome, 1),
	}
	l.current = session
	l.state = StateListening

	logging.From(ctx).Debug("listening for generated content",
		"requestId", id, "timeout", l.timeout)

	go session.run(ctx, id, ch)

	return session.done, nil
}

// Stop cancels the active session without emitting an error or touching
// the sink. Safe to call in any state, any number of times.
func (l *Listener) Stop() {
	l.mu.Lock()
	session := l.current
	l.current = nil
	l.state = StateIdle
	l.mu.Unlock()

	if session != nil {
		session.quiet()
	}
}

func (s *watchSession) run(ctx context.Context, id model.RequestID, ch <-chan repository.Snapshot) {
	for {
		select {
		case snap, ok := <-ch:
			if !ok {
				// Subscription released by cancellation
				return
			}
			if snap.Err != nil {
				s.terminal(StateFailed, Outcome{Err: snap.Err})
				return
			}
			if snap.Content == nil {
				// Document absent: request not picked up yet
				continue
			}

			switch snap.Content.Status {
			case model.StatusCompleted:
				if err := snap.Content.Validate(); err != nil {
					s.terminal(StateFailed, Outcome{
						Err: goerr.Wrap(model.ErrGenerationFailed, "malformed content record",
							goerr.V("requestId", id)),
					})
					return
				}
				s.terminal(StateResolved, Outcome{Content: snap.Content})
				return

			case model.StatusError:
				msg := snap.Content.Error
				if msg == "" {
					msg = "generation workflow reported an error"
				}
				s.terminal(StateFailed, Outcome{
					Err: goerr.Wrap(model.ErrGenerationFailed, msg, goerr.V("requestId", id)),
				})
				return

			default:
				// pending, or a status this client does not know: keep waiting
				continue
			}

		case <-s.timer.C:
			s.terminal(StateTimedOut, Outcome{
				Err: goerr.Wrap(model.ErrGenerationTimeout, "no terminal status before deadline",
					goerr.V("requestId", id)),
			})
			return

		case <-ctx.Done():
			s.terminal(StateFailed, Outcome{
				Err: goerr.Wrap(ctx.Err(), "listening interrupted", goerr.V("requestId", id)),
			})
			return
		}
	}
}

// terminal applies a terminal transition at most once per session: cleanup
// first, then the sink update, then the outcome delivery.
func (s *watchSession) terminal(state State, out Outcome) {
	s.once.Do(func() {
		s.cancel()
		s.timer.Stop()

		l := s.listener
		l.mu.Lock()
		if l.current == s {
			l.state = state
			l.current = nil
		}
		l.mu.Unlock()

		if out.Err != nil {
			l.sink.Fail(out.Err)
		} else {
			l.sink.Resolve(out.Content)
		}
		s.done <- out
		close(s.done)
	})
}

// quiet releases the session's subscription and timer without a terminal
// transition; used by Stop for the cancellation path. Closing the outcome
// channel unblocks any waiter without delivering a result.
func (s *watchSession) quiet() {
	s.once.Do(func() {
		s.cancel()
		s.timer.Stop()
		close(s.done)
	})
}
