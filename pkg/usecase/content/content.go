package content

import (
	"context"
	"io"
	"sync"
	"time"

	"github.com/mindfeed-app/mindfeed/pkg/adapter"
	"github.com/mindfeed-app/mindfeed/pkg/model"
	"github.com/mindfeed-app/mindfeed/pkg/repository"
	"github.com/mindfeed-app/mindfeed/pkg/utils/logging"
)

// UseCase coordinates content requests: dispatching to the generation
// webhook, listening for the out-of-band response and maintaining the
// session state store.
type UseCase struct {
	repo    repository.Repository
	webhook adapter.Webhook
	storage adapter.Storage
	store   *Store

	userID  string
	profile *model.Profile
	timeout time.Duration

	mu     sync.Mutex
	active *Listener
}

// Option is a functional option for UseCase
type Option func(*UseCase)

// WithStorage enables article body archival to object storage
func WithStorage(storage adapter.Storage) Option {
	return func(uc *UseCase) {
		uc.storage = storage
	}
}

// WithTimeout overrides the default per-request listening timeout
func WithTimeout(timeout time.Duration) Option {
	return func(uc *UseCase) {
		uc.timeout = timeout
	}
}

// New creates a new content UseCase instance
func New(repo repository.Repository, webhook adapter.Webhook, userID string, profile *model.Profile, opts ...Option) *UseCase {
	uc := &UseCase{
		repo:    repo,
		webhook: webhook,
		store:   NewStore(),
		userID:  userID,
		profile: profile,
		timeout: DefaultTimeout,
	}

	for _, opt := range opts {
		opt(uc)
	}

	return uc
}

// Store returns the session state store
func (u *UseCase) Store() *Store {
	return u.store
}

// LoadHistory seeds the rolling history from its durable mirror so the
// anti-repetition hint survives across sessions.
func (u *UseCase) LoadHistory(ctx context.Context) error {
	entries, err := u.repo.ListHistory(ctx, u.userID, model.HistoryLimit)
	if err != nil {
		return err
	}
	u.store.History().Seed(entries)
	return nil
}

// Cancel clears the in-flight request, synchronously releasing its
// subscription and timer. No error is recorded.
func (u *UseCase) Cancel() {
	u.mu.Lock()
	listener := u.active
	u.active = nil
	u.mu.Unlock()

	if listener != nil {
		listener.Stop()
	}
	u.store.Cancel()
}

// Advance pops the next prefetched item from the queue into the current
// slot. Returns nil when the queue is empty.
func (u *UseCase) Advance() *model.GeneratedContent {
	return u.store.Advance()
}

// Show retrieves a generated content record. When the document carries no
// body but an archive is configured, the body is restored from storage.
func (u *UseCase) Show(ctx context.Context, id model.RequestID) (*model.GeneratedContent, error) {
	content, err := u.repo.GetGeneratedContent(ctx, u.userID, id)
	if err != nil {
		return nil, err
	}

	if content.Status == model.StatusCompleted && content.Content != nil &&
		content.Content.Body == "" && u.storage != nil {
		reader, err := u.storage.Get(ctx, adapter.ArticleKey(u.userID, string(id)))
		if err != nil {
			logging.From(ctx).Warn("failed to restore archived article body",
				"requestId", id, "error", err)
			return content, nil
		}
		defer reader.Close()

		body, err := io.ReadAll(reader)
		if err != nil {
			logging.From(ctx).Warn("failed to read archived article body",
				"requestId", id, "error", err)
			return content, nil
		}
		content.Content.Body = string(body)
	}

	return content, nil
}

func (u *UseCase) setActive(listener *Listener) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.active = listener
}

func (u *UseCase) clearActive(listener *Listener) {
	u.mu.Lock()
	defer u.mu.Unlock()
	if u.active == listener {
		u.active = nil
	}
}
