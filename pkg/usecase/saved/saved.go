package saved

import (
	"github.com/mindfeed-app/mindfeed/pkg/repository"
	"github.com/mindfeed-app/mindfeed/pkg/usecase/content"
)

// UseCase provides bookmark operations over saved content
type UseCase struct {
	repo   repository.Repository
	store  *content.Store
	userID string
}

// Option is a functional option for UseCase
type Option func(*UseCase)

// WithStore links the session store, so unsaving an item that is currently
// on screen also clears it there.
func WithStore(store *content.Store) Option {
	return func(uc *UseCase) {
		uc.store = store
	}
}

// New creates a new saved content UseCase instance
func New(repo repository.Repository, userID string, opts ...Option) *UseCase {
	uc := &UseCase{
		repo:   repo,
		userID: userID,
	}

	for _, opt := range opts {
		opt(uc)
	}

	return uc
}
