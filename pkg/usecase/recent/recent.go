package recent

import (
	"context"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/mindfeed-app/mindfeed/pkg/model"
	"github.com/mindfeed-app/mindfeed/pkg/repository"
	"github.com/mindfeed-app/mindfeed/pkg/usecase/content"
)

// UseCase tracks the most-recently-read articles, capped at
// model.RecentLimit with oldest-first eviction.
type UseCase struct {
	repo   repository.Repository
	store  *content.Store
	userID string
}

// Option is a functional option for UseCase
type Option func(*UseCase)

// WithStore links the session store so finished articles are flagged as
// viewed in the rolling history.
func WithStore(store *content.Store) Option {
	return func(uc *UseCase) {
		uc.store = store
	}
}

// New creates a new recent articles UseCase instance
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

// MarkRead records that the user finished an article
func (u *UseCase) MarkRead(ctx context.Context, id model.RequestID) (*model.RecentArticle, error) {
	generated, err := u.repo.GetGeneratedContent(ctx, u.userID, id)
	if err != nil {
		return nil, err
	}

	if generated.Status != model.StatusCompleted || generated.Content == nil {
		return nil, goerr.New("only completed content can be marked as read",
			goerr.V("requestId", id),
			goerr.V("status", generated.Status))
	}

	article := &model.RecentArticle{
		RequestID:          generated.RequestID,
		Title:              generated.Content.Title,
		Category:           generated.Content.Category,
		ReadingTimeMinutes: generated.Content.ReadingTimeMinutes,
		ReadAt:             time.Now(),
	}

	if err := u.repo.PutRecentArticle(ctx, u.userID, article); err != nil {
		return nil, err
	}

	if u.store != nil {
		u.store.History().MarkViewed(id)
	}

	return article, nil
}

// List retrieves recently-read articles, newest first
func (u *UseCase) List(ctx context.Context) ([]*model.RecentArticle, error) {
	return u.repo.ListRecentArticles(ctx, u.userID)
}
