package repository

import (
	"context"

	"github.com/mindfeed-app/mindfeed/pkg/model"
)

// Snapshot is one observation of a generated content document. Content is
// nil while the document does not exist yet. A non-nil Err is terminal for
// the watch; the channel is closed right after it is delivered.
type Snapshot struct {
	Content *model.GeneratedContent
	Err     error
}

// Repository defines persistence for content coordination records. Generated
// content documents are written solely by the external workflow; this side
// only reads and watches them.
type Repository interface {
	// GetGeneratedContent retrieves a generated content record by request ID
	GetGeneratedContent(ctx context.Context, userID string, id model.RequestID) (*model.GeneratedContent, error)

	// WatchGeneratedContent subscribes to a generated content document.
	// The returned cancel func releases the subscription and is safe to
	// call more than once.
	WatchGeneratedContent(ctx context.Context, userID string, id model.RequestID) (<-chan Snapshot, func(), error)

	// PutSavedContent stores a denormalized saved copy of a content item
	PutSavedContent(ctx context.Context, userID string, saved *model.SavedContent) error

	// GetSavedContent retrieves a saved content item by request ID
	GetSavedContent(ctx context.Context, userID string, id model.RequestID) (*model.SavedContent, error)

	// DeleteSavedContent removes a saved content item. Deleting a missing
	// item is a no-op.
	DeleteSavedContent(ctx context.Context, userID string, id model.RequestID) error

	// ListSavedContent retrieves saved content, newest save first
	ListSavedContent(ctx context.Context, userID string) ([]*model.SavedContent, error)

	// PutHistoryEntry stores a durable mirror of one history entry and
	// evicts entries beyond the rolling cap
	PutHistoryEntry(ctx context.Context, userID string, entry *model.ContentHistoryEntry) error

	// ListHistory retrieves history entries, newest first, up to limit
	ListHistory(ctx context.Context, userID string, limit int) ([]*model.ContentHistoryEntry, error)

	// PutRecentArticle stores a recently-read article and evicts entries
	// beyond the recent cap
	PutRecentArticle(ctx context.Context, userID string, article *model.RecentArticle) error

	// ListRecentArticles retrieves recently-read articles, newest first
	ListRecentArticles(ctx context.Context, userID string) ([]*model.RecentArticle, error)
}
