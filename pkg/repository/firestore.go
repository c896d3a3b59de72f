package repository

import (
	"context"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"github.com/mindfeed-app/mindfeed/pkg/model"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const (
	collectionUsers            = "users"
	collectionGeneratedContent = "generatedContent"
	collectionSavedContent     = "savedContent"
	collectionContentHistory   = "contentHistory"
	collectionRecentArticles   = "recentArticles"
)

// Firestore implements Repository using Cloud Firestore
type Firestore struct {
	client *firestore.Client
}

// New creates a new Firestore repository
func New(ctx context.Context, projectID, databaseID string) (*Firestore, error) {
	client, err := firestore.NewClientWithDatabase(ctx, projectID, databaseID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create firestore client",
			goerr.V("project", projectID),
			goerr.V("database", databaseID))
	}

	return &Firestore{client: client}, nil
}

// Close releases the underlying client
func (r *Firestore) Close() error {
	return r.client.Close()
}

func (r *Firestore) userDoc(userID string) *firestore.DocumentRef {
	return r.client.Collection(collectionUsers).Doc(userID)
}

// classifyError maps transport errors to the client taxonomy. Permission
// problems get the actionable sentinel, everything else a generic wrap.
func classifyError(err error, msg string) error {
	if status.Code(err) == codes.PermissionDenied {
		return goerr.Wrap(model.ErrPermissionDenied, msg, goerr.V("cause", err.Error()))
	}
	return goerr.Wrap(err, msg)
}

func (r *Firestore) GetGeneratedContent(ctx context.Context, userID string, id model.RequestID) (*model.GeneratedContent, error) {
	ref := r.userDoc(userID).Collection(collectionGeneratedContent).Doc(string(id))

	doc, err := ref.Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(model.ErrContentNotFound, "generated content not found",
				goerr.V("requestId", id))
		}
		return nil, classifyError(err, "failed to get generated content")
	}

	var content model.GeneratedContent
	if err := doc.DataTo(&content); err != nil {
		return nil, goerr.Wrap(err, "failed to decode generated content", goerr.V("requestId", id))
	}

	return &content, nil
}

func (r *Firestore) WatchGeneratedContent(ctx context.Context, userID string, id model.RequestID) (<-chan Snapshot, func(), error) {
	watchCtx, cancel := context.WithCancel(ctx)
	ref := r.userDoc(userID).Collection(collectionGeneratedContent).Doc(string(id))

	iter := ref.Snapshots(watchCtx)
	ch := make(chan Snapshot, 1)

	go func() {
		defer close(ch)
		defer iter.Stop()

		for {
			doc, err := iter.Next()
			if err != nil {
				if status.Code(err) == codes.Canceled {
					return
				}
				select {
				case ch <- Snapshot{Err: classifyError(err, "content subscription failed")}:
				case <-watchCtx.Done():
				}
				return
			}

			snap := Snapshot{}
			if doc.Exists() {
				var content model.GeneratedContent
				if err := doc.DataTo(&content); err != nil {
					snap.Err = goerr.Wrap(err, "failed to decode generated content",
						goerr.V("requestId", id))
					select {
					case ch <- snap:
					case <-watchCtx.Done():
					}
					return
				}
				snap.Content = &content
			}

			select {
			case ch <- snap:
			case <-watchCtx.Done():
				return
			}
		}
	}()

	return ch, cancel, nil
}

func (r *Firestore) PutSavedContent(ctx context.Context, userID string, saved *model.SavedContent) error {
	ref := r.userDoc(userID).Collection(collectionSavedContent).Doc(string(saved.RequestID))
	if _, err := ref.Set(ctx, saved); err != nil {
		return classifyError(err, "failed to save content")
	}
	return nil
}

func (r *Firestore) GetSavedContent(ctx context.Context, userID string, id model.RequestID) (*model.SavedContent, error) {
	ref := r.userDoc(userID).Collection(collectionSavedContent).Doc(string(id))

	doc, err := ref.Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(model.ErrContentNotFound, "saved content not found",
				goerr.V("requestId", id))
		}
		return nil, classifyError(err, "failed to get saved content")
	}

	var saved model.SavedContent
	if err := doc.DataTo(&saved); err != nil {
		return nil, goerr.Wrap(err, "failed to decode saved content", goerr.V("requestId", id))
	}

	return &saved, nil
}

func (r *Firestore) DeleteSavedContent(ctx context.Context, userID string, id model.RequestID) error {
	// Firestore Delete on a missing document succeeds, which gives the
	// required delete-of-missing no-op for free
	ref := r.userDoc(userID).Collection(collectionSavedContent).Doc(string(id))
	if _, err := ref.Delete(ctx); err != nil {
		return classifyError(err, "failed to delete saved content")
	}
	return nil
}

func (r *Firestore) ListSavedContent(ctx context.Context, userID string) ([]*model.SavedContent, error) {
	query := r.userDoc(userID).Collection(collectionSavedContent).
		OrderBy("savedAt", firestore.Desc)

	var results []*model.SavedContent
	docs := query.Documents(ctx)
	defer docs.Stop()

	for {
		doc, err := docs.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, classifyError(err, "failed to list saved content")
		}

		var saved model.SavedContent
		if err := doc.DataTo(&saved); err != nil {
			return nil, goerr.Wrap(err, "failed to decode saved content")
		}
		results = append(results, &saved)
	}

	return results, nil
}

func (r *Firestore) PutHistoryEntry(ctx context.Context, userID string, entry *model.ContentHistoryEntry) error {
	coll := r.userDoc(userID).Collection(collectionContentHistory)
	if _, err := coll.Doc(string(entry.RequestID)).Set(ctx, entry); err != nil {
		return classifyError(err, "failed to put history entry")
	}

	return r.evictBeyond(ctx, coll, "generatedAt", model.HistoryLimit)
}

func (r *Firestore) ListHistory(ctx context.Context, userID string, limit int) ([]*model.ContentHistoryEntry, error) {
	if limit <= 0 || limit > model.HistoryLimit {
		limit = model.HistoryLimit
	}

	query := r.userDoc(userID).Collection(collectionContentHistory).
		OrderBy("generatedAt", firestore.Desc).
		Limit(limit)

	var results []*model.ContentHistoryEntry
	docs := query.Documents(ctx)
	defer docs.Stop()

	for {
		doc, err := docs.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, classifyError(err, "failed to list history")
		}

		var entry model.ContentHistoryEntry
		if err := doc.DataTo(&entry); err != nil {
			return nil, goerr.Wrap(err, "failed to decode history entry")
		}
		results = append(results, &entry)
	}

	return results, nil
}

func (r *Firestore) PutRecentArticle(ctx context.Context, userID string, article *model.RecentArticle) error {
	coll := r.userDoc(userID).Collection(collectionRecentArticles)
	if _, err := coll.Doc(string(article.RequestID)).Set(ctx, article); err != nil {
		return classifyError(err, "failed to put recent article")
	}

	return r.evictBeyond(ctx, coll, "readAt", model.RecentLimit)
}

func (r *Firestore) ListRecentArticles(ctx context.Context, userID string) ([]*model.RecentArticle, error) {
	query := r.userDoc(userID).Collection(collectionRecentArticles).
		OrderBy("readAt", firestore.Desc).
		Limit(model.RecentLimit)

	var results []*model.RecentArticle
	docs := query.Documents(ctx)
	defer docs.Stop()

	for {
		doc, err := docs.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, classifyError(err, "failed to list recent articles")
		}

		var article model.RecentArticle
		if err := doc.DataTo(&article); err != nil {
			return nil, goerr.Wrap(err, "failed to decode recent article")
		}
		results = append(results, &article)
	}

	return results, nil
}

// evictBeyond deletes documents past the newest-first cap of a collection
func (r *Firestore) evictBeyond(ctx context.Context, coll *firestore.CollectionRef, orderField string, cap int) error {
	docs := coll.OrderBy(orderField, firestore.Desc).Offset(cap).Documents(ctx)
	defer docs.Stop()

	for {
		doc, err := docs.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return classifyError(err, "failed to scan for eviction")
		}
		if _, err := doc.Ref.Delete(ctx); err != nil {
			return classifyError(err, "failed to evict document")
		}
	}

	return nil
}
