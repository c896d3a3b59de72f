package content

import (
	"context"
	"io"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/mindfeed-app/mindfeed/pkg/adapter"
	"github.com/mindfeed-app/mindfeed/pkg/model"
	"github.com/mindfeed-app/mindfeed/pkg/utils/logging"
)

// FetchOptions control one fetch round trip
type FetchOptions struct {
	// Enqueue parks the result at the tail of the content queue instead of
	// making it the current item (prefetch).
	Enqueue bool
	// Timeout overrides the use case timeout for this fetch only
	Timeout time.Duration
}

// queueSink routes resolved content into the store's queue
type queueSink struct {
	store *Store
}

func (q queueSink) Resolve(content *model.GeneratedContent) { q.store.ResolveQueued(content) }
func (q queueSink) Fail(err error)                          { q.store.Fail(err) }

// Fetch runs the full round trip: dispatch the request, listen for the
// out-of-band response and settle the store. On success the article body is
// archived and the history mirror updated, both best effort.
func (u *UseCase) Fetch(ctx context.Context, opts FetchOptions) (*model.GeneratedContent, error) {
	requestID, err := u.Dispatch(ctx)
	if err != nil {
		// No listener is ever started for a failed dispatch
		return nil, err
	}

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = u.timeout
	}

	var sink resultSink = u.store
	if opts.Enqueue {
		sink = queueSink{store: u.store}
	}

	listener := NewListener(u.repo, sink, timeout)
	u.setActive(listener)
	defer u.clearActive(listener)

	done, err := listener.Start(ctx, u.userID, requestID)
	if err != nil {
		u.store.Fail(err)
		return nil, err
	}

	outcome, ok := <-done
	if !ok {
		return nil, goerr.Wrap(model.ErrRequestCancelled, "fetch cancelled",
			goerr.V("requestId", requestID))
	}
	if outcome.Err != nil {
		return nil, outcome.Err
	}

	content := outcome.Content
	u.archiveBody(ctx, content)

	if err := u.repo.PutHistoryEntry(ctx, u.userID, model.NewHistoryEntry(content)); err != nil {
		logging.From(ctx).Warn("failed to mirror history entry",
			"requestId", requestID, "error", err)
	}

	return content, nil
}

// archiveBody mirrors the full article body to object storage when a bucket
// is configured. Failures are logged, never surfaced: the Firestore record
// remains authoritative.
func (u *UseCase) archiveBody(ctx context.Context, content *model.GeneratedContent) {
	if u.storage == nil || content.Content == nil || content.Content.Body == "" {
		return
	}

	key := adapter.ArticleKey(u.userID, string(content.RequestID))
	writer, err := u.storage.Put(ctx, key)
	if err != nil {
		logging.From(ctx).Warn("failed to open article archive", "key", key, "error", err)
		return
	}

	if _, err := io.WriteString(writer, content.Content.Body); err != nil {
		logging.From(ctx).Warn("failed to archive article body", "key", key, "error", err)
		_ = writer.Close()
		return
	}
	if err := writer.Close(); err != nil {
		logging.From(ctx).Warn("failed to finalize article archive", "key", key, "error", err)
	}
}
