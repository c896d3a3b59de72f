package content

import (
	"context"
	"time"

	"github.com/mindfeed-app/mindfeed/pkg/model"
	"github.com/mindfeed-app/mindfeed/pkg/utils/logging"
)

// Dispatch sends one generation request to the webhook. It performs exactly
// one outbound call and never retries. The generated request ID is returned
// even when the dispatch fails so the caller can correlate the attempt; a
// failed ID never becomes the pending one.
func (u *UseCase) Dispatch(ctx context.Context) (model.RequestID, error) {
	req := &model.ContentRequest{
		UserID:               u.userID,
		DisplayName:          u.profile.DisplayName,
		Categories:           u.profile.Categories,
		DailyLearningMinutes: u.profile.DailyLearningMinutes,
		ContentHistory:       u.store.History().Summaries(),
		RequestID:            model.NewRequestID(),
		Timestamp:            time.Now().UTC(),
	}

	if err := req.Validate(); err != nil {
		return req.RequestID, err
	}

	u.store.BeginDispatch()

	if err := u.webhook.Dispatch(ctx, req); err != nil {
		u.store.DispatchFailed(err)
		return req.RequestID, err
	}

	u.store.MarkPending(req.RequestID)

	logging.From(ctx).Info("dispatched content request",
		"requestId", req.RequestID,
		"categories", req.Categories,
		"historyLen", len(req.ContentHistory))

	return req.RequestID, nil
}
