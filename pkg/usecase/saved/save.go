package saved

import (
	"context"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/mindfeed-app/mindfeed/pkg/model"
)

// Save stores a full denormalized copy of a completed content item. The
// copy lives independently of the original record: the workflow may clean
// up generatedContent documents without touching saves.
func (u *UseCase) Save(ctx context.Context, id model.RequestID) (*model.SavedContent, error) {
	generated, err := u.repo.GetGeneratedContent(ctx, u.userID, id)
	if err != nil {
		return nil, err
	}

	if generated.Status != model.StatusCompleted || generated.Content == nil {
		return nil, goerr.New("only completed content can be saved",
			goerr.V("requestId", id),
			goerr.V("status", generated.Status))
	}

	saved := &model.SavedContent{
		RequestID:    generated.RequestID,
		Content:      *generated.Content,
		TopicSummary: generated.TopicSummary,
		SavedAt:      time.Now(),
	}
	if generated.GeneratedAt != nil {
		saved.GeneratedAt = *generated.GeneratedAt
	}

	if err := u.repo.PutSavedContent(ctx, u.userID, saved); err != nil {
		return nil, err
	}

	if u.store != nil {
		u.store.History().MarkSaved(id)
	}

	return saved, nil
}
