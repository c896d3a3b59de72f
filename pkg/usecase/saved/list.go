package saved

import (
	"context"

	"github.com/mindfeed-app/mindfeed/pkg/model"
)

// List retrieves saved content, newest save first. It always re-reads the
// backing store, which doubles as the rollback path after a failed
// optimistic mutation: whatever the store holds is the truth.
func (u *UseCase) List(ctx context.Context) ([]*model.SavedContent, error) {
	return u.repo.ListSavedContent(ctx, u.userID)
}
