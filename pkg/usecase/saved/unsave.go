package saved

import (
	"context"

	"github.com/mindfeed-app/mindfeed/pkg/model"
)

// Unsave removes a saved content item. Removing an item that is not saved
// is a no-op. When the session store currently shows the same request, the
// current view is cleared as part of the operation so nothing keeps
// referencing deleted data.
func (u *UseCase) Unsave(ctx context.Context, id model.RequestID) error {
	if err := u.repo.DeleteSavedContent(ctx, u.userID, id); err != nil {
		return err
	}

	if u.store != nil {
		u.store.ClearCurrent(id)
	}

	return nil
}
