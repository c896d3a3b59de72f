package repository_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/mindfeed-app/mindfeed/pkg/model"
	"github.com/mindfeed-app/mindfeed/pkg/repository"
)

const testUser = "user-1"

func completedRecord(id model.RequestID, topic string) *model.GeneratedContent {
	now := time.Now()
	return &model.GeneratedContent{
		RequestID: id,
		Status:    model.StatusCompleted,
		Content: &model.Content{
			Title:              topic,
			Summary:            "summary of " + topic,
			Body:               "body of " + topic,
			Category:           "science",
			ReadingTimeMinutes: 3,
		},
		TopicSummary: topic,
		GeneratedAt:  &now,
	}
}

func TestMemoryGetGeneratedContent(t *testing.T) {
	repo := repository.NewMemory()
	ctx := context.Background()

	id := model.NewRequestID()
	repo.WriteGeneratedContent(testUser, completedRecord(id, "topic X"))

	content, err := repo.GetGeneratedContent(ctx, testUser, id)
	gt.NoError(t, err)
	gt.Equal(t, content.RequestID, id)
	gt.Equal(t, content.TopicSummary, "topic X")
}

func TestMemoryGetGeneratedContentNotFound(t *testing.T) {
	repo := repository.NewMemory()

	_, err := repo.GetGeneratedContent(context.Background(), testUser, model.NewRequestID())
	gt.Error(t, err)
	if !errors.Is(err, model.ErrContentNotFound) {
		t.Errorf("expected ErrContentNotFound, got %v", err)
	}
}

func TestMemoryWatchDeliversTransitions(t *testing.T) {
	repo := repository.NewMemory()
	ctx := context.Background()

	id := model.NewRequestID()
	ch, cancel, err := repo.WatchGeneratedContent(ctx, testUser, id)
	gt.NoError(t, err)
	defer cancel()

	// Initial observation: document absent
	snap := <-ch
	gt.NoError(t, snap.Err)
	gt.V(t, snap.Content).Nil()

	repo.WriteGeneratedContent(testUser, &model.GeneratedContent{
		RequestID: id,
		Status:    model.StatusPending,
	})
	snap = <-ch
	gt.V(t, snap.Content).NotNil()
	gt.Equal(t, snap.Content.Status, model.StatusPending)

	repo.WriteGeneratedContent(testUser, completedRecord(id, "topic X"))
	snap = <-ch
	gt.V(t, snap.Content).NotNil()
	gt.Equal(t, snap.Content.Status, model.StatusCompleted)
}

func TestMemoryWatchCancelIdempotent(t *testing.T) {
	repo := repository.NewMemory()

	id := model.NewRequestID()
	ch, cancel, err := repo.WatchGeneratedContent(context.Background(), testUser, id)
	gt.NoError(t, err)

	cancel()
	cancel() // safe to call twice

	// Writes after cancellation do not reach the closed watcher
	repo.WriteGeneratedContent(testUser, completedRecord(id, "late"))

	// Drain: channel must be closed
	for range ch {
	}
}

func TestMemoryWatchFailure(t *testing.T) {
	repo := repository.NewMemory()

	id := model.NewRequestID()
	ch, cancel, err := repo.WatchGeneratedContent(context.Background(), testUser, id)
	gt.NoError(t, err)
	defer cancel()

	<-ch // initial absent snapshot

	repo.FailWatch(testUser, id, model.ErrPermissionDenied)

	snap := <-ch
	gt.Error(t, snap.Err)
	if !errors.Is(snap.Err, model.ErrPermissionDenied) {
		t.Errorf("expected ErrPermissionDenied, got %v", snap.Err)
	}

	if _, ok := <-ch; ok {
		t.Error("channel should be closed after a terminal watch error")
	}
}

func TestMemorySavedContentRoundTrip(t *testing.T) {
	repo := repository.NewMemory()
	ctx := context.Background()

	id := model.NewRequestID()
	saved := &model.SavedContent{
		RequestID:    id,
		Content:      model.Content{Title: "Kept Article", Category: "history"},
		TopicSummary: "a kept topic",
		SavedAt:      time.Now(),
	}
	gt.NoError(t, repo.PutSavedContent(ctx, testUser, saved))

	got, err := repo.GetSavedContent(ctx, testUser, id)
	gt.NoError(t, err)
	gt.Equal(t, got.Content.Title, "Kept Article")

	gt.NoError(t, repo.DeleteSavedContent(ctx, testUser, id))

	_, err = repo.GetSavedContent(ctx, testUser, id)
	gt.Error(t, err)
}

func TestMemoryDeleteSavedContentMissing(t *testing.T) {
	repo := repository.NewMemory()

	// Delete of a missing item is a no-op
	gt.NoError(t, repo.DeleteSavedContent(context.Background(), testUser, model.NewRequestID()))
}

func TestMemoryListSavedContentOrder(t *testing.T) {
	repo := repository.NewMemory()
	ctx := context.Background()

	base := time.Now()
	for i := 0; i < 3; i++ {
		gt.NoError(t, repo.PutSavedContent(ctx, testUser, &model.SavedContent{
			RequestID: model.RequestID(fmt.Sprintf("req-%d", i)),
			Content:   model.Content{Title: fmt.Sprintf("Article %d", i)},
			SavedAt:   base.Add(time.Duration(i) * time.Minute),
		}))
	}

	items, err := repo.ListSavedContent(ctx, testUser)
	gt.NoError(t, err)
	gt.A(t, items).Length(3)
	gt.Equal(t, items[0].RequestID, model.RequestID("req-2"))
	gt.Equal(t, items[2].RequestID, model.RequestID("req-0"))
}

func TestMemoryHistoryCap(t *testing.T) {
	repo := repository.NewMemory()
	ctx := context.Background()

	base := time.Now()
	for i := 0; i < model.HistoryLimit+5; i++ {
		gt.NoError(t, repo.PutHistoryEntry(ctx, testUser, &model.ContentHistoryEntry{
			RequestID:    model.RequestID(fmt.Sprintf("req-%d", i)),
			TopicSummary: fmt.Sprintf("topic %d", i),
			GeneratedAt:  base.Add(time.Duration(i) * time.Second),
		}))
	}

	entries, err := repo.ListHistory(ctx, testUser, 0)
	gt.NoError(t, err)
	gt.A(t, entries).Length(model.HistoryLimit)
	gt.Equal(t, entries[0].TopicSummary, fmt.Sprintf("topic %d", model.HistoryLimit+4))
	gt.Equal(t, entries[model.HistoryLimit-1].TopicSummary, "topic 5")
}

func TestMemoryRecentCap(t *testing.T) {
	repo := repository.NewMemory()
	ctx := context.Background()

	base := time.Now()
	for i := 0; i < model.RecentLimit+2; i++ {
		gt.NoError(t, repo.PutRecentArticle(ctx, testUser, &model.RecentArticle{
			RequestID: model.RequestID(fmt.Sprintf("req-%d", i)),
			Title:     fmt.Sprintf("Article %d", i),
			ReadAt:    base.Add(time.Duration(i) * time.Second),
		}))
	}

	articles, err := repo.ListRecentArticles(ctx, testUser)
	gt.NoError(t, err)
	gt.A(t, articles).Length(model.RecentLimit)
	gt.Equal(t, articles[0].Title, fmt.Sprintf("Article %d", model.RecentLimit+1))
}
