package content_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"
	"github.com/mindfeed-app/mindfeed/pkg/model"
	"github.com/mindfeed-app/mindfeed/pkg/repository"
	"github.com/mindfeed-app/mindfeed/pkg/usecase/content"
)

func TestListenerResolve(t *testing.T) {
	repo := repository.NewMemory()
	store := content.NewStore()
	listener := content.NewListener(repo, store, time.Second)

	done, err := listener.Start(context.Background(), "user-1", "req-1")
	gt.NoError(t, err)
	gt.Equal(t, listener.State(), content.StateListening)

	repo.WriteGeneratedContent("user-1", completedContent("req-1", "octopus camouflage"))

	outcome, ok := <-done
	gt.Equal(t, ok, true)
	gt.NoError(t, outcome.Err)
	gt.V(t, outcome.Content).NotNil()
	gt.Equal(t, outcome.Content.RequestID, model.RequestID("req-1"))
	gt.Equal(t, listener.State(), content.StateResolved)

	view := store.Snapshot()
	gt.Equal(t, view.Loading, false)
	gt.Equal(t, view.Current.TopicSummary, "octopus camouflage")
}

func TestListenerWaitsThroughPending(t *testing.T) {
	repo := repository.NewMemory()
	store := content.NewStore()
	listener := content.NewListener(repo, store, time.Second)

	done, err := listener.Start(context.Background(), "user-1", "req-1")
	gt.NoError(t, err)

	repo.WriteGeneratedContent("user-1", &model.GeneratedContent{
		RequestID: "req-1",
		Status:    model.StatusPending,
	})
	repo.WriteGeneratedContent("user-1", completedContent("req-1", "pending then done"))

	outcome := <-done
	gt.NoError(t, outcome.Err)
	gt.Equal(t, outcome.Content.TopicSummary, "pending then done")
}

func TestListenerGenerationError(t *testing.T) {
	repo := repository.NewMemory()
	store := content.NewStore()
	listener := content.NewListener(repo, store, time.Second)

	done, err := listener.Start(context.Background(), "user-1", "req-1")
	gt.NoError(t, err)

	repo.WriteGeneratedContent("user-1", &model.GeneratedContent{
		RequestID: "req-1",
		Status:    model.StatusError,
		Error:     "generation quota exceeded",
	})

	outcome := <-done
	gt.Error(t, outcome.Err)
	if !errors.Is(outcome.Err, model.ErrGenerationFailed) {
		t.Errorf("expected ErrGenerationFailed, got %v", outcome.Err)
	}
	gt.S(t, outcome.Err.Error()).Contains("generation quota exceeded")
	gt.Equal(t, listener.State(), content.StateFailed)
	gt.V(t, store.Snapshot().Err).NotNil()
}

func TestListenerTimeout(t *testing.T) {
	repo := repository.NewMemory()
	store := content.NewStore()
	listener := content.NewListener(repo, store, 50*time.Millisecond)

	done, err := listener.Start(context.Background(), "user-1", "req-1")
	gt.NoError(t, err)

	outcome := <-done
	gt.Error(t, outcome.Err)
	if !errors.Is(outcome.Err, model.ErrGenerationTimeout) {
		t.Errorf("expected ErrGenerationTimeout, got %v", outcome.Err)
	}
	gt.Equal(t, listener.State(), content.StateTimedOut)
}

func TestListenerLateResultAfterTimeout(t *testing.T) {
	repo := repository.NewMemory()
	store := content.NewStore()
	listener := content.NewListener(repo, store, 30*time.Millisecond)

	done, err := listener.Start(context.Background(), "user-1", "req-1")
	gt.NoError(t, err)

	outcome := <-done
	if !errors.Is(outcome.Err, model.ErrGenerationTimeout) {
		t.Fatalf("expected ErrGenerationTimeout, got %v", outcome.Err)
	}

	// A record arriving after the timeout settled must not flip the outcome
	repo.WriteGeneratedContent("user-1", completedContent("req-1", "too late"))
	time.Sleep(20 * time.Millisecond)

	view := store.Snapshot()
	gt.V(t, view.Current).Nil()
	if !errors.Is(view.Err, model.ErrGenerationTimeout) {
		t.Errorf("store error should remain the timeout, got %v", view.Err)
	}
}

func TestListenerSubscriptionFailure(t *testing.T) {
	repo := repository.NewMemory()
	store := content.NewStore()
	listener := content.NewListener(repo, store, time.Second)

	done, err := listener.Start(context.Background(), "user-1", "req-1")
	gt.NoError(t, err)

	repo.FailWatch("user-1", "req-1", goerr.Wrap(model.ErrPermissionDenied, "missing document access"))

	outcome := <-done
	gt.Error(t, outcome.Err)
	if !errors.Is(outcome.Err, model.ErrPermissionDenied) {
		t.Errorf("expected ErrPermissionDenied, got %v", outcome.Err)
	}
	gt.Equal(t, listener.State(), content.StateFailed)
}

func TestListenerStop(t *testing.T) {
	repo := repository.NewMemory()
	store := content.NewStore()
	listener := content.NewListener(repo, store, time.Second)

	done, err := listener.Start(context.Background(), "user-1", "req-1")
	gt.NoError(t, err)

	listener.Stop()
	listener.Stop() // idempotent

	// Closed without a value: cancellation, not a terminal outcome
	_, ok := <-done
	gt.Equal(t, ok, false)
	gt.Equal(t, listener.State(), content.StateIdle)
	gt.V(t, store.Snapshot().Err).Nil()
}

func TestListenerRestartCancelsPrevious(t *testing.T) {
	repo := repository.NewMemory()
	store := content.NewStore()
	listener := content.NewListener(repo, store, time.Second)

	first, err := listener.Start(context.Background(), "user-1", "req-1")
	gt.NoError(t, err)

	second, err := listener.Start(context.Background(), "user-1", "req-2")
	gt.NoError(t, err)

	_, ok := <-first
	gt.Equal(t, ok, false)

	repo.WriteGeneratedContent("user-1", completedContent("req-2", "second request"))
	outcome := <-second
	gt.NoError(t, outcome.Err)
	gt.Equal(t, outcome.Content.RequestID, model.RequestID("req-2"))
}

func TestListenerContextCancelled(t *testing.T) {
	repo := repository.NewMemory()
	store := content.NewStore()
	listener := content.NewListener(repo, store, time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	done, err := listener.Start(ctx, "user-1", "req-1")
	gt.NoError(t, err)

	cancel()

	outcome := <-done
	gt.Error(t, outcome.Err)
	if !errors.Is(outcome.Err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", outcome.Err)
	}
	gt.Equal(t, listener.State(), content.StateFailed)
}
