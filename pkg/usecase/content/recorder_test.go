package content_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/mindfeed-app/mindfeed/pkg/model"
	"github.com/mindfeed-app/mindfeed/pkg/usecase/content"
)

func TestRecorderNewestFirst(t *testing.T) {
	rec := content.NewRecorder()

	rec.Record(&model.ContentHistoryEntry{RequestID: "req-1", TopicSummary: "first"})
	rec.Record(&model.ContentHistoryEntry{RequestID: "req-2", TopicSummary: "second"})

	summaries := rec.Summaries()
	gt.A(t, summaries).Length(2)
	gt.Equal(t, summaries[0], "second")
	gt.Equal(t, summaries[1], "first")
}

func TestRecorderCap(t *testing.T) {
	rec := content.NewRecorder()

	for i := 0; i < model.HistoryLimit+5; i++ {
		rec.Record(&model.ContentHistoryEntry{
			RequestID:    model.RequestID(fmt.Sprintf("req-%d", i)),
			TopicSummary: fmt.Sprintf("topic %d", i),
		})
	}

	summaries := rec.Summaries()
	gt.A(t, summaries).Length(model.HistoryLimit)
	gt.Equal(t, summaries[0], fmt.Sprintf("topic %d", model.HistoryLimit+4))
	gt.Equal(t, summaries[model.HistoryLimit-1], "topic 5")
}

func TestRecorderNoDeduplication(t *testing.T) {
	rec := content.NewRecorder()

	rec.Record(&model.ContentHistoryEntry{RequestID: "req-1", TopicSummary: "same topic"})
	rec.Record(&model.ContentHistoryEntry{RequestID: "req-2", TopicSummary: "same topic"})

	gt.A(t, rec.Summaries()).Length(2)
}

func TestRecorderSeed(t *testing.T) {
	rec := content.NewRecorder()
	rec.Record(&model.ContentHistoryEntry{RequestID: "stale", TopicSummary: "stale"})

	var loaded []*model.ContentHistoryEntry
	for i := 0; i < model.HistoryLimit+3; i++ {
		loaded = append(loaded, &model.ContentHistoryEntry{
			RequestID:    model.RequestID(fmt.Sprintf("req-%d", i)),
			TopicSummary: fmt.Sprintf("topic %d", i),
			GeneratedAt:  time.Now(),
		})
	}
	rec.Seed(loaded)

	summaries := rec.Summaries()
	gt.A(t, summaries).Length(model.HistoryLimit)
	gt.Equal(t, summaries[0], "topic 0")
}

func TestRecorderMarkViewedAndSaved(t *testing.T) {
	rec := content.NewRecorder()
	rec.Record(&model.ContentHistoryEntry{RequestID: "req-1", TopicSummary: "first"})
	rec.Record(&model.ContentHistoryEntry{RequestID: "req-2", TopicSummary: "second"})

	rec.MarkViewed("req-1")
	rec.MarkSaved("req-2")
	rec.MarkViewed("req-unknown") // no-op

	entries := rec.Entries()
	gt.A(t, entries).Length(2)
	gt.Equal(t, entries[0].RequestID, model.RequestID("req-2"))
	gt.Equal(t, entries[0].Saved, true)
	gt.Equal(t, entries[0].Viewed, false)
	gt.Equal(t, entries[1].Viewed, true)
}

func TestRecorderEntriesAreCopies(t *testing.T) {
	rec := content.NewRecorder()
	rec.Record(&model.ContentHistoryEntry{RequestID: "req-1", TopicSummary: "first"})

	entries := rec.Entries()
	entries[0].TopicSummary = "mutated"

	gt.Equal(t, rec.Entries()[0].TopicSummary, "first")
}
