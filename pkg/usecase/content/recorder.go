package content

import (
	"sync"

	"github.com/mindfeed-app/mindfeed/pkg/model"
)

// Recorder keeps the rolling anti-repetition history, newest first, capped
// at model.HistoryLimit. It performs no deduplication itself: the summaries
// are only a hint for the external generator.
type Recorder struct {
	mu      sync.Mutex
	entries []*model.ContentHistoryEntry
}

// NewRecorder creates an empty history recorder
func NewRecorder() *Recorder {
	return &Recorder{}
}

// Record prepends an entry and truncates to the cap
func (r *Recorder) Record(entry *model.ContentHistoryEntry) {
	r.mu.Lock()
	defer r.mu.Unlock()

	copied := *entry
	r.entries = append([]*model.ContentHistoryEntry{&copied}, r.entries...)
	if len(r.entries) > model.HistoryLimit {
		r.entries = r.entries[:model.HistoryLimit]
	}
}

// Seed replaces the history with entries loaded from durable storage,
// newest first, truncated to the cap.
func (r *Recorder) Seed(entries []*model.ContentHistoryEntry) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.entries = r.entries[:0]
	for _, entry := range entries {
		if len(r.entries) >= model.HistoryLimit {
			break
		}
		copied := *entry
		r.entries = append(r.entries, &copied)
	}
}

// Summaries projects the history to topic strings for the next request's
// contentHistory field, newest first.
func (r *Recorder) Summaries() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	summaries := make([]string, 0, len(r.entries))
	for _, entry := range r.entries {
		summaries = append(summaries, entry.TopicSummary)
	}
	return summaries
}

// Entries returns a copy of the history, newest first
func (r *Recorder) Entries() []*model.ContentHistoryEntry {
	r.mu.Lock()
	defer r.mu.Unlock()

	entries := make([]*model.ContentHistoryEntry, 0, len(r.entries))
	for _, entry := range r.entries {
		copied := *entry
		entries = append(entries, &copied)
	}
	return entries
}

// MarkViewed flags the history entry of a request as viewed
func (r *Recorder) MarkViewed(id model.RequestID) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, entry := range r.entries {
		if entry.RequestID == id {
			entry.Viewed = true
			return
		}
	}
}

// MarkSaved flags the history entry of a request as saved
func (r *Recorder) MarkSaved(id model.RequestID) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, entry := range r.entries {
		if entry.RequestID == id {
			entry.Saved = true
			return
		}
	}
}
