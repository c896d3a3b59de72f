package repository

import (
	"context"
	"sort"
	"sync"

	"github.com/m-mizutani/goerr/v2"
	"github.com/mindfeed-app/mindfeed/pkg/model"
)

// Memory implements Repository in process. It backs unit tests and offline
// runs, and exposes WriteGeneratedContent so tests can play the role of the
// external content workflow.
type Memory struct {
	mu sync.Mutex

	generated map[string]map[model.RequestID]*model.GeneratedContent
	saved     map[string]map[model.RequestID]*model.SavedContent
	history   map[string][]*model.ContentHistoryEntry
	recent    map[string][]*model.RecentArticle
	watchers  map[string][]*memoryWatcher
}

type memoryWatcher struct {
	ch        chan Snapshot
	closeOnce sync.Once
}

func (w *memoryWatcher) send(s Snapshot) {
	// Ring semantics: if the consumer lags, drop the oldest observation so
	// the latest (possibly terminal) one always lands
	select {
	case w.ch <- s:
	default:
		select {
		case <-w.ch:
		default:
		}
		w.ch <- s
	}
}

func (w *memoryWatcher) close() {
	w.closeOnce.Do(func() { close(w.ch) })
}

// NewMemory creates a new in-process repository
func NewMemory() *Memory {
	return &Memory{
		generated: map[string]map[model.RequestID]*model.GeneratedContent{},
		saved:     map[string]map[model.RequestID]*model.SavedContent{},
		history:   map[string][]*model.ContentHistoryEntry{},
		recent:    map[string][]*model.RecentArticle{},
		watchers:  map[string][]*memoryWatcher{},
	}
}

func watchKey(userID string, id model.RequestID) string {
	return userID + "/" + string(id)
}

// WriteGeneratedContent stores a content record the way the external
// workflow would and notifies active watchers.
func (m *Memory) WriteGeneratedContent(userID string, content *model.GeneratedContent) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.generated[userID] == nil {
		m.generated[userID] = map[model.RequestID]*model.GeneratedContent{}
	}
	copied := *content
	m.generated[userID][content.RequestID] = &copied

	for _, w := range m.watchers[watchKey(userID, content.RequestID)] {
		notify := copied
		w.send(Snapshot{Content: &notify})
	}
}

// FailWatch delivers a terminal transport error to active watchers of the
// given request, simulating a broken or forbidden subscription.
func (m *Memory) FailWatch(userID string, id model.RequestID, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	key := watchKey(userID, id)
	for _, w := range m.watchers[key] {
		w.send(Snapshot{Err: err})
		w.close()
	}
	delete(m.watchers, key)
}

// DeleteGeneratedContent drops a content record the way the workflow's
// cleanup job would. Watchers are not notified.
func (m *Memory) DeleteGeneratedContent(userID string, id model.RequestID) {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.generated[userID], id)
}

func (m *Memory) GetGeneratedContent(ctx context.Context, userID string, id model.RequestID) (*model.GeneratedContent, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	content, ok := m.generated[userID][id]
	if !ok {
		return nil, goerr.Wrap(model.ErrContentNotFound, "generated content not found",
			goerr.V("requestId", id))
	}
	copied := *content
	return &copied, nil
}

func (m *Memory) WatchGeneratedContent(ctx context.Context, userID string, id model.RequestID) (<-chan Snapshot, func(), error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	w := &memoryWatcher{ch: make(chan Snapshot, 8)}
	key := watchKey(userID, id)
	m.watchers[key] = append(m.watchers[key], w)

	// Initial observation, like Firestore's first snapshot: nil content
	// while the document is absent
	if content, ok := m.generated[userID][id]; ok {
		copied := *content
		w.send(Snapshot{Content: &copied})
	} else {
		w.send(Snapshot{})
	}

	cancel := func() {
		m.mu.Lock()
		defer m.mu.Unlock()

		ws := m.watchers[key]
		for i, candidate := range ws {
			if candidate == w {
				m.watchers[key] = append(ws[:i], ws[i+1:]...)
				break
			}
		}
		w.close()
	}

	return w.ch, cancel, nil
}

func (m *Memory) PutSavedContent(ctx context.Context, userID string, saved *model.SavedContent) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.saved[userID] == nil {
		m.saved[userID] = map[model.RequestID]*model.SavedContent{}
	}
	copied := *saved
	m.saved[userID][saved.RequestID] = &copied
	return nil
}

func (m *Memory) GetSavedContent(ctx context.Context, userID string, id model.RequestID) (*model.SavedContent, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	saved, ok := m.saved[userID][id]
	if !ok {
		return nil, goerr.Wrap(model.ErrContentNotFound, "saved content not found",
			goerr.V("requestId", id))
	}
	copied := *saved
	return &copied, nil
}

func (m *Memory) DeleteSavedContent(ctx context.Context, userID string, id model.RequestID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	// Delete of a missing item is a no-op
	delete(m.saved[userID], id)
	return nil
}

func (m *Memory) ListSavedContent(ctx context.Context, userID string) ([]*model.SavedContent, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	results := make([]*model.SavedContent, 0, len(m.saved[userID]))
	for _, saved := range m.saved[userID] {
		copied := *saved
		results = append(results, &copied)
	}
	sort.Slice(results, func(i, j int) bool {
		return results[i].SavedAt.After(results[j].SavedAt)
	})
	return results, nil
}

func (m *Memory) PutHistoryEntry(ctx context.Context, userID string, entry *model.ContentHistoryEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	// Keyed by request ID like the document store: a rewrite replaces
	entries := m.history[userID][:0:0]
	for _, e := range m.history[userID] {
		if e.RequestID != entry.RequestID {
			entries = append(entries, e)
		}
	}
	copied := *entry
	entries = append([]*model.ContentHistoryEntry{&copied}, entries...)
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].GeneratedAt.After(entries[j].GeneratedAt)
	})
	if len(entries) > model.HistoryLimit {
		entries = entries[:model.HistoryLimit]
	}
	m.history[userID] = entries
	return nil
}

func (m *Memory) ListHistory(ctx context.Context, userID string, limit int) ([]*model.ContentHistoryEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if limit <= 0 || limit > model.HistoryLimit {
		limit = model.HistoryLimit
	}

	entries := m.history[userID]
	if len(entries) > limit {
		entries = entries[:limit]
	}

	results := make([]*model.ContentHistoryEntry, 0, len(entries))
	for _, entry := range entries {
		copied := *entry
		results = append(results, &copied)
	}
	return results, nil
}

func (m *Memory) PutRecentArticle(ctx context.Context, userID string, article *model.RecentArticle) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	articles := m.recent[userID][:0:0]
	for _, a := range m.recent[userID] {
		if a.RequestID != article.RequestID {
			articles = append(articles, a)
		}
	}
	copied := *article
	articles = append([]*model.RecentArticle{&copied}, articles...)
	sort.SliceStable(articles, func(i, j int) bool {
		return articles[i].ReadAt.After(articles[j].ReadAt)
	})
	if len(articles) > model.RecentLimit {
		articles = articles[:model.RecentLimit]
	}
	m.recent[userID] = articles
	return nil
}

func (m *Memory) ListRecentArticles(ctx context.Context, userID string) ([]*model.RecentArticle, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	results := make([]*model.RecentArticle, 0, len(m.recent[userID]))
	for _, article := range m.recent[userID] {
		copied := *article
		results = append(results, &copied)
	}
	return results, nil
}
