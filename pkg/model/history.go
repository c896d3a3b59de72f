package model

import "time"

// HistoryLimit caps the rolling anti-repetition history
const HistoryLimit = 20

// ContentHistoryEntry summarizes one completed content item. The rolling
// list of these is sent with the next request as a repetition hint.
type ContentHistoryEntry struct {
	RequestID    RequestID `firestore:"requestId" json:"requestId"`
	TopicSummary string    `firestore:"topicSummary" json:"topicSummary"`
	Category     string    `firestore:"category" json:"category"`
	GeneratedAt  time.Time `firestore:"generatedAt" json:"generatedAt"`
	Viewed       bool      `firestore:"viewed" json:"viewed"`
	Saved        bool      `firestore:"saved" json:"saved"`
}

// NewHistoryEntry derives a history entry from a completed content record
func NewHistoryEntry(c *GeneratedContent) *ContentHistoryEntry {
	entry := &ContentHistoryEntry{
		RequestID:    c.RequestID,
		TopicSummary: c.TopicSummary,
	}
	if c.Content != nil {
		entry.Category = c.Content.Category
	}
	if c.GeneratedAt != nil {
		entry.GeneratedAt = *c.GeneratedAt
	} else {
		entry.GeneratedAt = time.Now()
	}
	return entry
}
