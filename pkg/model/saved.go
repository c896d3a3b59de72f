package model

import "time"

// SavedContent is a full denormalized copy of a completed content item.
// Its lifecycle is independent from the original GeneratedContent record:
// deleting one never affects the other.
type SavedContent struct {
	RequestID    RequestID `firestore:"requestId" json:"requestId"`
	Content      Content   `firestore:"content" json:"content"`
	TopicSummary string    `firestore:"topicSummary" json:"topicSummary"`
	GeneratedAt  time.Time `firestore:"generatedAt" json:"generatedAt"`
	SavedAt      time.Time `firestore:"savedAt" json:"savedAt"`
}
