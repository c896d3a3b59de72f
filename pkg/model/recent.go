package model

import "time"

// RecentLimit caps the most-recently-read list
const RecentLimit = 3

// RecentArticle records that the user finished reading an article
type RecentArticle struct {
	RequestID          RequestID `firestore:"requestId" json:"requestId"`
	Title              string    `firestore:"title" json:"title"`
	Category           string    `firestore:"category" json:"category"`
	ReadingTimeMinutes int       `firestore:"readingTimeMinutes" json:"readingTimeMinutes"`
	ReadAt             time.Time `firestore:"readAt" json:"readAt"`
}
