package model

import (
	"time"

	"github.com/m-mizutani/goerr/v2"
)

type ContentStatus string

const (
	StatusPending   ContentStatus = "pending"
	StatusCompleted ContentStatus = "completed"
	StatusError     ContentStatus = "error"
)

// Validate checks if the status is valid
func (s ContentStatus) Validate() error {
	switch s {
	case StatusPending, StatusCompleted, StatusError:
		return nil
	default:
		return goerr.Wrap(ErrInvalidStatus, "unknown status", goerr.V("status", s))
	}
}

// Terminal reports whether no further transition occurs for this status
func (s ContentStatus) Terminal() bool {
	return s == StatusCompleted || s == StatusError
}

// Content is the generated article payload
type Content struct {
	Title              string   `firestore:"title" json:"title"`
	Summary            string   `firestore:"summary" json:"summary"`
	Body               string   `firestore:"body" json:"body"`
	Category           string   `firestore:"category" json:"category"`
	ReadingTimeMinutes int      `firestore:"readingTimeMinutes" json:"readingTimeMinutes"`
	Sources            []string `firestore:"sources" json:"sources"`
}

// GeneratedContent is the response record written by the content workflow.
// The client only reads it. Field names follow the workflow's document
// schema, hence the firestore tags.
type GeneratedContent struct {
	RequestID    RequestID     `firestore:"requestId" json:"requestId"`
	Status       ContentStatus `firestore:"status" json:"status"`
	Content      *Content      `firestore:"content,omitempty" json:"content,omitempty"`
	TopicSummary string        `firestore:"topicSummary,omitempty" json:"topicSummary,omitempty"`
	GeneratedAt  *time.Time    `firestore:"generatedAt,omitempty" json:"generatedAt,omitempty"`
	Error        string        `firestore:"error,omitempty" json:"error,omitempty"`
}

// Validate enforces the status invariant: completed has content and no
// error, error has an error and no content, pending has neither.
func (c *GeneratedContent) Validate() error {
	if c.RequestID == "" {
		return goerr.New("request ID is empty")
	}
	if err := c.Status.Validate(); err != nil {
		return err
	}

	switch c.Status {
	case StatusCompleted:
		if c.Content == nil {
			return goerr.New("completed content has no payload", goerr.V("requestId", c.RequestID))
		}
		if c.Error != "" {
			return goerr.New("completed content carries an error", goerr.V("requestId", c.RequestID))
		}
	case StatusError:
		if c.Content != nil {
			return goerr.New("errored content carries a payload", goerr.V("requestId", c.RequestID))
		}
	case StatusPending:
		if c.Content != nil || c.Error != "" {
			return goerr.New("pending content must be empty", goerr.V("requestId", c.RequestID))
		}
	}

	return nil
}
