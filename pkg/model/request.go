package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"
)

// RequestID is the client-generated correlation key. It doubles as the
// document ID of the response record written by the content workflow.
type RequestID string

// NewRequestID generates a new unique RequestID
func NewRequestID() RequestID {
	return RequestID(uuid.New().String())
}

// CustomCategoryPrefix marks free-text interest tags so the workflow can
// distinguish them from the predefined set.
const CustomCategoryPrefix = "custom:"

var predefinedCategories = map[string]struct{}{
	"science":    {},
	"technology": {},
	"history":    {},
	"philosophy": {},
	"psychology": {},
	"health":     {},
	"arts":       {},
	"economics":  {},
	"nature":     {},
	"space":      {},
}

// ValidateCategory checks that a category is either predefined or a
// prefixed custom tag.
func ValidateCategory(category string) error {
	if category == "" {
		return goerr.New("category is empty")
	}
	if strings.HasPrefix(category, CustomCategoryPrefix) {
		if strings.TrimSpace(strings.TrimPrefix(category, CustomCategoryPrefix)) == "" {
			return goerr.New("custom category has no label", goerr.V("category", category))
		}
		return nil
	}
	if _, ok := predefinedCategories[category]; !ok {
		return goerr.New("unknown category", goerr.V("category", category))
	}
	return nil
}

// ContentRequest is one outbound generation request. It is immutable once
// dispatched; the response arrives out of band under the same RequestID.
type ContentRequest struct {
	UserID               string    `json:"userId"`
	DisplayName          string    `json:"displayName"`
	Categories           []string  `json:"categories"`
	DailyLearningMinutes int       `json:"dailyLearningMinutes"`
	ContentHistory       []string  `json:"contentHistory"`
	RequestID            RequestID `json:"requestId"`
	Timestamp            time.Time `json:"timestamp"`
}

// Validate checks the dispatch constraints
func (r *ContentRequest) Validate() error {
	if r.RequestID == "" {
		return goerr.New("request ID is empty")
	}
	if r.UserID == "" {
		return goerr.New("user ID is empty")
	}
	if len(r.Categories) == 0 {
		return goerr.New("at least one category is required")
	}
	for _, c := range r.Categories {
		if err := ValidateCategory(c); err != nil {
			return err
		}
	}
	if r.DailyLearningMinutes <= 0 {
		return goerr.New("daily learning minutes must be positive",
			goerr.V("minutes", r.DailyLearningMinutes))
	}
	return nil
}
