package models

import (
	"time"

	"github.com/google/uuid"
)

// Comment is a reply on a question. The anonymity flag is captured from the
// author's profile setting at creation time and never changes afterwards.
type Comment struct {
	ID              uuid.UUID `json:"id"`
	QuestionID      uuid.UUID `json:"-"`
	UserID          string    `json:"userId"`
	Text            string    `json:"text"`
	Timestamp       time.Time `json:"timestamp"`
	Upvotes         int       `json:"upvotes"`
	AuthorName      string    `json:"authorName,omitempty"`
	AuthorAvatarURL string    `json:"authorAvatarUrl,omitempty"`
	IsAnonymous     bool      `json:"isAnonymous"`
}
