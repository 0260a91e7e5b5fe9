package models

import (
	"time"

	"github.com/google/uuid"
)

// QuestionType distinguishes an AI-answered question from a community discussion post.
type QuestionType string

const (
	TypeAI         QuestionType = "ai"
	TypeDiscussion QuestionType = "discussion"
)

// QuestionStatus is the processing outcome of an AI question. Discussion posts
// never carry a status.
type QuestionStatus string

const (
	StatusAnswered  QuestionStatus = "answered"
	StatusRejected  QuestionStatus = "rejected"
	StatusEscalated QuestionStatus = "escalated"
)

// AnonymousUserID is the wire value for questions submitted without a signed-in user.
const AnonymousUserID = "anonymous"

// StudentYears is the fixed set of audience tags a question or profile may carry.
var StudentYears = []string{"All", "Incoming/Prospective", "Freshman", "Sophomore", "Junior", "Senior"}

// ValidStudentYear reports whether year is one of the known audience tags.
func ValidStudentYear(year string) bool {
	for _, y := range StudentYears {
		if y == year {
			return true
		}
	}
	return false
}

// Question is a forum post: either an AI-answered question or a discussion topic.
// Optional fields are omitted from JSON when absent.
type Question struct {
	ID           uuid.UUID      `json:"id"`
	UserID       string         `json:"userId"` // "anonymous" when no author
	Type         QuestionType   `json:"type"`
	QuestionText string         `json:"questionText"`
	AIAnswer     string         `json:"aiAnswer,omitempty"`
	Status       QuestionStatus `json:"status,omitempty"`
	StudentYear  string         `json:"studentYear,omitempty"`
	Timestamp    time.Time      `json:"timestamp"`
	Upvotes      int            `json:"upvotes"`
	Comments     []Comment      `json:"comments"` // loaded separately; empty until then
}

// NewQuestion returns a Question with the always-present collections initialized
// so they serialize as [] rather than null.
func NewQuestion() Question {
	return Question{UserID: AnonymousUserID, Comments: []Comment{}}
}
