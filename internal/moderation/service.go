// Package moderation screens free-text discussion topics before they are
// persisted. The check fails open on model trouble: blocking every post when
// the provider is down is worse than letting a moderator clean up later. That
// is a deliberate policy, revisit if spam becomes a problem.
package moderation

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"github.com/capstone-forum/backend/internal/ai"
)

const systemPrompt = `You are a moderator for a university parent forum. Your task is to determine if a discussion topic is appropriate for the forum.

**Scope:**
- University of Alabama specific topics (academics, housing, student life, sports, events, etc.)
- College life in general (advice for students, parent experiences, etc.)
- Topics related to Tuscaloosa, AL or the state of Alabama.
- General parenting discussion appropriate for a college parent audience.

**Rejection Criteria (Out of Scope):**
- Hate speech, harassment, or threats.
- Spam, advertisements, or promotions.
- Topics completely unrelated to college, parenting, or Alabama (e.g., international politics, celebrity gossip, niche hobbies).

**Your Task:**
Respond with a single JSON object.
- If the topic is IN SCOPE, set "isApproved" to true.
- If the topic is OUT OF SCOPE, set "isApproved" to false and provide a brief, polite "reason" for the user.`

// Verdict is the moderation outcome for a topic.
type Verdict struct {
	Approved bool
	Reason   string
}

// Service runs the single-call topic check.
type Service struct {
	ai     ai.Completer
	logger *zap.Logger
}

// NewService creates a moderation service.
func NewService(completer ai.Completer, logger *zap.Logger) *Service {
	return &Service{ai: completer, logger: logger}
}

// CheckTopic approves or rejects a discussion topic. Any model failure or
// unparsable output approves the topic (fail open).
func (s *Service) CheckTopic(ctx context.Context, topic string) Verdict {
	raw, err := s.ai.CompleteJSON(ctx, systemPrompt, fmt.Sprintf("Discussion Topic: %q", topic), 0)
	if err != nil {
		s.logger.Warn("moderation check failed open", zap.Error(err))
		return Verdict{Approved: true}
	}

	var out struct {
		IsApproved bool   `json:"isApproved"`
		Reason     string `json:"reason"`
	}
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		s.logger.Warn("moderation check returned bad JSON, failing open", zap.Error(err))
		return Verdict{Approved: true}
	}
	return Verdict{Approved: out.IsApproved, Reason: out.Reason}
}
