package models

import (
	"time"

	"github.com/google/uuid"
)

// Match statuses. New rows always start as pending.
const (
	MatchStatusPending  = "pending"
	MatchStatusAccepted = "accepted"
	MatchStatusDeclined = "declined"
)

// MatchResult is the scorer's output for one (user, candidate) pair.
// Score is always present and within [0, 100]; Reasons may be empty
// but never nil.
type MatchResult struct {
	CandidateID uuid.UUID `json:"candidate_id"`
	Score       int       `json:"score"`
	Reasons     []string  `json:"reasons"`
}

// Match is the entity of public.matches, a directed match from
// User1ID (owner) to User2ID (candidate).
type Match struct {
	ID          uuid.UUID `json:"id" db:"id"`
	User1ID     uuid.UUID `json:"user1_id" db:"user1_id"`
	User2ID     uuid.UUID `json:"user2_id" db:"user2_id"`
	MatchScore  int       `json:"match_score" db:"match_score"`
	MatchReason []string  `json:"match_reason" db:"match_reason"`
	Status      string    `json:"status" db:"status"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

// MatchProfile is the candidate-profile subset joined onto a match row
// for display.
type MatchProfile struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	Headline   *string   `json:"headline,omitempty"`
	Role       string    `json:"role"`
	Skills     []string  `json:"skills"`
	Industries []string  `json:"industries"`
	AvatarURL  *string   `json:"avatar_url,omitempty"`
	Status     string    `json:"status"`
}

// MatchWithProfile is one row of the match-list read path.
type MatchWithProfile struct {
	Match
	Profile MatchProfile `json:"profile"`
}
