package dto

// GenerateMatchesResponse is returned by POST /api/matches/generate.
// Generation runs in the background; this only acknowledges the kick-off.
type GenerateMatchesResponse struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// MatchProfileView is the candidate-profile subset attached to a match
type MatchProfileView struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Headline   *string  `json:"headline"`
	Role       string   `json:"role"`
	Skills     []string `json:"skills"`
	Industries []string `json:"industries"`
	AvatarURL  *string  `json:"avatar_url"`
	Status     string   `json:"status"`
}

// MatchItem is one row of GET /api/matches, score-descending
type MatchItem struct {
	ID          string           `json:"id"`
	UserID      string           `json:"user_id"`
	MatchScore  int              `json:"match_score"`
	MatchReason []string         `json:"match_reason"`
	Status      string           `json:"status"`
	CreatedAt   string           `json:"created_at"` // RFC3339
	Profile     MatchProfileView `json:"profile"`
}

// MatchListResponse is the body of GET /api/matches
type MatchListResponse struct {
	Matches []MatchItem `json:"matches"`
}
