package dto

// LikeToggleResponse is returned by POST /api/likes/{id}/toggle
type LikeToggleResponse struct {
	Liked     bool `json:"liked"`
	LikeCount int  `json:"like_count"`
}

// RankingItem is one row of GET /api/rankings
type RankingItem struct {
	Rank      int     `json:"rank"`
	ProfileID string  `json:"profile_id"`
	Name      string  `json:"name"`
	Role      string  `json:"role"`
	AvatarURL *string `json:"avatar_url"`
	LikeCount int     `json:"like_count"`
}

// RankingsResponse is the body of GET /api/rankings
type RankingsResponse struct {
	Rankings []RankingItem `json:"rankings"`
}
