package dto

// ProfileCreateRequest is the body of POST /api/profile. The onboarding
// wizard submits it once, completed.
type ProfileCreateRequest struct {
	Name          string   `json:"name"`
	Headline      *string  `json:"headline"`
	AvatarURL     *string  `json:"avatar_url"`
	Role          string   `json:"role"`
	Skills        []string `json:"skills"`
	Industries    []string `json:"industries"`
	Vision        string   `json:"vision"`
	WorkStyles    []string `json:"work_styles"`
	PartnerTraits []string `json:"partner_traits"`
}

// ProfileUpdateRequest is the body of PUT /api/profile. Only the fields
// that are present are updated; "" clears nullable text columns.
type ProfileUpdateRequest struct {
	Name          *string   `json:"name"`
	Headline      *string   `json:"headline"`   // "" => NULL
	AvatarURL     *string   `json:"avatar_url"` // "" => NULL
	Role          *string   `json:"role"`
	Skills        *[]string `json:"skills"`
	Industries    *[]string `json:"industries"`
	Vision        *string   `json:"vision"`
	WorkStyles    *[]string `json:"work_styles"`
	PartnerTraits *[]string `json:"partner_traits"`
}

// ProfileView is the profile shape returned by the profile endpoints
type ProfileView struct {
	ID                  string   `json:"id"`
	Name                string   `json:"name"`
	Headline            *string  `json:"headline"`
	AvatarURL           *string  `json:"avatar_url"`
	Role                string   `json:"role"`
	Skills              []string `json:"skills"`
	Industries          []string `json:"industries"`
	Vision              string   `json:"vision"`
	WorkStyles          []string `json:"work_styles"`
	PartnerTraits       []string `json:"partner_traits"`
	Status              string   `json:"status"`
	OnboardingCompleted bool     `json:"onboarding_completed"`
	CreatedAt           string   `json:"created_at"` // RFC3339
	UpdatedAt           string   `json:"updated_at"` // RFC3339
}

// ProfileResponse wraps a profile with an optional message
type ProfileResponse struct {
	Profile ProfileView `json:"profile"`
	Message string      `json:"message,omitempty"`
}
