package models

import (
	"time"

	"github.com/google/uuid"
)

// Profile is the entity of public.profiles, one registered founder.
// Profile.ID equals the owning user's id (one profile per account).
// Tag columns are text[] in Postgres; they may be empty but never nil.
type Profile struct {
	ID                  uuid.UUID `json:"id" db:"id"`
	Name                string    `json:"name" db:"name"`
	Headline            *string   `json:"headline,omitempty" db:"headline"`
	AvatarURL           *string   `json:"avatar_url,omitempty" db:"avatar_url"`
	Role                string    `json:"role" db:"role"`
	Skills              []string  `json:"skills" db:"skills"`
	Industries          []string  `json:"industries" db:"industries"`
	Vision              string    `json:"vision" db:"vision"`
	WorkStyles          []string  `json:"work_styles" db:"work_styles"`
	PartnerTraits       []string  `json:"partner_traits" db:"partner_traits"`
	Status              string    `json:"status" db:"status"`
	OnboardingCompleted bool      `json:"onboarding_completed" db:"onboarding_completed"`
	CreatedAt           time.Time `json:"created_at" db:"created_at"`
	UpdatedAt           time.Time `json:"updated_at" db:"updated_at"`
}

// Normalize replaces nil tag slices with empty ones so the rest of the
// pipeline can rely on the never-nil invariant.
func (p *Profile) Normalize() {
	if p.Skills == nil {
		p.Skills = []string{}
	}
	if p.Industries == nil {
		p.Industries = []string{}
	}
	if p.WorkStyles == nil {
		p.WorkStyles = []string{}
	}
	if p.PartnerTraits == nil {
		p.PartnerTraits = []string{}
	}
}
