package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"COFOUNDER-SPHERE_BACK-END/internal/models"
)

// Postgres wraps the pgx pool with the queries the matching pipeline
// needs. Handlers that own their own simple queries keep talking to the
// pool directly, the way the rest of the API does.
type Postgres struct {
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) *Postgres {
	return &Postgres{pool: pool}
}

const profileColumns = `id, name, headline, avatar_url, role,
       COALESCE(skills, '{}'), COALESCE(industries, '{}'), vision,
       COALESCE(work_styles, '{}'), COALESCE(partner_traits, '{}'),
       status, onboarding_completed, created_at, updated_at`

func scanProfile(row pgx.Row) (*models.Profile, error) {
	var p models.Profile
	err := row.Scan(
		&p.ID, &p.Name, &p.Headline, &p.AvatarURL, &p.Role,
		&p.Skills, &p.Industries, &p.Vision,
		&p.WorkStyles, &p.PartnerTraits,
		&p.Status, &p.OnboardingCompleted, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	p.Normalize()
	return &p, nil
}

// GetProfile returns the profile for the given user id, or (nil, nil)
// when no profile row exists.
func (s *Postgres) GetProfile(ctx context.Context, id uuid.UUID) (*models.Profile, error) {
	p, err := scanProfile(s.pool.QueryRow(ctx,
		`SELECT `+profileColumns+` FROM profiles WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get profile: %w", err)
	}
	return p, nil
}

// CandidatePool returns up to limit onboarded profiles other than the
// requester, newest first.
func (s *Postgres) CandidatePool(ctx context.Context, excludeID uuid.UUID, limit int) ([]models.Profile, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT `+profileColumns+`
           FROM profiles
          WHERE id <> $1 AND onboarding_completed = TRUE
          ORDER BY created_at DESC
          LIMIT $2`, excludeID, limit)
	if err != nil {
		return nil, fmt.Errorf("candidate pool: %w", err)
	}
	defer rows.Close()

	pool := make([]models.Profile, 0, limit)
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, fmt.Errorf("candidate pool: %w", err)
		}
		pool = append(pool, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("candidate pool: %w", err)
	}
	return pool, nil
}

// ReplaceMatches swaps the requester's match set for drafts in one
// transaction. The delete runs even when drafts is empty so stale rows
// never outlive a run.
func (s *Postgres) ReplaceMatches(ctx context.Context, userID uuid.UUID, drafts []models.Match) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("replace matches: begin: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx,
		`DELETE FROM matches WHERE user1_id = $1`, userID); err != nil {
		return fmt.Errorf("replace matches: delete: %w", err)
	}

	if len(drafts) > 0 {
		batch := &pgx.Batch{}
		for _, d := range drafts {
			batch.Queue(
				`INSERT INTO matches (user1_id, user2_id, match_score, match_reason, status)
                 VALUES ($1, $2, $3, $4, $5)`,
				d.User1ID, d.User2ID, d.MatchScore, d.MatchReason, d.Status)
		}
		br := tx.SendBatch(ctx, batch)
		for range drafts {
			if _, err := br.Exec(); err != nil {
				br.Close()
				return fmt.Errorf("replace matches: insert: %w", err)
			}
		}
		if err := br.Close(); err != nil {
			return fmt.Errorf("replace matches: close batch: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("replace matches: commit: %w", err)
	}
	return nil
}

// MatchesWithProfiles returns the requester's matches joined with the
// candidate profiles, highest score first.
func (s *Postgres) MatchesWithProfiles(ctx context.Context, userID uuid.UUID) ([]models.MatchWithProfile, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT m.id, m.user1_id, m.user2_id, m.match_score,
                COALESCE(m.match_reason, '{}'), m.status, m.created_at, m.updated_at,
                p.id, p.name, p.headline, p.role,
                COALESCE(p.skills, '{}'), COALESCE(p.industries, '{}'),
                p.avatar_url, p.status
           FROM matches m
           JOIN profiles p ON p.id = m.user2_id
          WHERE m.user1_id = $1
          ORDER BY m.match_score DESC, m.created_at DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("matches with profiles: %w", err)
	}
	defer rows.Close()

	matches := []models.MatchWithProfile{}
	for rows.Next() {
		var mw models.MatchWithProfile
		if err := rows.Scan(
			&mw.ID, &mw.User1ID, &mw.User2ID, &mw.MatchScore,
			&mw.MatchReason, &mw.Match.Status, &mw.CreatedAt, &mw.UpdatedAt,
			&mw.Profile.ID, &mw.Profile.Name, &mw.Profile.Headline, &mw.Profile.Role,
			&mw.Profile.Skills, &mw.Profile.Industries,
			&mw.Profile.AvatarURL, &mw.Profile.Status,
		); err != nil {
			return nil, fmt.Errorf("matches with profiles: %w", err)
		}
		if mw.MatchReason == nil {
			mw.MatchReason = []string{}
		}
		matches = append(matches, mw)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("matches with profiles: %w", err)
	}
	return matches, nil
}
