package matching

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"COFOUNDER-SPHERE_BACK-END/internal/config"
	"COFOUNDER-SPHERE_BACK-END/internal/models"
)

// Store is the persistence gateway the engine drives. The Postgres
// implementation lives in internal/store.
type Store interface {
	// GetProfile returns (nil, nil) when the profile does not exist.
	GetProfile(ctx context.Context, id uuid.UUID) (*models.Profile, error)

	// CandidatePool returns onboarded profiles other than excludeID,
	// newest first, capped at limit.
	CandidatePool(ctx context.Context, excludeID uuid.UUID, limit int) ([]models.Profile, error)

	// ReplaceMatches atomically deletes every match owned by userID and
	// inserts drafts; the delete runs even when drafts is empty.
	ReplaceMatches(ctx context.Context, userID uuid.UUID, drafts []models.Match) error

	// MatchesWithProfiles returns userID's matches joined with candidate
	// profile display fields, score descending.
	MatchesWithProfiles(ctx context.Context, userID uuid.UUID) ([]models.MatchWithProfile, error)
}

// Notifier is told when a run persisted new matches. Implementations must
// not block the run on delivery failures.
type Notifier interface {
	MatchesGenerated(ctx context.Context, userID uuid.UUID, count int)
}

// scorer is satisfied by *Scorer; tests substitute deterministic fakes.
type scorer interface {
	Score(ctx context.Context, user, candidate *models.Profile) models.MatchResult
}

// Engine regenerates the full match set for one user. It is fire-and-forget:
// no method returns an error to the caller. Every failure mode is logged
// and swallowed, as the invoking HTTP layer has already responded.
type Engine struct {
	store     Store
	scorer    scorer
	notifier  Notifier
	limiter   *rate.Limiter
	threshold int
	poolLimit int
	logger    *zap.Logger
}

// NewEngine wires the orchestrator. notifier may be nil.
func NewEngine(store Store, sc scorer, notifier Notifier, cfg config.MatchingConfig, log *zap.Logger) *Engine {
	if log == nil {
		log = zap.NewNop()
	}

	// Every scorer call holds one token; the refill interval is the
	// enforced gap between calls to the reasoning service. Interval 0
	// disables pacing.
	limit := rate.Inf
	if cfg.ScoreInterval > 0 {
		limit = rate.Every(cfg.ScoreInterval)
	}

	return &Engine{
		store:     store,
		scorer:    sc,
		notifier:  notifier,
		limiter:   rate.NewLimiter(limit, 1),
		threshold: cfg.ScoreThreshold,
		poolLimit: cfg.CandidateLimit,
		logger:    log,
	}
}

// GenerateMatches runs one orchestration for userID: load profile, load
// the candidate pool, score candidates sequentially, and replace the
// user's persisted match set with the drafts above the threshold.
func (e *Engine) GenerateMatches(ctx context.Context, userID uuid.UUID) {
	log := e.logger.With(zap.String("user_id", userID.String()))

	profile, err := e.store.GetProfile(ctx, userID)
	if err != nil {
		log.Error("load profile failed, aborting run", zap.Error(err))
		return
	}
	if profile == nil {
		// Distinct from the empty-pool case below so the two silent
		// no-ops stay distinguishable in monitoring.
		log.Warn("profile not found, skipping match generation")
		return
	}

	pool, err := e.store.CandidatePool(ctx, userID, e.poolLimit)
	if err != nil {
		log.Error("load candidate pool failed, aborting run", zap.Error(err))
		return
	}
	if len(pool) == 0 {
		log.Info("no candidates available, skipping match generation")
		return
	}

	drafts := make([]models.Match, 0, len(pool))
	for i := range pool {
		// Pace the reasoning service before every call. The limiter's
		// single burst token lets the first call through immediately;
		// every later call waits out the full interval.
		if err := e.limiter.Wait(ctx); err != nil {
			log.Warn("run cancelled while rate limited, nothing persisted", zap.Error(err))
			return
		}

		candidate := &pool[i]
		result := e.scorer.Score(ctx, profile, candidate)

		if result.Score >= e.threshold {
			drafts = append(drafts, models.Match{
				User1ID:     userID,
				User2ID:     result.CandidateID,
				MatchScore:  result.Score,
				MatchReason: result.Reasons,
				Status:      models.MatchStatusPending,
			})
		}
	}

	if err := e.store.ReplaceMatches(ctx, userID, drafts); err != nil {
		log.Error("persisting match set failed", zap.Error(err))
		return
	}

	log.Info("match generation completed",
		zap.Int("candidates_scored", len(pool)),
		zap.Int("matches_persisted", len(drafts)),
	)

	if len(drafts) > 0 && e.notifier != nil {
		e.notifier.MatchesGenerated(ctx, userID, len(drafts))
	}
}
