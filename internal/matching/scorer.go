package matching

import (
	"context"
	"encoding/json"
	"math"
	"strconv"
	"strings"

	_ "embed"

	"go.uber.org/zap"

	"COFOUNDER-SPHERE_BACK-END/internal/logger"
	"COFOUNDER-SPHERE_BACK-END/internal/models"
)

// contentGenerator is the slice of the Gemini client the scorer needs.
type contentGenerator interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
}

//go:embed prompt.md
var promptTemplate string

// defaultScore is substituted when the reasoning service answers with a
// shape we cannot read. It is a degraded primary-path value, not the
// fallback formula.
const defaultScore = 50

// fallbackReasons accompany every formula-scored result:
// "shared interests", "complementary roles".
var fallbackReasons = []string{"공통 관심사", "역할 상호보완"}

// Scorer computes a compatibility result for a pair of founder profiles.
// The primary path asks the external reasoning service; any failure there
// degrades to a deterministic local formula. Score never returns an error.
type Scorer struct {
	generator contentGenerator
	logger    *zap.Logger
	maxLogLen int
}

// NewScorer creates a Scorer. A nil generator is valid and means
// formula-only scoring (no API key configured).
func NewScorer(generator contentGenerator, logger *zap.Logger) *Scorer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Scorer{
		generator: generator,
		logger:    logger,
		maxLogLen: 200,
	}
}

// Score produces the MatchResult for (user, candidate).
func (s *Scorer) Score(ctx context.Context, user, candidate *models.Profile) models.MatchResult {
	if s.generator == nil {
		return s.fallback(user, candidate)
	}

	prompt := buildPrompt(user, candidate)

	raw, err := s.generator.GenerateContent(ctx, prompt)
	if err != nil {
		s.logger.Warn("reasoning service failed, scoring with fallback formula",
			zap.String("user_id", user.ID.String()),
			zap.String("candidate_id", candidate.ID.String()),
			zap.Error(err),
		)
		return s.fallback(user, candidate)
	}

	s.logger.Debug("reasoning service response",
		zap.String("candidate_id", candidate.ID.String()),
		zap.String("response_preview", logger.TruncateForLog(raw, s.maxLogLen)),
	)

	score, reasons := parseScoreResponse(raw)
	return models.MatchResult{
		CandidateID: candidate.ID,
		Score:       clampScore(score),
		Reasons:     reasons,
	}
}

// fallback is the deterministic formula used when the reasoning service
// is unavailable: tag overlaps plus a role-complement bonus, capped at 100.
func (s *Scorer) fallback(user, candidate *models.Profile) models.MatchResult {
	score := 10*overlapCount(user.Skills, candidate.Skills) +
		15*overlapCount(user.Industries, candidate.Industries)

	if strings.EqualFold(strings.TrimSpace(user.Role), strings.TrimSpace(candidate.Role)) {
		score += 10
	} else {
		score += 20
	}

	reasons := make([]string, len(fallbackReasons))
	copy(reasons, fallbackReasons)

	return models.MatchResult{
		CandidateID: candidate.ID,
		Score:       clampScore(score),
		Reasons:     reasons,
	}
}

// profileSummary is the subset of a profile the prompt describes.
type profileSummary struct {
	Role       string   `json:"role"`
	Skills     []string `json:"skills"`
	Industries []string `json:"industries"`
	Vision     string   `json:"vision"`
	WorkStyles []string `json:"work_styles"`
}

func buildPrompt(user, candidate *models.Profile) string {
	userJSON, _ := json.MarshalIndent(summarize(user), "", "  ")
	candidateJSON, _ := json.MarshalIndent(summarize(candidate), "", "  ")

	prompt := strings.ReplaceAll(promptTemplate, "{{USER_PROFILE}}", string(userJSON))
	prompt = strings.ReplaceAll(prompt, "{{CANDIDATE_PROFILE}}", string(candidateJSON))
	return prompt
}

func summarize(p *models.Profile) profileSummary {
	summary := profileSummary{
		Role:       p.Role,
		Skills:     p.Skills,
		Industries: p.Industries,
		Vision:     p.Vision,
		WorkStyles: p.WorkStyles,
	}
	if summary.Skills == nil {
		summary.Skills = []string{}
	}
	if summary.Industries == nil {
		summary.Industries = []string{}
	}
	if summary.WorkStyles == nil {
		summary.WorkStyles = []string{}
	}
	return summary
}

// parseScoreResponse reads {"score": n, "reasons": [...]} out of the raw
// service output. Anything unreadable collapses to the degenerate default:
// score 50, no reasons.
func parseScoreResponse(raw string) (int, []string) {
	cleaned := extractJSON(raw)

	var data map[string]any
	if err := json.Unmarshal([]byte(cleaned), &data); err != nil {
		return defaultScore, []string{}
	}

	score := coerceFloat(data["score"])
	if math.IsNaN(score) {
		score = defaultScore
	}

	return int(math.Round(score)), coerceStringSlice(data["reasons"])
}

// extractJSON strips markdown code fences the model sometimes wraps
// around its output.
func extractJSON(raw string) string {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "```") {
		raw = strings.TrimPrefix(raw, "```json")
		raw = strings.TrimPrefix(raw, "```")
		raw = strings.TrimSpace(raw)
		if idx := strings.LastIndex(raw, "```"); idx != -1 {
			raw = raw[:idx]
		}
	}
	raw = strings.Trim(raw, "`")
	return strings.TrimSpace(raw)
}

func coerceFloat(v any) float64 {
	switch val := v.(type) {
	case float64:
		return val
	case int:
		return float64(val)
	case json.Number:
		f, err := val.Float64()
		if err != nil {
			return math.NaN()
		}
		return f
	case string:
		trimmed := strings.TrimSpace(val)
		if trimmed == "" {
			return math.NaN()
		}
		f, err := strconv.ParseFloat(trimmed, 64)
		if err != nil {
			return math.NaN()
		}
		return f
	default:
		return math.NaN()
	}
}

func coerceStringSlice(v any) []string {
	items, ok := v.([]any)
	if !ok {
		return []string{}
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok {
			if s = strings.TrimSpace(s); s != "" {
				out = append(out, s)
			}
		}
	}
	return out
}

// overlapCount counts case-insensitive common entries between two tag lists.
func overlapCount(a, b []string) int {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}

	set := make(map[string]struct{}, len(a))
	for _, tag := range a {
		if tag = strings.ToLower(strings.TrimSpace(tag)); tag != "" {
			set[tag] = struct{}{}
		}
	}

	count := 0
	seen := make(map[string]struct{}, len(b))
	for _, tag := range b {
		tag = strings.ToLower(strings.TrimSpace(tag))
		if tag == "" {
			continue
		}
		if _, dup := seen[tag]; dup {
			continue
		}
		seen[tag] = struct{}{}
		if _, ok := set[tag]; ok {
			count++
		}
	}
	return count
}

func clampScore(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
