package matching

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"COFOUNDER-SPHERE_BACK-END/internal/models"
)

type stubGenerator struct {
	response   string
	err        error
	lastPrompt string
	calls      int
}

func (s *stubGenerator) GenerateContent(_ context.Context, prompt string) (string, error) {
	s.calls++
	s.lastPrompt = prompt
	if s.err != nil {
		return "", s.err
	}
	return s.response, nil
}

func founderProfile(role string, skills, industries []string) *models.Profile {
	return &models.Profile{
		ID:         uuid.New(),
		Name:       "Test Founder",
		Role:       role,
		Skills:     skills,
		Industries: industries,
		Vision:     "Build something people want",
		WorkStyles: []string{"remote"},
	}
}

func TestScorePrimaryPath(t *testing.T) {
	stub := &stubGenerator{response: `{"score": 82, "reasons": ["Complementary skills", "Shared fintech focus"]}`}
	scorer := NewScorer(stub, zap.NewNop())

	user := founderProfile("CTO", []string{"Go", "ML"}, []string{"fintech"})
	candidate := founderProfile("CEO", []string{"Sales"}, []string{"fintech"})

	result := scorer.Score(context.Background(), user, candidate)

	require.Equal(t, candidate.ID, result.CandidateID)
	require.Equal(t, 82, result.Score)
	require.Equal(t, []string{"Complementary skills", "Shared fintech focus"}, result.Reasons)
}

func TestScorePromptDescribesBothProfiles(t *testing.T) {
	stub := &stubGenerator{response: `{"score": 71, "reasons": []}`}
	scorer := NewScorer(stub, zap.NewNop())

	user := founderProfile("CTO", []string{"Go"}, []string{"healthtech"})
	candidate := founderProfile("CEO", []string{"Sales"}, []string{"healthtech"})

	scorer.Score(context.Background(), user, candidate)

	require.Contains(t, stub.lastPrompt, `"CTO"`)
	require.Contains(t, stub.lastPrompt, `"CEO"`)
	require.Contains(t, stub.lastPrompt, `"healthtech"`)
	require.Contains(t, stub.lastPrompt, "Build something people want")
	require.NotContains(t, stub.lastPrompt, "{{USER_PROFILE}}")
	require.NotContains(t, stub.lastPrompt, "{{CANDIDATE_PROFILE}}")
}

func TestScoreStripsCodeFences(t *testing.T) {
	stub := &stubGenerator{response: "```json\n{\"score\": 90, \"reasons\": [\"Great fit\"]}\n```"}
	scorer := NewScorer(stub, zap.NewNop())

	result := scorer.Score(context.Background(),
		founderProfile("CTO", nil, nil),
		founderProfile("CEO", nil, nil))

	require.Equal(t, 90, result.Score)
	require.Equal(t, []string{"Great fit"}, result.Reasons)
}

func TestScoreMalformedResponseUsesDegenerateDefault(t *testing.T) {
	cases := []struct {
		name     string
		response string
	}{
		{"not json", "I think they would get along great."},
		{"missing score", `{"reasons": ["ok"]}`},
		{"score wrong type", `{"score": {"value": 80}, "reasons": []}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			stub := &stubGenerator{response: tc.response}
			scorer := NewScorer(stub, zap.NewNop())

			result := scorer.Score(context.Background(),
				founderProfile("CTO", nil, nil),
				founderProfile("CEO", nil, nil))

			require.Equal(t, defaultScore, result.Score)
			require.NotNil(t, result.Reasons)
		})
	}
}

func TestScoreClampsServiceScore(t *testing.T) {
	stub := &stubGenerator{response: `{"score": 250, "reasons": []}`}
	scorer := NewScorer(stub, zap.NewNop())

	result := scorer.Score(context.Background(),
		founderProfile("CTO", nil, nil),
		founderProfile("CEO", nil, nil))
	require.Equal(t, 100, result.Score)

	stub.response = `{"score": -5, "reasons": []}`
	result = scorer.Score(context.Background(),
		founderProfile("CTO", nil, nil),
		founderProfile("CEO", nil, nil))
	require.Equal(t, 0, result.Score)
}

func TestScoreFallbackOnServiceError(t *testing.T) {
	stub := &stubGenerator{err: errors.New("quota exhausted")}
	scorer := NewScorer(stub, zap.NewNop())

	user := founderProfile("CTO", []string{"Go", "ML"}, []string{"fintech"})
	candidate := founderProfile("CEO", []string{"go", "sales"}, []string{"fintech", "edtech"})

	result := scorer.Score(context.Background(), user, candidate)

	// 1 shared skill (case-insensitive), 1 shared industry, roles differ:
	// 10 + 15 + 20.
	require.Equal(t, 45, result.Score)
	require.Equal(t, []string{"공통 관심사", "역할 상호보완"}, result.Reasons)
	require.Equal(t, 1, stub.calls)
}

func TestScoreWithoutGeneratorUsesFallback(t *testing.T) {
	scorer := NewScorer(nil, zap.NewNop())

	result := scorer.Score(context.Background(),
		founderProfile("CTO", []string{"Go"}, nil),
		founderProfile("CTO", []string{"Rust"}, nil))

	// Disjoint skills and industries, same role: only the 10-point bonus.
	require.Equal(t, 10, result.Score)
	require.Equal(t, []string{"공통 관심사", "역할 상호보완"}, result.Reasons)
}

func TestFallbackFormula(t *testing.T) {
	scorer := NewScorer(nil, zap.NewNop())

	cases := []struct {
		name      string
		user      *models.Profile
		candidate *models.Profile
		want      int
	}{
		{
			name:      "disjoint tags, same role",
			user:      founderProfile("CEO", []string{"a"}, []string{"x"}),
			candidate: founderProfile("CEO", []string{"b"}, []string{"y"}),
			want:      10,
		},
		{
			name:      "disjoint tags, different roles",
			user:      founderProfile("CEO", []string{"a"}, []string{"x"}),
			candidate: founderProfile("CTO", []string{"b"}, []string{"y"}),
			want:      20,
		},
		{
			name:      "two skills one industry, different roles",
			user:      founderProfile("CEO", []string{"go", "sql"}, []string{"fintech"}),
			candidate: founderProfile("CTO", []string{"go", "sql", "ml"}, []string{"fintech"}),
			want:      10*2 + 15 + 20,
		},
		{
			name: "huge overlap caps at 100",
			user: founderProfile("CEO",
				[]string{"a", "b", "c", "d", "e", "f"},
				[]string{"x", "y", "z"}),
			candidate: founderProfile("CTO",
				[]string{"a", "b", "c", "d", "e", "f"},
				[]string{"x", "y", "z"}),
			want: 100,
		},
		{
			name:      "empty tag lists",
			user:      founderProfile("CEO", []string{}, []string{}),
			candidate: founderProfile("CTO", []string{}, []string{}),
			want:      20,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			result := scorer.Score(context.Background(), tc.user, tc.candidate)
			require.Equal(t, tc.want, result.Score)
			require.GreaterOrEqual(t, result.Score, 0)
			require.LessOrEqual(t, result.Score, 100)
		})
	}
}

func TestFallbackRoleComparisonIgnoresCaseAndSpace(t *testing.T) {
	scorer := NewScorer(nil, zap.NewNop())

	result := scorer.Score(context.Background(),
		founderProfile(" cto ", nil, nil),
		founderProfile("CTO", nil, nil))

	require.Equal(t, 10, result.Score)
}

func TestExtractJSON(t *testing.T) {
	fenced := "```json\n{\"score\": 1}\n```"
	require.Equal(t, `{"score": 1}`, extractJSON(fenced))
	require.Equal(t, `{"score": 1}`, extractJSON(`{"score": 1}`))
	require.False(t, strings.Contains(extractJSON("`{\"score\": 1}`"), "`"))
}
