package gemini

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"google.golang.org/genai"
)

func TestNewGeneratorRequiresAPIKey(t *testing.T) {
	_, err := NewGenerator(context.Background(), "   ", Options{}, zap.NewNop())
	require.Error(t, err)
}

func TestGenerateContentRejectsEmptyPrompt(t *testing.T) {
	g := &Generator{client: &genai.Client{}, model: defaultModel, retries: 1, logger: zap.NewNop()}

	_, err := g.GenerateContent(context.Background(), "  \n ")
	require.Error(t, err)
}

func TestResponseTextFlattensCandidates(t *testing.T) {
	resp := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{
			{Content: &genai.Content{Parts: []*genai.Part{{Text: " {\"score\": 80} "}, nil}}},
			nil,
			{Content: &genai.Content{Parts: []*genai.Part{{Text: ""}}}},
		},
	}

	require.Equal(t, `{"score": 80}`, responseText(resp))
	require.Equal(t, "", responseText(nil))
}

func TestIsRetryable(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want bool
	}{
		{"quota", genai.APIError{Code: http.StatusTooManyRequests, Status: "RESOURCE_EXHAUSTED"}, true},
		{"server", genai.APIError{Code: http.StatusInternalServerError, Status: "INTERNAL"}, true},
		{"unavailable", genai.APIError{Code: http.StatusServiceUnavailable, Status: "UNAVAILABLE"}, true},
		{"bad request", genai.APIError{Code: http.StatusBadRequest, Status: "INVALID_ARGUMENT"}, false},
		{"plain error", errors.New("dial tcp: connection refused"), false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, isRetryable(tc.err))
		})
	}
}
