package gemini

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
	"google.golang.org/genai"
)

const (
	defaultModel      = "gemini-2.0-flash"
	defaultMaxRetries = 2
	retryDelay        = time.Second
)

// sleep is swappable so retry tests do not wait.
var sleep = time.Sleep

// Options tunes the completion requests issued by a Generator.
type Options struct {
	Model           string
	Temperature     float64
	MaxOutputTokens int
	MaxRetries      int
}

// Generator wraps the Google GenAI client behind the narrow
// text-completion surface the match scorer consumes: one prompt in,
// JSON text out.
type Generator struct {
	client  *genai.Client
	model   string
	config  *genai.GenerateContentConfig
	retries int
	logger  *zap.Logger
}

// NewGenerator creates a new Generator configured for the Gemini API backend.
func NewGenerator(ctx context.Context, apiKey string, opts Options, logger *zap.Logger) (*Generator, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, errors.New("gemini api key is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	model := strings.TrimSpace(opts.Model)
	if model == "" {
		model = defaultModel
	}
	retries := opts.MaxRetries
	if retries <= 0 {
		retries = defaultMaxRetries
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	temperature := float32(opts.Temperature)
	return &Generator{
		client: client,
		model:  model,
		config: &genai.GenerateContentConfig{
			Temperature:      &temperature,
			MaxOutputTokens:  int32(opts.MaxOutputTokens),
			ResponseMIMEType: "application/json",
		},
		retries: retries,
		logger:  logger,
	}, nil
}

// GenerateContent sends the prompt to Gemini and returns the textual
// response. Transient API failures (quota, server errors) are retried a
// bounded number of times before the error is surfaced.
func (g *Generator) GenerateContent(ctx context.Context, prompt string) (string, error) {
	if g == nil || g.client == nil {
		return "", errors.New("gemini generator is not initialized")
	}

	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return "", errors.New("prompt must not be empty")
	}

	var lastErr error
	for attempt := 1; attempt <= g.retries; attempt++ {
		resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), g.config)
		if err == nil {
			output := responseText(resp)
			if output == "" {
				return "", errors.New("gemini api returned empty response")
			}
			return output, nil
		}

		lastErr = err
		if attempt == g.retries || !isRetryable(err) {
			break
		}
		g.logger.Debug("retrying gemini request",
			zap.Int("attempt", attempt),
			zap.Error(err),
		)
		sleep(retryDelay)
	}

	return "", fmt.Errorf("generate content: %w", lastErr)
}

// Model returns the configured model name.
func (g *Generator) Model() string {
	if g == nil {
		return ""
	}
	return g.model
}

// responseText flattens the candidates of a response into one string.
func responseText(resp *genai.GenerateContentResponse) string {
	if resp == nil {
		return ""
	}

	var builder strings.Builder
	for _, candidate := range resp.Candidates {
		if candidate == nil || candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if part == nil {
				continue
			}
			text := strings.TrimSpace(part.Text)
			if text == "" {
				continue
			}
			if builder.Len() > 0 {
				builder.WriteString("\n")
			}
			builder.WriteString(text)
		}
	}

	return strings.TrimSpace(builder.String())
}

// isRetryable reports whether the API error is worth another attempt.
func isRetryable(err error) bool {
	var apiErr genai.APIError
	if !errors.As(err, &apiErr) {
		return false
	}
	switch apiErr.Code {
	case http.StatusTooManyRequests, http.StatusInternalServerError, http.StatusServiceUnavailable:
		return true
	}
	return false
}
