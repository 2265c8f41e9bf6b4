// Package generation invokes the generative-text backend. The response
// envelope is deeply nested and every level is optional upstream, so it is
// unwrapped in one explicit decoding step instead of scattered nil checks.
package generation

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"resumifai-go/internal/logger"
	"resumifai-go/internal/timeout"
)

// ErrGeneration covers both a failed backend call and a response with no
// usable candidate. Match it with errors.Is.
var ErrGeneration = errors.New("generation backend failed")

// Generator maps a prompt to generated text.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Gemini talks to the Google generative-language API. The client is
// constructed once at process start and shared: it is stateless and safe
// for concurrent use.
type Gemini struct {
	client *genai.Client
	model  *genai.GenerativeModel
	log    *logger.Logger
}

func NewGemini(ctx context.Context, apiKey, modelName string, log *logger.Logger) (*Gemini, error) {
	client, err := timeout.Do(ctx, timeout.ClientInit, func(ctx context.Context) (*genai.Client, error) {
		return genai.NewClient(ctx, option.WithAPIKey(apiKey))
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	return &Gemini{
		client: client,
		model:  client.GenerativeModel(modelName),
		log:    log.WithComponent("generation"),
	}, nil
}

func (g *Gemini) Close() error {
	return g.client.Close()
}

func (g *Gemini) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := timeout.Do(ctx, timeout.Generation, func(ctx context.Context) (*genai.GenerateContentResponse, error) {
		return g.model.GenerateContent(ctx, genai.Text(prompt))
	})
	if err != nil {
		if errors.Is(err, timeout.ErrDeadline) {
			return "", err
		}
		return "", fmt.Errorf("%w: %v", ErrGeneration, err)
	}

	text, err := extractText(resp)
	if err != nil {
		return "", err
	}

	g.log.WithField("generated_chars", len(text)).Debug("generation finished")
	return text, nil
}

// extractText unwraps candidates[0].content.parts[0]. Absence at any level
// is a generation failure, never a panic.
func extractText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 {
		return "", fmt.Errorf("%w: response has no candidates", ErrGeneration)
	}

	candidate := resp.Candidates[0]
	if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return "", fmt.Errorf("%w: candidate has no content parts", ErrGeneration)
	}

	text, ok := candidate.Content.Parts[0].(genai.Text)
	if !ok {
		return "", fmt.Errorf("%w: first content part is not text", ErrGeneration)
	}
	if strings.TrimSpace(string(text)) == "" {
		return "", fmt.Errorf("%w: generated text is empty", ErrGeneration)
	}
	return string(text), nil
}
