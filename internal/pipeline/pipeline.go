// Package pipeline orchestrates one request: validate, acquire the
// transcript, build the prompt, invoke generation. Each stage either
// advances or short-circuits with a typed failure; nothing is retried and
// no state survives the request.
package pipeline

import (
	"context"
	"errors"
	"strings"

	"resumifai-go/internal/logger"
	"resumifai-go/internal/prompt"
	"resumifai-go/internal/types"
)

// ErrMissingVideoID is the only validation failure: everything else about
// the request is permissive by design.
var ErrMissingVideoID = errors.New("missing video ID")

// TranscriptFetcher resolves a video reference into normalized text.
type TranscriptFetcher interface {
	Fetch(ctx context.Context, videoID, sourceURL string) (string, error)
}

// Generator maps a prompt to generated text.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Request is a validated, normalized inbound request.
type Request struct {
	VideoID   string
	SourceURL string
	Mode      prompt.Mode
	WordLimit any
}

// Validate checks the wire body and normalizes it. Only a missing video
// identifier is rejected; mode falls back to summary and the word limit is
// carried through opaquely.
func Validate(body types.SummarizeRequest) (Request, error) {
	videoID := strings.TrimSpace(body.VideoID)
	if videoID == "" {
		return Request{}, ErrMissingVideoID
	}

	return Request{
		VideoID:   videoID,
		SourceURL: strings.TrimSpace(body.URL),
		Mode:      prompt.ParseMode(body.Mode),
		WordLimit: body.WordLimit,
	}, nil
}

type Pipeline struct {
	transcripts TranscriptFetcher
	generator   Generator
	log         *logger.Logger
}

func New(transcripts TranscriptFetcher, generator Generator, log *logger.Logger) *Pipeline {
	return &Pipeline{
		transcripts: transcripts,
		generator:   generator,
		log:         log.WithComponent("pipeline"),
	}
}

// Summarize runs the full pipeline and returns the generated text.
func (p *Pipeline) Summarize(ctx context.Context, req Request) (string, error) {
	transcript, err := p.transcripts.Fetch(ctx, req.VideoID, req.SourceURL)
	if err != nil {
		return "", err
	}
	p.log.WithField("video_id", req.VideoID).Info("transcript acquired")

	generated, err := p.generator.Generate(ctx, prompt.Build(transcript, req.Mode, prompt.LimitClause(req.WordLimit)))
	if err != nil {
		return "", err
	}
	p.log.WithField("video_id", req.VideoID).Info("generation finished")

	return generated, nil
}

// Transcribe is the reduced pipeline: acquisition only, no generation.
func (p *Pipeline) Transcribe(ctx context.Context, videoID, sourceURL string) (string, error) {
	videoID = strings.TrimSpace(videoID)
	if videoID == "" && strings.TrimSpace(sourceURL) == "" {
		return "", ErrMissingVideoID
	}
	return p.transcripts.Fetch(ctx, videoID, sourceURL)
}
