// Package transcript acquires and normalizes spoken-word transcripts.
// Heterogeneous provider payloads are flattened into one plain string at
// this boundary so no downstream stage ever branches on provider identity.
package transcript

import (
	"context"
	"errors"
	"strings"

	"resumifai-go/internal/logger"
)

var (
	// ErrNotFound means the provider answered but had no transcript.
	ErrNotFound = errors.New("transcript not found")
	// ErrProvider means the provider call itself failed or returned a
	// malformed payload.
	ErrProvider = errors.New("transcript provider failed")
)

// Provider turns a video reference into normalized transcript text.
type Provider interface {
	// Match reports whether this provider handles the given source URL.
	Match(sourceURL string) bool
	// Fetch returns the normalized transcript for the video.
	Fetch(ctx context.Context, videoID, sourceURL string) (string, error)
}

// Dispatcher tries providers in order and delegates to the first whose
// Match accepts the source URL. Adding a provider never touches this core.
type Dispatcher struct {
	providers []Provider
	log       *logger.Logger
}

func NewDispatcher(log *logger.Logger, providers ...Provider) *Dispatcher {
	return &Dispatcher{
		providers: providers,
		log:       log.WithComponent("dispatcher"),
	}
}

// Fetch resolves the transcript for one request. An empty normalized
// transcript counts as not found regardless of which provider produced it.
func (d *Dispatcher) Fetch(ctx context.Context, videoID, sourceURL string) (string, error) {
	for _, p := range d.providers {
		if !p.Match(sourceURL) {
			continue
		}

		text, err := p.Fetch(ctx, videoID, sourceURL)
		if err != nil {
			return "", err
		}
		if strings.TrimSpace(text) == "" {
			return "", ErrNotFound
		}

		d.log.WithField("transcript_chars", len(text)).Debug("transcript acquired")
		return text, nil
	}
	return "", ErrNotFound
}
