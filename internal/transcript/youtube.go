package transcript

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/horiagug/youtube-transcript-api-go/pkg/yt_transcript"
	"github.com/horiagug/youtube-transcript-api-go/pkg/yt_transcript_models"

	"resumifai-go/internal/logger"
	"resumifai-go/internal/timeout"
)

// defaultLanguages is the caption-track preference order tried until one
// yields a track. The upstream library rejects a lookup without a language
// filter, so a broad fallback list stands in for "the video's own default
// track"; videos in any listed language still summarize in that language.
var defaultLanguages = []string{
	"en", "en-US", "en-GB", "pt", "pt-BR", "es", "fr", "de", "it",
	"ja", "ko", "zh", "hi", "ar", "ru",
}

// captionLister is the slice of the transcript client the lookup needs.
type captionLister func(videoID string, languages []string) ([]yt_transcript_models.Transcript, error)

// YouTube is the fallback provider: the identifier is treated as a direct
// video ID. Client construction does no I/O, so only the caption listing
// itself is guarded, at the metadata budget.
type YouTube struct {
	languages []string
	log       *logger.Logger
}

func NewYouTube(languages []string, log *logger.Logger) *YouTube {
	if len(languages) == 0 {
		languages = defaultLanguages
	}
	return &YouTube{
		languages: languages,
		log:       log.WithComponent("youtube"),
	}
}

// Match always accepts: YouTube is the last entry in the dispatch order.
func (y *YouTube) Match(string) bool { return true }

func (y *YouTube) Fetch(ctx context.Context, videoID, _ string) (string, error) {
	client := yt_transcript.NewClient()

	transcripts, err := timeout.Do(ctx, timeout.MetadataFetch, func(context.Context) ([]yt_transcript_models.Transcript, error) {
		return firstAvailableTrack(videoID, y.languages, client.GetTranscripts)
	})
	if err != nil {
		if errors.Is(err, timeout.ErrDeadline) {
			return "", err
		}
		if isCaptionsNotFound(err) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("%w: %v", ErrProvider, err)
	}
	if len(transcripts) == 0 {
		return "", ErrNotFound
	}

	y.log.WithField("video_id", videoID).Debug("caption track fetched")
	return flattenLines(transcripts[0].Lines), nil
}

// firstAvailableTrack tries each language in order and keeps the first one
// that yields a track. A missing-captions answer moves on to the next
// language; any other failure is a real provider error and short-circuits.
func firstAvailableTrack(videoID string, languages []string, list captionLister) ([]yt_transcript_models.Transcript, error) {
	var lastErr error
	for _, lang := range languages {
		transcripts, err := list(videoID, []string{lang})
		if err != nil {
			if isCaptionsNotFound(err) {
				lastErr = err
				continue
			}
			return nil, err
		}
		if len(transcripts) > 0 {
			return transcripts, nil
		}
	}
	return nil, lastErr
}

func isCaptionsNotFound(err error) bool {
	return err != nil && strings.Contains(strings.ToLower(err.Error()), "captions not found")
}

// flattenLines joins caption segments into one string with single-space
// separators, preserving the original order.
func flattenLines(lines []yt_transcript_models.TranscriptLine) string {
	parts := make([]string, 0, len(lines))
	for _, line := range lines {
		if line.Text == "" {
			continue
		}
		parts = append(parts, line.Text)
	}
	return strings.Join(parts, " ")
}
