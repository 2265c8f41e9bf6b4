package transcript

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"resumifai-go/internal/logger"
	"resumifai-go/internal/timeout"
)

// tiktokMarker is the domain token that routes a URL to this provider.
const tiktokMarker = "tiktok"

// vttHeader is the subtitle-format preamble the upstream service leaves at
// the start of every caption blob.
const vttHeader = "WEBVTT"

// The transport timeout sits above the guard budget so an expiry is always
// classified by the guard as a deadline, never by the client as a transport
// failure.
var tiktokHTTPClient = &http.Client{Timeout: timeout.TranscriptFetch + 2*time.Second}

type tiktokRequest struct {
	URL string `json:"url"`
}

// TikTok fetches captions from a third-party transcription endpoint that
// answers { "transcripts": { trackID: captionBlob } }.
type TikTok struct {
	endpoint string
	client   *http.Client
	log      *logger.Logger
}

func NewTikTok(endpoint string, log *logger.Logger) *TikTok {
	return &TikTok{
		endpoint: endpoint,
		client:   tiktokHTTPClient,
		log:      log.WithComponent("tiktok"),
	}
}

func (t *TikTok) Match(sourceURL string) bool {
	return strings.Contains(sourceURL, tiktokMarker)
}

func (t *TikTok) Fetch(ctx context.Context, _, sourceURL string) (string, error) {
	body, err := timeout.Do(ctx, timeout.TranscriptFetch, func(ctx context.Context) ([]byte, error) {
		return t.post(ctx, sourceURL)
	})
	if err != nil {
		if errors.Is(err, timeout.ErrDeadline) {
			return "", err
		}
		return "", fmt.Errorf("%w: %v", ErrProvider, err)
	}

	text, found, err := lastTranscript(body)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrProvider, err)
	}
	if !found {
		return "", ErrNotFound
	}
	return normalizeCaptionBlob(text), nil
}

func (t *TikTok) post(ctx context.Context, sourceURL string) ([]byte, error) {
	payload, err := json.Marshal(tiktokRequest{URL: sourceURL})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := t.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode >= 300 {
		return nil, fmt.Errorf("transcription endpoint returned %d: %s", resp.StatusCode, body)
	}
	return body, nil
}

// lastTranscript picks the final entry of the transcripts object in its
// literal insertion order. Upstream convention says later tracks are more
// complete; a Go map would scramble that order, so the object is walked
// token by token instead.
func lastTranscript(body []byte) (string, bool, error) {
	var envelope struct {
		Transcripts json.RawMessage `json:"transcripts"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return "", false, fmt.Errorf("decode response: %w", err)
	}
	if len(envelope.Transcripts) == 0 || string(envelope.Transcripts) == "null" {
		return "", false, nil
	}

	dec := json.NewDecoder(bytes.NewReader(envelope.Transcripts))
	open, err := dec.Token()
	if err != nil {
		return "", false, fmt.Errorf("decode transcripts: %w", err)
	}
	if delim, ok := open.(json.Delim); !ok || delim != '{' {
		return "", false, fmt.Errorf("transcripts is not an object: %v", open)
	}

	var last string
	var found bool
	for dec.More() {
		if _, err := dec.Token(); err != nil { // track identifier
			return "", false, fmt.Errorf("decode track key: %w", err)
		}
		var blob string
		if err := dec.Decode(&blob); err != nil {
			return "", false, fmt.Errorf("decode track blob: %w", err)
		}
		last, found = blob, true
	}
	return last, found, nil
}

// normalizeCaptionBlob strips the subtitle-format preamble and the
// whitespace that follows it.
func normalizeCaptionBlob(blob string) string {
	blob = strings.TrimPrefix(blob, vttHeader)
	return strings.TrimLeft(blob, " \t\r\n")
}
