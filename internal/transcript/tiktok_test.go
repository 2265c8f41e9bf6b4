package transcript

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"resumifai-go/internal/logger"
	"resumifai-go/internal/timeout"
)

func TestTikTokMatch(t *testing.T) {
	p := NewTikTok("http://unused", logger.New())

	if !p.Match("https://www.tiktok.com/@user/video/123") {
		t.Error("expected tiktok URL to match")
	}
	if p.Match("https://youtu.be/abc123") {
		t.Error("expected youtube URL not to match")
	}
	if p.Match("") {
		t.Error("expected empty URL not to match")
	}
}

func TestTikTokPicksLastTrackAndStripsHeader(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("unexpected method %s", r.Method)
		}
		w.Header().Set("Content-Type", "application/json")
		// Insertion order matters: the last entry wins.
		w.Write([]byte(`{"transcripts":{"a":"WEBVTT\nhello","b":"WEBVTT\nworld"}}`))
	}))
	defer srv.Close()

	p := NewTikTok(srv.URL, logger.New())
	got, err := p.Fetch(context.Background(), "", "https://www.tiktok.com/@user/video/123")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "world" {
		t.Fatalf("expected last track with header stripped, got %q", got)
	}
}

func TestTikTokEmptyPayloadIsNotFound(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"no transcripts field", `{}`},
		{"null transcripts", `{"transcripts":null}`},
		{"empty transcripts object", `{"transcripts":{}}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			p := NewTikTok(srv.URL, logger.New())
			_, err := p.Fetch(context.Background(), "", "https://www.tiktok.com/@u/video/1")
			if !errors.Is(err, ErrNotFound) {
				t.Fatalf("expected ErrNotFound, got %v", err)
			}
		})
	}
}

func TestTikTokMalformedPayloadIsProviderError(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"not json", `WEBVTT`},
		{"transcripts is an array", `{"transcripts":["hello"]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			p := NewTikTok(srv.URL, logger.New())
			_, err := p.Fetch(context.Background(), "", "https://www.tiktok.com/@u/video/1")
			if !errors.Is(err, ErrProvider) {
				t.Fatalf("expected ErrProvider, got %v", err)
			}
		})
	}
}

func TestTikTokUpstreamFailureIsProviderError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "upstream exploded", http.StatusInternalServerError)
	}))
	defer srv.Close()

	p := NewTikTok(srv.URL, logger.New())
	_, err := p.Fetch(context.Background(), "", "https://www.tiktok.com/@u/video/1")
	if !errors.Is(err, ErrProvider) {
		t.Fatalf("expected ErrProvider, got %v", err)
	}
}

func TestTransportTimeoutExceedsGuardBudget(t *testing.T) {
	// At expiry the guard must win the race and classify the failure as a
	// deadline; a transport timeout at or below the budget would race it.
	if tiktokHTTPClient.Timeout <= timeout.TranscriptFetch {
		t.Fatalf("transport timeout %s must exceed the guard budget %s",
			tiktokHTTPClient.Timeout, timeout.TranscriptFetch)
	}
}

func TestNormalizeCaptionBlob(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"WEBVTT\nworld", "world"},
		{"WEBVTT  \r\n  line one", "line one"},
		{"no header here", "no header here"},
		{"WEBVTT", ""},
	}
	for _, tt := range tests {
		if got := normalizeCaptionBlob(tt.in); got != tt.want {
			t.Errorf("normalizeCaptionBlob(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
