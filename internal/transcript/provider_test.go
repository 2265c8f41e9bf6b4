package transcript

import (
	"context"
	"errors"
	"strings"
	"testing"

	"resumifai-go/internal/logger"
)

type fakeProvider struct {
	marker string
	text   string
	err    error
	calls  int
}

func (f *fakeProvider) Match(sourceURL string) bool {
	if f.marker == "" {
		return true
	}
	return strings.Contains(sourceURL, f.marker)
}

func (f *fakeProvider) Fetch(_ context.Context, _, _ string) (string, error) {
	f.calls++
	return f.text, f.err
}

func TestDispatcherRoutesByURLMarker(t *testing.T) {
	tests := []struct {
		name          string
		sourceURL     string
		wantAlternate int
		wantDefault   int
	}{
		{"marker routes to alternate", "https://www.tiktok.com/@user/video/1", 1, 0},
		{"no marker falls back to default", "https://youtu.be/abc123", 0, 1},
		{"empty url falls back to default", "", 0, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			alternate := &fakeProvider{marker: "tiktok", text: "alternate text"}
			fallback := &fakeProvider{text: "default text"}
			d := NewDispatcher(logger.New(), alternate, fallback)

			if _, err := d.Fetch(context.Background(), "abc123", tt.sourceURL); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if alternate.calls != tt.wantAlternate {
				t.Errorf("alternate provider called %d times, want %d", alternate.calls, tt.wantAlternate)
			}
			if fallback.calls != tt.wantDefault {
				t.Errorf("default provider called %d times, want %d", fallback.calls, tt.wantDefault)
			}
		})
	}
}

func TestDispatcherEmptyTranscriptIsNotFound(t *testing.T) {
	d := NewDispatcher(logger.New(), &fakeProvider{text: "   "})

	_, err := d.Fetch(context.Background(), "abc123", "")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for blank transcript, got %v", err)
	}
}

func TestDispatcherPropagatesProviderError(t *testing.T) {
	boom := errors.New("boom")
	d := NewDispatcher(logger.New(), &fakeProvider{err: boom})

	_, err := d.Fetch(context.Background(), "abc123", "")
	if !errors.Is(err, boom) {
		t.Fatalf("expected provider error to pass through, got %v", err)
	}
}

func TestDispatcherNoMatchingProvider(t *testing.T) {
	d := NewDispatcher(logger.New(), &fakeProvider{marker: "tiktok", text: "text"})

	_, err := d.Fetch(context.Background(), "abc123", "https://example.com/watch")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound when nothing matches, got %v", err)
	}
}
