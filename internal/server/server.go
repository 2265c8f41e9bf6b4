// Package server exposes the pipeline over HTTP and maps every pipeline
// outcome to a uniform wire shape. Upstream error objects never reach the
// client: each failure kind has a stable message, with the raw error
// attached as a details field only in debug environments.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"

	"resumifai-go/internal/generation"
	"resumifai-go/internal/logger"
	"resumifai-go/internal/pipeline"
	"resumifai-go/internal/timeout"
	"resumifai-go/internal/transcript"
	"resumifai-go/internal/types"
)

// Summarizer is the slice of the pipeline the handlers need.
type Summarizer interface {
	Summarize(ctx context.Context, req pipeline.Request) (string, error)
	Transcribe(ctx context.Context, videoID, sourceURL string) (string, error)
}

type Server struct {
	pipeline Summarizer
	log      *logger.Logger
	debug    bool
}

// New wires the routes and the CORS allow-list. A matched origin is echoed
// back by the middleware; unmatched origins get no allow-origin header, so
// cross-origin reads are denied by default.
func New(p Summarizer, allowedOrigins []string, debug bool, log *logger.Logger) http.Handler {
	s := &Server{pipeline: p, log: log, debug: debug}

	r := mux.NewRouter()
	r.Use(s.recoverer)
	r.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)
	r.HandleFunc("/", s.handleSummarize).Methods(http.MethodPost)
	r.HandleFunc("/summary", s.handleSummarize).Methods(http.MethodPost)
	r.HandleFunc("/transcription/{id}", s.handleTranscription).Methods(http.MethodGet)

	return handlers.CORS(
		handlers.AllowedOrigins(allowedOrigins),
		handlers.AllowedMethods([]string{http.MethodGet, http.MethodPost, http.MethodOptions}),
		handlers.AllowedHeaders([]string{"Content-Type"}),
	)(r)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, types.HealthResponse{Status: "ok"})
}

func (s *Server) handleSummarize(w http.ResponseWriter, r *http.Request) {
	reqLog := s.log.WithRequest(r)

	var body types.SummarizeRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		// A body the router cannot read means there is no video ID either.
		reqLog.WithField("error", err.Error()).Warn("unreadable request body")
		s.writeError(w, pipeline.ErrMissingVideoID)
		return
	}

	req, err := pipeline.Validate(body)
	if err != nil {
		reqLog.Warn("request rejected by validator")
		s.writeError(w, err)
		return
	}

	summary, err := s.pipeline.Summarize(r.Context(), req)
	if err != nil {
		reqLog.WithField("error", err.Error()).Error("pipeline failed")
		s.writeError(w, err)
		return
	}

	reqLog.Info("summary produced")
	writeJSON(w, http.StatusOK, types.SummaryResponse{Summary: summary})
}

func (s *Server) handleTranscription(w http.ResponseWriter, r *http.Request) {
	reqLog := s.log.WithRequest(r)
	id := mux.Vars(r)["id"]

	transcription, err := s.pipeline.Transcribe(r.Context(), id, r.URL.Query().Get("url"))
	if err != nil {
		reqLog.WithField("error", err.Error()).Error("transcription failed")
		s.writeError(w, err)
		return
	}

	reqLog.Info("transcription produced")
	writeJSON(w, http.StatusOK, types.TranscriptionResponse{Transcription: transcription})
}

// recoverer is the last-resort catch-all: an unanticipated panic anywhere
// below must still produce a mapped 500, never an unhandled fault.
func (s *Server) recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				s.log.WithRequest(r).WithField("panic", rec).Error("handler panicked")
				writeJSON(w, http.StatusInternalServerError, types.ErrorResponse{
					Error: messageProcessing,
				})
			}
		}()
		next.ServeHTTP(w, r)
	})
}

const (
	messageMissingVideoID = "You must inform a video ID."
	messageNotFound       = "Transcription not found!"
	messageProvider       = "Error trying to extract the video transcription."
	messageProcessing     = "Error processing the request."
	messageGeneration     = "Problems with the generation backend."
)

// mapError converts a pipeline failure into a status code and a stable
// user-facing message.
func mapError(err error) (int, string) {
	switch {
	case errors.Is(err, pipeline.ErrMissingVideoID):
		return http.StatusBadRequest, messageMissingVideoID
	case errors.Is(err, transcript.ErrNotFound):
		return http.StatusBadRequest, messageNotFound
	case errors.Is(err, transcript.ErrProvider):
		return http.StatusInternalServerError, messageProvider
	case errors.Is(err, timeout.ErrDeadline):
		return http.StatusInternalServerError, messageProcessing
	case errors.Is(err, generation.ErrGeneration):
		return http.StatusInternalServerError, messageGeneration
	default:
		return http.StatusInternalServerError, messageProcessing
	}
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	status, message := mapError(err)
	resp := types.ErrorResponse{Error: message}
	if s.debug {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
