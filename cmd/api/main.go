package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/joho/godotenv"

	"resumifai-go/internal/config"
	"resumifai-go/internal/generation"
	"resumifai-go/internal/logger"
	"resumifai-go/internal/pipeline"
	"resumifai-go/internal/server"
	"resumifai-go/internal/transcript"
)

func main() {
	_ = godotenv.Load() // loads .env

	log := logger.New()
	log.WithField("service", "resumifai-go").Info("starting service")

	cfg, err := config.Load()
	if err != nil {
		log.WithError(err).Fatal("failed to load configuration")
	}

	ctx := context.Background()
	gemini, err := generation.NewGemini(ctx, cfg.GeminiAPIKey, cfg.GeminiModel, log)
	if err != nil {
		log.WithError(err).Fatal("failed to create generation client")
	}
	defer func() {
		if err := gemini.Close(); err != nil {
			log.WithError(err).Warn("failed to close generation client")
		}
	}()
	log.WithField("model", cfg.GeminiModel).Info("generation client ready")

	dispatcher := transcript.NewDispatcher(log,
		transcript.NewTikTok(cfg.TikTokTranscriptionURL, log),
		transcript.NewYouTube(cfg.YouTubeCaptionLanguages, log),
	)

	handler := server.New(
		pipeline.New(dispatcher, gemini, log),
		cfg.AllowedOrigins,
		cfg.Debug(),
		log,
	)

	addr := fmt.Sprintf(":%s", cfg.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}
	log.WithField("addr", addr).Info("listening")
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.WithError(err).Fatal("server terminated")
	}
}
