package config

import "github.com/caarlos0/env/v11"

// Config holds every runtime setting. Values come from the process
// environment; a local .env file is loaded by cmd/api before parsing.
type Config struct {
	Port        string `env:"PORT"        envDefault:"8080"`
	Environment string `env:"ENVIRONMENT" envDefault:"local"`

	GeminiAPIKey string `env:"GEMINI_API_KEY,required,notEmpty"`
	GeminiModel  string `env:"GEMINI_MODEL" envDefault:"gemini-2.0-flash"`

	TikTokTranscriptionURL string `env:"TIKTOK_TRANSCRIPTION_URL" envDefault:"https://submagic-free-tools.fly.dev/api/tiktok-transcription"`

	// YouTubeCaptionLanguages is the caption-track preference order tried
	// until one yields a track. Empty falls back to the built-in list.
	YouTubeCaptionLanguages []string `env:"YOUTUBE_CAPTION_LANGUAGES"`

	// AllowedOrigins lists the front-end origins permitted to read
	// cross-origin responses. Anything else gets no allow-origin header.
	AllowedOrigins []string `env:"ALLOWED_ORIGINS" envDefault:"https://victordeabreuandrade.github.io,https://victordeabreuandrade.github.io/resumifai-web"`
}

func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Debug reports whether error responses may carry diagnostic details.
func (c Config) Debug() bool {
	return c.Environment == "" || c.Environment == "local"
}
