package config

import "github.com/caarlos0/env/v10"

// Config centraliza la configuración del servicio.
type Config struct {
	HTTPPort          string `env:"HTTP_PORT" envDefault:"8080"`
	DatabaseURL       string `env:"DATABASE_URL"`
	LLMAPIKey         string `env:"LLM_API_KEY"`
	LLMBaseURL        string `env:"LLM_BASE_URL" envDefault:"https://api.openai.com/v1"`
	LLMModel          string `env:"LLM_MODEL" envDefault:"gpt-4o-mini"`
	LLMTimeoutSeconds int    `env:"LLM_TIMEOUT_SECONDS" envDefault:"45"`

	RedisAddr     string `env:"REDIS_ADDR"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	RedisDB       int    `env:"REDIS_DB" envDefault:"0"`

	// Limites del pipeline: adjuntos, ventana de contexto e historial por sesion.
	MaxUploadBytes     int64 `env:"MAX_UPLOAD_BYTES" envDefault:"10485760"`
	MaxExtractChars    int   `env:"MAX_EXTRACT_CHARS" envDefault:"8000"`
	HistoryTurns       int   `env:"HISTORY_TURNS" envDefault:"10"`
	HistoryCharBudget  int   `env:"HISTORY_CHAR_BUDGET" envDefault:"12000"`
	SessionCap         int   `env:"SESSION_CAP" envDefault:"50"`
	SessionIdleMinutes int   `env:"SESSION_IDLE_MINUTES" envDefault:"120"`

	RateLimitPerMinute int `env:"RATE_LIMIT_PER_MINUTE" envDefault:"20"`

	ModelName  string `env:"MODEL_NAME" envDefault:"MechExpert-Engineering-Assistant"`
	AppVersion string `env:"APP_VERSION" envDefault:"1.0.0"`
}

// LoadConfig carga la configuración desde variables de entorno.
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
