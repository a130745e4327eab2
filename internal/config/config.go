package config

import (
	"fmt"
	"net/url"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App struct {
		Name string `envconfig:"APP_NAME" default:"Carteira"`
		Port int    `envconfig:"PORT" default:"8080"`
	}

	DB struct {
		Host     string `envconfig:"DB_HOST" default:"localhost"`
		Port     int    `envconfig:"DB_PORT" default:"5432"`
		User     string `envconfig:"DB_USER" default:"postgres"`
		Password string `envconfig:"DB_PASSWORD" default:""`
		Name     string `envconfig:"DB_NAME" default:"carteira"`
		SSLMode  string `envconfig:"DB_SSLMODE" default:"disable"`
		// Migrate applies the embedded schema on startup.
		Migrate bool `envconfig:"DB_MIGRATE" default:"true"`
	}

	Server struct {
		Timeout     time.Duration `envconfig:"SERVER_TIMEOUT" default:"30s"`
		CORSOrigins []string      `envconfig:"CORS_ORIGINS" default:"http://localhost:5173"`
		// RateLimit is the sustained requests per second allowed per owner.
		RateLimit float64 `envconfig:"RATE_LIMIT" default:"10"`
		RateBurst int     `envconfig:"RATE_BURST" default:"30"`
		// MaxUpload caps multipart bodies (statements and receipts) in bytes.
		MaxUpload int64 `envconfig:"MAX_UPLOAD_BYTES" default:"10485760"`
	}

	Auth struct {
		// Secret is the HS256 key shared with the identity provider. Only the API needs it.
		Secret string `envconfig:"AUTH_SECRET"`
		Issuer string `envconfig:"AUTH_ISSUER"`
	}

	Storage struct {
		// Bucket selects Google Cloud Storage for receipts; LocalDir is used when empty.
		Bucket   string `envconfig:"RECEIPTS_BUCKET"`
		LocalDir string `envconfig:"RECEIPTS_DIR" default:"./data/receipts"`
	}

	Forecast struct {
		Horizon int `envconfig:"FORECAST_HORIZON_MONTHS" default:"24"`
	}

	Log struct {
		Level string `envconfig:"LOG_LEVEL" default:"info"`
		JSON  bool   `envconfig:"LOG_JSON" default:"false"`
	}

	TUI struct {
		// Owner is the account the terminal UI acts on.
		Owner     string `envconfig:"TUI_OWNER"`
		ExportDir string `envconfig:"EXPORT_DIR" default:"./export"`
	}
}

func (c *Config) ConnectionString() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.DB.User, c.DB.Password),
		Host:     fmt.Sprintf("%s:%d", c.DB.Host, c.DB.Port),
		Path:     c.DB.Name,
		RawQuery: "sslmode=" + url.QueryEscape(c.DB.SSLMode),
	}

	return u.String()
}

// Load reads the environment, after loading any .env files given (or ./.env).
// Missing .env files are not an error.
func Load(envFiles ...string) (*Config, error) {
	_ = godotenv.Load(envFiles...)

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	if cfg.Forecast.Horizon < 1 || cfg.Forecast.Horizon > 120 {
		return nil, fmt.Errorf("FORECAST_HORIZON_MONTHS must be between 1 and 120, got %d", cfg.Forecast.Horizon)
	}

	return &cfg, nil
}
