package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/pelletier/go-toml/v2"
)

// Config is the resolved service configuration: TOML file first, then
// environment variables on top. The Eventbrite credentials in particular
// can always be supplied via EVENTBRITE_APPLICATION_KEY and
// EVENTBRITE_CLIENT_SECRET, which win over the file.
type Config struct {
	Addr              string  `toml:"addr" validate:"required"`
	PublicBaseURL     string  `toml:"public_base_url" validate:"required,url"`
	SessionTTLMinutes int     `toml:"session_ttl_minutes" validate:"gt=0"`
	RateLimitRPS      float64 `toml:"rate_limit_rps" validate:"gt=0"`
	RateLimitBurst    int     `toml:"rate_limit_burst" validate:"gt=0"`

	Eventbrite Eventbrite `toml:"eventbrite"`
}

// Eventbrite holds provider endpoints and credentials. The URLs are
// overridable so tests can point the service at a local stub.
type Eventbrite struct {
	ApplicationKey string `toml:"application_key" validate:"required"`
	ClientSecret   string `toml:"client_secret" validate:"required"`
	AuthorizeURL   string `toml:"authorize_url" validate:"required,url"`
	TokenURL       string `toml:"token_url" validate:"required,url"`
	APIBaseURL     string `toml:"api_base_url" validate:"required,url"`
}

func (c Config) SessionTTL() time.Duration {
	return time.Duration(c.SessionTTLMinutes) * time.Minute
}

func defaults() Config {
	return Config{
		Addr:              ":8080",
		PublicBaseURL:     "http://localhost:8080",
		SessionTTLMinutes: 30,
		RateLimitRPS:      5,
		RateLimitBurst:    10,
		Eventbrite: Eventbrite{
			AuthorizeURL: "https://www.eventbrite.com/oauth/authorize",
			TokenURL:     "https://www.eventbrite.com/oauth/token",
			APIBaseURL:   "https://www.eventbrite.com",
		},
	}
}

// Load reads the TOML file at path, applies environment overrides and
// validates the result. A missing file is fine; missing credentials are
// not.
func Load(path string) (Config, error) {
	cfg := defaults()

	raw, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := toml.Unmarshal(raw, &cfg); err != nil {
			return Config{}, fmt.Errorf("parsing %s: %v", path, err)
		}
	case errors.Is(err, fs.ErrNotExist):
		// Credentials may still arrive via the environment.
	default:
		return Config{}, fmt.Errorf("reading %s: %v", path, err)
	}

	applyEnv(&cfg)

	if err := validator.New().Struct(cfg); err != nil {
		return Config{}, fmt.Errorf("invalid configuration: %v", err)
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	setIfPresent(&cfg.Addr, "APP_ADDR")
	setIfPresent(&cfg.PublicBaseURL, "PUBLIC_BASE_URL")
	setIfPresent(&cfg.Eventbrite.ApplicationKey, "EVENTBRITE_APPLICATION_KEY")
	setIfPresent(&cfg.Eventbrite.ClientSecret, "EVENTBRITE_CLIENT_SECRET")
	setIfPresent(&cfg.Eventbrite.AuthorizeURL, "EVENTBRITE_AUTHORIZE_URL")
	setIfPresent(&cfg.Eventbrite.TokenURL, "EVENTBRITE_TOKEN_URL")
	setIfPresent(&cfg.Eventbrite.APIBaseURL, "EVENTBRITE_API_BASE_URL")
}

func setIfPresent(target *string, key string) {
	if v := os.Getenv(key); v != "" {
		*target = v
	}
}
