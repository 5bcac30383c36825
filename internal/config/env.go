package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/zoro11031/routegen/internal/common"
)

// ServeSettings configures the customer proxy started by `routegen serve`.
type ServeSettings struct {
	APIURL          string        `env:"NEXT_PUBLIC_API_URL"`
	AuthSecret      string        `env:"AUTH_SECRET"`
	ListenAddr      string        `env:"ROUTEGEN_LISTEN_ADDR"`
	SessionCookie   string        `env:"ROUTEGEN_SESSION_COOKIE"`
	AllowedOrigins  []string      `env:"ROUTEGEN_ALLOWED_ORIGINS" envSeparator:","`
	UpstreamTimeout time.Duration `env:"ROUTEGEN_UPSTREAM_TIMEOUT"`
}

// settingsEnvKeys maps settings file keys onto the environment variables they back.
// AUTH_SECRET has no settings key; it comes from the environment or .env only.
var settingsEnvKeys = map[string]string{
	KeyAPIURL:          "NEXT_PUBLIC_API_URL",
	KeyListenAddr:      "ROUTEGEN_LISTEN_ADDR",
	KeySessionCookie:   "ROUTEGEN_SESSION_COOKIE",
	KeyAllowedOrigins:  "ROUTEGEN_ALLOWED_ORIGINS",
	KeyUpstreamTimeout: "ROUTEGEN_UPSTREAM_TIMEOUT",
}

// LoadServeSettings resolves proxy settings. Precedence, highest first:
// process environment, the dotenv file, the settings file, Defaults.
// A missing dotenv file is ignored; an empty dotenvPath skips it.
func LoadServeSettings(cfg *Config, dotenvPath string) (ServeSettings, error) {
	return loadServeSettings(cfg, dotenvPath, os.Environ())
}

func loadServeSettings(cfg *Config, dotenvPath string, environ []string) (ServeSettings, error) {
	merged := make(map[string]string)

	for key, envKey := range settingsEnvKeys {
		if value, ok := Defaults[key]; ok {
			merged[envKey] = value
		}
	}

	if cfg != nil {
		for key, value := range cfg.GetAll() {
			if envKey, ok := settingsEnvKeys[key]; ok {
				merged[envKey] = value
			}
		}
	}

	if dotenvPath != "" {
		values, err := godotenv.Read(dotenvPath)
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return ServeSettings{}, fmt.Errorf("failed to read %s: %w", dotenvPath, err)
		}
		for key, value := range values {
			merged[key] = value
		}
	}

	for key, value := range env.ToMap(environ) {
		merged[key] = value
	}

	var settings ServeSettings
	if err := env.ParseWithOptions(&settings, env.Options{Environment: merged}); err != nil {
		return ServeSettings{}, fmt.Errorf("failed to parse serve settings: %w", err)
	}

	settings.APIURL = strings.TrimRight(strings.TrimSpace(settings.APIURL), "/")
	settings.AuthSecret = strings.TrimSpace(settings.AuthSecret)
	settings.AllowedOrigins = trimEmpty(settings.AllowedOrigins)

	if err := settings.Validate(); err != nil {
		return ServeSettings{}, err
	}
	return settings, nil
}

// Validate checks that the settings are usable by the proxy
func (s ServeSettings) Validate() error {
	if err := common.ValidateURL(s.APIURL); err != nil {
		return fmt.Errorf("NEXT_PUBLIC_API_URL: %w", err)
	}
	if s.AuthSecret == "" {
		return fmt.Errorf("AUTH_SECRET is required")
	}
	if err := common.ValidateListenAddr(s.ListenAddr); err != nil {
		return fmt.Errorf("ROUTEGEN_LISTEN_ADDR: %w", err)
	}
	if strings.TrimSpace(s.SessionCookie) == "" {
		return fmt.Errorf("ROUTEGEN_SESSION_COOKIE cannot be empty")
	}
	if s.UpstreamTimeout <= 0 {
		return fmt.Errorf("ROUTEGEN_UPSTREAM_TIMEOUT must be positive")
	}
	return nil
}

func trimEmpty(values []string) []string {
	var out []string
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
