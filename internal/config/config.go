// README: Config loader with env defaults for HTTP, LLM, geocoding, sessions, and logging.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// ErrMissingAPIKey is returned by Load when the completion credential is absent.
// The returned Config is still fully populated so the caller can report it.
var ErrMissingAPIKey = errors.New("missing completion api key")

const (
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"

	GeocoderNominatim = "nominatim"
	GeocoderGoogle    = "google"
)

type LLMConfig struct {
	Provider string
	Model    string
	APIKey   string
	// KeyEnv names the environment variable the credential is read from.
	KeyEnv  string
	BaseURL string
	Timeout time.Duration
}

type GeocoderConfig struct {
	Backend      string
	NominatimURL string
	UserAgent    string
	MapsAPIKey   string
	Timeout      time.Duration
	Parallel     int
}

type LogConfig struct {
	Level  string
	Format string
	File   string
}

type Config struct {
	HTTP struct {
		Addr         string
		SecureCookie bool
	}
	Redis struct {
		Addr string
	}
	Session struct {
		TTL time.Duration
	}
	LLM      LLMConfig
	Geocoder GeocoderConfig
	Log      LogConfig
}

var defaultModels = map[string]string{
	ProviderOpenAI: "gpt-4o-mini",
	ProviderGemini: "gemini-2.0-flash",
}

var keyEnvs = map[string]string{
	ProviderOpenAI: "OPENAI_API_KEY",
	ProviderGemini: "GEMINI_API_KEY",
}

// Load reads configuration from the environment, after merging a .env file
// from the working directory when present (existing variables win).
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	var cfg Config
	cfg.HTTP.Addr = envOrDefault("TRAVELCHAT_HTTP_ADDR", ":8080")
	cfg.HTTP.SecureCookie = envOrDefaultBool("TRAVELCHAT_SECURE_COOKIE", false)
	cfg.Redis.Addr = envOrDefault("TRAVELCHAT_REDIS_ADDR", "")
	cfg.Session.TTL = envOrDefaultDuration("TRAVELCHAT_SESSION_TTL", 24*time.Hour)

	cfg.LLM.Provider = strings.ToLower(envOrDefault("TRAVELCHAT_LLM_PROVIDER", ProviderOpenAI))
	keyEnv, ok := keyEnvs[cfg.LLM.Provider]
	if !ok {
		return cfg, fmt.Errorf("unknown llm provider %q", cfg.LLM.Provider)
	}
	cfg.LLM.KeyEnv = keyEnv
	cfg.LLM.APIKey = strings.TrimSpace(os.Getenv(keyEnv))
	cfg.LLM.Model = envOrDefault("TRAVELCHAT_LLM_MODEL", defaultModels[cfg.LLM.Provider])
	cfg.LLM.BaseURL = envOrDefault("TRAVELCHAT_LLM_BASE_URL", "")
	cfg.LLM.Timeout = envOrDefaultDuration("TRAVELCHAT_COMPLETION_TIMEOUT", 30*time.Second)

	cfg.Geocoder.Backend = strings.ToLower(envOrDefault("TRAVELCHAT_GEOCODER", GeocoderNominatim))
	cfg.Geocoder.NominatimURL = envOrDefault("TRAVELCHAT_NOMINATIM_URL", "https://nominatim.openstreetmap.org")
	cfg.Geocoder.UserAgent = envOrDefault("TRAVELCHAT_USER_AGENT", "travelchat/1.0")
	cfg.Geocoder.MapsAPIKey = envOrDefault("TRAVELCHAT_MAPS_API_KEY", "")
	cfg.Geocoder.Timeout = envOrDefaultDuration("TRAVELCHAT_GEOCODE_TIMEOUT", 5*time.Second)
	cfg.Geocoder.Parallel = envOrDefaultInt("TRAVELCHAT_GEOCODE_PARALLEL", 4)
	switch cfg.Geocoder.Backend {
	case GeocoderNominatim:
	case GeocoderGoogle:
		if cfg.Geocoder.MapsAPIKey == "" {
			return cfg, errors.New("TRAVELCHAT_MAPS_API_KEY is required for the google geocoder")
		}
	default:
		return cfg, fmt.Errorf("unknown geocoder %q", cfg.Geocoder.Backend)
	}

	cfg.Log.Level = envOrDefault("TRAVELCHAT_LOG_LEVEL", "info")
	cfg.Log.Format = envOrDefault("TRAVELCHAT_LOG_FORMAT", "text")
	cfg.Log.File = envOrDefault("TRAVELCHAT_LOG_FILE", "")

	if cfg.LLM.APIKey == "" {
		return cfg, fmt.Errorf("%w: %s is not set", ErrMissingAPIKey, keyEnv)
	}
	return cfg, nil
}

func envOrDefault(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func envOrDefaultInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func envOrDefaultBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}

func envOrDefaultDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
