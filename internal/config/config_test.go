package config

import (
	"errors"
	"testing"
	"time"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"OPENAI_API_KEY", "GEMINI_API_KEY",
		"TRAVELCHAT_HTTP_ADDR", "TRAVELCHAT_REDIS_ADDR", "TRAVELCHAT_SESSION_TTL",
		"TRAVELCHAT_LLM_PROVIDER", "TRAVELCHAT_LLM_MODEL", "TRAVELCHAT_LLM_BASE_URL",
		"TRAVELCHAT_COMPLETION_TIMEOUT", "TRAVELCHAT_GEOCODER", "TRAVELCHAT_NOMINATIM_URL",
		"TRAVELCHAT_USER_AGENT", "TRAVELCHAT_MAPS_API_KEY", "TRAVELCHAT_GEOCODE_TIMEOUT",
		"TRAVELCHAT_GEOCODE_PARALLEL", "TRAVELCHAT_LOG_LEVEL", "TRAVELCHAT_LOG_FORMAT",
		"TRAVELCHAT_LOG_FILE", "TRAVELCHAT_SECURE_COOKIE",
	} {
		t.Setenv(k, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("OPENAI_API_KEY", "sk-test")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.HTTP.Addr != ":8080" {
		t.Errorf("HTTP.Addr = %q", cfg.HTTP.Addr)
	}
	if cfg.LLM.Provider != ProviderOpenAI || cfg.LLM.Model != "gpt-4o-mini" || cfg.LLM.APIKey != "sk-test" {
		t.Errorf("unexpected llm config %+v", cfg.LLM)
	}
	if cfg.Geocoder.Backend != GeocoderNominatim || cfg.Geocoder.Timeout != 5*time.Second {
		t.Errorf("unexpected geocoder config %+v", cfg.Geocoder)
	}
	if cfg.Session.TTL != 24*time.Hour {
		t.Errorf("Session.TTL = %v", cfg.Session.TTL)
	}
}

func TestLoad_MissingKey(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	if !errors.Is(err, ErrMissingAPIKey) {
		t.Fatalf("expected ErrMissingAPIKey, got %v", err)
	}
	if cfg.LLM.KeyEnv != "OPENAI_API_KEY" {
		t.Errorf("KeyEnv = %q", cfg.LLM.KeyEnv)
	}
	if cfg.HTTP.Addr == "" {
		t.Error("config should still be populated when the key is missing")
	}
}

func TestLoad_GeminiProvider(t *testing.T) {
	clearEnv(t)
	t.Setenv("TRAVELCHAT_LLM_PROVIDER", "Gemini")
	t.Setenv("GEMINI_API_KEY", "g-key")
	t.Setenv("TRAVELCHAT_COMPLETION_TIMEOUT", "12s")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.LLM.Provider != ProviderGemini || cfg.LLM.Model != "gemini-2.0-flash" || cfg.LLM.KeyEnv != "GEMINI_API_KEY" {
		t.Errorf("unexpected llm config %+v", cfg.LLM)
	}
	if cfg.LLM.Timeout != 12*time.Second {
		t.Errorf("Timeout = %v", cfg.LLM.Timeout)
	}
}

func TestLoad_InvalidValues(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"unknown provider", map[string]string{"TRAVELCHAT_LLM_PROVIDER": "mystery", "OPENAI_API_KEY": "k"}},
		{"unknown geocoder", map[string]string{"TRAVELCHAT_GEOCODER": "bing", "OPENAI_API_KEY": "k"}},
		{"google without key", map[string]string{"TRAVELCHAT_GEOCODER": "google", "OPENAI_API_KEY": "k"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load()
			if err == nil || errors.Is(err, ErrMissingAPIKey) {
				t.Fatalf("expected configuration error, got %v", err)
			}
		})
	}
}

func TestEnvOrDefaultParsers(t *testing.T) {
	t.Setenv("X_INT", "not-a-number")
	if got := envOrDefaultInt("X_INT", 7); got != 7 {
		t.Errorf("envOrDefaultInt = %d", got)
	}
	t.Setenv("X_BOOL", "true")
	if !envOrDefaultBool("X_BOOL", false) {
		t.Error("envOrDefaultBool should parse true")
	}
	t.Setenv("X_DUR", "250ms")
	if got := envOrDefaultDuration("X_DUR", time.Second); got != 250*time.Millisecond {
		t.Errorf("envOrDefaultDuration = %v", got)
	}
}
