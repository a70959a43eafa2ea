package config

import (
	"os"
	"testing"
	"time"

	"github.com/aviaryworks/fieldguide/pkg/constants"
)

// TestLoad verifies basic config loading and defaults.
func TestLoad(t *testing.T) {
	config, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if config == nil {
		t.Fatal("Load() returned nil config")
	}

	if config.GenerationModel == "" {
		t.Error("GenerationModel not set to default")
	}
	if config.CacheTTL != constants.DefaultCacheTTL {
		t.Errorf("CacheTTL = %s, want %s", config.CacheTTL, constants.DefaultCacheTTL)
	}
	if config.ResultLimit != constants.DefaultResultLimit {
		t.Errorf("ResultLimit = %d, want %d", config.ResultLimit, constants.DefaultResultLimit)
	}
}

// TestConfig_EnvironmentVariables verifies environment variable loading.
func TestConfig_EnvironmentVariables(t *testing.T) {
	oldKey := os.Getenv("GEMINI_API_KEY")
	oldTTL := os.Getenv("CACHE_TTL")
	defer func() {
		os.Setenv("GEMINI_API_KEY", oldKey)
		os.Setenv("CACHE_TTL", oldTTL)
	}()

	os.Setenv("GEMINI_API_KEY", "test-key-123")
	os.Setenv("CACHE_TTL", "30m")

	config, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if config.GenerationAPIKey != "test-key-123" {
		t.Errorf("GenerationAPIKey = %s, want test-key-123", config.GenerationAPIKey)
	}
	if config.CacheTTL != 30*time.Minute {
		t.Errorf("CacheTTL = %s, want 30m", config.CacheTTL)
	}
}

// TestConfig_UpdateFromFlags verifies flag precedence over env.
func TestConfig_UpdateFromFlags(t *testing.T) {
	config, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	config.UpdateFromFlags(true, false, true, true)

	if !config.Verbose {
		t.Error("Verbose not updated from flags")
	}
	if !config.NoColor {
		t.Error("NoColor not updated from flags")
	}
	if !config.JSON {
		t.Error("JSON not updated from flags")
	}
}
