// Package config loads the fieldguide configuration from config files,
// environment variables, and .env files.
package config

import (
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/aviaryworks/fieldguide/pkg/constants"
)

// Config holds the application configuration loaded from various sources.
type Config struct {
	// Global flags
	Verbose bool
	Quiet   bool
	NoColor bool
	JSON    bool

	// Config file
	ConfigFile string

	// Generation configuration
	GenerationAPIKey string
	GenerationModel  string

	// Lookup configuration
	CacheTTL    time.Duration
	ResultLimit int

	// Per-source base URL overrides, mainly for local testing against
	// recorded fixtures.
	GBIFBaseURL   string
	INatBaseURL   string
	UNESCOBaseURL string

	// Logging configuration
	LogLevel string
}

// Load loads configuration from all sources in order of precedence:
// 1. Command-line flags (handled by cobra)
// 2. Environment variables
// 3. .env files
// 4. Config file (~/.fieldguide.yaml)
// 5. Defaults
func Load() (*Config, error) {
	// Load .env files first (before Viper env binding)
	loadEnvFiles()

	// Set up Viper for environment variables
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))

	bindAPIKeys()

	// Try to read config file if it exists
	configFile := viper.GetString("config")
	if configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		// Search for config in standard locations
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(home)
			viper.AddConfigPath(".")
			viper.SetConfigType("yaml")
			viper.SetConfigName(".fieldguide")
		}
	}

	// Read config file (ignore error if not found)
	_ = viper.ReadInConfig()

	config := &Config{
		Verbose: viper.GetBool("verbose"),
		Quiet:   viper.GetBool("quiet"),
		NoColor: viper.GetBool("no-color"),
		JSON:    viper.GetBool("json"),

		ConfigFile: viper.ConfigFileUsed(),

		GenerationAPIKey: firstNonEmpty(
			viper.GetString("GEMINI_API_KEY"),
			viper.GetString("GOOGLE_API_KEY"),
		),
		GenerationModel: viper.GetString("generation_model"),

		CacheTTL:    viper.GetDuration("cache_ttl"),
		ResultLimit: viper.GetInt("result_limit"),

		GBIFBaseURL:   viper.GetString("gbif_base_url"),
		INatBaseURL:   viper.GetString("inat_base_url"),
		UNESCOBaseURL: viper.GetString("unesco_base_url"),

		LogLevel: getEnvOrDefault("LOG_LEVEL", "info"),
	}

	// Set defaults
	if config.GenerationModel == "" {
		config.GenerationModel = constants.DefaultGenerationModel
	}
	if config.CacheTTL == 0 {
		config.CacheTTL = constants.DefaultCacheTTL
	}
	if config.ResultLimit == 0 {
		config.ResultLimit = constants.DefaultResultLimit
	}

	return config, nil
}

// UpdateFromFlags updates config values from parsed command flags. This
// should be called after cobra parses flags so flag values take precedence
// over config file and env vars.
func (c *Config) UpdateFromFlags(verbose, quiet, noColor, jsonOut bool) {
	c.Verbose = verbose
	c.Quiet = quiet
	c.NoColor = noColor
	c.JSON = jsonOut
}

// loadEnvFiles loads environment variables from .env files.
// .env.local overrides .env.
func loadEnvFiles() {
	envFiles := []string{
		".env",
		".env.local",
	}

	for _, envFile := range envFiles {
		_ = godotenv.Load(envFile)
	}
}

// bindAPIKeys explicitly binds the generation API key environment variables
// to Viper so they are visible even when no config file references them.
func bindAPIKeys() {
	apiKeys := []string{
		"GEMINI_API_KEY",
		"GOOGLE_API_KEY",
	}

	for _, key := range apiKeys {
		_ = viper.BindEnv(key)
	}
}

// getEnvOrDefault returns the environment variable value or the default if not set.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
