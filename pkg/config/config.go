package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/spf13/viper"
)

var (
	once    sync.Once
	initErr error
)

// Init initializes the configuration system
// This should be called once at application startup
func Init() error {
	once.Do(func() {
		// Set default values
		setDefaults()

		// Set up environment variable reading for overrides
		viper.SetEnvPrefix("PODBRIEF")
		viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
		viper.AutomaticEnv()

		// Load config from fixed location (cleaned for safety)
		configPath := filepath.Clean("./config/settings.yaml")
		viper.SetConfigFile(configPath)

		// Try to read the config file
		if err := viper.ReadInConfig(); err != nil {
			// If the config file doesn't exist, just use defaults and env vars
			if !os.IsNotExist(err) {
				initErr = fmt.Errorf("error reading config file %s: %w", configPath, err)
				return
			}
		}

		// Validate the configuration
		if err := validate(); err != nil {
			initErr = fmt.Errorf("invalid configuration: %w", err)
		}
	})

	return initErr
}

// GetConfig returns the current configuration as a struct
// Init() must be called before using this
func GetConfig() (*Config, error) {
	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	return &config, nil
}

// GetString returns a string config value
func GetString(key string) string {
	return viper.GetString(key)
}

// GetInt returns an int config value
func GetInt(key string) int {
	return viper.GetInt(key)
}

// GetFloat64 returns a float64 config value
func GetFloat64(key string) float64 {
	return viper.GetFloat64(key)
}

// GetDuration returns a time.Duration config value
func GetDuration(key string) time.Duration {
	return viper.GetDuration(key)
}

// placeholder values that shouldn't be used for credentials
var placeholders = []string{
	"YOUR_KEY_HERE",
	"YOUR_API_KEY",
	"changeme",
	"CHANGEME",
}

// validate validates the configuration using Viper values
func validate() error {
	port := viper.GetInt("server.port")
	if port <= 0 || port > 65535 {
		return fmt.Errorf("invalid server port: %d", port)
	}

	if viper.GetString("database.path") == "" {
		fmt.Println("Warning: No database path configured")
	}

	if err := validateAPIKeys(); err != nil {
		return err
	}

	// Auto-correct invalid worker count
	if viper.GetInt("jobs.workers") <= 0 {
		viper.Set("jobs.workers", 2)
	}

	return nil
}

// validateAPIKeys rejects placeholder credential values in production
func validateAPIKeys() error {
	env := viper.GetString("environment")
	isProduction := env == "production" || env == "prod"

	checks := map[string]string{
		"fireworks.api_key":       "Fireworks API key",
		"whisper.api_key":         "Whisper API key",
		"summarizer.api_key":      "summarizer API key",
		"tts.api_key":             "TTS API key",
		"metadata.search_api_key": "metadata search API key",
	}

	for key, name := range checks {
		val := viper.GetString(key)
		for _, placeholder := range placeholders {
			if val == placeholder {
				if isProduction {
					return fmt.Errorf("invalid %s: cannot use placeholder values in production", name)
				}
				fmt.Printf("Warning: %s is using a placeholder value\n", name)
				break
			}
		}
	}

	return nil
}

// HasTranscriptionCredentials reports whether at least one speech-to-text
// provider is configured. The pipeline refuses work without one.
func HasTranscriptionCredentials() bool {
	return viper.GetString("fireworks.api_key") != "" || viper.GetString("whisper.api_key") != ""
}

// MissingCredentials lists required provider credentials that are absent.
// A non-empty result must fail request submission before any pipeline work.
func MissingCredentials() []string {
	var missing []string
	if !HasTranscriptionCredentials() {
		missing = append(missing, "transcription (fireworks.api_key or whisper.api_key)")
	}
	if viper.GetString("summarizer.api_key") == "" {
		missing = append(missing, "summarizer.api_key")
	}
	if viper.GetString("tts.api_key") == "" {
		missing = append(missing, "tts.api_key")
	}
	return missing
}

// setDefaults sets default configuration values
func setDefaults() {
	// Environment defaults
	viper.SetDefault("environment", "development")

	// Server defaults
	viper.SetDefault("server.host", "0.0.0.0")
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.read_timeout", 30*time.Second)
	viper.SetDefault("server.write_timeout", 30*time.Second)
	viper.SetDefault("server.shutdown_timeout", 10*time.Second)
	viper.SetDefault("server.max_header_bytes", 1048576)

	// Database defaults
	viper.SetDefault("database.path", "./data/summaries.db")
	viper.SetDefault("database.verbose", false)

	// Job queue defaults. Retention bounds job store growth; timeout is the
	// overall wall-clock ceiling for one pipeline run.
	viper.SetDefault("jobs.workers", 2)
	viper.SetDefault("jobs.poll_interval", 2*time.Second)
	viper.SetDefault("jobs.timeout", 15*time.Minute)
	viper.SetDefault("jobs.retention", 24*time.Hour)
	viper.SetDefault("jobs.sweep_interval", 1*time.Hour)

	// Transcription provider defaults
	viper.SetDefault("fireworks.base_url", "https://audio-turbo.us-virginia-1.direct.fireworks.ai/v1")
	viper.SetDefault("fireworks.model", "whisper-v3-turbo")
	viper.SetDefault("whisper.model", "whisper-1")
	viper.SetDefault("whisper.max_file_size", 25*1024*1024)
	viper.SetDefault("whisper.chunk_size", 20*1024*1024)
	viper.SetDefault("whisper.prompt_tail", 200)

	// Summarizer defaults
	viper.SetDefault("summarizer.model", "gpt-4o")

	// TTS defaults
	viper.SetDefault("tts.model", "tts-1")
	viper.SetDefault("tts.voice", "alloy")
	viper.SetDefault("tts.max_chars", 4096)
	viper.SetDefault("tts.chunk_size", 4000)

	// Speaking-rate policy
	viper.SetDefault("speaking.words_per_minute", 150)

	// Pricing policy, USD
	viper.SetDefault("pricing.transcription_per_minute", 0.0012)
	viper.SetDefault("pricing.summarization_flat", 0.03)
	viper.SetDefault("pricing.tts_per_char", 0.000015)

	// Budget ceilings, USD
	viper.SetDefault("budget.per_request_limit", 5.00)
	viper.SetDefault("budget.monthly_limit", 20.00)
	viper.SetDefault("budget.warning_threshold", 15.00)

	// Storage defaults
	viper.SetDefault("storage.key_prefix", "summaries")
	viper.SetDefault("storage.region", "us-east-1")

	// Metadata lookup defaults
	viper.SetDefault("metadata.oembed_base_url", "https://open.spotify.com/oembed")
	viper.SetDefault("metadata.search_base_url", "https://listen-api.listennotes.com/api/v2")
	viper.SetDefault("metadata.timeout", 10*time.Second)
	viper.SetDefault("metadata.requests_per_minute", 60)

	// Download defaults
	viper.SetDefault("download.max_size", 1024*1024*1024)
	viper.SetDefault("download.timeout", 5*time.Minute)
	viper.SetDefault("download.user_agent", "PodBriefAPI/1.0")

	// Published transcript lookup (disabled unless a template is set)
	viper.SetDefault("transcripts.url_template", "")
}
