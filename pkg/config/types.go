package config

import "time"

// Config represents the complete application configuration
type Config struct {
	Environment string           `mapstructure:"environment"`
	Server      ServerConfig     `mapstructure:"server"`
	Database    DatabaseConfig   `mapstructure:"database"`
	Jobs        JobsConfig       `mapstructure:"jobs"`
	Fireworks   FireworksConfig  `mapstructure:"fireworks"`
	Whisper     WhisperConfig    `mapstructure:"whisper"`
	Summarizer  SummarizerConfig `mapstructure:"summarizer"`
	TTS         TTSConfig        `mapstructure:"tts"`
	Speaking    SpeakingConfig   `mapstructure:"speaking"`
	Pricing     PricingConfig    `mapstructure:"pricing"`
	Budget      BudgetConfig     `mapstructure:"budget"`
	Storage     StorageConfig    `mapstructure:"storage"`
	Metadata    MetadataConfig   `mapstructure:"metadata"`
	Download    DownloadConfig   `mapstructure:"download"`
	Transcripts TranscriptsConfig `mapstructure:"transcripts"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	MaxHeaderBytes  int           `mapstructure:"max_header_bytes"`
}

// DatabaseConfig contains database settings
type DatabaseConfig struct {
	Path    string `mapstructure:"path"`
	Verbose bool   `mapstructure:"verbose"`
}

// JobsConfig contains job queue and worker settings
type JobsConfig struct {
	Workers       int           `mapstructure:"workers"`
	PollInterval  time.Duration `mapstructure:"poll_interval"`
	Timeout       time.Duration `mapstructure:"timeout"`
	Retention     time.Duration `mapstructure:"retention"`
	SweepInterval time.Duration `mapstructure:"sweep_interval"`
}

// FireworksConfig contains settings for the hosted large-file
// speech-to-text provider (primary transcription strategy, no chunking)
type FireworksConfig struct {
	APIKey  string `mapstructure:"api_key"`
	BaseURL string `mapstructure:"base_url"`
	Model   string `mapstructure:"model"`
}

// WhisperConfig contains settings for the 25MB-per-call speech-to-text
// provider (secondary transcription strategy, chunked submissions)
type WhisperConfig struct {
	APIKey      string `mapstructure:"api_key"`
	Model       string `mapstructure:"model"`
	MaxFileSize int    `mapstructure:"max_file_size"`
	ChunkSize   int    `mapstructure:"chunk_size"`
	PromptTail  int    `mapstructure:"prompt_tail"`
}

// SummarizerConfig contains text-generation provider settings
type SummarizerConfig struct {
	APIKey  string `mapstructure:"api_key"`
	BaseURL string `mapstructure:"base_url"`
	Model   string `mapstructure:"model"`
}

// TTSConfig contains text-to-speech provider settings
type TTSConfig struct {
	APIKey    string `mapstructure:"api_key"`
	Model     string `mapstructure:"model"`
	Voice     string `mapstructure:"voice"`
	MaxChars  int    `mapstructure:"max_chars"`
	ChunkSize int    `mapstructure:"chunk_size"`
}

// SpeakingConfig contains speaking-rate policy values
type SpeakingConfig struct {
	WordsPerMinute int `mapstructure:"words_per_minute"`
}

// PricingConfig contains provider pricing policy values in USD
type PricingConfig struct {
	TranscriptionPerMinute float64 `mapstructure:"transcription_per_minute"`
	SummarizationFlat      float64 `mapstructure:"summarization_flat"`
	TTSPerChar             float64 `mapstructure:"tts_per_char"`
}

// BudgetConfig contains spend ceilings in USD
type BudgetConfig struct {
	PerRequestLimit  float64 `mapstructure:"per_request_limit"`
	MonthlyLimit     float64 `mapstructure:"monthly_limit"`
	WarningThreshold float64 `mapstructure:"warning_threshold"`
}

// StorageConfig contains blob storage settings for synthesized audio
type StorageConfig struct {
	Bucket        string `mapstructure:"bucket"`
	Region        string `mapstructure:"region"`
	KeyPrefix     string `mapstructure:"key_prefix"`
	PublicBaseURL string `mapstructure:"public_base_url"`
	UsePathStyle  bool   `mapstructure:"use_path_style"`
}

// MetadataConfig contains episode metadata lookup settings
type MetadataConfig struct {
	OEmbedBaseURL     string        `mapstructure:"oembed_base_url"`
	SearchBaseURL     string        `mapstructure:"search_base_url"`
	SearchAPIKey      string        `mapstructure:"search_api_key"`
	Timeout           time.Duration `mapstructure:"timeout"`
	RequestsPerMinute int           `mapstructure:"requests_per_minute"`
}

// DownloadConfig contains episode audio download settings
type DownloadConfig struct {
	MaxSize   int64         `mapstructure:"max_size"`
	Timeout   time.Duration `mapstructure:"timeout"`
	UserAgent string        `mapstructure:"user_agent"`
}

// TranscriptsConfig configures optional published-transcript lookup,
// consulted before paid speech-to-text. URLTemplate may contain
// {episode_url}, replaced with the escaped episode link; empty disables
// the lookup.
type TranscriptsConfig struct {
	URLTemplate string `mapstructure:"url_template"`
}
