package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

const (
	DefaultConfigFile = "config.json"
	DefaultServer     = "https://musicbrainz.org"
	DefaultRateLimit  = 1.0
	DefaultThreshold  = 0.80
	DefaultMaxRetries = 5
	UserAgent         = "alias-resolver/1.0"
)

// Environment variables that override credentials stored in the config file
const (
	EnvSpotifyClientID     = "ALIAS_RESOLVER_SPOTIFY_CLIENT_ID"
	EnvSpotifyClientSecret = "ALIAS_RESOLVER_SPOTIFY_CLIENT_SECRET"
	EnvNavidromeURL        = "ALIAS_RESOLVER_NAVIDROME_URL"
	EnvNavidromeUsername   = "ALIAS_RESOLVER_NAVIDROME_USERNAME"
	EnvNavidromePassword   = "ALIAS_RESOLVER_NAVIDROME_PASSWORD"
)

// Configuration structure
type Config struct {
	LibraryPath         string   `json:"LibraryPath" validate:"required"`
	Server              string   `json:"Server" validate:"required,url"`
	RateLimit           *float64 `json:"RateLimit,omitempty" validate:"omitempty,gte=0"` // seconds between MusicBrainz requests
	Threshold           *float64 `json:"Threshold,omitempty" validate:"omitempty,gt=0,lte=1"`
	DoArtist            bool     `json:"DoArtist"`
	DoAlbum             bool     `json:"DoAlbum"`
	DoTrack             bool     `json:"DoTrack"`
	Automatic           bool     `json:"Automatic"`
	Parallelism         int      `json:"Parallelism" validate:"gte=1,lte=32"`
	MaxRetryAttempts    *int     `json:"MaxRetryAttempts,omitempty" validate:"omitempty,gte=0"`
	UserAgent           string   `json:"UserAgent"`
	SpotifyClientID     string   `json:"SpotifyClientID"`
	SpotifyClientSecret string   `json:"SpotifyClientSecret"`
	NavidromeURL        string   `json:"NavidromeURL" validate:"omitempty,url"`
	NavidromeUsername   string   `json:"NavidromeUsername"`
	NavidromePassword   string   `json:"NavidromePassword"`
	WarningBehavior     string   `json:"WarningBehavior" validate:"omitempty,oneof=summary silent"`
}

// Default returns a configuration with every field at its default
func Default() *Config {
	cfg := &Config{}
	cfg.ApplyDefaults()
	return cfg
}

// ApplyDefaults fills empty fields and normalizes the server settings
func (cfg *Config) ApplyDefaults() {
	if cfg.Server == "" {
		cfg.Server = DefaultServer
	}
	cfg.Server = strings.TrimRight(cfg.Server, "/")

	if cfg.RateLimit == nil {
		cfg.RateLimit = floatPtr(DefaultRateLimit)
	}
	// The public server allows one request per second
	if cfg.Server == DefaultServer && *cfg.RateLimit < DefaultRateLimit {
		cfg.RateLimit = floatPtr(DefaultRateLimit)
	}

	if cfg.Parallelism == 0 {
		cfg.Parallelism = 4
	}
	if cfg.MaxRetryAttempts == nil {
		retries := DefaultMaxRetries
		cfg.MaxRetryAttempts = &retries
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = UserAgent
	}
	if cfg.WarningBehavior == "" {
		cfg.WarningBehavior = "summary"
	}
}

// RatioThreshold returns the configured threshold, or nil to keep the
// resolver's default.
func (cfg *Config) RatioThreshold() *float64 {
	return cfg.Threshold
}

// RateLimitSeconds returns the delay between MusicBrainz requests. Zero
// disables the limiter.
func (cfg *Config) RateLimitSeconds() float64 {
	if cfg.RateLimit == nil {
		return DefaultRateLimit
	}
	return *cfg.RateLimit
}

// RateLimitDuration converts RateLimit seconds into a duration
func (cfg *Config) RateLimitDuration() time.Duration {
	return time.Duration(cfg.RateLimitSeconds() * float64(time.Second))
}

// RetryAttempts returns the number of attempts per request. Zero makes a
// single attempt.
func (cfg *Config) RetryAttempts() int {
	if cfg.MaxRetryAttempts == nil {
		return DefaultMaxRetries
	}
	return *cfg.MaxRetryAttempts
}

// SpotifyEnabled reports whether Spotify credentials are present
func (cfg *Config) SpotifyEnabled() bool {
	return cfg.SpotifyClientID != "" && cfg.SpotifyClientSecret != ""
}

// NavidromeEnabled reports whether a Navidrome server is configured
func (cfg *Config) NavidromeEnabled() bool {
	return cfg.NavidromeURL != "" && cfg.NavidromeUsername != ""
}

// Validate checks field constraints
func (cfg *Config) Validate() error {
	if err := validator.New().Struct(cfg); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// ApplyEnv loads a .env file when present and lets environment variables
// override credentials.
func (cfg *Config) ApplyEnv(envFile string) error {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to load %s: %w", envFile, err)
		}
	}

	overrides := map[string]*string{
		EnvSpotifyClientID:     &cfg.SpotifyClientID,
		EnvSpotifyClientSecret: &cfg.SpotifyClientSecret,
		EnvNavidromeURL:        &cfg.NavidromeURL,
		EnvNavidromeUsername:   &cfg.NavidromeUsername,
		EnvNavidromePassword:   &cfg.NavidromePassword,
	}
	for key, field := range overrides {
		if value, ok := os.LookupEnv(key); ok && value != "" {
			*field = value
		}
	}
	return nil
}

func floatPtr(v float64) *float64 {
	return &v
}

// CreateDirIfNotExists creates a directory if it does not exist
func CreateDirIfNotExists(dir string) error {
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return os.MkdirAll(dir, 0755)
	}
	return nil
}

// LoadConfig loads configuration from a JSON file and applies defaults
func LoadConfig(filePath string, config *Config) error {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	if err := json.Unmarshal(data, config); err != nil {
		return fmt.Errorf("failed to unmarshal config: %w", err)
	}
	config.ApplyDefaults()
	return nil
}

// SaveConfig saves configuration to a JSON file
func SaveConfig(filePath string, config *Config) error {
	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	dir := filepath.Dir(filePath)
	if err := CreateDirIfNotExists(dir); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(filePath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}
