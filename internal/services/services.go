package services

import (
	"fmt"
	"net/http"
	"path/filepath"

	"alias-resolver/internal/alias"
	"alias-resolver/internal/api/musicbrainz"
	"alias-resolver/internal/api/navidrome"
	"alias-resolver/internal/api/spotify"
	"alias-resolver/internal/config"
	"alias-resolver/internal/core/refresh"
	"alias-resolver/internal/interfaces"
	"alias-resolver/internal/shared"
	"alias-resolver/internal/transliterate"
)

// ServiceContainer holds all application services
type ServiceContainer struct {
	Config           interfaces.ConfigService
	MusicBrainz      *musicbrainz.Client
	Transliterator   alias.Transliterator
	NameSource       interfaces.NameSource       // nil without Spotify credentials
	Rescanner        interfaces.LibraryRescanner // nil without a Navidrome server
	Refresh          interfaces.RefreshService
	Logger           interfaces.LoggerService
	WarningCollector interfaces.WarningCollectorService
}

// NewServiceContainer creates a new service container with all services initialized
func NewServiceContainer(cfg *config.Config, httpClient *http.Client) *ServiceContainer {
	// Create logger first as other services may need it
	logger := NewConsoleLogger()

	warningCollector := shared.NewWarningCollector(cfg.WarningBehavior != "silent")

	mbClient := musicbrainz.NewClientWithConfig(MusicBrainzConfig(cfg))

	transliterator := transliterate.NewJapanese()

	var nameSource interfaces.NameSource
	if cfg.SpotifyEnabled() {
		nameSource = spotify.NewSpotifyClient(cfg.SpotifyClientID, cfg.SpotifyClientSecret)
	}

	var rescanner interfaces.LibraryRescanner
	if cfg.NavidromeEnabled() {
		rescanner = navidrome.NewNavidromeClient(cfg.NavidromeURL, cfg.NavidromeUsername, cfg.NavidromePassword, httpClient)
	}

	refreshService := refresh.NewService(mbClient, transliterator, nameSource, rescanner, logger, warningCollector)

	return &ServiceContainer{
		Config:           NewConfigService(),
		MusicBrainz:      mbClient,
		Transliterator:   transliterator,
		NameSource:       nameSource,
		Rescanner:        rescanner,
		Refresh:          refreshService,
		Logger:           logger,
		WarningCollector: warningCollector,
	}
}

// ApplyConfig pushes a changed configuration into the services built from it
func (sc *ServiceContainer) ApplyConfig(cfg *config.Config, debug bool) {
	mbConfig := MusicBrainzConfig(cfg)
	mbConfig.Debug = debug
	sc.MusicBrainz.UpdateConfig(mbConfig)
	sc.Logger.SetDebugMode(debug)
}

// MusicBrainzConfig derives the MusicBrainz client settings from the
// application configuration.
func MusicBrainzConfig(cfg *config.Config) musicbrainz.Config {
	mbConfig := musicbrainz.DefaultConfig()
	mbConfig.Server = cfg.Server
	mbConfig.UserAgent = cfg.UserAgent
	mbConfig.RateLimit = cfg.RateLimitDuration()
	mbConfig.MaxRetries = cfg.RetryAttempts()
	return mbConfig
}

// ConfigService implementation
type ConfigService struct{}

func NewConfigService() *ConfigService {
	return &ConfigService{}
}

// LoadConfig reads the config file, then lets a .env file next to it and
// the environment override credentials.
func (cs *ConfigService) LoadConfig(configFile string) (*config.Config, error) {
	cfg := &config.Config{}
	if err := config.LoadConfig(configFile, cfg); err != nil {
		return nil, err
	}
	if err := cfg.ApplyEnv(filepath.Join(filepath.Dir(configFile), ".env")); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (cs *ConfigService) SaveConfig(configFile string, cfg *config.Config) error {
	return config.SaveConfig(configFile, cfg)
}

func (cs *ConfigService) ValidateConfig(cfg *config.Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	if !cfg.DoArtist && !cfg.DoAlbum && !cfg.DoTrack {
		return fmt.Errorf("invalid configuration: at least one of DoArtist, DoAlbum or DoTrack must be enabled")
	}
	return nil
}

func (cs *ConfigService) GetDefaultConfig() *config.Config {
	cfg := config.Default()
	cfg.LibraryPath = "./music"
	cfg.DoArtist = true
	cfg.DoAlbum = true
	cfg.DoTrack = true
	return cfg
}

func (cs *ConfigService) EnsureConfigExists(configFile string) error {
	if !shared.FileExists(configFile) {
		defaultConfig := cs.GetDefaultConfig()
		return cs.SaveConfig(configFile, defaultConfig)
	}
	return nil
}

// ConsoleLogger implementation
type ConsoleLogger struct {
	debugMode bool
}

func NewConsoleLogger() *ConsoleLogger {
	return &ConsoleLogger{debugMode: shared.IsDebugMode()}
}

func (cl *ConsoleLogger) Info(message string, args ...interface{}) {
	shared.ColorInfo.Printf(message+"\n", args...)
}

func (cl *ConsoleLogger) Warning(message string, args ...interface{}) {
	shared.ColorWarning.Printf("⚠️ "+message+"\n", args...)
}

func (cl *ConsoleLogger) Error(message string, args ...interface{}) {
	shared.ColorError.Printf("❌ "+message+"\n", args...)
}

func (cl *ConsoleLogger) Debug(message string, args ...interface{}) {
	shared.DebugPrint(cl.debugMode, message, args...)
}

func (cl *ConsoleLogger) Success(message string, args ...interface{}) {
	shared.ColorSuccess.Printf("✅ "+message+"\n", args...)
}

func (cl *ConsoleLogger) SetDebugMode(enabled bool) {
	cl.debugMode = enabled
}
