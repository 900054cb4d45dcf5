package commands

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"

	"alias-resolver/internal/config"
	"alias-resolver/internal/services"
	"alias-resolver/internal/shared"
)

const toolVersion = "1.0.0"

var (
	configFile  string
	libraryPath string
	debug       bool
)

// NewRootCommand creates the alias-resolver command tree
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "alias-resolver",
		Version: toolVersion,
		Short:   "Replace non-Latin artist, album and track names in a FLAC library with readable aliases.",
		Long: fmt.Sprintf(`Alias Resolver (v%s)

Walks a FLAC library tagged with MusicBrainz identifiers and picks the most
readable name for every artist, album and track:
- Latin-script or English aliases from MusicBrainz are preferred.
- Japanese names without such an alias are romanized.
- The outcome is recorded in the files so later passes only revisit changed entities.`, toolVersion),
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&configFile, "config", config.DefaultConfigFile, "Path to the configuration file")
	rootCmd.PersistentFlags().StringVar(&libraryPath, "library", "", "Library directory (overrides LibraryPath)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug logging")

	rootCmd.AddCommand(NewResolveCommand())
	rootCmd.AddCommand(NewStatusCommand())
	rootCmd.AddCommand(NewInspectCommand())
	rootCmd.AddCommand(NewVersionCommand())
	return rootCmd
}

// Execute runs the root command and exits non-zero on failure
func Execute() {
	shared.InitializeColors()
	if err := NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

// initConfigAndServices loads the configuration, applies the command line
// overrides and builds the service container.
func initConfigAndServices() (*config.Config, *services.ServiceContainer, error) {
	configService := services.NewConfigService()

	var cfg *config.Config
	if shared.FileExists(configFile) {
		loaded, err := configService.LoadConfig(configFile)
		if err != nil {
			return nil, nil, err
		}
		cfg = loaded
	} else {
		cfg = configService.GetDefaultConfig()
		if err := cfg.ApplyEnv(".env"); err != nil {
			return nil, nil, err
		}
	}

	if libraryPath != "" {
		cfg.LibraryPath = libraryPath
	}
	if err := configService.ValidateConfig(cfg); err != nil {
		return nil, nil, err
	}
	if !shared.DirExists(cfg.LibraryPath) {
		return nil, nil, fmt.Errorf("library directory %s does not exist", cfg.LibraryPath)
	}

	httpClient := &http.Client{Timeout: 30 * time.Second}
	container := services.NewServiceContainer(cfg, httpClient)
	container.ApplyConfig(cfg, debug || shared.IsDebugMode())
	if !shared.FileExists(configFile) {
		container.Logger.Debug("No config file at %s, using defaults", configFile)
	}
	return cfg, container, nil
}
