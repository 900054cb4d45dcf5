package interfaces

import (
	"context"

	"alias-resolver/internal/api/musicbrainz"
	"alias-resolver/internal/config"
	"alias-resolver/internal/shared"
)

// MetadataLookup defines the MusicBrainz lookups the resolver relies on
type MetadataLookup interface {
	// LookupRelease retrieves a release with its text representation
	LookupRelease(ctx context.Context, mbid string) (*musicbrainz.Release, error)

	// LookupReleaseGroup retrieves a release group with its releases and aliases
	LookupReleaseGroup(ctx context.Context, mbid string) (*musicbrainz.ReleaseGroup, error)

	// LookupRecording retrieves a recording with its aliases, media and releases
	LookupRecording(ctx context.Context, mbid string) (*musicbrainz.Recording, error)

	// LookupArtist retrieves an artist with its aliases
	LookupArtist(ctx context.Context, mbid string) (*musicbrainz.Artist, error)
}

// NameSource defines a supplemental source of artist names
type NameSource interface {
	// TopArtistName returns the best matching artist name for a query, or "" when nothing matched
	TopArtistName(ctx context.Context, query string) (string, error)
}

// LibraryRescanner defines the interface for notifying a media server of tag changes
type LibraryRescanner interface {
	// Rescan asks the server to pick up changed files
	Rescan(ctx context.Context) error
}

// RefreshService defines the interface for library passes
type RefreshService interface {
	// Run evaluates every enabled entity kind of the library and saves changed files
	Run(ctx context.Context, cfg *config.Config, opts RefreshOptions) (*shared.RunStats, error)
}

// RefreshOptions controls a single library pass
type RefreshOptions struct {
	Force     bool // re-evaluate entities regardless of their stored state
	Automated bool // the pass was started by a scheduler rather than a user
	DryRun    bool // evaluate without writing files
}

// ConfigService defines the interface for configuration management
type ConfigService interface {
	// LoadConfig loads configuration from file
	LoadConfig(configFile string) (*config.Config, error)

	// SaveConfig saves configuration to file
	SaveConfig(configFile string, config *config.Config) error

	// ValidateConfig validates configuration settings
	ValidateConfig(config *config.Config) error

	// GetDefaultConfig returns a default configuration
	GetDefaultConfig() *config.Config

	// EnsureConfigExists creates a default config file if it doesn't exist
	EnsureConfigExists(configFile string) error
}

// LoggerService defines the interface for logging operations
type LoggerService interface {
	// Info logs an informational message
	Info(message string, args ...interface{})

	// Warning logs a warning message
	Warning(message string, args ...interface{})

	// Error logs an error message
	Error(message string, args ...interface{})

	// Debug logs a debug message
	Debug(message string, args ...interface{})

	// Success logs a success message
	Success(message string, args ...interface{})

	// SetDebugMode enables or disables debug logging
	SetDebugMode(enabled bool)
}

// WarningCollectorService defines the interface for warning collection
type WarningCollectorService interface {
	// AddWarning adds a warning to the collection
	AddWarning(warningType shared.WarningType, context, message, details string)

	// AddLookupWarning records a failed MusicBrainz lookup for an entity
	AddLookupWarning(kind, label, details string)

	// AddInvalidIdentifierWarning records an identifier that is not a valid MBID
	AddInvalidIdentifierWarning(label, field, value string)

	// AddUnreadableFileWarning records a file whose tags could not be read
	AddUnreadableFileWarning(path, details string)

	// AddNameSourceWarning records a failed supplemental name lookup
	AddNameSourceWarning(label, details string)

	// HasWarnings returns true if there are any warnings
	HasWarnings() bool

	// GetWarningCount returns the total number of warnings
	GetWarningCount() int

	// PrintSummary prints a formatted summary of all warnings
	PrintSummary()
}
