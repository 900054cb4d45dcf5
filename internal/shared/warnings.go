package shared

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

// WarningType represents different types of warnings
type WarningType int

const (
	ArtistLookupWarning WarningType = iota
	AlbumLookupWarning
	TrackLookupWarning
	InvalidIdentifierWarning
	UnreadableFileWarning
	NameSourceWarning
)

// Warning represents a single warning with context
type Warning struct {
	Type    WarningType
	Message string
	Context string // Entity or file context
	Details string // Additional details like error message
}

// WarningCollector collects warnings during a library pass. It is safe for
// concurrent use.
type WarningCollector struct {
	mu       sync.Mutex
	warnings []Warning
	enabled  bool
}

// NewWarningCollector creates a new warning collector
func NewWarningCollector(enabled bool) *WarningCollector {
	return &WarningCollector{
		warnings: make([]Warning, 0),
		enabled:  enabled,
	}
}

// AddWarning adds a warning to the collector
func (wc *WarningCollector) AddWarning(warningType WarningType, context, message, details string) {
	if !wc.enabled {
		return
	}

	wc.mu.Lock()
	defer wc.mu.Unlock()
	wc.warnings = append(wc.warnings, Warning{
		Type:    warningType,
		Message: message,
		Context: context,
		Details: details,
	})
}

// AddLookupWarning records a swallowed MusicBrainz failure for an entity
func (wc *WarningCollector) AddLookupWarning(kind, label, details string) {
	warningType := TrackLookupWarning
	switch kind {
	case "artist":
		warningType = ArtistLookupWarning
	case "album":
		warningType = AlbumLookupWarning
	}
	wc.AddWarning(warningType, label, fmt.Sprintf("Failed to look up %s on MusicBrainz", kind), details)
}

// AddInvalidIdentifierWarning records a MusicBrainz identifier that is not a UUID
func (wc *WarningCollector) AddInvalidIdentifierWarning(label, field, value string) {
	context := fmt.Sprintf("%s (%s=%s)", label, field, value)
	wc.AddWarning(InvalidIdentifierWarning, context, "Invalid MusicBrainz identifier", "")
}

// AddUnreadableFileWarning records a file that could not be parsed
func (wc *WarningCollector) AddUnreadableFileWarning(path, details string) {
	wc.AddWarning(UnreadableFileWarning, path, "Could not read FLAC tags", details)
}

// AddNameSourceWarning records a failure of the supplemental name source
func (wc *WarningCollector) AddNameSourceWarning(label, details string) {
	wc.AddWarning(NameSourceWarning, label, "Supplemental name lookup failed", details)
}

// HasWarnings returns true if there are any warnings
func (wc *WarningCollector) HasWarnings() bool {
	return wc.GetWarningCount() > 0
}

// GetWarningCount returns the total number of warnings
func (wc *WarningCollector) GetWarningCount() int {
	wc.mu.Lock()
	defer wc.mu.Unlock()
	return len(wc.warnings)
}

// GetWarningsByType returns warnings grouped by type
func (wc *WarningCollector) GetWarningsByType() map[WarningType][]Warning {
	wc.mu.Lock()
	defer wc.mu.Unlock()

	grouped := make(map[WarningType][]Warning)
	for _, warning := range wc.warnings {
		grouped[warning.Type] = append(grouped[warning.Type], warning)
	}
	return grouped
}

// PrintSummary prints a formatted summary of all warnings
func (wc *WarningCollector) PrintSummary() {
	if !wc.HasWarnings() {
		return
	}

	ColorWarning.Printf("\n⚠️  Warning Summary (%d warnings):\n", wc.GetWarningCount())
	ColorWarning.Println(strings.Repeat("─", 50))

	grouped := wc.GetWarningsByType()

	// Sort warning types for consistent output
	var types []WarningType
	for warningType := range grouped {
		types = append(types, warningType)
	}
	sort.Slice(types, func(i, j int) bool { return types[i] < types[j] })

	for _, warningType := range types {
		wc.printWarningTypeSection(warningType, grouped[warningType])
	}
}

// printWarningTypeSection prints warnings for a specific type
func (wc *WarningCollector) printWarningTypeSection(warningType WarningType, warnings []Warning) {
	if len(warnings) == 0 {
		return
	}

	ColorWarning.Printf("\n%s (%d):\n", getWarningTypeTitle(warningType), len(warnings))

	// Group similar warnings to avoid repetition
	contextCounts := make(map[string]int)
	for _, warning := range warnings {
		contextCounts[warning.Context]++
	}

	var contexts []string
	for context := range contextCounts {
		contexts = append(contexts, context)
	}
	sort.Strings(contexts)

	for _, context := range contexts {
		count := contextCounts[context]
		if count > 1 {
			ColorWarning.Printf("  • %s (×%d)\n", context, count)
		} else {
			ColorWarning.Printf("  • %s\n", context)
		}
	}
}

// getWarningTypeTitle returns a human-readable title for a warning type
func getWarningTypeTitle(warningType WarningType) string {
	switch warningType {
	case ArtistLookupWarning:
		return "MusicBrainz Artist Lookup Failures"
	case AlbumLookupWarning:
		return "MusicBrainz Album Lookup Failures"
	case TrackLookupWarning:
		return "MusicBrainz Track Lookup Failures"
	case InvalidIdentifierWarning:
		return "Invalid MusicBrainz Identifiers"
	case UnreadableFileWarning:
		return "Unreadable Files"
	case NameSourceWarning:
		return "Supplemental Name Lookup Failures"
	default:
		return "Other Warnings"
	}
}
