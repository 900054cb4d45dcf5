package shared

import (
	"errors"
	"fmt"
)

// RunStats counts the outcome of one library pass
type RunStats struct {
	Evaluated    int
	Updated      int
	Restored     int
	Unchanged    int
	Synced       int // files changed by child propagation
	FailedCount  int
	FailedItems  []string
	FilesWritten int
}

// EntityError holds information about an entity whose evaluation failed
type EntityError struct {
	Label string
	Err   error
}

func (e *EntityError) Error() string {
	return fmt.Sprintf("%s: %v", e.Label, e.Err)
}

func (e *EntityError) Unwrap() error {
	return e.Err
}

// ErrLibraryLocked is returned when another process holds the library lock.
var ErrLibraryLocked = errors.New("library is locked by another process")

// ErrNoFlacFiles is returned when a library path contains no FLAC files.
var ErrNoFlacFiles = errors.New("no FLAC files found")
