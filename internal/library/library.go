package library

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gofrs/flock"

	"alias-resolver/internal/shared"
)

// LockFileName is created in the library root while a pass runs
const LockFileName = ".alias-resolver.lock"

// ScanError records a file that could not be read during a scan
type ScanError struct {
	Path string
	Err  error
}

// Library is every FLAC file under a root directory, grouped into artists,
// albums and tracks.
type Library struct {
	Root    string
	tracks  []*Track
	albums  []*Album
	artists []*Artist
}

// Scan walks root and loads the tags of every .flac file. Files that fail
// to parse are reported and skipped.
func Scan(ctx context.Context, root string) (*Library, []ScanError, error) {
	var paths []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if !d.IsDir() && strings.EqualFold(filepath.Ext(path), ".flac") {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to walk %s: %w", root, err)
	}
	if len(paths) == 0 {
		return nil, nil, fmt.Errorf("%w under %s", shared.ErrNoFlacFiles, root)
	}
	sort.Strings(paths)

	var tracks []*Track
	var skipped []ScanError
	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return nil, nil, err
		}
		track, err := LoadTrack(path)
		if err != nil {
			skipped = append(skipped, ScanError{Path: path, Err: err})
			continue
		}
		tracks = append(tracks, track)
	}

	return New(root, tracks), skipped, nil
}

// New groups already loaded tracks into a library
func New(root string, tracks []*Track) *Library {
	lib := &Library{Root: root, tracks: tracks}

	albumIndex := make(map[string]*Album)
	artistIndex := make(map[string]*Artist)
	for _, t := range tracks {
		key := t.Get(FieldReleaseID)
		if key == "" {
			key = "dir:" + filepath.Dir(t.Path())
		}
		album, ok := albumIndex[key]
		if !ok {
			album = &Album{}
			albumIndex[key] = album
			lib.albums = append(lib.albums, album)
		}
		album.tracks = append(album.tracks, t)

		artistID := t.Get(FieldAlbumArtistID)
		if artistID == "" {
			continue
		}
		artist, ok := artistIndex[artistID]
		if !ok {
			artist = &Artist{}
			artistIndex[artistID] = artist
			lib.artists = append(lib.artists, artist)
		}
		artist.tracks = append(artist.tracks, t)
	}

	return lib
}

// Tracks returns every loaded file
func (l *Library) Tracks() []*Track {
	return l.tracks
}

// Albums returns the albums in first-seen order
func (l *Library) Albums() []*Album {
	return l.albums
}

// Artists returns the album artists in first-seen order
func (l *Library) Artists() []*Artist {
	return l.artists
}

// Entities returns the entities of one kind
func (l *Library) Entities(kind Kind) []Entity {
	var entities []Entity
	switch kind {
	case KindArtist:
		for _, a := range l.artists {
			entities = append(entities, a)
		}
	case KindAlbum:
		for _, a := range l.albums {
			entities = append(entities, a)
		}
	case KindTrack:
		for _, t := range l.tracks {
			entities = append(entities, &TrackEntity{track: t})
		}
	}
	return entities
}

// Dirty returns the files with unsaved tag changes
func (l *Library) Dirty() []*Track {
	var dirty []*Track
	for _, t := range l.tracks {
		if t.Dirty() {
			dirty = append(dirty, t)
		}
	}
	return dirty
}

// Save writes every changed file. It stops at the first failure and returns
// the number of files written so far.
func (l *Library) Save(ctx context.Context) (int, error) {
	written := 0
	for _, t := range l.Dirty() {
		if err := ctx.Err(); err != nil {
			return written, err
		}
		if err := t.Save(); err != nil {
			return written, fmt.Errorf("failed to save %s: %w", t.Path(), err)
		}
		written++
	}
	return written, nil
}

// Lock takes an exclusive, non-blocking lock on the library root. The
// returned function releases it.
func Lock(root string) (func() error, error) {
	lock := flock.New(filepath.Join(root, LockFileName))
	locked, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("failed to lock library: %w", err)
	}
	if !locked {
		return nil, shared.ErrLibraryLocked
	}
	return lock.Unlock, nil
}
