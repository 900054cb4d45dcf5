package library

import (
	"fmt"
	"strings"
	"sync"

	"github.com/go-flac/flacvorbis"
	"github.com/go-flac/go-flac"
)

// Vorbis comment fields read and written by the resolver
const (
	FieldTitle          = flacvorbis.FIELD_TITLE
	FieldAlbum          = flacvorbis.FIELD_ALBUM
	FieldArtist         = flacvorbis.FIELD_ARTIST
	FieldAlbumArtist    = "ALBUMARTIST"
	FieldRecordingID    = "MUSICBRAINZ_TRACKID"
	FieldReleaseID      = "MUSICBRAINZ_ALBUMID"
	FieldReleaseGroupID = "MUSICBRAINZ_RELEASEGROUPID"
	FieldAlbumArtistID  = "MUSICBRAINZ_ALBUMARTISTID"
	FieldArtistID       = "MUSICBRAINZ_ARTISTID"
)

// Track is one FLAC file and its Vorbis comments. Tag changes stay in memory
// until Save is called.
type Track struct {
	mu      sync.Mutex
	path    string
	comment *flacvorbis.MetaDataBlockVorbisComment
	dirty   bool
}

// LoadTrack reads the Vorbis comments of a FLAC file. A file without a
// comment block gets an empty one.
func LoadTrack(path string) (*Track, error) {
	f, err := flac.ParseFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to parse FLAC file: %w", err)
	}

	comment, err := findComment(f)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Vorbis comment in %s: %w", path, err)
	}
	return &Track{path: path, comment: comment}, nil
}

// NewTrack builds a track from KEY=value comments without touching the
// file system. Saving it requires a FLAC file at path.
func NewTrack(path string, comments ...string) *Track {
	comment := flacvorbis.New()
	comment.Comments = append(comment.Comments, comments...)
	return &Track{path: path, comment: comment}
}

func findComment(f *flac.File) (*flacvorbis.MetaDataBlockVorbisComment, error) {
	for _, block := range f.Meta {
		if block.Type == flac.VorbisComment {
			return flacvorbis.ParseFromMetaDataBlock(*block)
		}
	}
	return flacvorbis.New(), nil
}

// Path returns the file location
func (t *Track) Path() string {
	return t.path
}

// Get returns the first value of a field, or "" when absent.
func (t *Track) Get(field string) string {
	values := t.Values(field)
	if len(values) == 0 {
		return ""
	}
	return values[0]
}

// Values returns every value of a field in file order
func (t *Track) Values(field string) []string {
	t.mu.Lock()
	defer t.mu.Unlock()

	values, err := t.comment.Get(field)
	if err != nil {
		return nil
	}
	return values
}

// Set replaces all values of a field. No values removes the field.
func (t *Track) Set(field string, values ...string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	current, _ := t.comment.Get(field)
	if equalValues(current, values) {
		return
	}

	prefix := strings.ToUpper(field) + "="
	kept := t.comment.Comments[:0]
	for _, c := range t.comment.Comments {
		if !strings.HasPrefix(strings.ToUpper(c), prefix) {
			kept = append(kept, c)
		}
	}
	t.comment.Comments = kept

	for _, v := range values {
		t.comment.Add(field, v)
	}
	t.dirty = true
}

// ReplaceValue swaps every value of field equal to from with to, keeping
// the other values and their order.
func (t *Track) ReplaceValue(field, from, to string) bool {
	values := t.Values(field)
	changed := false
	for i, v := range values {
		if v == from && v != to {
			values[i] = to
			changed = true
		}
	}
	if changed {
		t.Set(field, values...)
	}
	return changed
}

// Dirty reports whether the tags changed since the file was loaded or saved.
func (t *Track) Dirty() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.dirty
}

// Label describes the track for logs
func (t *Track) Label() string {
	title := t.Get(FieldTitle)
	if title == "" {
		return t.path
	}
	return title
}

// Save writes the comment block back into the file, leaving every other
// metadata block and the audio frames untouched.
func (t *Track) Save() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.dirty {
		return nil
	}

	f, err := flac.ParseFile(t.path)
	if err != nil {
		return fmt.Errorf("failed to parse FLAC file: %w", err)
	}

	block := t.comment.Marshal()
	var meta []*flac.MetaDataBlock
	replaced := false
	for _, existing := range f.Meta {
		if existing.Type == flac.VorbisComment {
			if !replaced {
				meta = append(meta, &block)
				replaced = true
			}
			continue
		}
		meta = append(meta, existing)
	}
	if !replaced {
		meta = append(meta, &block)
	}
	f.Meta = meta

	if err := f.Save(t.path); err != nil {
		return fmt.Errorf("failed to save FLAC file with metadata: %w", err)
	}
	t.dirty = false
	return nil
}

func equalValues(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
