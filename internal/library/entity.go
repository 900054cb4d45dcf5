package library

import "fmt"

// Kind is one of the three entity kinds a library exposes
type Kind int

const (
	KindArtist Kind = iota
	KindAlbum
	KindTrack
)

// Kinds lists every kind in processing order
var Kinds = []Kind{KindArtist, KindAlbum, KindTrack}

func (k Kind) String() string {
	switch k {
	case KindArtist:
		return "artist"
	case KindAlbum:
		return "album"
	case KindTrack:
		return "track"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// StateField is the Vorbis comment key holding the persisted state of an
// entity kind.
func (k Kind) StateField() string {
	switch k {
	case KindArtist:
		return "ALIASRESOLVER_ARTIST"
	case KindAlbum:
		return "ALIASRESOLVER_ALBUM"
	default:
		return "ALIASRESOLVER_TRACK"
	}
}

// Entity is an artist, album or track view over the library files.
type Entity interface {
	Kind() Kind
	Name() string
	SetName(name string)
	// ProviderID returns the value of an identifier field, or "" when absent
	ProviderID(field string) string
	State() string
	SetState(raw string)
	Label() string
	Tracks() []*Track
}

// TrackEntity exposes a single file as an entity
type TrackEntity struct {
	track *Track
}

func (e *TrackEntity) Kind() Kind                     { return KindTrack }
func (e *TrackEntity) Name() string                   { return e.track.Get(FieldTitle) }
func (e *TrackEntity) SetName(name string)            { e.track.Set(FieldTitle, name) }
func (e *TrackEntity) ProviderID(field string) string { return e.track.Get(field) }
func (e *TrackEntity) State() string                  { return e.track.Get(KindTrack.StateField()) }
func (e *TrackEntity) SetState(raw string)            { e.track.Set(KindTrack.StateField(), raw) }
func (e *TrackEntity) Label() string                  { return e.track.Label() }
func (e *TrackEntity) Tracks() []*Track               { return []*Track{e.track} }

// group holds the member files of an album or artist. The first file is the
// canonical source of names, identifiers and state.
type group struct {
	tracks []*Track
}

func (g *group) first() *Track {
	return g.tracks[0]
}

func (g *group) providerID(field string) string {
	for _, t := range g.tracks {
		if v := t.Get(field); v != "" {
			return v
		}
	}
	return ""
}

func (g *group) setAll(field string, values ...string) {
	for _, t := range g.tracks {
		t.Set(field, values...)
	}
}

// Album is the set of files sharing a release
type Album struct {
	group
}

func (a *Album) Kind() Kind                     { return KindAlbum }
func (a *Album) Name() string                   { return a.first().Get(FieldAlbum) }
func (a *Album) ProviderID(field string) string { return a.providerID(field) }
func (a *Album) State() string                  { return a.first().Get(KindAlbum.StateField()) }
func (a *Album) SetState(raw string)            { a.setAll(KindAlbum.StateField(), raw) }
func (a *Album) Tracks() []*Track               { return a.tracks }

// SetName renames the album on every member file
func (a *Album) SetName(name string) {
	a.setAll(FieldAlbum, name)
}

func (a *Album) Label() string {
	name := a.Name()
	if artist := a.AlbumArtist(); artist != "" {
		return fmt.Sprintf("%s - %s", artist, name)
	}
	return name
}

// AlbumArtist returns the album artist of the canonical file
func (a *Album) AlbumArtist() string {
	return a.first().Get(FieldAlbumArtist)
}

// Artist is the set of files sharing an album artist
type Artist struct {
	group
}

func (a *Artist) Kind() Kind                     { return KindArtist }
func (a *Artist) ProviderID(field string) string { return a.providerID(field) }
func (a *Artist) State() string                  { return a.first().Get(KindArtist.StateField()) }
func (a *Artist) SetState(raw string)            { a.setAll(KindArtist.StateField(), raw) }
func (a *Artist) Label() string                  { return a.Name() }
func (a *Artist) Tracks() []*Track               { return a.tracks }

// Name returns the album artist, falling back to the first track artist
func (a *Artist) Name() string {
	return trackArtistName(a.first())
}

// SetName renames the artist on every member file. Track artist values
// equal to the old name are renamed too.
func (a *Artist) SetName(name string) {
	for _, t := range a.tracks {
		renameArtist(t, name)
	}
}

func trackArtistName(t *Track) string {
	if name := t.Get(FieldAlbumArtist); name != "" {
		return name
	}
	return t.Get(FieldArtist)
}

// renameArtist sets ALBUMARTIST and swaps matching ARTIST values. It reports
// whether the file changed.
func renameArtist(t *Track, name string) bool {
	old := trackArtistName(t)
	if old == name && t.Get(FieldAlbumArtist) == name {
		return false
	}
	changed := t.ReplaceValue(FieldArtist, old, name)
	if t.Get(FieldAlbumArtist) != name {
		t.Set(FieldAlbumArtist, name)
		changed = true
	}
	return changed
}

// SyncTracks gives every member file the album's canonical name and returns
// the number of files changed.
func (a *Album) SyncTracks() int {
	name := a.Name()
	if name == "" {
		return 0
	}
	changed := 0
	for _, t := range a.tracks {
		if t.Get(FieldAlbum) != name {
			t.Set(FieldAlbum, name)
			changed++
		}
	}
	return changed
}

// InSync reports whether every member file carries the album's name
func (a *Album) InSync() bool {
	name := a.Name()
	for _, t := range a.tracks {
		if t.Get(FieldAlbum) != name {
			return false
		}
	}
	return true
}

// SyncTracks gives every member file the artist's canonical name and
// returns the number of files changed.
func (a *Artist) SyncTracks() int {
	name := a.Name()
	if name == "" {
		return 0
	}
	changed := 0
	for _, t := range a.tracks {
		if renameArtist(t, name) {
			changed++
		}
	}
	return changed
}

// InSync reports whether every member file carries the artist's name
func (a *Artist) InSync() bool {
	name := a.Name()
	for _, t := range a.tracks {
		if t.Get(FieldAlbumArtist) != name {
			return false
		}
	}
	return true
}
