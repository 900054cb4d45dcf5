package musicbrainz

// Alias represents an alternate name for an entity
type Alias struct {
	Name     string `json:"name"`
	SortName string `json:"sort-name"`
	Locale   string `json:"locale"`
	Type     string `json:"type"`
	Primary  bool   `json:"primary"`
}

// TextRepresentation represents the script and language a release is written in
type TextRepresentation struct {
	Language string `json:"language"`
	Script   string `json:"script"`
}

// MediaTrack represents a track within media
type MediaTrack struct {
	ID     string `json:"id"`
	Number string `json:"number"`
	Title  string `json:"title"`
	Length int    `json:"length"`
}

// Media represents one disc or other medium of a release
type Media struct {
	Format string       `json:"format"`
	Tracks []MediaTrack `json:"tracks"`
	// Track is used instead of Tracks by some responses
	Track []MediaTrack `json:"track"`
}

// AllTracks returns the tracks regardless of which key the server used
func (m Media) AllTracks() []MediaTrack {
	if len(m.Tracks) > 0 {
		return m.Tracks
	}
	return m.Track
}

// Release represents a MusicBrainz release (album)
type Release struct {
	ID                 string             `json:"id"`
	Title              string             `json:"title"`
	Status             string             `json:"status"`
	Date               string             `json:"date"`
	Country            string             `json:"country"`
	TextRepresentation TextRepresentation `json:"text-representation"`
	Aliases            []Alias            `json:"aliases"`
	Media              []Media            `json:"media"`
}

// ReleaseGroup represents a MusicBrainz release group
type ReleaseGroup struct {
	ID       string    `json:"id"`
	Title    string    `json:"title"`
	Aliases  []Alias   `json:"aliases"`
	Releases []Release `json:"releases"`
}

// Recording represents a MusicBrainz recording (track)
type Recording struct {
	ID       string    `json:"id"`
	Title    string    `json:"title"`
	Length   int       `json:"length"` // Duration in milliseconds
	Aliases  []Alias   `json:"aliases"`
	Releases []Release `json:"releases"`
}

// Artist represents a MusicBrainz artist
type Artist struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	SortName       string  `json:"sort-name"`
	Disambiguation string  `json:"disambiguation"`
	Aliases        []Alias `json:"aliases"`
}
