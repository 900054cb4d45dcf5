package refresh

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"alias-resolver/internal/alias"
	"alias-resolver/internal/api/musicbrainz"
	"alias-resolver/internal/config"
	"alias-resolver/internal/interfaces"
	"alias-resolver/internal/library"
	"alias-resolver/internal/library/librarytest"
	"alias-resolver/internal/shared"
)

const (
	releaseID      = "b1a9c0e9-d987-4042-ae91-78d6a3267d69"
	releaseGroupID = "f5093c06-23e3-404f-aeaa-40f72885ee3a"
	recordingID    = "e3f3c2d4-55c2-4d28-bb47-71f42f2a5ccc"
	artistID       = "b9ad642e-b012-41c7-b72a-42cf4911f9ff"
)

type fakeLookup struct{}

func (fakeLookup) LookupRelease(ctx context.Context, mbid string) (*musicbrainz.Release, error) {
	return &musicbrainz.Release{
		Title:              "東京",
		TextRepresentation: musicbrainz.TextRepresentation{Script: "Jpan", Language: "jpn"},
	}, nil
}

func (fakeLookup) LookupReleaseGroup(ctx context.Context, mbid string) (*musicbrainz.ReleaseGroup, error) {
	return &musicbrainz.ReleaseGroup{
		Releases: []musicbrainz.Release{
			{Title: "Tokyo", TextRepresentation: musicbrainz.TextRepresentation{Script: "Latn", Language: "eng"}},
		},
	}, nil
}

func (fakeLookup) LookupRecording(ctx context.Context, mbid string) (*musicbrainz.Recording, error) {
	return &musicbrainz.Recording{Aliases: []musicbrainz.Alias{{Name: "Lightning"}}}, nil
}

func (fakeLookup) LookupArtist(ctx context.Context, mbid string) (*musicbrainz.Artist, error) {
	return &musicbrainz.Artist{Aliases: []musicbrainz.Alias{{Name: "Kenshi Yonezu", Locale: "en"}}}, nil
}

type fakeTransliterator struct{}

func (fakeTransliterator) Transliterate(ctx context.Context, text, targetScript string, mode alias.SpacingMode) (string, error) {
	return "", errors.New("unexpected transliteration")
}

type fakeRescanner struct {
	calls int
}

func (f *fakeRescanner) Rescan(ctx context.Context) error {
	f.calls++
	return nil
}

type quietLogger struct{}

func (quietLogger) Info(string, ...interface{})    {}
func (quietLogger) Warning(string, ...interface{}) {}
func (quietLogger) Error(string, ...interface{})   {}
func (quietLogger) Debug(string, ...interface{})   {}
func (quietLogger) Success(string, ...interface{}) {}
func (quietLogger) SetDebugMode(bool)              {}

func writeLibrary(t *testing.T) string {
	root := t.TempDir()
	common := []string{
		"ALBUM=東京",
		"ALBUMARTIST=米津玄師",
		"ARTIST=米津玄師",
		"MUSICBRAINZ_ALBUMID=" + releaseID,
		"MUSICBRAINZ_RELEASEGROUPID=" + releaseGroupID,
		"MUSICBRAINZ_ALBUMARTISTID=" + artistID,
	}
	librarytest.WriteFLAC(t, filepath.Join(root, "tokyo", "01.flac"),
		append([]string{"TITLE=感電", "MUSICBRAINZ_TRACKID=" + recordingID}, common...)...)
	librarytest.WriteFLAC(t, filepath.Join(root, "tokyo", "02.flac"),
		append([]string{"TITLE=Flamingo", "MUSICBRAINZ_TRACKID=" + recordingID}, common...)...)
	return root
}

func newTestService(rescanner interfaces.LibraryRescanner) (*Service, *shared.WarningCollector) {
	warnings := shared.NewWarningCollector(true)
	s := NewService(fakeLookup{}, fakeTransliterator{}, nil, rescanner, quietLogger{}, warnings)
	s.progress = false
	s.now = func() time.Time { return time.Date(2024, 1, 2, 15, 4, 5, 0, time.UTC) }
	return s, warnings
}

func testConfig(root string) *config.Config {
	cfg := config.Default()
	cfg.LibraryPath = root
	cfg.DoArtist = true
	cfg.DoAlbum = true
	cfg.DoTrack = true
	cfg.Parallelism = 2
	return cfg
}

func TestRunWritesResolvedNames(t *testing.T) {
	root := writeLibrary(t)
	rescanner := &fakeRescanner{}
	s, _ := newTestService(rescanner)

	stats, err := s.Run(context.Background(), testConfig(root), interfaces.RefreshOptions{})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if stats.Evaluated != 4 {
		t.Errorf("Expected 1 artist, 1 album and 2 tracks evaluated, got %d", stats.Evaluated)
	}
	if stats.FailedCount != 0 {
		t.Errorf("Unexpected failures: %v", stats.FailedItems)
	}
	if stats.FilesWritten != 2 {
		t.Errorf("Expected 2 files written, got %d", stats.FilesWritten)
	}
	if rescanner.calls != 1 {
		t.Errorf("Expected one media server scan, got %d", rescanner.calls)
	}

	lib, _, err := library.Scan(context.Background(), root)
	if err != nil {
		t.Fatalf("Rescan failed: %v", err)
	}
	first := lib.Tracks()[0]
	if first.Get(library.FieldAlbum) != "Tokyo" {
		t.Errorf("Expected album Tokyo, got %q", first.Get(library.FieldAlbum))
	}
	if first.Get(library.FieldAlbumArtist) != "Kenshi Yonezu" || first.Get(library.FieldArtist) != "Kenshi Yonezu" {
		t.Errorf("Expected artist Kenshi Yonezu, got %q / %q", first.Get(library.FieldAlbumArtist), first.Get(library.FieldArtist))
	}
	if first.Get(library.FieldTitle) != "Lightning" {
		t.Errorf("Expected title Lightning, got %q", first.Get(library.FieldTitle))
	}
	if got := lib.Tracks()[1].Get(library.KindTrack.StateField()); got != "Medium|1/2/2024 3:04:05 PM|Flamingo" {
		t.Errorf("Unexpected track state %q", got)
	}
	if got := first.Get(library.KindAlbum.StateField()); got != "Good|1/2/2024 3:04:05 PM|Tokyo" {
		t.Errorf("Unexpected album state %q", got)
	}

	// A second pass finds everything up to date
	rescanner.calls = 0
	stats, err = s.Run(context.Background(), testConfig(root), interfaces.RefreshOptions{})
	if err != nil {
		t.Fatalf("Second run failed: %v", err)
	}
	if stats.FilesWritten != 0 || stats.Updated != 0 {
		t.Errorf("Expected an idle second pass, got %+v", stats)
	}
	if rescanner.calls != 0 {
		t.Error("Expected no media server scan without changes")
	}
}

func TestRunDryRunWritesNothing(t *testing.T) {
	root := writeLibrary(t)
	s, _ := newTestService(nil)

	stats, err := s.Run(context.Background(), testConfig(root), interfaces.RefreshOptions{DryRun: true})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if stats.Updated == 0 || stats.FilesWritten != 0 {
		t.Errorf("Expected updates without writes, got %+v", stats)
	}

	lib, _, err := library.Scan(context.Background(), root)
	if err != nil {
		t.Fatal(err)
	}
	if lib.Tracks()[0].Get(library.FieldAlbum) != "東京" {
		t.Error("Expected files untouched by a dry run")
	}
}

func TestRunRefusesLockedLibrary(t *testing.T) {
	root := writeLibrary(t)
	unlock, err := library.Lock(root)
	if err != nil {
		t.Fatal(err)
	}
	defer unlock()

	s, _ := newTestService(nil)
	if _, err := s.Run(context.Background(), testConfig(root), interfaces.RefreshOptions{}); !errors.Is(err, shared.ErrLibraryLocked) {
		t.Errorf("Expected ErrLibraryLocked, got %v", err)
	}
}

func TestRunCancelled(t *testing.T) {
	root := writeLibrary(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s, _ := newTestService(nil)
	if _, err := s.Run(ctx, testConfig(root), interfaces.RefreshOptions{}); !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
}

func TestRunSkipsDisabledKinds(t *testing.T) {
	root := writeLibrary(t)
	s, _ := newTestService(nil)
	cfg := testConfig(root)
	cfg.DoArtist = false
	cfg.DoTrack = false

	stats, err := s.Run(context.Background(), cfg, interfaces.RefreshOptions{})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	lib, _, err := library.Scan(context.Background(), root)
	if err != nil {
		t.Fatal(err)
	}
	track := lib.Tracks()[0]
	if track.Get(library.FieldAlbumArtist) != "米津玄師" {
		t.Error("Expected the artist untouched when artists are disabled")
	}
	if track.Get(library.KindTrack.StateField()) != "" {
		t.Error("Expected no track state when tracks are disabled")
	}
	if stats.Updated != 1 {
		t.Errorf("Expected only the album updated, got %d", stats.Updated)
	}
}
