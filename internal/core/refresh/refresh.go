package refresh

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/cheggaaa/pb/v3"
	"golang.org/x/sync/semaphore"

	"alias-resolver/internal/alias"
	"alias-resolver/internal/config"
	"alias-resolver/internal/core/provider"
	"alias-resolver/internal/interfaces"
	"alias-resolver/internal/library"
	"alias-resolver/internal/shared"
)

// Service runs library passes
type Service struct {
	lookup         interfaces.MetadataLookup
	transliterator alias.Transliterator
	names          interfaces.NameSource
	rescanner      interfaces.LibraryRescanner
	logger         interfaces.LoggerService
	warnings       interfaces.WarningCollectorService
	progress       bool
	now            func() time.Time
}

// NewService creates a refresh service. names and rescanner may be nil.
func NewService(
	lookup interfaces.MetadataLookup,
	transliterator alias.Transliterator,
	names interfaces.NameSource,
	rescanner interfaces.LibraryRescanner,
	logger interfaces.LoggerService,
	warnings interfaces.WarningCollectorService,
) *Service {
	return &Service{
		lookup:         lookup,
		transliterator: transliterator,
		names:          names,
		rescanner:      rescanner,
		logger:         logger,
		warnings:       warnings,
		progress:       shared.IsTTY(),
		now:            time.Now,
	}
}

type entityError struct {
	label string
	err   error
}

// Run locks the library, evaluates the artist, album and track passes in
// that order and saves the changed files.
func (s *Service) Run(ctx context.Context, cfg *config.Config, opts interfaces.RefreshOptions) (*shared.RunStats, error) {
	unlock, err := library.Lock(cfg.LibraryPath)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := unlock(); err != nil {
			s.logger.Warning("Failed to release library lock: %v", err)
		}
	}()

	lib, skipped, err := library.Scan(ctx, cfg.LibraryPath)
	if err != nil {
		return nil, err
	}
	for _, skip := range skipped {
		s.warnings.AddUnreadableFileWarning(skip.Path, skip.Err.Error())
	}
	s.logger.Info("Scanned %d files: %d artists, %d albums", len(lib.Tracks()), len(lib.Artists()), len(lib.Albums()))

	stats := &shared.RunStats{}
	handlers := provider.NewHandlers(cfg, provider.Deps{
		Lookup:         s.lookup,
		Transliterator: s.transliterator,
		Names:          s.names,
		Logger:         s.logger,
		Warnings:       s.warnings,
		Now:            s.now,
	})
	popts := provider.Options{Force: opts.Force, Automated: opts.Automated}

	for _, handler := range handlers {
		if !kindEnabled(cfg, handler.Kind()) {
			continue
		}
		if err := s.runKind(ctx, cfg, handler, lib.Entities(handler.Kind()), popts, stats); err != nil {
			return stats, err
		}
		stats.Synced += syncChildren(lib, handler.Kind())
	}

	dirty := len(lib.Dirty())
	if opts.DryRun {
		s.logger.Info("Dry run: %d files would be written", dirty)
		return stats, nil
	}

	written, err := lib.Save(ctx)
	stats.FilesWritten = written
	if err != nil {
		return stats, err
	}

	if written > 0 && s.rescanner != nil {
		if err := s.rescanner.Rescan(ctx); err != nil {
			s.logger.Warning("Failed to trigger media server scan: %v", err)
		} else {
			s.logger.Info("Triggered media server scan")
		}
	}
	return stats, nil
}

// runKind evaluates every entity of one kind with bounded parallelism.
// Only cancellation stops the pass; other failures are counted per entity.
func (s *Service) runKind(ctx context.Context, cfg *config.Config, handler provider.Handler, entities []library.Entity, opts provider.Options, stats *shared.RunStats) error {
	if len(entities) == 0 {
		return nil
	}

	var bar *pb.ProgressBar
	if s.progress {
		bar = pb.New(len(entities))
		bar.SetTemplateString(`{{ string . "prefix" }} {{ bar . }} {{ counters . }} | ETA {{ rtime . "%s" }}`)
		bar.Set("prefix", fmt.Sprintf("%-7s", handler.Kind()))
		bar.Start()
		defer bar.Finish()
	}

	var wg sync.WaitGroup
	var mu sync.Mutex
	sem := semaphore.NewWeighted(int64(cfg.Parallelism))
	errorChan := make(chan entityError, len(entities))

	for _, entity := range entities {
		if err := sem.Acquire(ctx, 1); err != nil {
			break
		}
		wg.Add(1)

		go func(entity library.Entity) {
			defer wg.Done()
			defer sem.Release(1)
			if bar != nil {
				defer bar.Increment()
			}

			result, err := handler.Update(ctx, entity, opts)

			mu.Lock()
			defer mu.Unlock()
			stats.Evaluated++
			if err != nil {
				errorChan <- entityError{entity.Label(), err}
				return
			}
			switch result {
			case provider.MetadataEdit:
				stats.Updated++
			case provider.Restored:
				stats.Restored++
			default:
				stats.Unchanged++
			}
			if result != provider.None {
				s.logger.Debug("%s %q: %s", handler.Kind(), entity.Label(), result)
			}
		}(entity)
	}

	wg.Wait()
	close(errorChan)

	for e := range errorChan {
		if errors.Is(e.err, context.Canceled) || errors.Is(e.err, context.DeadlineExceeded) {
			continue
		}
		stats.FailedCount++
		stats.FailedItems = append(stats.FailedItems, (&shared.EntityError{Label: e.label, Err: e.err}).Error())
	}
	return ctx.Err()
}

func kindEnabled(cfg *config.Config, kind library.Kind) bool {
	switch kind {
	case library.KindArtist:
		return cfg.DoArtist
	case library.KindAlbum:
		return cfg.DoAlbum
	default:
		return cfg.DoTrack
	}
}

// syncChildren makes the member files of every album or artist carry the
// name chosen for it.
func syncChildren(lib *library.Library, kind library.Kind) int {
	changed := 0
	switch kind {
	case library.KindArtist:
		for _, artist := range lib.Artists() {
			changed += artist.SyncTracks()
		}
	case library.KindAlbum:
		for _, album := range lib.Albums() {
			changed += album.SyncTracks()
		}
	}
	return changed
}
