package provider

import (
	"context"

	"alias-resolver/internal/library"
)

type trackHandler struct {
	base
}

func (h *trackHandler) Kind() library.Kind { return library.KindTrack }

func (h *trackHandler) Update(ctx context.Context, entity library.Entity, opts Options) (UpdateResult, error) {
	state, ids, ok := h.begin(entity, h.cfg.DoTrack, opts, library.FieldRecordingID, library.FieldReleaseID)
	if !ok {
		return None, nil
	}
	recordingID, releaseID := ids[0], ids[1]

	if h.restore(entity, state, opts) {
		return Restored, nil
	}

	resolver := h.newResolver(entity)
	if !resolver.NeedsUpdate() && !opts.Force {
		return h.sync(entity, state, resolver), nil
	}

	release, err := h.deps.Lookup.LookupRelease(ctx, releaseID)
	if err != nil {
		return h.lookupFailed(ctx, entity, err)
	}
	if !resolver.NeedsUpdate() && !opts.Force {
		return h.sync(entity, state, resolver), nil
	}

	recording, err := h.deps.Lookup.LookupRecording(ctx, recordingID)
	if err != nil {
		return h.lookupFailed(ctx, entity, err)
	}
	for _, a := range recording.Aliases {
		offer(resolver, a.Name, release.TextRepresentation.Script, release.TextRepresentation.Language)
	}
	for _, r := range recording.Releases {
		for _, media := range r.Media {
			for _, t := range media.AllTracks() {
				offer(resolver, t.Title, r.TextRepresentation.Script, r.TextRepresentation.Language)
			}
		}
	}

	return h.finish(ctx, entity, state, resolver)
}
