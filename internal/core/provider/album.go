package provider

import (
	"context"

	"alias-resolver/internal/library"
)

type albumHandler struct {
	base
}

func (h *albumHandler) Kind() library.Kind { return library.KindAlbum }

func (h *albumHandler) Update(ctx context.Context, entity library.Entity, opts Options) (UpdateResult, error) {
	state, ids, ok := h.begin(entity, h.cfg.DoAlbum, opts, library.FieldReleaseID, library.FieldReleaseGroupID)
	if !ok {
		return None, nil
	}
	releaseID, releaseGroupID := ids[0], ids[1]

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
	// Only trust the release's tags when it is the release the name came from
	if release.Title == entity.Name() {
		offer(resolver, entity.Name(), release.TextRepresentation.Script, release.TextRepresentation.Language)
	}
	if !resolver.NeedsUpdate() && !opts.Force {
		return h.sync(entity, state, resolver), nil
	}

	group, err := h.deps.Lookup.LookupReleaseGroup(ctx, releaseGroupID)
	if err != nil {
		return h.lookupFailed(ctx, entity, err)
	}
	for _, a := range group.Aliases {
		offer(resolver, a.Name, "", release.TextRepresentation.Language)
	}
	for _, r := range group.Releases {
		offer(resolver, r.Title, r.TextRepresentation.Script, r.TextRepresentation.Language)
		for _, a := range r.Aliases {
			offer(resolver, a.Name, "", r.TextRepresentation.Language)
		}
	}

	return h.finish(ctx, entity, state, resolver)
}
