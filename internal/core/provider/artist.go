package provider

import (
	"context"

	"alias-resolver/internal/alias"
	"alias-resolver/internal/library"
)

type artistHandler struct {
	base
}

func (h *artistHandler) Kind() library.Kind { return library.KindArtist }

// Update has no restore step: artist names are shared with other entities
// and are only ever replaced by a resolved name.
func (h *artistHandler) Update(ctx context.Context, entity library.Entity, opts Options) (UpdateResult, error) {
	state, ids, ok := h.begin(entity, h.cfg.DoArtist, opts, library.FieldAlbumArtistID)
	if !ok {
		return None, nil
	}

	h.deps.Logger.Debug("Looking for info about artist: %s:%s", entity.Name(), ids[0])

	resolver := h.newResolver(entity)
	if !resolver.NeedsUpdate() && !opts.Force {
		return h.sync(entity, state, resolver), nil
	}

	artist, err := h.deps.Lookup.LookupArtist(ctx, ids[0])
	if err != nil {
		return h.lookupFailed(ctx, entity, err)
	}
	offer(resolver, artist.Disambiguation, "", "")
	for _, a := range artist.Aliases {
		offer(resolver, a.Name, "", alias.LocaleToLanguage(a.Locale))
	}

	if h.deps.Names != nil {
		name, err := h.deps.Names.TopArtistName(ctx, entity.Name())
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return None, ctxErr
			}
			h.deps.Warnings.AddNameSourceWarning(entity.Label(), err.Error())
		} else {
			offer(resolver, name, "", "")
		}
	}

	return h.finish(ctx, entity, state, resolver)
}
