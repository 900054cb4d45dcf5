package provider

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"alias-resolver/internal/alias"
	"alias-resolver/internal/config"
	"alias-resolver/internal/interfaces"
	"alias-resolver/internal/library"
)

// UpdateResult reports what a handler did to an entity
type UpdateResult int

const (
	None UpdateResult = iota
	MetadataEdit
	Restored
)

func (r UpdateResult) String() string {
	switch r {
	case MetadataEdit:
		return "metadata edit"
	case Restored:
		return "restored"
	default:
		return "none"
	}
}

// Options controls how a single entity is evaluated
type Options struct {
	Force     bool
	Automated bool
}

// Handler evaluates one kind of entity
type Handler interface {
	Kind() library.Kind
	Update(ctx context.Context, entity library.Entity, opts Options) (UpdateResult, error)
}

// Deps are the collaborators shared by every handler. Names may be nil.
type Deps struct {
	Lookup         interfaces.MetadataLookup
	Transliterator alias.Transliterator
	Names          interfaces.NameSource
	Logger         interfaces.LoggerService
	Warnings       interfaces.WarningCollectorService
	Now            func() time.Time
}

// NewHandlers returns the artist, album and track handlers in processing order
func NewHandlers(cfg *config.Config, deps Deps) []Handler {
	handlers := make([]Handler, 0, len(library.Kinds))
	for _, kind := range library.Kinds {
		handlers = append(handlers, NewHandler(kind, cfg, deps))
	}
	return handlers
}

// NewHandler returns the handler for one entity kind
func NewHandler(kind library.Kind, cfg *config.Config, deps Deps) Handler {
	if deps.Now == nil {
		deps.Now = time.Now
	}
	b := base{cfg: cfg, deps: deps}
	switch kind {
	case library.KindArtist:
		return &artistHandler{b}
	case library.KindAlbum:
		return &albumHandler{b}
	default:
		return &trackHandler{b}
	}
}

// HasChanged reports whether a pass would do work on the entity: its state
// is stale for an enabled kind, or its member files are out of sync.
func HasChanged(cfg *config.Config, entity library.Entity) bool {
	switch e := entity.(type) {
	case *library.Artist:
		return cfg.DoArtist && (!e.InSync() || isStale(e))
	case *library.Album:
		return cfg.DoAlbum && (!e.InSync() || isStale(e))
	default:
		return cfg.DoTrack && isStale(entity)
	}
}

func isStale(entity library.Entity) bool {
	return alias.DecodeState(entity.State()).IsStale(entity.Name())
}

type base struct {
	cfg  *config.Config
	deps Deps
}

// begin runs the checks shared by every kind. It returns the decoded state
// and identifiers when the entity should be evaluated.
func (b *base) begin(entity library.Entity, enabled bool, opts Options, fields ...string) (alias.State, []string, bool) {
	if !enabled {
		return alias.State{}, nil, false
	}
	if opts.Automated && !b.cfg.Automatic {
		return alias.State{}, nil, false
	}

	ids := make([]string, len(fields))
	for i, field := range fields {
		id := strings.TrimSpace(entity.ProviderID(field))
		if id == "" {
			b.deps.Logger.Debug("Skipping %s %q: no %s", entity.Kind(), entity.Label(), field)
			return alias.State{}, nil, false
		}
		if _, err := uuid.Parse(id); err != nil {
			b.deps.Logger.Debug("Skipping %s %q: %s is not an MBID", entity.Kind(), entity.Label(), field)
			b.deps.Warnings.AddInvalidIdentifierWarning(entity.Label(), field, id)
			return alias.State{}, nil, false
		}
		ids[i] = id
	}

	state := alias.DecodeState(entity.State())
	if !state.IsStale(entity.Name()) && !opts.Force {
		return state, ids, false
	}
	return state, ids, true
}

// restore writes a previously chosen name back over a name changed outside
// the resolver.
func (b *base) restore(entity library.Entity, state alias.State, opts Options) bool {
	if opts.Force || state.Status == alias.Unknown || !state.HasName || entity.Name() == state.Name {
		return false
	}
	b.deps.Logger.Debug("Restoring %s name from status: %s to %s", entity.Kind(), entity.Name(), state.Name)
	entity.SetName(state.Name)
	return true
}

func (b *base) newResolver(entity library.Entity) *alias.Resolver {
	resolver := alias.NewResolver(entity.Name(), "", "", b.deps.Transliterator)
	resolver.SetRatioThreshold(b.cfg.RatioThreshold())
	return resolver
}

// sync records the resolver's classification of the entity's current name
func (b *base) sync(entity library.Entity, state alias.State, resolver *alias.Resolver) UpdateResult {
	if !state.Apply(entity.Name(), resolver.Classify(), b.deps.Now()) {
		return None
	}
	entity.SetState(state.Encode())
	return MetadataEdit
}

// finish resolves the best candidate, renames the entity when it differs
// and records the outcome.
func (b *base) finish(ctx context.Context, entity library.Entity, state alias.State, resolver *alias.Resolver) (UpdateResult, error) {
	value, err := resolver.Resolve(ctx)
	if err != nil {
		return None, err
	}
	b.deps.Logger.Debug("Found %s name with value of: %s", entity.Kind(), value)

	if strings.TrimSpace(value) == "" || value == entity.Name() {
		return b.sync(entity, state, resolver), nil
	}
	entity.SetName(value)
	b.sync(entity, state, resolver)
	return MetadataEdit, nil
}

// lookupFailed turns a remote failure into a warning. Cancellation is
// returned to the caller.
func (b *base) lookupFailed(ctx context.Context, entity library.Entity, err error) (UpdateResult, error) {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return None, ctxErr
	}
	b.deps.Logger.Debug("MusicBrainz lookup failed for %s %q: %v", entity.Kind(), entity.Label(), err)
	b.deps.Warnings.AddLookupWarning(entity.Kind().String(), entity.Label(), err.Error())
	return None, nil
}

// offer skips blank names, which would otherwise tie with unscored names
func offer(resolver *alias.Resolver, name, script, lang string) {
	if strings.TrimSpace(name) == "" {
		return
	}
	resolver.Offer(name, script, lang)
}
