package resolve

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/handiism/workparts/internal/model"
	"github.com/handiism/workparts/internal/musicbrainz"
)

// WorkFetcher fetches a single work by MBID. *musicbrainz.Client satisfies
// this; tests substitute stubs.
type WorkFetcher interface {
	LookupWork(ctx context.Context, id string) (*model.Work, []string, error)
}

// Resolver performs the recursive leaf-to-root ascent for one work id.
//
// A Resolver is safe for concurrent use: all mutable state lives in the
// shared Cache, and each Resolve call keeps its own visited set and chain.
type Resolver struct {
	fetcher WorkFetcher
	cache   *Cache
	log     *zap.Logger
}

// NewResolver creates a resolver on top of a fetcher and a shared run
// cache. A nil logger is replaced with a no-op logger.
func NewResolver(fetcher WorkFetcher, cache *Cache, logger *zap.Logger) *Resolver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Resolver{fetcher: fetcher, cache: cache, log: logger}
}

// Resolve ascends the work hierarchy from leafID until a root is reached,
// a cycle is detected, or a lookup fails unrecoverably.
//
// All lookup failures are recovered into warnings and a (possibly empty)
// partial chain; the only error Resolve returns is the context's own, so
// callers can unwind on cancellation without recording bogus warnings.
func (r *Resolver) Resolve(ctx context.Context, leafID string) (model.Chain, []string, error) {
	var (
		chain   model.Chain
		warns   []string
		visited = make(map[string]struct{})
	)

	current := leafID
	for current != "" {
		if err := ctx.Err(); err != nil {
			chain.Partial = true
			return chain, warns, err
		}

		if _, seen := visited[current]; seen {
			chain.Partial = true
			warns = append(warns, fmt.Sprintf(
				"WARNING: circular parts relationship at work %s; hierarchy truncated", current))
			r.log.Warn("cycle detected in work hierarchy",
				zap.String("work", current),
				zap.Int("chain_length", chain.Len()))
			break
		}

		work, lookupWarns, err := r.cache.GetOrFetch(ctx, current, r.fetcher.LookupWork)
		if err != nil {
			if ctx.Err() != nil {
				chain.Partial = true
				return chain, warns, ctx.Err()
			}
			chain.Partial = true
			warns = append(warns, lookupWarning(current, chain.Len(), err))
			break
		}

		visited[current] = struct{}{}
		chain.Works = append(chain.Works, work)
		warns = append(warns, lookupWarns...)
		current = work.ParentID
	}

	return chain, warns, nil
}

// lookupWarning renders a terminal lookup failure as the warning text that
// ends up in the track's error tag. The classification leads the string so
// downstream consumers can match on it.
func lookupWarning(id string, level int, err error) string {
	kind, ok := musicbrainz.KindOf(err)
	if !ok {
		return fmt.Sprintf("ERROR: lookup of work %s failed: %v", id, err)
	}
	switch kind {
	case musicbrainz.KindNotFound, musicbrainz.KindMalformed:
		if level == 0 {
			return fmt.Sprintf("%s: no work with id %s", kind, id)
		}
		return fmt.Sprintf("%s: parent work %s missing; hierarchy truncated at level %d", kind, id, level-1)
	case musicbrainz.KindServiceUnavailable:
		return fmt.Sprintf(
			"%s: MISSING METADATA for work %s due to repeated lookup failures. Re-try or fix manually.", kind, id)
	default:
		return fmt.Sprintf("%s: lookup of work %s failed", kind, id)
	}
}
