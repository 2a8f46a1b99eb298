package server

import (
	"github.com/maypok86/otter/v2"

	"github.com/bastiangx/tagserve/pkg/engine"
)

// resultCache memoizes full-walk search results by action and query. The
// index is frozen while the server runs, so entries never go stale. A nil
// *resultCache is a disabled cache.
type resultCache struct {
	c *otter.Cache[string, []engine.Match]
}

func newResultCache(size int) *resultCache {
	if size <= 0 {
		return nil
	}
	return &resultCache{
		c: otter.Must(&otter.Options[string, []engine.Match]{
			MaximumSize:     size,
			InitialCapacity: min(size, 64),
		}),
	}
}

func cacheKey(action, query string) string {
	return action + "\x00" + query
}

func (rc *resultCache) get(action, query string) ([]engine.Match, bool) {
	if rc == nil {
		return nil, false
	}
	return rc.c.GetIfPresent(cacheKey(action, query))
}

func (rc *resultCache) set(action, query string, matches []engine.Match) {
	if rc == nil {
		return
	}
	rc.c.Set(cacheKey(action, query), matches)
}

func (rc *resultCache) len() int {
	if rc == nil {
		return 0
	}
	return rc.c.EstimatedSize()
}

func (rc *resultCache) purge() {
	if rc != nil {
		rc.c.InvalidateAll()
	}
}
