package search

import (
	"encoding/json"
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"
)

// queryCache memoizes full responses per query. Keys embed the index
// generation, so entries written before a mutation can never be served
// afterwards; they simply age out of the LRU.
type queryCache struct {
	entries *lru.Cache[string, *Response]
}

func newQueryCache(size int) *queryCache {
	if size <= 0 {
		return &queryCache{}
	}
	// NewLRU only fails on a non-positive size, which is excluded above.
	entries, err := lru.New[string, *Response](size)
	if err != nil {
		return &queryCache{}
	}
	return &queryCache{entries: entries}
}

func (c *queryCache) get(generation uint64, req Request) (*Response, bool) {
	if c.entries == nil {
		return nil, false
	}
	return c.entries.Get(cacheKey(generation, req))
}

func (c *queryCache) put(generation uint64, req Request, resp *Response) {
	if c.entries == nil {
		return
	}
	c.entries.Add(cacheKey(generation, req), resp)
}

func cacheKey(generation uint64, req Request) string {
	raw, err := json.Marshal(req)
	if err != nil {
		// Request is a plain value type; marshaling cannot realistically
		// fail, but a collision-free fallback keeps the cache honest.
		return fmt.Sprintf("g%d:%+v", generation, req)
	}
	return fmt.Sprintf("g%d:%s", generation, raw)
}
