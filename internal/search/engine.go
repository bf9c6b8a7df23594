package search

import (
	"context"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/vhybzOS/vibe-search/internal/store"
)

// Engine scores keyword queries against one project index.
// Engines are cheap; hold one per index.
type Engine struct {
	index     *store.Index
	tokenizer store.Tokenizer
	cfg       EngineConfig
	cache     *queryCache
}

// NewEngine creates a search engine over index.
func NewEngine(index *store.Index, cfg EngineConfig) *Engine {
	if cfg.DefaultLimit <= 0 {
		cfg.DefaultLimit = DefaultEngineConfig().DefaultLimit
	}
	if cfg.MaxLimit <= 0 {
		cfg.MaxLimit = DefaultEngineConfig().MaxLimit
	}
	return &Engine{
		index:     index,
		tokenizer: store.NewTermExtractor(),
		cfg:       cfg,
		cache:     newQueryCache(cfg.CacheSize),
	}
}

// Search executes a query and returns a ranked page of results.
// Tokenization and scoring never fail; an unmatchable query yields an empty
// response, not an error.
func (e *Engine) Search(ctx context.Context, req Request) (*Response, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	start := time.Now()

	req = e.normalize(req)

	if cached, ok := e.cache.get(e.index.Generation(), req); ok {
		slog.Debug("query_cache_hit", "query", req.Term)
		return cached, nil
	}

	queryTerms := e.tokenizer.TokenizeQuery(req.Term)

	resp := &Response{
		Results: []Result{},
		Query:   req.Term,
	}
	if len(queryTerms) == 0 {
		resp.TookMS = msSince(start)
		return resp, nil
	}

	scores := e.score(queryTerms)

	ranked := make([]Result, 0, len(scores))
	for id, raw := range scores {
		doc, ok := e.index.Document(id)
		if !ok {
			continue
		}
		if !req.Filters.matches(doc) {
			continue
		}
		score := raw / float64(len(queryTerms))
		if score > 1.0 {
			score = 1.0
		}
		ranked = append(ranked, Result{
			Document:   doc,
			Score:      score,
			Highlights: highlightTerms(doc.Content, queryTerms),
		})
	}

	sortResults(ranked)

	resp.Total = len(ranked)
	if len(ranked) > 0 {
		resp.MaxScore = ranked[0].Score
	}
	resp.Results = paginate(ranked, req.Offset, req.Limit)
	resp.TookMS = msSince(start)

	e.cache.put(e.index.Generation(), req, resp)

	slog.Debug("search_completed",
		"query", req.Term,
		"terms", len(queryTerms),
		"total", resp.Total,
		"returned", len(resp.Results),
		"took_ms", resp.TookMS)

	return resp, nil
}

// normalize applies defaults, clamps the page size, and degrades unsupported
// modes to the keyword path.
func (e *Engine) normalize(req Request) Request {
	if req.Limit <= 0 {
		req.Limit = e.cfg.DefaultLimit
	}
	if req.Limit > e.cfg.MaxLimit {
		req.Limit = e.cfg.MaxLimit
	}
	if req.Offset < 0 {
		req.Offset = 0
	}
	if req.Mode != "" && req.Mode != ModeKeyword {
		slog.Debug("mode_degraded_to_keyword", "requested", string(req.Mode))
		req.Mode = ModeKeyword
	}
	return req
}

// score accumulates raw per-document scores across all query terms.
// Exact posting hits earn the full weight; compound and prefix relations
// against other index terms earn the partial bonus.
func (e *Engine) score(queryTerms []string) map[string]float64 {
	scores := make(map[string]float64)
	indexTerms := e.index.Terms()

	for _, qt := range queryTerms {
		for _, id := range e.index.Lookup(qt) {
			scores[id] += exactWeight
		}
		for _, it := range indexTerms {
			if it == qt {
				continue
			}
			if !isPartialMatch(qt, it) {
				continue
			}
			for _, id := range e.index.Lookup(it) {
				scores[id] += partialWeight
			}
		}
	}
	return scores
}

// sortResults orders by score descending, then timestamp descending, then id
// ascending so pagination is deterministic.
func sortResults(results []Result) {
	sort.Slice(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		if results[i].Document.Timestamp != results[j].Document.Timestamp {
			return results[i].Document.Timestamp > results[j].Document.Timestamp
		}
		return results[i].Document.ID < results[j].Document.ID
	})
}

func paginate(results []Result, offset, limit int) []Result {
	if offset >= len(results) {
		return []Result{}
	}
	end := offset + limit
	if end > len(results) {
		end = len(results)
	}
	return results[offset:end]
}

// highlightTerms finds content spans where query terms occur, for display.
// Each term is capped to keep pathological documents bounded.
func highlightTerms(content string, queryTerms []string) []Range {
	if len(content) == 0 || len(queryTerms) == 0 {
		return []Range{}
	}

	const maxMatchesPerTerm = 10
	highlights := make([]Range, 0, len(queryTerms)*3)
	lower := strings.ToLower(content)

	for _, term := range queryTerms {
		if term == "" {
			continue
		}
		pos := 0
		for n := 0; n < maxMatchesPerTerm; n++ {
			idx := strings.Index(lower[pos:], term)
			if idx == -1 {
				break
			}
			abs := pos + idx
			highlights = append(highlights, Range{Start: abs, End: abs + len(term)})
			pos = abs + len(term)
		}
	}

	sort.Slice(highlights, func(i, j int) bool {
		return highlights[i].Start < highlights[j].Start
	})
	return highlights
}

// Stats exposes the underlying index statistics.
func (e *Engine) Stats() store.IndexStats {
	return e.index.Stats()
}

func msSince(start time.Time) float64 {
	return float64(time.Since(start).Microseconds()) / 1000.0
}
