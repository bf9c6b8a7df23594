// Package search implements keyword search over a project index.
// Scoring is a fixed-weight model: exact term hits dominate, compound and
// prefix relations contribute a smaller bonus so hyphenated technical terms
// stay discoverable without a stemmer.
package search

import (
	"github.com/vhybzOS/vibe-search/internal/store"
)

// Mode selects the retrieval strategy for a query.
type Mode string

const (
	ModeKeyword Mode = "keyword"
	ModeVector  Mode = "vector"
	ModeHybrid  Mode = "hybrid"
)

// DateRange bounds results by document timestamp (epoch milliseconds).
// Both bounds are inclusive; a nil bound is open.
type DateRange struct {
	Start *int64 `json:"start,omitempty"`
	End   *int64 `json:"end,omitempty"`
}

// Filters restrict the candidate set after scoring. All filters are
// AND-combined and each is optional; an unset filter passes everything.
type Filters struct {
	// DocType requires exact equality with the document's doc_type.
	DocType store.DocType `json:"doc_type,omitempty"`

	// Tags requires every listed tag to match some document tag by
	// case-insensitive substring.
	Tags []string `json:"tags,omitempty"`

	// Priority requires exact equality with metadata.priority.
	Priority store.Priority `json:"priority,omitempty"`

	// Category matches metadata.category by case-insensitive substring.
	Category string `json:"category,omitempty"`

	// DateRange bounds the document timestamp inclusively.
	DateRange *DateRange `json:"date_range,omitempty"`
}

// Request is a single search query.
type Request struct {
	// Term is the raw query text. It is tokenized with the same
	// normalization as document content.
	Term string `json:"term"`

	// Filters restrict results after scoring.
	Filters Filters `json:"filters,omitempty"`

	// Mode is accepted for forward-compatibility. Only the keyword path
	// is implemented; other modes degrade to keyword rather than error.
	Mode Mode `json:"mode,omitempty"`

	// Limit caps the page size. Zero means the engine default.
	Limit int `json:"limit,omitempty"`

	// Offset skips that many ranked results before the page starts.
	Offset int `json:"offset,omitempty"`
}

// Range is a character span in document content where a query term matched.
type Range struct {
	// Start is the starting byte offset (0-indexed).
	Start int `json:"start"`

	// End is the ending byte offset (exclusive).
	End int `json:"end"`
}

// Result is one ranked document.
type Result struct {
	Document *store.Document `json:"document"`

	// Score is the normalized relevance score in [0, 1].
	Score float64 `json:"score"`

	// Highlights are content spans where matched terms occur.
	Highlights []Range `json:"highlights"`
}

// Response is a ranked page of results plus pagination bookkeeping.
type Response struct {
	Results []Result `json:"results"`

	// Total is the match count before pagination.
	Total int `json:"total"`

	// Query echoes the request term.
	Query string `json:"query"`

	// TookMS is the query latency in milliseconds.
	TookMS float64 `json:"took_ms"`

	// MaxScore is the highest score across all matches, 0 when empty.
	MaxScore float64 `json:"max_score"`
}

// EngineConfig configures a search engine.
type EngineConfig struct {
	// DefaultLimit is the page size when the request leaves Limit unset.
	DefaultLimit int

	// MaxLimit is the largest page size a request may ask for.
	MaxLimit int

	// CacheSize is the number of cached query responses. Zero disables
	// the cache.
	CacheSize int
}

// DefaultEngineConfig returns the stock engine configuration.
func DefaultEngineConfig() EngineConfig {
	return EngineConfig{
		DefaultLimit: 10,
		MaxLimit:     100,
		CacheSize:    256,
	}
}
