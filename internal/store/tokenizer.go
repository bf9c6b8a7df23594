package store

import (
	"regexp"
	"sort"
	"strings"
)

// wordRegex strips everything that is not a word character or hyphen.
// Hyphens survive so compound terms like "error-handling" stay whole.
var wordRegex = regexp.MustCompile(`[^\w-]+`)

// Tokenizer turns documents and query strings into normalized terms.
// Implementations must never fail: empty input simply yields no terms.
type Tokenizer interface {
	// ExtractTerms produces the deduplicated term set for a document.
	ExtractTerms(doc *Document) []string

	// TokenizeQuery normalizes a raw query string into query terms.
	TokenizeQuery(query string) []string
}

// TermExtractor is the default Tokenizer.
// Content and category text are lowercased, stripped to word characters and
// hyphens, split on whitespace, and filtered to length > 2. Tags are added
// verbatim (lowercased, no length filter), and category, priority, and
// doc_type are added as single synthetic terms so they are filter- and
// term-searchable.
type TermExtractor struct{}

// NewTermExtractor returns the default tokenizer.
func NewTermExtractor() *TermExtractor {
	return &TermExtractor{}
}

// ExtractTerms implements Tokenizer.
func (t *TermExtractor) ExtractTerms(doc *Document) []string {
	if doc == nil {
		return []string{}
	}

	terms := make(map[string]struct{})

	for _, tok := range splitWords(doc.Content) {
		terms[tok] = struct{}{}
	}
	for _, tok := range splitWords(doc.Metadata.Category) {
		terms[tok] = struct{}{}
	}

	for _, tag := range doc.Tags {
		tag = strings.ToLower(strings.TrimSpace(tag))
		if tag != "" {
			terms[tag] = struct{}{}
		}
	}

	if c := strings.ToLower(strings.TrimSpace(doc.Metadata.Category)); c != "" {
		terms[c] = struct{}{}
	}
	if p := string(doc.Metadata.Priority); p != "" {
		terms[strings.ToLower(p)] = struct{}{}
	}
	if dt := string(doc.DocType); dt != "" {
		terms[strings.ToLower(dt)] = struct{}{}
	}

	out := make([]string, 0, len(terms))
	for term := range terms {
		out = append(out, term)
	}
	// Deterministic order keeps posting maintenance and tests reproducible.
	sort.Strings(out)
	return out
}

// TokenizeQuery implements Tokenizer.
// Query terms get the same content normalization: lowercase, strip
// non-word/non-hyphen, drop tokens of length <= 2. A whitespace-only or
// too-short query yields no terms, which is a legitimate empty result.
func (t *TermExtractor) TokenizeQuery(query string) []string {
	tokens := splitWords(query)
	if tokens == nil {
		return []string{}
	}
	return tokens
}

// splitWords lowercases, strips non-word/non-hyphen runs to spaces, splits on
// whitespace, and drops tokens of length <= 2.
func splitWords(text string) []string {
	if text == "" {
		return nil
	}
	cleaned := wordRegex.ReplaceAllString(strings.ToLower(text), " ")

	var tokens []string
	for _, tok := range strings.Fields(cleaned) {
		if len(tok) > 2 {
			tokens = append(tokens, tok)
		}
	}
	return tokens
}
