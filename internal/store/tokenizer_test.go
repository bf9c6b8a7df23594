package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenizeQuery_SplitsAndLowercases(t *testing.T) {
	tok := NewTermExtractor()

	terms := tok.TokenizeQuery("Error Handling Patterns")

	assert.Equal(t, []string{"error", "handling", "patterns"}, terms)
}

func TestTokenizeQuery_PreservesHyphens(t *testing.T) {
	tok := NewTermExtractor()

	terms := tok.TokenizeQuery("effect-ts error-handling")

	assert.Equal(t, []string{"effect-ts", "error-handling"}, terms)
}

func TestTokenizeQuery_DropsShortTokens(t *testing.T) {
	tok := NewTermExtractor()

	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"two-char tokens dropped", "go is ok but golang stays", []string{"but", "golang", "stays"}},
		{"punctuation becomes spaces", "foo.bar(baz)", []string{"foo", "bar", "baz"}},
		{"whitespace only", "   \t\n ", []string{}},
		{"empty", "", []string{}},
		{"all short", "a bb c", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tok.TokenizeQuery(tt.input))
		})
	}
}

func TestExtractTerms_ContentIsTokenized(t *testing.T) {
	tok := NewTermExtractor()
	doc := &Document{
		ID:      "1",
		DocType: DocTypeMemory,
		Content: "Chose Effect-TS for error handling",
		Metadata: Metadata{
			ProjectPath: "/p",
			Priority:    PriorityMedium,
		},
	}

	terms := tok.ExtractTerms(doc)

	assert.Contains(t, terms, "chose")
	assert.Contains(t, terms, "effect-ts")
	assert.Contains(t, terms, "error")
	assert.Contains(t, terms, "handling")
	// "for" passes the length filter, two-char words would not
	assert.Contains(t, terms, "for")
}

func TestExtractTerms_TagsVerbatimNoLengthFilter(t *testing.T) {
	tok := NewTermExtractor()
	doc := &Document{
		ID:       "1",
		DocType:  DocTypeMemory,
		Content:  "irrelevant",
		Tags:     []string{"GO", "effect-ts"},
		Metadata: Metadata{ProjectPath: "/p", Priority: PriorityMedium},
	}

	terms := tok.ExtractTerms(doc)

	// Tags bypass the length filter but are lowercased
	assert.Contains(t, terms, "go")
	assert.Contains(t, terms, "effect-ts")
}

func TestExtractTerms_SyntheticTerms(t *testing.T) {
	tok := NewTermExtractor()
	doc := &Document{
		ID:        "1",
		DocType:   DocTypeDiary,
		Timestamp: 1,
		Content:   "",
		Metadata: Metadata{
			ProjectPath: "/p",
			Priority:    PriorityHigh,
			Category:    "Architecture Decisions",
		},
	}

	terms := tok.ExtractTerms(doc)

	// doc_type, priority, and whole category become synthetic terms
	assert.Contains(t, terms, "diary")
	assert.Contains(t, terms, "high")
	assert.Contains(t, terms, "architecture decisions")
	// category words are also tokenized individually
	assert.Contains(t, terms, "architecture")
	assert.Contains(t, terms, "decisions")
}

func TestExtractTerms_Deduplicates(t *testing.T) {
	tok := NewTermExtractor()
	doc := &Document{
		ID:       "1",
		DocType:  DocTypeMemory,
		Content:  "cache cache cache",
		Tags:     []string{"cache"},
		Metadata: Metadata{ProjectPath: "/p", Priority: PriorityMedium},
	}

	terms := tok.ExtractTerms(doc)

	count := 0
	for _, term := range terms {
		if term == "cache" {
			count++
		}
	}
	assert.Equal(t, 1, count)
}

func TestExtractTerms_EmptyContentStillYieldsSynthetics(t *testing.T) {
	tok := NewTermExtractor()
	doc := &Document{
		ID:       "1",
		DocType:  DocTypeMemory,
		Content:  "",
		Metadata: Metadata{ProjectPath: "/p", Priority: PriorityMedium},
	}

	terms := tok.ExtractTerms(doc)

	require.NotEmpty(t, terms)
	assert.Contains(t, terms, "memory")
	assert.Contains(t, terms, "medium")
}

func TestExtractTerms_NilDocument(t *testing.T) {
	tok := NewTermExtractor()
	assert.Empty(t, tok.ExtractTerms(nil))
}
