package ui

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vhybzOS/vibe-search/internal/search"
	"github.com/vhybzOS/vibe-search/internal/store"
)

func sampleResponse() *search.Response {
	return &search.Response{
		Query:    "alpha",
		Total:    1,
		MaxScore: 1.0,
		TookMS:   0.4,
		Results: []search.Result{{
			Document: &store.Document{
				ID:        "doc-1",
				DocType:   store.DocTypeMemory,
				Timestamp: 1700000000000,
				Content:   "alpha content here",
				Tags:      []string{"go"},
				Metadata: store.Metadata{
					ProjectPath: "/tmp/proj",
					Category:    "notes",
				},
			},
			Score:      1.0,
			Highlights: []search.Range{{Start: 0, End: 5}},
		}},
	}
}

func TestRenderer_Response(t *testing.T) {
	var buf bytes.Buffer
	r := NewRenderer(&buf, NoColorStyles())

	r.Response(sampleResponse())

	out := buf.String()
	assert.Contains(t, out, `1 result(s) for "alpha"`)
	assert.Contains(t, out, "doc-1")
	assert.Contains(t, out, "(1.00)")
	assert.Contains(t, out, "alpha content here")
	assert.Contains(t, out, "memory | notes | go")
}

func TestRenderer_EmptyResponse(t *testing.T) {
	var buf bytes.Buffer
	r := NewRenderer(&buf, NoColorStyles())

	r.Response(&search.Response{Query: "nothing", Results: []search.Result{}})

	assert.Contains(t, buf.String(), `no results for "nothing"`)
}

func TestRenderer_Stats(t *testing.T) {
	var buf bytes.Buffer
	r := NewRenderer(&buf, NoColorStyles())

	r.Stats("/tmp/proj", store.IndexStats{
		DocumentCount:  3,
		TermCount:      12,
		AvgTermsPerDoc: 4.0,
	})

	out := buf.String()
	assert.Contains(t, out, "/tmp/proj")
	assert.Contains(t, out, "documents: 3")
	assert.Contains(t, out, "terms:     12")
}

func TestSnippet_TruncatesLongContent(t *testing.T) {
	long := make([]byte, 500)
	for i := range long {
		long[i] = 'x'
	}

	got := snippet(string(long))

	assert.Len(t, got, 203)
	assert.True(t, bytes.HasSuffix([]byte(got), []byte("...")))
}

func TestHighlighted_SkipsOutOfRangeSpans(t *testing.T) {
	var buf bytes.Buffer
	r := NewRenderer(&buf, NoColorStyles())

	got := r.highlighted("short", []search.Range{{Start: 2, End: 99}})

	assert.Equal(t, "short", got)
}
