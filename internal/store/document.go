// Package store provides the document model, tokenizer, inverted index, and
// snapshot persistence for the vibe-search engine. An Index is the in-memory
// source of truth for one project; the snapshot file under <project>/.vibe/
// is its best-effort durable form.
package store

import (
	"fmt"

	vibeerrors "github.com/vhybzOS/vibe-search/internal/errors"
)

// DocType discriminates the kind of record a document came from.
// Used for filtering only, never for ranking.
type DocType string

const (
	DocTypeMemory DocType = "memory"
	DocTypeDiary  DocType = "diary"
)

// Priority is the document priority level stored in metadata.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Valid reports whether p is a known priority value.
func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// Metadata is the fixed-shape metadata envelope of a document.
// Only Category and Priority contribute synthetic index terms; the rest is
// for filtering and display.
type Metadata struct {
	ProjectPath string   `json:"project_path"`
	Source      string   `json:"source"`
	Priority    Priority `json:"priority"`
	Category    string   `json:"category"`
}

// Document is the unit of search.
type Document struct {
	// ID is an opaque unique string supplied by the caller.
	ID string `json:"id"`

	// DocType discriminates record kinds (e.g. memory, diary).
	DocType DocType `json:"doc_type"`

	// Timestamp is milliseconds since epoch. Used for tie-breaking and
	// date-range filters.
	Timestamp int64 `json:"timestamp"`

	// Content is the only field tokenized for full-text matching.
	// May be empty; the document is then stored but only filterable.
	Content string `json:"content"`

	// Tags are matched verbatim as index terms. Insertion order is kept
	// for display only.
	Tags []string `json:"tags,omitempty"`

	Metadata Metadata `json:"metadata"`
}

// Normalize applies defaults for fields a caller may omit.
// Old snapshots without a priority load as medium.
func (d *Document) Normalize() {
	if d.Metadata.Priority == "" {
		d.Metadata.Priority = PriorityMedium
	}
}

// Validate checks the document shape before it may touch the store.
// A failing document is rejected whole; no partial insert is ever visible.
func (d *Document) Validate() error {
	if d == nil {
		return vibeerrors.ValidationError("document is nil", nil)
	}
	if d.ID == "" {
		return vibeerrors.ValidationError("document id must not be empty", nil).
			WithDetail("field", "id")
	}
	if d.DocType == "" {
		return vibeerrors.ValidationError("document doc_type must not be empty", nil).
			WithDetail("field", "doc_type").
			WithDetail("id", d.ID)
	}
	if d.Metadata.ProjectPath == "" {
		return vibeerrors.ValidationError("document metadata.project_path must not be empty", nil).
			WithDetail("field", "metadata.project_path").
			WithDetail("id", d.ID)
	}
	if d.Metadata.Priority != "" && !d.Metadata.Priority.Valid() {
		return vibeerrors.ValidationError(
			fmt.Sprintf("unknown priority %q", d.Metadata.Priority), nil).
			WithDetail("field", "metadata.priority").
			WithDetail("id", d.ID)
	}
	return nil
}

// Clone returns a deep copy of the document.
// Stored documents are treated as immutable; callers that want to mutate
// must clone first.
func (d *Document) Clone() *Document {
	if d == nil {
		return nil
	}
	cp := *d
	if d.Tags != nil {
		cp.Tags = make([]string, len(d.Tags))
		copy(cp.Tags, d.Tags)
	}
	return &cp
}
