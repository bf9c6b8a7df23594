// Package ingest converts collaborator records into canonical documents.
// Two record shapes exist today: conversational memory snippets and diary
// (decision log) entries. Both flatten into the same Document shape so the
// index never distinguishes their origin beyond doc_type.
package ingest

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/vhybzOS/vibe-search/internal/store"
)

// MemoryRecord is a conversational snippet captured from an agent session.
type MemoryRecord struct {
	ID          string         `json:"id,omitempty"`
	ProjectPath string         `json:"project_path"`
	Content     string         `json:"content"`
	Timestamp   int64          `json:"timestamp,omitempty"`
	Tags        []string       `json:"tags,omitempty"`
	Source      string         `json:"source,omitempty"`
	Priority    store.Priority `json:"priority,omitempty"`
	Category    string         `json:"category,omitempty"`
}

// DiaryEntry is one decision-log entry. Title and Decision carry the
// searchable text; Rationale is optional elaboration.
type DiaryEntry struct {
	ID          string         `json:"id,omitempty"`
	ProjectPath string         `json:"project_path"`
	Title       string         `json:"title"`
	Decision    string         `json:"decision"`
	Rationale   string         `json:"rationale,omitempty"`
	Timestamp   int64          `json:"timestamp,omitempty"`
	Tags        []string       `json:"tags,omitempty"`
	Priority    store.Priority `json:"priority,omitempty"`
	Category    string         `json:"category,omitempty"`
}

// FromMemory converts a memory record into a document.
func FromMemory(rec MemoryRecord) *store.Document {
	return &store.Document{
		ID:        orGeneratedID(rec.ID, "mem"),
		DocType:   store.DocTypeMemory,
		Timestamp: orNow(rec.Timestamp),
		Content:   rec.Content,
		Tags:      rec.Tags,
		Metadata: store.Metadata{
			ProjectPath: rec.ProjectPath,
			Source:      orDefault(rec.Source, "memory"),
			Priority:    rec.Priority,
			Category:    rec.Category,
		},
	}
}

// FromDiary converts a diary entry into a document. The title is folded
// into content so title words become searchable terms.
func FromDiary(entry DiaryEntry) *store.Document {
	return &store.Document{
		ID:        orGeneratedID(entry.ID, "diary"),
		DocType:   store.DocTypeDiary,
		Timestamp: orNow(entry.Timestamp),
		Content:   diaryContent(entry),
		Tags:      entry.Tags,
		Metadata: store.Metadata{
			ProjectPath: entry.ProjectPath,
			Source:      "diary",
			Priority:    entry.Priority,
			Category:    entry.Category,
		},
	}
}

// diaryContent flattens an entry's text fields into one searchable string.
func diaryContent(entry DiaryEntry) string {
	parts := make([]string, 0, 3)
	for _, s := range []string{entry.Title, entry.Decision, entry.Rationale} {
		if strings.TrimSpace(s) != "" {
			parts = append(parts, strings.TrimSpace(s))
		}
	}
	return strings.Join(parts, "\n")
}

func orGeneratedID(id, prefix string) string {
	if id != "" {
		return id
	}
	return fmt.Sprintf("%s-%s", prefix, uuid.NewString())
}

func orNow(ts int64) int64 {
	if ts > 0 {
		return ts
	}
	return time.Now().UnixMilli()
}

func orDefault(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
