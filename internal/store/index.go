package store

import (
	"log/slog"
	"sort"
	"sync"
)

// Index aggregates the document store and inverted index for one project.
// It is the in-memory source of truth; postings are always derivable from
// the documents via Rebuild.
//
// Callers are expected to serialize mutating calls per project. The internal
// lock only guarantees that interleaved reads see the last fully-applied
// write.
type Index struct {
	mu          sync.RWMutex
	projectPath string
	docs        map[string]*Document
	postings    map[string]map[string]struct{}
	tokenizer   Tokenizer
	initialized bool

	// generation increments on every mutation; read by the query cache
	// to drop stale responses.
	generation uint64

	// snapshotPath, when set, makes every mutation persist a snapshot
	// before returning. Empty means in-memory only (tests).
	snapshotPath string
}

// IndexStats provides statistics about an index.
type IndexStats struct {
	DocumentCount  int
	TermCount      int
	AvgTermsPerDoc float64
}

// NewIndex creates an empty index for a project.
// snapshotPath may be empty for an in-memory index.
func NewIndex(projectPath, snapshotPath string, tokenizer Tokenizer) *Index {
	if tokenizer == nil {
		tokenizer = NewTermExtractor()
	}
	return &Index{
		projectPath:  projectPath,
		docs:         make(map[string]*Document),
		postings:     make(map[string]map[string]struct{}),
		tokenizer:    tokenizer,
		initialized:  true,
		snapshotPath: snapshotPath,
	}
}

// ProjectPath returns the project this index is scoped to.
func (ix *Index) ProjectPath() string {
	return ix.projectPath
}

// Initialized reports whether the index has been set up.
func (ix *Index) Initialized() bool {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	return ix.initialized
}

// Generation returns the mutation counter.
func (ix *Index) Generation() uint64 {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	return ix.generation
}

// Insert adds a document, overwriting any prior document with the same id.
// The prior version's postings are removed first so no stale postings
// survive an update. The snapshot is persisted before returning; a save
// failure is returned but the in-memory mutation stands.
func (ix *Index) Insert(doc *Document) error {
	if err := doc.Validate(); err != nil {
		return err
	}
	doc = doc.Clone()
	doc.Normalize()

	ix.mu.Lock()
	ix.insertLocked(doc)
	ix.generation++
	ix.mu.Unlock()

	return ix.persist()
}

// InsertMany adds a batch of documents in one mutation and one snapshot
// write. Validation runs for the whole batch first; an invalid document
// rejects the entire batch so no partial insert is visible.
func (ix *Index) InsertMany(docs []*Document) error {
	for _, doc := range docs {
		if err := doc.Validate(); err != nil {
			return err
		}
	}

	ix.mu.Lock()
	for _, doc := range docs {
		doc = doc.Clone()
		doc.Normalize()
		ix.insertLocked(doc)
	}
	ix.generation++
	ix.mu.Unlock()

	return ix.persist()
}

// insertLocked performs the posting-list bookkeeping. Caller holds ix.mu.
func (ix *Index) insertLocked(doc *Document) {
	if old, ok := ix.docs[doc.ID]; ok {
		ix.removePostingsLocked(old)
	}

	ix.docs[doc.ID] = doc
	for _, term := range ix.tokenizer.ExtractTerms(doc) {
		ids, ok := ix.postings[term]
		if !ok {
			ids = make(map[string]struct{})
			ix.postings[term] = ids
		}
		ids[doc.ID] = struct{}{}
	}
}

// Delete removes a document and all its postings.
// Returns false (and persists nothing) when the id is unknown; deleting an
// unknown id is a no-op, not an error.
func (ix *Index) Delete(id string) (bool, error) {
	ix.mu.Lock()
	doc, ok := ix.docs[id]
	if !ok {
		ix.mu.Unlock()
		return false, nil
	}
	ix.removePostingsLocked(doc)
	delete(ix.docs, id)
	ix.generation++
	ix.mu.Unlock()

	return true, ix.persist()
}

// removePostingsLocked removes a document from every posting list it
// appears in, computed by re-tokenizing the stored document. Posting sets
// that become empty are dropped entirely. Caller holds ix.mu.
func (ix *Index) removePostingsLocked(doc *Document) {
	for _, term := range ix.tokenizer.ExtractTerms(doc) {
		ids, ok := ix.postings[term]
		if !ok {
			continue
		}
		delete(ids, doc.ID)
		if len(ids) == 0 {
			delete(ix.postings, term)
		}
	}
}

// Rebuild clears the inverted index only and re-tokenizes every stored
// document. Used for recovery after a corrupt or partial snapshot load.
func (ix *Index) Rebuild() error {
	ix.mu.Lock()
	ix.rebuildLocked()
	ix.generation++
	ix.mu.Unlock()

	return ix.persist()
}

// rebuildLocked recomputes postings from the document store. Caller holds ix.mu.
func (ix *Index) rebuildLocked() {
	ix.postings = make(map[string]map[string]struct{})
	for id, doc := range ix.docs {
		for _, term := range ix.tokenizer.ExtractTerms(doc) {
			ids, ok := ix.postings[term]
			if !ok {
				ids = make(map[string]struct{})
				ix.postings[term] = ids
			}
			ids[id] = struct{}{}
		}
	}
}

// Clear drops all documents and postings.
func (ix *Index) Clear() error {
	ix.mu.Lock()
	ix.docs = make(map[string]*Document)
	ix.postings = make(map[string]map[string]struct{})
	ix.generation++
	ix.mu.Unlock()

	return ix.persist()
}

// Document returns the stored document for id.
// The returned document must be treated as immutable.
func (ix *Index) Document(id string) (*Document, bool) {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	doc, ok := ix.docs[id]
	return doc, ok
}

// Lookup returns the posting list (document ids) for an exact term.
// Returns nil when the term is not indexed.
func (ix *Index) Lookup(term string) []string {
	ix.mu.RLock()
	defer ix.mu.RUnlock()

	ids, ok := ix.postings[term]
	if !ok {
		return nil
	}
	out := make([]string, 0, len(ids))
	for id := range ids {
		out = append(out, id)
	}
	return out
}

// Terms returns every term currently in the inverted index, sorted.
func (ix *Index) Terms() []string {
	ix.mu.RLock()
	defer ix.mu.RUnlock()

	out := make([]string, 0, len(ix.postings))
	for term := range ix.postings {
		out = append(out, term)
	}
	sort.Strings(out)
	return out
}

// Len returns the number of stored documents.
func (ix *Index) Len() int {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	return len(ix.docs)
}

// All returns every stored document, in unspecified order.
func (ix *Index) All() []*Document {
	ix.mu.RLock()
	defer ix.mu.RUnlock()

	out := make([]*Document, 0, len(ix.docs))
	for _, doc := range ix.docs {
		out = append(out, doc)
	}
	return out
}

// Stats returns document and term statistics.
func (ix *Index) Stats() IndexStats {
	ix.mu.RLock()
	defer ix.mu.RUnlock()

	stats := IndexStats{
		DocumentCount: len(ix.docs),
		TermCount:     len(ix.postings),
	}
	if len(ix.docs) > 0 {
		total := 0
		for _, ids := range ix.postings {
			total += len(ids)
		}
		stats.AvgTermsPerDoc = float64(total) / float64(len(ix.docs))
	}
	return stats
}

// persist writes a snapshot when the index is disk-backed.
// A failed save is surfaced but never rolls back the in-memory state; disk
// is allowed to lag one operation behind.
func (ix *Index) persist() error {
	if ix.snapshotPath == "" {
		return nil
	}
	if err := ix.SaveSnapshot(ix.snapshotPath); err != nil {
		slog.Warn("snapshot_save_failed",
			slog.String("project", ix.projectPath),
			slog.String("path", ix.snapshotPath),
			slog.String("error", err.Error()))
		return err
	}
	return nil
}
