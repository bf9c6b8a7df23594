package store

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/renameio"

	vibeerrors "github.com/vhybzOS/vibe-search/internal/errors"
)

// Snapshot is the on-disk form of an index. Only documents are serialized;
// the inverted index is always rebuilt from them on load.
type Snapshot struct {
	Documents   map[string]*Document `json:"documents"`
	Timestamp   int64                `json:"timestamp"`
	ProjectPath string               `json:"projectPath"`
}

// lockPath returns the lock file guarding a snapshot.
func lockPath(snapshotPath string) string {
	return snapshotPath + ".lock"
}

// SaveSnapshot serializes the document store to the snapshot file.
// The write is atomic (temp file + rename) and guarded by a cross-process
// file lock so concurrent processes never interleave partial writes.
func (ix *Index) SaveSnapshot(path string) error {
	ix.mu.RLock()
	snap := Snapshot{
		Documents:   make(map[string]*Document, len(ix.docs)),
		Timestamp:   time.Now().UnixMilli(),
		ProjectPath: ix.projectPath,
	}
	for id, doc := range ix.docs {
		snap.Documents[id] = doc
	}
	ix.mu.RUnlock()

	data, err := json.MarshalIndent(&snap, "", "  ")
	if err != nil {
		return vibeerrors.Wrap(vibeerrors.ErrCodeSnapshotWrite, err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return vibeerrors.Wrap(vibeerrors.ErrCodeSnapshotWrite, err)
	}

	lock := flock.New(lockPath(path))
	if err := lock.Lock(); err != nil {
		return vibeerrors.Wrap(vibeerrors.ErrCodeSnapshotLock, err)
	}
	defer func() { _ = lock.Unlock() }()

	if err := renameio.WriteFile(path, data, 0o644); err != nil {
		return vibeerrors.Wrap(vibeerrors.ErrCodeSnapshotWrite, err)
	}

	slog.Debug("snapshot_saved",
		slog.String("path", path),
		slog.Int("documents", len(snap.Documents)))
	return nil
}

// LoadIndex opens the index for a project from its snapshot file.
//
// A missing or unparseable snapshot is a recoverable miss: the caller gets a
// fresh empty index and a warn log, never an error. After a successful read
// the inverted index is rebuilt from the loaded documents.
func LoadIndex(projectPath, snapshotPath string, tokenizer Tokenizer) *Index {
	ix := NewIndex(projectPath, snapshotPath, tokenizer)

	if snapshotPath == "" {
		return ix
	}

	lock := flock.New(lockPath(snapshotPath))
	if err := lock.RLock(); err != nil {
		slog.Warn("snapshot_lock_failed",
			slog.String("path", snapshotPath),
			slog.String("error", err.Error()))
		return ix
	}
	data, readErr := os.ReadFile(snapshotPath)
	_ = lock.Unlock()

	if readErr != nil {
		if !os.IsNotExist(readErr) {
			slog.Warn("snapshot_read_failed",
				slog.String("path", snapshotPath),
				slog.String("error", readErr.Error()))
		}
		return ix
	}

	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		slog.Warn("snapshot_corrupt",
			slog.String("path", snapshotPath),
			slog.String("error", err.Error()))
		return ix
	}

	ix.mu.Lock()
	for id, doc := range snap.Documents {
		if doc == nil {
			continue
		}
		if doc.ID == "" {
			doc.ID = id
		}
		doc.Normalize()
		if err := doc.Validate(); err != nil {
			// Load what parses; a bad record is skipped, not fatal.
			slog.Warn("snapshot_document_skipped",
				slog.String("id", id),
				slog.String("error", err.Error()))
			continue
		}
		ix.docs[doc.ID] = doc
	}
	ix.rebuildLocked()
	ix.mu.Unlock()

	slog.Info("snapshot_loaded",
		slog.String("project", projectPath),
		slog.String("path", snapshotPath),
		slog.Int("documents", ix.Len()))
	return ix
}

// SnapshotExists reports whether a snapshot file is present on disk.
func SnapshotExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// ReadSnapshot reads and parses a snapshot file without building an index.
// Used by tooling that inspects snapshots directly.
func ReadSnapshot(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, vibeerrors.New(vibeerrors.ErrCodeSnapshotRead,
				fmt.Sprintf("snapshot not found: %s", path), err)
		}
		return nil, vibeerrors.Wrap(vibeerrors.ErrCodeSnapshotRead, err)
	}
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, vibeerrors.Wrap(vibeerrors.ErrCodeSnapshotCorrupt, err)
	}
	return &snap, nil
}
