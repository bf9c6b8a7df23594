// Package registry owns the one-index-per-project lifecycle.
// A Registry replaces process-wide globals: construct one at startup and
// hand it to every caller that needs an index.
package registry

import (
	"log/slog"
	"sort"
	"sync"

	"github.com/samber/lo"
	"golang.org/x/sync/singleflight"

	"github.com/vhybzOS/vibe-search/internal/config"
	vibeerrors "github.com/vhybzOS/vibe-search/internal/errors"
	"github.com/vhybzOS/vibe-search/internal/search"
	"github.com/vhybzOS/vibe-search/internal/store"
)

// entry pairs a project's index with its query engine.
type entry struct {
	index  *store.Index
	engine *search.Engine
}

// Registry maps project paths to live in-memory indices.
type Registry struct {
	mu      sync.RWMutex
	entries map[string]*entry
	cfg     *config.Config

	// group collapses concurrent GetOrInit calls for the same project so
	// a snapshot is loaded at most once.
	group singleflight.Group
}

// New creates an empty registry. A nil cfg uses defaults.
func New(cfg *config.Config) *Registry {
	if cfg == nil {
		cfg = config.Default()
	}
	return &Registry{
		entries: make(map[string]*entry),
		cfg:     cfg,
	}
}

// GetOrInit returns the index for projectPath, creating it on first use.
// Creation attempts a snapshot load; a missing or unreadable snapshot
// degrades to a fresh empty index.
func (r *Registry) GetOrInit(projectPath string) (*store.Index, error) {
	r.mu.RLock()
	ent, ok := r.entries[projectPath]
	r.mu.RUnlock()
	if ok {
		return ent.index, nil
	}

	v, err, _ := r.group.Do(projectPath, func() (any, error) {
		r.mu.RLock()
		ent, ok := r.entries[projectPath]
		r.mu.RUnlock()
		if ok {
			return ent, nil
		}

		snapshotPath := r.cfg.SnapshotPath(projectPath)
		ix := store.LoadIndex(projectPath, snapshotPath, nil)
		ent = &entry{
			index:  ix,
			engine: search.NewEngine(ix, r.engineConfig()),
		}

		r.mu.Lock()
		r.entries[projectPath] = ent
		r.mu.Unlock()

		slog.Info("index_initialized",
			"project_path", projectPath,
			"documents", ix.Len())
		return ent, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*entry).index, nil
}

// Get returns the index for projectPath or a NotInitialized error.
// Unlike GetOrInit it never creates.
func (r *Registry) Get(projectPath string) (*store.Index, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ent, ok := r.entries[projectPath]
	if !ok {
		return nil, vibeerrors.NotInitializedError(projectPath)
	}
	return ent.index, nil
}

// Engine returns the query engine for projectPath, initializing the index
// first if needed.
func (r *Registry) Engine(projectPath string) (*search.Engine, error) {
	if _, err := r.GetOrInit(projectPath); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.entries[projectPath].engine, nil
}

// Clear drops the in-memory index for projectPath. The snapshot on disk is
// untouched; the next GetOrInit reloads it.
func (r *Registry) Clear(projectPath string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.entries, projectPath)
}

// Reload drops the in-memory index for projectPath and reinitializes it
// from its snapshot. Used when the snapshot changed on disk.
func (r *Registry) Reload(projectPath string) (*store.Index, error) {
	r.Clear(projectPath)
	return r.GetOrInit(projectPath)
}

// Reset drops every in-memory index. Intended for tests.
func (r *Registry) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = make(map[string]*entry)
}

// Projects returns the registered project paths, sorted.
func (r *Registry) Projects() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	paths := lo.Keys(r.entries)
	sort.Strings(paths)
	return paths
}

// Len returns the number of registered projects.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}

func (r *Registry) engineConfig() search.EngineConfig {
	return search.EngineConfig{
		DefaultLimit: r.cfg.Search.DefaultLimit,
		MaxLimit:     r.cfg.Search.MaxLimit,
		CacheSize:    r.cfg.Search.CacheSize,
	}
}
