package registry

import (
	"context"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	vibeerrors "github.com/vhybzOS/vibe-search/internal/errors"
	"github.com/vhybzOS/vibe-search/internal/search"
	"github.com/vhybzOS/vibe-search/internal/store"
)

func testDoc(id, content string) *store.Document {
	return &store.Document{
		ID:        id,
		DocType:   store.DocTypeMemory,
		Timestamp: 1700000000000,
		Content:   content,
		Metadata: store.Metadata{
			ProjectPath: "/tmp/proj",
			Priority:    store.PriorityMedium,
		},
	}
}

func TestGetOrInit_CreatesOnce(t *testing.T) {
	reg := New(nil)
	project := t.TempDir()

	first, err := reg.GetOrInit(project)
	require.NoError(t, err)
	second, err := reg.GetOrInit(project)
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.Equal(t, 1, reg.Len())
}

func TestGetOrInit_LoadsExistingSnapshot(t *testing.T) {
	project := t.TempDir()
	snapshotPath := filepath.Join(project, ".vibe", "search.index")

	seed := store.NewIndex(project, snapshotPath, nil)
	require.NoError(t, seed.Insert(testDoc("1", "persisted entry")))

	reg := New(nil)
	ix, err := reg.GetOrInit(project)
	require.NoError(t, err)

	assert.Equal(t, 1, ix.Len())
	assert.Equal(t, []string{"1"}, ix.Lookup("persisted"))
}

func TestGetOrInit_ConcurrentCallsShareOneIndex(t *testing.T) {
	reg := New(nil)
	project := t.TempDir()

	const callers = 16
	indices := make([]*store.Index, callers)
	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		i := i
		wg.Add(1)
		go func() {
			defer wg.Done()
			ix, err := reg.GetOrInit(project)
			assert.NoError(t, err)
			indices[i] = ix
		}()
	}
	wg.Wait()

	for i := 1; i < callers; i++ {
		assert.Same(t, indices[0], indices[i])
	}
	assert.Equal(t, 1, reg.Len())
}

func TestGet_NotInitialized(t *testing.T) {
	reg := New(nil)

	_, err := reg.Get("/nowhere")

	require.Error(t, err)
	assert.Equal(t, vibeerrors.ErrCodeNotInitialized, vibeerrors.GetCode(err))
}

func TestClear_DropsOnlyMemory(t *testing.T) {
	reg := New(nil)
	project := t.TempDir()

	ix, err := reg.GetOrInit(project)
	require.NoError(t, err)
	require.NoError(t, ix.Insert(testDoc("1", "kept on disk")))

	reg.Clear(project)
	_, err = reg.Get(project)
	require.Error(t, err)

	// Reinitializing reloads the snapshot written before Clear.
	reloaded, err := reg.GetOrInit(project)
	require.NoError(t, err)
	assert.Equal(t, 1, reloaded.Len())
}

func TestReload_PicksUpExternalSnapshotChanges(t *testing.T) {
	reg := New(nil)
	project := t.TempDir()

	_, err := reg.GetOrInit(project)
	require.NoError(t, err)

	// Another writer updates the snapshot behind the registry's back.
	snapshotPath := filepath.Join(project, ".vibe", "search.index")
	side := store.NewIndex(project, snapshotPath, nil)
	require.NoError(t, side.Insert(testDoc("ext", "external write")))

	reloaded, err := reg.Reload(project)
	require.NoError(t, err)
	assert.Equal(t, 1, reloaded.Len())
}

func TestReset_EmptiesRegistry(t *testing.T) {
	reg := New(nil)
	_, err := reg.GetOrInit(t.TempDir())
	require.NoError(t, err)
	_, err = reg.GetOrInit(t.TempDir())
	require.NoError(t, err)

	reg.Reset()

	assert.Equal(t, 0, reg.Len())
	assert.Empty(t, reg.Projects())
}

func TestProjects_Sorted(t *testing.T) {
	reg := New(nil)
	_, err := reg.GetOrInit("/tmp/zebra")
	require.NoError(t, err)
	_, err = reg.GetOrInit("/tmp/alpha")
	require.NoError(t, err)

	assert.Equal(t, []string{"/tmp/alpha", "/tmp/zebra"}, reg.Projects())
}

func TestEngine_SearchesProjectIndex(t *testing.T) {
	reg := New(nil)
	project := t.TempDir()

	ix, err := reg.GetOrInit(project)
	require.NoError(t, err)
	require.NoError(t, ix.Insert(testDoc("1", "registry wiring")))

	eng, err := reg.Engine(project)
	require.NoError(t, err)

	resp, err := eng.Search(context.Background(), search.Request{Term: "registry"})
	require.NoError(t, err)
	require.Len(t, resp.Results, 1)
	assert.Equal(t, "1", resp.Results[0].Document.ID)
}

func TestSearchAll_FansOutAcrossProjects(t *testing.T) {
	reg := New(nil)
	projA := t.TempDir()
	projB := t.TempDir()

	ixA, err := reg.GetOrInit(projA)
	require.NoError(t, err)
	require.NoError(t, ixA.Insert(testDoc("a1", "shared keyword")))

	ixB, err := reg.GetOrInit(projB)
	require.NoError(t, err)
	require.NoError(t, ixB.Insert(testDoc("b1", "shared keyword")))
	require.NoError(t, ixB.Insert(testDoc("b2", "unrelated text")))

	responses, err := reg.SearchAll(context.Background(), search.Request{Term: "shared"})
	require.NoError(t, err)
	require.Len(t, responses, 2)

	byPath := map[string]*search.Response{}
	for _, pr := range responses {
		byPath[pr.ProjectPath] = pr.Response
	}
	require.Contains(t, byPath, projA)
	require.Contains(t, byPath, projB)
	assert.Equal(t, 1, byPath[projA].Total)
	assert.Equal(t, 1, byPath[projB].Total)
}

func TestSearchAll_EmptyRegistry(t *testing.T) {
	reg := New(nil)

	responses, err := reg.SearchAll(context.Background(), search.Request{Term: "anything"})

	require.NoError(t, err)
	assert.Empty(t, responses)
}
