package worldfile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sagewell/waymark/internal/sqlite"
	"github.com/sagewell/waymark/pkg/types"
)

const sampleWorld = `
name: The Hollow Crown
places:
  - key: village
    name: Greybarrow Village
    description: where it all begins
  - key: forest
    name: Darkmere Forest
  - key: ruins
    name: Sunken Ruins
paths:
  - key: gate
    name: Sealed Gate
    between: [forest, ruins]
    status: locked
quests:
  - key: find-key
    name: Find the Key
    at: village
  - key: explore-ruins
    name: Explore the Ruins
    at: ruins
    requires: [old-key]
items:
  - key: old-key
    name: Old Key
    status: not-acquired
threads:
  - label: connects
    from: village
    to: forest
  - label: relates
    from: find-key
    to: old-key
`

func newTestStore(t *testing.T) types.Store {
	t.Helper()
	b := sqlite.NewBackend()
	cfg := types.Config{Backend: types.BackendSQLite, DataDir: t.TempDir()}
	require.NoError(t, b.Attach(cfg))
	t.Cleanup(func() { b.Detach() })
	return b
}

func TestParse(t *testing.T) {
	w, err := Parse([]byte(sampleWorld))
	require.NoError(t, err)
	assert.Equal(t, "The Hollow Crown", w.Name)
	assert.Len(t, w.Places, 3)
	assert.Len(t, w.Paths, 1)
	assert.Len(t, w.Quests, 2)
	assert.Len(t, w.Items, 1)
	assert.Len(t, w.Threads, 2)
	assert.Equal(t, [2]string{"forest", "ruins"}, w.Paths[0].Between)
}

func TestParseRejectsUnknownFields(t *testing.T) {
	_, err := Parse([]byte("name: x\ndragons:\n  - key: d1\n"))
	assert.Error(t, err)
}

func TestParseRejectsMissingName(t *testing.T) {
	_, err := Parse([]byte("places:\n  - key: a\n    name: A\n"))
	assert.ErrorIs(t, err, types.ErrInvalidName)
}

func TestImport(t *testing.T) {
	store := newTestStore(t)
	w, err := Parse([]byte(sampleWorld))
	require.NoError(t, err)

	res, err := Import(store, w, "")
	require.NoError(t, err)

	game, err := store.GetGame(res.GameID)
	require.NoError(t, err)
	assert.Equal(t, "The Hollow Crown", game.Name)

	// Every key resolved to an entity of the right kind.
	assert.Len(t, res.IDs, 7)
	assert.Equal(t, types.KindPlace, res.IDs["village"].Kind)
	assert.Equal(t, types.KindPath, res.IDs["gate"].Kind)
	assert.Equal(t, types.KindQuest, res.IDs["find-key"].Kind)
	assert.Equal(t, types.KindItem, res.IDs["old-key"].Kind)

	// Locations resolved through keys.
	quest, err := store.GetEntity(res.IDs["find-key"])
	require.NoError(t, err)
	require.NotNil(t, quest.LocationID)
	assert.Equal(t, res.IDs["village"], *quest.LocationID)

	// Two connects for the gate, one requires, plus the two extra
	// threads.
	threads, err := store.ListThreads(res.GameID, "", "")
	require.NoError(t, err)
	assert.Len(t, threads, 5)
	assert.Len(t, res.ThreadIDs, 5)

	connects, err := store.ListThreads(res.GameID, types.ThreadConnects, "")
	require.NoError(t, err)
	assert.Len(t, connects, 3)
}

func TestImportDropsStatusesWithoutPlaythrough(t *testing.T) {
	store := newTestStore(t)
	w, err := Parse([]byte(sampleWorld))
	require.NoError(t, err)

	res, err := Import(store, w, "")
	require.NoError(t, err)
	assert.Empty(t, res.PlaythroughID)

	// A fresh playthrough sees the kind default, not the authored value.
	pt, err := store.CreatePlaythrough(res.GameID, "run")
	require.NoError(t, err)
	got, err := store.GetStatus(pt.PlaythroughID, res.IDs["gate"])
	require.NoError(t, err)
	assert.Equal(t, types.PathOpen, got)
}

func TestImportAppliesStatusesToPlaythrough(t *testing.T) {
	store := newTestStore(t)
	w, err := Parse([]byte(sampleWorld))
	require.NoError(t, err)

	res, err := Import(store, w, "first run")
	require.NoError(t, err)
	require.NotEmpty(t, res.PlaythroughID)

	pt, err := store.GetPlaythrough(res.PlaythroughID)
	require.NoError(t, err)
	assert.Equal(t, res.GameID, pt.GameID)
	assert.Equal(t, "first run", pt.Name)

	// The authored locked gate overrides the open default.
	got, err := store.GetStatus(res.PlaythroughID, res.IDs["gate"])
	require.NoError(t, err)
	assert.Equal(t, types.PathLocked, got)

	// An authored value equal to the default is stored explicitly too.
	got, err = store.GetStatus(res.PlaythroughID, res.IDs["old-key"])
	require.NoError(t, err)
	assert.Equal(t, types.ItemNotAcquired, got)
}

func TestImportFailsOnDuplicateKey(t *testing.T) {
	store := newTestStore(t)
	w, err := Parse([]byte("name: x\nplaces:\n  - key: a\n    name: A\n  - key: a\n    name: B\n"))
	require.NoError(t, err)

	_, err = Import(store, w, "")
	assert.ErrorContains(t, err, "duplicate key")
}

func TestImportFailsOnUnknownReference(t *testing.T) {
	store := newTestStore(t)

	w, err := Parse([]byte("name: x\nquests:\n  - key: q\n    name: Q\n    at: nowhere\n"))
	require.NoError(t, err)
	_, err = Import(store, w, "")
	assert.ErrorContains(t, err, "unknown place key")

	w, err = Parse([]byte("name: x\nquests:\n  - key: q\n    name: Q\n    requires: [nothing]\n"))
	require.NoError(t, err)
	_, err = Import(store, w, "")
	assert.ErrorContains(t, err, "unknown key")
}

func TestImportFailsOnMalformedPath(t *testing.T) {
	store := newTestStore(t)
	w, err := Parse([]byte("name: x\nplaces:\n  - key: a\n    name: A\npaths:\n  - key: p\n    name: P\n    between: [a]\n"))
	require.NoError(t, err)

	_, err = Import(store, w, "")
	assert.ErrorContains(t, err, "between two places")
}
