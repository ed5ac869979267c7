package sqlite

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sagewell/waymark/pkg/types"
)

func TestSaveEntityGeneratesID(t *testing.T) {
	b := newTestBackend(t)
	gameID := newTestGame(t, b)

	e := &types.Entity{
		ID:          types.EntityID{Kind: types.KindQuest},
		GameID:      gameID,
		Name:        "find key",
		Description: "the cellar key",
	}
	id, err := b.SaveEntity(e)
	require.NoError(t, err)
	assert.Equal(t, types.KindQuest, id.Kind)
	assert.NotEmpty(t, id.UID)
	assert.False(t, e.CreatedAt.IsZero())

	got, err := b.GetEntity(id)
	require.NoError(t, err)
	assert.Equal(t, "find key", got.Name)
	assert.Equal(t, "the cellar key", got.Description)
	assert.Nil(t, got.LocationID)
}

func TestSaveEntityUpserts(t *testing.T) {
	b := newTestBackend(t)
	gameID := newTestGame(t, b)
	place := newTestPlace(t, b, gameID, "village")

	e := &types.Entity{
		ID:     types.EntityID{Kind: types.KindItem},
		GameID: gameID,
		Name:   "key",
	}
	id, err := b.SaveEntity(e)
	require.NoError(t, err)

	e.Name = "rusty key"
	e.LocationID = &place
	again, err := b.SaveEntity(e)
	require.NoError(t, err)
	assert.Equal(t, id, again)

	got, err := b.GetEntity(id)
	require.NoError(t, err)
	assert.Equal(t, "rusty key", got.Name)
	require.NotNil(t, got.LocationID)
	assert.Equal(t, place, *got.LocationID)
}

func TestSaveEntityValidation(t *testing.T) {
	b := newTestBackend(t)
	gameID := newTestGame(t, b)

	_, err := b.SaveEntity(&types.Entity{
		ID:     types.EntityID{Kind: "dragon"},
		GameID: gameID,
		Name:   "x",
	})
	assert.ErrorIs(t, err, types.ErrInvalidKind)

	_, err = b.SaveEntity(&types.Entity{
		ID:     types.EntityID{Kind: types.KindQuest},
		GameID: gameID,
	})
	assert.ErrorIs(t, err, types.ErrInvalidName)

	_, err = b.SaveEntity(&types.Entity{
		ID:     types.EntityID{Kind: types.KindQuest},
		GameID: "no-such-game",
		Name:   "x",
	})
	assert.ErrorIs(t, err, types.ErrNotFound)
}

func TestSaveEntityLocationChecks(t *testing.T) {
	b := newTestBackend(t)
	gameID := newTestGame(t, b)
	otherGame := newTestGame(t, b)
	otherPlace := newTestPlace(t, b, otherGame, "elsewhere")

	// Location must exist.
	ghost := types.NewEntityID(types.KindPlace)
	_, err := b.SaveEntity(&types.Entity{
		ID:         types.EntityID{Kind: types.KindItem},
		GameID:     gameID,
		Name:       "key",
		LocationID: &ghost,
	})
	assert.ErrorIs(t, err, types.ErrNotFound)

	// Location must be in the same game.
	_, err = b.SaveEntity(&types.Entity{
		ID:         types.EntityID{Kind: types.KindItem},
		GameID:     gameID,
		Name:       "key",
		LocationID: &otherPlace,
	})
	assert.ErrorIs(t, err, types.ErrCrossGame)
}

func TestListEntitiesInsertionOrderAndKindFilter(t *testing.T) {
	b := newTestBackend(t)
	gameID := newTestGame(t, b)

	village := newTestPlace(t, b, gameID, "village")
	quest, err := b.SaveEntity(&types.Entity{
		ID: types.EntityID{Kind: types.KindQuest}, GameID: gameID, Name: "q"})
	require.NoError(t, err)
	forest := newTestPlace(t, b, gameID, "forest")

	all, err := b.ListEntities(gameID, "")
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, []types.EntityID{village, quest, forest},
		[]types.EntityID{all[0].ID, all[1].ID, all[2].ID})

	places, err := b.ListEntities(gameID, types.KindPlace)
	require.NoError(t, err)
	require.Len(t, places, 2)
	assert.Equal(t, village, places[0].ID)
	assert.Equal(t, forest, places[1].ID)

	_, err = b.ListEntities(gameID, "dragon")
	assert.ErrorIs(t, err, types.ErrInvalidKind)
}

func TestDeleteEntityCascades(t *testing.T) {
	b := newTestBackend(t)
	gameID := newTestGame(t, b)
	village := newTestPlace(t, b, gameID, "village")

	item, err := b.SaveEntity(&types.Entity{
		ID: types.EntityID{Kind: types.KindItem}, GameID: gameID, Name: "key",
		LocationID: &village})
	require.NoError(t, err)
	threadID, err := b.SaveThread(&types.Thread{
		GameID: gameID, Label: types.ThreadRequires, FromID: item, ToID: village})
	require.NoError(t, err)
	pt, err := b.CreatePlaythrough(gameID, "run")
	require.NoError(t, err)
	require.NoError(t, b.SetPosition(pt.PlaythroughID, &village))

	require.NoError(t, b.DeleteEntity(village))

	_, err = b.GetEntity(village)
	assert.ErrorIs(t, err, types.ErrNotFound)
	_, err = b.GetThread(threadID)
	assert.ErrorIs(t, err, types.ErrNotFound)

	// References to the deleted place are cleared, not dangling.
	gotItem, err := b.GetEntity(item)
	require.NoError(t, err)
	assert.Nil(t, gotItem.LocationID)
	gotPt, err := b.GetPlaythrough(pt.PlaythroughID)
	require.NoError(t, err)
	assert.Nil(t, gotPt.PositionID)
}

func TestDeleteEntityNotFound(t *testing.T) {
	b := newTestBackend(t)
	assert.ErrorIs(t, b.DeleteEntity(types.NewEntityID(types.KindQuest)), types.ErrNotFound)
	assert.ErrorIs(t, b.DeleteEntity(types.EntityID{}), types.ErrInvalidID)
}
