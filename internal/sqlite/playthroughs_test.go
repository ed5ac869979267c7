package sqlite

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sagewell/waymark/pkg/types"
)

func TestCreateAndGetPlaythrough(t *testing.T) {
	b := newTestBackend(t)
	gameID := newTestGame(t, b)

	pt, err := b.CreatePlaythrough(gameID, "first run")
	require.NoError(t, err)
	assert.NotEmpty(t, pt.PlaythroughID)
	assert.Nil(t, pt.PositionID)

	got, err := b.GetPlaythrough(pt.PlaythroughID)
	require.NoError(t, err)
	assert.Equal(t, "first run", got.Name)
	assert.Equal(t, gameID, got.GameID)
	assert.Nil(t, got.PositionID)
}

func TestCreatePlaythroughValidation(t *testing.T) {
	b := newTestBackend(t)
	gameID := newTestGame(t, b)

	_, err := b.CreatePlaythrough(gameID, "")
	assert.ErrorIs(t, err, types.ErrInvalidName)
	_, err = b.CreatePlaythrough("no-such-game", "run")
	assert.ErrorIs(t, err, types.ErrNotFound)
}

func TestListPlaythroughsInCreationOrder(t *testing.T) {
	b := newTestBackend(t)
	gameID := newTestGame(t, b)

	names := []string{"first", "second"}
	for _, name := range names {
		_, err := b.CreatePlaythrough(gameID, name)
		require.NoError(t, err)
	}

	pts, err := b.ListPlaythroughs(gameID)
	require.NoError(t, err)
	require.Len(t, pts, 2)
	assert.Equal(t, "first", pts[0].Name)
	assert.Equal(t, "second", pts[1].Name)
}

func TestSetPosition(t *testing.T) {
	b := newTestBackend(t)
	gameID := newTestGame(t, b)
	village := newTestPlace(t, b, gameID, "village")
	pt, err := b.CreatePlaythrough(gameID, "run")
	require.NoError(t, err)

	require.NoError(t, b.SetPosition(pt.PlaythroughID, &village))
	got, err := b.GetPlaythrough(pt.PlaythroughID)
	require.NoError(t, err)
	require.NotNil(t, got.PositionID)
	assert.Equal(t, village, *got.PositionID)

	// Nil clears.
	require.NoError(t, b.SetPosition(pt.PlaythroughID, nil))
	got, err = b.GetPlaythrough(pt.PlaythroughID)
	require.NoError(t, err)
	assert.Nil(t, got.PositionID)
}

func TestSetPositionValidation(t *testing.T) {
	b := newTestBackend(t)
	gameID := newTestGame(t, b)
	otherGame := newTestGame(t, b)
	foreign := newTestPlace(t, b, otherGame, "elsewhere")
	pt, err := b.CreatePlaythrough(gameID, "run")
	require.NoError(t, err)

	assert.ErrorIs(t, b.SetPosition("no-such-pt", nil), types.ErrNotFound)

	// Position must be a place of the playthrough's game.
	quest, err := b.SaveEntity(&types.Entity{
		ID: types.EntityID{Kind: types.KindQuest}, GameID: gameID, Name: "q"})
	require.NoError(t, err)
	assert.ErrorIs(t, b.SetPosition(pt.PlaythroughID, &quest), types.ErrNotAPlace)
	assert.ErrorIs(t, b.SetPosition(pt.PlaythroughID, &foreign), types.ErrCrossGame)
}

func TestDeletePlaythroughCascades(t *testing.T) {
	b := newTestBackend(t)
	gameID := newTestGame(t, b)
	a := newTestPlace(t, b, gameID, "A")
	c := newTestPlace(t, b, gameID, "B")
	pt, err := b.CreatePlaythrough(gameID, "run")
	require.NoError(t, err)

	quest, err := b.SaveEntity(&types.Entity{
		ID: types.EntityID{Kind: types.KindQuest}, GameID: gameID, Name: "q"})
	require.NoError(t, err)
	require.NoError(t, b.SetStatus(pt.PlaythroughID, quest, types.QuestActive))
	scoped, err := b.SaveThread(&types.Thread{
		GameID: gameID, Label: types.ThreadRequires,
		FromID: a, ToID: c, PlaythroughID: &pt.PlaythroughID})
	require.NoError(t, err)
	gameLevel, err := b.SaveThread(&types.Thread{
		GameID: gameID, Label: types.ThreadConnects, FromID: a, ToID: c})
	require.NoError(t, err)

	require.NoError(t, b.DeletePlaythrough(pt.PlaythroughID))

	_, err = b.GetPlaythrough(pt.PlaythroughID)
	assert.ErrorIs(t, err, types.ErrNotFound)
	_, err = b.GetThread(scoped)
	assert.ErrorIs(t, err, types.ErrNotFound)

	// Game-level records survive.
	_, err = b.GetThread(gameLevel)
	assert.NoError(t, err)
	_, err = b.GetEntity(quest)
	assert.NoError(t, err)
}
