package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sagewell/waymark/pkg/types"
)

func neighborIDs(g *PlaceGraph, id types.EntityID) []types.EntityID {
	var out []types.EntityID
	for _, e := range g.Neighbors(id) {
		out = append(out, e.To)
	}
	return out
}

func TestBuildPlaceGraph_DirectEdgeIsBidirectional(t *testing.T) {
	w := newWorld()
	a := w.entity(types.KindPlace, "A")
	b := w.entity(types.KindPlace, "B")
	tid := w.connects(a, b)

	g := BuildPlaceGraph(w.snap)

	require.Len(t, g.Neighbors(a), 1)
	require.Len(t, g.Neighbors(b), 1)
	assert.Equal(t, b, g.Neighbors(a)[0].To)
	assert.Equal(t, a, g.Neighbors(b)[0].To)
	assert.Equal(t, []string{tid}, g.Neighbors(a)[0].ThreadIDs)
	assert.Equal(t, []string{tid}, g.Neighbors(b)[0].ThreadIDs)
}

func TestBuildPlaceGraph_PathMediatedEdge(t *testing.T) {
	w := newWorld()
	a := w.entity(types.KindPlace, "A")
	b := w.entity(types.KindPlace, "B")
	_, tids := w.path("mountain pass", a, b)

	g := BuildPlaceGraph(w.snap)

	require.Len(t, g.Neighbors(a), 1)
	assert.Equal(t, b, g.Neighbors(a)[0].To)
	// Both connects threads form the edge.
	assert.Equal(t, tids, g.Neighbors(a)[0].ThreadIDs)
	assert.Equal(t, []types.EntityID{a}, neighborIDs(g, b))
}

func TestBuildPlaceGraph_GatingIsSymmetric(t *testing.T) {
	w := newWorld()
	a := w.entity(types.KindPlace, "A")
	b := w.entity(types.KindPlace, "B")
	pathID, _ := w.path("gate", a, b)

	for _, status := range []string{types.PathLocked, types.PathHidden} {
		w.status(pathID, status)
		g := BuildPlaceGraph(w.snap)
		assert.Empty(t, g.Neighbors(a), "status %s", status)
		assert.Empty(t, g.Neighbors(b), "status %s", status)
	}

	// Open (also the default) restores the edge in both directions.
	w.status(pathID, types.PathOpen)
	g := BuildPlaceGraph(w.snap)
	assert.Len(t, g.Neighbors(a), 1)
	assert.Len(t, g.Neighbors(b), 1)
}

func TestBuildPlaceGraph_MalformedPathContributesNothing(t *testing.T) {
	w := newWorld()
	a := w.entity(types.KindPlace, "A")
	b := w.entity(types.KindPlace, "B")
	c := w.entity(types.KindPlace, "C")

	// One endpoint only.
	dangling := w.entity(types.KindPath, "dangling")
	w.connects(dangling, a)

	// Three endpoints.
	hub := w.entity(types.KindPath, "hub")
	w.connects(hub, a)
	w.connects(hub, b)
	w.connects(hub, c)

	g := BuildPlaceGraph(w.snap)
	assert.Empty(t, g.Neighbors(a))
	assert.Empty(t, g.Neighbors(b))
	assert.Empty(t, g.Neighbors(c))
}

func TestBuildPlaceGraph_IgnoresNonPlaceEndpoints(t *testing.T) {
	w := newWorld()
	a := w.entity(types.KindPlace, "A")
	q := w.entity(types.KindQuest, "Q")
	w.connects(a, q)
	w.connects(q, a)

	// Thread to an entity missing from the snapshot.
	w.connects(a, types.NewEntityID(types.KindPlace))

	g := BuildPlaceGraph(w.snap)
	assert.Empty(t, g.Neighbors(a))
}

func TestBuildPlaceGraph_NeighborsFollowThreadOrder(t *testing.T) {
	w := newWorld()
	hub := w.entity(types.KindPlace, "hub")
	b := w.entity(types.KindPlace, "B")
	c := w.entity(types.KindPlace, "C")
	d := w.entity(types.KindPlace, "D")
	w.connects(hub, b)
	w.connects(hub, c)
	w.connects(hub, d)

	g := BuildPlaceGraph(w.snap)
	assert.Equal(t, []types.EntityID{b, c, d}, neighborIDs(g, hub))
}
