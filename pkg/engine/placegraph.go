package engine

import "github.com/sagewell/waymark/pkg/types"

// Edge is one traversable connection from a place to a neighbor.
// ThreadIDs lists the connects thread(s) forming the edge: one for a
// direct place-to-place thread, two for a path-mediated connection.
type Edge struct {
	To        types.EntityID
	ThreadIDs []string
}

// PlaceGraph is the traversable adjacency view over a game's places for
// one playthrough. Neighbors appear in thread declaration order, which is
// the deterministic tie-break order for route finding. Edges gated by a
// non-open path are omitted entirely.
type PlaceGraph struct {
	adj map[types.EntityID][]Edge
}

// Neighbors returns the traversable edges out of a place, nil when the
// place is unknown or isolated.
func (g *PlaceGraph) Neighbors(id types.EntityID) []Edge {
	return g.adj[id]
}

// addEdge inserts the edge in both directions.
func (g *PlaceGraph) addEdge(a, b types.EntityID, threadIDs []string) {
	g.adj[a] = append(g.adj[a], Edge{To: b, ThreadIDs: threadIDs})
	g.adj[b] = append(g.adj[b], Edge{To: a, ThreadIDs: threadIDs})
}

// pathEndpoints accumulates the places a path entity connects to, with
// the threads establishing each connection.
type pathEndpoints struct {
	places  []types.EntityID
	threads []string
}

// BuildPlaceGraph derives the traversable place adjacency from connects
// threads. Two forms contribute edges:
//
//   - place — place: an ungated edge.
//   - place — path — place: an edge gated by the path's status for the
//     active playthrough; only open paths contribute.
//
// Edges are bidirectional and gating is symmetric. Threads whose
// endpoints are missing from the snapshot, and paths connected to a
// number of places other than two, contribute nothing.
func BuildPlaceGraph(snap *Snapshot) *PlaceGraph {
	g := &PlaceGraph{adj: make(map[types.EntityID][]Edge)}

	paths := make(map[types.EntityID]*pathEndpoints)
	var pathOrder []types.EntityID
	endpoint := func(pathID, placeID types.EntityID, threadID string) {
		if _, ok := snap.Entities[pathID]; !ok {
			return
		}
		ep, ok := paths[pathID]
		if !ok {
			ep = &pathEndpoints{}
			paths[pathID] = ep
			pathOrder = append(pathOrder, pathID)
		}
		ep.places = append(ep.places, placeID)
		ep.threads = append(ep.threads, threadID)
	}

	for _, t := range snap.Threads {
		if t.Label != types.ThreadConnects {
			continue
		}
		from, to := t.FromID, t.ToID
		switch {
		case snap.place(from) && snap.place(to):
			g.addEdge(from, to, []string{t.ThreadID})
		case snap.place(from) && to.Kind == types.KindPath:
			endpoint(to, from, t.ThreadID)
		case from.Kind == types.KindPath && snap.place(to):
			endpoint(from, to, t.ThreadID)
		}
	}

	for _, pathID := range pathOrder {
		ep := paths[pathID]
		if len(ep.places) != 2 {
			continue
		}
		if snap.Status(pathID) != types.PathOpen {
			continue
		}
		g.addEdge(ep.places[0], ep.places[1], ep.threads)
	}

	return g
}
