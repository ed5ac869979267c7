package engine

import "github.com/sagewell/waymark/pkg/types"

// ActionableEntity is a valid next step: reachable, available, and not
// yet resolved. PlaceID is the entity's location, nil when it has none.
type ActionableEntity struct {
	ID      types.EntityID
	Name    string
	PlaceID *types.EntityID
}

// ThreadSet is a set of thread IDs.
type ThreadSet map[string]struct{}

// actionableKinds are the kinds with a meaningful next step. Places,
// maps, and paths are locations, not actions.
var actionableKinds = map[types.EntityKind]bool{
	types.KindQuest:   true,
	types.KindItem:    true,
	types.KindInsight: true,
	types.KindPerson:  true,
}

// terminalStatuses maps each actionable kind to the statuses that end its
// usefulness as a next step. A lost item is deliberately not terminal: it
// can be found again.
var terminalStatuses = map[types.EntityKind]map[string]bool{
	types.KindQuest:   {types.QuestCompleted: true, types.QuestAbandoned: true},
	types.KindInsight: {types.InsightKnown: true, types.InsightIrrelevant: true},
	types.KindItem:    {types.ItemAcquired: true, types.ItemUsed: true},
	types.KindPerson:  {types.PersonDead: true},
}

// Actionable selects the entities that qualify as next steps: an
// actionable kind, not in a terminal status, located in a reachable place
// (or unplaced), and available. Results follow entity insertion order.
func Actionable(snap *Snapshot, reachable PlaceSet) []ActionableEntity {
	var candidates []types.EntityID
	for _, id := range snap.EntityOrder {
		e := snap.Entities[id]
		if !actionableKinds[id.Kind] {
			continue
		}
		if terminalStatuses[id.Kind][snap.Status(id)] {
			continue
		}
		if e.LocationID != nil && !reachable.Contains(*e.LocationID) {
			continue
		}
		candidates = append(candidates, id)
	}

	verdicts := ResolveAllAvailability(snap, candidates)
	var out []ActionableEntity
	for _, id := range candidates {
		if !verdicts[id].Available {
			continue
		}
		e := snap.Entities[id]
		out = append(out, ActionableEntity{ID: id, Name: e.Name, PlaceID: e.LocationID})
	}
	return out
}

// RouteEdges unions the thread IDs lying on a shortest route from the
// current position to each target place. Shortest is by edge count; ties
// break by adjacency order, which is thread declaration order. A nil
// position, or a target with no route, contributes nothing.
func RouteEdges(snap *Snapshot, graph *PlaceGraph, position *types.EntityID,
	targets []*types.EntityID) ThreadSet {
	out := make(ThreadSet)
	if position == nil || !snap.place(*position) {
		return out
	}

	// One BFS from the position yields a parent-edge tree covering every
	// reachable target. First-found parents give the tie-break order.
	type parentLink struct {
		prev types.EntityID
		edge Edge
	}
	parents := make(map[types.EntityID]parentLink)
	visited := PlaceSet{*position: {}}
	queue := []types.EntityID{*position}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, e := range graph.Neighbors(cur) {
			if visited.Contains(e.To) {
				continue
			}
			visited[e.To] = struct{}{}
			parents[e.To] = parentLink{prev: cur, edge: e}
			queue = append(queue, e.To)
		}
	}

	for _, target := range targets {
		if target == nil {
			continue
		}
		cur := *target
		for cur != *position {
			link, ok := parents[cur]
			if !ok {
				break // unreachable target contributes no edges
			}
			for _, tid := range link.edge.ThreadIDs {
				out[tid] = struct{}{}
			}
			cur = link.prev
		}
	}
	return out
}
