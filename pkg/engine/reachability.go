package engine

import "github.com/sagewell/waymark/pkg/types"

// PlaceSet is a set of place IDs.
type PlaceSet map[types.EntityID]struct{}

// Contains reports set membership.
func (s PlaceSet) Contains(id types.EntityID) bool {
	_, ok := s[id]
	return ok
}

// Reachable returns every place reachable from start over traversable
// edges, start included. Breadth-first with a visited set, so it
// terminates on any graph and visits each place at most once. A start
// that is missing from the snapshot, or a nil start, yields the empty
// set rather than an error: "no position" means "nothing reachable".
func Reachable(snap *Snapshot, graph *PlaceGraph, start *types.EntityID) PlaceSet {
	result := make(PlaceSet)
	if start == nil || !snap.place(*start) {
		return result
	}

	result[*start] = struct{}{}
	queue := []types.EntityID{*start}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, e := range graph.Neighbors(cur) {
			if result.Contains(e.To) {
				continue
			}
			result[e.To] = struct{}{}
			queue = append(queue, e.To)
		}
	}
	return result
}
