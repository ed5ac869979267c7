package engine

import "github.com/sagewell/waymark/pkg/types"

// Availability is the verdict for one entity: whether every prerequisite
// is satisfied, and if not, the direct requires targets that block it, in
// thread declaration order with duplicates removed. Transitive failures
// are reflected in the verdict but only direct blockers are listed.
type Availability struct {
	Available bool
	Unmet     []types.EntityID
}

// satisfyingStatuses maps each stateful kind to the statuses that make it
// count as a met prerequisite. Stateless kinds (place, map) have no entry
// and pass the status check vacuously.
var satisfyingStatuses = map[types.EntityKind]map[string]bool{
	types.KindQuest:   {types.QuestCompleted: true},
	types.KindInsight: {types.InsightKnown: true},
	types.KindItem:    {types.ItemAcquired: true, types.ItemUsed: true},
	types.KindPerson:  {types.PersonAlive: true},
	types.KindPath:    {types.PathOpen: true},
}

// statusSatisfies reports whether an entity's effective status makes it a
// satisfied prerequisite, before its own requirements are considered.
func statusSatisfies(kind types.EntityKind, status string) bool {
	set, ok := satisfyingStatuses[kind]
	if !ok {
		return true
	}
	return set[status]
}

// resolver carries the call-scoped state for one resolution pass: the
// memo table and the in-progress set for cycle safety. A fresh resolver
// is built per top-level call, so concurrent resolutions over different
// snapshots never share state.
type resolver struct {
	snap       *Snapshot
	requires   map[types.EntityID][]*types.Thread
	memo       map[types.EntityID]Availability
	inProgress map[types.EntityID]bool
}

func newResolver(snap *Snapshot) *resolver {
	r := &resolver{
		snap:       snap,
		requires:   make(map[types.EntityID][]*types.Thread),
		memo:       make(map[types.EntityID]Availability),
		inProgress: make(map[types.EntityID]bool),
	}
	for _, t := range snap.Threads {
		if t.Label == types.ThreadRequires {
			r.requires[t.FromID] = append(r.requires[t.FromID], t)
		}
	}
	return r
}

// resolve computes availability for one entity. An entity with no
// requires threads is trivially available. Re-entering an entity already
// on the current resolution path fails closed: the edge is treated as
// unsatisfied, so cyclic graphs terminate with every cycle member
// unavailable unless satisfied externally.
func (r *resolver) resolve(id types.EntityID) Availability {
	if v, ok := r.memo[id]; ok {
		return v
	}

	r.inProgress[id] = true
	var unmet []types.EntityID
	seen := make(map[types.EntityID]bool)
	for _, t := range r.requires[id] {
		if r.satisfied(t.ToID) || seen[t.ToID] {
			continue
		}
		seen[t.ToID] = true
		unmet = append(unmet, t.ToID)
	}
	delete(r.inProgress, id)

	v := Availability{Available: len(unmet) == 0, Unmet: unmet}
	r.memo[id] = v
	return v
}

// satisfied reports whether a requires target is met: it must exist, its
// effective status must be in its kind's satisfying set, and its own
// requirements must resolve as available. A target currently being
// resolved higher up the same path is unsatisfied (cycle guard); that
// verdict is not memoized, so the cycle member still gets its own full
// resolution.
func (r *resolver) satisfied(target types.EntityID) bool {
	if r.inProgress[target] {
		return false
	}
	if _, ok := r.snap.Entities[target]; !ok {
		return false
	}
	if !statusSatisfies(target.Kind, r.snap.Status(target)) {
		return false
	}
	return r.resolve(target).Available
}

// ResolveAvailability evaluates one entity against the snapshot. An
// unknown entity resolves to unavailable with no unmet targets.
func ResolveAvailability(snap *Snapshot, id types.EntityID) Availability {
	if _, ok := snap.Entities[id]; !ok {
		return Availability{}
	}
	return newResolver(snap).resolve(id)
}

// ResolveAllAvailability evaluates many entities sharing one snapshot.
// The memo table is shared across the batch, so each entity is resolved
// at most once no matter how many others require it. Results are keyed
// by entity ID; unknown IDs resolve to unavailable.
func ResolveAllAvailability(snap *Snapshot, ids []types.EntityID) map[types.EntityID]Availability {
	r := newResolver(snap)
	out := make(map[types.EntityID]Availability, len(ids))
	for _, id := range ids {
		if _, ok := snap.Entities[id]; !ok {
			out[id] = Availability{}
			continue
		}
		out[id] = r.resolve(id)
	}
	return out
}
