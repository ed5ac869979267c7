package engine

import "github.com/sagewell/waymark/pkg/types"

// Service exposes the four boundary queries over a store. Each call
// loads a fresh snapshot and runs the pure engine; nothing is cached
// across calls, so results always reflect the store at call time and
// callers may discard superseded results safely.
type Service struct {
	store StoreReader
}

// NewService returns a Service reading from store.
func NewService(store StoreReader) *Service {
	return &Service{store: store}
}

// ComputeReachablePlaces returns the set of places reachable from start
// over open paths. A nil or unknown start yields the empty set.
func (s *Service) ComputeReachablePlaces(gameID, playthroughID string, start *types.EntityID) (PlaceSet, error) {
	snap, err := LoadSnapshot(s.store, gameID, playthroughID)
	if err != nil {
		return nil, err
	}
	return Reachable(snap, BuildPlaceGraph(snap), start), nil
}

// CheckEntityAvailability reports whether the entity's prerequisites are
// satisfied, with the direct unmet targets in declaration order.
func (s *Service) CheckEntityAvailability(gameID, playthroughID string, id types.EntityID) (Availability, error) {
	snap, err := LoadSnapshot(s.store, gameID, playthroughID)
	if err != nil {
		return Availability{}, err
	}
	return ResolveAvailability(snap, id), nil
}

// GetActionableEntities returns the entities that are valid next steps
// given the reachable place set.
func (s *Service) GetActionableEntities(gameID, playthroughID string, reachable PlaceSet) ([]ActionableEntity, error) {
	snap, err := LoadSnapshot(s.store, gameID, playthroughID)
	if err != nil {
		return nil, err
	}
	return Actionable(snap, reachable), nil
}

// GetActionableRouteEdgeIDs returns the union of thread IDs on shortest
// routes from the current position to each actionable entity's place.
func (s *Service) GetActionableRouteEdgeIDs(gameID, playthroughID string, position *types.EntityID,
	actionable []ActionableEntity) (ThreadSet, error) {
	snap, err := LoadSnapshot(s.store, gameID, playthroughID)
	if err != nil {
		return nil, err
	}
	targets := make([]*types.EntityID, 0, len(actionable))
	for _, a := range actionable {
		targets = append(targets, a.PlaceID)
	}
	return RouteEdges(snap, BuildPlaceGraph(snap), position, targets), nil
}

// NextSteps is a convenience composition: reachability from the current
// position, actionable selection, and route edges, in one snapshot load
// so all three views agree.
func (s *Service) NextSteps(gameID, playthroughID string) ([]ActionableEntity, ThreadSet, error) {
	snap, err := LoadSnapshot(s.store, gameID, playthroughID)
	if err != nil {
		return nil, nil, err
	}
	graph := BuildPlaceGraph(snap)
	reachable := Reachable(snap, graph, snap.Position)
	actionable := Actionable(snap, reachable)
	targets := make([]*types.EntityID, 0, len(actionable))
	for _, a := range actionable {
		targets = append(targets, a.PlaceID)
	}
	return actionable, RouteEdges(snap, graph, snap.Position, targets), nil
}
