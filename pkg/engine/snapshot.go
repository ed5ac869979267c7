package engine

import (
	"errors"
	"fmt"

	"github.com/sagewell/waymark/pkg/types"
)

// StoreReader is the subset of types.Store the engine consumes. The
// engine only reads; it never writes back.
type StoreReader interface {
	ListEntities(gameID string, kind types.EntityKind) ([]*types.Entity, error)
	ListThreads(gameID, label, playthroughID string) ([]*types.Thread, error)
	ListStatuses(playthroughID string) ([]*types.Status, error)
	GetPlaythrough(playthroughID string) (*types.Playthrough, error)
}

// Snapshot is an immutable view of one (game, playthrough) pair. Entity
// and thread ordering is insertion order as reported by the store.
type Snapshot struct {
	GameID        string
	PlaythroughID string

	Entities    map[types.EntityID]*types.Entity
	EntityOrder []types.EntityID
	Threads     []*types.Thread

	// Statuses holds explicit rows only; Status applies kind defaults.
	Statuses map[types.EntityID]string

	// Position is the playthrough's current place, nil when unset.
	Position *types.EntityID
}

// LoadSnapshot reads everything the engine needs in one pass. An empty
// playthroughID yields a snapshot with no statuses and no position, so
// game-level queries still work. Store read failures propagate.
func LoadSnapshot(store StoreReader, gameID, playthroughID string) (*Snapshot, error) {
	entities, err := store.ListEntities(gameID, "")
	if err != nil {
		return nil, fmt.Errorf("load entities: %w", err)
	}
	threads, err := store.ListThreads(gameID, "", playthroughID)
	if err != nil {
		return nil, fmt.Errorf("load threads: %w", err)
	}

	snap := &Snapshot{
		GameID:        gameID,
		PlaythroughID: playthroughID,
		Entities:      make(map[types.EntityID]*types.Entity, len(entities)),
		EntityOrder:   make([]types.EntityID, 0, len(entities)),
		Threads:       threads,
		Statuses:      make(map[types.EntityID]string),
	}
	for _, e := range entities {
		snap.Entities[e.ID] = e
		snap.EntityOrder = append(snap.EntityOrder, e.ID)
	}

	if playthroughID != "" {
		statuses, err := store.ListStatuses(playthroughID)
		if err != nil {
			return nil, fmt.Errorf("load statuses: %w", err)
		}
		for _, s := range statuses {
			snap.Statuses[s.EntityID] = s.Value
		}
		pt, err := store.GetPlaythrough(playthroughID)
		switch {
		case errors.Is(err, types.ErrNotFound):
			// Unknown playthrough degrades to "no position".
		case err != nil:
			return nil, fmt.Errorf("load playthrough: %w", err)
		case pt.GameID == gameID:
			snap.Position = pt.PositionID
		}
	}

	return snap, nil
}

// Status returns the effective status for an entity: the explicit row if
// one exists, otherwise the kind default. Stateless kinds return "".
func (s *Snapshot) Status(id types.EntityID) string {
	if v, ok := s.Statuses[id]; ok {
		return v
	}
	return id.Kind.DefaultStatus()
}

// place reports whether id names a Place that exists in the snapshot.
func (s *Snapshot) place(id types.EntityID) bool {
	if id.Kind != types.KindPlace {
		return false
	}
	_, ok := s.Entities[id]
	return ok
}
