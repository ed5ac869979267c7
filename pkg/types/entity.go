package types

import (
	"fmt"
	"time"
)

// Entity is a game-scoped record of any kind. The kind lives on the ID.
// LocationID, when set, names the Place the entity is found at and drives
// reachability checks; entities without one have no location constraint.
type Entity struct {
	ID          EntityID
	GameID      string
	Name        string // Human-readable name (required, non-empty).
	Description string
	LocationID  *EntityID // Place association; nil for unplaced entities.
	ImageRef    string    // Maps only: opaque reference to a map image.
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Validate checks the structural rules that hold for every entity:
// a valid ID, a game scope, a name, and a location that names a place.
func (e *Entity) Validate() error {
	if !e.ID.Valid() {
		return ErrInvalidID
	}
	if e.GameID == "" {
		return fmt.Errorf("%w: entity %s has no game", ErrInvalidID, e.ID)
	}
	if e.Name == "" {
		return ErrInvalidName
	}
	if e.LocationID != nil && e.LocationID.Kind != KindPlace {
		return ErrNotAPlace
	}
	return nil
}
