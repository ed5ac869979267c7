package types

import "time"

// Thread labels. Connects and requires are the two labels the engine
// interprets; relates is stored for display-only relationships.
const (
	ThreadConnects = "connects"
	ThreadRequires = "requires"
	ThreadRelates  = "relates"
)

// validLabels is the set of recognized thread labels.
var validLabels = map[string]bool{
	ThreadConnects: true,
	ThreadRequires: true,
	ThreadRelates:  true,
}

// ValidLabel reports whether label is a recognized thread label.
func ValidLabel(label string) bool {
	return validLabels[label]
}

// Thread is a directed labeled edge between two entities of the same
// game. A nil PlaythroughID scopes the thread to the whole game; a
// non-nil one restricts it to a single playthrough.
type Thread struct {
	ThreadID      string // UUID v7, generated on creation.
	GameID        string
	Label         string
	FromID        EntityID
	ToID          EntityID
	PlaythroughID *string
	CreatedAt     time.Time
}

// Validate checks label and endpoint well-formedness. Endpoint existence
// is the store's job; this only checks shape.
func (t *Thread) Validate() error {
	if !ValidLabel(t.Label) {
		return ErrInvalidLabel
	}
	if t.GameID == "" {
		return ErrInvalidID
	}
	if !t.FromID.Valid() || !t.ToID.Valid() {
		return ErrInvalidID
	}
	return nil
}
