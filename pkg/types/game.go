package types

import "time"

// Game is the top-level scope. Every entity, thread, and playthrough
// belongs to exactly one game and never moves between games.
type Game struct {
	GameID    string // UUID v7, generated on creation.
	Name      string
	CreatedAt time.Time
}

// Playthrough is one player run through a game. It scopes all mutable
// status and carries the player's current position, if any.
type Playthrough struct {
	PlaythroughID string // UUID v7, generated on creation.
	GameID        string
	Name          string
	PositionID    *EntityID // Current place; nil means no position.
	CreatedAt     time.Time
}

// Status is one per-playthrough status row. A missing row for a stateful
// entity means the kind's default status applies.
type Status struct {
	PlaythroughID string
	EntityID      EntityID
	Value         string
	UpdatedAt     time.Time
}
