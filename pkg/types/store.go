package types

// Store is the backend-agnostic persistence interface. Callers attach to
// a backend, operate on records, and detach when done. List methods
// return records in insertion order; that order is observable (requires
// threads resolve in declaration order, place adjacency ties break by it).
type Store interface {
	// Attach connects the store to the backend described by config,
	// creating the data directory if needed. Returns ErrAlreadyAttached
	// if called while attached.
	Attach(config Config) error

	// Detach releases backend resources. Idempotent. After Detach,
	// operations return ErrStoreDetached.
	Detach() error

	// Games.
	CreateGame(name string) (*Game, error)
	GetGame(gameID string) (*Game, error)
	ListGames() ([]*Game, error)
	// DeleteGame removes the game and everything scoped to it.
	DeleteGame(gameID string) error

	// Entities. SaveEntity generates an ID when e.ID.UID is empty and
	// upserts otherwise. ListEntities filters by kind when kind is
	// non-empty.
	SaveEntity(e *Entity) (EntityID, error)
	GetEntity(id EntityID) (*Entity, error)
	ListEntities(gameID string, kind EntityKind) ([]*Entity, error)
	// DeleteEntity removes the entity, every thread touching it, its
	// status rows, and clears any location or position references to it.
	DeleteEntity(id EntityID) error

	// Threads. SaveThread validates that both endpoints exist in the
	// thread's game. ListThreads filters by label when label is non-empty;
	// when playthroughID is non-empty the result contains game-level
	// threads plus threads scoped to that playthrough.
	SaveThread(t *Thread) (string, error)
	GetThread(threadID string) (*Thread, error)
	ListThreads(gameID, label, playthroughID string) ([]*Thread, error)
	DeleteThread(threadID string) error

	// Playthroughs.
	CreatePlaythrough(gameID, name string) (*Playthrough, error)
	GetPlaythrough(playthroughID string) (*Playthrough, error)
	ListPlaythroughs(gameID string) ([]*Playthrough, error)
	DeletePlaythrough(playthroughID string) error
	// SetPosition records the player's current place; nil clears it.
	SetPosition(playthroughID string, placeID *EntityID) error

	// Statuses. SetStatus rejects values outside the entity kind's
	// status set and any status for stateless kinds. GetStatus returns
	// the kind default when no row exists.
	SetStatus(playthroughID string, id EntityID, value string) error
	GetStatus(playthroughID string, id EntityID) (string, error)
	ListStatuses(playthroughID string) ([]*Status, error)

	// ExportGame writes the game's records as JSONL files under dir.
	ExportGame(gameID, dir string) error
}
