// Package sqlite implements the SQLite storage backend for Waymark.
package sqlite

// Schema DDL for all tables.
const (
	createGames = `CREATE TABLE games (
    game_id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    created_at TEXT NOT NULL
);`

	createEntities = `CREATE TABLE entities (
    entity_id TEXT PRIMARY KEY,
    game_id TEXT NOT NULL,
    kind TEXT NOT NULL,
    name TEXT NOT NULL,
    description TEXT,
    location_id TEXT,
    image_ref TEXT,
    created_at TEXT NOT NULL,
    updated_at TEXT NOT NULL,
    FOREIGN KEY (game_id) REFERENCES games(game_id)
);`

	createThreads = `CREATE TABLE threads (
    thread_id TEXT PRIMARY KEY,
    game_id TEXT NOT NULL,
    label TEXT NOT NULL,
    from_id TEXT NOT NULL,
    to_id TEXT NOT NULL,
    playthrough_id TEXT,
    created_at TEXT NOT NULL,
    FOREIGN KEY (game_id) REFERENCES games(game_id)
);`

	createPlaythroughs = `CREATE TABLE playthroughs (
    playthrough_id TEXT PRIMARY KEY,
    game_id TEXT NOT NULL,
    name TEXT NOT NULL,
    position_id TEXT,
    created_at TEXT NOT NULL,
    FOREIGN KEY (game_id) REFERENCES games(game_id)
);`

	createStatuses = `CREATE TABLE statuses (
    playthrough_id TEXT NOT NULL,
    entity_id TEXT NOT NULL,
    value TEXT NOT NULL,
    updated_at TEXT NOT NULL,
    PRIMARY KEY (playthrough_id, entity_id),
    FOREIGN KEY (playthrough_id) REFERENCES playthroughs(playthrough_id)
);`
)

// Index DDL for common queries. List methods order by rowid, so insertion
// order survives round trips.
const (
	idxEntitiesGame     = `CREATE INDEX idx_entities_game ON entities(game_id, kind);`
	idxThreadsGame      = `CREATE INDEX idx_threads_game ON threads(game_id, label);`
	idxThreadsFrom      = `CREATE INDEX idx_threads_from ON threads(from_id);`
	idxThreadsTo        = `CREATE INDEX idx_threads_to ON threads(to_id);`
	idxPlaythroughsGame = `CREATE INDEX idx_playthroughs_game ON playthroughs(game_id);`
)

// schemaDDL lists all CREATE TABLE statements in dependency order.
var schemaDDL = []string{
	createGames,
	createEntities,
	createThreads,
	createPlaythroughs,
	createStatuses,
}

// indexDDL lists all CREATE INDEX statements.
var indexDDL = []string{
	idxEntitiesGame,
	idxThreadsGame,
	idxThreadsFrom,
	idxThreadsTo,
	idxPlaythroughsGame,
}
