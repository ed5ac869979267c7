package sqlite

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/sagewell/waymark/pkg/types"
)

// CreateGame inserts a new game with a generated ID.
func (b *Backend) CreateGame(name string) (*types.Game, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.checkAttached(); err != nil {
		return nil, err
	}
	if name == "" {
		return nil, types.ErrInvalidName
	}

	g := &types.Game{
		GameID:    newUUID(),
		Name:      name,
		CreatedAt: time.Now(),
	}
	_, err := b.db.Exec(
		"INSERT INTO games (game_id, name, created_at) VALUES (?, ?, ?)",
		g.GameID, g.Name, g.CreatedAt.Format(time.RFC3339))
	if err != nil {
		return nil, fmt.Errorf("inserting game: %w", err)
	}
	return g, nil
}

// GetGame retrieves a game by ID. Returns ErrNotFound when absent.
func (b *Backend) GetGame(gameID string) (*types.Game, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if err := b.checkAttached(); err != nil {
		return nil, err
	}

	var g types.Game
	var createdAt string
	err := b.db.QueryRow(
		"SELECT game_id, name, created_at FROM games WHERE game_id = ?", gameID).
		Scan(&g.GameID, &g.Name, &createdAt)
	if err == sql.ErrNoRows {
		return nil, types.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scanning game: %w", err)
	}
	g.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	return &g, nil
}

// ListGames returns all games in creation order.
func (b *Backend) ListGames() ([]*types.Game, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if err := b.checkAttached(); err != nil {
		return nil, err
	}

	rows, err := b.db.Query("SELECT game_id, name, created_at FROM games ORDER BY rowid")
	if err != nil {
		return nil, fmt.Errorf("fetching games: %w", err)
	}
	defer rows.Close()

	var results []*types.Game
	for rows.Next() {
		var g types.Game
		var createdAt string
		if err := rows.Scan(&g.GameID, &g.Name, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning game: %w", err)
		}
		g.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		results = append(results, &g)
	}
	return results, rows.Err()
}

// DeleteGame removes the game and everything scoped to it: entities,
// threads, playthroughs, and statuses.
func (b *Backend) DeleteGame(gameID string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.checkAttached(); err != nil {
		return err
	}

	var exists int
	if err := b.db.QueryRow(
		"SELECT 1 FROM games WHERE game_id = ?", gameID).Scan(&exists); err == sql.ErrNoRows {
		return types.ErrNotFound
	} else if err != nil {
		return fmt.Errorf("checking game: %w", err)
	}

	if _, err := b.db.Exec(
		"DELETE FROM statuses WHERE playthrough_id IN (SELECT playthrough_id FROM playthroughs WHERE game_id = ?)",
		gameID); err != nil {
		return fmt.Errorf("deleting game statuses: %w", err)
	}
	if _, err := b.db.Exec("DELETE FROM playthroughs WHERE game_id = ?", gameID); err != nil {
		return fmt.Errorf("deleting game playthroughs: %w", err)
	}
	if _, err := b.db.Exec("DELETE FROM threads WHERE game_id = ?", gameID); err != nil {
		return fmt.Errorf("deleting game threads: %w", err)
	}
	if _, err := b.db.Exec("DELETE FROM entities WHERE game_id = ?", gameID); err != nil {
		return fmt.Errorf("deleting game entities: %w", err)
	}
	if _, err := b.db.Exec("DELETE FROM games WHERE game_id = ?", gameID); err != nil {
		return fmt.Errorf("deleting game: %w", err)
	}
	return nil
}
