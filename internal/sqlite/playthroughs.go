package sqlite

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/sagewell/waymark/pkg/types"
)

// CreatePlaythrough starts a new run of a game.
func (b *Backend) CreatePlaythrough(gameID, name string) (*types.Playthrough, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.checkAttached(); err != nil {
		return nil, err
	}
	if name == "" {
		return nil, types.ErrInvalidName
	}

	var exists int
	if err := b.db.QueryRow(
		"SELECT 1 FROM games WHERE game_id = ?", gameID).Scan(&exists); err == sql.ErrNoRows {
		return nil, fmt.Errorf("game %s: %w", gameID, types.ErrNotFound)
	} else if err != nil {
		return nil, fmt.Errorf("checking game: %w", err)
	}

	pt := &types.Playthrough{
		PlaythroughID: newUUID(),
		GameID:        gameID,
		Name:          name,
		CreatedAt:     time.Now(),
	}
	_, err := b.db.Exec(
		"INSERT INTO playthroughs (playthrough_id, game_id, name, position_id, created_at) VALUES (?, ?, ?, NULL, ?)",
		pt.PlaythroughID, pt.GameID, pt.Name, pt.CreatedAt.Format(time.RFC3339))
	if err != nil {
		return nil, fmt.Errorf("inserting playthrough: %w", err)
	}
	return pt, nil
}

// GetPlaythrough retrieves a playthrough by ID.
func (b *Backend) GetPlaythrough(playthroughID string) (*types.Playthrough, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if err := b.checkAttached(); err != nil {
		return nil, err
	}

	row := b.db.QueryRow(
		"SELECT playthrough_id, game_id, name, position_id, created_at FROM playthroughs WHERE playthrough_id = ?",
		playthroughID)
	return scanPlaythrough(row)
}

func scanPlaythrough(row scannable) (*types.Playthrough, error) {
	var pt types.Playthrough
	var createdAt string
	var position sql.NullString
	err := row.Scan(&pt.PlaythroughID, &pt.GameID, &pt.Name, &position, &createdAt)
	if err == sql.ErrNoRows {
		return nil, types.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scanning playthrough: %w", err)
	}
	if position.Valid {
		pos, err := types.ParseEntityID(position.String)
		if err != nil {
			return nil, fmt.Errorf("parsing stored position id: %w", err)
		}
		pt.PositionID = &pos
	}
	pt.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	return &pt, nil
}

// ListPlaythroughs returns a game's playthroughs in creation order.
func (b *Backend) ListPlaythroughs(gameID string) ([]*types.Playthrough, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if err := b.checkAttached(); err != nil {
		return nil, err
	}

	rows, err := b.db.Query(
		"SELECT playthrough_id, game_id, name, position_id, created_at FROM playthroughs WHERE game_id = ? ORDER BY rowid",
		gameID)
	if err != nil {
		return nil, fmt.Errorf("fetching playthroughs: %w", err)
	}
	defer rows.Close()

	var results []*types.Playthrough
	for rows.Next() {
		pt, err := scanPlaythrough(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, pt)
	}
	return results, rows.Err()
}

// DeletePlaythrough removes a playthrough, its statuses, and any threads
// scoped to it.
func (b *Backend) DeletePlaythrough(playthroughID string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.checkAttached(); err != nil {
		return err
	}

	var exists int
	if err := b.db.QueryRow(
		"SELECT 1 FROM playthroughs WHERE playthrough_id = ?", playthroughID).Scan(&exists); err == sql.ErrNoRows {
		return types.ErrNotFound
	} else if err != nil {
		return fmt.Errorf("checking playthrough: %w", err)
	}

	if _, err := b.db.Exec("DELETE FROM statuses WHERE playthrough_id = ?", playthroughID); err != nil {
		return fmt.Errorf("deleting playthrough statuses: %w", err)
	}
	if _, err := b.db.Exec("DELETE FROM threads WHERE playthrough_id = ?", playthroughID); err != nil {
		return fmt.Errorf("deleting playthrough threads: %w", err)
	}
	if _, err := b.db.Exec("DELETE FROM playthroughs WHERE playthrough_id = ?", playthroughID); err != nil {
		return fmt.Errorf("deleting playthrough: %w", err)
	}
	return nil
}

// SetPosition records the player's current place; nil clears it. The
// place must belong to the playthrough's game.
func (b *Backend) SetPosition(playthroughID string, placeID *types.EntityID) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.checkAttached(); err != nil {
		return err
	}

	var gameID string
	err := b.db.QueryRow(
		"SELECT game_id FROM playthroughs WHERE playthrough_id = ?", playthroughID).Scan(&gameID)
	if err == sql.ErrNoRows {
		return types.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("checking playthrough: %w", err)
	}

	var position sql.NullString
	if placeID != nil {
		if err := b.checkPlaceInGame(*placeID, gameID); err != nil {
			return err
		}
		position = sql.NullString{String: placeID.String(), Valid: true}
	}
	if _, err := b.db.Exec(
		"UPDATE playthroughs SET position_id = ? WHERE playthrough_id = ?",
		position, playthroughID); err != nil {
		return fmt.Errorf("updating position: %w", err)
	}
	return nil
}
