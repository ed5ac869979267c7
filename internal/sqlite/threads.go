package sqlite

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/sagewell/waymark/pkg/types"
)

// SaveThread creates or updates a thread. Both endpoints must exist and
// belong to the thread's game; a playthrough scope must name a
// playthrough of the same game.
func (b *Backend) SaveThread(t *types.Thread) (string, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.checkAttached(); err != nil {
		return "", err
	}
	if err := t.Validate(); err != nil {
		return "", err
	}

	for _, endpoint := range []types.EntityID{t.FromID, t.ToID} {
		var got string
		err := b.db.QueryRow(
			"SELECT game_id FROM entities WHERE entity_id = ?", endpoint.String()).Scan(&got)
		if err == sql.ErrNoRows {
			return "", fmt.Errorf("endpoint %s: %w", endpoint, types.ErrInvalidEndpoint)
		}
		if err != nil {
			return "", fmt.Errorf("checking endpoint: %w", err)
		}
		if got != t.GameID {
			return "", types.ErrCrossGame
		}
	}
	if t.PlaythroughID != nil {
		var got string
		err := b.db.QueryRow(
			"SELECT game_id FROM playthroughs WHERE playthrough_id = ?", *t.PlaythroughID).Scan(&got)
		if err == sql.ErrNoRows {
			return "", fmt.Errorf("playthrough %s: %w", *t.PlaythroughID, types.ErrNotFound)
		}
		if err != nil {
			return "", fmt.Errorf("checking playthrough: %w", err)
		}
		if got != t.GameID {
			return "", types.ErrCrossGame
		}
	}

	if t.ThreadID == "" {
		t.ThreadID = newUUID()
		t.CreatedAt = time.Now()
	}

	var scope sql.NullString
	if t.PlaythroughID != nil {
		scope = sql.NullString{String: *t.PlaythroughID, Valid: true}
	}
	_, err := b.db.Exec(`
		INSERT INTO threads (thread_id, game_id, label, from_id, to_id, playthrough_id, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(thread_id) DO UPDATE SET
			label = excluded.label,
			from_id = excluded.from_id,
			to_id = excluded.to_id,
			playthrough_id = excluded.playthrough_id`,
		t.ThreadID, t.GameID, t.Label, t.FromID.String(), t.ToID.String(), scope,
		t.CreatedAt.Format(time.RFC3339))
	if err != nil {
		return "", fmt.Errorf("upserting thread: %w", err)
	}
	return t.ThreadID, nil
}

// GetThread retrieves a thread by ID.
func (b *Backend) GetThread(threadID string) (*types.Thread, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if err := b.checkAttached(); err != nil {
		return nil, err
	}
	if threadID == "" {
		return nil, types.ErrInvalidID
	}

	row := b.db.QueryRow(
		"SELECT thread_id, game_id, label, from_id, to_id, playthrough_id, created_at FROM threads WHERE thread_id = ?",
		threadID)
	return scanThread(row)
}

func scanThread(row scannable) (*types.Thread, error) {
	var t types.Thread
	var fromStr, toStr, createdAt string
	var scope sql.NullString
	err := row.Scan(&t.ThreadID, &t.GameID, &t.Label, &fromStr, &toStr, &scope, &createdAt)
	if err == sql.ErrNoRows {
		return nil, types.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scanning thread: %w", err)
	}
	if t.FromID, err = types.ParseEntityID(fromStr); err != nil {
		return nil, fmt.Errorf("parsing stored from id: %w", err)
	}
	if t.ToID, err = types.ParseEntityID(toStr); err != nil {
		return nil, fmt.Errorf("parsing stored to id: %w", err)
	}
	if scope.Valid {
		t.PlaythroughID = &scope.String
	}
	t.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	return &t, nil
}

// ListThreads returns a game's threads in declaration (insertion) order.
// A non-empty label filters to that label. A non-empty playthroughID
// returns game-level threads plus threads scoped to that playthrough; an
// empty one returns game-level threads only.
func (b *Backend) ListThreads(gameID, label, playthroughID string) ([]*types.Thread, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if err := b.checkAttached(); err != nil {
		return nil, err
	}

	query := "SELECT thread_id, game_id, label, from_id, to_id, playthrough_id, created_at FROM threads WHERE game_id = ?"
	args := []any{gameID}
	if label != "" {
		if !types.ValidLabel(label) {
			return nil, types.ErrInvalidLabel
		}
		query += " AND label = ?"
		args = append(args, label)
	}
	if playthroughID != "" {
		query += " AND (playthrough_id IS NULL OR playthrough_id = ?)"
		args = append(args, playthroughID)
	} else {
		query += " AND playthrough_id IS NULL"
	}
	query += " ORDER BY rowid"

	rows, err := b.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("fetching threads: %w", err)
	}
	defer rows.Close()

	var results []*types.Thread
	for rows.Next() {
		t, err := scanThread(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, t)
	}
	return results, rows.Err()
}

// DeleteThread removes a thread by ID.
func (b *Backend) DeleteThread(threadID string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.checkAttached(); err != nil {
		return err
	}
	if threadID == "" {
		return types.ErrInvalidID
	}

	var exists int
	if err := b.db.QueryRow(
		"SELECT 1 FROM threads WHERE thread_id = ?", threadID).Scan(&exists); err == sql.ErrNoRows {
		return types.ErrNotFound
	} else if err != nil {
		return fmt.Errorf("checking thread: %w", err)
	}
	if _, err := b.db.Exec("DELETE FROM threads WHERE thread_id = ?", threadID); err != nil {
		return fmt.Errorf("deleting thread: %w", err)
	}
	return nil
}
