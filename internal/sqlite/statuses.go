package sqlite

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/sagewell/waymark/pkg/types"
)

// SetStatus records a status for an entity within a playthrough. The
// value must belong to the entity kind's status set; stateless kinds
// (place, map) are rejected with ErrStateless. The entity must belong to
// the playthrough's game.
func (b *Backend) SetStatus(playthroughID string, id types.EntityID, value string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.checkAttached(); err != nil {
		return err
	}
	if !id.Valid() {
		return types.ErrInvalidID
	}
	if !id.Kind.Stateful() {
		return types.ErrStateless
	}
	if !id.Kind.ValidStatus(value) {
		return fmt.Errorf("%w: %q for kind %s", types.ErrInvalidStatus, value, id.Kind)
	}

	var gameID string
	err := b.db.QueryRow(
		"SELECT game_id FROM playthroughs WHERE playthrough_id = ?", playthroughID).Scan(&gameID)
	if err == sql.ErrNoRows {
		return fmt.Errorf("playthrough %s: %w", playthroughID, types.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("checking playthrough: %w", err)
	}
	var got string
	err = b.db.QueryRow(
		"SELECT game_id FROM entities WHERE entity_id = ?", id.String()).Scan(&got)
	if err == sql.ErrNoRows {
		return fmt.Errorf("entity %s: %w", id, types.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("checking entity: %w", err)
	}
	if got != gameID {
		return types.ErrCrossGame
	}

	_, err = b.db.Exec(`
		INSERT INTO statuses (playthrough_id, entity_id, value, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(playthrough_id, entity_id) DO UPDATE SET
			value = excluded.value,
			updated_at = excluded.updated_at`,
		playthroughID, id.String(), value, time.Now().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("upserting status: %w", err)
	}
	return nil
}

// GetStatus returns the effective status: the stored row when one
// exists, the kind default otherwise. Stateless kinds return ErrStateless.
func (b *Backend) GetStatus(playthroughID string, id types.EntityID) (string, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if err := b.checkAttached(); err != nil {
		return "", err
	}
	if !id.Valid() {
		return "", types.ErrInvalidID
	}
	if !id.Kind.Stateful() {
		return "", types.ErrStateless
	}

	var value string
	err := b.db.QueryRow(
		"SELECT value FROM statuses WHERE playthrough_id = ? AND entity_id = ?",
		playthroughID, id.String()).Scan(&value)
	if err == sql.ErrNoRows {
		return id.Kind.DefaultStatus(), nil
	}
	if err != nil {
		return "", fmt.Errorf("scanning status: %w", err)
	}
	return value, nil
}

// ListStatuses returns a playthrough's explicit status rows in insertion
// order. Entities with no row are absent; callers apply kind defaults.
func (b *Backend) ListStatuses(playthroughID string) ([]*types.Status, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if err := b.checkAttached(); err != nil {
		return nil, err
	}

	rows, err := b.db.Query(
		"SELECT playthrough_id, entity_id, value, updated_at FROM statuses WHERE playthrough_id = ? ORDER BY rowid",
		playthroughID)
	if err != nil {
		return nil, fmt.Errorf("fetching statuses: %w", err)
	}
	defer rows.Close()

	var results []*types.Status
	for rows.Next() {
		var s types.Status
		var idStr, updatedAt string
		if err := rows.Scan(&s.PlaythroughID, &idStr, &s.Value, &updatedAt); err != nil {
			return nil, fmt.Errorf("scanning status: %w", err)
		}
		if s.EntityID, err = types.ParseEntityID(idStr); err != nil {
			return nil, fmt.Errorf("parsing stored entity id: %w", err)
		}
		s.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)
		results = append(results, &s)
	}
	return results, rows.Err()
}
