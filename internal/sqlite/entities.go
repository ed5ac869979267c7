package sqlite

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/sagewell/waymark/pkg/types"
)

// SaveEntity creates or updates an entity. A zero UID means create: the
// store generates an ID of the entity's kind. The entity's game must
// exist, and a location (when set) must name a place in the same game.
func (b *Backend) SaveEntity(e *types.Entity) (types.EntityID, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.checkAttached(); err != nil {
		return types.EntityID{}, err
	}

	isCreate := e.ID.UID == ""
	if isCreate {
		if !e.ID.Kind.Valid() {
			return types.EntityID{}, types.ErrInvalidKind
		}
		e.ID = types.NewEntityID(e.ID.Kind)
	}
	if err := e.Validate(); err != nil {
		return types.EntityID{}, err
	}

	var exists int
	if err := b.db.QueryRow(
		"SELECT 1 FROM games WHERE game_id = ?", e.GameID).Scan(&exists); err == sql.ErrNoRows {
		return types.EntityID{}, fmt.Errorf("game %s: %w", e.GameID, types.ErrNotFound)
	} else if err != nil {
		return types.EntityID{}, fmt.Errorf("checking game: %w", err)
	}
	if e.LocationID != nil {
		if err := b.checkPlaceInGame(*e.LocationID, e.GameID); err != nil {
			return types.EntityID{}, err
		}
	}

	now := time.Now()
	if isCreate {
		e.CreatedAt = now
	}
	e.UpdatedAt = now

	var location sql.NullString
	if e.LocationID != nil {
		location = sql.NullString{String: e.LocationID.String(), Valid: true}
	}
	_, err := b.db.Exec(`
		INSERT INTO entities (entity_id, game_id, kind, name, description, location_id, image_ref, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(entity_id) DO UPDATE SET
			name = excluded.name,
			description = excluded.description,
			location_id = excluded.location_id,
			image_ref = excluded.image_ref,
			updated_at = excluded.updated_at`,
		e.ID.String(), e.GameID, string(e.ID.Kind), e.Name, e.Description,
		location, e.ImageRef,
		e.CreatedAt.Format(time.RFC3339), e.UpdatedAt.Format(time.RFC3339))
	if err != nil {
		return types.EntityID{}, fmt.Errorf("upserting entity: %w", err)
	}
	return e.ID, nil
}

// checkPlaceInGame verifies that id names an existing place of gameID.
func (b *Backend) checkPlaceInGame(id types.EntityID, gameID string) error {
	if id.Kind != types.KindPlace {
		return types.ErrNotAPlace
	}
	var got string
	err := b.db.QueryRow(
		"SELECT game_id FROM entities WHERE entity_id = ?", id.String()).Scan(&got)
	if err == sql.ErrNoRows {
		return fmt.Errorf("place %s: %w", id, types.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("checking place: %w", err)
	}
	if got != gameID {
		return types.ErrCrossGame
	}
	return nil
}

// GetEntity retrieves an entity by ID. Returns ErrNotFound when absent
// and ErrInvalidID for a zero ID.
func (b *Backend) GetEntity(id types.EntityID) (*types.Entity, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if err := b.checkAttached(); err != nil {
		return nil, err
	}
	if !id.Valid() {
		return nil, types.ErrInvalidID
	}

	row := b.db.QueryRow(
		"SELECT entity_id, game_id, name, description, location_id, image_ref, created_at, updated_at FROM entities WHERE entity_id = ?",
		id.String())
	return scanEntity(row)
}

// scannable covers *sql.Row and *sql.Rows.
type scannable interface {
	Scan(dest ...any) error
}

func scanEntity(row scannable) (*types.Entity, error) {
	var e types.Entity
	var idStr, createdAt, updatedAt string
	var desc, location, imageRef sql.NullString
	err := row.Scan(&idStr, &e.GameID, &e.Name, &desc, &location, &imageRef, &createdAt, &updatedAt)
	if err == sql.ErrNoRows {
		return nil, types.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scanning entity: %w", err)
	}
	e.ID, err = types.ParseEntityID(idStr)
	if err != nil {
		return nil, fmt.Errorf("parsing stored entity id: %w", err)
	}
	if desc.Valid {
		e.Description = desc.String
	}
	if location.Valid {
		loc, err := types.ParseEntityID(location.String)
		if err != nil {
			return nil, fmt.Errorf("parsing stored location id: %w", err)
		}
		e.LocationID = &loc
	}
	if imageRef.Valid {
		e.ImageRef = imageRef.String
	}
	e.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	e.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)
	return &e, nil
}

// ListEntities returns a game's entities in insertion order, filtered to
// one kind when kind is non-empty.
func (b *Backend) ListEntities(gameID string, kind types.EntityKind) ([]*types.Entity, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if err := b.checkAttached(); err != nil {
		return nil, err
	}

	query := "SELECT entity_id, game_id, name, description, location_id, image_ref, created_at, updated_at FROM entities WHERE game_id = ?"
	args := []any{gameID}
	if kind != "" {
		if !kind.Valid() {
			return nil, types.ErrInvalidKind
		}
		query += " AND kind = ?"
		args = append(args, string(kind))
	}
	query += " ORDER BY rowid"

	rows, err := b.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("fetching entities: %w", err)
	}
	defer rows.Close()

	var results []*types.Entity
	for rows.Next() {
		e, err := scanEntity(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, e)
	}
	return results, rows.Err()
}

// DeleteEntity removes the entity, the threads touching it, its status
// rows, and clears location and position references to it.
func (b *Backend) DeleteEntity(id types.EntityID) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.checkAttached(); err != nil {
		return err
	}
	if !id.Valid() {
		return types.ErrInvalidID
	}

	idStr := id.String()
	var exists int
	if err := b.db.QueryRow(
		"SELECT 1 FROM entities WHERE entity_id = ?", idStr).Scan(&exists); err == sql.ErrNoRows {
		return types.ErrNotFound
	} else if err != nil {
		return fmt.Errorf("checking entity: %w", err)
	}

	if _, err := b.db.Exec(
		"DELETE FROM threads WHERE from_id = ? OR to_id = ?", idStr, idStr); err != nil {
		return fmt.Errorf("deleting entity threads: %w", err)
	}
	if _, err := b.db.Exec(
		"DELETE FROM statuses WHERE entity_id = ?", idStr); err != nil {
		return fmt.Errorf("deleting entity statuses: %w", err)
	}
	if _, err := b.db.Exec(
		"UPDATE entities SET location_id = NULL WHERE location_id = ?", idStr); err != nil {
		return fmt.Errorf("clearing location references: %w", err)
	}
	if _, err := b.db.Exec(
		"UPDATE playthroughs SET position_id = NULL WHERE position_id = ?", idStr); err != nil {
		return fmt.Errorf("clearing position references: %w", err)
	}
	if _, err := b.db.Exec("DELETE FROM entities WHERE entity_id = ?", idStr); err != nil {
		return fmt.Errorf("deleting entity: %w", err)
	}
	return nil
}
