package sqlite

// JSONL export of a game's records, using the temp-file, fsync, rename
// pattern so a crashed export never leaves a half-written file.

import (
	"bufio"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/sagewell/waymark/pkg/types"
)

// ExportGame writes entities.jsonl, threads.jsonl, playthroughs.jsonl,
// and statuses.jsonl for one game under dir, creating dir if needed.
func (b *Backend) ExportGame(gameID, dir string) error {
	b.mu.RLock()
	defer b.mu.RUnlock()
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
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create export dir: %w", err)
	}

	entities, err := b.listEntitiesLocked(gameID)
	if err != nil {
		return err
	}
	if err := writeJSONL(filepath.Join(dir, "entities.jsonl"), marshalAll(entities)); err != nil {
		return err
	}

	threads, err := b.listAllThreadsLocked(gameID)
	if err != nil {
		return err
	}
	if err := writeJSONL(filepath.Join(dir, "threads.jsonl"), marshalAll(threads)); err != nil {
		return err
	}

	playthroughs, err := b.listPlaythroughsLocked(gameID)
	if err != nil {
		return err
	}
	if err := writeJSONL(filepath.Join(dir, "playthroughs.jsonl"), marshalAll(playthroughs)); err != nil {
		return err
	}

	var statuses []*types.Status
	for _, pt := range playthroughs {
		rows, err := b.listStatusesLocked(pt.PlaythroughID)
		if err != nil {
			return err
		}
		statuses = append(statuses, rows...)
	}
	return writeJSONL(filepath.Join(dir, "statuses.jsonl"), marshalAll(statuses))
}

// Locked list helpers. Callers must hold b.mu; these re-run the standard
// queries without re-locking so ExportGame can read everything under one
// read lock. Unlike ListThreads, the thread query includes playthrough-
// scoped threads: an export is a full copy.

func (b *Backend) listEntitiesLocked(gameID string) ([]*types.Entity, error) {
	rows, err := b.db.Query(
		"SELECT entity_id, game_id, name, description, location_id, image_ref, created_at, updated_at FROM entities WHERE game_id = ? ORDER BY rowid",
		gameID)
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

func (b *Backend) listAllThreadsLocked(gameID string) ([]*types.Thread, error) {
	rows, err := b.db.Query(
		"SELECT thread_id, game_id, label, from_id, to_id, playthrough_id, created_at FROM threads WHERE game_id = ? ORDER BY rowid",
		gameID)
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

func (b *Backend) listPlaythroughsLocked(gameID string) ([]*types.Playthrough, error) {
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

func (b *Backend) listStatusesLocked(playthroughID string) ([]*types.Status, error) {
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
		id, err := types.ParseEntityID(idStr)
		if err != nil {
			return nil, fmt.Errorf("parsing stored entity id: %w", err)
		}
		s.EntityID = id
		s.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)
		results = append(results, &s)
	}
	return results, rows.Err()
}

// marshalAll renders records as JSON lines, skipping any that fail to
// marshal (none of the store types can in practice).
func marshalAll[T any](records []T) []json.RawMessage {
	out := make([]json.RawMessage, 0, len(records))
	for _, r := range records {
		raw, err := json.Marshal(r)
		if err != nil {
			continue
		}
		out = append(out, raw)
	}
	return out
}

// writeJSONL atomically writes records to path, one JSON document per
// line, via temp file, fsync, rename.
func writeJSONL(path string, records []json.RawMessage) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".jsonl-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()

	w := bufio.NewWriter(tmp)
	for _, rec := range records {
		if _, err := w.Write(rec); err != nil {
			tmp.Close()
			os.Remove(tmpName)
			return fmt.Errorf("writing record: %w", err)
		}
		if err := w.WriteByte('\n'); err != nil {
			tmp.Close()
			os.Remove(tmpName)
			return fmt.Errorf("writing newline: %w", err)
		}
	}
	if err := w.Flush(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("flushing buffer: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("syncing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}
