// Package worldfile imports a game authored as a single YAML document:
// places, paths, quests, items, insights, people, and the threads
// between them, referenced by file-local keys.
//
// Unlike the engine, which degrades gracefully on malformed content,
// import is an authoring-time operation and fails loudly: duplicate
// keys, unknown references, and paths not between exactly two places are
// errors.
package worldfile

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/sagewell/waymark/pkg/types"
)

// World is the top-level YAML document.
type World struct {
	Name     string       `yaml:"name"`
	Places   []EntityDef  `yaml:"places"`
	Paths    []PathDef    `yaml:"paths"`
	Quests   []EntityDef  `yaml:"quests"`
	Items    []EntityDef  `yaml:"items"`
	Insights []EntityDef  `yaml:"insights"`
	People   []EntityDef  `yaml:"people"`
	Maps     []EntityDef  `yaml:"maps"`
	Threads  []ThreadDef  `yaml:"threads"`
}

// EntityDef authors one entity. Key is file-local and becomes a
// generated entity ID on import. At references a place key; Requires
// lists prerequisite keys in order, each becoming a requires thread.
type EntityDef struct {
	Key         string   `yaml:"key"`
	Name        string   `yaml:"name"`
	Description string   `yaml:"description"`
	At          string   `yaml:"at"`
	Image       string   `yaml:"image"`
	Status      string   `yaml:"status"`
	Requires    []string `yaml:"requires"`
}

// PathDef authors a path entity plus its two connects threads.
type PathDef struct {
	Key      string    `yaml:"key"`
	Name     string    `yaml:"name"`
	Between  [2]string `yaml:"between"`
	Status   string    `yaml:"status"`
	Requires []string  `yaml:"requires"`
}

// ThreadDef authors one extra thread between two keys.
type ThreadDef struct {
	Label string `yaml:"label"`
	From  string `yaml:"from"`
	To    string `yaml:"to"`
}

// Parse decodes a world document, rejecting unknown fields.
func Parse(data []byte) (*World, error) {
	var w World
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&w); err != nil {
		return nil, fmt.Errorf("parse worldfile: %w", err)
	}
	if w.Name == "" {
		return nil, fmt.Errorf("worldfile: %w: missing name", types.ErrInvalidName)
	}
	return &w, nil
}

// ParseFile reads and parses a world document from disk.
func ParseFile(path string) (*World, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read worldfile: %w", err)
	}
	return Parse(data)
}

// Result reports what an import created.
type Result struct {
	GameID string
	// PlaythroughID is set when a playthrough was created to carry
	// authored statuses.
	PlaythroughID string
	// IDs maps file-local keys to the generated entity IDs.
	IDs map[string]types.EntityID
	// ThreadIDs lists created threads in declaration order.
	ThreadIDs []string
}

// Import creates the world's game, entities, and threads in store.
// Entities are created first (places, then paths, quests, items,
// insights, people, maps), then connects threads for paths, then
// requires threads in declaration order, then extra threads. When
// playthroughName is non-empty, a playthrough of that name is created in
// the new game and authored status values are applied to it; otherwise
// they are ignored.
func Import(store types.Store, w *World, playthroughName string) (*Result, error) {
	game, err := store.CreateGame(w.Name)
	if err != nil {
		return nil, fmt.Errorf("create game: %w", err)
	}
	res := &Result{GameID: game.GameID, IDs: make(map[string]types.EntityID)}

	create := func(def EntityDef, kind types.EntityKind) error {
		if def.Key == "" {
			return fmt.Errorf("worldfile: %s %q: missing key", kind, def.Name)
		}
		if _, dup := res.IDs[def.Key]; dup {
			return fmt.Errorf("worldfile: duplicate key %q", def.Key)
		}
		e := &types.Entity{
			ID:          types.EntityID{Kind: kind},
			GameID:      game.GameID,
			Name:        def.Name,
			Description: def.Description,
			ImageRef:    def.Image,
		}
		if def.At != "" {
			at, ok := res.IDs[def.At]
			if !ok || at.Kind != types.KindPlace {
				return fmt.Errorf("worldfile: %q references unknown place key %q", def.Key, def.At)
			}
			e.LocationID = &at
		}
		id, err := store.SaveEntity(e)
		if err != nil {
			return fmt.Errorf("create %s %q: %w", kind, def.Key, err)
		}
		res.IDs[def.Key] = id
		return nil
	}

	for _, def := range w.Places {
		if err := create(def, types.KindPlace); err != nil {
			return nil, err
		}
	}
	for _, def := range w.Paths {
		if err := create(EntityDef{Key: def.Key, Name: def.Name}, types.KindPath); err != nil {
			return nil, err
		}
	}
	for _, def := range w.Quests {
		if err := create(def, types.KindQuest); err != nil {
			return nil, err
		}
	}
	for _, def := range w.Items {
		if err := create(def, types.KindItem); err != nil {
			return nil, err
		}
	}
	for _, def := range w.Insights {
		if err := create(def, types.KindInsight); err != nil {
			return nil, err
		}
	}
	for _, def := range w.People {
		if err := create(def, types.KindPerson); err != nil {
			return nil, err
		}
	}
	for _, def := range w.Maps {
		if err := create(def, types.KindMap); err != nil {
			return nil, err
		}
	}

	link := func(label string, fromKey, toKey string) error {
		from, ok := res.IDs[fromKey]
		if !ok {
			return fmt.Errorf("worldfile: thread references unknown key %q", fromKey)
		}
		to, ok := res.IDs[toKey]
		if !ok {
			return fmt.Errorf("worldfile: thread references unknown key %q", toKey)
		}
		id, err := store.SaveThread(&types.Thread{
			GameID: game.GameID,
			Label:  label,
			FromID: from,
			ToID:   to,
		})
		if err != nil {
			return fmt.Errorf("create %s thread %s -> %s: %w", label, fromKey, toKey, err)
		}
		res.ThreadIDs = append(res.ThreadIDs, id)
		return nil
	}

	// Path connects threads: place — path — place.
	for _, def := range w.Paths {
		for _, placeKey := range def.Between {
			if placeKey == "" {
				return nil, fmt.Errorf("worldfile: path %q must run between two places", def.Key)
			}
			at, ok := res.IDs[placeKey]
			if !ok || at.Kind != types.KindPlace {
				return nil, fmt.Errorf("worldfile: path %q references unknown place key %q", def.Key, placeKey)
			}
			if err := link(types.ThreadConnects, def.Key, placeKey); err != nil {
				return nil, err
			}
		}
	}

	// Requires threads in declaration order.
	requires := func(key string, targets []string) error {
		for _, target := range targets {
			if err := link(types.ThreadRequires, key, target); err != nil {
				return err
			}
		}
		return nil
	}
	for _, defs := range [][]EntityDef{w.Quests, w.Items, w.Insights, w.People} {
		for _, def := range defs {
			if err := requires(def.Key, def.Requires); err != nil {
				return nil, err
			}
		}
	}
	for _, def := range w.Paths {
		if err := requires(def.Key, def.Requires); err != nil {
			return nil, err
		}
	}

	for _, def := range w.Threads {
		if err := link(def.Label, def.From, def.To); err != nil {
			return nil, err
		}
	}

	// Authored statuses apply only when importing with a playthrough.
	if playthroughName != "" {
		pt, err := store.CreatePlaythrough(game.GameID, playthroughName)
		if err != nil {
			return nil, fmt.Errorf("create playthrough: %w", err)
		}
		res.PlaythroughID = pt.PlaythroughID
		apply := func(key, status string) error {
			if status == "" {
				return nil
			}
			if err := store.SetStatus(pt.PlaythroughID, res.IDs[key], status); err != nil {
				return fmt.Errorf("set status for %q: %w", key, err)
			}
			return nil
		}
		for _, defs := range [][]EntityDef{w.Quests, w.Items, w.Insights, w.People} {
			for _, def := range defs {
				if err := apply(def.Key, def.Status); err != nil {
					return nil, err
				}
			}
		}
		for _, def := range w.Paths {
			if err := apply(def.Key, def.Status); err != nil {
				return nil, err
			}
		}
	}

	return res, nil
}
