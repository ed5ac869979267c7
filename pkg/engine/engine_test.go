package engine

import (
	"fmt"

	"github.com/sagewell/waymark/pkg/types"
)

// world builds snapshots for engine tests without a store. Entities and
// threads keep the order they are declared in, matching the insertion
// order a store would report.
type world struct {
	snap      *Snapshot
	threadSeq int
}

func newWorld() *world {
	return &world{
		snap: &Snapshot{
			GameID:        "g1",
			PlaythroughID: "pt1",
			Entities:      make(map[types.EntityID]*types.Entity),
			Statuses:      make(map[types.EntityID]string),
		},
	}
}

func (w *world) entity(kind types.EntityKind, name string) types.EntityID {
	id := types.NewEntityID(kind)
	w.snap.Entities[id] = &types.Entity{ID: id, GameID: w.snap.GameID, Name: name}
	w.snap.EntityOrder = append(w.snap.EntityOrder, id)
	return id
}

func (w *world) placed(kind types.EntityKind, name string, at types.EntityID) types.EntityID {
	id := w.entity(kind, name)
	w.snap.Entities[id].LocationID = &at
	return id
}

func (w *world) thread(label string, from, to types.EntityID) string {
	w.threadSeq++
	tid := fmt.Sprintf("t%d", w.threadSeq)
	w.snap.Threads = append(w.snap.Threads, &types.Thread{
		ThreadID: tid,
		GameID:   w.snap.GameID,
		Label:    label,
		FromID:   from,
		ToID:     to,
	})
	return tid
}

func (w *world) connects(from, to types.EntityID) string {
	return w.thread(types.ThreadConnects, from, to)
}

func (w *world) requires(from, to types.EntityID) string {
	return w.thread(types.ThreadRequires, from, to)
}

func (w *world) status(id types.EntityID, value string) {
	w.snap.Statuses[id] = value
}

func (w *world) position(id types.EntityID) {
	w.snap.Position = &id
}

// path wires a path entity between two places: the path entity plus its
// two connects threads. Returns the path ID and the two thread IDs.
func (w *world) path(name string, a, b types.EntityID) (types.EntityID, []string) {
	id := w.entity(types.KindPath, name)
	t1 := w.connects(id, a)
	t2 := w.connects(id, b)
	return id, []string{t1, t2}
}
