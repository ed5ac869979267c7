package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sagewell/waymark/pkg/types"
)

func TestAvailability_NoRequirementsMeansAvailable(t *testing.T) {
	w := newWorld()
	q := w.entity(types.KindQuest, "Q")

	got := ResolveAvailability(w.snap, q)
	assert.True(t, got.Available)
	assert.Empty(t, got.Unmet)
}

func TestAvailability_UnknownEntityIsUnavailable(t *testing.T) {
	w := newWorld()
	got := ResolveAvailability(w.snap, types.NewEntityID(types.KindQuest))
	assert.False(t, got.Available)
	assert.Empty(t, got.Unmet)
}

func TestAvailability_SatisfyingStatuses(t *testing.T) {
	tests := []struct {
		name   string
		kind   types.EntityKind
		status string
		want   bool
	}{
		{"quest completed satisfies", types.KindQuest, types.QuestCompleted, true},
		{"quest active does not", types.KindQuest, types.QuestActive, false},
		{"quest abandoned does not", types.KindQuest, types.QuestAbandoned, false},
		{"insight known satisfies", types.KindInsight, types.InsightKnown, true},
		{"insight unknown does not", types.KindInsight, types.InsightUnknown, false},
		{"item acquired satisfies", types.KindItem, types.ItemAcquired, true},
		{"item used satisfies", types.KindItem, types.ItemUsed, true},
		{"item lost does not", types.KindItem, types.ItemLost, false},
		{"person alive satisfies", types.KindPerson, types.PersonAlive, true},
		{"person dead does not", types.KindPerson, types.PersonDead, false},
		{"path open satisfies", types.KindPath, types.PathOpen, true},
		{"path locked does not", types.KindPath, types.PathLocked, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := newWorld()
			q := w.entity(types.KindQuest, "Q")
			target := w.entity(tt.kind, "target")
			w.requires(q, target)
			w.status(target, tt.status)

			got := ResolveAvailability(w.snap, q)
			assert.Equal(t, tt.want, got.Available)
			if !tt.want {
				assert.Equal(t, []types.EntityID{target}, got.Unmet)
			}
		})
	}
}

func TestAvailability_DefaultStatusApplies(t *testing.T) {
	w := newWorld()
	q := w.entity(types.KindQuest, "Q")
	person := w.entity(types.KindPerson, "guide")
	insight := w.entity(types.KindInsight, "secret")
	w.requires(q, person)

	// Person defaults to alive: satisfied without a status row.
	got := ResolveAvailability(w.snap, q)
	assert.True(t, got.Available)

	// Insight defaults to unknown: unsatisfied without a status row.
	w.requires(q, insight)
	got = ResolveAvailability(w.snap, q)
	assert.False(t, got.Available)
	assert.Equal(t, []types.EntityID{insight}, got.Unmet)
}

func TestAvailability_StatelessTargetPassesOnOwnRequirements(t *testing.T) {
	w := newWorld()
	q := w.entity(types.KindQuest, "Q")
	place := w.entity(types.KindPlace, "vault")
	w.requires(q, place)

	// A place has no status; the requirement holds vacuously.
	got := ResolveAvailability(w.snap, q)
	assert.True(t, got.Available)

	// Unless the place has unmet requirements of its own.
	key := w.entity(types.KindItem, "key")
	w.requires(place, key)
	got = ResolveAvailability(w.snap, q)
	assert.False(t, got.Available)
	assert.Equal(t, []types.EntityID{place}, got.Unmet)
}

func TestAvailability_MissingTargetIsUnsatisfied(t *testing.T) {
	w := newWorld()
	q := w.entity(types.KindQuest, "Q")
	ghost := types.NewEntityID(types.KindItem)
	w.requires(q, ghost)

	got := ResolveAvailability(w.snap, q)
	assert.False(t, got.Available)
	assert.Equal(t, []types.EntityID{ghost}, got.Unmet)
}

func TestAvailability_ResolvesTransitively(t *testing.T) {
	w := newWorld()
	q := w.entity(types.KindQuest, "Q")
	key := w.entity(types.KindItem, "key")
	clue := w.entity(types.KindInsight, "clue")
	w.requires(q, key)
	w.requires(key, clue)
	w.status(key, types.ItemAcquired)

	// The key's status satisfies, but its own requirement (the unknown
	// clue) does not resolve, so the chain fails.
	got := ResolveAvailability(w.snap, q)
	assert.False(t, got.Available)
	assert.Equal(t, []types.EntityID{key}, got.Unmet)

	w.status(clue, types.InsightKnown)
	got = ResolveAvailability(w.snap, q)
	assert.True(t, got.Available)
}

func TestAvailability_UnmetReportsDirectTargetsOnly(t *testing.T) {
	w := newWorld()
	q := w.entity(types.KindQuest, "Q")
	key := w.entity(types.KindItem, "key")
	clue := w.entity(types.KindInsight, "clue")
	deep := w.entity(types.KindInsight, "deep clue")
	w.requires(q, key)
	w.requires(q, clue)
	w.requires(clue, deep)
	w.status(key, types.ItemAcquired)

	// Duplicate direct requirement is reported once.
	w.requires(q, clue)

	got := ResolveAvailability(w.snap, q)
	assert.False(t, got.Available)
	// deep never appears: it blocks clue, not q, and order follows thread
	// declaration.
	assert.Equal(t, []types.EntityID{clue}, got.Unmet)
}

func TestAvailability_SelfCycleTerminates(t *testing.T) {
	w := newWorld()
	q := w.entity(types.KindQuest, "ouroboros")
	w.requires(q, q)
	w.status(q, types.QuestCompleted)

	got := ResolveAvailability(w.snap, q)
	assert.False(t, got.Available)
	assert.Equal(t, []types.EntityID{q}, got.Unmet)
}

func TestAvailability_MutualCycleTerminates(t *testing.T) {
	w := newWorld()
	a := w.entity(types.KindQuest, "A")
	b := w.entity(types.KindQuest, "B")
	w.requires(a, b)
	w.requires(b, a)
	w.status(a, types.QuestCompleted)
	w.status(b, types.QuestCompleted)

	// Fail-closed: every cycle member is unavailable even though each
	// one's status would satisfy on its own.
	gotA := ResolveAvailability(w.snap, a)
	gotB := ResolveAvailability(w.snap, b)
	assert.False(t, gotA.Available)
	assert.False(t, gotB.Available)
	assert.Equal(t, []types.EntityID{b}, gotA.Unmet)
	assert.Equal(t, []types.EntityID{a}, gotB.Unmet)
}

func TestAvailability_Monotonicity(t *testing.T) {
	// Satisfying one requirement never makes an available entity
	// unavailable.
	w := newWorld()
	q := w.entity(types.KindQuest, "Q")
	key := w.entity(types.KindItem, "key")
	clue := w.entity(types.KindInsight, "clue")
	w.requires(q, key)
	w.requires(q, clue)

	got := ResolveAvailability(w.snap, q)
	assert.False(t, got.Available)
	assert.Len(t, got.Unmet, 2)

	w.status(key, types.ItemAcquired)
	got = ResolveAvailability(w.snap, q)
	assert.False(t, got.Available)
	assert.Equal(t, []types.EntityID{clue}, got.Unmet)

	w.status(clue, types.InsightKnown)
	got = ResolveAvailability(w.snap, q)
	assert.True(t, got.Available)
}

func TestSatisfyingStatusTableIsExhaustive(t *testing.T) {
	// Every stateful kind needs a satisfying set, and every satisfying
	// value must belong to the kind's own status set. A kind added
	// without a mapping would silently satisfy every requirement.
	for _, kind := range types.AllKinds {
		set, ok := satisfyingStatuses[kind]
		assert.Equal(t, kind.Stateful(), ok, "kind %s", kind)
		for value := range set {
			assert.True(t, kind.ValidStatus(value), "kind %s value %s", kind, value)
		}
	}
}

func TestResolveAllAvailability(t *testing.T) {
	w := newWorld()
	shared := w.entity(types.KindItem, "shared key")
	a := w.entity(types.KindQuest, "A")
	b := w.entity(types.KindQuest, "B")
	w.requires(a, shared)
	w.requires(b, shared)
	w.status(shared, types.ItemAcquired)

	ghost := types.NewEntityID(types.KindQuest)
	got := ResolveAllAvailability(w.snap, []types.EntityID{a, b, ghost})

	assert.True(t, got[a].Available)
	assert.True(t, got[b].Available)
	assert.False(t, got[ghost].Available)
}
