package types

// Quest statuses. A quest progresses through these during a playthrough.
const (
	QuestAvailable = "available"
	QuestActive    = "active"
	QuestCompleted = "completed"
	QuestAbandoned = "abandoned"
)

// Insight statuses.
const (
	InsightUnknown    = "unknown"
	InsightKnown      = "known"
	InsightIrrelevant = "irrelevant"
)

// Item statuses.
const (
	ItemNotAcquired = "not-acquired"
	ItemAcquired    = "acquired"
	ItemUsed        = "used"
	ItemLost        = "lost"
)

// Person statuses.
const (
	PersonAlive   = "alive"
	PersonDead    = "dead"
	PersonUnknown = "unknown"
)

// Path statuses. A path's status gates the edge it represents; only an
// open path is traversable.
const (
	PathOpen   = "open"
	PathLocked = "locked"
	PathHidden = "hidden"
)

// validStatuses maps each stateful kind to its closed status set.
// Places and Maps carry no status and have no entry.
var validStatuses = map[EntityKind]map[string]bool{
	KindQuest: {
		QuestAvailable: true,
		QuestActive:    true,
		QuestCompleted: true,
		QuestAbandoned: true,
	},
	KindInsight: {
		InsightUnknown:    true,
		InsightKnown:      true,
		InsightIrrelevant: true,
	},
	KindItem: {
		ItemNotAcquired: true,
		ItemAcquired:    true,
		ItemUsed:        true,
		ItemLost:        true,
	},
	KindPerson: {
		PersonAlive:   true,
		PersonDead:    true,
		PersonUnknown: true,
	},
	KindPath: {
		PathOpen:   true,
		PathLocked: true,
		PathHidden: true,
	},
}

// defaultStatuses gives the status assumed when a playthrough has no row
// for an entity. A person is presumed alive until marked otherwise.
var defaultStatuses = map[EntityKind]string{
	KindQuest:   QuestAvailable,
	KindInsight: InsightUnknown,
	KindItem:    ItemNotAcquired,
	KindPerson:  PersonAlive,
	KindPath:    PathOpen,
}

// Stateful reports whether the kind carries a per-playthrough status.
func (k EntityKind) Stateful() bool {
	_, ok := validStatuses[k]
	return ok
}

// ValidStatus reports whether value belongs to the kind's status set.
// Always false for stateless kinds.
func (k EntityKind) ValidStatus(value string) bool {
	return validStatuses[k][value]
}

// DefaultStatus returns the status assumed when no row exists for an
// entity of this kind. Stateless kinds return the empty string.
func (k EntityKind) DefaultStatus() string {
	return defaultStatuses[k]
}
