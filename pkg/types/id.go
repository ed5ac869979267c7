package types

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// EntityKind tags an entity ID with its type. The set is closed: parsing
// an ID with any other tag fails with ErrInvalidKind.
type EntityKind string

const (
	KindQuest   EntityKind = "quest"
	KindInsight EntityKind = "insight"
	KindItem    EntityKind = "item"
	KindPerson  EntityKind = "person"
	KindPlace   EntityKind = "place"
	KindMap     EntityKind = "map"
	KindPath    EntityKind = "path"
)

// AllKinds lists every entity kind in a fixed order. Used for exhaustive
// iteration and for validating kind tags.
var AllKinds = []EntityKind{
	KindQuest, KindInsight, KindItem, KindPerson, KindPlace, KindMap, KindPath,
}

// validKinds is the set of recognized kind tags.
var validKinds = map[EntityKind]bool{
	KindQuest:   true,
	KindInsight: true,
	KindItem:    true,
	KindPerson:  true,
	KindPlace:   true,
	KindMap:     true,
	KindPath:    true,
}

// Valid reports whether k is a recognized entity kind.
func (k EntityKind) Valid() bool {
	return validKinds[k]
}

// EntityID identifies an entity as a kind tag plus an opaque unique value.
// The canonical string form is "kind:uuid". The zero value is not a valid
// ID; IsZero distinguishes it from real IDs.
type EntityID struct {
	Kind EntityKind
	UID  string
}

// NewEntityID generates a fresh ID of the given kind using a UUID v7,
// falling back to v4 if v7 generation fails.
func NewEntityID(kind EntityKind) EntityID {
	id, err := uuid.NewV7()
	if err != nil {
		id = uuid.New()
	}
	return EntityID{Kind: kind, UID: id.String()}
}

// ParseEntityID parses the canonical "kind:uuid" form. A missing
// separator, unrecognized kind tag, or malformed UUID yields an error and
// a zero EntityID, never a partial value.
func ParseEntityID(s string) (EntityID, error) {
	kind, uid, ok := strings.Cut(s, ":")
	if !ok {
		return EntityID{}, fmt.Errorf("%w: %q", ErrInvalidID, s)
	}
	k := EntityKind(kind)
	if !k.Valid() {
		return EntityID{}, fmt.Errorf("%w: %q", ErrInvalidKind, kind)
	}
	if _, err := uuid.Parse(uid); err != nil {
		return EntityID{}, fmt.Errorf("%w: %q", ErrInvalidID, s)
	}
	return EntityID{Kind: k, UID: uid}, nil
}

// String returns the canonical "kind:uuid" form.
func (id EntityID) String() string {
	return string(id.Kind) + ":" + id.UID
}

// MarshalJSON renders the canonical string form.
func (id EntityID) MarshalJSON() ([]byte, error) {
	return json.Marshal(id.String())
}

// UnmarshalJSON parses the canonical string form.
func (id *EntityID) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseEntityID(s)
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}

// IsZero reports whether the ID is the zero value.
func (id EntityID) IsZero() bool {
	return id.Kind == "" && id.UID == ""
}

// Valid reports whether the ID has a recognized kind and a non-empty UID.
func (id EntityID) Valid() bool {
	return id.Kind.Valid() && id.UID != ""
}
