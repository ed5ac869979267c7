package types

import "errors"

// Store lifecycle errors.
var (
	ErrStoreDetached   = errors.New("store is detached")
	ErrAlreadyAttached = errors.New("store is already attached")
)

// Validation and lookup errors.
var (
	ErrNotFound        = errors.New("not found")
	ErrInvalidID       = errors.New("invalid entity id")
	ErrInvalidKind     = errors.New("unknown entity kind")
	ErrInvalidName     = errors.New("name must not be empty")
	ErrInvalidStatus   = errors.New("invalid status for entity kind")
	ErrStateless       = errors.New("entity kind carries no status")
	ErrInvalidLabel    = errors.New("unknown thread label")
	ErrInvalidEndpoint = errors.New("thread endpoint does not exist in game")
	ErrCrossGame       = errors.New("thread endpoints belong to different games")
	ErrNotAPlace       = errors.New("referenced entity is not a place")
)
