package engine

import "errors"

// Precondition failures. Operations wrap these with context, test with errors.Is.
var (
	// ErrInvalidMode is returned when an operation is called in the wrong mode.
	ErrInvalidMode = errors.New("invalid mode")
	// ErrKeyNotFound is returned by lookups and removals of an absent tag.
	ErrKeyNotFound = errors.New("tag not found")
	// ErrDuplicateKey is returned when adding a tag that is already present.
	ErrDuplicateKey = errors.New("duplicate tag")
	// ErrEmptyIndex is returned by closest-match searches and RemoveAny on an empty engine.
	ErrEmptyIndex = errors.New("empty index")
	// ErrInvalidTag is returned for tags that are not valid UTF-8.
	ErrInvalidTag = errors.New("invalid tag")
)
