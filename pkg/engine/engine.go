package engine

import (
	"fmt"
	"unicode/utf8"

	"github.com/bastiangx/tagserve/pkg/trie"
)

// Mode is one of the two mutually exclusive engine states.
type Mode int

const (
	// InsertionMode allows Add and Remove; searches are rejected.
	InsertionMode Mode = iota
	// SearchMode allows searches over the trie; the entries are frozen.
	SearchMode
)

func (m Mode) String() string {
	switch m {
	case InsertionMode:
		return "insertion"
	case SearchMode:
		return "search"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// Engine indexes tags to values of type T.
//
// A new Engine starts in InsertionMode. ChangeToSearchMode builds the trie
// from the entries present at that moment and freezes them. There is no way
// back: Clear empties the engine, or build a new one from Entries.
//
// Engine is not safe for concurrent use.
type Engine[T any] struct {
	mode  Mode
	store *Store[T]
	index *trie.Trie // nil unless mode == SearchMode
}

// New returns an empty engine in InsertionMode.
func New[T any]() *Engine[T] {
	return &Engine[T]{
		mode:  InsertionMode,
		store: NewStore[T](),
	}
}

// FromEntries adds every entry to a new engine and leaves it in mode.
func FromEntries[T any](entries []Entry[T], mode Mode) (*Engine[T], error) {
	e := New[T]()
	for _, ent := range entries {
		if err := e.Add(ent.Tag, ent.Value); err != nil {
			return nil, err
		}
	}
	if mode == SearchMode {
		if err := e.ChangeToSearchMode(); err != nil {
			return nil, err
		}
	}
	return e, nil
}

// requireMode is the single place mode preconditions are checked.
func (e *Engine[T]) requireMode(want Mode, op string) error {
	if e.mode != want {
		return fmt.Errorf("%w: %s needs %s mode, engine is in %s mode", ErrInvalidMode, op, want, e.mode)
	}
	return nil
}

// Add indexes value under tag.
func (e *Engine[T]) Add(tag string, value T) error {
	if err := e.requireMode(InsertionMode, "add"); err != nil {
		return err
	}
	if !utf8.ValidString(tag) {
		return fmt.Errorf("%w: %q is not valid UTF-8", ErrInvalidTag, tag)
	}
	return e.store.Add(tag, value)
}

// Remove deletes tag and returns its value.
func (e *Engine[T]) Remove(tag string) (T, error) {
	if err := e.requireMode(InsertionMode, "remove"); err != nil {
		var zero T
		return zero, err
	}
	return e.store.Remove(tag)
}

// RemoveAny deletes and returns an arbitrary entry.
func (e *Engine[T]) RemoveAny() (Entry[T], error) {
	if err := e.requireMode(InsertionMode, "remove any"); err != nil {
		return Entry[T]{}, err
	}
	return e.store.RemoveAny()
}

// Contains reports whether tag is indexed. Valid in either mode.
func (e *Engine[T]) Contains(tag string) bool {
	return e.store.Contains(tag)
}

// ValueOf returns the value indexed under tag. Valid in either mode.
func (e *Engine[T]) ValueOf(tag string) (T, error) {
	return e.store.ValueOf(tag)
}

// Size returns the number of entries. Valid in either mode.
func (e *Engine[T]) Size() int {
	return e.store.Len()
}

// Mode returns the current mode.
func (e *Engine[T]) Mode() Mode { return e.mode }

// IsInInsertionMode reports whether Add and Remove are allowed.
func (e *Engine[T]) IsInInsertionMode() bool { return e.mode == InsertionMode }

// ChangeToSearchMode builds the trie from the current entries and switches
// to SearchMode. The trie is complete before the mode changes.
func (e *Engine[T]) ChangeToSearchMode() error {
	if err := e.requireMode(InsertionMode, "change to search mode"); err != nil {
		return err
	}
	e.index = trie.Build(e.store.Tags())
	e.mode = SearchMode
	return nil
}

// Clear drops every entry and the trie, returning e to an empty InsertionMode.
func (e *Engine[T]) Clear() {
	e.mode = InsertionMode
	e.store = NewStore[T]()
	e.index = nil
}

// Entries returns every entry sorted by tag. Valid in either mode.
func (e *Engine[T]) Entries() []Entry[T] {
	return e.store.Entries()
}
