package engine

import (
	"cmp"
	"fmt"
	"iter"
	"maps"
	"slices"
)

// Entry is one tag and the value indexed under it.
type Entry[T any] struct {
	Tag   string
	Value T
}

// Store maps unique tags to values. It knows nothing about modes;
// Engine decides when it may change.
type Store[T any] struct {
	entries map[string]T
}

// NewStore returns an empty store.
func NewStore[T any]() *Store[T] {
	return &Store[T]{entries: make(map[string]T)}
}

// Add inserts tag. An existing tag is never overwritten.
func (s *Store[T]) Add(tag string, value T) error {
	if _, ok := s.entries[tag]; ok {
		return fmt.Errorf("%w: %q", ErrDuplicateKey, tag)
	}
	s.entries[tag] = value
	return nil
}

// Remove deletes tag and returns the value it held.
func (s *Store[T]) Remove(tag string) (T, error) {
	v, ok := s.entries[tag]
	if !ok {
		return v, fmt.Errorf("%w: %q", ErrKeyNotFound, tag)
	}
	delete(s.entries, tag)
	return v, nil
}

// RemoveAny deletes and returns an arbitrary entry.
func (s *Store[T]) RemoveAny() (Entry[T], error) {
	for tag, v := range s.entries {
		delete(s.entries, tag)
		return Entry[T]{Tag: tag, Value: v}, nil
	}
	return Entry[T]{}, fmt.Errorf("%w: nothing to remove", ErrEmptyIndex)
}

// Contains reports whether tag is present.
func (s *Store[T]) Contains(tag string) bool {
	_, ok := s.entries[tag]
	return ok
}

// ValueOf returns the value stored under tag.
func (s *Store[T]) ValueOf(tag string) (T, error) {
	v, ok := s.entries[tag]
	if !ok {
		return v, fmt.Errorf("%w: %q", ErrKeyNotFound, tag)
	}
	return v, nil
}

// Len returns the number of entries.
func (s *Store[T]) Len() int { return len(s.entries) }

// Tags iterates the tags in no particular order.
func (s *Store[T]) Tags() iter.Seq[string] {
	return maps.Keys(s.entries)
}

// Entries returns a copy of every entry, sorted by tag.
func (s *Store[T]) Entries() []Entry[T] {
	out := make([]Entry[T], 0, len(s.entries))
	for tag, v := range s.entries {
		out = append(out, Entry[T]{Tag: tag, Value: v})
	}
	slices.SortFunc(out, func(a, b Entry[T]) int {
		return cmp.Compare(a.Tag, b.Tag)
	})
	return out
}
