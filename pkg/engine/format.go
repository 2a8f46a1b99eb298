package engine

import (
	"fmt"
	"strings"
)

// String renders e as (insertionMode, ((tag, value), ...)) with entries
// sorted by tag.
func (e *Engine[T]) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "(%t, (", e.IsInInsertionMode())
	for i, ent := range e.store.Entries() {
		if i > 0 {
			sb.WriteString(", ")
		}
		fmt.Fprintf(&sb, "(%s, %v)", ent.Tag, ent.Value)
	}
	sb.WriteString("))")
	return sb.String()
}

// Equal reports whether a and b are in the same mode and hold the same entries.
func Equal[T comparable](a, b *Engine[T]) bool {
	if a == b {
		return true
	}
	if a == nil || b == nil {
		return false
	}
	if a.mode != b.mode || a.store.Len() != b.store.Len() {
		return false
	}
	for tag, v := range a.store.entries {
		w, ok := b.store.entries[tag]
		if !ok || v != w {
			return false
		}
	}
	return true
}
