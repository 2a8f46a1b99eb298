package engine

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/bastiangx/tagserve/pkg/fuzzy"
)

// Match is a tag and its edit distance to a search target.
type Match struct {
	Tag      string
	Distance int
}

// PrefixSearch returns, in lexicographic order, every tag starting with
// prefix. An empty prefix lists every tag.
func (e *Engine[T]) PrefixSearch(prefix string) ([]string, error) {
	if err := e.requireMode(SearchMode, "prefix search"); err != nil {
		return nil, err
	}
	tags := []string{}
	if !utf8.ValidString(prefix) {
		return tags, nil
	}
	e.index.WalkPrefix(prefix, func(tag string) bool {
		tags = append(tags, tag)
		return true
	})
	return tags, nil
}

// ContainsSearch returns, in lexicographic order, every tag containing
// substring. The whole trie is walked since a match may start anywhere.
func (e *Engine[T]) ContainsSearch(substring string) ([]string, error) {
	if err := e.requireMode(SearchMode, "contains search"); err != nil {
		return nil, err
	}
	tags := []string{}
	e.index.Walk(func(tag string) bool {
		if strings.Contains(tag, substring) {
			tags = append(tags, tag)
		}
		return true
	})
	return tags, nil
}

// RelativeSearch returns the tag with the smallest edit distance to target.
// Among equally close tags the lexicographically first wins.
func (e *Engine[T]) RelativeSearch(target string) (string, error) {
	if err := e.requireMode(SearchMode, "relative search"); err != nil {
		return "", err
	}
	if e.store.Len() == 0 {
		return "", fmt.Errorf("%w: relative search for %q", ErrEmptyIndex, target)
	}

	best, bestDist := "", -1
	e.index.Walk(func(tag string) bool {
		// only a strictly smaller distance replaces best, which keeps the
		// first tag seen in traversal order on ties
		if d := fuzzy.EditDistance(tag, target); bestDist < 0 || d < bestDist {
			best, bestDist = tag, d
		}
		return bestDist > 0
	})
	return best, nil
}

// RelativeSearchN returns up to n tags ordered by edit distance to target,
// ties broken lexicographically.
func (e *Engine[T]) RelativeSearchN(target string, n int) ([]Match, error) {
	if err := e.requireMode(SearchMode, "relative search"); err != nil {
		return nil, err
	}
	if e.store.Len() == 0 {
		return nil, fmt.Errorf("%w: relative search for %q", ErrEmptyIndex, target)
	}
	if n <= 0 {
		return []Match{}, nil
	}

	matches := make([]Match, 0, e.store.Len())
	e.index.Walk(func(tag string) bool {
		matches = append(matches, Match{Tag: tag, Distance: fuzzy.EditDistance(tag, target)})
		return true
	})
	// stable sort keeps traversal order, which is already lexicographic
	slices.SortStableFunc(matches, func(a, b Match) int {
		return cmp.Compare(a.Distance, b.Distance)
	})
	if len(matches) > n {
		matches = matches[:n]
	}
	return matches, nil
}
