/*
Package engine is the core of tagserve: a dual-mode index of string tags.

An Engine starts in insertion mode, where tags are added and removed. Calling
ChangeToSearchMode builds a trie from the entries once and freezes them;
after that only lookups and searches are allowed.

	e := engine.New[int]()
	e.Add("bat", 1)
	e.Add("base", 2)
	e.Add("ball", 3)
	e.ChangeToSearchMode()

	e.PrefixSearch("ba")    // [ball base bat]
	e.ContainsSearch("as")  // [base]
	e.RelativeSearch("batt") // bat

# Searches

Prefix search walks to the node spelled by the prefix and collects the
terminal paths below it. Contains search walks the whole trie and keeps tags
holding the substring. Relative search walks the whole trie and keeps the tag
with the smallest Levenshtein distance to the target.

Results come back in lexicographic order because trie children are kept
sorted by rune; no sort runs after the walk.

# Errors

Precondition failures wrap ErrInvalidMode, ErrKeyNotFound, ErrDuplicateKey,
ErrEmptyIndex or ErrInvalidTag. Nothing is mutated when an operation fails.
*/
package engine

// Searcher is the read side of an engine in search mode, as consumed by
// the CLI and the IPC server.
type Searcher[T any] interface {
	// Contains reports whether tag is indexed
	Contains(tag string) bool

	// ValueOf returns the value stored under tag
	ValueOf(tag string) (T, error)

	// Size returns the number of indexed tags
	Size() int

	PrefixSearch(prefix string) ([]string, error)
	ContainsSearch(substring string) ([]string, error)
	RelativeSearch(target string) (string, error)
	RelativeSearchN(target string, n int) ([]Match, error)
}

var _ Searcher[int] = (*Engine[int])(nil)
