package trie_test

import (
	"fmt"
	"slices"

	"github.com/bastiangx/tagserve/pkg/trie"
)

func Example() {
	t := trie.Build(slices.Values([]string{"tree", "bat", "base", "ball"}))

	t.WalkPrefix("ba", func(tag string) bool {
		fmt.Println(tag)
		return true
	})

	// Output:
	// ball
	// base
	// bat
}
