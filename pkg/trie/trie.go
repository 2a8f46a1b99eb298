// Package trie implements a rune trie whose children are kept sorted by rune,
// so a depth-first walk visits tags in lexicographic order without a sort step.
package trie

import (
	"iter"
	"slices"
	"sort"
)

// Node is one rune position shared by every tag passing through it.
type Node struct {
	char     rune
	terminal bool
	children []*Node // ascending by char, no duplicates
}

// Char returns the edge label from the parent. It is zero on the root.
func (n *Node) Char() rune { return n.char }

// Terminal reports whether a tag ends exactly at n.
func (n *Node) Terminal() bool { return n.terminal }

// Children returns the ordered children of n. The slice is owned by n and
// must not be modified.
func (n *Node) Children() []*Node { return n.children }

// Child returns the child labelled r, or nil.
func (n *Node) Child(r rune) *Node {
	if i, ok := n.search(r); ok {
		return n.children[i]
	}
	return nil
}

func (n *Node) search(r rune) (int, bool) {
	i := sort.Search(len(n.children), func(i int) bool {
		return n.children[i].char >= r
	})
	return i, i < len(n.children) && n.children[i].char == r
}

// insertChild returns the child labelled r, creating it at its ordered
// position if it does not exist yet.
func (n *Node) insertChild(r rune) (*Node, bool) {
	i, ok := n.search(r)
	if ok {
		return n.children[i], false
	}
	c := &Node{char: r}
	n.children = slices.Insert(n.children, i, c)
	return c, true
}

// Trie is a prefix tree rooted at a sentinel node.
type Trie struct {
	root  *Node
	tags  int
	nodes int
}

// New returns an empty trie.
func New() *Trie {
	return &Trie{root: &Node{}, nodes: 1}
}

// Build inserts every tag yielded by tags into a fresh trie.
// The result does not depend on the order tags are yielded in.
func Build(tags iter.Seq[string]) *Trie {
	t := New()
	for tag := range tags {
		t.Insert(tag)
	}
	return t
}

// Insert adds tag and reports whether it was not already present.
func (t *Trie) Insert(tag string) bool {
	n := t.root
	for _, r := range tag {
		var created bool
		n, created = n.insertChild(r)
		if created {
			t.nodes++
		}
	}
	if n.terminal {
		return false
	}
	n.terminal = true
	t.tags++
	return true
}

// Root returns the sentinel root node.
func (t *Trie) Root() *Node { return t.root }

// Len returns the number of tags stored.
func (t *Trie) Len() int { return t.tags }

// NodeCount returns the number of nodes, root included.
func (t *Trie) NodeCount() int { return t.nodes }

// Find returns the node reached by consuming prefix from the root, or nil
// when some rune of prefix has no matching child.
func (t *Trie) Find(prefix string) *Node {
	n := t.root
	for _, r := range prefix {
		if n = n.Child(r); n == nil {
			return nil
		}
	}
	return n
}

// Has reports whether tag was inserted.
func (t *Trie) Has(tag string) bool {
	n := t.Find(tag)
	return n != nil && n.terminal
}

// WalkFunc receives the full tag of each terminal node visited.
// Returning false stops the walk.
type WalkFunc func(tag string) bool

// Walk visits every tag in lexicographic order.
func (t *Trie) Walk(fn WalkFunc) {
	walk(t.root, nil, fn)
}

// WalkPrefix visits, in lexicographic order, every tag starting with prefix.
func (t *Trie) WalkPrefix(prefix string, fn WalkFunc) {
	n := t.Find(prefix)
	if n == nil {
		return
	}
	walk(n, []rune(prefix), fn)
}

// All returns an iterator over every tag in lexicographic order.
func (t *Trie) All() iter.Seq[string] {
	return func(yield func(string) bool) {
		t.Walk(yield)
	}
}

type frame struct {
	node  *Node
	depth int
}

// walk runs a preorder traversal from n with an explicit stack. Each frame
// carries its depth; the shared rune buffer is cut back to the parent depth
// before the frame's own rune is appended, so buf[:depth] is always the
// path of the node being visited.
func walk(n *Node, base []rune, fn WalkFunc) {
	buf := slices.Clone(base)
	stack := []frame{{node: n, depth: len(base)}}

	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if f.node != n {
			buf = append(buf[:f.depth-1], f.node.char)
		}
		if f.node.terminal && !fn(string(buf[:f.depth])) {
			return
		}
		// push in reverse so the smallest rune is popped first
		for i := len(f.node.children) - 1; i >= 0; i-- {
			stack = append(stack, frame{node: f.node.children[i], depth: f.depth + 1})
		}
	}
}
