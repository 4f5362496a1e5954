package tree

import "github.com/benz9527/xtree/lib/infra"

// go install golang.org/x/tools/cmd/stringer@latest

//go:generate stringer -type=RBColor
type RBColor uint8

const (
	Black RBColor = iota
	Red
)

// Opposite is the color a child receives when it is attached
// under a node of this color.
func (c RBColor) Opposite() RBColor {
	if c == Black {
		return Red
	}
	return Black
}

//go:generate stringer -type=RBDirection
type RBDirection int8

const (
	Left RBDirection = -1 + iota
	Root
	Right
)

// Tree is the contract shared by both tree variants.
// None of the methods are safe to be called concurrently with Insert
// or Release.
type Tree[K infra.OrderedKey, V any] interface {
	Len() int64
	Height() int
	Find(key K) (V, bool)
	// Insert never overwrites. It reports whether a new node was
	// attached; a present key leaves the tree untouched.
	Insert(key K, val V) bool
	// Foreach is the in-order traversal.
	Foreach(action func(idx int64, color RBColor, key K, val V) bool)
	// Walk is the pre-order traversal. The root is visited at depth 1
	// with the Root direction.
	Walk(action func(depth int, dir RBDirection, color RBColor, key K, val V) bool)
	Release()
}

type RBNode[K infra.OrderedKey, V any] interface {
	Key() K
	Val() V
	Color() RBColor
	Left() RBNode[K, V]
	Right() RBNode[K, V]
	Parent() RBNode[K, V]
	Grandparent() RBNode[K, V]
}

// RBTree keeps a parent back-reference in every node.
type RBTree[K infra.OrderedKey, V any] interface {
	Tree[K, V]
	Root() RBNode[K, V]
	Search(key K) RBNode[K, V]
}

type CompactRBNode[K infra.OrderedKey, V any] interface {
	Key() K
	Val() V
	Color() RBColor
	Left() CompactRBNode[K, V]
	Right() CompactRBNode[K, V]
}

// CompactRBTree stores no parent links, so it has no ancestor queries.
type CompactRBTree[K infra.OrderedKey, V any] interface {
	Tree[K, V]
	Root() CompactRBNode[K, V]
	Search(key K) CompactRBNode[K, V]
}
