package tree

import (
	"errors"
	"fmt"

	"go.uber.org/multierr"

	"github.com/benz9527/xtree/lib/infra"
)

var (
	ErrOrderViolation   = errors.New("[rbtree] order violation")
	ErrColorAlternation = errors.New("[rbtree] color alternation violation")
	ErrRedViolation     = errors.New("[rbtree] red violation")
	ErrBlackViolation   = errors.New("[rbtree] black violation")
	ErrParentLink       = errors.New("[rbtree] parent link violation")
)

// Sum folds every value of the tree, each node counted once.
func Sum[K infra.OrderedKey, V infra.Addable](tree Tree[K, V]) V {
	var sum V
	if tree == nil {
		return sum
	}
	tree.Foreach(func(_ int64, _ RBColor, _ K, val V) bool {
		sum += val
		return true
	})
	return sum
}

func (tree *rbTree[K, V]) comparator() infra.OrderedKeyComparator[K] {
	return tree.cmp
}

func (tree *compactRBTree[K, V]) comparator() infra.OrderedKeyComparator[K] {
	return tree.cmp
}

func comparatorOf[K infra.OrderedKey, V any](tree Tree[K, V]) infra.OrderedKeyComparator[K] {
	if c, ok := tree.(interface {
		comparator() infra.OrderedKeyComparator[K]
	}); ok {
		return c.comparator()
	}
	return infra.AscComparator[K]
}

// shapeNode is an arena entry, links are indices into the
// snapshot and -1 marks an absent node.
type shapeNode[K infra.OrderedKey, V any] struct {
	key    K
	val    V
	color  RBColor
	dir    RBDirection
	depth  int
	parent int
	left   int
	right  int
}

// snapshot rebuilds the tree shape from the preorder walk. In preorder
// the parent of a node at depth d is the latest node seen at depth d-1.
func snapshot[K infra.OrderedKey, V any](tree Tree[K, V]) []shapeNode[K, V] {
	if tree == nil {
		return nil
	}
	nodes := make([]shapeNode[K, V], 0, tree.Len())
	path := make([]int, 0, 16)
	tree.Walk(func(depth int, dir RBDirection, color RBColor, key K, val V) bool {
		if depth < 1 || depth > len(path)+1 {
			// impossible run to here
			panic( /* debug assertion */ "[rbtree] preorder walk skipped a level")
		}
		idx := len(nodes)
		n := shapeNode[K, V]{
			key:    key,
			val:    val,
			color:  color,
			dir:    dir,
			depth:  depth,
			parent: -1,
			left:   -1,
			right:  -1,
		}
		path = path[:depth-1]
		if depth > 1 {
			p := path[depth-2]
			n.parent = p
			switch dir {
			case Left:
				nodes[p].left = idx
			case Right:
				nodes[p].right = idx
			default:
				panic( /* debug assertion */ "[rbtree] non root node without direction")
			}
		}
		nodes = append(nodes, n)
		path = append(path, idx)
		return true
	})
	return nodes
}

// OrderValidate checks the inorder keys are strictly increasing under
// the tree's own comparator.
func OrderValidate[K infra.OrderedKey, V any](tree Tree[K, V]) error {
	if tree == nil {
		return nil
	}
	cmp := comparatorOf[K, V](tree)
	var (
		prev K
		err  error
	)
	tree.Foreach(func(idx int64, _ RBColor, key K, _ V) bool {
		if idx > 0 && cmp(prev, key) >= 0 {
			err = fmt.Errorf("%w: key %v is placed after %v", ErrOrderViolation, key, prev)
			return false
		}
		prev = key
		return true
	})
	return err
}

// ColorAlternationValidate checks the root is black and every other
// node has the opposite color of its parent.
func ColorAlternationValidate[K infra.OrderedKey, V any](tree Tree[K, V]) error {
	nodes := snapshot[K, V](tree)
	for i := range nodes {
		n := nodes[i]
		if n.parent < 0 {
			if n.color != Black {
				return fmt.Errorf("%w: root %v is %s", ErrColorAlternation, n.key, n.color)
			}
			continue
		}
		if p := nodes[n.parent]; p.color == n.color {
			return fmt.Errorf("%w: %v and its parent %v are both %s", ErrColorAlternation, n.key, p.key, n.color)
		}
	}
	return nil
}

// RedViolationValidate checks no red node has a red parent.
func RedViolationValidate[K infra.OrderedKey, V any](tree Tree[K, V]) error {
	nodes := snapshot[K, V](tree)
	for i := range nodes {
		if n := nodes[i]; n.color == Red && n.parent >= 0 && nodes[n.parent].color == Red {
			return fmt.Errorf("%w: red node %v under red node %v", ErrRedViolation, n.key, nodes[n.parent].key)
		}
	}
	return nil
}

/*
<X> is a RED node.
[X] is a BLACK node (or NIL).

Insertion never rebalances, so a skewed tree is expected to fail:

	[5]
	  \
	  <6>
	    \
	    [7]

The NIL left of [5] has black depth 1, the NILs under [7] have 2.
*/
func BlackViolationValidate[K infra.OrderedKey, V any](tree Tree[K, V]) error {
	nodes := snapshot[K, V](tree)
	if len(nodes) == 0 {
		return nil
	}

	// Preorder puts every parent before its children.
	blackDepths := make([]int, len(nodes))
	expected := -1
	for i := range nodes {
		n := nodes[i]
		if n.parent >= 0 {
			blackDepths[i] = blackDepths[n.parent]
		}
		if n.color == Black {
			blackDepths[i]++
		}
		if /* nil leaves, keep one */ n.left >= 0 && n.right >= 0 {
			continue
		}
		if expected < 0 {
			expected = blackDepths[i]
		} else if blackDepths[i] != expected {
			return fmt.Errorf("%w: black depth %d at %v, expected %d", ErrBlackViolation, blackDepths[i], n.key, expected)
		}
	}
	return nil
}

// ParentLinkValidate checks every child's back-reference points
// at its structural parent and the root has none.
func ParentLinkValidate[K infra.OrderedKey, V any](tree RBTree[K, V]) error {
	root := tree.Root()
	if root == nil {
		return nil
	}
	if root.Parent() != nil {
		return fmt.Errorf("%w: root %v has a parent", ErrParentLink, root.Key())
	}

	stack := []RBNode[K, V]{root}
	for size := len(stack); size > 0; size = len(stack) {
		aux := stack[size-1]
		stack = stack[:size-1]
		for _, child := range []RBNode[K, V]{aux.Left(), aux.Right()} {
			if child == nil {
				continue
			}
			if child.Parent() != aux {
				return fmt.Errorf("%w: %v does not point back to %v", ErrParentLink, child.Key(), aux.Key())
			}
			stack = append(stack, child)
		}
	}
	return nil
}

// Validate runs the checks that insertion maintains. Black height is
// left out because nothing rebalances the tree.
func Validate[K infra.OrderedKey, V any](tree Tree[K, V]) error {
	merr := multierr.Combine(
		OrderValidate[K, V](tree),
		ColorAlternationValidate[K, V](tree),
		RedViolationValidate[K, V](tree),
	)
	if parented, ok := tree.(RBTree[K, V]); ok {
		merr = multierr.Append(merr, ParentLinkValidate[K, V](parented))
	}
	return merr
}
