package tree

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/benz9527/xtree/lib/infra"
)

func TestSnapshot(t *testing.T) {
	tree := NewCompactRBTree[int, string](5, "five")
	tree.Insert(3, "three")
	tree.Insert(8, "eight")
	tree.Insert(4, "four")
	tree.Insert(9, "nine")

	nodes := snapshot[int, string](tree)
	require.Len(t, nodes, 5)

	// Preorder: 5, 3, 4, 8, 9
	require.Equal(t, 5, nodes[0].key)
	require.Equal(t, -1, nodes[0].parent)
	require.Equal(t, 1, nodes[0].left)
	require.Equal(t, 3, nodes[0].right)

	require.Equal(t, 3, nodes[1].key)
	require.Equal(t, -1, nodes[1].left)
	require.Equal(t, 2, nodes[1].right)

	require.Equal(t, 4, nodes[2].key)
	require.Equal(t, 1, nodes[2].parent)
	require.Equal(t, 3, nodes[2].depth)
	require.Equal(t, Black, nodes[2].color)

	require.Equal(t, 8, nodes[3].key)
	require.Equal(t, 0, nodes[3].parent)
	require.Equal(t, 4, nodes[3].right)
	require.Equal(t, "nine", nodes[4].val)

	require.Nil(t, snapshot[int, string](nil))
}

func newBrokenTree() (*rbTree[int, int], *rbNode[int, int]) {
	// 7 sits on the wrong side and both nodes are red.
	root := &rbNode[int, int]{key: 5, val: 5, color: Red}
	child := &rbNode[int, int]{key: 7, val: 7, color: Red, parent: root}
	root.left = child
	return &rbTree[int, int]{
		root:   root,
		count:  2,
		cmp:    infra.AscComparator[int],
		logger: zap.NewNop(),
	}, child
}

func TestValidators_BrokenTree(t *testing.T) {
	tree, child := newBrokenTree()

	require.ErrorIs(t, OrderValidate[int, int](tree), ErrOrderViolation)
	require.ErrorIs(t, ColorAlternationValidate[int, int](tree), ErrColorAlternation)
	require.ErrorIs(t, RedViolationValidate[int, int](tree), ErrRedViolation)
	require.NoError(t, ParentLinkValidate[int, int](tree))

	err := Validate[int, int](tree)
	require.Len(t, multierr.Errors(err), 3)
	require.ErrorIs(t, err, ErrOrderViolation)
	require.ErrorIs(t, err, ErrColorAlternation)
	require.ErrorIs(t, err, ErrRedViolation)

	child.parent = nil
	require.ErrorIs(t, ParentLinkValidate[int, int](tree), ErrParentLink)
	require.Len(t, multierr.Errors(Validate[int, int](tree)), 4)
}

func TestValidators_ColorAlternation(t *testing.T) {
	tree := NewRBTree[int, int](5, 5)
	tree.Insert(6, 6)
	x := tree.Search(6).(*rbNode[int, int])
	x.color = Black
	require.ErrorIs(t, ColorAlternationValidate[int, int](tree), ErrColorAlternation)
	require.NoError(t, RedViolationValidate[int, int](tree))
}

func TestBlackViolationValidate(t *testing.T) {
	testcases := []struct {
		name     string
		keys     []int
		violated bool
	}{
		{"single", []int{5}, false},
		{"full", []int{5, 4, 6}, false},
		{"one red child", []int{5, 6}, false},
		{"skewed", []int{5, 6, 7}, true},
		{"three levels full", []int{8, 4, 12, 2, 6, 10, 14}, false},
		{"three levels partial", []int{8, 4, 12, 2}, true},
	}
	for _, tc := range testcases {
		t.Run(tc.name, func(tt *testing.T) {
			parented := NewRBTree[int, int](tc.keys[0], 0)
			compact := NewCompactRBTree[int, int](tc.keys[0], 0)
			for _, key := range tc.keys[1:] {
				parented.Insert(key, 0)
				compact.Insert(key, 0)
			}
			for _, tree := range []Tree[int, int]{parented, compact} {
				err := BlackViolationValidate[int, int](tree)
				if tc.violated {
					require.ErrorIs(tt, err, ErrBlackViolation)
				} else {
					require.NoError(tt, err)
				}
				require.NoError(tt, Validate[int, int](tree))
			}
		})
	}
}

func TestTree_NaNKey(t *testing.T) {
	nan := math.NaN()
	testcases := []struct {
		name string
		tree Tree[float64, int]
	}{
		{"parented", NewRBTree[float64, int](1, 1)},
		{"compact", NewCompactRBTree[float64, int](1, 1)},
		{"parented desc", NewRBTree[float64, int](1, 1, WithTreeDesc())},
		{"compact desc", NewCompactRBTree[float64, int](1, 1, WithTreeDesc())},
	}
	for _, tc := range testcases {
		t.Run(tc.name, func(tt *testing.T) {
			tree := tc.tree
			require.True(tt, tree.Insert(nan, 2))
			require.False(tt, tree.Insert(nan, 3))
			require.Equal(tt, int64(2), tree.Len())
			require.Equal(tt, 2, tree.Height())

			val, ok := tree.Find(nan)
			require.True(tt, ok)
			require.Equal(tt, 2, val)
			val, ok = tree.Find(1)
			require.True(tt, ok)
			require.Equal(tt, 1, val)

			require.Equal(tt, 3, Sum[float64, int](tree))
			require.NoError(tt, Validate[float64, int](tree))
		})
	}
}

func TestSum_NilTree(t *testing.T) {
	require.Equal(t, 0, Sum[int, int](nil))
}
