package tree

import (
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/benz9527/xtree/lib/infra"
)

// Without the parent link the node is one pointer smaller.
type compactRBNode[K infra.OrderedKey, V any] struct {
	left  *compactRBNode[K, V]
	right *compactRBNode[K, V]
	key   K
	val   V
	color RBColor
}

func (node *compactRBNode[K, V]) Color() RBColor {
	return node.color
}

func (node *compactRBNode[K, V]) Key() K {
	return node.key
}

func (node *compactRBNode[K, V]) Val() V {
	return node.val
}

func (node *compactRBNode[K, V]) Left() CompactRBNode[K, V] {
	if node == nil || node.left == nil {
		return nil
	}
	return node.left
}

func (node *compactRBNode[K, V]) Right() CompactRBNode[K, V] {
	if node == nil || node.right == nil {
		return nil
	}
	return node.right
}

type compactRBTree[K infra.OrderedKey, V any] struct {
	root   *compactRBNode[K, V]
	count  int64
	cmp    infra.OrderedKeyComparator[K]
	logger *zap.Logger
	stats  *treeStats
}

func (tree *compactRBTree[K, V]) Len() int64 {
	return atomic.LoadInt64(&tree.count)
}

func (tree *compactRBTree[K, V]) Root() CompactRBNode[K, V] {
	if tree.root == nil {
		return nil
	}
	return tree.root
}

func (tree *compactRBTree[K, V]) search(key K) *compactRBNode[K, V] {
	for aux := tree.root; aux != nil; {
		res := tree.cmp(key, aux.key)
		if res == 0 {
			return aux
		} else if res > 0 {
			aux = aux.right
		} else {
			aux = aux.left
		}
	}
	return nil
}

func (tree *compactRBTree[K, V]) Search(key K) CompactRBNode[K, V] {
	if x := tree.search(key); x != nil {
		return x
	}
	return nil
}

func (tree *compactRBTree[K, V]) Find(key K) (V, bool) {
	if x := tree.search(key); x != nil {
		return x.val, true
	}
	var zero V
	return zero, false
}

func (tree *compactRBTree[K, V]) Insert(key K, val V) bool {
	if /* released */ tree.root == nil {
		tree.root = &compactRBNode[K, V]{key: key, val: val, color: Black}
		atomic.AddInt64(&tree.count, 1)
		tree.stats.RecordInsert(1)
		return true
	}

	// Track the link to fill rather than the node, the new node is
	// written straight into its parent's child slot.
	link, parent, depth := &tree.root, (*compactRBNode[K, V])(nil), 0
	for *link != nil {
		parent = *link
		depth++
		res := tree.cmp(key, parent.key)
		if /* equal */ res == 0 {
			tree.logger.Debug("[compact-rbtree] key present, insert ignored",
				zap.Any("key", key),
				zap.Int("depth", depth),
			)
			tree.stats.IncreaseDuplicateCount()
			return false
		} else /* less */ if res < 0 {
			link = &parent.left
		} else /* greater */ {
			link = &parent.right
		}
	}

	*link = &compactRBNode[K, V]{
		key:   key,
		val:   val,
		color: parent.color.Opposite(),
	}
	atomic.AddInt64(&tree.count, 1)
	tree.stats.RecordInsert(depth + 1)
	return true
}

// Height counts the levels by BFS.
func (tree *compactRBTree[K, V]) Height() int {
	if tree.root == nil {
		return 0
	}

	height := 0
	level := []*compactRBNode[K, V]{tree.root}
	next := make([]*compactRBNode[K, V], 0, 2)
	for len(level) > 0 {
		height++
		next = next[:0]
		for _, aux := range level {
			if aux.left != nil {
				next = append(next, aux.left)
			}
			if aux.right != nil {
				next = append(next, aux.right)
			}
		}
		level, next = next, level
	}
	return height
}

// Inorder traversal to implement the DFS.
func (tree *compactRBTree[K, V]) Foreach(action func(idx int64, color RBColor, key K, val V) bool) {
	size := atomic.LoadInt64(&tree.count)
	aux := tree.root
	if size <= 0 || aux == nil {
		return
	}

	stack := make([]*compactRBNode[K, V], 0, size>>1+1)
	defer func() {
		clear(stack)
	}()

	for ; aux != nil; aux = aux.left {
		stack = append(stack, aux)
	}

	idx := int64(0)
	for size = int64(len(stack)); size > 0; size = int64(len(stack)) {
		if aux = stack[size-1]; !action(idx, aux.color, aux.key, aux.val) {
			return
		}
		idx++
		stack = stack[:size-1]
		for aux = aux.right; aux != nil; aux = aux.left {
			stack = append(stack, aux)
		}
	}
}

// Preorder traversal. No parent link, so the direction travels
// with the node on the stack.
func (tree *compactRBTree[K, V]) Walk(action func(depth int, dir RBDirection, color RBColor, key K, val V) bool) {
	if tree.root == nil {
		return
	}

	type frame struct {
		node  *compactRBNode[K, V]
		depth int
		dir   RBDirection
	}
	stack := make([]frame, 0, 16)
	defer func() {
		clear(stack)
	}()
	stack = append(stack, frame{node: tree.root, depth: 1, dir: Root})

	for size := len(stack); size > 0; size = len(stack) {
		aux := stack[size-1]
		stack = stack[:size-1]
		if !action(aux.depth, aux.dir, aux.node.color, aux.node.key, aux.node.val) {
			return
		}
		if aux.node.right != nil {
			stack = append(stack, frame{node: aux.node.right, depth: aux.depth + 1, dir: Right})
		}
		if aux.node.left != nil {
			stack = append(stack, frame{node: aux.node.left, depth: aux.depth + 1, dir: Left})
		}
	}
}

func (tree *compactRBTree[K, V]) Release() {
	aux := tree.root
	tree.root = nil
	if aux == nil {
		return
	}

	stack := make([]*compactRBNode[K, V], 0, 16)
	defer func() {
		clear(stack)
	}()
	stack = append(stack, aux)

	released := int64(0)
	for size := len(stack); size > 0; size = len(stack) {
		aux = stack[size-1]
		stack = stack[:size-1]
		if aux.left != nil {
			stack = append(stack, aux.left)
		}
		if aux.right != nil {
			stack = append(stack, aux.right)
		}
		aux.left, aux.right = nil, nil
		released++
	}
	atomic.StoreInt64(&tree.count, 0)
	tree.stats.RecordRelease(released)
	tree.logger.Debug("[compact-rbtree] released", zap.Int64("nodes", released))
}

// NewCompactRBTree creates a tree holding a single black root node.
func NewCompactRBTree[K infra.OrderedKey, V any](key K, val V, opts ...TreeOption) CompactRBTree[K, V] {
	cfg := newTreeCfg(opts...)
	tree := &compactRBTree[K, V]{
		cmp:    keyComparator[K](cfg),
		logger: cfg.loggerOrNop().Named("compact-rbtree"),
		stats:  newTreeStats(cfg, compactVariant),
	}
	tree.Insert(key, val)
	return tree
}
