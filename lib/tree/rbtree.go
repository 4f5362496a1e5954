package tree

import (
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/benz9527/xtree/lib/infra"
)

type rbNode[K infra.OrderedKey, V any] struct {
	parent *rbNode[K, V] // Non-owning, nil for the root.
	left   *rbNode[K, V]
	right  *rbNode[K, V]
	key    K
	val    V
	color  RBColor
}

func (node *rbNode[K, V]) Color() RBColor {
	return node.color
}

func (node *rbNode[K, V]) Key() K {
	return node.key
}

func (node *rbNode[K, V]) Val() V {
	return node.val
}

func (node *rbNode[K, V]) Left() RBNode[K, V] {
	if node == nil || node.left == nil {
		return nil
	}
	return node.left
}

func (node *rbNode[K, V]) Parent() RBNode[K, V] {
	if node == nil || node.parent == nil {
		return nil
	}
	return node.parent
}

func (node *rbNode[K, V]) Right() RBNode[K, V] {
	if node == nil || node.right == nil {
		return nil
	}
	return node.right
}

func (node *rbNode[K, V]) Grandparent() RBNode[K, V] {
	if !node.hasGrandpa() {
		return nil
	}
	return node.grandpa()
}

func (node *rbNode[K, V]) isRoot() bool {
	return node != nil && node.parent == nil
}

func (node *rbNode[K, V]) grandpa() *rbNode[K, V] {
	return node.parent.parent
}

func (node *rbNode[K, V]) hasGrandpa() bool {
	return node != nil && !node.isRoot() && node.parent.parent != nil
}

// The child is painted into the opposite color of its parent and
// never repainted. No fixup follows, see insertion below.
func (node *rbNode[K, V]) makeChild(key K, val V) *rbNode[K, V] {
	return &rbNode[K, V]{
		key:    key,
		val:    val,
		color:  node.color.Opposite(),
		parent: node,
	}
}

type rbTree[K infra.OrderedKey, V any] struct {
	root   *rbNode[K, V]
	count  int64
	cmp    infra.OrderedKeyComparator[K]
	logger *zap.Logger
	stats  *treeStats
}

func (tree *rbTree[K, V]) Len() int64 {
	return atomic.LoadInt64(&tree.count)
}

func (tree *rbTree[K, V]) Root() RBNode[K, V] {
	if tree.root == nil {
		return nil
	}
	return tree.root
}

func (tree *rbTree[K, V]) search(key K) *rbNode[K, V] {
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

func (tree *rbTree[K, V]) Search(key K) RBNode[K, V] {
	if x := tree.search(key); x != nil {
		return x
	}
	return nil
}

func (tree *rbTree[K, V]) Find(key K) (V, bool) {
	if x := tree.search(key); x != nil {
		return x.val, true
	}
	var zero V
	return zero, false
}

// Insert walks down as an ordinary BST does. There is no rotation or
// repainting afterwards. Alternation alone keeps red children away
// from red parents, but the black depth of the NIL leaves drifts
// apart. See BlackViolationValidate.
func (tree *rbTree[K, V]) Insert(key K, val V) bool {
	if /* released */ tree.root == nil {
		tree.root = &rbNode[K, V]{
			key:   key,
			val:   val,
			color: Black,
		}
		atomic.AddInt64(&tree.count, 1)
		tree.stats.RecordInsert(1)
		return true
	}

	depth := 1
	for x := tree.root; x != nil; depth++ {
		var next **rbNode[K, V]
		res := tree.cmp(key, x.key)
		if /* equal */ res == 0 {
			tree.logger.Debug("[rbtree] key present, insert ignored",
				zap.Any("key", key),
				zap.Int("depth", depth),
			)
			tree.stats.IncreaseDuplicateCount()
			return false
		} else /* less */ if res < 0 {
			next = &x.left
		} else /* greater */ {
			next = &x.right
		}

		if *next == nil {
			*next = x.makeChild(key, val)
			atomic.AddInt64(&tree.count, 1)
			tree.stats.RecordInsert(depth + 1)
			return true
		}
		x = *next
	}
	// impossible run to here
	panic( /* debug assertion */ "[rbtree] insert walked off the tree")
}

func (tree *rbTree[K, V]) Height() int {
	if tree.root == nil {
		return 0
	}

	type frame struct {
		node  *rbNode[K, V]
		depth int
	}
	stack := make([]frame, 0, 16)
	defer func() {
		clear(stack)
	}()
	stack = append(stack, frame{node: tree.root, depth: 1})

	height := 0
	for size := len(stack); size > 0; size = len(stack) {
		aux := stack[size-1]
		stack = stack[:size-1]
		if aux.depth > height {
			height = aux.depth
		}
		if aux.node.left != nil {
			stack = append(stack, frame{node: aux.node.left, depth: aux.depth + 1})
		}
		if aux.node.right != nil {
			stack = append(stack, frame{node: aux.node.right, depth: aux.depth + 1})
		}
	}
	return height
}

// Inorder traversal to implement the DFS.
func (tree *rbTree[K, V]) Foreach(action func(idx int64, color RBColor, key K, val V) bool) {
	size := atomic.LoadInt64(&tree.count)
	aux := tree.root
	if size <= 0 || aux == nil {
		return
	}

	stack := make([]*rbNode[K, V], 0, size>>1+1)
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

// Preorder traversal. The right child is pushed first so the left
// subtree is visited first. The direction comes from the descent, not
// from the parent link.
func (tree *rbTree[K, V]) Walk(action func(depth int, dir RBDirection, color RBColor, key K, val V) bool) {
	if tree.root == nil {
		return
	}

	type frame struct {
		node  *rbNode[K, V]
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

// Release unlinks every node. The parent back-references are cleared
// as well, so no node handed out earlier can reach the rest of the tree.
func (tree *rbTree[K, V]) Release() {
	size := atomic.LoadInt64(&tree.count)
	aux := tree.root
	tree.root = nil
	if size <= 0 || aux == nil {
		return
	}

	stack := make([]*rbNode[K, V], 0, size>>1+1)
	defer func() {
		clear(stack)
	}()

	for ; aux != nil; aux = aux.left {
		stack = append(stack, aux)
	}

	released := int64(0)
	for size = int64(len(stack)); size > 0; size = int64(len(stack)) {
		aux = stack[size-1]
		r := aux.right
		aux.left, aux.right, aux.parent = nil, nil, nil
		atomic.AddInt64(&tree.count, -1)
		released++
		stack = stack[:size-1]
		for aux = r; aux != nil; aux = aux.left {
			stack = append(stack, aux)
		}
	}
	tree.stats.RecordRelease(released)
	tree.logger.Debug("[rbtree] released", zap.Int64("nodes", released))
}

// NewRBTree creates a tree holding a single black root node.
func NewRBTree[K infra.OrderedKey, V any](key K, val V, opts ...TreeOption) RBTree[K, V] {
	cfg := newTreeCfg(opts...)
	tree := &rbTree[K, V]{
		cmp:    keyComparator[K](cfg),
		logger: cfg.loggerOrNop().Named("rbtree"),
		stats:  newTreeStats(cfg, parentedVariant),
	}
	tree.Insert(key, val)
	return tree
}
