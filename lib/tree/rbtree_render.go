package tree

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/benz9527/xtree/lib/infra"
)

func dotEscape(s string) string {
	return strings.ReplaceAll(strings.ReplaceAll(s, `\`, `\\`), `"`, `\"`)
}

func nodeDotStyles(c RBColor) string {
	s := ",style=filled,shape=circle"
	if c == Red {
		return s + ",color=red,fillcolor=red,fontcolor=white"
	}
	return s + ",color=black,fillcolor=black,fontcolor=white"
}

func emptyNode() string {
	return "[label=\"\",color=black,shape=box,fixedsize=true,width=.2,height=.2]"
}

// TreeToDot outputs the internal structure of a tree in Graphviz DOT
// format (for debugging purposes). A node owning a single child gets
// an empty box for the missing side, so left and right stay apart.
func TreeToDot[K infra.OrderedKey, V any](tree Tree[K, V], w io.Writer) error {
	nodes := snapshot[K, V](tree)
	builder := &strings.Builder{}
	builder.WriteString("strict digraph {\n")
	builder.WriteString("\tnode [fontname=Arial,fontsize=12];\n")
	nodelist, edgelist := &strings.Builder{}, &strings.Builder{}
	for i := range nodes {
		n := nodes[i]
		ID := i + 1
		label := dotEscape(fmt.Sprintf("%v", n.key))
		fmt.Fprintf(nodelist, "\t\"%d\" [label=\"%s\"%s];\n", ID, label, nodeDotStyles(n.color))
		if n.left < 0 && n.right < 0 {
			continue
		}
		for side, child := range [2]int{n.left, n.right} {
			if child >= 0 {
				fmt.Fprintf(edgelist, "\t\"%d\" -> \"%d\";\n", ID, child+1)
				continue
			}
			nilID := fmt.Sprintf("nil%d_%d", ID, side)
			fmt.Fprintf(nodelist, "\t\"%s\" %s;\n", nilID, emptyNode())
			fmt.Fprintf(edgelist, "\t\"%d\" -> \"%s\";\n", ID, nilID)
		}
	}
	builder.WriteString(nodelist.String())
	builder.WriteString(edgelist.String())
	builder.WriteString("}\n")
	_, err := io.WriteString(w, builder.String())
	return err
}

var (
	redNodeFmt   = color.New(color.FgRed, color.Bold).SprintFunc()
	blackNodeFmt = color.New(color.Bold).SprintFunc()
)

/*
Fprint renders the tree sideways, the root at the left margin and the
right subtree on top. <X> is a RED node, [X] is a BLACK node.

	    <6>=six
	[5]=five
	    <4>=four
*/
func Fprint[K infra.OrderedKey, V any](w io.Writer, tree Tree[K, V]) error {
	nodes := snapshot[K, V](tree)
	if len(nodes) == 0 {
		return nil
	}

	builder := &strings.Builder{}
	// Reverse inorder traversal.
	stack := make([]int, 0, 16)
	for aux := 0; aux >= 0; aux = nodes[aux].right {
		stack = append(stack, aux)
	}
	for size := len(stack); size > 0; size = len(stack) {
		n := nodes[stack[size-1]]
		stack = stack[:size-1]

		builder.WriteString(strings.Repeat("    ", n.depth-1))
		if n.color == Red {
			builder.WriteString(redNodeFmt(fmt.Sprintf("<%v>", n.key)))
		} else {
			builder.WriteString(blackNodeFmt(fmt.Sprintf("[%v]", n.key)))
		}
		builder.WriteString(fmt.Sprintf("=%v\n", n.val))

		for aux := n.left; aux >= 0; aux = nodes[aux].right {
			stack = append(stack, aux)
		}
	}
	_, err := io.WriteString(w, builder.String())
	return err
}
