package tree

import (
	"fmt"
	"io"
	"strings"

	"github.com/xlab/treeprint"

	"github.com/benz9527/xbst/lib/infra"
)

const renderIndent = 6

type renderFrame[D infra.Comparable[D]] struct {
	node  BSTNode[D]
	dir   BSTDirection
	depth int
}

/*
Render writes the subtree rotated 90 degrees counterclockwise.
The right subtree is printed above its parent and the left one below.
The '|' is put on the side of the parent.

	      ---8
	      |
	---5
	      |
	      ---3

It is a diagnostic output without any format compatibility.
*/
func Render[D infra.Comparable[D]](w io.Writer, node BSTNode[D]) error {
	if w == nil || isNilNode[D](node) {
		return nil
	}

	builder := strings.Builder{}
	stack := make([]renderFrame[D], 0, 16)
	defer func() {
		clear(stack)
	}()

	// Reverse in-order traversal, right -> node -> left.
	cur, hasCur := renderFrame[D]{node: node, dir: Root}, true
	for hasCur || len(stack) > 0 {
		for hasCur {
			stack = append(stack, cur)
			r := cur.node.Right()
			if isNilNode[D](r) {
				hasCur = false
				break
			}
			cur = renderFrame[D]{node: r, dir: Right, depth: cur.depth + 1}
		}

		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		writeRenderFrame[D](&builder, top)

		if l := top.node.Left(); !isNilNode[D](l) {
			cur, hasCur = renderFrame[D]{node: l, dir: Left, depth: top.depth + 1}, true
		}
	}

	_, err := io.WriteString(w, builder.String())
	return err
}

func writeRenderFrame[D infra.Comparable[D]](builder *strings.Builder, frame renderFrame[D]) {
	indent := strings.Repeat(" ", frame.depth*renderIndent)
	_, _ = builder.WriteString("\n")
	_, _ = builder.WriteString(indent)
	switch frame.dir {
	case Root:
		_, _ = fmt.Fprintf(builder, "---%v", frame.node.Data())
	case Left:
		_, _ = builder.WriteString("|\n")
		_, _ = builder.WriteString(indent)
		_, _ = fmt.Fprintf(builder, "---%v", frame.node.Data())
	case Right:
		_, _ = fmt.Fprintf(builder, "---%v\n", frame.node.Data())
		_, _ = builder.WriteString(indent)
		_, _ = builder.WriteString("|")
	default:
		// impossible run to here
		panic( /* debug assertion */ "[bstree] unknown node direction to render")
	}
}

type printFrame[D infra.Comparable[D]] struct {
	node   BSTNode[D]
	branch treeprint.Tree
}

// Sprint prints the subtree in the directory tree style. The children
// are tagged by [L] and [R].
//
//	5
//	├── [L]  3
//	└── [R]  8
func Sprint[D infra.Comparable[D]](node BSTNode[D]) string {
	if isNilNode[D](node) {
		return ""
	}

	root := treeprint.NewWithRoot(node.Data())
	stack := make([]printFrame[D], 0, 16)
	defer func() {
		clear(stack)
	}()

	stack = append(stack, printFrame[D]{node: node, branch: root})
	for size := len(stack); size > 0; size = len(stack) {
		aux := stack[size-1]
		stack = stack[:size-1]
		for _, child := range []struct {
			meta string
			node BSTNode[D]
		}{
			{"L", aux.node.Left()},
			{"R", aux.node.Right()},
		} {
			if isNilNode[D](child.node) {
				continue
			}
			if isNilNode[D](child.node.Left()) && isNilNode[D](child.node.Right()) {
				aux.branch.AddMetaNode(child.meta, child.node.Data())
				continue
			}
			stack = append(stack, printFrame[D]{
				node:   child.node,
				branch: aux.branch.AddMetaBranch(child.meta, child.node.Data()),
			})
		}
	}
	return root.String()
}
