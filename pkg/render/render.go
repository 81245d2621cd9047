// Package render prints project trees for the terminal.
package render

import (
	"io"

	"github.com/ddddddO/gtree"

	"github.com/mattsolo1/grove-projtree/pkg/tree"
)

const starMark = "★ "

// Options controls what part of a tree is printed.
type Options struct {
	// Starred limits output to starred nodes and their ancestors.
	Starred bool
	// MaxDepth stops descending below this depth. Zero means no limit.
	MaxDepth int
}

// Label returns the display text for a node: containers end in "/",
// starred nodes carry a star.
func Label(n *tree.Node) string {
	label := n.Name()
	if n.IsContainer() {
		label += "/"
	}
	if n.Starred() {
		label = starMark + label
	}
	return label
}

// Tree writes t under a root titled title, walking it top-down.
func Tree(w io.Writer, title string, t tree.Tree, opts Options) error {
	var keep map[*tree.Node]bool
	if opts.Starred {
		keep = make(map[*tree.Node]bool)
		for _, n := range t {
			markStarred(n, keep)
		}
	}

	// Siblings may share a name; each one gets its own row.
	root := gtree.NewRoot(title, gtree.WithDuplicationAllowed())
	parents := []*gtree.Node{root}

	err := tree.Walk(t, func(n *tree.Node, _ []string, depth int) error {
		if keep != nil && !keep[n] {
			return tree.SkipChildren
		}
		added := parents[depth].Add(Label(n))
		parents = append(parents[:depth+1], added)
		if opts.MaxDepth > 0 && depth+1 >= opts.MaxDepth {
			return tree.SkipChildren
		}
		return nil
	})
	if err != nil {
		return err
	}

	return gtree.OutputFromRoot(w, root)
}

// markStarred records n when it or any descendant is starred.
func markStarred(n *tree.Node, keep map[*tree.Node]bool) bool {
	found := n.Starred()
	for _, c := range n.Children() {
		if markStarred(c, keep) {
			found = true
		}
	}
	if found {
		keep[n] = true
	}
	return found
}
