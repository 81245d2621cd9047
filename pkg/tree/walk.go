package tree

import "errors"

// SkipChildren can be returned from a WalkFunc to skip the children of the
// current node.
var SkipChildren = errors.New("skip children")

// WalkFunc is called for each node. path names the node from the root and
// ends with the node's own name; it must not be retained across calls.
type WalkFunc func(n *Node, path []string, depth int) error

// Walk visits every node of t top-down, parents before children, siblings
// in order.
func Walk(t Tree, fn WalkFunc) error {
	return walk(t, nil, fn)
}

func walk(t Tree, parent []string, fn WalkFunc) error {
	for _, n := range t {
		path := append(parent, n.name)
		err := fn(n, path, len(path)-1)
		if errors.Is(err, SkipChildren) {
			continue
		}
		if err != nil {
			return err
		}
		if n.kind == KindContainer {
			if err := walk(n.children, path, fn); err != nil {
				return err
			}
		}
	}
	return nil
}

// Find resolves path to a node. The first sibling with a matching name is
// followed at each level.
func Find(t Tree, path []string) (*Node, bool) {
	if len(path) == 0 {
		return nil, false
	}
	level := t
	for i, name := range path {
		var found *Node
		for _, n := range level {
			if n.name == name {
				found = n
				break
			}
		}
		if found == nil {
			return nil, false
		}
		if i == len(path)-1 {
			return found, true
		}
		level = found.children
	}
	return nil, false
}

// Starred returns the path of every starred node in walk order.
func Starred(t Tree) [][]string {
	var out [][]string
	_ = Walk(t, func(n *Node, path []string, _ int) error {
		if n.meta.Starred {
			out = append(out, append([]string(nil), path...))
		}
		return nil
	})
	return out
}
