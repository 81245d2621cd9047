package tree

// ToggleStarred returns a copy of t in which the starred flag of the node
// addressed by path is negated. Only the nodes on the path from the root to
// the target are rebuilt; every other node is shared with t.
//
// Names are matched per level and the first matching sibling wins. When a
// level has no matching node the tree is returned unchanged. When the path
// continues past a leaf, t is returned together with a *PathMismatchError.
func ToggleStarred(t Tree, path []string) (Tree, error) {
	return updateAt(t, path, 0, func(n *Node) *Node {
		return n.withMeta(n.meta.withStarred(!n.meta.Starred))
	})
}

// SetStarred is like ToggleStarred but sets the flag to v. If the target
// already has that value, t is returned as is.
func SetStarred(t Tree, path []string, v bool) (Tree, error) {
	return updateAt(t, path, 0, func(n *Node) *Node {
		if n.meta.Starred == v {
			return n
		}
		return n.withMeta(n.meta.withStarred(v))
	})
}

// updateAt rebuilds the spine leading to path[len(path)-1] with fn applied
// to the target. It never writes to t or any node reachable from it.
func updateAt(t Tree, path []string, level int, fn func(*Node) *Node) (Tree, error) {
	if len(path) == 0 {
		return t, nil
	}

	target := path[level]
	for i, n := range t {
		if n.name != target {
			continue
		}

		var updated *Node
		if level == len(path)-1 {
			updated = fn(n)
		} else {
			if n.kind != KindContainer {
				return t, &PathMismatchError{Path: append([]string(nil), path...), Level: level}
			}
			children, err := updateAt(n.children, path, level+1, fn)
			if err != nil {
				return t, err
			}
			if sameSlice(children, n.children) {
				return t, nil
			}
			updated = n.withChildren(children)
		}

		if updated == n {
			return t, nil
		}
		out := make(Tree, len(t))
		copy(out, t)
		out[i] = updated
		return out, nil
	}

	return t, nil
}

func sameSlice(a, b []*Node) bool {
	if len(a) != len(b) {
		return false
	}
	return len(a) == 0 || &a[0] == &b[0]
}
