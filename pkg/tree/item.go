package tree

import "maps"

// Kind distinguishes the two node variants in a project tree.
type Kind int

const (
	KindLeaf      Kind = iota // A file
	KindContainer             // A folder
)

func (k Kind) String() string {
	if k == KindContainer {
		return "container"
	}
	return "leaf"
}

// Metadata holds the out-of-band flags attached to a node.
// Keys other than "starred" found in an encoded record are kept in Extra
// so they survive a decode/encode cycle.
type Metadata struct {
	Starred bool
	Extra   map[string]any

	// starredKey records that the encoded record carried "starred",
	// so an explicit false is written back.
	starredKey bool
}

// IsEmpty reports whether every flag is unset. An empty Metadata is
// equivalent to no metadata at all.
func (m Metadata) IsEmpty() bool {
	return !m.Starred && len(m.Extra) == 0
}

// record returns the key/value form used in the encoded tree.
func (m Metadata) record() map[string]any {
	rec := make(map[string]any, len(m.Extra)+1)
	maps.Copy(rec, m.Extra)
	if m.Starred || m.starredKey {
		rec[keyStarred] = m.Starred
	}
	return rec
}

// withStarred keeps starredKey as decoded, so toggling back restores the
// original record.
func (m Metadata) withStarred(v bool) Metadata {
	// Extra is shared with the old node, never written to.
	return Metadata{Starred: v, Extra: m.Extra, starredKey: m.starredKey}
}

// Node represents a single entry in a project tree. It is either a leaf
// (a file) or a container (a folder). Nodes are immutable once built;
// updates produce new nodes.
type Node struct {
	name     string
	kind     Kind
	children []*Node
	meta     Metadata
}

// NewLeaf creates a file node.
func NewLeaf(name string, meta Metadata) *Node {
	return &Node{name: name, kind: KindLeaf, meta: meta}
}

// NewContainer creates a folder node. The children slice is copied.
func NewContainer(name string, children []*Node, meta Metadata) *Node {
	return &Node{
		name:     name,
		kind:     KindContainer,
		children: append([]*Node(nil), children...),
		meta:     meta,
	}
}

func (n *Node) Name() string       { return n.name }
func (n *Node) Kind() Kind         { return n.kind }
func (n *Node) IsContainer() bool  { return n.kind == KindContainer }
func (n *Node) Metadata() Metadata { return n.meta }
func (n *Node) Starred() bool      { return n.meta.Starred }

// Children returns the node's children. The returned slice must not be
// modified. Leaves have no children.
func (n *Node) Children() []*Node {
	return n.children
}

// withMeta returns a copy of n carrying meta. Children are shared.
func (n *Node) withMeta(meta Metadata) *Node {
	return &Node{name: n.name, kind: n.kind, children: n.children, meta: meta}
}

// withChildren returns a copy of n with a new child list. Metadata is kept.
func (n *Node) withChildren(children []*Node) *Node {
	return &Node{name: n.name, kind: n.kind, children: children, meta: n.meta}
}

// Tree is an ordered sequence of top-level nodes. Order is display order.
type Tree []*Node

// Names returns the top-level names in order.
func (t Tree) Names() []string {
	names := make([]string, len(t))
	for i, n := range t {
		names[i] = n.name
	}
	return names
}

// Equal reports whether two trees have the same shape, names and metadata.
func Equal(a, b Tree) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !nodeEqual(a[i], b[i]) {
			return false
		}
	}
	return true
}

func nodeEqual(a, b *Node) bool {
	if a == b {
		return true
	}
	if a == nil || b == nil {
		return false
	}
	if a.name != b.name || a.kind != b.kind || a.meta.Starred != b.meta.Starred {
		return false
	}
	if !extraEqual(a.meta.Extra, b.meta.Extra) {
		return false
	}
	return Equal(a.children, b.children)
}

func extraEqual(a, b map[string]any) bool {
	if len(a) == 0 && len(b) == 0 {
		return true
	}
	return maps.EqualFunc(a, b, rawEqual)
}
