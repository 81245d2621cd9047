package tree

import (
	"fmt"
	"maps"
	"math"
	"reflect"
)

const keyStarred = "starred"

// Decode converts one element of the encoded tree into a Node.
//
// An encoded node is a bare string (a leaf), or a sequence whose first
// element is the name and whose remaining elements are children. When the
// last element of a sequence is a key/value record it is the node's
// metadata, never a child. A sequence with more than one element decodes to
// a container; a one-element sequence decodes to a leaf.
func Decode(raw any) (*Node, error) {
	return decode(raw, nil)
}

// DecodeTree converts an encoded top-level sequence into a Tree.
func DecodeTree(raw any) (Tree, error) {
	if raw == nil {
		return Tree{}, nil
	}
	items, ok := asSequence(raw)
	if !ok {
		return nil, &MalformedNodeError{Reason: fmt.Sprintf("tree must be a sequence, got %T", raw)}
	}
	return decodeList(items, nil)
}

func decodeList(items []any, path []int) (Tree, error) {
	out := make(Tree, 0, len(items))
	for i, item := range items {
		n, err := decode(item, appendIndex(path, i))
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, nil
}

func decode(raw any, path []int) (*Node, error) {
	if name, ok := raw.(string); ok {
		return NewLeaf(name, Metadata{}), nil
	}

	seq, ok := asSequence(raw)
	if !ok {
		return nil, &MalformedNodeError{Path: path, Reason: fmt.Sprintf("expected string or sequence, got %T", raw)}
	}
	if len(seq) == 0 {
		return nil, &MalformedNodeError{Path: path, Reason: "empty sequence"}
	}
	name, ok := seq[0].(string)
	if !ok {
		return nil, &MalformedNodeError{Path: path, Reason: fmt.Sprintf("first element must be a name, got %T", seq[0])}
	}

	var meta Metadata
	childrenRaw := seq[1:]
	if len(seq) > 1 {
		if rec, ok := asRecord(seq[len(seq)-1]); ok {
			meta = decodeMetadata(rec)
			childrenRaw = seq[1 : len(seq)-1]
		}
	}

	if len(seq) == 1 {
		return NewLeaf(name, meta), nil
	}

	children := make([]*Node, 0, len(childrenRaw))
	for i, c := range childrenRaw {
		child, err := decode(c, appendIndex(path, i+1))
		if err != nil {
			return nil, err
		}
		children = append(children, child)
	}
	return &Node{name: name, kind: KindContainer, children: children, meta: meta}, nil
}

// decodeMetadata never fails: any record is metadata, and "starred" is
// read by truthiness.
func decodeMetadata(rec map[string]any) Metadata {
	var meta Metadata
	for k, v := range rec {
		if k == keyStarred {
			meta.Starred = truthy(v)
			meta.starredKey = true
			continue
		}
		if meta.Extra == nil {
			meta.Extra = make(map[string]any)
		}
		meta.Extra[k] = v
	}
	return meta
}

// truthy reports whether v counts as set: false, nil, zero numbers and the
// empty string do not.
func truthy(v any) bool {
	switch x := v.(type) {
	case nil:
		return false
	case bool:
		return x
	case string:
		return x != ""
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int() != 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return rv.Uint() != 0
	case reflect.Float32, reflect.Float64:
		f := rv.Float()
		return f != 0 && !math.IsNaN(f)
	}
	return true
}

// Encode converts a Node back into its encoded form.
//
// A leaf without metadata encodes as its bare name, a leaf with metadata as
// [name, record]. A container encodes as [name, children...] with the
// record appended when the metadata is non-empty or there are no children.
func Encode(n *Node) any {
	if n.kind == KindLeaf {
		if n.meta.IsEmpty() {
			return n.name
		}
		return []any{n.name, n.meta.record()}
	}

	out := make([]any, 0, len(n.children)+2)
	out = append(out, n.name)
	for _, c := range n.children {
		out = append(out, Encode(c))
	}
	if !n.meta.IsEmpty() || len(n.children) == 0 {
		out = append(out, n.meta.record())
	}
	return out
}

// EncodeTree encodes every top-level node in order.
func EncodeTree(t Tree) []any {
	out := make([]any, len(t))
	for i, n := range t {
		out[i] = Encode(n)
	}
	return out
}

func appendIndex(path []int, i int) []int {
	out := make([]int, len(path)+1)
	copy(out, path)
	out[len(path)] = i
	return out
}

// asSequence accepts the sequence types produced by the JSON and YAML
// decoders as well as hand-built []string fixtures.
func asSequence(raw any) ([]any, bool) {
	switch v := raw.(type) {
	case []any:
		return v, true
	case []string:
		out := make([]any, len(v))
		for i, s := range v {
			out[i] = s
		}
		return out, true
	}
	return nil, false
}

// asRecord reports whether raw is a key/value record. Any map counts;
// non-string keys are converted with fmt.Sprint.
func asRecord(raw any) (map[string]any, bool) {
	switch v := raw.(type) {
	case map[string]any:
		return v, true
	case map[any]any:
		out := make(map[string]any, len(v))
		for k, val := range v {
			out[recordKey(k)] = val
		}
		return out, true
	case nil:
		return nil, false
	}

	rv := reflect.ValueOf(raw)
	if rv.Kind() != reflect.Map {
		return nil, false
	}
	out := make(map[string]any, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		out[recordKey(iter.Key().Interface())] = iter.Value().Interface()
	}
	return out, true
}

func recordKey(k any) string {
	if s, ok := k.(string); ok {
		return s
	}
	return fmt.Sprint(k)
}

// rawEqual compares two encoded values structurally.
func rawEqual(a, b any) bool {
	ra, aok := asRecord(a)
	rb, bok := asRecord(b)
	if aok && bok {
		return maps.EqualFunc(ra, rb, rawEqual)
	}
	sa, aok := asSequence(a)
	sb, bok := asSequence(b)
	if aok && bok {
		if len(sa) != len(sb) {
			return false
		}
		for i := range sa {
			if !rawEqual(sa[i], sb[i]) {
				return false
			}
		}
		return true
	}
	return reflect.DeepEqual(a, b)
}

// EqualEncoded reports whether two encoded trees have the same shape,
// treating records with equal keys and values as equal regardless of
// their concrete map type.
func EqualEncoded(a, b any) bool {
	return rawEqual(a, b)
}
