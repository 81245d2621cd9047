package tree

import (
	"encoding/json"
	"fmt"
	"sort"

	"gopkg.in/yaml.v3"
)

// MarshalJSON writes the tree in its encoded form.
func (t Tree) MarshalJSON() ([]byte, error) {
	return json.Marshal(EncodeTree(t))
}

// UnmarshalJSON reads a tree from its encoded form.
func (t *Tree) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	decoded, err := DecodeTree(raw)
	if err != nil {
		return err
	}
	*t = decoded
	return nil
}

func (n *Node) MarshalJSON() ([]byte, error) {
	return json.Marshal(Encode(n))
}

// MarshalYAML writes the tree as a block sequence with one flow-style
// entry per top-level node, mirroring how seed fixtures are written by hand.
func (t Tree) MarshalYAML() (any, error) {
	seq := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
	for _, n := range t {
		child, err := yamlNode(Encode(n))
		if err != nil {
			return nil, fmt.Errorf("encode %q: %w", n.name, err)
		}
		seq.Content = append(seq.Content, child)
	}
	return seq, nil
}

// UnmarshalYAML reads a tree from its encoded form.
func (t *Tree) UnmarshalYAML(value *yaml.Node) error {
	var raw any
	if err := value.Decode(&raw); err != nil {
		return err
	}
	decoded, err := DecodeTree(raw)
	if err != nil {
		return err
	}
	*t = decoded
	return nil
}

func yamlNode(raw any) (*yaml.Node, error) {
	if seq, ok := asSequence(raw); ok {
		out := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq", Style: yaml.FlowStyle}
		for _, item := range seq {
			child, err := yamlNode(item)
			if err != nil {
				return nil, err
			}
			out.Content = append(out.Content, child)
		}
		return out, nil
	}

	if rec, ok := asRecord(raw); ok {
		out := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map", Style: yaml.FlowStyle}
		keys := make([]string, 0, len(rec))
		for k := range rec {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			key := &yaml.Node{}
			if err := key.Encode(k); err != nil {
				return nil, err
			}
			val, err := yamlNode(rec[k])
			if err != nil {
				return nil, err
			}
			out.Content = append(out.Content, key, val)
		}
		return out, nil
	}

	scalar := &yaml.Node{}
	if err := scalar.Encode(raw); err != nil {
		return nil, err
	}
	return scalar, nil
}
