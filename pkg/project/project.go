package project

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/mattsolo1/grove-projtree/pkg/tree"
)

// Format is the serialization used for a fixture file.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// Project is a named project tree.
type Project struct {
	ID     string    `json:"id,omitempty" yaml:"id,omitempty"`
	Name   string    `json:"name,omitempty" yaml:"name,omitempty"`
	Source string    `json:"-" yaml:"-"` // Fixture path the project was loaded from
	Tree   tree.Tree `json:"tree" yaml:"tree"`
}

// FormatFromPath picks a format from the file extension. Unknown
// extensions return fallback.
func FormatFromPath(path string, fallback Format) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON
	case ".yaml", ".yml":
		return FormatYAML
	}
	return fallback
}

// ParseFormat validates a format name from config or flags.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(s)) {
	case FormatYAML, "yml":
		return FormatYAML, nil
	case FormatJSON:
		return FormatJSON, nil
	}
	return "", fmt.Errorf("unknown format %q (want yaml or json)", s)
}

// Load reads a project from r. The document is either a bare sequence of
// nodes or an object with a "tree" key and an optional "name".
func Load(r io.Reader, format Format) (*Project, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read fixture: %w", err)
	}

	var raw any
	switch format {
	case FormatJSON:
		err = json.Unmarshal(data, &raw)
	default:
		err = yaml.Unmarshal(data, &raw)
	}
	if err != nil {
		return nil, fmt.Errorf("parse %s fixture: %w", format, err)
	}

	p := &Project{}
	treeRaw := raw
	if doc, ok := raw.(map[string]any); ok {
		treeRaw, ok = doc["tree"]
		if !ok {
			return nil, fmt.Errorf("fixture object has no \"tree\" key")
		}
		if name, ok := doc["name"].(string); ok {
			p.Name = name
		}
		if id, ok := doc["id"].(string); ok {
			p.ID = id
		}
	}

	p.Tree, err = tree.DecodeTree(treeRaw)
	if err != nil {
		return nil, fmt.Errorf("decode tree: %w", err)
	}
	return p, nil
}

// LoadFile reads a fixture from disk, choosing the format from the
// extension. A project without a name is named after the file.
func LoadFile(path string) (*Project, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open fixture %q: %w", path, err)
	}
	defer f.Close()

	p, err := Load(f, FormatFromPath(path, FormatYAML))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if p.Name == "" {
		p.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	p.Source = path
	return p, nil
}

// Write serializes p as an object with a "tree" key.
func Write(w io.Writer, p *Project, format Format) error {
	var data []byte
	var err error
	switch format {
	case FormatJSON:
		data, err = json.MarshalIndent(p, "", "  ")
		data = append(data, '\n')
	default:
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err = enc.Encode(p); err == nil {
			err = enc.Close()
		}
		data = buf.Bytes()
	}
	if err != nil {
		return fmt.Errorf("encode project: %w", err)
	}
	_, err = w.Write(data)
	return err
}

// SaveFile writes p to path, replacing any existing file.
func SaveFile(path string, p *Project, format Format) error {
	var buf bytes.Buffer
	if err := Write(&buf, p, format); err != nil {
		return err
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("write fixture: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("replace fixture: %w", err)
	}
	return nil
}
