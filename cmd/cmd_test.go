package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mattsolo1/grove-projtree/pkg/project"
	"github.com/mattsolo1/grove-projtree/pkg/service"
	"github.com/mattsolo1/grove-projtree/pkg/tree"
)

const fixture = `name: sidebar
tree:
  - [src, [lib, util.ts], a.ts]
  - [docs, guide.md, {starred: true}]
  - readme.md
`

func setup(t *testing.T) (*service.Service, string) {
	t.Helper()
	tmpDir := t.TempDir()

	source := filepath.Join(tmpDir, "sidebar.yaml")
	require.NoError(t, os.WriteFile(source, []byte(fixture), 0644))

	svc, err := service.New(&service.Config{DataDir: filepath.Join(tmpDir, "data")}, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = svc.Close() })

	return svc, source
}

func run(t *testing.T, cmd *cobra.Command, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestParsePath(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want []string
	}{
		{"single name", []string{"docs"}, []string{"docs"}},
		{"one arg per level", []string{"src", "lib"}, []string{"src", "lib"}},
		{"slash separated", []string{"src/lib"}, []string{"src", "lib"}},
		{"leading and trailing slash", []string{"/src/lib/"}, []string{"src", "lib"}},
		{"names with spaces", []string{"AI Projects", "Neural Network"}, []string{"AI Projects", "Neural Network"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, parsePath(tt.args))
		})
	}
}

func TestShowCmd(t *testing.T) {
	svc, source := setup(t)

	out, err := run(t, NewShowCmd(&svc), source)
	require.NoError(t, err)
	assert.Equal(t, `sidebar
├── src/
│   ├── lib/
│   │   └── util.ts
│   └── a.ts
├── ★ docs/
│   └── guide.md
└── readme.md
`, out)

	out, err = run(t, NewShowCmd(&svc), source, "--starred")
	require.NoError(t, err)
	assert.Equal(t, "sidebar\n└── ★ docs/\n", out)
}

func TestShowCmdJSON(t *testing.T) {
	svc, source := setup(t)

	out, err := run(t, NewShowCmd(&svc), source, "--json")
	require.NoError(t, err)

	var p project.Project
	require.NoError(t, json.Unmarshal([]byte(out), &p))
	assert.Equal(t, "sidebar", p.Name)
	assert.Equal(t, []string{"src", "docs", "readme.md"}, p.Tree.Names())
}

func TestStarCmdWrite(t *testing.T) {
	svc, source := setup(t)

	_, err := run(t, NewStarCmd(&svc), source, "src/lib", "--write", "--quiet")
	require.NoError(t, err)

	p, err := project.LoadFile(source)
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"src", "lib"}, {"docs"}}, tree.Starred(p.Tree))

	out := filepath.Join(t.TempDir(), "out.json")
	_, err = run(t, NewStarCmd(&svc), source, "docs", "-o", out, "-q")
	require.NoError(t, err)

	p, err = project.LoadFile(out)
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"src", "lib"}}, tree.Starred(p.Tree))
}

func TestStarCmdErrors(t *testing.T) {
	svc, source := setup(t)

	_, err := run(t, NewStarCmd(&svc), source, "readme.md", "deeper")
	require.Error(t, err)
	assert.ErrorIs(t, err, tree.ErrPathMismatch)

	_, err = run(t, NewStarCmd(&svc), source, "missing")
	assert.Error(t, err)

	_, err = run(t, NewStarCmd(&svc), source)
	assert.Error(t, err)
}

func TestSearchCmd(t *testing.T) {
	svc, source := setup(t)

	out, err := run(t, NewSearchCmd(&svc), source, "DOC")
	require.NoError(t, err)
	assert.Equal(t, "sidebar\n└── ★ docs/\n    └── guide.md\n", out)

	out, err = run(t, NewSearchCmd(&svc), source, "*.md", "--glob")
	require.NoError(t, err)
	assert.Equal(t, "sidebar\n└── readme.md\n", out)

	out, err = run(t, NewSearchCmd(&svc), source, "nothing-here")
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestProjectCmd(t *testing.T) {
	svc, source := setup(t)

	_, err := run(t, NewProjectCmd(&svc), "add", "work", source)
	require.NoError(t, err)

	out, err := run(t, NewProjectCmd(&svc), "list", "--json")
	require.NoError(t, err)
	var entries []project.Entry
	require.NoError(t, json.Unmarshal([]byte(out), &entries))
	require.Len(t, entries, 1)
	assert.Equal(t, "work", entries[0].Name)

	out, err = run(t, NewShowCmd(&svc), "work", "--depth", "1")
	require.NoError(t, err)
	assert.Equal(t, "work\n├── src/\n├── ★ docs/\n└── readme.md\n", out)

	_, err = run(t, NewProjectCmd(&svc), "remove", "work")
	require.NoError(t, err)

	_, err = run(t, NewProjectCmd(&svc), "remove", "work")
	assert.ErrorIs(t, err, project.ErrNotRegistered)
}
