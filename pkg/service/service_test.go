package service

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mattsolo1/grove-projtree/pkg/project"
	"github.com/mattsolo1/grove-projtree/pkg/tree"
)

const fixture = `name: sidebar
tree:
  - [src, [lib, util.ts], a.ts]
  - [docs, guide.md, {starred: true}]
  - readme.md
`

func newTestService(t *testing.T) (*Service, string) {
	t.Helper()
	tmpDir := t.TempDir()

	source := filepath.Join(tmpDir, "sidebar.yaml")
	require.NoError(t, os.WriteFile(source, []byte(fixture), 0644))

	svc, err := New(&Config{DataDir: filepath.Join(tmpDir, "data")}, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = svc.Close() })

	return svc, source
}

func TestOpenByPathAndName(t *testing.T) {
	svc, source := newTestService(t)

	p, err := svc.Open(source)
	require.NoError(t, err)
	assert.Equal(t, "sidebar", p.Name)
	assert.Empty(t, p.ID)

	entry, err := svc.Register("work", source)
	require.NoError(t, err)

	p, err = svc.Open("work")
	require.NoError(t, err)
	assert.Equal(t, "work", p.Name)
	assert.Equal(t, entry.ID, p.ID)

	// Opening the fixture by path picks up the registration too.
	p, err = svc.Open(source)
	require.NoError(t, err)
	assert.Equal(t, "work", p.Name)

	_, err = svc.Open("nowhere")
	assert.Error(t, err)
}

func TestRegisterRejectsBadFixture(t *testing.T) {
	svc, _ := newTestService(t)

	bad := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`[["ok"], [7]]`), 0644))

	_, err := svc.Register("bad", bad)
	require.Error(t, err)
	assert.ErrorIs(t, err, tree.ErrMalformedNode)
}

func TestToggleStarAndSave(t *testing.T) {
	svc, source := newTestService(t)

	p, err := svc.Open(source)
	require.NoError(t, err)

	updated, err := svc.ToggleStar(p, []string{"src", "lib"})
	require.NoError(t, err)
	lib, _ := tree.Find(updated.Tree, []string{"src", "lib"})
	assert.True(t, lib.Starred())

	_, err = svc.ToggleStar(p, []string{"src", "missing"})
	assert.Error(t, err)

	_, err = svc.ToggleStar(p, []string{"readme.md", "deeper"})
	assert.ErrorIs(t, err, tree.ErrPathMismatch)

	out := filepath.Join(t.TempDir(), "out.json")
	require.NoError(t, svc.Save(updated, out))

	reloaded, err := project.LoadFile(out)
	require.NoError(t, err)
	assert.True(t, tree.Equal(updated.Tree, reloaded.Tree))

	// Saving without an output path writes back to the source.
	require.NoError(t, svc.Save(updated, ""))
	reloaded, err = project.LoadFile(source)
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"src", "lib"}, {"docs"}}, tree.Starred(reloaded.Tree))
}

func TestSearch(t *testing.T) {
	svc, source := newTestService(t)

	p, err := svc.Open(source)
	require.NoError(t, err)

	got, err := svc.Search(p, "DOC")
	require.NoError(t, err)
	assert.Equal(t, []string{"docs"}, got.Names())

	got, err = svc.Search(p, "*.md", UseGlob())
	require.NoError(t, err)
	assert.Equal(t, []string{"readme.md"}, got.Names())
}
