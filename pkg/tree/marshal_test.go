package tree

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestJSON(t *testing.T) {
	input := `["docs", ["src", "a.ts", ["lib", "util.ts", {"starred": true}]], "readme.md"]`

	var tr Tree
	require.NoError(t, json.Unmarshal([]byte(input), &tr))
	require.Len(t, tr, 3)

	lib, ok := Find(tr, []string{"src", "lib"})
	require.True(t, ok)
	assert.True(t, lib.Starred())

	out, err := json.Marshal(tr)
	require.NoError(t, err)
	assert.JSONEq(t, input, string(out))
}

func TestJSONMalformed(t *testing.T) {
	var tr Tree
	err := json.Unmarshal([]byte(`["ok", [1, 2]]`), &tr)
	assert.ErrorIs(t, err, ErrMalformedNode)
}

func TestJSONInsideStruct(t *testing.T) {
	var doc struct {
		Tree Tree `json:"tree"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"tree": [["src", "a.ts"]]}`), &doc))
	require.Len(t, doc.Tree, 1)
	assert.True(t, doc.Tree[0].IsContainer())

	out, err := json.Marshal(doc.Tree[0])
	require.NoError(t, err)
	assert.JSONEq(t, `["src", "a.ts"]`, string(out))
}

func TestYAML(t *testing.T) {
	input := `
- [AI Projects, [Neural Network, README.md], {starred: true}]
- [Web Dev, [Portfolio Site, package.json]]
- research_paper.pdf
`
	var tr Tree
	require.NoError(t, yaml.Unmarshal([]byte(input), &tr))
	require.Len(t, tr, 3)
	assert.True(t, tr[0].Starred())
	assert.Equal(t, KindLeaf, tr[2].Kind())

	out, err := yaml.Marshal(tr)
	require.NoError(t, err)
	assert.Equal(t, "- [AI Projects, [Neural Network, README.md], {starred: true}]\n"+
		"- [Web Dev, [Portfolio Site, package.json]]\n"+
		"- research_paper.pdf\n", string(out))

	var again Tree
	require.NoError(t, yaml.Unmarshal(out, &again))
	assert.True(t, Equal(tr, again))
}

func TestYAMLQuotesAmbiguousNames(t *testing.T) {
	tr := Tree{
		NewLeaf("true", Metadata{}),
		NewContainer("a, b", []*Node{NewLeaf("[x]", Metadata{})}, Metadata{}),
	}

	out, err := yaml.Marshal(tr)
	require.NoError(t, err)

	var again Tree
	require.NoError(t, yaml.Unmarshal(out, &again))
	assert.True(t, Equal(tr, again), "yaml was:\n%s", out)
}

func TestYAMLMatchesJSON(t *testing.T) {
	tr := mustDecodeTree(t, sampleProjects())

	y, err := yaml.Marshal(tr)
	require.NoError(t, err)
	var fromYAML Tree
	require.NoError(t, yaml.Unmarshal(y, &fromYAML))

	j, err := json.Marshal(tr)
	require.NoError(t, err)
	var fromJSON Tree
	require.NoError(t, json.Unmarshal(j, &fromJSON))

	assert.True(t, Equal(fromYAML, fromJSON))
	assert.True(t, Equal(tr, fromJSON))
}
