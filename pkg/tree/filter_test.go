package tree

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilterTopLevel(t *testing.T) {
	tr := mustDecodeTree(t, sampleProjects())

	tests := []struct {
		query string
		want  []string
	}{
		{query: "ai", want: []string{"AI Projects"}},
		{query: "WEB", want: []string{"Web Dev"}},
		{query: ".md", want: []string{"meeting_notes.md"}},
		{query: "s", want: []string{"AI Projects", "Math Algorithms", "research_paper.pdf", "meeting_notes.md"}},
		{query: "neural", want: []string{}},
		{query: "zzz", want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			got := FilterTopLevel(tr, tt.query)
			assert.Equal(t, tt.want, got.Names())
			for _, n := range got {
				assert.Contains(t, tr, n)
			}
		})
	}
}

func TestFilterTopLevelEmptyQueryReturnsInput(t *testing.T) {
	tr := mustDecodeTree(t, sampleProjects())
	got := FilterTopLevel(tr, "")
	require.Len(t, got, len(tr))
	assert.Same(t, &tr[0], &got[0])
}

func TestFilterTopLevelDoesNotCopyNodes(t *testing.T) {
	tr := mustDecodeTree(t, sampleProjects())
	got := FilterTopLevel(tr, "dev")
	require.Len(t, got, 1)
	assert.Same(t, tr[1], got[0])
}

func TestFilterTopLevelGlob(t *testing.T) {
	tr := mustDecodeTree(t, sampleProjects())

	tests := []struct {
		pattern string
		want    []string
	}{
		{pattern: "*.md", want: []string{"meeting_notes.md"}},
		{pattern: "*PROJECTS", want: []string{"AI Projects"}},
		{pattern: "{web,math}*", want: []string{"Web Dev", "Math Algorithms"}},
		{pattern: "nothing", want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			got, err := FilterTopLevelGlob(tr, tt.pattern)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.Names())
		})
	}

	got, err := FilterTopLevelGlob(tr, "")
	require.NoError(t, err)
	assert.Same(t, &tr[0], &got[0])
}
