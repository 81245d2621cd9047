package tree

import (
	"fmt"
	"strings"

	"github.com/gobwas/glob"
	"golang.org/x/text/cases"
)

// FilterTopLevel keeps the top-level nodes whose name contains substring,
// ignoring case. Children are not searched. An empty substring returns t
// itself.
func FilterTopLevel(t Tree, substring string) Tree {
	if substring == "" {
		return t
	}

	// A Caser carries state and is not shared across calls.
	fold := cases.Fold()
	needle := fold.String(substring)

	out := make(Tree, 0, len(t))
	for _, n := range t {
		if strings.Contains(fold.String(n.name), needle) {
			out = append(out, n)
		}
	}
	return out
}

// FilterTopLevelGlob keeps the top-level nodes whose name matches the glob
// pattern, ignoring case. An empty pattern returns t itself.
func FilterTopLevelGlob(t Tree, pattern string) (Tree, error) {
	if pattern == "" {
		return t, nil
	}

	fold := cases.Fold()
	g, err := glob.Compile(fold.String(pattern))
	if err != nil {
		return nil, fmt.Errorf("compile pattern %q: %w", pattern, err)
	}

	out := make(Tree, 0, len(t))
	for _, n := range t {
		if g.Match(fold.String(n.name)) {
			out = append(out, n)
		}
	}
	return out, nil
}
