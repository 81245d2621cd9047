package project

import (
	"errors"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/mattsolo1/grove-projtree/pkg/tree"
)

// State holds the current version of a project. Mutations compute a new
// tree and replace the held project as a whole; the previous project is
// never modified and stays valid for anyone still holding it.
type State struct {
	mu      sync.Mutex
	current *Project
	logger  *logrus.Logger
}

// NewState creates a state cell holding p. A nil logger discards output.
func NewState(p *Project, logger *logrus.Logger) *State {
	if logger == nil {
		logger = logrus.New()
		logger.SetLevel(logrus.PanicLevel)
	}
	return &State{current: p, logger: logger}
}

// Current returns the project as of the last successful mutation.
func (s *State) Current() *Project {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// ToggleStarred flips the starred flag of the node at path and swaps in the
// resulting project. If the path runs past a leaf the held project is left
// as it was and the mismatch is returned.
func (s *State) ToggleStarred(path []string) (*Project, error) {
	return s.update(path, func(t tree.Tree) (tree.Tree, error) {
		return tree.ToggleStarred(t, path)
	})
}

// SetStarred sets the starred flag of the node at path.
func (s *State) SetStarred(path []string, v bool) (*Project, error) {
	return s.update(path, func(t tree.Tree) (tree.Tree, error) {
		return tree.SetStarred(t, path, v)
	})
}

// Filter narrows the current top level by name.
func (s *State) Filter(substring string) tree.Tree {
	return tree.FilterTopLevel(s.Current().Tree, substring)
}

func (s *State) update(path []string, fn func(tree.Tree) (tree.Tree, error)) (*Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	log := s.logger.WithFields(logrus.Fields{
		"project": s.current.Name,
		"path":    tree.FormatPath(path),
	})

	next, err := fn(s.current.Tree)
	if err != nil {
		if errors.Is(err, tree.ErrPathMismatch) {
			log.WithError(err).Warn("star toggle ignored")
		}
		return s.current, err
	}

	if _, ok := tree.Find(next, path); !ok {
		log.Debug("path not found, tree unchanged")
	}

	swapped := *s.current
	swapped.Tree = next
	s.current = &swapped
	log.Debug("project updated")
	return s.current, nil
}
