package service

import (
	"errors"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/mattsolo1/grove-projtree/pkg/project"
	"github.com/mattsolo1/grove-projtree/pkg/tree"
)

// Service is the core project service used by the CLI
type Service struct {
	Registry *project.Registry
	Config   *Config
	logger   *logrus.Logger
}

// Config holds service configuration
type Config struct {
	DataDir       string
	DefaultFormat project.Format
}

// New creates a new project service
func New(config *Config, logger *logrus.Logger) (*Service, error) {
	if logger == nil {
		logger = logrus.New()
		logger.SetLevel(logrus.WarnLevel)
	}
	if config.DefaultFormat == "" {
		config.DefaultFormat = project.FormatYAML
	}

	registry, err := project.NewRegistry(config.DataDir)
	if err != nil {
		return nil, fmt.Errorf("open registry: %w", err)
	}

	return &Service{
		Registry: registry,
		Config:   config,
		logger:   logger,
	}, nil
}

// Logger returns the service's diagnostic logger
func (s *Service) Logger() *logrus.Logger {
	return s.logger
}

// Open resolves ref to a project. A registered project name wins over a
// fixture path of the same spelling.
func (s *Service) Open(ref string) (*project.Project, error) {
	p, err := s.Registry.Open(ref)
	if err == nil {
		s.logger.WithField("project", ref).Debug("opened registered project")
		return p, nil
	}
	if !errors.Is(err, project.ErrNotRegistered) {
		return nil, err
	}

	if _, statErr := os.Stat(ref); statErr != nil {
		return nil, fmt.Errorf("no registered project or fixture file named %q", ref)
	}

	p, err = project.LoadFile(ref)
	if err != nil {
		return nil, err
	}

	entry, err := s.Registry.FindBySource(ref)
	if err != nil {
		s.logger.WithError(err).Warn("registry lookup by source failed")
	} else if entry != nil {
		p.ID = entry.ID
		p.Name = entry.Name
		if err := s.Registry.Touch(entry.Name); err != nil {
			s.logger.WithError(err).Warn("failed to update last used")
		}
	}

	s.logger.WithField("source", ref).Debug("loaded fixture")
	return p, nil
}

// Register binds name to a fixture after checking that the fixture loads
func (s *Service) Register(name, source string) (*project.Entry, error) {
	p, err := project.LoadFile(source)
	if err != nil {
		return nil, fmt.Errorf("check fixture: %w", err)
	}
	if name == "" {
		name = p.Name
	}

	entry := &project.Entry{Name: name, Source: source}
	if err := s.Registry.Add(entry); err != nil {
		return nil, fmt.Errorf("register project: %w", err)
	}

	s.logger.WithFields(logrus.Fields{
		"project": entry.Name,
		"source":  entry.Source,
		"nodes":   len(p.Tree),
	}).Debug("registered project")
	return entry, nil
}

// Save writes p to out, or back to the fixture it was loaded from when out
// is empty.
func (s *Service) Save(p *project.Project, out string) error {
	path := out
	if path == "" {
		path = p.Source
	}
	if path == "" {
		return fmt.Errorf("project %q has no fixture to write to", p.Name)
	}

	format := project.FormatFromPath(path, s.Config.DefaultFormat)
	if err := project.SaveFile(path, p, format); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	s.logger.WithFields(logrus.Fields{"path": path, "format": format}).Debug("saved project")
	return nil
}

// ToggleStar applies a star toggle to a project through a state cell and
// returns the updated project.
func (s *Service) ToggleStar(p *project.Project, path []string) (*project.Project, error) {
	if len(path) == 0 {
		return nil, fmt.Errorf("empty path")
	}

	state := project.NewState(p, s.logger)
	updated, err := state.ToggleStarred(path)
	if err != nil {
		return nil, err
	}
	if _, ok := tree.Find(updated.Tree, path); !ok {
		return nil, fmt.Errorf("%s not found in %s", tree.FormatPath(path), p.Name)
	}
	return updated, nil
}

// SearchOption configures Search
type SearchOption func(*searchOptions)

type searchOptions struct {
	glob bool
}

// UseGlob treats the query as a glob pattern
func UseGlob() SearchOption {
	return func(o *searchOptions) {
		o.glob = true
	}
}

// Search narrows the top level of a project by name
func (s *Service) Search(p *project.Project, query string, options ...SearchOption) (tree.Tree, error) {
	opts := &searchOptions{}
	for _, opt := range options {
		opt(opts)
	}

	if opts.glob {
		return tree.FilterTopLevelGlob(p.Tree, query)
	}
	return tree.FilterTopLevel(p.Tree, query), nil
}

// Close releases the registry
func (s *Service) Close() error {
	return s.Registry.Close()
}
