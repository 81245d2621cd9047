package project

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
)

// ErrNotRegistered is returned when a project name is not in the registry.
var ErrNotRegistered = errors.New("project not registered")

// Entry is a registered project: a name bound to the fixture holding its
// tree. The registry never stores tree contents.
type Entry struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Source    string    `json:"source"`
	CreatedAt time.Time `json:"created_at"`
	LastUsed  time.Time `json:"last_used"`
}

// Validate checks the entry and expands the source path.
func (e *Entry) Validate() error {
	if e.Name == "" {
		return fmt.Errorf("project name cannot be empty")
	}
	if e.Source == "" {
		return fmt.Errorf("project source cannot be empty")
	}

	// Expand home directory
	if strings.HasPrefix(e.Source, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return err
		}
		e.Source = filepath.Join(home, e.Source[1:])
	}

	abs, err := filepath.Abs(e.Source)
	if err != nil {
		return err
	}
	e.Source = abs
	return nil
}

// Registry manages project registration
type Registry struct {
	db      *sql.DB
	dataDir string
}

// NewRegistry opens (or creates) the registry database in dataDir
func NewRegistry(dataDir string) (*Registry, error) {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}

	dbPath := filepath.Join(dataDir, "projects.db")
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	r := &Registry{
		db:      db,
		dataDir: dataDir,
	}

	if err := r.init(); err != nil {
		db.Close()
		return nil, fmt.Errorf("initialize registry: %w", err)
	}

	return r, nil
}

// init creates the database schema
func (r *Registry) init() error {
	schema := `
	CREATE TABLE IF NOT EXISTS projects (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL UNIQUE,
		source TEXT NOT NULL,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		last_used TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_projects_source ON projects(source);
	`

	_, err := r.db.Exec(schema)
	return err
}

// Add registers a project. Re-adding an existing name rebinds it to the new
// source and keeps its ID.
func (r *Registry) Add(e *Entry) error {
	if err := e.Validate(); err != nil {
		return fmt.Errorf("validate project: %w", err)
	}

	if existing, err := r.Get(e.Name); err == nil {
		e.ID = existing.ID
		e.CreatedAt = existing.CreatedAt
	} else if !errors.Is(err, ErrNotRegistered) {
		return err
	}
	if e.ID == "" {
		e.ID = uuid.NewString()
	}

	now := time.Now()
	if e.CreatedAt.IsZero() {
		e.CreatedAt = now
	}
	e.LastUsed = now

	query := `
	INSERT OR REPLACE INTO projects (id, name, source, created_at, last_used)
	VALUES (?, ?, ?, ?, ?)
	`
	_, err := r.db.Exec(query, e.ID, e.Name, e.Source, e.CreatedAt, e.LastUsed)
	return err
}

// Get retrieves a project by name
func (r *Registry) Get(name string) (*Entry, error) {
	query := `
	SELECT id, name, source, created_at, last_used
	FROM projects WHERE name = ?
	`

	e := &Entry{}
	err := r.db.QueryRow(query, name).Scan(&e.ID, &e.Name, &e.Source, &e.CreatedAt, &e.LastUsed)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrNotRegistered, name)
	}
	if err != nil {
		return nil, err
	}
	return e, nil
}

// FindBySource returns the project registered for a fixture path, or nil
func (r *Registry) FindBySource(path string) (*Entry, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	query := `
	SELECT id, name, source, created_at, last_used
	FROM projects WHERE source = ? ORDER BY last_used DESC LIMIT 1
	`

	e := &Entry{}
	err = r.db.QueryRow(query, abs).Scan(&e.ID, &e.Name, &e.Source, &e.CreatedAt, &e.LastUsed)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return e, nil
}

// List returns all registered projects, most recently used first
func (r *Registry) List() ([]*Entry, error) {
	query := `
	SELECT id, name, source, created_at, last_used
	FROM projects ORDER BY last_used DESC, name ASC
	`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []*Entry
	for rows.Next() {
		e := &Entry{}
		if err := rows.Scan(&e.ID, &e.Name, &e.Source, &e.CreatedAt, &e.LastUsed); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}

	return entries, rows.Err()
}

// Touch updates the last used timestamp for a project
func (r *Registry) Touch(name string) error {
	res, err := r.db.Exec(
		"UPDATE projects SET last_used = ? WHERE name = ?",
		time.Now(), name,
	)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%w: %s", ErrNotRegistered, name)
	}
	return nil
}

// Remove removes a project from the registry
func (r *Registry) Remove(name string) error {
	res, err := r.db.Exec("DELETE FROM projects WHERE name = ?", name)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%w: %s", ErrNotRegistered, name)
	}
	return nil
}

// Open loads the fixture of a registered project and marks it used.
func (r *Registry) Open(name string) (*Project, error) {
	e, err := r.Get(name)
	if err != nil {
		return nil, err
	}

	p, err := LoadFile(e.Source)
	if err != nil {
		return nil, err
	}
	p.ID = e.ID
	p.Name = e.Name

	if err := r.Touch(name); err != nil {
		return nil, fmt.Errorf("update last used: %w", err)
	}
	return p, nil
}

// Close closes the registry database
func (r *Registry) Close() error {
	return r.db.Close()
}
