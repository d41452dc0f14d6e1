// Package bookmarks manages named, shareable filtered views saved to a
// YAML file next to the kiosk configuration.
package bookmarks

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/seralin/musekiosk/internal/models"
	"github.com/seralin/musekiosk/internal/urlstate"
)

// Bookmark is one saved view: the flat filter plus its canonical encoded
// search string, so the view can be re-entered or shared as a URL.
type Bookmark struct {
	ID        string            `yaml:"id"`
	Name      string            `yaml:"name"`
	Filter    models.FlatFilter `yaml:"filter"`
	Search    string            `yaml:"search"`
	CreatedAt time.Time         `yaml:"created_at"`
}

// Manager manages bookmark persistence
type Manager struct {
	path      string
	bookmarks []Bookmark
}

// NewManager creates a manager storing bookmarks under configDir
func NewManager(configDir string) (*Manager, error) {
	m := &Manager{
		path:      filepath.Join(configDir, "bookmarks.yaml"),
		bookmarks: []Bookmark{},
	}
	if _, err := os.Stat(m.path); err == nil {
		if err := m.Load(); err != nil {
			return nil, fmt.Errorf("failed to load bookmarks: %w", err)
		}
	}
	return m, nil
}

// Load loads bookmarks from the YAML file
func (m *Manager) Load() error {
	data, err := os.ReadFile(m.path)
	if err != nil {
		return fmt.Errorf("failed to read bookmarks file: %w", err)
	}
	if err := yaml.Unmarshal(data, &m.bookmarks); err != nil {
		return fmt.Errorf("failed to parse bookmarks: %w", err)
	}
	return nil
}

// Save saves bookmarks to the YAML file
func (m *Manager) Save() error {
	data, err := yaml.Marshal(m.bookmarks)
	if err != nil {
		return fmt.Errorf("failed to marshal bookmarks: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(m.path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(m.path, data, 0644); err != nil {
		return fmt.Errorf("failed to write bookmarks file: %w", err)
	}
	return nil
}

// Add saves a new bookmark for the given flat filter. The filter is
// validated and encoded here so every stored bookmark round-trips.
func (m *Manager) Add(name string, f models.FlatFilter) (*Bookmark, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("bookmark name cannot be empty")
	}
	for _, b := range m.bookmarks {
		if strings.EqualFold(b.Name, name) {
			return nil, fmt.Errorf("a bookmark named '%s' already exists", name)
		}
	}

	params, err := urlstate.ToParams(f)
	if err != nil {
		return nil, fmt.Errorf("cannot bookmark filter: %w", err)
	}

	bookmark := Bookmark{
		ID:        uuid.New().String(),
		Name:      name,
		Filter:    f,
		Search:    urlstate.EncodeSearch(params),
		CreatedAt: time.Now(),
	}
	m.bookmarks = append(m.bookmarks, bookmark)

	if err := m.Save(); err != nil {
		return nil, fmt.Errorf("failed to save bookmark: %w", err)
	}
	return &bookmark, nil
}

// Delete removes a bookmark by id
func (m *Manager) Delete(id string) error {
	for i, b := range m.bookmarks {
		if b.ID == id {
			m.bookmarks = append(m.bookmarks[:i], m.bookmarks[i+1:]...)
			if err := m.Save(); err != nil {
				return fmt.Errorf("failed to save bookmarks after deletion: %w", err)
			}
			return nil
		}
	}
	return fmt.Errorf("bookmark with ID '%s' was not found", id)
}

// Get returns a bookmark by id
func (m *Manager) Get(id string) (*Bookmark, error) {
	for _, b := range m.bookmarks {
		if b.ID == id {
			return &b, nil
		}
	}
	return nil, fmt.Errorf("bookmark with ID '%s' was not found", id)
}

// List returns all bookmarks sorted by name
func (m *Manager) List() []Bookmark {
	out := make([]Bookmark, len(m.bookmarks))
	copy(out, m.bookmarks)
	sort.Slice(out, func(i, j int) bool {
		return strings.ToLower(out[i].Name) < strings.ToLower(out[j].Name)
	})
	return out
}

// Resolve rebuilds the flat filter from a bookmark's stored search string.
// This is the same decode path a shared URL takes, so a bookmark saved by
// an older kiosk build degrades the same way a stale URL does.
func (m *Manager) Resolve(b Bookmark) (models.FlatFilter, error) {
	return urlstate.ToFilter(urlstate.ParseSearch(b.Search), b.Filter.Type)
}
