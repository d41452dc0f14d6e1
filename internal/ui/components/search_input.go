package components

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/seralin/musekiosk/internal/filter"
	"github.com/seralin/musekiosk/internal/models"
	"github.com/seralin/musekiosk/internal/ui/theme"
)

// SearchMsg is sent when a search should be executed
type SearchMsg struct {
	Query string
}

// CloseSearchMsg is sent when search should be closed
type CloseSearchMsg struct{}

// SearchInput provides the kiosk name-search box
type SearchInput struct {
	Input   textinput.Model
	Theme   theme.Theme
	Width   int
	Visible bool
}

// NewSearchInput creates a new search input
func NewSearchInput(th theme.Theme) *SearchInput {
	ti := textinput.New()
	ti.Placeholder = "Search records..."
	ti.Focus()
	ti.CharLimit = 128
	ti.Width = 40

	return &SearchInput{
		Input: ti,
		Theme: th,
	}
}

// Reset clears the search input
func (s *SearchInput) Reset() {
	s.Input.SetValue("")
}

// Update handles messages
func (s *SearchInput) Update(msg tea.Msg) (*SearchInput, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "enter":
			query := strings.TrimSpace(s.Input.Value())
			if query != "" {
				return s, func() tea.Msg {
					return SearchMsg{Query: query}
				}
			}
			return s, nil
		case "esc":
			return s, func() tea.Msg {
				return CloseSearchMsg{}
			}
		}
	}

	var cmd tea.Cmd
	s.Input, cmd = s.Input.Update(msg)
	return s, cmd
}

// View renders the search input
func (s *SearchInput) View() string {
	if !s.Visible {
		return ""
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(s.Theme.BorderFocused).
		Padding(0, 1).
		Render(s.Input.View())
}

// MatchRecords filters records whose text fields contain the query,
// case-insensitively, across every declared string field. It reuses the
// engine's contains predicate under an OR group so search behaves exactly
// like an equivalent filter.
func MatchRecords(ct models.ContentType, records []models.Record, query string, now time.Time) []models.Record {
	node := &filter.Node{Operator: models.OpAnd, Group: &filter.Group{Operator: models.OpOr}}
	for _, def := range models.Schema(ct) {
		if def.Kind != models.FieldString {
			continue
		}
		node.Group.Predicates = append(node.Group.Predicates,
			models.NewTextPredicate(def.Name, models.MatchContains, query))
	}

	var out []models.Record
	for _, rec := range records {
		if filter.MatchesNode(node, rec, now) {
			out = append(out, rec)
		}
	}
	return out
}
