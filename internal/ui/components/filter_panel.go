package components

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/seralin/musekiosk/internal/filter"
	"github.com/seralin/musekiosk/internal/models"
	"github.com/seralin/musekiosk/internal/ui/theme"
)

// ApplyFilterMsg is sent when the edited filter tree should be applied
type ApplyFilterMsg struct {
	Tree *filter.Tree
}

// CloseFilterPanelMsg is sent when the filter panel should close
type CloseFilterPanelMsg struct{}

// FilterPanel is the interactive builder for the nested filter tree. It
// always edits the node the cursor sits on; nested groups are entered the
// same way records are.
type FilterPanel struct {
	Width  int
	Height int
	Theme  theme.Theme

	tree   *filter.Tree
	nodes  []*filter.Node // pre-order, refreshed after every edit
	depths []int
	cursor int

	editMode    string // "", "field", "kind", "value"
	fieldIndex  int
	kindIndex   int
	valueInput  string
	editField   models.FieldDef
	editKind    models.PredicateKind
	statusError string
}

var predicateKinds = []models.PredicateKind{
	models.PredicateText,
	models.PredicateRange,
	models.PredicateDate,
	models.PredicateBoolean,
}

// NewFilterPanel creates a filter panel editing a fresh tree for ct
func NewFilterPanel(th theme.Theme, ct models.ContentType) (*FilterPanel, error) {
	tree, err := filter.NewTree(ct)
	if err != nil {
		return nil, err
	}
	fp := &FilterPanel{
		Width:  80,
		Height: 30,
		Theme:  th,
		tree:   tree,
	}
	fp.refresh()
	return fp, nil
}

// Tree returns the tree being edited
func (fp *FilterPanel) Tree() *filter.Tree {
	return fp.tree
}

func (fp *FilterPanel) refresh() {
	fp.nodes = fp.nodes[:0]
	fp.depths = fp.depths[:0]
	fp.tree.Walk(func(n *filter.Node, depth int) bool {
		fp.nodes = append(fp.nodes, n)
		fp.depths = append(fp.depths, depth)
		return true
	})
	if fp.cursor >= len(fp.nodes) {
		fp.cursor = len(fp.nodes) - 1
	}
}

func (fp *FilterPanel) current() *filter.Node {
	return fp.nodes[fp.cursor]
}

// Update handles keyboard input
func (fp *FilterPanel) Update(msg tea.KeyMsg) (*FilterPanel, tea.Cmd) {
	switch fp.editMode {
	case "":
		return fp.handleNavigationMode(msg)
	case "field":
		return fp.handleFieldMode(msg)
	case "kind":
		return fp.handleKindMode(msg)
	case "value":
		return fp.handleValueMode(msg)
	}
	return fp, nil
}

func (fp *FilterPanel) handleNavigationMode(msg tea.KeyMsg) (*FilterPanel, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if fp.cursor > 0 {
			fp.cursor--
		}
	case "down", "j":
		if fp.cursor < len(fp.nodes)-1 {
			fp.cursor++
		}
	case "a", "n":
		// Add a predicate to the current node
		fp.editMode = "field"
		fp.fieldIndex = 0
		fp.statusError = ""
	case "g":
		// Add a nested group under the current node
		if _, err := fp.tree.AddChild(fp.current()); err != nil {
			fp.statusError = err.Error()
		} else {
			fp.refresh()
		}
	case "d", "x":
		// Drop the last predicate of the current node
		node := fp.current()
		if node.Group != nil {
			node.RemovePredicate(len(node.Group.Predicates) - 1)
		}
	case "D":
		// Drop the current node's subtree (the root only collapses)
		if fp.cursor == 0 {
			fp.tree.Clear()
		} else {
			fp.removeCurrent()
		}
		fp.cursor = 0
		fp.refresh()
	case "o":
		// Toggle the group operator of the current node
		node := fp.current()
		if node.Group != nil {
			node.Group.Operator = toggleOperator(node.Group.Operator)
		}
	case "O":
		// Toggle how the current node combines its children
		node := fp.current()
		node.Operator = toggleOperator(node.Operator)
	case "enter":
		return fp, func() tea.Msg {
			return ApplyFilterMsg{Tree: fp.tree}
		}
	case "esc":
		return fp, func() tea.Msg {
			return CloseFilterPanelMsg{}
		}
	}
	return fp, nil
}

func (fp *FilterPanel) removeCurrent() {
	target := fp.current()
	for _, n := range fp.nodes {
		for i, c := range n.Children {
			if c == target {
				n.RemoveChild(i)
				return
			}
		}
	}
}

func (fp *FilterPanel) handleFieldMode(msg tea.KeyMsg) (*FilterPanel, tea.Cmd) {
	fields := models.Schema(fp.tree.Type)
	switch msg.String() {
	case "up", "k":
		if fp.fieldIndex > 0 {
			fp.fieldIndex--
		}
	case "down", "j":
		if fp.fieldIndex < len(fields)-1 {
			fp.fieldIndex++
		}
	case "enter":
		fp.editField = fields[fp.fieldIndex]
		fp.editMode = "kind"
		fp.kindIndex = defaultKindIndex(fp.editField.Kind)
	case "esc":
		fp.editMode = ""
	}
	return fp, nil
}

func defaultKindIndex(kind models.FieldKind) int {
	for i, pk := range predicateKinds {
		switch kind {
		case models.FieldString:
			if pk == models.PredicateText {
				return i
			}
		case models.FieldNumber:
			if pk == models.PredicateRange {
				return i
			}
		case models.FieldDate:
			if pk == models.PredicateDate {
				return i
			}
		case models.FieldBoolean:
			if pk == models.PredicateBoolean {
				return i
			}
		}
	}
	return 0
}

func (fp *FilterPanel) handleKindMode(msg tea.KeyMsg) (*FilterPanel, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if fp.kindIndex > 0 {
			fp.kindIndex--
		}
	case "down", "j":
		if fp.kindIndex < len(predicateKinds)-1 {
			fp.kindIndex++
		}
	case "enter":
		fp.editKind = predicateKinds[fp.kindIndex]
		fp.editMode = "value"
		fp.valueInput = ""
	case "esc":
		fp.editMode = "field"
	}
	return fp, nil
}

func (fp *FilterPanel) handleValueMode(msg tea.KeyMsg) (*FilterPanel, tea.Cmd) {
	switch msg.String() {
	case "enter":
		p, err := buildPredicate(fp.editKind, fp.editField.Name, fp.valueInput)
		if err != nil {
			fp.statusError = err.Error()
			return fp, nil
		}
		if err := fp.tree.AddPredicate(fp.current(), p); err != nil {
			fp.statusError = err.Error()
			return fp, nil
		}
		fp.editMode = ""
		fp.valueInput = ""
		fp.statusError = ""
	case "esc":
		fp.editMode = "kind"
	case "backspace":
		if len(fp.valueInput) > 0 {
			fp.valueInput = fp.valueInput[:len(fp.valueInput)-1]
		}
	default:
		if len(msg.String()) == 1 {
			fp.valueInput += msg.String()
		}
	}
	return fp, nil
}

// buildPredicate parses the entered value into a predicate of the chosen
// kind. Value syntax: text "mode:value" (mode optional, contains default),
// range "min..max" with either side open, date a preset name or
// "start..end" in 2006-01-02, boolean true/false.
func buildPredicate(kind models.PredicateKind, field, input string) (models.Predicate, error) {
	input = strings.TrimSpace(input)
	switch kind {
	case models.PredicateText:
		match := models.MatchContains
		value := input
		if mode, rest, ok := strings.Cut(input, ":"); ok {
			switch models.MatchType(mode) {
			case models.MatchEquals, models.MatchContains, models.MatchStartsWith, models.MatchEndsWith:
				match = models.MatchType(mode)
				value = rest
			}
		}
		if value == "" {
			return models.Predicate{}, fmt.Errorf("text value cannot be empty")
		}
		return models.NewTextPredicate(field, match, value), nil

	case models.PredicateRange:
		lo, hi, ok := strings.Cut(input, "..")
		if !ok {
			return models.Predicate{}, fmt.Errorf("range syntax is min..max")
		}
		var min, max *float64
		if lo != "" {
			n, err := strconv.ParseFloat(lo, 64)
			if err != nil {
				return models.Predicate{}, fmt.Errorf("invalid minimum %q", lo)
			}
			min = &n
		}
		if hi != "" {
			n, err := strconv.ParseFloat(hi, 64)
			if err != nil {
				return models.Predicate{}, fmt.Errorf("invalid maximum %q", hi)
			}
			max = &n
		}
		if min == nil && max == nil {
			return models.Predicate{}, fmt.Errorf("range needs at least one bound")
		}
		if min != nil && max != nil && *min > *max {
			return models.Predicate{}, fmt.Errorf("minimum exceeds maximum")
		}
		return models.NewRangePredicate(field, min, max), nil

	case models.PredicateDate:
		switch models.DatePreset(input) {
		case models.PresetToday, models.PresetThisWeek, models.PresetThisMonth, models.PresetThisYear:
			return models.NewDatePresetPredicate(field, models.DatePreset(input)), nil
		}
		lo, hi, ok := strings.Cut(input, "..")
		if !ok {
			return models.Predicate{}, fmt.Errorf("date syntax is a preset or start..end")
		}
		start, err := time.Parse("2006-01-02", lo)
		if err != nil {
			return models.Predicate{}, fmt.Errorf("invalid start date %q", lo)
		}
		end, err := time.Parse("2006-01-02", hi)
		if err != nil {
			return models.Predicate{}, fmt.Errorf("invalid end date %q", hi)
		}
		return models.NewDateRangePredicate(field, start, end), nil

	case models.PredicateBoolean:
		b, err := strconv.ParseBool(strings.ToLower(input))
		if err != nil {
			return models.Predicate{}, fmt.Errorf("boolean value must be true or false")
		}
		return models.NewBooleanPredicate(field, b), nil
	}
	return models.Predicate{}, fmt.Errorf("unknown predicate kind %q", kind)
}

func toggleOperator(op models.Operator) models.Operator {
	if op == models.OpOr {
		return models.OpAnd
	}
	return models.OpOr
}

// View renders the panel
func (fp *FilterPanel) View() string {
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(fp.Theme.Info)
	dimStyle := lipgloss.NewStyle().Foreground(fp.Theme.Cursor)
	errStyle := lipgloss.NewStyle().Foreground(fp.Theme.Error)

	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("Filter: %s", fp.tree.Type)))
	b.WriteString("\n\n")

	for i, node := range fp.nodes {
		b.WriteString(fp.renderNode(node, fp.depths[i], i == fp.cursor))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	switch fp.editMode {
	case "field":
		b.WriteString(fp.renderFieldPicker())
	case "kind":
		b.WriteString(fp.renderKindPicker())
	case "value":
		b.WriteString(fmt.Sprintf("value for %s (%s): %s█", fp.editField.Name, fp.editKind, fp.valueInput))
	default:
		b.WriteString(dimStyle.Render("a add  g nest  d drop  o/O operators  enter apply  esc close"))
	}

	if fp.statusError != "" {
		b.WriteString("\n")
		b.WriteString(errStyle.Render(fp.statusError))
	}

	return lipgloss.NewStyle().
		Width(fp.Width).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(fp.Theme.BorderFocused).
		Render(b.String())
}

func (fp *FilterPanel) renderNode(node *filter.Node, depth int, selected bool) string {
	indent := strings.Repeat("  ", depth)
	line := indent + DescribeNode(node)
	if selected {
		return lipgloss.NewStyle().
			Background(fp.Theme.Selection).
			Bold(true).
			Render(line)
	}
	return line
}

func (fp *FilterPanel) renderFieldPicker() string {
	var b strings.Builder
	b.WriteString("field:\n")
	for i, def := range models.Schema(fp.tree.Type) {
		marker := "  "
		if i == fp.fieldIndex {
			marker = "> "
		}
		b.WriteString(fmt.Sprintf("%s%s (%s)\n", marker, def.Name, def.Kind))
	}
	return b.String()
}

func (fp *FilterPanel) renderKindPicker() string {
	var b strings.Builder
	b.WriteString("condition kind:\n")
	for i, kind := range predicateKinds {
		marker := "  "
		if i == fp.kindIndex {
			marker = "> "
		}
		b.WriteString(fmt.Sprintf("%s%s\n", marker, kind))
	}
	return b.String()
}

// DescribeNode renders the one-line node summary shown in the tree
// listing: operators plus the per-kind predicate counts.
func DescribeNode(node *filter.Node) string {
	s := filter.Summarize(node)
	groupOp := "-"
	if node.Group != nil {
		groupOp = string(node.Group.Operator)
	}

	var parts []string
	if s.Text > 0 {
		parts = append(parts, fmt.Sprintf("%d text", s.Text))
	}
	if s.Date > 0 {
		parts = append(parts, fmt.Sprintf("%d date", s.Date))
	}
	if s.Range > 0 {
		parts = append(parts, fmt.Sprintf("%d range", s.Range))
	}
	if s.Boolean > 0 {
		parts = append(parts, fmt.Sprintf("%d boolean", s.Boolean))
	}
	summary := "no conditions"
	if len(parts) > 0 {
		summary = strings.Join(parts, ", ")
	}

	label := fmt.Sprintf("[%s] %s", groupOp, summary)
	if len(node.Children) > 0 {
		label += fmt.Sprintf(" (%s over %d groups)", node.Operator, len(node.Children))
	}
	return label
}
