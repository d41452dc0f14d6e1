package components

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/seralin/musekiosk/internal/models"
	"github.com/seralin/musekiosk/internal/ui/theme"
)

// RecordTable displays a filtered record set in schema column order
type RecordTable struct {
	Width  int
	Height int
	Theme  theme.Theme

	contentType models.ContentType
	columns     []models.FieldDef
	records     []models.Record

	// Paging state
	TopRow      int
	VisibleRows int
	SelectedRow int

	maxCellWidth int
	columnWidths []int
}

// NewRecordTable creates a record table
func NewRecordTable(th theme.Theme, maxCellWidth int) *RecordTable {
	if maxCellWidth <= 0 {
		maxCellWidth = 60
	}
	return &RecordTable{
		Theme:        th,
		VisibleRows:  20,
		maxCellWidth: maxCellWidth,
	}
}

// SetRecords replaces the table contents, resetting the view to the top.
// Record order is preserved as given; the table never re-sorts.
func (rt *RecordTable) SetRecords(ct models.ContentType, records []models.Record) {
	rt.contentType = ct
	rt.columns = models.Schema(ct)
	rt.records = records
	rt.TopRow = 0
	rt.SelectedRow = 0
	rt.calculateColumnWidths()
}

// Selected returns the currently selected record, if any
func (rt *RecordTable) Selected() (models.Record, bool) {
	if rt.SelectedRow < 0 || rt.SelectedRow >= len(rt.records) {
		return models.Record{}, false
	}
	return rt.records[rt.SelectedRow], true
}

// Len returns the number of records shown
func (rt *RecordTable) Len() int {
	return len(rt.records)
}

func (rt *RecordTable) calculateColumnWidths() {
	rt.columnWidths = make([]int, len(rt.columns))
	for i, col := range rt.columns {
		rt.columnWidths[i] = runewidth.StringWidth(col.CSVHeader)
	}
	for _, rec := range rt.records {
		for i, col := range rt.columns {
			w := runewidth.StringWidth(cellText(rec, col))
			if w > rt.columnWidths[i] {
				rt.columnWidths[i] = w
			}
		}
	}
	for i := range rt.columnWidths {
		if rt.columnWidths[i] > rt.maxCellWidth {
			rt.columnWidths[i] = rt.maxCellWidth
		}
	}
}

func cellText(rec models.Record, col models.FieldDef) string {
	v, ok := rec.Field(col.Name)
	if !ok {
		return ""
	}
	switch val := v.(type) {
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(val)
	case time.Time:
		return val.Format("2006-01-02")
	}
	return fmt.Sprintf("%v", v)
}

// View renders the table
func (rt *RecordTable) View() string {
	if len(rt.columns) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString(rt.renderHeader())
	b.WriteString("\n")
	b.WriteString(rt.renderSeparator())
	b.WriteString("\n")

	endRow := rt.TopRow + rt.VisibleRows
	if endRow > len(rt.records) {
		endRow = len(rt.records)
	}
	for i := rt.TopRow; i < endRow; i++ {
		b.WriteString(rt.renderRecord(rt.records[i], i == rt.SelectedRow))
		b.WriteString("\n")
	}

	b.WriteString(rt.renderStatus())
	return b.String()
}

func (rt *RecordTable) renderHeader() string {
	var parts []string
	for i, col := range rt.columns {
		parts = append(parts, rt.pad(col.CSVHeader, rt.columnWidths[i]))
	}
	headerStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(rt.Theme.TableHeader)
	return headerStyle.Render(" " + strings.Join(parts, " │ ") + " ")
}

func (rt *RecordTable) renderSeparator() string {
	var parts []string
	for _, width := range rt.columnWidths {
		parts = append(parts, strings.Repeat("─", width))
	}
	return lipgloss.NewStyle().
		Foreground(rt.Theme.Border).
		Render("─" + strings.Join(parts, "─┼─") + "─")
}

func (rt *RecordTable) renderRecord(rec models.Record, selected bool) string {
	var parts []string
	for i, col := range rt.columns {
		parts = append(parts, rt.pad(cellText(rec, col), rt.columnWidths[i]))
	}
	line := " " + strings.Join(parts, " │ ") + " "

	if selected {
		return lipgloss.NewStyle().
			Background(rt.Theme.TableRowSelected).
			Bold(true).
			Render(line)
	}
	return line
}

func (rt *RecordTable) renderStatus() string {
	if len(rt.records) == 0 {
		return lipgloss.NewStyle().
			Foreground(rt.Theme.Warning).
			Italic(true).
			Render(" no records match the current filter")
	}
	endRow := rt.TopRow + rt.VisibleRows
	if endRow > len(rt.records) {
		endRow = len(rt.records)
	}
	showing := fmt.Sprintf(" %d-%d of %d %s records", rt.TopRow+1, endRow, len(rt.records), rt.contentType)
	return lipgloss.NewStyle().
		Foreground(rt.Theme.Cursor).
		Italic(true).
		Render(showing)
}

func (rt *RecordTable) pad(s string, width int) string {
	if runewidth.StringWidth(s) > width {
		return runewidth.Truncate(s, width, "...")
	}
	return s + strings.Repeat(" ", width-runewidth.StringWidth(s))
}

// MoveSelection moves the selection up or down, scrolling as needed
func (rt *RecordTable) MoveSelection(delta int) {
	if len(rt.records) == 0 {
		rt.SelectedRow = 0
		rt.TopRow = 0
		return
	}
	rt.SelectedRow += delta
	if rt.SelectedRow < 0 {
		rt.SelectedRow = 0
	}
	if rt.SelectedRow >= len(rt.records) {
		rt.SelectedRow = len(rt.records) - 1
	}
	if rt.SelectedRow < rt.TopRow {
		rt.TopRow = rt.SelectedRow
	}
	if rt.SelectedRow >= rt.TopRow+rt.VisibleRows {
		rt.TopRow = rt.SelectedRow - rt.VisibleRows + 1
	}
}

// PageUp moves one page up
func (rt *RecordTable) PageUp() {
	rt.SelectedRow -= rt.VisibleRows
	if rt.SelectedRow < 0 {
		rt.SelectedRow = 0
	}
	rt.TopRow = rt.SelectedRow
}

// PageDown moves one page down
func (rt *RecordTable) PageDown() {
	if len(rt.records) == 0 {
		rt.SelectedRow = 0
		rt.TopRow = 0
		return
	}
	rt.SelectedRow += rt.VisibleRows
	if rt.SelectedRow >= len(rt.records) {
		rt.SelectedRow = len(rt.records) - 1
	}
	rt.TopRow = rt.SelectedRow
	if rt.TopRow+rt.VisibleRows > len(rt.records) {
		rt.TopRow = len(rt.records) - rt.VisibleRows
		if rt.TopRow < 0 {
			rt.TopRow = 0
		}
	}
}

// Page returns the current 1-based page number and total pages
func (rt *RecordTable) Page() (int, int) {
	if rt.VisibleRows <= 0 || len(rt.records) == 0 {
		return 1, 1
	}
	total := (len(rt.records) + rt.VisibleRows - 1) / rt.VisibleRows
	current := rt.SelectedRow/rt.VisibleRows + 1
	return current, total
}
