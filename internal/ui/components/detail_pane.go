package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/seralin/musekiosk/internal/models"
	"github.com/seralin/musekiosk/internal/ui/theme"
)

// DetailPane shows one record's full field set, the target of the
// search-result to detail-view handoff
type DetailPane struct {
	Width  int
	Height int
	Theme  theme.Theme

	record models.Record
	valid  bool
}

// NewDetailPane creates a detail pane
func NewDetailPane(th theme.Theme) *DetailPane {
	return &DetailPane{Width: 60, Height: 20, Theme: th}
}

// SetRecord sets the record to show. Records with invalid identifiers are
// refused so a corrupt handoff renders the empty pane, not garbage.
func (dp *DetailPane) SetRecord(rec models.Record) bool {
	ct, ok := models.RecordContentType(rec.ID)
	if !ok || ct != rec.Type {
		dp.valid = false
		return false
	}
	dp.record = rec
	dp.valid = true
	return true
}

// Clear empties the pane
func (dp *DetailPane) Clear() {
	dp.valid = false
	dp.record = models.Record{}
}

// View renders the pane
func (dp *DetailPane) View() string {
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(dp.Theme.Info)
	labelStyle := lipgloss.NewStyle().Foreground(dp.Theme.Cursor)

	var b strings.Builder
	if !dp.valid {
		b.WriteString(labelStyle.Render("no record selected"))
	} else {
		b.WriteString(titleStyle.Render(dp.record.ID))
		b.WriteString("\n\n")
		labelWidth := 0
		schema := models.Schema(dp.record.Type)
		for _, def := range schema {
			if w := runewidth.StringWidth(def.Name); w > labelWidth {
				labelWidth = w
			}
		}
		for _, def := range schema {
			if _, ok := dp.record.Field(def.Name); !ok {
				continue
			}
			label := def.Name + strings.Repeat(" ", labelWidth-runewidth.StringWidth(def.Name))
			b.WriteString(labelStyle.Render(label))
			b.WriteString("  ")
			b.WriteString(cellText(dp.record, def))
			b.WriteString("\n")
		}
	}

	return lipgloss.NewStyle().
		Width(dp.Width).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(dp.Theme.Border).
		Padding(0, 1).
		Render(b.String())
}
