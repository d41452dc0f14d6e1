package app

import (
	"fmt"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/seralin/musekiosk/internal/bookmarks"
	"github.com/seralin/musekiosk/internal/config"
	"github.com/seralin/musekiosk/internal/export"
	"github.com/seralin/musekiosk/internal/filter"
	"github.com/seralin/musekiosk/internal/models"
	"github.com/seralin/musekiosk/internal/session"
	"github.com/seralin/musekiosk/internal/source"
	"github.com/seralin/musekiosk/internal/ui/components"
	"github.com/seralin/musekiosk/internal/ui/help"
	"github.com/seralin/musekiosk/internal/ui/theme"
	"github.com/seralin/musekiosk/internal/urlstate"
)

// ViewMode identifies which screen the kiosk is showing
type ViewMode int

const (
	ListMode ViewMode = iota
	DetailMode
	HelpMode
	FilterMode
	SearchMode
	BookmarkMode
	BookmarkNameMode
)

// App is the main application model
type App struct {
	config *config.Config
	theme  theme.Theme

	width  int
	height int
	mode   ViewMode

	contentType models.ContentType
	records     map[models.ContentType][]models.Record
	applied     *filter.Tree
	query       string

	table       *components.RecordTable
	detail      *components.DetailPane
	filterPanel *components.FilterPanel
	search      *components.SearchInput

	bookmarkMgr    *bookmarks.Manager
	bookmarkCursor int
	nameInput      string

	sessions  *session.Store
	sessionID string

	statusMsg string
	lastInput time.Time

	showError    bool
	errorTitle   string
	errorMessage string
}

// RecordsLoadedMsg is sent when the data directory has been read
type RecordsLoadedMsg struct {
	Records map[models.ContentType][]models.Record
	Err     error
}

// ErrorMsg is sent when an error occurs
type ErrorMsg struct {
	Title   string
	Message string
}

type idleTickMsg struct{}

// New creates a new App instance with config
func New(cfg *config.Config) *App {
	if cfg == nil {
		cfg = config.GetDefaults()
	}
	th := theme.GetTheme(cfg.UI.Theme)

	ct := models.ContentType(cfg.General.DefaultContentType)
	if !ct.IsValid() {
		ct = models.ContentAlumni
	}

	a := &App{
		config:      cfg,
		theme:       th,
		mode:        ListMode,
		contentType: ct,
		records:     map[models.ContentType][]models.Record{},
		table:       components.NewRecordTable(th, cfg.Data.MaxCellDisplayLength),
		detail:      components.NewDetailPane(th),
		search:      components.NewSearchInput(th),
		lastInput:   time.Now(),
	}
	a.table.VisibleRows = cfg.General.PageSize

	if dir, err := config.GetConfigPath(); err == nil {
		if mgr, err := bookmarks.NewManager(dir); err == nil {
			a.bookmarkMgr = mgr
		}
	}

	if cfg.Session.Enabled {
		if path, err := cfg.SessionDBPath(); err == nil {
			if store, err := session.NewStore(path); err == nil {
				a.sessions = store
				if id, err := store.Begin(); err == nil {
					a.sessionID = id
				}
				store.Prune(time.Duration(cfg.Session.MaxAgeHours) * time.Hour)
			}
		}
	}

	return a
}

// Init implements tea.Model
func (a *App) Init() tea.Cmd {
	cmds := []tea.Cmd{a.loadRecords}
	if a.config.General.IdleResetSeconds > 0 {
		cmds = append(cmds, a.idleTick())
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case ErrorMsg:
		a.ShowError(msg.Title, msg.Message)
		return a, nil

	case RecordsLoadedMsg:
		if msg.Err != nil {
			a.ShowError("Data Error", fmt.Sprintf("Failed to load records:\n\n%v", msg.Err))
			return a, nil
		}
		a.records = msg.Records
		a.refreshTable()
		return a, nil

	case idleTickMsg:
		idle := time.Duration(a.config.General.IdleResetSeconds) * time.Second
		if idle > 0 && time.Since(a.lastInput) >= idle {
			a.resetToDefault()
		}
		return a, a.idleTick()

	case components.ApplyFilterMsg:
		a.applied = msg.Tree
		a.filterPanel = nil
		a.mode = ListMode
		a.refreshTable()
		a.statusMsg = a.filterSummary()
		return a, a.saveCurrentView("")

	case components.CloseFilterPanelMsg:
		a.filterPanel = nil
		a.mode = ListMode
		return a, nil

	case components.SearchMsg:
		a.query = msg.Query
		a.mode = ListMode
		a.refreshTable()
		return a, a.saveCurrentView("")

	case components.CloseSearchMsg:
		a.query = ""
		a.search.Reset()
		a.mode = ListMode
		a.refreshTable()
		return a, nil

	case tea.KeyMsg:
		a.lastInput = time.Now()
		a.statusMsg = ""

		if a.showError {
			key := msg.String()
			if key == "esc" || key == "enter" {
				a.DismissError()
				return a, nil
			}
			if key == "q" || key == "ctrl+c" {
				return a, a.quit()
			}
			return a, nil
		}

		switch a.mode {
		case HelpMode:
			return a.handleHelpKey(msg)
		case FilterMode:
			if a.filterPanel != nil {
				var cmd tea.Cmd
				a.filterPanel, cmd = a.filterPanel.Update(msg)
				return a, cmd
			}
			a.mode = ListMode
			return a, nil
		case SearchMode:
			var cmd tea.Cmd
			a.search, cmd = a.search.Update(msg)
			return a, cmd
		case BookmarkMode:
			return a.handleBookmarkKey(msg)
		case BookmarkNameMode:
			return a.handleBookmarkNameKey(msg)
		case DetailMode:
			return a.handleDetailKey(msg)
		default:
			return a.handleListKey(msg)
		}

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.updateDimensions()
	}
	return a, nil
}

func (a *App) handleHelpKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "?", "esc", "q":
		a.mode = ListMode
	case "ctrl+c":
		return a, a.quit()
	}
	return a, nil
}

func (a *App) handleDetailKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "backspace", "enter":
		a.detail.Clear()
		a.mode = ListMode
	case "y":
		a.copyShareLink()
	case "q", "ctrl+c":
		return a, a.quit()
	}
	return a, nil
}

func (a *App) handleListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return a, a.quit()
	case "?":
		a.mode = HelpMode
	case "tab":
		a.switchContentType(1)
	case "shift+tab":
		a.switchContentType(-1)
	case "/":
		a.search.Reset()
		a.search.Visible = true
		a.mode = SearchMode
	case "f":
		fp, err := components.NewFilterPanel(a.theme, a.contentType)
		if err != nil {
			a.ShowError("Filter Error", err.Error())
			return a, nil
		}
		fp.Width = a.width
		fp.Height = a.height
		a.filterPanel = fp
		a.mode = FilterMode
	case "ctrl+r":
		a.applied = nil
		a.query = ""
		a.search.Reset()
		a.refreshTable()
		a.statusMsg = "filter cleared"
	case "y":
		a.copyShareLink()
	case "b":
		if a.bookmarkMgr == nil {
			a.statusMsg = "bookmarks unavailable"
			return a, nil
		}
		a.nameInput = ""
		a.mode = BookmarkNameMode
	case "B":
		if a.bookmarkMgr == nil {
			a.statusMsg = "bookmarks unavailable"
			return a, nil
		}
		a.bookmarkCursor = 0
		a.mode = BookmarkMode
	case "e":
		a.exportView("csv")
	case "E":
		a.exportView("json")
	case "r":
		return a, a.loadRecords
	case "up", "k":
		a.table.MoveSelection(-1)
	case "down", "j":
		a.table.MoveSelection(1)
	case "pgup", "ctrl+u":
		a.table.PageUp()
	case "pgdown", "ctrl+d":
		a.table.PageDown()
	case "enter":
		rec, ok := a.table.Selected()
		if !ok {
			return a, nil
		}
		if !a.detail.SetRecord(rec) {
			a.statusMsg = "record has no usable identifier"
			return a, nil
		}
		a.mode = DetailMode
		return a, a.saveCurrentView(rec.ID)
	}
	return a, nil
}

func (a *App) handleBookmarkKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	list := a.bookmarkMgr.List()
	switch msg.String() {
	case "esc", "B":
		a.mode = ListMode
	case "up", "k":
		if a.bookmarkCursor > 0 {
			a.bookmarkCursor--
		}
	case "down", "j":
		if a.bookmarkCursor < len(list)-1 {
			a.bookmarkCursor++
		}
	case "d":
		if a.bookmarkCursor < len(list) {
			if err := a.bookmarkMgr.Delete(list[a.bookmarkCursor].ID); err != nil {
				a.statusMsg = "delete failed: " + err.Error()
			} else if a.bookmarkCursor > 0 {
				a.bookmarkCursor--
			}
		}
	case "enter":
		if a.bookmarkCursor >= len(list) {
			return a, nil
		}
		flat, err := a.bookmarkMgr.Resolve(list[a.bookmarkCursor])
		if err != nil {
			a.ShowError("Bookmark Error", err.Error())
			return a, nil
		}
		tree, err := treeFromFlat(flat)
		if err != nil {
			a.ShowError("Bookmark Error", err.Error())
			return a, nil
		}
		a.contentType = flat.Type
		a.applied = tree
		a.query = ""
		a.mode = ListMode
		a.refreshTable()
		a.statusMsg = "bookmark applied: " + list[a.bookmarkCursor].Name
		return a, a.saveCurrentView("")
	case "q", "ctrl+c":
		return a, a.quit()
	}
	return a, nil
}

func (a *App) handleBookmarkNameKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		a.mode = ListMode
	case tea.KeyEnter:
		flat := a.flatFilter()
		b, err := a.bookmarkMgr.Add(a.nameInput, flat)
		if err != nil {
			a.statusMsg = "bookmark not saved: " + err.Error()
		} else {
			a.statusMsg = "bookmarked as " + b.Name
		}
		a.nameInput = ""
		a.mode = ListMode
	case tea.KeyBackspace:
		if len(a.nameInput) > 0 {
			a.nameInput = a.nameInput[:len(a.nameInput)-1]
		}
	case tea.KeyRunes:
		a.nameInput += string(msg.Runes)
	case tea.KeySpace:
		a.nameInput += " "
	}
	return a, nil
}

// switchContentType moves to the adjacent collection and drops filter state,
// which is scoped to a single content type.
func (a *App) switchContentType(delta int) {
	types := models.ContentTypes()
	idx := 0
	for i, ct := range types {
		if ct == a.contentType {
			idx = i
			break
		}
	}
	idx = (idx + delta + len(types)) % len(types)
	a.contentType = types[idx]
	a.applied = nil
	a.query = ""
	a.search.Reset()
	a.refreshTable()
}

func (a *App) resetToDefault() {
	ct := models.ContentType(a.config.General.DefaultContentType)
	if !ct.IsValid() {
		ct = models.ContentAlumni
	}
	a.contentType = ct
	a.applied = nil
	a.query = ""
	a.search.Reset()
	a.filterPanel = nil
	a.detail.Clear()
	a.nameInput = ""
	a.mode = ListMode
	a.showError = false
	a.statusMsg = ""
	a.refreshTable()
}

// visibleRecords applies the active filter tree and search query in order
func (a *App) visibleRecords() []models.Record {
	recs := a.records[a.contentType]
	now := time.Now()
	if a.applied != nil {
		filtered, err := a.applied.Apply(recs, now)
		if err != nil {
			// A tree for another collection cannot filter this one.
			a.applied = nil
		} else {
			recs = filtered
		}
	}
	if a.query != "" {
		recs = components.MatchRecords(a.contentType, recs, a.query, now)
	}
	return recs
}

func (a *App) refreshTable() {
	a.table.SetRecords(a.contentType, a.visibleRecords())
}

func (a *App) filterSummary() string {
	if a.applied == nil {
		return ""
	}
	sum := filter.Summarize(a.applied.Root)
	if sum.Total() == 0 {
		return "filter cleared"
	}
	return fmt.Sprintf("filter applied: %s", components.DescribeNode(a.applied.Root))
}

// flatFilter projects the applied tree onto the shareable filter shape.
// Only root-level predicates with a query-parameter key survive; nested
// groups and free-form predicates have no URL form.
func (a *App) flatFilter() models.FlatFilter {
	flat := models.FlatFilter{Type: a.contentType}
	if a.applied == nil || a.applied.Root == nil || a.applied.Root.Group == nil {
		return flat
	}
	for _, p := range a.applied.Root.Group.Predicates {
		switch {
		case p.Kind == models.PredicateRange && p.Field == "year":
			if p.Min != nil && p.Max != nil {
				lo, hi := int(*p.Min), int(*p.Max)
				if lo == hi {
					flat.Year = &lo
				} else {
					flat.YearRange = &models.YearRange{Start: lo, End: hi}
				}
			}
		case p.Kind == models.PredicateText && p.Match == models.MatchEquals:
			switch p.Field {
			case "department":
				flat.Department = p.Value
			case "publicationType":
				flat.PublicationType = p.Value
			case "collection":
				flat.Collection = p.Value
			case "eventType":
				flat.EventType = p.Value
			case "position":
				flat.Position = p.Value
			}
		}
	}
	return flat
}

// treeFromFlat rebuilds an evaluable tree from a shareable filter
func treeFromFlat(f models.FlatFilter) (*filter.Tree, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}
	tree, err := filter.NewTree(f.Type)
	if err != nil {
		return nil, err
	}
	addText := func(field, value string) error {
		if value == "" {
			return nil
		}
		return tree.AddPredicate(tree.Root, models.NewTextPredicate(field, models.MatchEquals, value))
	}
	if f.Year != nil {
		v := float64(*f.Year)
		if err := tree.AddPredicate(tree.Root, models.NewRangePredicate("year", &v, &v)); err != nil {
			return nil, err
		}
	} else if f.YearRange != nil {
		lo, hi := float64(f.YearRange.Start), float64(f.YearRange.End)
		if err := tree.AddPredicate(tree.Root, models.NewRangePredicate("year", &lo, &hi)); err != nil {
			return nil, err
		}
	}
	for _, tf := range []struct{ field, value string }{
		{"department", f.Department},
		{"publicationType", f.PublicationType},
		{"collection", f.Collection},
		{"eventType", f.EventType},
		{"position", f.Position},
	} {
		if err := addText(tf.field, tf.value); err != nil {
			return nil, err
		}
	}
	return tree, nil
}

// shareSearch encodes the current view as a query string for handoff
func (a *App) shareSearch() (string, error) {
	params, err := urlstate.ToParams(a.flatFilter())
	if err != nil {
		return "", err
	}
	if a.query != "" {
		params.Set(urlstate.KeyQuery, a.query)
	}
	if a.mode == DetailMode {
		params.Set(urlstate.KeyView, "detail")
	}
	return urlstate.EncodeSearch(params), nil
}

func (a *App) copyShareLink() {
	search, err := a.shareSearch()
	if err != nil {
		a.statusMsg = "share link failed: " + err.Error()
		return
	}
	if search == "" {
		a.statusMsg = "nothing to share"
		return
	}
	if err := clipboard.WriteAll(search); err != nil {
		a.statusMsg = "clipboard unavailable"
		return
	}
	a.statusMsg = "copied " + search
}

func (a *App) exportView(format string) {
	recs := a.visibleRecords()
	if len(recs) == 0 {
		a.statusMsg = "nothing to export"
		return
	}
	stamp := time.Now().Format("20060102_150405")
	var path string
	var err error
	if format == "json" {
		path = fmt.Sprintf("%s_%s.json", a.contentType, stamp)
		err = export.ExportToJSON(recs, path)
	} else {
		path = fmt.Sprintf("%s_%s.csv", a.contentType, stamp)
		err = export.ExportToCSV(a.contentType, recs, path)
	}
	if err != nil {
		a.ShowError("Export Error", err.Error())
		return
	}
	a.statusMsg = fmt.Sprintf("exported %d records to %s", len(recs), path)
}

func (a *App) saveCurrentView(recordID string) tea.Cmd {
	if a.sessions == nil || a.sessionID == "" {
		return nil
	}
	search, err := a.shareSearch()
	if err != nil {
		search = ""
	}
	store, sid, ct := a.sessions, a.sessionID, a.contentType
	return func() tea.Msg {
		store.SaveView(sid, ct, search, recordID)
		return nil
	}
}

func (a *App) loadRecords() tea.Msg {
	records, err := source.LoadAll(a.config.Data.Dir)
	return RecordsLoadedMsg{Records: records, Err: err}
}

func (a *App) idleTick() tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg {
		return idleTickMsg{}
	})
}

func (a *App) quit() tea.Cmd {
	if a.sessions != nil {
		if a.sessionID != "" {
			a.sessions.End(a.sessionID)
		}
		a.sessions.Close()
	}
	return tea.Quit
}

// View implements tea.Model
func (a *App) View() string {
	if a.showError {
		return lipgloss.Place(
			a.width, a.height,
			lipgloss.Center, lipgloss.Center,
			a.renderErrorOverlay(),
		)
	}

	if a.mode == HelpMode {
		return help.Render(a.width, a.height, lipgloss.NewStyle())
	}

	if a.mode == FilterMode && a.filterPanel != nil {
		return a.filterPanel.View()
	}

	if a.mode == BookmarkMode {
		return lipgloss.Place(
			a.width, a.height,
			lipgloss.Center, lipgloss.Center,
			a.renderBookmarks(),
		)
	}

	return a.renderNormalView()
}

func (a *App) renderNormalView() string {
	topBar := lipgloss.NewStyle().
		Width(a.width).
		Background(a.theme.BorderFocused).
		Foreground(lipgloss.Color("230")).
		Padding(0, 2).
		Render(a.formatStatusBar("musekiosk", a.collectionTabs()))

	var body string
	switch a.mode {
	case DetailMode:
		body = a.detail.View()
	case BookmarkNameMode:
		body = a.table.View() + "\n" +
			lipgloss.NewStyle().Foreground(a.theme.Info).Render("bookmark name: "+a.nameInput+"_")
	default:
		if a.mode == SearchMode {
			body = a.search.View() + "\n" + a.table.View()
		} else {
			body = a.table.View()
		}
	}

	bottomLeft := "[/] Search  [f] Filter  [?] Help  [q] Quit"
	bottomRight := a.statusMsg
	if bottomRight == "" && a.query != "" {
		bottomRight = "search: " + a.query
	}
	bottomBar := lipgloss.NewStyle().
		Width(a.width).
		Background(a.theme.Selection).
		Foreground(a.theme.Foreground).
		Padding(0, 2).
		Render(a.formatStatusBar(bottomLeft, bottomRight))

	return lipgloss.JoinVertical(
		lipgloss.Left,
		topBar,
		body,
		bottomBar,
	)
}

// collectionTabs renders the content-type strip with the active one marked
func (a *App) collectionTabs() string {
	parts := make([]string, 0, 4)
	for _, ct := range models.ContentTypes() {
		label := string(ct)
		if ct == a.contentType {
			label = "[" + label + "]"
		}
		parts = append(parts, label)
	}
	return strings.Join(parts, "  ")
}

func (a *App) renderBookmarks() string {
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(a.theme.Info)
	selStyle := lipgloss.NewStyle().Background(a.theme.Selection).Foreground(a.theme.Foreground)

	var b strings.Builder
	b.WriteString(titleStyle.Render("Bookmarks"))
	b.WriteString("\n\n")

	list := a.bookmarkMgr.List()
	if len(list) == 0 {
		b.WriteString("no bookmarks saved\n")
	}
	for i, bm := range list {
		line := fmt.Sprintf("%s  %s", bm.Name, bm.Search)
		if i == a.bookmarkCursor {
			line = selStyle.Render("> " + line)
		} else {
			line = "  " + line
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Faint(true).Render("[enter] apply  [d] delete  [esc] close"))

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(a.theme.BorderFocused).
		Padding(1, 2).
		Render(b.String())
}

func (a *App) renderErrorOverlay() string {
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(a.theme.Error)
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(a.theme.Error).
		Padding(1, 2).
		Render(titleStyle.Render(a.errorTitle) + "\n\n" + a.errorMessage + "\n\n" +
			lipgloss.NewStyle().Faint(true).Render("[esc] dismiss"))
}

func (a *App) updateDimensions() {
	if a.width <= 0 || a.height <= 0 {
		return
	}
	// Top bar and bottom bar take one line each.
	rows := a.height - 2 - 3 // header, separator, status line of the table
	if rows < 3 {
		rows = 3
	}
	if a.config.General.PageSize > 0 && rows > a.config.General.PageSize {
		rows = a.config.General.PageSize
	}
	a.table.VisibleRows = rows
	a.detail.Width = a.width
	a.detail.Height = a.height - 2
	a.search.Width = a.width
	if a.filterPanel != nil {
		a.filterPanel.Width = a.width
		a.filterPanel.Height = a.height
	}
}

// formatStatusBar formats a status bar with left and right aligned content.
// Widths are display cells, not bytes, and content wider than the bar is
// truncated instead of sliced out of range.
func (a *App) formatStatusBar(left, right string) string {
	availableWidth := a.width - 4
	if availableWidth < 0 {
		availableWidth = 0
	}

	leftLen := runewidth.StringWidth(left)
	rightLen := runewidth.StringWidth(right)

	if leftLen+rightLen > availableWidth {
		if availableWidth > rightLen {
			return runewidth.Truncate(left, availableWidth-rightLen, "") + right
		}
		return runewidth.Truncate(left, availableWidth, "")
	}

	spacing := availableWidth - leftLen - rightLen

	return left + lipgloss.NewStyle().Width(spacing).Render("") + right
}

// ShowError displays an error overlay
func (a *App) ShowError(title, message string) {
	a.showError = true
	a.errorTitle = title
	a.errorMessage = message
}

// DismissError hides the error overlay
func (a *App) DismissError() {
	a.showError = false
}
