package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/muurk/geoadmin/internal/admin"
	"github.com/muurk/geoadmin/internal/apiclient"
	"github.com/muurk/geoadmin/internal/export"
)

// Options configures a screen
type Options struct {
	Client    *apiclient.Client
	PageSize  int
	ExportDir string
}

// switchRouteMsg asks the app to mount another screen
type switchRouteMsg struct {
	route Route
}

func switchRoute(r Route) tea.Cmd {
	return func() tea.Msg { return switchRouteMsg{route: r} }
}

// focusArea is where key presses go
type focusArea int

const (
	focusTable focusArea = iota
	focusName
	focusCountry
)

// screenBase is the state both entity screens share. Each screen owns its
// own copy; nothing is shared across routes.
type screenBase struct {
	route     Route
	client    *apiclient.Client
	exportDir string

	Pager   *admin.Pager
	Loading bool

	table     table.Model
	spinner   spinner.Model
	nameInput textinput.Model
	focus     focusArea

	help     help.Model
	keys     screenKeyMap
	formKeys formKeyMap

	ShowingHelp bool
	FieldError  string // missing required field on the last submit
	Status      string // last export path
	LastError   error  // last failed request; logged, never rendered

	Width  int
	Height int
}

func newScreenBase(route Route, opts Options, columns []table.Column, placeholder string) screenBase {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = SpinnerStyle

	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = 100
	ti.Width = 40
	ti.Cursor.SetMode(cursor.CursorStatic)

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(tableHeight),
	)
	ts := table.DefaultStyles()
	ts.Header = ts.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(BorderColor).
		BorderBottom(true).
		Bold(true)
	ts.Selected = ts.Selected.
		Foreground(TextColor).
		Background(PrimaryColor).
		Bold(false)
	t.SetStyles(ts)

	pageSize := opts.PageSize
	if pageSize <= 0 {
		pageSize = admin.DefaultPageSize
	}
	exportDir := opts.ExportDir
	if exportDir == "" {
		exportDir = "."
	}

	return screenBase{
		route:     route,
		client:    opts.Client,
		exportDir: exportDir,
		Pager:     admin.NewPager(pageSize),
		Loading:   true, // Init always starts with a fetch
		table:     t,
		spinner:   s,
		nameInput: ti,
		help:      help.New(),
		keys:      newScreenKeyMap(),
		formKeys:  newFormKeyMap(route == RouteState),
		Width:     DefaultWidth,
		Height:    DefaultHeight,
	}
}

// Typing reports whether key presses go to the form
func (b *screenBase) Typing() bool {
	return b.focus != focusTable
}

// startLoading marks the list as loading and returns the spinner tick
func (b *screenBase) startLoading() tea.Cmd {
	b.Loading = true
	return b.spinner.Tick
}

// setRows replaces the table rows and keeps the cursor on a real row
func (b *screenBase) setRows(rows []table.Row) {
	b.table.SetRows(rows)
	if c := b.table.Cursor(); c >= len(rows) {
		b.table.SetCursor(max(len(rows)-1, 0))
	}
}

// selectedIndex returns the cursor position, or -1 when nothing is listed
func (b *screenBase) selectedIndex(n int) int {
	c := b.table.Cursor()
	if n == 0 || c < 0 || c >= n {
		return -1
	}
	return c
}

func (b *screenBase) focusName() tea.Cmd {
	b.focus = focusName
	b.FieldError = ""
	return b.nameInput.Focus()
}

func (b *screenBase) blur() {
	b.focus = focusTable
	b.nameInput.Blur()
}

// handleCommonKey handles keys that behave the same on both screens while the
// table has focus. The bool reports whether the key was consumed.
func (b *screenBase) handleCommonKey(msg tea.KeyMsg, fetch func() tea.Cmd) (tea.Cmd, bool) {
	switch {
	case key.Matches(msg, b.keys.Help):
		b.ShowingHelp = true
		return nil, true

	case key.Matches(msg, b.keys.Quit):
		return tea.Quit, true

	case key.Matches(msg, b.keys.Up):
		b.table.MoveUp(1)
		return nil, true

	case key.Matches(msg, b.keys.Down):
		b.table.MoveDown(1)
		return nil, true

	case key.Matches(msg, b.keys.PrevPage):
		if b.Pager.Prev() {
			return tea.Batch(b.startLoading(), fetch()), true
		}
		return nil, true

	case key.Matches(msg, b.keys.NextPage):
		if b.Pager.Next() {
			return tea.Batch(b.startLoading(), fetch()), true
		}
		return nil, true

	case key.Matches(msg, b.keys.Refresh):
		return tea.Batch(b.startLoading(), fetch()), true

	case key.Matches(msg, b.keys.SwitchTab):
		return switchRoute(b.route.target(msg.String())), true
	}
	return nil, false
}

// handleSpinner advances the spinner while loading
func (b *screenBase) handleSpinner(msg spinner.TickMsg) tea.Cmd {
	if !b.Loading {
		return nil
	}
	var cmd tea.Cmd
	b.spinner, cmd = b.spinner.Update(msg)
	return cmd
}

func (b *screenBase) handleExportDone(msg exportDoneMsg) {
	if msg.err != nil {
		b.LastError = msg.err
		return
	}
	b.Status = fmt.Sprintf("Exported %s to %s", strings.ToUpper(msg.format.String()), msg.path)
}

// exportFormat maps an export key to its format
func (b *screenBase) exportFormat(msg tea.KeyMsg) (export.Format, bool) {
	switch {
	case key.Matches(msg, b.keys.ExportPDF):
		return export.FormatPDF, true
	case key.Matches(msg, b.keys.ExportXLSX):
		return export.FormatXLSX, true
	}
	return 0, false
}

// renderList renders the list section: loading indicator, empty notice or
// table, followed by the pager.
func (b *screenBase) renderList(heading string, empty bool) string {
	var s strings.Builder

	s.WriteString(SectionStyle.Render(heading))
	s.WriteString("\n")

	switch {
	case b.Loading:
		s.WriteString(b.spinner.View() + " Loading...")
	case empty:
		s.WriteString(SubtleStyle.Render("No data available"))
	default:
		s.WriteString(b.table.View())
	}
	s.WriteString("\n\n")

	s.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
		renderControl("‹ Previous", b.Pager.CanPrev()),
		"  ",
		b.Pager.Label(),
		"  ",
		renderControl("Next ›", b.Pager.CanNext()),
	))
	s.WriteString("\n")
	s.WriteString(SubtleStyle.Render("p: Export to PDF   x: Export to Excel"))

	if b.Status != "" {
		s.WriteString("\n")
		s.WriteString(StatusStyle.Render(b.Status))
	}
	return s.String()
}

// renderNameField renders the label and text input of the form
func (b *screenBase) renderNameField(label string) string {
	style := BlurredInputStyle
	if b.focus == focusName {
		style = FocusedInputStyle
	}
	return style.Render(fmt.Sprintf("%-14s", label)) + b.nameInput.View()
}

// renderSubmit renders the submit label plus the edit badge and field error
func (b *screenBase) renderSubmit(label string, target int64, editing bool) string {
	line := ButtonStyle.Render(label)
	if editing {
		line += "  " + EditingBadgeStyle.Render(fmt.Sprintf("editing #%d", target)) + SubtleStyle.Render("  esc: Cancel")
	}
	if b.FieldError != "" {
		line += "  " + FieldErrorStyle.Render(b.FieldError)
	}
	return line
}

// footer returns the help line for the current focus
func (b *screenBase) footer() string {
	if b.Typing() {
		return b.help.View(b.formKeys)
	}
	return b.help.View(b.keys)
}

// renderHelpModal renders the full key reference
func (b *screenBase) renderHelpModal() string {
	h := b.help
	h.ShowAll = true
	content := TitleStyle.Render("Keys") + "\n" + h.View(b.keys) + "\n\n" + h.View(b.formKeys) +
		"\n\n" + SubtleStyle.Render("Press ? or esc to close")
	return RenderModal(ModalStyle.Width(SafeModalWidth(76, b.Width)).Render(content), b.Width, b.Height)
}

// renderDetails renders the detail overlay for one record
func (b *screenBase) renderDetails(title string, fields [][2]string) string {
	var s strings.Builder
	s.WriteString(TitleStyle.Render(title))
	s.WriteString("\n")
	for _, f := range fields {
		s.WriteString(LabelStyle.Render(f[0]+":") + " " + f[1] + "\n")
	}
	s.WriteString("\n")
	s.WriteString(ButtonStyle.Render("Close") + SubtleStyle.Render("  esc/enter"))
	return RenderModal(ModalStyle.Width(SafeModalWidth(50, b.Width)).Render(s.String()), b.Width, b.Height)
}

// closesOverlay reports whether a key dismisses a modal
func closesOverlay(msg tea.KeyMsg) bool {
	switch msg.String() {
	case "esc", "enter", "v", "q", "?":
		return true
	}
	return false
}
