package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/muurk/geoadmin/internal/admin"
	"github.com/muurk/geoadmin/internal/export"
	"github.com/muurk/geoadmin/internal/logging"
	"github.com/muurk/geoadmin/internal/model"
)

// selectPlaceholder is the selector's empty choice
const selectPlaceholder = "Select a Country"

// StateModel is the State screen mounted at "/state"
type StateModel struct {
	screenBase

	States []model.State
	Form   *admin.Form[model.StateDraft]
	Viewer admin.Viewer[model.State]

	// Lookup is the full country list offered by the selector
	Lookup []model.Country
}

// NewStateModel creates a State screen on page 0 in create mode
func NewStateModel(opts Options) StateModel {
	columns := []table.Column{
		{Title: "ID", Width: 6},
		{Title: "Name", Width: 28},
		{Title: "Country", Width: 28},
	}
	return StateModel{
		screenBase: newScreenBase(RouteState, opts, columns, "Enter the State Name"),
		States:     []model.State{},
		Form:       admin.NewForm[model.StateDraft](),
		Lookup:     []model.Country{},
	}
}

// Init fetches the first page and the country lookup
func (m StateModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.fetchPage())
}

// fetchPage loads the current page and refreshes the lookup alongside it
func (m *StateModel) fetchPage() tea.Cmd {
	return tea.Batch(m.fetch(), fetchLookupCmd(m.client))
}

func (m *StateModel) fetch() tea.Cmd {
	return fetchStatesCmd(m.client, m.Pager.Index, m.Pager.Size)
}

// Update handles messages for the State screen
func (m StateModel) Update(msg tea.Msg) (StateModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		return m, nil

	case spinner.TickMsg:
		return m, m.handleSpinner(msg)

	case statesLoadedMsg:
		m.Loading = false
		if msg.err != nil {
			m.LastError = msg.err
			logging.LogFailure("fetch states", msg.err, zap.Int("page", msg.pageNo))
			return m, nil
		}
		m.States = msg.page.Content
		m.Pager.SetTotalPages(msg.page.TotalPages)
		m.syncRows()
		return m, nil

	case lookupLoadedMsg:
		if msg.err != nil {
			m.LastError = msg.err
			logging.LogFailure("fetch country lookup", msg.err)
			m.Lookup = []model.Country{}
			return m, nil
		}
		m.Lookup = msg.countries
		return m, nil

	case mutationDoneMsg:
		if msg.route != RouteState {
			return m, nil
		}
		return m.handleMutation(msg)

	case exportDoneMsg:
		if msg.route == RouteState {
			m.handleExportDone(msg)
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m StateModel) handleMutation(msg mutationDoneMsg) (StateModel, tea.Cmd) {
	o := admin.Settle(msg.action, msg.err)
	if !o.OK() {
		m.LastError = msg.err
		logging.LogFailure(msg.action.String()+" state", msg.err, zap.Int64("id", msg.id))
		return m, nil
	}
	logging.Debug("State "+msg.action.String()+" succeeded", zap.Int64("id", msg.id))
	if o.ResetForm {
		m.nameInput.SetValue("")
	}
	if admin.Apply(o, m.Form) {
		return m, tea.Batch(m.startLoading(), m.fetch())
	}
	return m, nil
}

func (m StateModel) handleKey(msg tea.KeyMsg) (StateModel, tea.Cmd) {
	if m.ShowingHelp {
		if closesOverlay(msg) {
			m.ShowingHelp = false
		}
		return m, nil
	}

	if m.Viewer.Open() {
		if closesOverlay(msg) {
			m.Viewer.Close()
		}
		return m, nil
	}

	if m.Typing() {
		return m.handleFormKey(msg)
	}

	if cmd, ok := m.handleCommonKey(msg, m.fetchPage); ok {
		return m, cmd
	}

	if format, ok := m.exportFormat(msg); ok {
		return m, exportCmd(RouteState, m.exportDir, format, export.StateTable(m.States))
	}

	switch {
	case key.Matches(msg, m.keys.New):
		m.Form.Reset()
		m.nameInput.SetValue("")
		return m, m.focusName()

	case key.Matches(msg, m.keys.Edit):
		s, ok := m.selected()
		if !ok {
			return m, nil
		}
		m.Form.Edit(s.ID, s.Draft())
		m.nameInput.SetValue(s.Name)
		m.nameInput.CursorEnd()
		return m, m.focusName()

	case key.Matches(msg, m.keys.Delete):
		s, ok := m.selected()
		if !ok {
			return m, nil
		}
		return m, deleteStateCmd(m.client, s.ID)

	case key.Matches(msg, m.keys.View):
		if s, ok := m.selected(); ok {
			m.Viewer.Show(s)
		}
		return m, nil
	}

	return m, nil
}

func (m StateModel) handleFormKey(msg tea.KeyMsg) (StateModel, tea.Cmd) {
	switch {
	case key.Matches(msg, m.formKeys.Cancel):
		if m.Form.Editing() {
			m.Form.Cancel()
			m.nameInput.SetValue("")
		}
		m.FieldError = ""
		m.blur()
		return m, nil

	case key.Matches(msg, m.formKeys.Submit):
		m.Form.Draft.Name = m.nameInput.Value()
		if err := m.Form.Draft.Validate(); err != nil {
			m.FieldError = requiredMessage(err)
			return m, nil
		}
		m.FieldError = ""
		m.blur()
		return m, saveStateCmd(m.client, m.Form.Mode(), m.Form.Draft)

	case key.Matches(msg, m.formKeys.NextField):
		if m.focus == focusName {
			m.nameInput.Blur()
			m.focus = focusCountry
			return m, nil
		}
		return m, m.focusName()
	}

	if m.focus == focusCountry {
		switch msg.String() {
		case "left":
			m.chooseCountry(-1)
		case "right":
			m.chooseCountry(1)
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.nameInput, cmd = m.nameInput.Update(msg)
	m.Form.Draft.Name = m.nameInput.Value()
	return m, cmd
}

// chooseCountry moves the selector by delta through the placeholder followed
// by every lookup entry, wrapping at both ends.
func (m *StateModel) chooseCountry(delta int) {
	n := len(m.Lookup) + 1
	pos := 0
	for i, c := range m.Lookup {
		if c.ID == m.Form.Draft.CountryID {
			pos = i + 1
			break
		}
	}
	pos = ((pos+delta)%n + n) % n
	if pos == 0 {
		m.Form.Draft.CountryID = 0
		return
	}
	m.Form.Draft.CountryID = m.Lookup[pos-1].ID
}

// countryChoice is the selector's current label
func (m *StateModel) countryChoice() string {
	id := m.Form.Draft.CountryID
	if id == 0 {
		return selectPlaceholder
	}
	for _, c := range m.Lookup {
		if c.ID == id {
			return c.String()
		}
	}
	return fmt.Sprintf("#%d", id)
}

// selected returns the record under the table cursor
func (m *StateModel) selected() (model.State, bool) {
	i := m.selectedIndex(len(m.States))
	if i < 0 {
		return model.State{}, false
	}
	return m.States[i], true
}

func (m *StateModel) syncRows() {
	rows := make([]table.Row, 0, len(m.States))
	for _, s := range m.States {
		rows = append(rows, table.Row{strconv.FormatInt(s.ID, 10), s.Name, s.CountryName()})
	}
	m.setRows(rows)
}

// View renders the State screen
func (m StateModel) View() string {
	if m.ShowingHelp {
		return m.renderHelpModal()
	}
	if s, ok := m.Viewer.Current(); ok {
		return m.renderDetails("State Details", [][2]string{
			{"ID", strconv.FormatInt(s.ID, 10)},
			{"Name", s.Name},
			{"Country", s.CountryName()},
		})
	}
	return RenderApplicationContainer(RouteState, m.buildContent(), m.footer(), m.Width, m.Height)
}

func (m StateModel) buildContent() string {
	var b strings.Builder

	b.WriteString(TitleStyle.Render("State Management"))
	b.WriteString("\n")
	b.WriteString(m.renderNameField("State Name:"))
	b.WriteString("\n")

	style := BlurredInputStyle
	if m.focus == focusCountry {
		style = FocusedInputStyle
	}
	b.WriteString(style.Render(fmt.Sprintf("%-14s", "Country:")))
	b.WriteString(style.Render("‹ " + m.countryChoice() + " ›"))
	b.WriteString("\n")

	target, editing := m.Form.Target()
	b.WriteString(m.renderSubmit(m.Form.SubmitLabel("State"), target, editing))
	b.WriteString("\n\n")
	b.WriteString(m.renderList("State Lists", len(m.States) == 0))

	return b.String()
}
