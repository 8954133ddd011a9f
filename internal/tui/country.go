package tui

import (
	"errors"
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

// CountryModel is the Country screen mounted at "/"
type CountryModel struct {
	screenBase

	Countries []model.Country
	Form      *admin.Form[model.CountryDraft]
	Viewer    admin.Viewer[model.Country]
}

// NewCountryModel creates a Country screen on page 0 in create mode
func NewCountryModel(opts Options) CountryModel {
	columns := []table.Column{
		{Title: "ID", Width: 6},
		{Title: "Name", Width: 40},
	}
	return CountryModel{
		screenBase: newScreenBase(RouteCountry, opts, columns, "Enter the Country Name"),
		Countries:  []model.Country{},
		Form:       admin.NewForm[model.CountryDraft](),
	}
}

// Init fetches the first page. The model starts out loading.
func (m CountryModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.fetch())
}

func (m *CountryModel) fetch() tea.Cmd {
	return fetchCountriesCmd(m.client, m.Pager.Index, m.Pager.Size)
}

// Update handles messages for the Country screen
func (m CountryModel) Update(msg tea.Msg) (CountryModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		return m, nil

	case spinner.TickMsg:
		return m, m.handleSpinner(msg)

	case countriesLoadedMsg:
		m.Loading = false
		if msg.err != nil {
			m.LastError = msg.err
			logging.LogFailure("fetch countries", msg.err, zap.Int("page", msg.pageNo))
			return m, nil
		}
		m.Countries = msg.page.Content
		m.Pager.SetTotalPages(msg.page.TotalPages)
		m.syncRows()
		return m, nil

	case mutationDoneMsg:
		if msg.route != RouteCountry {
			return m, nil
		}
		return m.handleMutation(msg)

	case exportDoneMsg:
		if msg.route == RouteCountry {
			m.handleExportDone(msg)
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m CountryModel) handleMutation(msg mutationDoneMsg) (CountryModel, tea.Cmd) {
	o := admin.Settle(msg.action, msg.err)
	if !o.OK() {
		m.LastError = msg.err
		logging.LogFailure(msg.action.String()+" country", msg.err, zap.Int64("id", msg.id))
		return m, nil
	}
	logging.Debug("Country "+msg.action.String()+" succeeded", zap.Int64("id", msg.id))
	if o.ResetForm {
		m.nameInput.SetValue("")
	}
	if admin.Apply(o, m.Form) {
		return m, tea.Batch(m.startLoading(), m.fetch())
	}
	return m, nil
}

func (m CountryModel) handleKey(msg tea.KeyMsg) (CountryModel, tea.Cmd) {
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

	if cmd, ok := m.handleCommonKey(msg, m.fetch); ok {
		return m, cmd
	}

	if format, ok := m.exportFormat(msg); ok {
		return m, exportCmd(RouteCountry, m.exportDir, format, export.CountryTable(m.Countries))
	}

	switch {
	case key.Matches(msg, m.keys.New):
		m.Form.Reset()
		m.nameInput.SetValue("")
		return m, m.focusName()

	case key.Matches(msg, m.keys.Edit):
		c, ok := m.selected()
		if !ok {
			return m, nil
		}
		m.Form.Edit(c.ID, c.Draft())
		m.nameInput.SetValue(c.Name)
		m.nameInput.CursorEnd()
		return m, m.focusName()

	case key.Matches(msg, m.keys.Delete):
		c, ok := m.selected()
		if !ok {
			return m, nil
		}
		return m, deleteCountryCmd(m.client, c.ID)

	case key.Matches(msg, m.keys.View):
		if c, ok := m.selected(); ok {
			m.Viewer.Show(c)
		}
		return m, nil
	}

	return m, nil
}

func (m CountryModel) handleFormKey(msg tea.KeyMsg) (CountryModel, tea.Cmd) {
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
		return m, saveCountryCmd(m.client, m.Form.Mode(), m.Form.Draft)
	}

	var cmd tea.Cmd
	m.nameInput, cmd = m.nameInput.Update(msg)
	m.Form.Draft.Name = m.nameInput.Value()
	return m, cmd
}

// selected returns the record under the table cursor
func (m *CountryModel) selected() (model.Country, bool) {
	i := m.selectedIndex(len(m.Countries))
	if i < 0 {
		return model.Country{}, false
	}
	return m.Countries[i], true
}

func (m *CountryModel) syncRows() {
	rows := make([]table.Row, 0, len(m.Countries))
	for _, c := range m.Countries {
		rows = append(rows, table.Row{strconv.FormatInt(c.ID, 10), c.Name})
	}
	m.setRows(rows)
}

// View renders the Country screen
func (m CountryModel) View() string {
	if m.ShowingHelp {
		return m.renderHelpModal()
	}
	if c, ok := m.Viewer.Current(); ok {
		return m.renderDetails("Country Details", [][2]string{
			{"ID", strconv.FormatInt(c.ID, 10)},
			{"Name", c.Name},
		})
	}
	return RenderApplicationContainer(RouteCountry, m.buildContent(), m.footer(), m.Width, m.Height)
}

func (m CountryModel) buildContent() string {
	var b strings.Builder

	b.WriteString(TitleStyle.Render("Country Management"))
	b.WriteString("\n")
	b.WriteString(m.renderNameField("Name:"))
	b.WriteString("\n")
	target, editing := m.Form.Target()
	b.WriteString(m.renderSubmit(m.Form.SubmitLabel("Country"), target, editing))
	b.WriteString("\n\n")
	b.WriteString(m.renderList("Country Lists", len(m.Countries) == 0))

	return b.String()
}

// requiredMessage turns a validation error into the inline form message
func requiredMessage(err error) string {
	var fe *model.FieldError
	if errors.As(err, &fe) {
		switch fe.Field {
		case "countryId":
			return "Please select a country"
		default:
			return "Please fill out the name"
		}
	}
	return fmt.Sprint(err)
}
