package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/muurk/geoadmin/internal/logging"
)

// Route identifies a screen
type Route string

const (
	RouteCountry Route = "/"
	RouteState   Route = "/state"
)

// Routes lists the screens in tab order
var Routes = []Route{RouteCountry, RouteState}

// Title returns the tab label
func (r Route) Title() string {
	switch r {
	case RouteState:
		return "States"
	default:
		return "Countries"
	}
}

// target returns the route a switch key leads to from r
func (r Route) target(keyName string) Route {
	switch keyName {
	case "1":
		return RouteCountry
	case "2":
		return RouteState
	}
	if r == RouteCountry {
		return RouteState
	}
	return RouteCountry
}

// ParseRoute accepts "/", "/state" or the entity names
func ParseRoute(s string) (Route, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "/", "country", "countries":
		return RouteCountry, nil
	case "/state", "state", "states":
		return RouteState, nil
	default:
		return "", fmt.Errorf("unknown route %q (use / or /state)", s)
	}
}

// AppModel is the top-level model. It mounts exactly one screen at a time;
// switching routes discards the old screen and mounts a fresh one.
type AppModel struct {
	Route Route

	Country CountryModel
	State   StateModel

	opts Options

	Width  int
	Height int
}

// NewAppModel creates the application on the given route
func NewAppModel(start Route, opts Options) AppModel {
	m := AppModel{
		opts:   opts,
		Width:  DefaultWidth,
		Height: DefaultHeight,
	}
	m.mount(start)
	return m
}

// mount replaces the screen for route with a fresh one
func (m *AppModel) mount(route Route) {
	m.Route = route
	switch route {
	case RouteState:
		m.State = NewStateModel(m.opts)
		m.State.Width, m.State.Height = m.Width, m.Height
	default:
		m.Route = RouteCountry
		m.Country = NewCountryModel(m.opts)
		m.Country.Width, m.Country.Height = m.Width, m.Height
	}
}

// Init initializes the mounted screen
func (m AppModel) Init() tea.Cmd {
	if m.Route == RouteState {
		return m.State.Init()
	}
	return m.Country.Init()
}

// Update handles global keys and route switches, and passes everything else
// to the mounted screen.
func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height

	case tea.KeyMsg:
		// Global quit handler
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

	case switchRouteMsg:
		if msg.route == m.Route {
			return m, nil
		}
		logging.Debug("Switching route", zap.String("from", string(m.Route)), zap.String("to", string(msg.route)))
		m.mount(msg.route)
		return m, m.Init()
	}

	var cmd tea.Cmd
	if m.Route == RouteState {
		m.State, cmd = m.State.Update(msg)
	} else {
		m.Country, cmd = m.Country.Update(msg)
	}
	return m, cmd
}

// View renders the mounted screen
func (m AppModel) View() string {
	if m.Route == RouteState {
		return m.State.View()
	}
	return m.Country.View()
}

// Run starts the interactive client and blocks until the user quits
func Run(start Route, opts Options) error {
	p := tea.NewProgram(NewAppModel(start, opts), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
