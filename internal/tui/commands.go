package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/muurk/geoadmin/internal/admin"
	"github.com/muurk/geoadmin/internal/apiclient"
	"github.com/muurk/geoadmin/internal/export"
	"github.com/muurk/geoadmin/internal/model"
)

// Results of async requests. Each carries either a value or the error
// returned by the client.
type countriesLoadedMsg struct {
	pageNo int
	page   *model.Page[model.Country]
	err    error
}

type statesLoadedMsg struct {
	pageNo int
	page   *model.Page[model.State]
	err    error
}

type lookupLoadedMsg struct {
	countries []model.Country
	err       error
}

type mutationDoneMsg struct {
	route  Route
	action admin.Action
	id     int64
	err    error
}

type exportDoneMsg struct {
	route  Route
	format export.Format
	path   string
	err    error
}

func fetchCountriesCmd(client *apiclient.Client, pageNo, pageSize int) tea.Cmd {
	return func() tea.Msg {
		page, err := client.ListCountries(context.Background(), pageNo, pageSize)
		return countriesLoadedMsg{pageNo: pageNo, page: page, err: err}
	}
}

func fetchStatesCmd(client *apiclient.Client, pageNo, pageSize int) tea.Cmd {
	return func() tea.Msg {
		page, err := client.ListStates(context.Background(), pageNo, pageSize)
		return statesLoadedMsg{pageNo: pageNo, page: page, err: err}
	}
}

func fetchLookupCmd(client *apiclient.Client) tea.Cmd {
	return func() tea.Msg {
		countries, err := client.AllCountries(context.Background())
		return lookupLoadedMsg{countries: countries, err: err}
	}
}

func saveCountryCmd(client *apiclient.Client, mode admin.Mode, draft model.CountryDraft) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		if mode.Kind == admin.ModeEditing {
			_, err := client.UpdateCountry(ctx, mode.TargetID, draft)
			return mutationDoneMsg{route: RouteCountry, action: admin.ActionUpdate, id: mode.TargetID, err: err}
		}
		created, err := client.CreateCountry(ctx, draft)
		msg := mutationDoneMsg{route: RouteCountry, action: admin.ActionCreate, err: err}
		if created != nil {
			msg.id = created.ID
		}
		return msg
	}
}

func deleteCountryCmd(client *apiclient.Client, id int64) tea.Cmd {
	return func() tea.Msg {
		err := client.DeleteCountry(context.Background(), id)
		return mutationDoneMsg{route: RouteCountry, action: admin.ActionDelete, id: id, err: err}
	}
}

func saveStateCmd(client *apiclient.Client, mode admin.Mode, draft model.StateDraft) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		if mode.Kind == admin.ModeEditing {
			_, err := client.UpdateState(ctx, mode.TargetID, draft)
			return mutationDoneMsg{route: RouteState, action: admin.ActionUpdate, id: mode.TargetID, err: err}
		}
		created, err := client.CreateState(ctx, draft)
		msg := mutationDoneMsg{route: RouteState, action: admin.ActionCreate, err: err}
		if created != nil {
			msg.id = created.ID
		}
		return msg
	}
}

func deleteStateCmd(client *apiclient.Client, id int64) tea.Cmd {
	return func() tea.Msg {
		err := client.DeleteState(context.Background(), id)
		return mutationDoneMsg{route: RouteState, action: admin.ActionDelete, id: id, err: err}
	}
}

// exportCmd writes the given table into dir. The table is built from the
// page already on screen; nothing is fetched.
func exportCmd(route Route, dir string, format export.Format, table export.Table) tea.Cmd {
	return func() tea.Msg {
		path, err := export.Save(dir, format, table)
		return exportDoneMsg{route: route, format: format, path: path, err: err}
	}
}
