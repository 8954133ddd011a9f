package tui

import (
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/muurk/geoadmin/internal/admin"
	"github.com/muurk/geoadmin/internal/apiclient"
	"github.com/muurk/geoadmin/internal/model"
)

func mountCountries(t *testing.T, opts Options) CountryModel {
	t.Helper()
	m := NewCountryModel(opts)
	require.True(t, m.Loading, "a new screen should start out loading")
	return settle(m, m.Init())
}

func TestCountryModel_InitialLoad(t *testing.T) {
	opts, _ := newBackend(t)
	m := mountCountries(t, opts)

	assert.False(t, m.Loading)
	assert.Len(t, m.Countries, 5)
	assert.Equal(t, "United States", m.Countries[0].Name)
	assert.Equal(t, 3, m.Pager.TotalPages)
	assert.Equal(t, "Page 1 of 3", m.Pager.Label())
	assert.False(t, m.Form.Editing())
	assert.Contains(t, m.View(), "Country Management")
	assert.Contains(t, m.View(), "Add Country")
}

func TestCountryModel_Paging(t *testing.T) {
	opts, _ := newBackend(t)
	m := mountCountries(t, opts)

	// previous on the first page does nothing
	m = press(m, keyType(tea.KeyLeft))
	assert.Equal(t, 0, m.Pager.Index)

	m = press(m, keyType(tea.KeyRight), keyType(tea.KeyRight))
	assert.Equal(t, 2, m.Pager.Index)
	assert.Len(t, m.Countries, 1)
	assert.Equal(t, "Page 3 of 3", m.Pager.Label())

	// next on the last page does nothing
	m = press(m, keyType(tea.KeyRight))
	assert.Equal(t, 2, m.Pager.Index)

	m = press(m, keyRunes("h"))
	assert.Equal(t, 1, m.Pager.Index)
	assert.Equal(t, "Canada", m.Countries[0].Name)
}

func TestCountryModel_Create(t *testing.T) {
	opts, srv := newBackend(t)
	m := mountCountries(t, opts)

	m = press(m, keyRunes("a"))
	require.True(t, m.Typing())
	m = typeText(m, "Portugal")
	assert.Equal(t, "Portugal", m.Form.Draft.Name)

	m = press(m, keyType(tea.KeyEnter))

	assert.False(t, m.Typing())
	assert.True(t, m.Form.Draft.IsZero(), "draft should reset after a successful create")
	assert.Empty(t, m.nameInput.Value())
	assert.Equal(t, admin.ModeCreate, m.Form.Mode().Kind)

	countries, _ := srv.Store().Counts()
	assert.Equal(t, 12, countries)
	assert.Equal(t, 3, m.Pager.TotalPages)
}

func TestCountryModel_CreateRequiresName(t *testing.T) {
	opts, srv := newBackend(t)
	m := mountCountries(t, opts)

	m = press(m, keyRunes("a"), keyRunes(" "), keyType(tea.KeyEnter))

	assert.True(t, m.Typing(), "form should keep focus")
	assert.Equal(t, "Please fill out the name", m.FieldError)
	countries, _ := srv.Store().Counts()
	assert.Equal(t, 11, countries)
}

func TestCountryModel_EditAndUpdate(t *testing.T) {
	opts, srv := newBackend(t)
	m := mountCountries(t, opts)

	m = press(m, keyType(tea.KeyDown), keyRunes("e"))
	require.True(t, m.Form.Editing())
	target, _ := m.Form.Target()
	assert.Equal(t, m.Countries[1].ID, target)
	assert.Equal(t, "Germany", m.nameInput.Value())
	assert.Contains(t, m.View(), "Update Country")
	assert.Contains(t, m.View(), "editing #"+strconv.FormatInt(target, 10))

	m = typeText(m, "y")
	m = press(m, keyType(tea.KeyEnter))

	assert.False(t, m.Form.Editing())
	assert.Equal(t, "Germanyy", m.Countries[1].Name)
	assert.Equal(t, "Germanyy", srv.Store().Countries()[1].Name)
}

func TestCountryModel_CancelEdit(t *testing.T) {
	opts, _, requests := newCountingBackend(t, nil)
	m := mountCountries(t, opts)

	m = press(m, keyRunes("e"))
	require.True(t, m.Form.Editing())
	loaded := requests.Load()

	m = press(m, keyType(tea.KeyEsc))
	assert.False(t, m.Form.Editing())
	assert.True(t, m.Form.Draft.IsZero())
	assert.Empty(t, m.nameInput.Value())
	assert.False(t, m.Typing())
	assert.Equal(t, loaded, requests.Load(), "cancel must not reach the backend")
}

func TestCountryModel_Delete(t *testing.T) {
	opts, srv := newBackend(t)
	m := mountCountries(t, opts)

	// Japan has no states and sits alone on the last page
	m = press(m, keyType(tea.KeyRight), keyType(tea.KeyRight))
	require.Equal(t, "Japan", m.Countries[0].Name)

	m = press(m, keyRunes("d"))

	countries, _ := srv.Store().Counts()
	assert.Equal(t, 10, countries)
	assert.Empty(t, m.Countries)
	assert.Equal(t, 2, m.Pager.TotalPages)
	assert.Contains(t, m.View(), "No data available")
}

func TestCountryModel_DeleteInUseKeepsList(t *testing.T) {
	opts, srv := newBackend(t)
	m := mountCountries(t, opts)
	before := m.Countries

	m = press(m, keyRunes("d"))

	require.Error(t, m.LastError)
	assert.Equal(t, http.StatusConflict, apiclient.StatusCode(m.LastError))
	assert.Equal(t, before, m.Countries)
	countries, _ := srv.Store().Counts()
	assert.Equal(t, 11, countries)
}

func TestCountryModel_View(t *testing.T) {
	opts, _ := newBackend(t)
	m := mountCountries(t, opts)

	m = press(m, keyRunes("v"))
	c, ok := m.Viewer.Current()
	require.True(t, ok)
	assert.Equal(t, "United States", c.Name)
	assert.Contains(t, m.View(), "Country Details")

	// other keys are swallowed while the overlay is open
	m = press(m, keyRunes("d"))
	assert.True(t, m.Viewer.Open())

	m = press(m, keyType(tea.KeyEsc))
	assert.False(t, m.Viewer.Open())
}

func TestCountryModel_FetchFailureKeepsData(t *testing.T) {
	m := NewCountryModel(newFailingBackend(t, http.StatusInternalServerError))
	m.Countries = []model.Country{{ID: 1, Name: "Kept"}}
	m.Pager.SetTotalPages(4)

	m = settle(m, m.Init())

	assert.False(t, m.Loading)
	assert.True(t, apiclient.IsHTTPError(m.LastError))
	assert.Equal(t, []model.Country{{ID: 1, Name: "Kept"}}, m.Countries)
	assert.Equal(t, 4, m.Pager.TotalPages)
	assert.NotContains(t, m.View(), "500", "failures are not shown to the user")
}

func TestCountryModel_FailedCreateKeepsDraft(t *testing.T) {
	m := NewCountryModel(newFailingBackend(t, http.StatusBadRequest))
	m.Loading = false

	m = press(m, keyRunes("a"))
	m = typeText(m, "Atlantis")
	m = press(m, keyType(tea.KeyEnter))

	assert.True(t, apiclient.IsHTTPError(m.LastError))
	assert.Equal(t, "Atlantis", m.Form.Draft.Name)
	assert.Equal(t, "Atlantis", m.nameInput.Value())
}

func TestCountryModel_Export(t *testing.T) {
	opts, _ := newBackend(t)
	m := mountCountries(t, opts)

	m = press(m, keyRunes("x"))
	assert.FileExists(t, filepath.Join(opts.ExportDir, "Countries.xlsx"))
	assert.Contains(t, m.Status, "Countries.xlsx")

	m = press(m, keyRunes("p"))
	path := filepath.Join(opts.ExportDir, "Countries.pdf")
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-", string(data[:5]))
	assert.Contains(t, m.Status, "Countries.pdf")
}

func TestCountryModel_HelpModal(t *testing.T) {
	opts, _ := newBackend(t)
	m := mountCountries(t, opts)

	m = press(m, keyRunes("?"))
	assert.True(t, m.ShowingHelp)
	assert.Contains(t, m.View(), "Press ? or esc to close")

	m = press(m, keyRunes("?"))
	assert.False(t, m.ShowingHelp)
}
