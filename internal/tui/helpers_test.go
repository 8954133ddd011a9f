package tui

import (
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"github.com/muurk/geoadmin/internal/apiclient"
	"github.com/muurk/geoadmin/internal/devserver"
)

// newBackend starts a seeded development server and returns options that
// point a screen at it.
func newBackend(t *testing.T) (Options, *devserver.Server) {
	t.Helper()
	opts, srv, _ := newCountingBackend(t, nil)
	return opts, srv
}

// newCountingBackend is newBackend with a request counter. A non-nil
// override answers first; returning true stops the request there.
func newCountingBackend(t *testing.T, override func(w http.ResponseWriter, r *http.Request) bool) (Options, *devserver.Server, *atomic.Int32) {
	t.Helper()
	srv, err := devserver.New(&devserver.Config{Seed: true})
	require.NoError(t, err)

	var requests atomic.Int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		if override != nil && override(w, r) {
			return
		}
		srv.Handler().ServeHTTP(w, r)
	}))
	t.Cleanup(ts.Close)
	return Options{Client: apiclient.NewClient(ts.URL), ExportDir: t.TempDir()}, srv, &requests
}

// newFailingBackend answers every request with the given status
func newFailingBackend(t *testing.T, status int) Options {
	t.Helper()
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
	}))
	t.Cleanup(ts.Close)
	return Options{Client: apiclient.NewClient(ts.URL), ExportDir: t.TempDir()}
}

// collect runs cmd and every command batched inside it, returning the
// resulting messages. Spinner ticks and nil commands are dropped.
func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	switch msg := cmd().(type) {
	case nil, spinner.TickMsg:
		return nil
	case tea.BatchMsg:
		var out []tea.Msg
		for _, c := range msg {
			out = append(out, collect(c)...)
		}
		return out
	default:
		return []tea.Msg{msg}
	}
}

// settle feeds cmd's messages back into the model until no commands remain
func settle[M interface {
	Update(tea.Msg) (M, tea.Cmd)
}](m M, cmd tea.Cmd) M {
	for _, msg := range collect(cmd) {
		var next tea.Cmd
		m, next = m.Update(msg)
		m = settle(m, next)
	}
	return m
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func keyType(k tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: k}
}

// press sends a key and settles whatever it triggers
func press[M interface {
	Update(tea.Msg) (M, tea.Cmd)
}](m M, msgs ...tea.KeyMsg) M {
	for _, msg := range msgs {
		var cmd tea.Cmd
		m, cmd = m.Update(msg)
		m = settle(m, cmd)
	}
	return m
}

// typeText types s into whatever has focus
func typeText[M interface {
	Update(tea.Msg) (M, tea.Cmd)
}](m M, s string) M {
	for _, r := range s {
		m = press(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return m
}
