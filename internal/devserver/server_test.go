package devserver

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T, seed bool) *Server {
	t.Helper()
	s, err := New(&Config{Host: "127.0.0.1", Seed: seed})
	require.NoError(t, err)
	return s
}

func doRequest(t *testing.T, h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), "body: %s", rec.Body.String())
	return v
}

type testPage struct {
	Content []struct {
		ID        int64  `json:"id"`
		Name      string `json:"name"`
		CountryID int64  `json:"countryId"`
		Country   *struct {
			ID   int64  `json:"id"`
			Name string `json:"name"`
		} `json:"country"`
	} `json:"content"`
	TotalPages int  `json:"totalPages"`
	Number     int  `json:"number"`
	Last       bool `json:"last"`
}

func TestListCountries_Paged(t *testing.T) {
	s := newTestServer(t, true)

	rec := doRequest(t, s.Handler(), http.MethodGet, "/country?pageNo=2&pageSize=5", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	page := decode[testPage](t, rec)
	assert.Equal(t, 3, page.TotalPages, "11 seeded countries in pages of 5")
	assert.Equal(t, 2, page.Number)
	assert.True(t, page.Last)
	assert.Len(t, page.Content, 1)
}

func TestListCountries_Unpaged(t *testing.T) {
	s := newTestServer(t, true)

	rec := doRequest(t, s.Handler(), http.MethodGet, "/country", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var all []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &all))
	assert.Len(t, all, len(seedData))
}

func TestListCountries_BadParams(t *testing.T) {
	s := newTestServer(t, false)

	for _, path := range []string{
		"/country?pageNo=-1&pageSize=5",
		"/country?pageNo=x",
		"/country?pageNo=0&pageSize=0",
		"/state?pageSize=1000",
	} {
		rec := doRequest(t, s.Handler(), http.MethodGet, path, nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code, path)
	}
}

func TestListStates_EmbedsCountry(t *testing.T) {
	s := newTestServer(t, true)

	rec := doRequest(t, s.Handler(), http.MethodGet, "/state?pageNo=0&pageSize=5", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	page := decode[testPage](t, rec)
	require.Len(t, page.Content, 5)
	first := page.Content[0]
	require.NotNil(t, first.Country)
	assert.Equal(t, "United States", first.Country.Name)
	assert.Equal(t, first.Country.ID, first.CountryID)
}

func TestCountryCRUD(t *testing.T) {
	s := newTestServer(t, false)
	h := s.Handler()

	rec := doRequest(t, h, http.MethodPost, "/country", map[string]any{"name": "Chile"})
	require.Equal(t, http.StatusCreated, rec.Code)
	created := decode[map[string]any](t, rec)
	assert.Equal(t, "Chile", created["name"])

	rec = doRequest(t, h, http.MethodPut, "/country/1", map[string]any{"name": "Peru"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Peru", decode[map[string]any](t, rec)["name"])

	rec = doRequest(t, h, http.MethodDelete, "/country/1", nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = doRequest(t, h, http.MethodDelete, "/country/1", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCountryValidation(t *testing.T) {
	s := newTestServer(t, false)
	h := s.Handler()

	tests := []struct {
		name   string
		method string
		path   string
		body   any
		want   int
	}{
		{"missing name", http.MethodPost, "/country", map[string]any{}, http.StatusBadRequest},
		{"blank name", http.MethodPost, "/country", map[string]any{"name": "  "}, http.StatusBadRequest},
		{"bad id", http.MethodPut, "/country/abc", map[string]any{"name": "X"}, http.StatusBadRequest},
		{"unknown id", http.MethodPut, "/country/9", map[string]any{"name": "X"}, http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doRequest(t, h, tt.method, tt.path, tt.body)
			assert.Equal(t, tt.want, rec.Code)
		})
	}
}

func TestStateCRUD(t *testing.T) {
	s := newTestServer(t, false)
	h := s.Handler()
	usa, _ := s.Store().CreateCountry("USA")

	rec := doRequest(t, h, http.MethodPost, "/state", map[string]any{"name": "Texas", "countryId": usa.ID})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doRequest(t, h, http.MethodPost, "/state", map[string]any{"name": "Nowhere", "countryId": 99})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doRequest(t, h, http.MethodPost, "/state", map[string]any{"name": "Orphan"})
	assert.Equal(t, http.StatusBadRequest, rec.Code, "countryId is required")

	rec = doRequest(t, h, http.MethodDelete, "/country/1", nil)
	assert.Equal(t, http.StatusConflict, rec.Code, "country with states cannot be deleted")

	rec = doRequest(t, h, http.MethodPut, "/state/1", map[string]any{"name": "Tejas", "countryId": usa.ID})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Tejas", decode[map[string]any](t, rec)["name"])

	rec = doRequest(t, h, http.MethodDelete, "/state/1", nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	rec = doRequest(t, h, http.MethodDelete, "/state/1", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHealth(t *testing.T) {
	s := newTestServer(t, true)

	rec := doRequest(t, s.Handler(), http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	body := decode[map[string]any](t, rec)
	assert.Equal(t, "ok", body["status"])
	assert.EqualValues(t, len(seedData), body["countries"])
}

func TestCORS(t *testing.T) {
	s := newTestServer(t, false)

	req := httptest.NewRequest(http.MethodOptions, "/country", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", "POST")
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	assert.Less(t, rec.Code, 300)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}
