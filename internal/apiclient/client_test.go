package apiclient

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/muurk/geoadmin/internal/model"
)

// Mock backend responses
const (
	mockCountryPage = `{"content":[{"id":1,"name":"France"},{"id":2,"name":"Peru"}],"totalPages":3,"number":0}`
	mockStatePage   = `{"content":[{"id":4,"name":"Texas","country":{"id":7,"name":"USA"}}],"totalPages":1}`
	mockAllCountry  = `[{"id":1,"name":"France"},{"id":7,"name":"USA"}]`
)

// recordedRequest captures what the mock backend received
type recordedRequest struct {
	Method      string
	Path        string
	Query       string
	ContentType string
	Body        string
}

func newMockBackend(t *testing.T, status int, response string, rec *recordedRequest) *Client {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		if rec != nil {
			*rec = recordedRequest{
				Method:      r.Method,
				Path:        r.URL.Path,
				Query:       r.URL.RawQuery,
				ContentType: r.Header.Get("Content-Type"),
				Body:        string(body),
			}
		}
		w.WriteHeader(status)
		_, _ = w.Write([]byte(response))
	}))
	t.Cleanup(server.Close)
	return NewClient(server.URL)
}

func TestNewClient(t *testing.T) {
	client := NewClient("")
	if client.BaseURL != DefaultBaseURL {
		t.Errorf("BaseURL = %s, want %s", client.BaseURL, DefaultBaseURL)
	}
	if client.HTTPClient.Timeout != DefaultTimeout {
		t.Errorf("Timeout = %v, want %v", client.HTTPClient.Timeout, DefaultTimeout)
	}

	client = NewClient("http://api.example.com:9000/")
	if client.BaseURL != "http://api.example.com:9000" {
		t.Errorf("BaseURL = %s, trailing slash should be trimmed", client.BaseURL)
	}
}

func TestSetTimeout(t *testing.T) {
	client := NewClient("")
	client.SetTimeout(2 * time.Second)
	if client.HTTPClient.Timeout != 2*time.Second {
		t.Errorf("Timeout = %v, want 2s", client.HTTPClient.Timeout)
	}
}

func TestListCountries_Success(t *testing.T) {
	var rec recordedRequest
	client := newMockBackend(t, http.StatusOK, mockCountryPage, &rec)

	page, err := client.ListCountries(context.Background(), 2, 5)
	if err != nil {
		t.Fatalf("ListCountries() error = %v", err)
	}

	if rec.Method != http.MethodGet || rec.Path != "/country" {
		t.Errorf("request = %s %s, want GET /country", rec.Method, rec.Path)
	}
	if rec.Query != "pageNo=2&pageSize=5" {
		t.Errorf("query = %q, want pageNo=2&pageSize=5", rec.Query)
	}
	if page.TotalPages != 3 {
		t.Errorf("TotalPages = %d, want 3", page.TotalPages)
	}
	if len(page.Content) != 2 || page.Content[1].Name != "Peru" {
		t.Errorf("Content = %+v, want France, Peru in order", page.Content)
	}
}

func TestListCountries_NotAnObject(t *testing.T) {
	client := newMockBackend(t, http.StatusOK, mockAllCountry, nil)

	_, err := client.ListCountries(context.Background(), 0, 5)
	if !IsParseError(err) {
		t.Fatalf("ListCountries() error = %v, want parse error", err)
	}
}

func TestListCountries_Malformed(t *testing.T) {
	client := newMockBackend(t, http.StatusOK, `{"content":[`, nil)

	_, err := client.ListCountries(context.Background(), 0, 5)
	if !IsParseError(err) {
		t.Fatalf("ListCountries() error = %v, want parse error", err)
	}
}

func TestListStates_EmbeddedCountry(t *testing.T) {
	var rec recordedRequest
	client := newMockBackend(t, http.StatusOK, mockStatePage, &rec)

	page, err := client.ListStates(context.Background(), 0, 5)
	if err != nil {
		t.Fatalf("ListStates() error = %v", err)
	}
	if rec.Path != "/state" || rec.Query != "pageNo=0&pageSize=5" {
		t.Errorf("request = %s?%s, want /state?pageNo=0&pageSize=5", rec.Path, rec.Query)
	}
	if got := page.Content[0].CountryName(); got != "USA" {
		t.Errorf("CountryName() = %s, want USA", got)
	}
}

func TestAllCountries(t *testing.T) {
	var rec recordedRequest
	client := newMockBackend(t, http.StatusOK, mockAllCountry, &rec)

	countries, err := client.AllCountries(context.Background())
	if err != nil {
		t.Fatalf("AllCountries() error = %v", err)
	}
	if rec.Path != "/country" || rec.Query != "" {
		t.Errorf("request = %s?%s, want unpaginated /country", rec.Path, rec.Query)
	}
	if len(countries) != 2 || countries[1].ID != 7 {
		t.Errorf("countries = %+v", countries)
	}
}

func TestAllCountries_NotASequence(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"paged object", mockCountryPage},
		{"null", `null`},
		{"string", `"nope"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newMockBackend(t, http.StatusOK, tt.body, nil)
			countries, err := client.AllCountries(context.Background())
			if !IsParseError(err) {
				t.Fatalf("AllCountries() error = %v, want parse error", err)
			}
			if countries != nil {
				t.Errorf("countries = %v, want nil", countries)
			}
		})
	}
}

func TestCreateState_Body(t *testing.T) {
	var rec recordedRequest
	client := newMockBackend(t, http.StatusCreated, `{"id":11,"name":"Texas","countryId":7}`, &rec)

	created, err := client.CreateState(context.Background(), model.StateDraft{Name: "Texas", CountryID: 7})
	if err != nil {
		t.Fatalf("CreateState() error = %v", err)
	}

	if rec.Method != http.MethodPost || rec.Path != "/state" {
		t.Errorf("request = %s %s, want POST /state", rec.Method, rec.Path)
	}
	if rec.ContentType != "application/json" {
		t.Errorf("Content-Type = %q, want application/json", rec.ContentType)
	}

	var sent map[string]any
	if err := json.Unmarshal([]byte(rec.Body), &sent); err != nil {
		t.Fatalf("request body is not JSON: %v", err)
	}
	if len(sent) != 2 || sent["name"] != "Texas" || sent["countryId"] != float64(7) {
		t.Errorf("body = %s, want {name:Texas, countryId:7}", rec.Body)
	}
	if created == nil || created.ID != 11 {
		t.Errorf("created = %+v, want id 11", created)
	}
}

func TestCreateCountry_EmptySuccessBody(t *testing.T) {
	client := newMockBackend(t, http.StatusOK, "", nil)

	created, err := client.CreateCountry(context.Background(), model.CountryDraft{Name: "Chile"})
	if err != nil {
		t.Fatalf("CreateCountry() error = %v, success is judged by status only", err)
	}
	if created != nil {
		t.Errorf("created = %+v, want nil without a body", created)
	}
}

func TestCreateCountry_GarbageSuccessBody(t *testing.T) {
	client := newMockBackend(t, http.StatusOK, "Country saved", nil)

	_, err := client.CreateCountry(context.Background(), model.CountryDraft{Name: "Chile"})
	if err != nil {
		t.Fatalf("CreateCountry() error = %v, want nil for 2xx", err)
	}
}

func TestUpdateCountry(t *testing.T) {
	var rec recordedRequest
	client := newMockBackend(t, http.StatusOK, `{"id":3,"name":"Chile"}`, &rec)

	updated, err := client.UpdateCountry(context.Background(), 3, model.CountryDraft{Name: "Chile"})
	if err != nil {
		t.Fatalf("UpdateCountry() error = %v", err)
	}
	if rec.Method != http.MethodPut || rec.Path != "/country/3" {
		t.Errorf("request = %s %s, want PUT /country/3", rec.Method, rec.Path)
	}
	if strings.TrimSpace(rec.Body) != `{"name":"Chile"}` {
		t.Errorf("body = %s, want {\"name\":\"Chile\"}", rec.Body)
	}
	if updated.Name != "Chile" {
		t.Errorf("updated = %+v", updated)
	}
}

func TestUpdateState(t *testing.T) {
	var rec recordedRequest
	client := newMockBackend(t, http.StatusOK, `{}`, &rec)

	if _, err := client.UpdateState(context.Background(), 9, model.StateDraft{Name: "Bavaria", CountryID: 2}); err != nil {
		t.Fatalf("UpdateState() error = %v", err)
	}
	if rec.Method != http.MethodPut || rec.Path != "/state/9" {
		t.Errorf("request = %s %s, want PUT /state/9", rec.Method, rec.Path)
	}
}

func TestDeleteCountry(t *testing.T) {
	var rec recordedRequest
	client := newMockBackend(t, http.StatusNoContent, "", &rec)

	if err := client.DeleteCountry(context.Background(), 4); err != nil {
		t.Fatalf("DeleteCountry() error = %v", err)
	}
	if rec.Method != http.MethodDelete || rec.Path != "/country/4" {
		t.Errorf("request = %s %s, want DELETE /country/4", rec.Method, rec.Path)
	}
	if rec.Body != "" {
		t.Errorf("DELETE should not send a body, got %q", rec.Body)
	}
}

func TestDeleteState_Failure(t *testing.T) {
	client := newMockBackend(t, http.StatusInternalServerError, `{"error":"constraint"}`, nil)

	err := client.DeleteState(context.Background(), 5)
	if err == nil {
		t.Fatal("DeleteState() should fail on 500")
	}
	if !IsHTTPError(err) {
		t.Fatalf("error kind = %v, want HTTP", err)
	}
	if StatusCode(err) != http.StatusInternalServerError {
		t.Errorf("StatusCode() = %d, want 500", StatusCode(err))
	}
	if !strings.Contains(err.Error(), "delete state") {
		t.Errorf("error should name the operation: %v", err)
	}
}

func TestPing(t *testing.T) {
	var rec recordedRequest
	client := newMockBackend(t, http.StatusOK, mockCountryPage, &rec)

	if _, err := client.Ping(context.Background()); err != nil {
		t.Fatalf("Ping() error = %v", err)
	}
	if rec.Query != "pageNo=0&pageSize=1" {
		t.Errorf("query = %q, want pageNo=0&pageSize=1", rec.Query)
	}
}

func TestNetworkFailure(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	client := NewClient(url)
	_, err := client.ListCountries(context.Background(), 0, 5)
	if !IsNetworkError(err) {
		t.Fatalf("ListCountries() error = %v, want network error", err)
	}
}

func TestContextCanceled(t *testing.T) {
	client := newMockBackend(t, http.StatusOK, mockCountryPage, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.ListCountries(ctx, 0, 5)
	if !IsNetworkError(err) {
		t.Fatalf("error = %v, want network error", err)
	}
	if err.(*APIError).Subtype != NetworkCanceled {
		t.Errorf("Subtype = %v, want NetworkCanceled", err.(*APIError).Subtype)
	}
}
