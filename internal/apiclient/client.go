package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/muurk/geoadmin/internal/logging"
	"github.com/muurk/geoadmin/internal/model"
	"github.com/muurk/geoadmin/internal/version"
)

const (
	// DefaultBaseURL is the local development host the screens talk to
	DefaultBaseURL = "http://localhost:8080"

	// DefaultTimeout is the default HTTP request timeout
	DefaultTimeout = 10 * time.Second

	// DefaultPageSize is the fixed page size of both screens
	DefaultPageSize = 5

	countryPath = "/country"
	statePath   = "/state"
)

// Client is an HTTP client for the geography reference API
type Client struct {
	// BaseURL is the API root (e.g., "http://localhost:8080")
	BaseURL string

	// HTTPClient is the underlying HTTP client
	HTTPClient *http.Client

	// UserAgent is sent with every request
	UserAgent string
}

// NewClient creates a client for the API rooted at baseURL.
// An empty baseURL selects DefaultBaseURL.
func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		HTTPClient: &http.Client{Timeout: DefaultTimeout},
		UserAgent:  version.UserAgent(),
	}
}

// SetTimeout sets the HTTP request timeout
func (c *Client) SetTimeout(timeout time.Duration) {
	c.HTTPClient.Timeout = timeout
}

// Ping checks that the backend answers the country listing.
// Returns the round-trip time on success.
func (c *Client) Ping(ctx context.Context) (time.Duration, error) {
	start := time.Now()
	if _, err := c.ListCountries(ctx, 0, 1); err != nil {
		return 0, err
	}
	return time.Since(start), nil
}

// ListCountries fetches one page of countries (pageNo is zero-based)
func (c *Client) ListCountries(ctx context.Context, pageNo, pageSize int) (*model.Page[model.Country], error) {
	var page model.Page[model.Country]
	if err := c.getJSON(ctx, "list countries", pagePath(countryPath, pageNo, pageSize), &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// AllCountries fetches the unpaginated country collection.
// A response that is not a JSON array is a KindParse error.
func (c *Client) AllCountries(ctx context.Context) ([]model.Country, error) {
	var countries []model.Country
	if err := c.getJSON(ctx, "list all countries", countryPath, &countries); err != nil {
		return nil, err
	}
	if countries == nil {
		return nil, NewParseError("list all countries", "expected a JSON array, got null", nil)
	}
	return countries, nil
}

// CreateCountry creates a country. The returned country is nil when the
// backend answered 2xx without a decodable body.
func (c *Client) CreateCountry(ctx context.Context, draft model.CountryDraft) (*model.Country, error) {
	var created model.Country
	ok, err := c.sendJSON(ctx, "create country", http.MethodPost, countryPath, draft, &created)
	if err != nil || !ok {
		return nil, err
	}
	return &created, nil
}

// UpdateCountry replaces the editable fields of country id
func (c *Client) UpdateCountry(ctx context.Context, id int64, draft model.CountryDraft) (*model.Country, error) {
	var updated model.Country
	ok, err := c.sendJSON(ctx, "update country", http.MethodPut, idPath(countryPath, id), draft, &updated)
	if err != nil || !ok {
		return nil, err
	}
	return &updated, nil
}

// DeleteCountry deletes country id
func (c *Client) DeleteCountry(ctx context.Context, id int64) error {
	_, err := c.sendJSON(ctx, "delete country", http.MethodDelete, idPath(countryPath, id), nil, nil)
	return err
}

// ListStates fetches one page of states (pageNo is zero-based)
func (c *Client) ListStates(ctx context.Context, pageNo, pageSize int) (*model.Page[model.State], error) {
	var page model.Page[model.State]
	if err := c.getJSON(ctx, "list states", pagePath(statePath, pageNo, pageSize), &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// CreateState creates a state
func (c *Client) CreateState(ctx context.Context, draft model.StateDraft) (*model.State, error) {
	var created model.State
	ok, err := c.sendJSON(ctx, "create state", http.MethodPost, statePath, draft, &created)
	if err != nil || !ok {
		return nil, err
	}
	return &created, nil
}

// UpdateState replaces the editable fields of state id
func (c *Client) UpdateState(ctx context.Context, id int64, draft model.StateDraft) (*model.State, error) {
	var updated model.State
	ok, err := c.sendJSON(ctx, "update state", http.MethodPut, idPath(statePath, id), draft, &updated)
	if err != nil || !ok {
		return nil, err
	}
	return &updated, nil
}

// DeleteState deletes state id
func (c *Client) DeleteState(ctx context.Context, id int64) error {
	_, err := c.sendJSON(ctx, "delete state", http.MethodDelete, idPath(statePath, id), nil, nil)
	return err
}

// getJSON performs a GET and decodes the body into out. Decoding failures
// are KindParse errors.
func (c *Client) getJSON(ctx context.Context, op, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+path, nil)
	if err != nil {
		return NewNetworkError(op, err)
	}

	body, err := c.do(op, req)
	if err != nil {
		return err
	}

	if err := json.Unmarshal(body, out); err != nil {
		return NewParseError(op, "failed to parse JSON response", err)
	}
	return nil
}

// sendJSON performs a mutation. The body is JSON-encoded when non-nil.
// decoded reports whether out was filled from the response body; a 2xx
// response with an empty or unparsable body is still a success.
func (c *Client) sendJSON(ctx context.Context, op, method, path string, in, out any) (decoded bool, err error) {
	var reader io.Reader
	if in != nil {
		var buf bytes.Buffer
		if err := json.NewEncoder(&buf).Encode(in); err != nil {
			return false, NewParseError(op, "failed to encode request body", err)
		}
		reader = &buf
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, reader)
	if err != nil {
		return false, NewNetworkError(op, err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	body, err := c.do(op, req)
	if err != nil {
		return false, err
	}

	if out == nil || len(bytes.TrimSpace(body)) == 0 {
		return false, nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		logging.Debug("Ignoring undecodable success body",
			zap.String("operation", op),
			zap.Error(err),
		)
		return false, nil
	}
	return true, nil
}

// do sends the request and returns the body of a 2xx response
func (c *Client) do(op string, req *http.Request) ([]byte, error) {
	req.Header.Set("Accept", "application/json")
	if c.UserAgent != "" {
		req.Header.Set("User-Agent", c.UserAgent)
	}

	start := time.Now()
	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, NewNetworkError(op, err)
	}
	defer func() { _ = resp.Body.Close() }()

	logging.LogAPICall(req.Method, req.URL.String(), resp.StatusCode, time.Since(start))

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, NewNetworkError(op, fmt.Errorf("failed to read response body: %w", err))
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, NewHTTPError(op, resp.StatusCode, string(body))
	}

	return body, nil
}

func pagePath(resource string, pageNo, pageSize int) string {
	q := url.Values{}
	q.Set("pageNo", strconv.Itoa(pageNo))
	q.Set("pageSize", strconv.Itoa(pageSize))
	return resource + "?" + q.Encode()
}

func idPath(resource string, id int64) string {
	return resource + "/" + strconv.FormatInt(id, 10)
}
