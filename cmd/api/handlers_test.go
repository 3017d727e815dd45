package main

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aoideee/crud-api/internal/data"
	"github.com/aoideee/crud-api/internal/store"
)

func newTestApp(t *testing.T, s store.Store) *applicationDependencies {
	t.Helper()
	var cfg serverConfig
	cfg.environment = "testing"
	return &applicationDependencies{
		config: cfg,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		store:  s,
		models: data.NewModels(s),
	}
}

func setup(t *testing.T) *httptest.Server {
	t.Helper()
	ts := httptest.NewServer(newTestApp(t, store.NewMemoryStore()).routes())
	t.Cleanup(ts.Close)
	return ts
}

// noRedirect returns a client that reports redirects instead of following them.
func noRedirect() *http.Client {
	return &http.Client{
		CheckRedirect: func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
}

func do(t *testing.T, method, target, contentType, body string) (*http.Response, []byte) {
	t.Helper()
	req, err := http.NewRequest(method, target, strings.NewReader(body))
	require.NoError(t, err)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	resp, err := noRedirect().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, b
}

func strPtr(s string) *string { return &s }

func decodeJSON[T any](t *testing.T, b []byte) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(b, &v), string(b))
	return v
}

func TestBooksCRUD(t *testing.T) {
	ts := setup(t)

	resp, body := do(t, http.MethodGet, ts.URL+"/books", "", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))
	assert.Empty(t, decodeJSON[[]data.Book](t, body))

	resp, body = do(t, http.MethodPost, ts.URL+"/books", "application/json", `{"title":"Dune","author":"Herbert"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	created := decodeJSON[data.Book](t, body)
	require.Len(t, created.ID, 24)
	assert.Equal(t, data.Book{ID: created.ID, Title: strPtr("Dune"), Author: strPtr("Herbert")}, created)

	resp, body = do(t, http.MethodGet, ts.URL+"/books/"+created.ID, "", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, created, decodeJSON[data.Book](t, body))

	resp, body = do(t, http.MethodGet, ts.URL+"/books", "", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, []data.Book{created}, decodeJSON[[]data.Book](t, body))

	resp, body = do(t, http.MethodDelete, ts.URL+"/books/"+created.ID, "", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, created, decodeJSON[data.Book](t, body))

	resp, body = do(t, http.MethodGet, ts.URL+"/books/"+created.ID, "", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "null", strings.TrimSpace(string(body)))

	resp, body = do(t, http.MethodDelete, ts.URL+"/books/"+created.ID, "", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "null", strings.TrimSpace(string(body)))
}

func TestUpdateReplacesWholeRecord(t *testing.T) {
	ts := setup(t)

	_, body := do(t, http.MethodPost, ts.URL+"/books", "application/json",
		`{"title":"Dune","author":"Herbert","image":"dune.jpg"}`)
	created := decodeJSON[data.Book](t, body)

	resp, body := do(t, http.MethodPut, ts.URL+"/books/"+created.ID, "application/json", `{"title":"Dune Messiah"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, data.Book{ID: created.ID, Title: strPtr("Dune Messiah")}, decodeJSON[data.Book](t, body))

	_, body = do(t, http.MethodGet, ts.URL+"/books/"+created.ID, "", "")
	assert.Equal(t, data.Book{ID: created.ID, Title: strPtr("Dune Messiah")}, decodeJSON[data.Book](t, body))
}

func TestUpdateReplacesWholeWine(t *testing.T) {
	ts := setup(t)

	_, body := do(t, http.MethodPost, ts.URL+"/wines", "application/json",
		`{"name":"REX HILL","year":2009,"country":"USA","price":25}`)
	created := decodeJSON[data.Wine](t, body)
	require.NotNil(t, created.Price)

	resp, body := do(t, http.MethodPut, ts.URL+"/wines/"+created.ID, "application/json",
		`{"name":"REX HILL","year":2010,"description":"Pinot Noir"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	year := 2010
	want := data.Wine{ID: created.ID, Name: strPtr("REX HILL"), Year: &year, Description: strPtr("Pinot Noir")}
	assert.Equal(t, want, decodeJSON[data.Wine](t, body))

	_, body = do(t, http.MethodGet, ts.URL+"/wines/"+created.ID, "", "")
	got := decodeJSON[map[string]any](t, body)
	assert.NotContains(t, got, "country")
	assert.NotContains(t, got, "price")
	assert.Equal(t, "Pinot Noir", got["description"])
}

func TestUpdateMissingRecordFails(t *testing.T) {
	ts := setup(t)

	for _, collection := range []string{"books", "wines"} {
		resp, body := do(t, http.MethodPut, ts.URL+"/"+collection+"/"+store.NewID(), "application/json", `{"name":"x"}`)
		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode, collection)
		assert.Equal(t, data.ErrRecordNotFound.Error(), string(body), collection)
		assert.True(t, strings.HasPrefix(resp.Header.Get("Content-Type"), "text/plain"), collection)
	}
}

func TestCreateKeepsEmptyStrings(t *testing.T) {
	ts := setup(t)

	resp, body := do(t, http.MethodPost, ts.URL+"/books", "application/json", `{"title":"","author":"A"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	created := decodeJSON[map[string]any](t, body)
	assert.Equal(t, "", created["title"])
	assert.Equal(t, "A", created["author"])
	assert.NotContains(t, created, "image")

	id, _ := created["_id"].(string)
	_, body = do(t, http.MethodGet, ts.URL+"/books/"+id, "", "")
	assert.Equal(t, created, decodeJSON[map[string]any](t, body))

	resp, body = do(t, http.MethodPost, ts.URL+"/wines", "application/x-www-form-urlencoded", "name=&year=0")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	wine := decodeJSON[map[string]any](t, body)
	assert.Equal(t, "", wine["name"])
	assert.Equal(t, float64(0), wine["year"])
}

func TestCreateRejectsFractionalYear(t *testing.T) {
	ts := setup(t)

	resp, _ := do(t, http.MethodPost, ts.URL+"/wines", "application/json", `{"name":"LAN","year":2006.7}`)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)

	resp, _ = do(t, http.MethodPost, ts.URL+"/wines", "application/x-www-form-urlencoded", "name=LAN&year=2006.7")
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)

	_, body := do(t, http.MethodGet, ts.URL+"/wines", "", "")
	assert.Empty(t, decodeJSON[[]data.Wine](t, body))
}

func TestMalformedIDFails(t *testing.T) {
	ts := setup(t)

	for _, method := range []string{http.MethodGet, http.MethodDelete} {
		resp, body := do(t, method, ts.URL+"/wines/not-an-id", "", "")
		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode, method)
		assert.Contains(t, string(body), "not-an-id", method)
	}
}

func TestCreateFromForm(t *testing.T) {
	ts := setup(t)

	form := url.Values{
		"name":    {"REX HILL"},
		"year":    {"2009"},
		"price":   {"19.5"},
		"country": {"USA"},
	}
	resp, body := do(t, http.MethodPost, ts.URL+"/wines", "application/x-www-form-urlencoded", form.Encode())
	require.Equal(t, http.StatusOK, resp.StatusCode)

	got := decodeJSON[data.Wine](t, body)
	assert.Equal(t, strPtr("REX HILL"), got.Name)
	require.NotNil(t, got.Year)
	assert.Equal(t, 2009, *got.Year)
	require.NotNil(t, got.Price)
	assert.Equal(t, 19.5, *got.Price)
	assert.Equal(t, strPtr("USA"), got.Country)
}

func TestCreateWithEmptyBody(t *testing.T) {
	ts := setup(t)

	resp, body := do(t, http.MethodPost, ts.URL+"/books", "", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	created := decodeJSON[data.Book](t, body)
	assert.NotEmpty(t, created.ID)
	assert.Nil(t, created.Title)
}

func TestCreateWithMalformedBody(t *testing.T) {
	ts := setup(t)

	resp, _ := do(t, http.MethodPost, ts.URL+"/books", "application/json", `{"title":`)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)

	resp, _ = do(t, http.MethodPost, ts.URL+"/books", "application/json", `{"year":"soon"}`)
	assert.Equal(t, http.StatusOK, resp.StatusCode, "unknown fields are dropped")

	resp, _ = do(t, http.MethodPost, ts.URL+"/wines", "application/json", `{"year":"soon"}`)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
}

func TestUnknownRouteAndMethod(t *testing.T) {
	ts := setup(t)

	resp, body := do(t, http.MethodGet, ts.URL+"/authors", "", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Contains(t, decodeJSON[map[string]any](t, body), "error")

	resp, _ = do(t, http.MethodPatch, ts.URL+"/books", "", "")
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}
