package main

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aoideee/crud-api/internal/data"
	"github.com/aoideee/crud-api/internal/store"
	mock_store "github.com/aoideee/crud-api/internal/store/mock"
)

func TestResetRedirectsAndReseeds(t *testing.T) {
	ts := setup(t)
	seeds, err := data.LoadSeeds()
	require.NoError(t, err)

	// Records created beforehand are wiped by the reset.
	do(t, http.MethodPost, ts.URL+"/books", "application/json", `{"title":"Dune"}`)

	resp, _ := do(t, http.MethodPost, ts.URL+"/reset", "", "")
	require.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/", resp.Header.Get("Location"))

	_, body := do(t, http.MethodGet, ts.URL+"/books", "", "")
	books := decodeJSON[[]data.Book](t, body)
	require.Len(t, books, len(seeds.Books))
	for i, b := range books {
		assert.NotEmpty(t, b.ID)
		b.ID = ""
		assert.Equal(t, seeds.Books[i], b)
	}

	_, body = do(t, http.MethodGet, ts.URL+"/wines", "", "")
	wines := decodeJSON[[]data.Wine](t, body)
	require.Len(t, wines, len(seeds.Wines))
	for i, w := range wines {
		w.ID = ""
		assert.Equal(t, seeds.Wines[i], w)
	}
}

func TestResetJSON(t *testing.T) {
	ts := setup(t)
	seeds, err := data.LoadSeeds()
	require.NoError(t, err)

	for _, tc := range []struct {
		name, url, contentType, body string
	}{
		{"query", "/reset?format=json", "", ""},
		{"form", "/reset", "application/x-www-form-urlencoded", "format=json"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			resp, body := do(t, http.MethodPost, ts.URL+tc.url, tc.contentType, tc.body)
			require.Equal(t, http.StatusOK, resp.StatusCode)

			records := decodeJSON[[]map[string]any](t, body)
			require.Len(t, records, len(seeds.Books)+len(seeds.Wines))
			assert.Equal(t, *seeds.Books[0].Title, records[0]["title"])
			assert.Equal(t, *seeds.Wines[0].Name, records[len(seeds.Books)]["name"])
			for _, rec := range records {
				assert.Len(t, rec["_id"], 24)
			}
		})
	}

	// Repeating the reset leaves exactly one copy of the seeds.
	_, body := do(t, http.MethodGet, ts.URL+"/books", "", "")
	assert.Len(t, decodeJSON[[]data.Book](t, body), len(seeds.Books))
}

func TestResetFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	s := mock_store.NewMockStore(ctrl)
	boom := errors.New("connection refused")

	s.EXPECT().DeleteAll(gomock.Any(), data.BooksCollection).Return(int64(0), boom).Times(2)
	s.EXPECT().Insert(gomock.Any(), data.BooksCollection, gomock.Any()).Return(nil, boom).Times(2)
	s.EXPECT().DeleteAll(gomock.Any(), data.WinesCollection).Return(int64(0), nil).Times(2)
	s.EXPECT().Insert(gomock.Any(), data.WinesCollection, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, docs ...store.Document) ([]store.Document, error) {
			return docs, nil
		}).Times(2)

	ts := httptest.NewServer(newTestApp(t, s).routes())
	t.Cleanup(ts.Close)

	resp, body := do(t, http.MethodPost, ts.URL+"/reset?format=json", "", "")
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Contains(t, string(body), "remove books: connection refused")
	assert.Contains(t, string(body), "create books: connection refused")

	// Without format=json the failure is only logged.
	resp, _ = do(t, http.MethodPost, ts.URL+"/reset", "", "")
	assert.Equal(t, http.StatusFound, resp.StatusCode)
}
