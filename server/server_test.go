package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/AYColumbia/glosser/vocab"
)

func newTestServer(t *testing.T) (*httptest.Server, *vocab.Store) {
	t.Helper()
	store, err := vocab.Open(filepath.Join(t.TempDir(), "vocab.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	srv := httptest.NewServer(New(store).Router())
	t.Cleanup(srv.Close)
	return srv, store
}

func TestHealthz(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, err := http.Get(srv.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Equal(t, "ok", body["status"])
}

func TestListWords(t *testing.T) {
	srv, store := newTestServer(t)

	_, err := store.Save(context.Background(), vocab.Entry{Word: "serendipity", Sentence: "Pure serendipity."})
	require.NoError(t, err)
	_, err = store.Save(context.Background(), vocab.Entry{Word: "ephemeral", Sentence: "It was ephemeral."})
	require.NoError(t, err)

	resp, err := http.Get(srv.URL + "/api/words")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var entries []vocab.Entry
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&entries))
	require.Len(t, entries, 2)
}

func TestListWordsEmpty(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, err := http.Get(srv.URL + "/api/words")
	require.NoError(t, err)
	defer resp.Body.Close()

	var entries []vocab.Entry
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&entries))
	require.NotNil(t, entries, "empty list should encode as [], not null")
	require.Empty(t, entries)
}

func TestGetWord(t *testing.T) {
	srv, store := newTestServer(t)

	saved, err := store.Save(context.Background(), vocab.Entry{Word: "serendipity", Sentence: "Pure serendipity."})
	require.NoError(t, err)

	resp, err := http.Get(srv.URL + "/api/words/" + saved.ID)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var entry vocab.Entry
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&entry))
	require.Equal(t, "serendipity", entry.Word)
}

func TestGetWordNotFound(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, err := http.Get(srv.URL + "/api/words/nope")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestDeleteWord(t *testing.T) {
	srv, store := newTestServer(t)
	ctx := context.Background()

	saved, err := store.Save(ctx, vocab.Entry{Word: "serendipity", Sentence: "Pure serendipity."})
	require.NoError(t, err)

	req, err := http.NewRequest(http.MethodDelete, srv.URL+"/api/words/"+saved.ID, nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	_, err = store.Get(ctx, saved.ID)
	require.ErrorIs(t, err, vocab.ErrNotFound)

	// Deleting again is a 404.
	resp2, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp2.Body.Close()
	require.Equal(t, http.StatusNotFound, resp2.StatusCode)
}
