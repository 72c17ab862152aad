package page

import (
	"compress/gzip"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadParsesDocument(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte("<html><head><title>A Story</title></head><body><p>Once upon a time.</p></body></html>"))
	}))
	defer srv.Close()

	client, err := NewClient()
	require.NoError(t, err)
	l := NewLoader(client)

	p, err := l.Load(context.Background(), srv.URL)
	require.NoError(t, err)
	require.Equal(t, "A Story", p.Title)
	require.Equal(t, srv.URL, p.URL)
	require.Equal(t, srv.URL, p.Document.URL())
	require.Contains(t, p.Document.Body().TextContent(), "Once upon a time.")
}

func TestLoadFollowsRedirects(t *testing.T) {
	mux := http.NewServeMux()
	srv := httptest.NewServer(mux)
	defer srv.Close()

	mux.HandleFunc("/start", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/final", http.StatusFound)
	})
	mux.HandleFunc("/final", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte("<html><head><title>Final</title></head><body>done</body></html>"))
	})

	client, err := NewClient()
	require.NoError(t, err)

	p, err := NewLoader(client).Load(context.Background(), srv.URL+"/start")
	require.NoError(t, err)
	require.Equal(t, srv.URL+"/final", p.URL, "final URL after redirects is the provenance")
}

func TestLoadRejectsNonHTML(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"not": "html"}`))
	}))
	defer srv.Close()

	client, err := NewClient()
	require.NoError(t, err)

	_, err = NewLoader(client).Load(context.Background(), srv.URL)
	require.Error(t, err)
}

func TestLoadRejectsErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	client, err := NewClient()
	require.NoError(t, err)

	_, err = NewLoader(client).Load(context.Background(), srv.URL)
	require.Error(t, err)
}

func TestClientDecodesGzip(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "gzip", r.Header.Get("Accept-Encoding"))
		w.Header().Set("Content-Type", "text/html")
		w.Header().Set("Content-Encoding", "gzip")
		gz := gzip.NewWriter(w)
		_, _ = gz.Write([]byte("<html><body>compressed</body></html>"))
		_ = gz.Close()
	}))
	defer srv.Close()

	client, err := NewClient()
	require.NoError(t, err)

	resp, err := client.Get(context.Background(), srv.URL)
	require.NoError(t, err)
	require.Contains(t, string(resp.Body), "compressed")
}

func TestParseContentType(t *testing.T) {
	mediaType, charset := ParseContentType(`text/html; charset="UTF-8"`)
	require.Equal(t, "text/html", mediaType)
	require.Equal(t, "utf-8", charset)

	require.True(t, IsHTMLContentType("text/html"))
	require.True(t, IsHTMLContentType("application/xhtml+xml; charset=utf-8"))
	require.False(t, IsHTMLContentType("text/plain"))
}
