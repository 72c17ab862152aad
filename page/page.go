package page

import (
	"context"
	"fmt"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/AYColumbia/glosser/dom"
)

// Page is a loaded document with its provenance.
type Page struct {
	Document    *dom.Document
	URL         string // Final URL after redirects
	Title       string
	ContentType string
	StatusCode  int
}

// Loader fetches URLs and parses them into documents.
type Loader struct {
	client *Client
	log    zerolog.Logger
}

// LoaderOption configures a Loader.
type LoaderOption func(*Loader)

// WithLogger sets the loader's logger.
func WithLogger(log zerolog.Logger) LoaderOption {
	return func(l *Loader) {
		l.log = log
	}
}

// NewLoader creates a loader on top of the given client.
func NewLoader(client *Client, opts ...LoaderOption) *Loader {
	l := &Loader{
		client: client,
		log:    zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load fetches urlStr and parses the response into a document. The
// returned page records the final URL after redirects and the document
// title so saved entries can carry their source.
func (l *Loader) Load(ctx context.Context, urlStr string) (*Page, error) {
	resp, err := l.client.Get(ctx, urlStr)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", urlStr, err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("loading %s returned status %d", urlStr, resp.StatusCode)
	}
	if !IsHTMLContentType(resp.ContentType) {
		return nil, fmt.Errorf("%s is not an HTML document (%s)", urlStr, resp.ContentType)
	}

	doc, err := dom.ParseHTML(string(resp.Body))
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", urlStr, err)
	}

	finalURL := urlStr
	if resp.URL != nil {
		finalURL = resp.URL.String()
	}
	doc.SetURL(finalURL)

	l.log.Debug().
		Str("url", finalURL).
		Str("title", doc.Title()).
		Int("bytes", len(resp.Body)).
		Msg("loaded page")

	return &Page{
		Document:    doc,
		URL:         finalURL,
		Title:       doc.Title(),
		ContentType: resp.ContentType,
		StatusCode:  resp.StatusCode,
	}, nil
}
