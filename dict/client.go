package dict

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// DefaultBaseURL is the public dictionaryapi.dev English endpoint.
const DefaultBaseURL = "https://api.dictionaryapi.dev/api/v2/entries/en"

// Client performs definition lookups over HTTP with an in-memory cache.
type Client struct {
	httpClient *http.Client
	baseURL    string
	userAgent  string
	cache      *lookupCache
	log        zerolog.Logger
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithBaseURL sets the dictionary endpoint.
func WithBaseURL(u string) ClientOption {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(u, "/")
	}
}

// WithTimeout sets the request timeout.
func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) {
		c.httpClient.Timeout = d
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) ClientOption {
	return func(c *Client) {
		c.userAgent = ua
	}
}

// WithCacheTTL sets how long lookup results are cached.
func WithCacheTTL(ttl time.Duration) ClientOption {
	return func(c *Client) {
		c.cache = newLookupCache(defaultCacheSize, ttl)
	}
}

// WithLogger sets the client's logger.
func WithLogger(log zerolog.Logger) ClientOption {
	return func(c *Client) {
		c.log = log
	}
}

// NewClient creates a dictionary client with the given options.
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		baseURL:    DefaultBaseURL,
		userAgent:  "Glosser/1.0",
		cache:      newLookupCache(defaultCacheSize, 10*time.Minute),
		log:        zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// apiEntry mirrors the dictionaryapi.dev response shape (only the fields
// we consume).
type apiEntry struct {
	Word     string `json:"word"`
	Phonetic string `json:"phonetic"`
	Meanings []struct {
		PartOfSpeech string `json:"partOfSpeech"`
		Definitions  []struct {
			Definition string `json:"definition"`
			Example    string `json:"example"`
		} `json:"definitions"`
	} `json:"meanings"`
}

// Lookup fetches the definition of word. The word is case-folded before
// the request. A "not found" response resolves to an Entry with no
// meanings and a nil error; transport and decode failures return the
// error alongside an empty entry so callers can still resolve.
func (c *Client) Lookup(ctx context.Context, word string) (Entry, error) {
	word = strings.ToLower(strings.TrimSpace(word))
	empty := Entry{Word: word}
	if word == "" {
		return empty, nil
	}

	if entry, ok := c.cache.Get(word); ok {
		return entry, nil
	}

	reqURL := c.baseURL + "/" + url.PathEscape(word)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return empty, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return empty, fmt.Errorf("lookup request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		c.log.Debug().Str("word", word).Msg("no definition found")
		c.cache.Set(word, empty)
		return empty, nil
	}
	if resp.StatusCode != http.StatusOK {
		return empty, fmt.Errorf("lookup returned status %d", resp.StatusCode)
	}

	var raw []apiEntry
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return empty, fmt.Errorf("failed to decode response: %w", err)
	}
	if len(raw) == 0 {
		c.cache.Set(word, empty)
		return empty, nil
	}

	entry := convertEntry(word, raw[0])
	c.cache.Set(word, entry)
	return entry, nil
}

// convertEntry maps the wire shape onto the domain Entry.
func convertEntry(word string, raw apiEntry) Entry {
	entry := Entry{Word: word, Phonetic: raw.Phonetic}
	for _, m := range raw.Meanings {
		meaning := Meaning{PartOfSpeech: m.PartOfSpeech}
		for _, d := range m.Definitions {
			meaning.Definitions = append(meaning.Definitions, Definition{
				Definition: d.Definition,
				Example:    d.Example,
			})
		}
		entry.Meanings = append(entry.Meanings, meaning)
	}
	return entry
}
