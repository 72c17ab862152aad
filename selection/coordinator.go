// Package selection coordinates the selection-to-popup lifecycle: it owns
// the single live highlight/popup/pending-lookup triple and serializes all
// mutations to it.
package selection

import (
	"context"
	"errors"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/AYColumbia/glosser/dict"
	"github.com/AYColumbia/glosser/dom"
	"github.com/AYColumbia/glosser/highlight"
	"github.com/AYColumbia/glosser/popup"
	"github.com/AYColumbia/glosser/sentence"
	"github.com/AYColumbia/glosser/vocab"
)

// State is the coordinator's lifecycle state.
type State int

const (
	// Idle means no highlight or popup is live.
	Idle State = iota
	// Pending means a selection is captured, the highlight is placed, the
	// popup shows placeholder content and a lookup is in flight.
	Pending
	// Resolved means the popup shows final content.
	Resolved
	// Closing means teardown is in progress.
	Closing
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Pending:
		return "pending"
	case Resolved:
		return "resolved"
	case Closing:
		return "closing"
	default:
		return "unknown"
	}
}

// Lookup resolves a word to a definition entry. dict.Client satisfies it.
type Lookup interface {
	Lookup(ctx context.Context, word string) (dict.Entry, error)
}

// Saver persists vocabulary entries. vocab.Store satisfies it.
type Saver interface {
	Save(ctx context.Context, entry vocab.Entry) (vocab.Entry, error)
}

// Input is one settled selection event: the selected range and its
// bounding rectangle in viewport coordinates.
type Input struct {
	Range  *dom.Range
	Anchor dom.Rect
}

const (
	defaultSettleDelay   = 250 * time.Millisecond
	defaultLookupTimeout = 15 * time.Second
)

// Coordinator drives the Idle/Pending/Resolved/Closing state machine for
// one document. All highlight and popup mutations go through it; there is
// never more than one of each live at a time.
type Coordinator struct {
	doc    *dom.Document
	lookup Lookup
	saver  Saver
	log    zerolog.Logger

	settleDelay   time.Duration
	lookupTimeout time.Duration
	popupSize     popup.Size
	viewport      popup.Size

	busy atomic.Bool

	mu         sync.Mutex
	state      State
	mark       *highlight.Mark
	view       *popup.View
	pendingGen uint64
	word       string
	sent       string
	entry      dict.Entry

	timer  *time.Timer
	latest Input
}

// Option configures a Coordinator.
type Option func(*Coordinator)

// WithSettleDelay sets how long Notify waits for selection changes to
// settle before evaluating.
func WithSettleDelay(d time.Duration) Option {
	return func(c *Coordinator) {
		c.settleDelay = d
	}
}

// WithLookupTimeout bounds the async definition lookup.
func WithLookupTimeout(d time.Duration) Option {
	return func(c *Coordinator) {
		c.lookupTimeout = d
	}
}

// WithPopupSize sets the popup dimensions used for placement.
func WithPopupSize(s popup.Size) Option {
	return func(c *Coordinator) {
		c.popupSize = s
	}
}

// WithViewport sets the viewport dimensions used for placement.
func WithViewport(s popup.Size) Option {
	return func(c *Coordinator) {
		c.viewport = s
	}
}

// WithSaver sets the store Save writes to.
func WithSaver(s Saver) Option {
	return func(c *Coordinator) {
		c.saver = s
	}
}

// WithLogger sets the coordinator's logger.
func WithLogger(log zerolog.Logger) Option {
	return func(c *Coordinator) {
		c.log = log
	}
}

// NewCoordinator creates a coordinator for the given document.
func NewCoordinator(doc *dom.Document, lookup Lookup, opts ...Option) *Coordinator {
	c := &Coordinator{
		doc:           doc,
		lookup:        lookup,
		log:           zerolog.Nop(),
		settleDelay:   defaultSettleDelay,
		lookupTimeout: defaultLookupTimeout,
		popupSize:     popup.Size{Width: 320, Height: 180},
		viewport:      popup.Size{Width: 1024, Height: 768},
		state:         Idle,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// State returns the current lifecycle state.
func (c *Coordinator) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Mark returns the live highlight, or nil.
func (c *Coordinator) Mark() *highlight.Mark {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.mark
}

// View returns the live popup, or nil.
func (c *Coordinator) View() *popup.View {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.view
}

// Notify records a selection-change event and restarts the settle timer.
// Rapid bursts coalesce into a single Select once the timer fires.
func (c *Coordinator) Notify(in Input) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.latest = in
	if c.timer != nil {
		c.timer.Stop()
	}
	c.timer = time.AfterFunc(c.settleDelay, func() {
		c.mu.Lock()
		in := c.latest
		c.mu.Unlock()
		c.Select(in)
	})
}

// Select handles one settled selection. An empty or collapsed selection
// tears down the live triple; a valid one supersedes it: highlight the
// range, open a placeholder popup and launch the tagged lookup. A Select
// arriving while another evaluation is processing is dropped.
func (c *Coordinator) Select(in Input) {
	if !c.busy.CompareAndSwap(false, true) {
		c.log.Debug().Msg("selection event dropped, evaluation in progress")
		return
	}
	defer c.busy.Store(false)

	c.mu.Lock()
	defer c.mu.Unlock()

	text := ""
	if in.Range != nil && !in.Range.Collapsed() {
		text = strings.TrimSpace(in.Range.ToString())
	}
	if text == "" {
		c.teardownLocked(true)
		c.state = Idle
		return
	}

	// Supersede without normalizing so the incoming range's boundary
	// points stay valid while the old highlight comes out.
	c.teardownLocked(false)

	// Extraction is pure and must run before the wrap mutates the tree.
	sent := sentence.Extract(in.Range)

	mark, err := highlight.Apply(c.doc, in.Range)
	if err != nil {
		c.log.Debug().Err(err).Str("text", text).Msg("highlight skipped")
	} else {
		c.mark = mark
	}

	c.view = popup.Open(c.doc, text, in.Anchor, c.popupSize, c.viewport)
	c.word = text
	c.sent = sent
	c.pendingGen++
	c.state = Pending

	gen := c.pendingGen
	word := strings.ToLower(text)
	go c.resolve(gen, word)
}

// DoubleClick handles a double-click inside a text node: it expands the
// offset to word boundaries and selects the word. Words shorter than two
// runes produce no transition.
func (c *Coordinator) DoubleClick(node *dom.Node, offset int, anchor dom.Rect) {
	if node == nil || node.NodeType() != dom.TextNode {
		return
	}
	word, start, end := sentence.WordAt(node.Data(), offset)
	if word == "" {
		return
	}

	r := dom.NewRange(c.doc)
	if err := r.SetStart(node, start); err != nil {
		return
	}
	if err := r.SetEnd(node, end); err != nil {
		return
	}
	c.Select(Input{Range: r, Anchor: anchor})
}

// resolve completes the lookup tagged with gen. A response whose tag no
// longer matches the live pending lookup is discarded without touching
// the popup.
func (c *Coordinator) resolve(gen uint64, word string) {
	ctx, cancel := context.WithTimeout(context.Background(), c.lookupTimeout)
	defer cancel()

	entry, err := c.lookup.Lookup(ctx, word)

	c.mu.Lock()
	defer c.mu.Unlock()

	if gen != c.pendingGen || c.state != Pending {
		c.log.Debug().Str("word", word).Msg("discarding stale lookup response")
		return
	}
	if err != nil {
		c.log.Warn().Err(err).Str("word", word).Msg("definition lookup failed")
		entry = dict.Entry{Word: word}
	}

	c.view.SetEntry(entry)
	c.entry = entry
	c.state = Resolved
}

// Clear tears down the live highlight, popup and pending lookup. It is an
// idempotent no-op from Idle.
func (c *Coordinator) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state == Idle {
		return
	}
	c.state = Closing
	c.teardownLocked(true)
	c.state = Idle
}

// teardownLocked closes the popup, removes the highlight and invalidates
// any in-flight lookup. Must be called with c.mu held.
func (c *Coordinator) teardownLocked(normalize bool) {
	c.view.Close()
	c.view = nil
	if normalize {
		c.mark.Remove()
	} else {
		c.mark.Detach()
	}
	c.mark = nil
	c.pendingGen++
	c.word = ""
	c.sent = ""
	c.entry = dict.Entry{}
}

// Save persists the resolved selection as a vocabulary entry: the word,
// its sentence, the first definition and the document's location. It
// fails from any state other than Resolved.
func (c *Coordinator) Save(ctx context.Context) (vocab.Entry, error) {
	c.mu.Lock()
	if c.state != Resolved {
		c.mu.Unlock()
		return vocab.Entry{}, errors.New("selection: nothing to save")
	}
	def, pos := c.entry.First()
	entry := vocab.Entry{
		Word:         c.word,
		Sentence:     c.sent,
		Definition:   def.Definition,
		PartOfSpeech: pos,
		Phonetic:     c.entry.Phonetic,
		SourceURL:    c.doc.URL(),
		SourceTitle:  c.doc.Title(),
	}
	c.mu.Unlock()

	if c.saver == nil {
		return vocab.Entry{}, errors.New("selection: no store configured")
	}
	saved, err := c.saver.Save(ctx, entry)
	if err != nil {
		return vocab.Entry{}, err
	}
	c.log.Info().Str("word", saved.Word).Str("id", saved.ID).Msg("saved vocabulary entry")
	return saved, nil
}
