package sentence

import (
	"strings"
	"testing"

	"github.com/AYColumbia/glosser/dom"
)

func parseFixture(t *testing.T, html string) *dom.Document {
	t.Helper()
	doc, err := dom.ParseHTML(html)
	if err != nil {
		t.Fatal("ParseHTML error:", err)
	}
	return doc
}

func TestExtractSingleTextNode(t *testing.T) {
	doc := parseFixture(t, "<html><body><p id='p'>First one. Second here! Third thing?</p></body></html>")
	text := doc.GetElementById("p").FirstChild()

	r := dom.NewRange(doc)
	idx := strings.Index(text.Data(), "here")
	r.SetStart(text, idx)
	r.SetEnd(text, idx+len("here"))

	got := Extract(r)
	if got != "Second here!" {
		t.Errorf("Expected 'Second here!', got %q", got)
	}
	if !strings.Contains(got, "here") {
		t.Error("Extracted sentence must contain the selection verbatim")
	}
}

func TestExtractAcrossInlineElement(t *testing.T) {
	doc := parseFixture(t, "<html><body><p id='p'>The quick <b>brown</b> fox jumps.</p></body></html>")
	bText := doc.GetElementById("p").FirstChild().NextSibling().FirstChild()

	r := dom.NewRange(doc)
	r.SetStart(bText, 0)
	r.SetEnd(bText, len("brown"))

	got := Extract(r)
	if got != "The quick brown fox jumps." {
		t.Errorf("Expected full reconstructed sentence, got %q", got)
	}
}

func TestExtractSelectionSpanningNodes(t *testing.T) {
	doc := parseFixture(t, "<html><body><p id='p'>Start here. The quick <b>brown</b> fox jumps. End there.</p></body></html>")
	p := doc.GetElementById("p")
	text1 := p.FirstChild() // "Start here. The quick "
	text2 := p.LastChild()  // " fox jumps. End there."

	r := dom.NewRange(doc)
	r.SetStart(text1, strings.Index(text1.Data(), "quick"))
	r.SetEnd(text2, len(" fox"))

	got := Extract(r)
	if got != "The quick brown fox jumps." {
		t.Errorf("Expected 'The quick brown fox jumps.', got %q", got)
	}
}

func TestExtractAbbreviationLimitation(t *testing.T) {
	doc := parseFixture(t, "<html><body><p id='p'>Dr. Smith arrived. He left.</p></body></html>")
	text := doc.GetElementById("p").FirstChild()

	r := dom.NewRange(doc)
	idx := strings.Index(text.Data(), "arrived")
	r.SetStart(text, idx)
	r.SetEnd(text, idx+len("arrived"))

	if got := Extract(r); got != "Smith arrived." {
		t.Errorf("Expected 'Smith arrived.', got %q", got)
	}
}

func TestExtractNoTerminators(t *testing.T) {
	doc := parseFixture(t, "<html><body><p id='p'>just some words</p></body></html>")
	text := doc.GetElementById("p").FirstChild()

	r := dom.NewRange(doc)
	r.SetStart(text, 5)
	r.SetEnd(text, 9)

	if got := Extract(r); got != "just some words" {
		t.Errorf("Expected whole trimmed text, got %q", got)
	}
}

func TestExtractElementBoundaryFallsBackToLiteral(t *testing.T) {
	doc := parseFixture(t, "<html><body><p id='p'>alpha <em>beta</em> gamma.</p></body></html>")
	p := doc.GetElementById("p")

	// Boundary containers are elements, not text nodes: extraction cannot
	// anchor its buffers and degrades to the literal selected text.
	r := dom.NewRange(doc)
	r.SetStart(p, 0)
	r.SetEnd(p, 3)

	got := Extract(r)
	if got != "alpha beta gamma." {
		t.Errorf("Expected literal range text, got %q", got)
	}
}

func TestFragmentsDocumentOrder(t *testing.T) {
	doc := parseFixture(t, "<html><body><p id='p'>one <em>two <i>three</i></em> four</p></body></html>")
	frags := Fragments(doc.GetElementById("p"))

	var texts []string
	for _, f := range frags {
		texts = append(texts, f.Text)
	}
	joined := strings.Join(texts, "|")
	if joined != "one |two |three| four" {
		t.Errorf("Fragments out of order: %q", joined)
	}
}
