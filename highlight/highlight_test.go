package highlight

import (
	"testing"

	"github.com/AYColumbia/glosser/dom"
)

// snapshot captures the structure of a subtree as a comparable string.
func snapshot(n *dom.Node) string {
	if n.NodeType() == dom.TextNode {
		return "text(" + n.Data() + ")"
	}
	s := n.NodeName() + "["
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		s += snapshot(c)
	}
	return s + "]"
}

func TestApplyAndRemoveRestoresStructure(t *testing.T) {
	doc, err := dom.ParseHTML("<html><body><p id='p'>The quick <b>brown</b> fox jumps.</p></body></html>")
	if err != nil {
		t.Fatal("ParseHTML error:", err)
	}
	p := doc.GetElementById("p")
	original := snapshot(p)

	text1 := p.FirstChild()
	text2 := p.LastChild()

	r := dom.NewRange(doc)
	r.SetStart(text1, 4)
	r.SetEnd(text2, 4)

	mark, err := Apply(doc, r)
	if err != nil {
		t.Fatal("Apply error:", err)
	}
	if mark.Element() == nil || mark.Element().ParentNode() != p {
		t.Fatal("Expected wrapper inside <p>")
	}
	if mark.Element().GetAttribute("class") != ClassName {
		t.Errorf("Expected class %q, got %q", ClassName, mark.Element().GetAttribute("class"))
	}
	if p.TextContent() != "The quick brown fox jumps." {
		t.Errorf("Highlighting changed visible text: %q", p.TextContent())
	}

	mark.Remove()

	if got := snapshot(p); got != original {
		t.Errorf("Structure not restored.\n  want %s\n  got  %s", original, got)
	}
	if mark.Element() != nil {
		t.Error("Element should be nil after removal")
	}
}

func TestRemoveIsIdempotent(t *testing.T) {
	doc, _ := dom.ParseHTML("<html><body><p id='p'>Hello World</p></body></html>")
	p := doc.GetElementById("p")
	text := p.FirstChild()

	r := dom.NewRange(doc)
	r.SetStart(text, 0)
	r.SetEnd(text, 5)

	mark, err := Apply(doc, r)
	if err != nil {
		t.Fatal("Apply error:", err)
	}

	mark.Remove()
	before := snapshot(p)
	mark.Remove() // second removal must be a no-op
	if got := snapshot(p); got != before {
		t.Errorf("Second Remove mutated the tree: %q vs %q", before, got)
	}

	var nilMark *Mark
	nilMark.Remove() // nil receiver is also a no-op
}

func TestDetachKeepsSplitTextNodes(t *testing.T) {
	doc, _ := dom.ParseHTML("<html><body><p id='p'>one two three</p></body></html>")
	p := doc.GetElementById("p")
	text := p.FirstChild()

	r := dom.NewRange(doc)
	r.SetStart(text, 4)
	r.SetEnd(text, 7)

	mark, err := Apply(doc, r)
	if err != nil {
		t.Fatal("Apply error:", err)
	}

	mark.Detach()

	if p.TextContent() != "one two three" {
		t.Errorf("Detach changed visible text: %q", p.TextContent())
	}
	if p.ChildCount() != 3 {
		t.Errorf("Detach should leave the split text nodes unmerged, got %d children", p.ChildCount())
	}
	// A range anchored in one of the split nodes stays usable.
	last := p.LastChild()
	r2 := dom.NewRange(doc)
	r2.SetStart(last, 1)
	r2.SetEnd(last, 6)
	if got := r2.ToString(); got != "three" {
		t.Errorf("Expected %q, got %q", "three", got)
	}
}

func TestApplyFailureLeavesTreeUntouched(t *testing.T) {
	doc, _ := dom.ParseHTML("<html><body><div id='d'><p>ab</p>cd</div></body></html>")
	div := doc.GetElementById("d")
	original := snapshot(div)

	pText := div.FirstChild().FirstChild()
	after := div.FirstChild().NextSibling()

	r := dom.NewRange(doc)
	r.SetStart(pText, 1)
	r.SetEnd(after, 1)

	mark, err := Apply(doc, r)
	if err == nil {
		t.Fatal("Expected wrap failure for partially selected element")
	}
	if mark != nil {
		t.Error("Failed Apply should return a nil mark")
	}
	if got := snapshot(div); got != original {
		t.Errorf("Failed Apply mutated the tree.\n  want %s\n  got  %s", original, got)
	}
}
