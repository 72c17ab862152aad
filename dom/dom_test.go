package dom

import "testing"

func TestParseHTMLBuildsTree(t *testing.T) {
	doc, err := ParseHTML("<html><head><title>My Page</title></head><body><p id='intro'>Hello <b>bold</b> world</p></body></html>")
	if err != nil {
		t.Fatal("ParseHTML error:", err)
	}

	if doc.Title() != "My Page" {
		t.Errorf("Expected title 'My Page', got %q", doc.Title())
	}

	body := doc.Body()
	if body == nil {
		t.Fatal("Expected body element")
	}

	p := doc.GetElementById("intro")
	if p == nil {
		t.Fatal("Expected element with id 'intro'")
	}
	if p.NodeName() != "p" {
		t.Errorf("Expected node name 'p', got %q", p.NodeName())
	}
	if p.TextContent() != "Hello bold world" {
		t.Errorf("Expected text content 'Hello bold world', got %q", p.TextContent())
	}
	if p.ChildCount() != 3 {
		t.Errorf("Expected 3 children, got %d", p.ChildCount())
	}

	b := p.FirstChild().NextSibling()
	if b.NodeType() != ElementNode || b.NodeName() != "b" {
		t.Errorf("Expected <b> element, got %s %q", b.NodeType(), b.NodeName())
	}
}

func TestInsertRemoveChild(t *testing.T) {
	doc := NewDocument()
	parent := doc.CreateElement("div")
	a := doc.CreateTextNode("a")
	b := doc.CreateTextNode("b")
	c := doc.CreateTextNode("c")

	parent.AppendChild(a)
	parent.AppendChild(c)
	parent.InsertBefore(b, c)

	if parent.TextContent() != "abc" {
		t.Fatalf("Expected 'abc', got %q", parent.TextContent())
	}

	parent.RemoveChild(b)
	if parent.TextContent() != "ac" {
		t.Fatalf("Expected 'ac' after removal, got %q", parent.TextContent())
	}
	if b.ParentNode() != nil || b.NextSibling() != nil || b.PreviousSibling() != nil {
		t.Error("Removed node should be fully detached")
	}
	if a.NextSibling() != c || c.PreviousSibling() != a {
		t.Error("Sibling links not repaired after removal")
	}
}

func TestNormalizeMergesTextNodes(t *testing.T) {
	doc := NewDocument()
	parent := doc.CreateElement("p")
	parent.AppendChild(doc.CreateTextNode("Hello "))
	parent.AppendChild(doc.CreateTextNode("World"))
	parent.AppendChild(doc.CreateTextNode(""))

	parent.Normalize()

	if parent.ChildCount() != 1 {
		t.Fatalf("Expected 1 child after Normalize, got %d", parent.ChildCount())
	}
	if parent.FirstChild().Data() != "Hello World" {
		t.Errorf("Expected merged text 'Hello World', got %q", parent.FirstChild().Data())
	}
}

func TestContains(t *testing.T) {
	doc, _ := ParseHTML("<html><body><div><p>text</p></div></body></html>")
	body := doc.Body()
	div := body.FirstChild()
	text := div.FirstChild().FirstChild()

	if !div.Contains(text) {
		t.Error("div should contain its descendant text node")
	}
	if !div.Contains(div) {
		t.Error("Contains is inclusive of the node itself")
	}
	if text.Contains(div) {
		t.Error("text node should not contain its ancestor")
	}
}

func TestRectEdges(t *testing.T) {
	r := NewRect(10, 20, 100, 50)
	if r.Left() != 10 || r.Top() != 20 || r.Right() != 110 || r.Bottom() != 70 {
		t.Errorf("Unexpected edges: left=%v top=%v right=%v bottom=%v", r.Left(), r.Top(), r.Right(), r.Bottom())
	}

	neg := NewRect(10, 20, -100, -50)
	if neg.Left() != -90 || neg.Top() != -30 || neg.Right() != 10 || neg.Bottom() != 20 {
		t.Errorf("Negative dimensions not handled: left=%v top=%v right=%v bottom=%v", neg.Left(), neg.Top(), neg.Right(), neg.Bottom())
	}
}
