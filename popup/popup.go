// Package popup renders the definition popup as a single element appended
// at the document root, positioned in viewport coordinates relative to the
// selection rectangle.
package popup

import (
	"fmt"

	"github.com/AYColumbia/glosser/dict"
	"github.com/AYColumbia/glosser/dom"
)

// Offset is the gap in viewport units between the selection rectangle and
// the popup edge.
const Offset = 8

// Size is a width/height pair in viewport units.
type Size struct {
	Width  float64
	Height float64
}

// Place computes the popup position for the given anchor rectangle. The
// popup sits Offset units below the anchor, clamped to the viewport
// horizontally, and flips above the anchor when it would overflow the
// bottom edge.
func Place(anchor dom.Rect, popup Size, viewport Size) (x, y float64) {
	x = anchor.Left()
	if x+popup.Width > viewport.Width {
		x = viewport.Width - popup.Width
	}
	if x < 0 {
		x = 0
	}

	y = anchor.Bottom() + Offset
	if y+popup.Height > viewport.Height {
		y = anchor.Top() - Offset - popup.Height
	}
	if y < 0 {
		y = 0
	}
	return x, y
}

// View is the open popup: one element at the document root showing either
// placeholder "loading" content or a resolved definition entry.
type View struct {
	doc    *dom.Document
	root   *dom.Node
	word   string
	closed bool
}

// Open creates the popup element for the given word, positions it against
// the anchor rectangle and appends it at the document root. The popup
// starts with placeholder content until SetEntry upgrades it.
func Open(doc *dom.Document, word string, anchor dom.Rect, size, viewport Size) *View {
	v := &View{doc: doc, word: word}

	root := doc.CreateElement("div")
	root.SetAttribute("class", "glosser-popup")
	x, y := Place(anchor, size, viewport)
	root.SetAttribute("style", fmt.Sprintf("position:absolute;left:%.0fpx;top:%.0fpx", x, y))
	v.root = root

	header := doc.CreateElement("div")
	header.SetAttribute("class", "glosser-popup-word")
	header.AppendChild(doc.CreateTextNode(word))
	root.AppendChild(header)

	body := doc.CreateElement("div")
	body.SetAttribute("class", "glosser-popup-body")
	body.AppendChild(doc.CreateTextNode("Loading…"))
	root.AppendChild(body)

	parent := doc.Body()
	if parent == nil {
		parent = doc.AsNode()
	}
	parent.AppendChild(root)
	return v
}

// Word returns the word the popup was opened for.
func (v *View) Word() string {
	if v == nil {
		return ""
	}
	return v.word
}

// Element returns the popup element, or nil after Close.
func (v *View) Element() *dom.Node {
	if v == nil || v.closed {
		return nil
	}
	return v.root
}

// SetEntry replaces the placeholder content with the resolved definition.
// An empty entry renders an empty definitions area; the popup is never
// left stuck on the placeholder.
func (v *View) SetEntry(entry dict.Entry) {
	if v == nil || v.closed {
		return
	}
	body := v.findBody()
	if body == nil {
		return
	}
	for body.FirstChild() != nil {
		body.RemoveChild(body.FirstChild())
	}

	if entry.Phonetic != "" {
		phonetic := v.doc.CreateElement("span")
		phonetic.SetAttribute("class", "glosser-popup-phonetic")
		phonetic.AppendChild(v.doc.CreateTextNode(entry.Phonetic))
		body.AppendChild(phonetic)
	}

	defs := v.doc.CreateElement("div")
	defs.SetAttribute("class", "glosser-popup-definitions")
	for _, meaning := range entry.Meanings {
		pos := v.doc.CreateElement("div")
		pos.SetAttribute("class", "glosser-popup-pos")
		pos.AppendChild(v.doc.CreateTextNode(meaning.PartOfSpeech))
		defs.AppendChild(pos)

		for _, def := range meaning.Definitions {
			d := v.doc.CreateElement("div")
			d.SetAttribute("class", "glosser-popup-definition")
			d.AppendChild(v.doc.CreateTextNode(def.Definition))
			if def.Example != "" {
				ex := v.doc.CreateElement("div")
				ex.SetAttribute("class", "glosser-popup-example")
				ex.AppendChild(v.doc.CreateTextNode(def.Example))
				d.AppendChild(ex)
			}
			defs.AppendChild(d)
		}
	}
	body.AppendChild(defs)
}

// Close removes the popup element from the document. Idempotent.
func (v *View) Close() {
	if v == nil || v.closed {
		return
	}
	v.closed = true
	if parent := v.root.ParentNode(); parent != nil {
		parent.RemoveChild(v.root)
	}
}

// findBody returns the popup's body container.
func (v *View) findBody() *dom.Node {
	for c := v.root.FirstChild(); c != nil; c = c.NextSibling() {
		if c.GetAttribute("class") == "glosser-popup-body" {
			return c
		}
	}
	return nil
}
