// Package highlight places a single reversible highlight mark around a
// selection range. The mark owns the DOM nodes it wraps for its lifetime;
// removal reinserts exactly the wrapped children at the wrapper's position
// and leaves no residual wrapper node behind.
package highlight

import "github.com/AYColumbia/glosser/dom"

// ClassName is the class attribute applied to highlight wrapper elements.
const ClassName = "glosser-highlight"

// Mark is an active highlight: one <mark> wrapper element inserted into
// the document around the highlighted range.
type Mark struct {
	wrapper *dom.Node
	removed bool
}

// Apply wraps the given range in a highlight wrapper. Ranges that cannot
// be structurally surrounded (the DOM partial-selection rule) return the
// underlying DOM error; the document is left unmodified in that case and
// the caller is expected to proceed without a highlight.
func Apply(doc *dom.Document, r *dom.Range) (*Mark, error) {
	wrapper := doc.CreateElement("mark")
	wrapper.SetAttribute("class", ClassName)
	if err := r.SurroundContents(wrapper); err != nil {
		return nil, err
	}
	return &Mark{wrapper: wrapper}, nil
}

// Element returns the wrapper element, or nil after removal.
func (m *Mark) Element() *dom.Node {
	if m == nil || m.removed {
		return nil
	}
	return m.wrapper
}

// Remove unwraps the highlight: every wrapped child moves back into the
// wrapper's parent at the wrapper's position, the wrapper is detached,
// and adjacent text nodes split by highlighting are merged again.
// Removing an already-removed mark is a no-op.
func (m *Mark) Remove() {
	parent := m.unwrap()
	if parent != nil {
		parent.Normalize()
	}
}

// Detach unwraps the highlight without merging the surrounding text
// nodes. Callers holding range boundary points near the wrapper use this
// so those points stay valid; the split text nodes read identically.
func (m *Mark) Detach() {
	m.unwrap()
}

func (m *Mark) unwrap() *dom.Node {
	if m == nil || m.removed {
		return nil
	}
	m.removed = true

	parent := m.wrapper.ParentNode()
	if parent == nil {
		return nil
	}
	for m.wrapper.FirstChild() != nil {
		parent.InsertBefore(m.wrapper.FirstChild(), m.wrapper)
	}
	parent.RemoveChild(m.wrapper)
	return parent
}
