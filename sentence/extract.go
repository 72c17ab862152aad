package sentence

import (
	"strings"

	"github.com/AYColumbia/glosser/dom"
)

// inlineTags are the elements whose boundaries do not interrupt a
// sentence. Extraction scopes its flattened text to the nearest ancestor
// that is not one of these, so a selection inside <b> or <em> still sees
// the surrounding paragraph.
var inlineTags = map[string]bool{
	"a": true, "abbr": true, "b": true, "bdi": true, "bdo": true,
	"cite": true, "code": true, "data": true, "dfn": true, "em": true,
	"i": true, "kbd": true, "mark": true, "q": true, "ruby": true,
	"s": true, "samp": true, "small": true, "span": true, "strong": true,
	"sub": true, "sup": true, "time": true, "u": true, "var": true,
}

// scopeFor returns the node whose flattened text the boundary scan runs
// over: the nearest non-inline ancestor of the range's common ancestor.
// Returns nil when the range is anchored outside any element tree.
func scopeFor(r *dom.Range) *dom.Node {
	scope := r.CommonAncestorContainer()
	if scope == nil {
		return nil
	}
	if scope.NodeType() == dom.TextNode {
		scope = scope.ParentNode()
	}
	for scope != nil && scope.NodeType() == dom.ElementNode && inlineTags[scope.NodeName()] {
		scope = scope.ParentNode()
	}
	return scope
}

// Extract computes the minimal sentence surrounding the given selection
// range. The result is trimmed of surrounding whitespace and always
// contains the verbatim selected text as a substring.
//
// The flattened text of the selection's enclosing block is rebuilt into
// before/selected/after buffers, so text split across inline elements
// reconstructs into one sentence. The backward boundary scan runs on the
// before buffer from its end, the forward scan on the after buffer from
// its start. A range with no resolvable scope, or one whose boundary
// points are not text nodes, degrades to the trimmed literal selection.
func Extract(r *dom.Range) string {
	literal := strings.TrimSpace(r.ToString())

	startNode := r.StartContainer()
	endNode := r.EndContainer()

	scope := scopeFor(r)
	if scope == nil {
		return literal
	}

	var before, selected, after strings.Builder
	const (
		phaseBefore = iota
		phaseSelected
		phaseAfter
	)
	phase := phaseBefore
	sawStart, sawEnd := false, false

	for _, frag := range Fragments(scope) {
		switch {
		case frag.Node == startNode && frag.Node == endNode:
			sawStart, sawEnd = true, true
			before.WriteString(frag.Text[:r.StartOffset()])
			selected.WriteString(frag.Text[r.StartOffset():r.EndOffset()])
			after.WriteString(frag.Text[r.EndOffset():])
			phase = phaseAfter
		case frag.Node == startNode:
			sawStart = true
			before.WriteString(frag.Text[:r.StartOffset()])
			selected.WriteString(frag.Text[r.StartOffset():])
			phase = phaseSelected
		case frag.Node == endNode:
			sawEnd = true
			selected.WriteString(frag.Text[:r.EndOffset()])
			after.WriteString(frag.Text[r.EndOffset():])
			phase = phaseAfter
		default:
			switch phase {
			case phaseBefore:
				before.WriteString(frag.Text)
			case phaseSelected:
				selected.WriteString(frag.Text)
			case phaseAfter:
				after.WriteString(frag.Text)
			}
		}
	}

	// Boundary containers that are not text nodes never show up in the
	// fragment list; without both anchors the buffers are unreliable.
	if !sawStart || !sawEnd {
		return literal
	}

	beforeText := before.String()
	afterText := after.String()
	start, _ := Window(beforeText, len(beforeText), len(beforeText))
	_, end := Window(afterText, 0, 0)

	return strings.TrimSpace(beforeText[start:] + selected.String() + afterText[:end])
}
