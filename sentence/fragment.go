// Package sentence implements sentence-boundary and word-boundary
// extraction around a text selection. The boundary algorithms are pure
// functions over plain strings and offsets; a thin adapter flattens
// fragmented DOM text into those strings.
//
// Sentence boundaries are the Latin-script terminators '.', '!' and '?',
// treated uniformly with no abbreviation awareness: "Mr. Smith" is two
// sentences. That is a documented limitation of the algorithm, not a
// defect to special-case.
package sentence

import "github.com/AYColumbia/glosser/dom"

// Fragment is one contiguous run of characters from a single text node.
// Fragments concatenate in document order to form the flattened text of a
// region.
type Fragment struct {
	Node *dom.Node
	Text string
}

// Fragments flattens the text-bearing descendants of root into document
// order. The traversal is decoupled from the boundary algorithms so those
// stay testable against plain strings.
func Fragments(root *dom.Node) []Fragment {
	var frags []Fragment
	var walk func(n *dom.Node)
	walk = func(n *dom.Node) {
		if n.NodeType() == dom.TextNode {
			frags = append(frags, Fragment{Node: n, Text: n.Data()})
			return
		}
		for c := n.FirstChild(); c != nil; c = c.NextSibling() {
			walk(c)
		}
	}
	walk(root)
	return frags
}
