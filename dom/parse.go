package dom

import (
	"io"
	"strings"

	"golang.org/x/net/html"
)

// ParseHTML parses an HTML string into a Document using
// golang.org/x/net/html as the underlying parser.
func ParseHTML(content string) (*Document, error) {
	return ParseHTMLReader(strings.NewReader(content))
}

// ParseHTMLReader parses HTML from an io.Reader into a Document.
func ParseHTMLReader(r io.Reader) (*Document, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, err
	}

	doc := NewDocument()
	for c := root.FirstChild; c != nil; c = c.NextSibling {
		if converted := convertNode(c, doc); converted != nil {
			doc.AsNode().AppendChild(converted)
		}
	}
	doc.title = doc.Title()
	return doc, nil
}

// convertNode converts a golang.org/x/net/html node (and its subtree) to
// our Node type. Node kinds outside the document model (doctype, parse
// errors) convert to nil and are dropped.
func convertNode(n *html.Node, doc *Document) *Node {
	var node *Node
	switch n.Type {
	case html.ElementNode:
		node = doc.CreateElement(n.Data)
		for _, a := range n.Attr {
			node.SetAttribute(a.Key, a.Val)
		}
	case html.TextNode:
		node = doc.CreateTextNode(n.Data)
	case html.CommentNode:
		node = newNode(CommentNode, "#comment", doc)
		node.data = n.Data
	default:
		return nil
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if child := convertNode(c, doc); child != nil {
			node.AppendChild(child)
		}
	}
	return node
}
