// Package dom provides a compact DOM tree with live ranges, sized for
// text-level work: parsing a page, walking its text nodes, and making
// reversible structural mutations around a user selection.
package dom

import "strings"

// Attr is a single element attribute.
type Attr struct {
	Key   string
	Value string
}

// Node represents a node in the DOM tree. Elements, text nodes, comments
// and the document itself all share this representation; the nodeType
// discriminates.
type Node struct {
	nodeType NodeType
	nodeName string
	data     string // character data for text and comment nodes
	attrs    []Attr // attributes for element nodes

	ownerDoc    *Document
	parentNode  *Node
	firstChild  *Node
	lastChild   *Node
	prevSibling *Node
	nextSibling *Node
}

// newNode creates a node of the given type and name.
func newNode(nodeType NodeType, nodeName string, ownerDoc *Document) *Node {
	return &Node{
		nodeType: nodeType,
		nodeName: nodeName,
		ownerDoc: ownerDoc,
	}
}

// NodeType returns the type of the node.
func (n *Node) NodeType() NodeType {
	return n.nodeType
}

// NodeName returns the name of the node.
// For elements this is the lowercase tag name; for text nodes "#text";
// for comments "#comment"; for documents "#document".
func (n *Node) NodeName() string {
	return n.nodeName
}

// Data returns the character data of a text or comment node, or the empty
// string for other node types.
func (n *Node) Data() string {
	return n.data
}

// SetData replaces the character data of a text or comment node.
func (n *Node) SetData(data string) {
	if n.nodeType == TextNode || n.nodeType == CommentNode {
		n.data = data
	}
}

// OwnerDocument returns the document the node belongs to.
func (n *Node) OwnerDocument() *Document {
	return n.ownerDoc
}

// ParentNode returns the parent of this node, or nil for a detached node
// or the document.
func (n *Node) ParentNode() *Node {
	return n.parentNode
}

// FirstChild returns the first child of this node.
func (n *Node) FirstChild() *Node {
	return n.firstChild
}

// LastChild returns the last child of this node.
func (n *Node) LastChild() *Node {
	return n.lastChild
}

// PreviousSibling returns the node immediately preceding this one.
func (n *Node) PreviousSibling() *Node {
	return n.prevSibling
}

// NextSibling returns the node immediately following this one.
func (n *Node) NextSibling() *Node {
	return n.nextSibling
}

// HasChildNodes returns true if the node has any children.
func (n *Node) HasChildNodes() bool {
	return n.firstChild != nil
}

// ChildCount returns the number of children.
func (n *Node) ChildCount() int {
	count := 0
	for c := n.firstChild; c != nil; c = c.nextSibling {
		count++
	}
	return count
}

// TextContent returns the concatenated text of the node and its descendants.
func (n *Node) TextContent() string {
	var sb strings.Builder
	n.collectTextContent(&sb)
	return sb.String()
}

func (n *Node) collectTextContent(sb *strings.Builder) {
	if n.nodeType == TextNode {
		sb.WriteString(n.data)
		return
	}
	for c := n.firstChild; c != nil; c = c.nextSibling {
		c.collectTextContent(sb)
	}
}

// AppendChild adds child to the end of this node's children, detaching it
// from any previous parent. Returns the appended child.
func (n *Node) AppendChild(child *Node) *Node {
	return n.InsertBefore(child, nil)
}

// InsertBefore inserts newChild before refChild. A nil refChild appends.
// Returns the inserted child.
func (n *Node) InsertBefore(newChild, refChild *Node) *Node {
	if newChild == nil {
		return nil
	}
	if newChild.parentNode != nil {
		newChild.parentNode.RemoveChild(newChild)
	}
	if refChild == nil {
		newChild.parentNode = n
		newChild.prevSibling = n.lastChild
		newChild.nextSibling = nil
		if n.lastChild != nil {
			n.lastChild.nextSibling = newChild
		} else {
			n.firstChild = newChild
		}
		n.lastChild = newChild
		return newChild
	}
	if refChild.parentNode != n {
		return nil
	}
	newChild.parentNode = n
	newChild.nextSibling = refChild
	newChild.prevSibling = refChild.prevSibling
	if refChild.prevSibling != nil {
		refChild.prevSibling.nextSibling = newChild
	} else {
		n.firstChild = newChild
	}
	refChild.prevSibling = newChild
	return newChild
}

// RemoveChild detaches child from this node and returns it.
// Removing a node that is not a child is a no-op.
func (n *Node) RemoveChild(child *Node) *Node {
	if child == nil || child.parentNode != n {
		return child
	}
	if child.prevSibling != nil {
		child.prevSibling.nextSibling = child.nextSibling
	} else {
		n.firstChild = child.nextSibling
	}
	if child.nextSibling != nil {
		child.nextSibling.prevSibling = child.prevSibling
	} else {
		n.lastChild = child.prevSibling
	}
	child.parentNode = nil
	child.prevSibling = nil
	child.nextSibling = nil
	return child
}

// Normalize merges adjacent text node children and removes empty text node
// children, recursively.
func (n *Node) Normalize() {
	child := n.firstChild
	for child != nil {
		next := child.nextSibling
		if child.nodeType == TextNode {
			if child.data == "" {
				n.RemoveChild(child)
			} else if next != nil && next.nodeType == TextNode {
				child.data += next.data
				n.RemoveChild(next)
				continue // re-check child against its new next sibling
			}
		} else {
			child.Normalize()
		}
		child = next
	}
}

// GetAttribute returns the value of the named attribute, or "" if absent.
func (n *Node) GetAttribute(key string) string {
	for _, a := range n.attrs {
		if a.Key == key {
			return a.Value
		}
	}
	return ""
}

// SetAttribute sets an attribute value, creating it if it doesn't exist.
func (n *Node) SetAttribute(key, value string) {
	for i, a := range n.attrs {
		if a.Key == key {
			n.attrs[i].Value = value
			return
		}
	}
	n.attrs = append(n.attrs, Attr{Key: key, Value: value})
}

// HasAttribute returns true if the element carries the named attribute.
func (n *Node) HasAttribute(key string) bool {
	for _, a := range n.attrs {
		if a.Key == key {
			return true
		}
	}
	return false
}

// Contains returns true if other is this node or a descendant of it.
func (n *Node) Contains(other *Node) bool {
	for cur := other; cur != nil; cur = cur.parentNode {
		if cur == n {
			return true
		}
	}
	return false
}

// indexOfChild returns the index of a child within its parent, or -1.
func indexOfChild(parent, child *Node) int {
	index := 0
	for c := parent.firstChild; c != nil; c = c.nextSibling {
		if c == child {
			return index
		}
		index++
	}
	return -1
}

// childAt returns the index-th child of the node, or nil.
func childAt(n *Node, index int) *Node {
	c := n.firstChild
	for i := 0; i < index && c != nil; i++ {
		c = c.nextSibling
	}
	return c
}

// isAncestor returns true if ancestor is a strict ancestor of node.
func isAncestor(ancestor, node *Node) bool {
	for cur := node.parentNode; cur != nil; cur = cur.parentNode {
		if cur == ancestor {
			return true
		}
	}
	return false
}

// nodeLength returns the length of a node for range purposes: character
// data length for text and comment nodes, child count otherwise.
func nodeLength(node *Node) int {
	switch node.nodeType {
	case TextNode, CommentNode:
		return len(node.data)
	default:
		return node.ChildCount()
	}
}
