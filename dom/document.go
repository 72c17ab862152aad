package dom

// Document is the root of a DOM tree. It is a Node with document-level
// state (URL) and node factory methods.
type Document struct {
	node  Node
	url   string
	title string
}

// NewDocument creates an empty document.
func NewDocument() *Document {
	d := &Document{url: "about:blank"}
	d.node = Node{nodeType: DocumentNode, nodeName: "#document", ownerDoc: d}
	return d
}

// AsNode returns the document viewed as a Node.
func (d *Document) AsNode() *Node {
	return &d.node
}

// URL returns the document's URL.
func (d *Document) URL() string {
	return d.url
}

// SetURL sets the document's URL.
func (d *Document) SetURL(url string) {
	d.url = url
}

// Title returns the text of the document's <title> element, or the title
// recorded at parse time if the element has since been removed.
func (d *Document) Title() string {
	if t := d.findElement(d.AsNode(), "title"); t != nil {
		return t.TextContent()
	}
	return d.title
}

// DocumentElement returns the root element of the document (<html> for an
// HTML document), or nil.
func (d *Document) DocumentElement() *Node {
	for c := d.node.firstChild; c != nil; c = c.nextSibling {
		if c.nodeType == ElementNode {
			return c
		}
	}
	return nil
}

// Body returns the document's <body> element, or nil.
func (d *Document) Body() *Node {
	return d.findElement(d.AsNode(), "body")
}

// findElement returns the first element with the given tag name in a
// depth-first walk, or nil.
func (d *Document) findElement(n *Node, tagName string) *Node {
	if n.nodeType == ElementNode && n.nodeName == tagName {
		return n
	}
	for c := n.firstChild; c != nil; c = c.nextSibling {
		if found := d.findElement(c, tagName); found != nil {
			return found
		}
	}
	return nil
}

// GetElementById returns the element with the given id attribute, or nil.
func (d *Document) GetElementById(id string) *Node {
	return d.findElementById(d.AsNode(), id)
}

func (d *Document) findElementById(n *Node, id string) *Node {
	if n.nodeType == ElementNode && n.GetAttribute("id") == id {
		return n
	}
	for c := n.firstChild; c != nil; c = c.nextSibling {
		if found := d.findElementById(c, id); found != nil {
			return found
		}
	}
	return nil
}

// CreateElement creates a detached element node with the given tag name.
func (d *Document) CreateElement(tagName string) *Node {
	return newNode(ElementNode, tagName, d)
}

// CreateTextNode creates a detached text node with the given data.
func (d *Document) CreateTextNode(data string) *Node {
	n := newNode(TextNode, "#text", d)
	n.data = data
	return n
}
