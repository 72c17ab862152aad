package dom

// NodeType identifies the kind of a Node.
type NodeType int

// Node type constants, numbered per the DOM specification.
const (
	ElementNode  NodeType = 1
	TextNode     NodeType = 3
	CommentNode  NodeType = 8
	DocumentNode NodeType = 9
)

// String returns the DOM constant name for the node type.
func (t NodeType) String() string {
	switch t {
	case ElementNode:
		return "ELEMENT_NODE"
	case TextNode:
		return "TEXT_NODE"
	case CommentNode:
		return "COMMENT_NODE"
	case DocumentNode:
		return "DOCUMENT_NODE"
	default:
		return "UNKNOWN_NODE"
	}
}
