package dom

import "strings"

// Range represents a contiguous fragment of a document bounded by two
// boundary points, each a (container node, offset) pair. It is a live
// range: boundary points reference nodes in the tree directly.
type Range struct {
	startContainer *Node
	startOffset    int
	endContainer   *Node
	endOffset      int
	ownerDocument  *Document
}

// NewRange creates a new Range with both boundary points at the start of
// the document.
func NewRange(doc *Document) *Range {
	return &Range{
		startContainer: doc.AsNode(),
		endContainer:   doc.AsNode(),
		ownerDocument:  doc,
	}
}

// StartContainer returns the node where the range starts.
func (r *Range) StartContainer() *Node {
	return r.startContainer
}

// StartOffset returns the offset within the start container.
func (r *Range) StartOffset() int {
	return r.startOffset
}

// EndContainer returns the node where the range ends.
func (r *Range) EndContainer() *Node {
	return r.endContainer
}

// EndOffset returns the offset within the end container.
func (r *Range) EndOffset() int {
	return r.endOffset
}

// Collapsed returns true if start and end are the same point.
func (r *Range) Collapsed() bool {
	return r.startContainer == r.endContainer && r.startOffset == r.endOffset
}

// CommonAncestorContainer returns the deepest node containing both
// boundary points, or nil if the points are in disjoint trees.
func (r *Range) CommonAncestorContainer() *Node {
	startAncestors := make(map[*Node]bool)
	for node := r.startContainer; node != nil; node = node.parentNode {
		startAncestors[node] = true
	}
	for node := r.endContainer; node != nil; node = node.parentNode {
		if startAncestors[node] {
			return node
		}
	}
	return nil
}

// SetStart sets the start boundary point. If the new start is after the
// current end, the range collapses to the start.
func (r *Range) SetStart(node *Node, offset int) error {
	if node == nil {
		return ErrNotFound("Node is null")
	}
	if offset < 0 || offset > nodeLength(node) {
		return ErrIndexSize("The offset is out of range.")
	}
	r.startContainer = node
	r.startOffset = offset
	if comparePoints(r.startContainer, r.startOffset, r.endContainer, r.endOffset) > 0 {
		r.endContainer = r.startContainer
		r.endOffset = r.startOffset
	}
	return nil
}

// SetEnd sets the end boundary point. If the new end is before the current
// start, the range collapses to the end.
func (r *Range) SetEnd(node *Node, offset int) error {
	if node == nil {
		return ErrNotFound("Node is null")
	}
	if offset < 0 || offset > nodeLength(node) {
		return ErrIndexSize("The offset is out of range.")
	}
	r.endContainer = node
	r.endOffset = offset
	if comparePoints(r.startContainer, r.startOffset, r.endContainer, r.endOffset) > 0 {
		r.startContainer = r.endContainer
		r.startOffset = r.endOffset
	}
	return nil
}

// SelectNode sets the range to contain the given node.
func (r *Range) SelectNode(node *Node) error {
	if node == nil {
		return ErrNotFound("Node is null")
	}
	parent := node.parentNode
	if parent == nil {
		return ErrInvalidNodeType("The node has no parent.")
	}
	index := indexOfChild(parent, node)
	r.startContainer = parent
	r.startOffset = index
	r.endContainer = parent
	r.endOffset = index + 1
	return nil
}

// ToString returns the text content of the range in document order.
func (r *Range) ToString() string {
	if r.Collapsed() {
		return ""
	}
	if r.startContainer == r.endContainer && r.startContainer.nodeType == TextNode {
		return r.startContainer.data[r.startOffset:r.endOffset]
	}

	ancestor := r.CommonAncestorContainer()
	if ancestor == nil {
		return ""
	}

	var sb strings.Builder
	r.visitTextNodes(ancestor, func(textNode *Node) {
		text := textNode.data
		startIdx, endIdx := 0, len(text)
		if textNode == r.startContainer {
			startIdx = r.startOffset
		}
		if textNode == r.endContainer {
			endIdx = r.endOffset
		}
		if startIdx < endIdx {
			sb.WriteString(text[startIdx:endIdx])
		}
	})
	return sb.String()
}

// visitTextNodes calls fn for each text node intersecting the range, in
// document order.
func (r *Range) visitTextNodes(root *Node, fn func(*Node)) {
	var walk func(node *Node) bool
	walk = func(node *Node) bool {
		if r.isNodeBeforeRange(node) {
			return true // skip, continue with siblings
		}
		if r.isNodeAfterRange(node) {
			return false
		}
		if node.nodeType == TextNode && r.nodeIntersectsRange(node) {
			fn(node)
		}
		for child := node.firstChild; child != nil; child = child.nextSibling {
			if !walk(child) {
				return false
			}
		}
		return true
	}
	walk(root)
}

// isNodeBeforeRange checks if the entire node is before the range.
func (r *Range) isNodeBeforeRange(node *Node) bool {
	parent := node.parentNode
	if parent == nil {
		return false
	}
	nodeEnd := indexOfChild(parent, node) + 1
	return comparePoints(parent, nodeEnd, r.startContainer, r.startOffset) <= 0
}

// isNodeAfterRange checks if the entire node is after the range.
func (r *Range) isNodeAfterRange(node *Node) bool {
	parent := node.parentNode
	if parent == nil {
		return false
	}
	nodeStart := indexOfChild(parent, node)
	return comparePoints(parent, nodeStart, r.endContainer, r.endOffset) >= 0
}

// nodeIntersectsRange checks if a node intersects the range.
func (r *Range) nodeIntersectsRange(node *Node) bool {
	parent := node.parentNode
	if parent == nil {
		return true
	}
	nodeStart := indexOfChild(parent, node)
	if comparePoints(parent, nodeStart, r.endContainer, r.endOffset) >= 0 {
		return false
	}
	if comparePoints(parent, nodeStart+1, r.startContainer, r.startOffset) <= 0 {
		return false
	}
	return true
}

// SurroundContents wraps the range contents with newParent, inserting it
// at the range start. Per the DOM rule, a range that partially selects a
// non-text node cannot be surrounded and yields an InvalidStateError.
func (r *Range) SurroundContents(newParent *Node) error {
	if newParent == nil {
		return ErrNotFound("New parent is null")
	}
	if r.startContainer != r.endContainer {
		ancestor := r.CommonAncestorContainer()
		if ancestor == nil {
			return ErrHierarchyRequest("Range boundary points are in disjoint trees")
		}
		r.normalizeEdgePoints(ancestor)

		// A non-text node is partially selected when it contains exactly
		// one boundary point. After normalization that is the case
		// whenever a boundary container still sits deeper than one level
		// below the common ancestor, or an interior cut remains in a
		// non-text container.
		if r.startContainer != ancestor && r.startContainer.parentNode != ancestor {
			return ErrInvalidState("Range partially selects a non-Text node")
		}
		if r.endContainer != ancestor && r.endContainer.parentNode != ancestor {
			return ErrInvalidState("Range partially selects a non-Text node")
		}
		if r.startContainer.nodeType != TextNode && r.startContainer != ancestor && r.startOffset > 0 {
			return ErrInvalidState("Range partially selects a non-Text node")
		}
		if r.endContainer.nodeType != TextNode && r.endContainer != ancestor && r.endOffset < nodeLength(r.endContainer) {
			return ErrInvalidState("Range partially selects a non-Text node")
		}
	}
	if newParent.nodeType == DocumentNode {
		return ErrInvalidNodeType("Invalid new parent type")
	}

	extracted, err := r.extractContents()
	if err != nil {
		return err
	}

	for newParent.firstChild != nil {
		newParent.RemoveChild(newParent.firstChild)
	}

	if err := r.insertNode(newParent); err != nil {
		return err
	}
	for _, node := range extracted {
		newParent.AppendChild(node)
	}

	return r.SelectNode(newParent)
}

// extractContents removes the range contents from the tree and returns
// them in document order, collapsing the range to its start. Boundary
// text nodes are split; fully contained children of the common ancestor
// move out wholesale.
func (r *Range) extractContents() ([]*Node, error) {
	if r.Collapsed() {
		return nil, nil
	}

	// Fast path: both points inside the same text node.
	if r.startContainer == r.endContainer && r.startContainer.nodeType == TextNode {
		text := r.startContainer.data
		selected := r.ownerDocument.CreateTextNode(text[r.startOffset:r.endOffset])
		r.startContainer.SetData(text[:r.startOffset] + text[r.endOffset:])
		r.endOffset = r.startOffset
		return []*Node{selected}, nil
	}

	ancestor := r.CommonAncestorContainer()
	if ancestor == nil {
		return nil, ErrHierarchyRequest("Range boundary points are in disjoint trees")
	}

	r.normalizeEdgePoints(ancestor)

	var firstPartial *Node
	if r.startContainer.nodeType == TextNode && r.startOffset > 0 {
		text := r.startContainer.data
		firstPartial = r.ownerDocument.CreateTextNode(text[r.startOffset:])
		r.startContainer.SetData(text[:r.startOffset])
	}

	var lastPartial *Node
	if r.endContainer.nodeType == TextNode && r.endOffset < len(r.endContainer.data) {
		text := r.endContainer.data
		lastPartial = r.ownerDocument.CreateTextNode(text[:r.endOffset])
		r.endContainer.SetData(text[r.endOffset:])
	}

	var result []*Node
	if firstPartial != nil {
		result = append(result, firstPartial)
	}
	for _, child := range r.containedChildren(ancestor) {
		child.parentNode.RemoveChild(child)
		result = append(result, child)
	}
	if lastPartial != nil {
		result = append(result, lastPartial)
	}

	r.endContainer = r.startContainer
	r.endOffset = r.startOffset
	return result, nil
}

// normalizeEdgePoints lifts boundary points that sit at the very edge of
// their container up toward the common ancestor. A start point at offset 0
// of a node is equivalent to the point just before that node in its
// parent; an end point at the container's full length is equivalent to the
// point just after it. Lifting makes edge-touched nodes count as fully
// contained and keeps the insertion point valid after their removal.
func (r *Range) normalizeEdgePoints(ancestor *Node) {
	for r.startContainer != ancestor && r.startOffset == 0 && r.startContainer.parentNode != nil {
		parent := r.startContainer.parentNode
		r.startOffset = indexOfChild(parent, r.startContainer)
		r.startContainer = parent
	}
	for r.endContainer != ancestor && r.endOffset == nodeLength(r.endContainer) && r.endContainer.parentNode != nil {
		parent := r.endContainer.parentNode
		r.endOffset = indexOfChild(parent, r.endContainer) + 1
		r.endContainer = parent
	}
}

// insertNode inserts a node at the start of the range.
func (r *Range) insertNode(node *Node) error {
	if node == nil {
		return ErrNotFound("Node is null")
	}
	if r.startContainer.nodeType == TextNode {
		parent := r.startContainer.parentNode
		if parent == nil {
			return ErrHierarchyRequest("Cannot insert into an orphan text node")
		}
		if r.startOffset > 0 && r.startOffset < len(r.startContainer.data) {
			text := r.startContainer.data
			r.startContainer.SetData(text[:r.startOffset])
			rest := r.ownerDocument.CreateTextNode(text[r.startOffset:])
			parent.InsertBefore(rest, r.startContainer.nextSibling)
		}
		parent.InsertBefore(node, r.startContainer.nextSibling)
		return nil
	}
	r.startContainer.InsertBefore(node, childAt(r.startContainer, r.startOffset))
	return nil
}

// containedChildren returns the common ancestor's children fully contained
// in the range.
func (r *Range) containedChildren(ancestor *Node) []*Node {
	var result []*Node
	for child := ancestor.firstChild; child != nil; child = child.nextSibling {
		if r.containsNode(child) {
			result = append(result, child)
		}
	}
	return result
}

// containsNode returns true if the node is fully contained in the range.
func (r *Range) containsNode(node *Node) bool {
	parent := node.parentNode
	if parent == nil {
		return false
	}
	index := indexOfChild(parent, node)
	if comparePoints(parent, index, r.startContainer, r.startOffset) < 0 {
		return false
	}
	if comparePoints(parent, index+1, r.endContainer, r.endOffset) > 0 {
		return false
	}
	return true
}

// comparePoints compares two boundary points in document order.
// Returns -1 if (nodeA, offsetA) is before (nodeB, offsetB), 0 if equal,
// 1 if after.
func comparePoints(nodeA *Node, offsetA int, nodeB *Node, offsetB int) int {
	if nodeA == nodeB {
		switch {
		case offsetA < offsetB:
			return -1
		case offsetA > offsetB:
			return 1
		default:
			return 0
		}
	}

	if isAncestor(nodeA, nodeB) {
		child := nodeB
		for child.parentNode != nodeA {
			child = child.parentNode
		}
		if indexOfChild(nodeA, child) < offsetA {
			return 1
		}
		return -1
	}

	if isAncestor(nodeB, nodeA) {
		child := nodeA
		for child.parentNode != nodeB {
			child = child.parentNode
		}
		if indexOfChild(nodeB, child) < offsetB {
			return -1
		}
		return 1
	}

	return compareSiblingOrder(nodeA, nodeB)
}

// compareSiblingOrder compares two nodes that share a common ancestor but
// where neither contains the other.
func compareSiblingOrder(nodeA, nodeB *Node) int {
	var pathA []*Node
	for n := nodeA; n != nil; n = n.parentNode {
		pathA = append([]*Node{n}, pathA...)
	}
	var pathB []*Node
	for n := nodeB; n != nil; n = n.parentNode {
		pathB = append([]*Node{n}, pathB...)
	}

	var branchA, branchB *Node
	for i := 0; i < len(pathA) && i < len(pathB); i++ {
		if pathA[i] != pathB[i] {
			if i > 0 {
				branchA = pathA[i]
				branchB = pathB[i]
			}
			break
		}
	}
	if branchA == nil || branchB == nil {
		return 0
	}

	for child := branchA.parentNode.firstChild; child != nil; child = child.nextSibling {
		if child == branchA {
			return -1
		}
		if child == branchB {
			return 1
		}
	}
	return 0
}
