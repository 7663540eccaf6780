package devtools

// ComponentNode is one node of the live component tree the dev editor
// inspects. Children are ordered as they appear in the render output.
type ComponentNode struct {
	Handle   Handle
	Parent   *Handle
	Children []Handle
}

// ComponentTree is an in-memory index of the live component tree, keyed
// by handle so parent/child/sibling lookups are O(1).
type ComponentTree struct {
	nodes map[Handle]*ComponentNode
	root  *Handle
	order []Handle
}

// NewComponentTree returns an empty tree.
func NewComponentTree() *ComponentTree {
	return &ComponentTree{nodes: make(map[Handle]*ComponentNode)}
}

// Insert adds a node under parent (nil for the root). Re-inserting an
// existing handle replaces its parent/children pointers but keeps its
// original tree-order position.
func (t *ComponentTree) Insert(handle Handle, parent *Handle) {
	if _, exists := t.nodes[handle]; !exists {
		t.order = append(t.order, handle)
	}
	t.nodes[handle] = &ComponentNode{Handle: handle, Parent: parent}
	if parent == nil {
		root := handle
		t.root = &root
		return
	}
	if p, ok := t.nodes[*parent]; ok {
		p.Children = append(p.Children, handle)
	}
}

// Get returns the node for handle, if present.
func (t *ComponentTree) Get(handle Handle) (*ComponentNode, bool) {
	n, ok := t.nodes[handle]
	return n, ok
}

// Root returns the tree's root handle, if any.
func (t *ComponentTree) Root() (Handle, bool) {
	if t.root == nil {
		return "", false
	}
	return *t.root, true
}

// Len returns the number of nodes in the tree.
func (t *ComponentTree) Len() int { return len(t.nodes) }

// NextSibling returns the sibling immediately after handle under the
// same parent, if any.
func (t *ComponentTree) NextSibling(handle Handle) (Handle, bool) {
	node, ok := t.nodes[handle]
	if !ok || node.Parent == nil {
		return "", false
	}
	parent, ok := t.nodes[*node.Parent]
	if !ok {
		return "", false
	}
	for i, child := range parent.Children {
		if child == handle && i+1 < len(parent.Children) {
			return parent.Children[i+1], true
		}
	}
	return "", false
}

// PrevSibling returns the sibling immediately before handle under the
// same parent, if any.
func (t *ComponentTree) PrevSibling(handle Handle) (Handle, bool) {
	node, ok := t.nodes[handle]
	if !ok || node.Parent == nil {
		return "", false
	}
	parent, ok := t.nodes[*node.Parent]
	if !ok {
		return "", false
	}
	for i, child := range parent.Children {
		if child == handle && i > 0 {
			return parent.Children[i-1], true
		}
	}
	return "", false
}

// Navigator drives selection over a ComponentTree in depth-first order:
// next visits the first child if any, else the next sibling, else the
// nearest ancestor's next sibling. Previous is the exact reverse.
type Navigator struct {
	tree     *ComponentTree
	selected *Handle
}

// NewNavigator returns a navigator with no initial selection.
func NewNavigator(tree *ComponentTree) *Navigator {
	return &Navigator{tree: tree}
}

// Selected returns the current selection, if any.
func (n *Navigator) Selected() (Handle, bool) {
	if n.selected == nil {
		return "", false
	}
	return *n.selected, true
}

// Select sets the current selection directly.
func (n *Navigator) Select(handle Handle) {
	h := handle
	n.selected = &h
}

// Next advances the selection one step in depth-first order.
func (n *Navigator) Next() {
	handle, ok := n.Selected()
	if !ok {
		if root, ok := n.tree.Root(); ok {
			n.Select(root)
		}
		return
	}
	if node, ok := n.tree.Get(handle); ok && len(node.Children) > 0 {
		n.Select(node.Children[0])
		return
	}
	cur := handle
	for {
		if next, ok := n.tree.NextSibling(cur); ok {
			n.Select(next)
			return
		}
		node, ok := n.tree.Get(cur)
		if !ok || node.Parent == nil {
			return
		}
		cur = *node.Parent
	}
}

// Prev moves the selection one step backward in depth-first order: to
// the previous sibling's deepest last descendant, or else the parent.
func (n *Navigator) Prev() {
	handle, ok := n.Selected()
	if !ok {
		return
	}
	if prev, ok := n.tree.PrevSibling(handle); ok {
		target := prev
		for {
			node, ok := n.tree.Get(target)
			if !ok || len(node.Children) == 0 {
				break
			}
			target = node.Children[len(node.Children)-1]
		}
		n.Select(target)
		return
	}
	if node, ok := n.tree.Get(handle); ok && node.Parent != nil {
		n.Select(*node.Parent)
	}
}

// Into moves the selection to the first child, if any.
func (n *Navigator) Into() {
	handle, ok := n.Selected()
	if !ok {
		return
	}
	if node, ok := n.tree.Get(handle); ok && len(node.Children) > 0 {
		n.Select(node.Children[0])
	}
}

// Out moves the selection to the parent, if any.
func (n *Navigator) Out() {
	handle, ok := n.Selected()
	if !ok {
		return
	}
	if node, ok := n.tree.Get(handle); ok && node.Parent != nil {
		n.Select(*node.Parent)
	}
}
