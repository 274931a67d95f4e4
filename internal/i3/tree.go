package i3

// ScratchpadName is the reserved workspace i3 parks hidden windows in.
const ScratchpadName = "__i3_scratch"

// Node is one container of the i3 window tree. The tree is decoded fresh on
// every GetTree call and treated as a read-only snapshot afterwards.
type Node struct {
	ID               int64             `json:"id"`
	Name             string            `json:"name"`
	Type             string            `json:"type"`
	Window           int64             `json:"window"`
	WindowProperties *WindowProperties `json:"window_properties,omitempty"`
	Focused          bool              `json:"focused"`
	Nodes            []Node            `json:"nodes"`
	FloatingNodes    []Node            `json:"floating_nodes"`
}

// WindowProperties carries the X11 properties i3 attaches to leaf windows.
type WindowProperties struct {
	Class    string `json:"class"`
	Instance string `json:"instance"`
	Title    string `json:"title"`
}

// Class returns the window class, empty for container nodes.
func (n *Node) Class() string {
	if n.WindowProperties == nil {
		return ""
	}
	return n.WindowProperties.Class
}

// Workspaces returns all workspace nodes in tree order, excluding the
// internal scratchpad workspace.
func (n *Node) Workspaces() []*Node {
	var out []*Node
	n.walk(func(c *Node) {
		if c.Type == "workspace" && c.Name != ScratchpadName {
			out = append(out, c)
		}
	})
	return out
}

// Scratchpad returns the hidden scratchpad workspace, or nil when the tree
// has none.
func (n *Node) Scratchpad() *Node {
	var found *Node
	n.walk(func(c *Node) {
		if found == nil && c.Type == "workspace" && c.Name == ScratchpadName {
			found = c
		}
	})
	return found
}

// Leaves returns the leaf windows under this node in depth-first order,
// tiled children before floating ones at each level.
func (n *Node) Leaves() []*Node {
	var out []*Node
	for i := range n.Nodes {
		out = appendLeaves(out, &n.Nodes[i])
	}
	for i := range n.FloatingNodes {
		out = appendLeaves(out, &n.FloatingNodes[i])
	}
	return out
}

func appendLeaves(out []*Node, n *Node) []*Node {
	if n.isLeaf() {
		return append(out, n)
	}
	return append(out, n.Leaves()...)
}

func (n *Node) isLeaf() bool {
	if len(n.Nodes) > 0 || len(n.FloatingNodes) > 0 {
		return false
	}
	return n.Type == "con" || n.Type == "floating_con"
}

func (n *Node) walk(fn func(*Node)) {
	fn(n)
	for i := range n.Nodes {
		n.Nodes[i].walk(fn)
	}
	for i := range n.FloatingNodes {
		n.FloatingNodes[i].walk(fn)
	}
}
