package dag

import (
	"cmp"
	"errors"
	"maps"
	"slices"
)

var (
	// ErrInvalidNodeID is returned by [DAG.AddNode] when the node ID is empty.
	ErrInvalidNodeID = errors.New("node ID must not be empty")

	// ErrDuplicateNodeID is returned by [DAG.AddNode] when a node with the
	// same ID already exists in the graph.
	ErrDuplicateNodeID = errors.New("duplicate node ID")

	// ErrUnknownSourceNode is returned by [DAG.AddEdge] when the From node
	// does not exist.
	ErrUnknownSourceNode = errors.New("unknown source node")

	// ErrUnknownTargetNode is returned by [DAG.AddEdge] when the To node
	// does not exist.
	ErrUnknownTargetNode = errors.New("unknown target node")

	// ErrInvalidEdgeEndpoint is returned by [DAG.Validate] when an edge
	// references a node that doesn't exist.
	ErrInvalidEdgeEndpoint = errors.New("invalid edge endpoint")

	// ErrNonConsecutiveRows is returned by [DAG.Validate] when an edge
	// connects nodes that are not on adjacent rings (From.Row+1 != To.Row).
	ErrNonConsecutiveRows = errors.New("edges must connect consecutive rows")

	// ErrGraphHasCycle is returned by [DAG.Validate] when a cycle is detected.
	ErrGraphHasCycle = errors.New("graph contains a cycle")

	// ErrMultipleParents is returned by [DAG.ValidateTree] when a node has
	// more than one incoming edge.
	ErrMultipleParents = errors.New("node has more than one parent")

	// ErrUnreachableNode is returned by [DAG.ValidateTree] when a node
	// cannot be reached from the root.
	ErrUnreachableNode = errors.New("node unreachable from root")
)

// NodeKind distinguishes header nodes from the synthetic nodes the layout
// inserts while building its spanning tree.
type NodeKind int

const (
	// NodeKindRegular is a header from the include graph.
	NodeKindRegular NodeKind = iota
	// NodeKindBridge is a synthetic node on a chain that attaches a header
	// without a tree parent to a shallower ring. MasterID names the header
	// the chain hangs from.
	NodeKindBridge
	// NodeKindRoot is the synthetic centre of the radial layout (row 0).
	NodeKindRoot
)

// Node is a vertex of the layout tree. Row is the ring index: 0 for the
// root, 1 for headers included directly by it, and so on.
type Node struct {
	ID   string
	Row  int
	Kind NodeKind

	// MasterID links a bridge back to the header its chain starts from.
	MasterID string
}

// IsBridge reports whether the node is a synthetic chain link.
func (n Node) IsBridge() bool { return n.Kind == NodeKindBridge }

// Edge is a directed parent → child link.
type Edge struct {
	From string
	To   string
}

// DAG is a directed acyclic graph whose nodes are grouped into rows
// (rings). The layout uses it to hold the primary-parent spanning tree,
// where every edge joins consecutive rows.
//
// The zero value is not usable; create instances with [New].
// DAG is not safe for concurrent use without external synchronization.
type DAG struct {
	nodes    map[string]*Node
	edges    []Edge
	outgoing map[string][]string
	incoming map[string][]string
}

// New creates an empty DAG.
func New() *DAG {
	return &DAG{
		nodes:    make(map[string]*Node),
		outgoing: make(map[string][]string),
		incoming: make(map[string][]string),
	}
}

// AddNode adds a node.
// Returns ErrInvalidNodeID for an empty ID and ErrDuplicateNodeID when the
// ID is already present.
func (d *DAG) AddNode(n Node) error {
	if n.ID == "" {
		return ErrInvalidNodeID
	}
	if _, exists := d.nodes[n.ID]; exists {
		return ErrDuplicateNodeID
	}
	node := &n
	d.nodes[node.ID] = node
	return nil
}

// AddEdge adds a directed edge between two existing nodes.
// Row consistency is not checked here; use [DAG.Validate].
func (d *DAG) AddEdge(e Edge) error {
	if _, ok := d.nodes[e.From]; !ok {
		return ErrUnknownSourceNode
	}
	if _, ok := d.nodes[e.To]; !ok {
		return ErrUnknownTargetNode
	}
	d.edges = append(d.edges, e)
	d.outgoing[e.From] = append(d.outgoing[e.From], e.To)
	d.incoming[e.To] = append(d.incoming[e.To], e.From)
	return nil
}

// Nodes returns all nodes ordered by row, then ID.
func (d *DAG) Nodes() []*Node {
	nodes := slices.Collect(maps.Values(d.nodes))
	slices.SortFunc(nodes, func(a, b *Node) int {
		if c := cmp.Compare(a.Row, b.Row); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
	return nodes
}

// Edges returns a copy of all edges in insertion order.
func (d *DAG) Edges() []Edge { return slices.Clone(d.edges) }

// NodeCount returns the number of nodes in the graph.
func (d *DAG) NodeCount() int { return len(d.nodes) }

// EdgeCount returns the number of edges in the graph.
func (d *DAG) EdgeCount() int { return len(d.edges) }

// Children returns the IDs the node has edges to. The slice is read-only.
func (d *DAG) Children(id string) []string { return d.outgoing[id] }

// Parents returns the IDs with edges to the node. The slice is read-only.
func (d *DAG) Parents(id string) []string { return d.incoming[id] }

// Node returns the node with the given ID.
func (d *DAG) Node(id string) (*Node, bool) {
	n, ok := d.nodes[id]
	return n, ok
}

// RegularParent walks up from id through bridge nodes and returns the first
// non-bridge ancestor. It returns false when id has no parent.
func (d *DAG) RegularParent(id string) (string, bool) {
	cur := id
	for {
		parents := d.incoming[cur]
		if len(parents) == 0 {
			return "", false
		}
		p := parents[0]
		if n := d.nodes[p]; n == nil || !n.IsBridge() {
			return p, true
		}
		cur = p
	}
}

// Validate checks that every edge joins existing nodes on consecutive rows
// and that the graph is acyclic.
func (d *DAG) Validate() error {
	for _, e := range d.edges {
		src, okS := d.nodes[e.From]
		dst, okD := d.nodes[e.To]
		if !okS || !okD {
			return ErrInvalidEdgeEndpoint
		}
		if dst.Row != src.Row+1 {
			return ErrNonConsecutiveRows
		}
	}
	return d.detectCycles()
}

// ValidateTree checks the spanning-tree invariants on top of [DAG.Validate]:
// every node other than root has exactly one parent and is reachable from
// root, so the graph has NodeCount()-1 edges.
func (d *DAG) ValidateTree(root string) error {
	if err := d.Validate(); err != nil {
		return err
	}
	if _, ok := d.nodes[root]; !ok {
		return ErrUnknownSourceNode
	}
	for id := range d.nodes {
		if id == root {
			if len(d.incoming[id]) != 0 {
				return ErrGraphHasCycle
			}
			continue
		}
		if len(d.incoming[id]) > 1 {
			return ErrMultipleParents
		}
	}

	seen := map[string]bool{root: true}
	queue := []string{root}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, c := range d.outgoing[cur] {
			if !seen[c] {
				seen[c] = true
				queue = append(queue, c)
			}
		}
	}
	if len(seen) != len(d.nodes) {
		return ErrUnreachableNode
	}
	return nil
}

func (d *DAG) detectCycles() error {
	const (
		white = iota
		gray
		black
	)

	color := make(map[string]int, len(d.nodes))
	var hasCycle bool

	var dfs func(id string)
	dfs = func(id string) {
		color[id] = gray
		for _, child := range d.outgoing[id] {
			switch color[child] {
			case white:
				dfs(child)
			case gray:
				hasCycle = true
				return
			}
		}
		color[id] = black
	}

	for _, n := range d.Nodes() {
		if color[n.ID] == white {
			dfs(n.ID)
			if hasCycle {
				return ErrGraphHasCycle
			}
		}
	}
	return nil
}
