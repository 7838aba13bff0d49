// Package flow defines the node/edge graph model consumed by the renderer.
// A Graph is produced by one of the parsers (Salesforce Flow XML or HCL flow
// definitions) and describes typed nodes at designer-chosen canvas positions
// plus labeled directed connectors between them.
package flow

// Kind categorizes nodes for shape and color selection
type Kind int

const (
	KindUnknown Kind = iota
	KindStart        // flow entry card
	KindDecision     // diamond with outcome rules
	KindLookup       // Get Records card
	KindCreate       // Create Records card
	KindUpdate       // Update Records card
	KindAssign       // Assignment card
	KindEnd          // terminator circle, usually synthesized
)

// String returns the display name shown in card header bands.
func (k Kind) String() string {
	switch k {
	case KindStart:
		return "Start"
	case KindDecision:
		return "Decision"
	case KindLookup:
		return "Get Records"
	case KindCreate:
		return "Create Records"
	case KindUpdate:
		return "Update Records"
	case KindAssign:
		return "Assignment"
	case KindEnd:
		return "End"
	default:
		return "Element"
	}
}

// IsCard reports whether the kind renders as a rounded card with a header
// band. Decision and End use fixed-shape rendering instead.
func (k Kind) IsCard() bool {
	return k != KindDecision && k != KindEnd
}

// Node represents a rendering unit in the flow graph.
//
// X and Y are the logical center position in design-space units as authored
// in the source document. W and H are logical dimensions; H is a minimum and
// may be grown by the renderer to fit wrapped text. The renderer also rebases
// X and Y in place during layout, so a Graph is single-use per render.
type Node struct {
	Key     string
	Kind    Kind
	Label   string   // primary display text, may contain newlines
	Details []string // supplementary lines; callout content for decisions
	X, Y    float64
	W, H    float64
}

// Edge represents a directed connection between two nodes. Label is the
// optional annotation drawn as a floating pill on the connector; empty means
// no pill. Src or Dst keys that do not resolve in the graph are skipped at
// render time rather than treated as errors.
type Edge struct {
	Src   string
	Dst   string
	Label string
}

// Graph is the complete flow diagram: nodes keyed by their unique name, the
// node insertion order (kept for deterministic rendering), the edge list in
// document order, and the flow title shown in the title bar.
type Graph struct {
	Nodes map[string]*Node
	Order []string
	Edges []*Edge
	Title string
}

// NewGraph creates an empty graph with the given title.
func NewGraph(title string) *Graph {
	return &Graph{
		Nodes: make(map[string]*Node),
		Edges: make([]*Edge, 0),
		Title: title,
	}
}

// AddNode inserts a node, replacing any existing node with the same key.
// Insertion order is recorded once per key.
func (g *Graph) AddNode(n *Node) {
	if _, exists := g.Nodes[n.Key]; !exists {
		g.Order = append(g.Order, n.Key)
	}
	g.Nodes[n.Key] = n
}

// AddEdge appends a directed edge. Parallel edges between the same pair are
// permitted and rendered independently.
func (g *Graph) AddEdge(src, dst, label string) {
	g.Edges = append(g.Edges, &Edge{Src: src, Dst: dst, Label: label})
}

// NodesInOrder returns the nodes in insertion order. Keys recorded in Order
// but since removed from the map are skipped.
func (g *Graph) NodesInOrder() []*Node {
	nodes := make([]*Node, 0, len(g.Order))
	for _, key := range g.Order {
		if n, ok := g.Nodes[key]; ok {
			nodes = append(nodes, n)
		}
	}
	return nodes
}
