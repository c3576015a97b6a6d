package flow

// =============================================================================
// Constants - Single Source of Truth
// =============================================================================

// Node types for process flows and organizational diagrams.
const (
	TypeStep        = "step"
	TypeDecision    = "decision"
	TypeEvent       = "event"
	TypeProcess     = "process"
	TypeIntegration = "integration"

	// Organigrama node types.
	TypeRole = "role"
	TypeArea = "area"
)

// NodeTypes lists every valid node type.
var NodeTypes = []string{
	TypeStep, TypeDecision, TypeEvent, TypeProcess, TypeIntegration,
	TypeRole, TypeArea,
}

// Layout modes. In auto mode the layout engine overrides stored positions;
// in manual mode stored positions are authoritative.
const (
	LayoutAuto   = "auto"
	LayoutManual = "manual"
)

// Edge style variants. Style affects rendering only, never semantics.
const (
	EdgeStyleDefault  = "default"
	EdgeStyleDecision = "decision"
)

// Task statuses for sub-tasks attached to a node.
const (
	TaskPending    = "pendiente"
	TaskInProgress = "en curso"
	TaskDone       = "completada"
)

// TaskStatuses lists every valid task status.
var TaskStatuses = []string{TaskPending, TaskInProgress, TaskDone}

// Default node box dimensions in canvas units.
const (
	DefaultNodeWidth  = 240.0
	DefaultNodeHeight = 80.0
)

// =============================================================================
// Graph - Diagram/Flow Data Model
// =============================================================================

// Graph is the canonical node/edge collection for one diagram or flow.
// It is serialized verbatim as the `data` field of a diagram record.
type Graph struct {
	Nodes []Node `json:"nodes" bson:"nodes"`
	Edges []Edge `json:"edges" bson:"edges"`

	// LayoutMode controls whether the layout engine overrides stored
	// positions ("auto") or stored positions win ("manual"). Empty means
	// manual for backwards compatibility with blobs saved before the flag.
	LayoutMode string `json:"layout_mode,omitempty" bson:"layout_mode,omitempty"`
}

// Position is a 2D top-left anchor on the canvas.
type Position struct {
	X float64 `json:"x" bson:"x"`
	Y float64 `json:"y" bson:"y"`
}

// Node is a positioned, typed vertex in a diagram or flow graph.
type Node struct {
	ID     string `json:"id" bson:"id"`
	Label  string `json:"label" bson:"label"`
	Type   string `json:"type" bson:"type"`
	System string `json:"system,omitempty" bson:"system,omitempty"`
	Code   string `json:"code,omitempty" bson:"code,omitempty"`

	// Width and Height default to DefaultNodeWidth/Height when zero.
	Width  float64 `json:"width,omitempty" bson:"width,omitempty"`
	Height float64 `json:"height,omitempty" bson:"height,omitempty"`

	// Position is nil when the node has never been placed; the layout
	// engine (auto mode) or the grid fallback (manual mode) derives one.
	Position *Position `json:"position,omitempty" bson:"position,omitempty"`

	Meta *NodeMeta `json:"metadata,omitempty" bson:"metadata,omitempty"`
}

// NodeMeta is the optional metadata bag attached to a node. All fields are
// optional; the fixed schema keeps round-trip serialization predictable.
type NodeMeta struct {
	Notes       string   `json:"notes,omitempty" bson:"notes,omitempty"`
	DocumentIDs []string `json:"document_ids,omitempty" bson:"document_ids,omitempty"`
	ProcessIDs  []string `json:"process_ids,omitempty" bson:"process_ids,omitempty"`
	Roles       []string `json:"roles,omitempty" bson:"roles,omitempty"`
	Assignee    string   `json:"assignee,omitempty" bson:"assignee,omitempty"`
	Visibility  string   `json:"visibility,omitempty" bson:"visibility,omitempty"`
	Tasks       []Task   `json:"tasks,omitempty" bson:"tasks,omitempty"`
}

// Task is a sub-task tracked on a node.
type Task struct {
	Label  string `json:"label" bson:"label"`
	Status string `json:"status" bson:"status"`
}

// Edge is a directed connection between two node IDs.
type Edge struct {
	ID     string `json:"id" bson:"id"`
	Source string `json:"source" bson:"source"`
	Target string `json:"target" bson:"target"`
	Label  string `json:"label,omitempty" bson:"label,omitempty"`

	// Style is a rendering variant (EdgeStyleDefault, EdgeStyleDecision).
	Style string `json:"style,omitempty" bson:"style,omitempty"`
}

// =============================================================================
// Read Access
// =============================================================================

// BoxWidth returns the node's width, falling back to DefaultNodeWidth.
func (n *Node) BoxWidth() float64 {
	if n.Width > 0 {
		return n.Width
	}
	return DefaultNodeWidth
}

// BoxHeight returns the node's height, falling back to DefaultNodeHeight.
func (n *Node) BoxHeight() float64 {
	if n.Height > 0 {
		return n.Height
	}
	return DefaultNodeHeight
}

// IsAuto reports whether the layout engine should position nodes.
func (g *Graph) IsAuto() bool { return g.LayoutMode == LayoutAuto }

// Node returns the node with the given ID, or nil if not found.
// Absence is a normal outcome, not an error.
func (g *Graph) Node(id string) *Node {
	for i := range g.Nodes {
		if g.Nodes[i].ID == id {
			return &g.Nodes[i]
		}
	}
	return nil
}

// Edge returns the edge with the given ID, or nil if not found.
func (g *Graph) Edge(id string) *Edge {
	for i := range g.Edges {
		if g.Edges[i].ID == id {
			return &g.Edges[i]
		}
	}
	return nil
}

// NodeIndex returns a lookup map from node ID to node pointer.
// The pointers refer to the graph's own nodes, so mutations are visible.
func (g *Graph) NodeIndex() map[string]*Node {
	idx := make(map[string]*Node, len(g.Nodes))
	for i := range g.Nodes {
		idx[g.Nodes[i].ID] = &g.Nodes[i]
	}
	return idx
}

// RenderableEdges returns the edges whose source and target both resolve to
// current node IDs. Dangling edges are stale references, not errors: they
// are dropped silently and reappear once their endpoints exist.
func (g *Graph) RenderableEdges() []Edge {
	idx := g.NodeIndex()
	out := make([]Edge, 0, len(g.Edges))
	for _, e := range g.Edges {
		if _, ok := idx[e.Source]; !ok {
			continue
		}
		if _, ok := idx[e.Target]; !ok {
			continue
		}
		out = append(out, e)
	}
	return out
}

// ValidType reports whether t is one of the known node types.
func ValidType(t string) bool {
	for _, known := range NodeTypes {
		if t == known {
			return true
		}
	}
	return false
}

// ValidTaskStatus reports whether s is one of the known task statuses.
func ValidTaskStatus(s string) bool {
	for _, known := range TaskStatuses {
		if s == known {
			return true
		}
	}
	return false
}
