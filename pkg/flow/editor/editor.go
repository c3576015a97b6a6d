// Package editor applies user editing intents to a flow graph.
//
// Every operation is total: unknown IDs make mutations silent no-ops and
// nothing here returns an error, so canvas responsiveness is never blocked
// by validation. Referential integrity is enforced lazily at render time by
// [flow.Graph.RenderableEdges], which lets imports create edges before
// their endpoints exist.
//
// The editor mutates the graph it owns and nothing else: interaction state
// and persistence are the caller's concern.
package editor

import (
	"strings"

	"github.com/google/uuid"

	"github.com/isotrack/isotrack/pkg/flow"
)

// Default placement offsets for nodes created without a position. Each new
// node lands slightly below and to the right of the previous one so quick
// additions never stack exactly on top of each other.
const (
	baseX, stepX = 80.0, 24.0
	baseY, stepY = 120.0, 18.0
)

// Editor mutates a single graph in response to editing intents.
// It is not safe for concurrent use; a graph is owned by one open view.
type Editor struct {
	graph *flow.Graph
	drag  *dragState
}

// New returns an editor over g. The graph is mutated in place.
func New(g *flow.Graph) *Editor {
	return &Editor{graph: g}
}

// Graph returns the graph under edit.
func (e *Editor) Graph() *flow.Graph { return e.graph }

// AddNode appends a node with a freshly generated ID and returns it.
// When pos is nil the node gets a default position offset by the current
// node count. AddNode always succeeds.
func (e *Editor) AddNode(label, nodeType, system string, pos *flow.Position) flow.Node {
	if pos == nil {
		count := float64(len(e.graph.Nodes))
		pos = &flow.Position{X: baseX + count*stepX, Y: baseY + count*stepY}
	}
	n := flow.Node{
		ID:       NewID("node"),
		Label:    label,
		Type:     nodeType,
		System:   system,
		Position: pos,
	}
	e.graph.Nodes = append(e.graph.Nodes, n)
	return n
}

// AddEdge appends an edge with a freshly generated ID and returns it.
// Endpoint existence is deliberately not checked: edges may be created
// ahead of their nodes and stay invisible until both endpoints resolve.
func (e *Editor) AddEdge(sourceID, targetID, label string) flow.Edge {
	edge := flow.Edge{
		ID:     NewID("edge"),
		Source: sourceID,
		Target: targetID,
		Label:  label,
	}
	e.graph.Edges = append(e.graph.Edges, edge)
	return edge
}

// Connect creates an unlabeled edge from a drag gesture between two
// connection handles. Self-loops are allowed; like AddEdge it performs no
// endpoint validation.
func (e *Editor) Connect(sourceID, targetID string) flow.Edge {
	return e.AddEdge(sourceID, targetID, "")
}

// UpdateNodeField replaces one field of one node. Unknown node IDs and
// unknown field names are silent no-ops. Field names match the JSON keys:
// label, type, system, code, notes (notes writes through to the metadata
// bag, creating it on demand).
func (e *Editor) UpdateNodeField(nodeID, field, value string) {
	n := e.graph.Node(nodeID)
	if n == nil {
		return
	}
	switch field {
	case "label":
		n.Label = value
	case "type":
		n.Type = value
	case "system":
		n.System = value
	case "code":
		n.Code = value
	case "notes":
		if n.Meta == nil {
			n.Meta = &flow.NodeMeta{}
		}
		n.Meta.Notes = value
	}
}

// Reposition moves a node to (x, y). Unknown IDs are a no-op. It serves
// both drag-end persistence and layout engine output.
func (e *Editor) Reposition(nodeID string, x, y float64) {
	n := e.graph.Node(nodeID)
	if n == nil {
		return
	}
	n.Position = &flow.Position{X: x, Y: y}
}

// RemoveNode deletes a node and every edge incident to it.
// Unknown IDs are a no-op.
func (e *Editor) RemoveNode(nodeID string) {
	nodes := e.graph.Nodes[:0]
	found := false
	for _, n := range e.graph.Nodes {
		if n.ID == nodeID {
			found = true
			continue
		}
		nodes = append(nodes, n)
	}
	e.graph.Nodes = nodes
	if !found {
		return
	}

	edges := e.graph.Edges[:0]
	for _, edge := range e.graph.Edges {
		if edge.Source == nodeID || edge.Target == nodeID {
			continue
		}
		edges = append(edges, edge)
	}
	e.graph.Edges = edges
}

// RemoveEdge deletes an edge by ID. Unknown IDs are a no-op.
func (e *Editor) RemoveEdge(edgeID string) {
	edges := e.graph.Edges[:0]
	for _, edge := range e.graph.Edges {
		if edge.ID == edgeID {
			continue
		}
		edges = append(edges, edge)
	}
	e.graph.Edges = edges
}

// ReplaceNodes swaps the entire node set, as CSV import does. Edges are
// untouched; any that dangle afterwards are filtered at render time.
func (e *Editor) ReplaceNodes(nodes []flow.Node) {
	e.graph.Nodes = nodes
}

// ReplaceEdges swaps the entire edge set, as CSV import does.
func (e *Editor) ReplaceEdges(edges []flow.Edge) {
	e.graph.Edges = edges
}

// NewID generates a collision-free identifier: the prefix plus the first
// six characters of a random UUID, e.g. "node-3f2a1c".
func NewID(prefix string) string {
	short := strings.ReplaceAll(uuid.NewString(), "-", "")[:6]
	if prefix == "" {
		return short
	}
	return prefix + "-" + short
}
