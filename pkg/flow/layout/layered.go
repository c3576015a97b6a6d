package layout

import (
	"sort"

	"github.com/isotrack/isotrack/pkg/flow"
)

// Layered is the built-in hierarchical layout engine. Nodes are assigned to
// ranks (depth layers, top to bottom) consistent with edge direction, then
// spread horizontally within each rank with every rank centered against the
// widest one.
//
// Rank assignment uses a longest-path topological traversal (Kahn's
// algorithm): sources sit at rank 0 and every other node at one plus the
// deepest of its parents. Edges with unresolved endpoints are ignored, and
// nodes trapped in a cycle keep the deepest rank reached before the queue
// drained, so malformed graphs still lay out instead of failing.
type Layered struct{}

// NewLayered returns the built-in layered engine.
func NewLayered() *Layered { return &Layered{} }

// Compute derives a top-left anchor position for every node.
// The result is deterministic: node order within a rank follows the input
// slice order, so two successive calls over the same snapshot agree.
func (l *Layered) Compute(nodes []flow.Node, edges []flow.Edge, cfg Config) (map[string]flow.Position, error) {
	positions := make(map[string]flow.Position, len(nodes))
	if len(nodes) == 0 {
		return positions, nil
	}

	ranks := assignRanks(nodes, edges)

	// Group nodes by rank, preserving input order within each rank.
	byRank := make(map[int][]*flow.Node)
	maxRank := 0
	for i := range nodes {
		r := ranks[nodes[i].ID]
		byRank[r] = append(byRank[r], &nodes[i])
		if r > maxRank {
			maxRank = r
		}
	}

	// Widest rank determines the frame; narrower ranks are centered in it.
	rankWidth := func(row []*flow.Node) float64 {
		var w float64
		for i, n := range row {
			if i > 0 {
				w += cfg.NodeSep
			}
			w += n.BoxWidth()
		}
		return w
	}
	var frameWidth float64
	for _, row := range byRank {
		if w := rankWidth(row); w > frameWidth {
			frameWidth = w
		}
	}

	y := cfg.MarginY
	for r := 0; r <= maxRank; r++ {
		row := byRank[r]
		if len(row) == 0 {
			continue
		}

		var rowHeight float64
		for _, n := range row {
			if h := n.BoxHeight(); h > rowHeight {
				rowHeight = h
			}
		}

		x := cfg.MarginX + (frameWidth-rankWidth(row))/2
		for _, n := range row {
			w, h := n.BoxWidth(), n.BoxHeight()
			cx := x + w/2
			cy := y + rowHeight/2
			// The algorithm assigns center coordinates; stored positions
			// are top-left anchors.
			positions[n.ID] = flow.Position{X: cx - w/2, Y: cy - h/2}
			x += w + cfg.NodeSep
		}

		y += rowHeight + cfg.RankSep
	}

	return positions, nil
}

// assignRanks computes the depth layer of each node via Kahn's algorithm
// with longest-path placement. Unresolvable edges do not contribute.
func assignRanks(nodes []flow.Node, edges []flow.Edge) map[string]int {
	present := make(map[string]bool, len(nodes))
	for i := range nodes {
		present[nodes[i].ID] = true
	}

	children := make(map[string][]string)
	inDegree := make(map[string]int, len(nodes))
	for _, e := range edges {
		if !present[e.Source] || !present[e.Target] || e.Source == e.Target {
			continue
		}
		children[e.Source] = append(children[e.Source], e.Target)
		inDegree[e.Target]++
	}

	ranks := make(map[string]int, len(nodes))
	queue := make([]string, 0, len(nodes))
	for i := range nodes {
		if inDegree[nodes[i].ID] == 0 {
			queue = append(queue, nodes[i].ID)
		}
	}

	for len(queue) > 0 {
		curr := queue[0]
		queue = queue[1:]

		// Deterministic child order: sort IDs so map iteration order
		// never leaks into rank assignment.
		kids := children[curr]
		sort.Strings(kids)
		for _, child := range kids {
			if r := ranks[curr] + 1; r > ranks[child] {
				ranks[child] = r
			}
			inDegree[child]--
			if inDegree[child] == 0 {
				queue = append(queue, child)
			}
		}
	}

	return ranks
}
