// Package layout positions flow graph nodes on the canvas.
//
// Two strategies exist. In auto mode a layered [Engine] derives every
// position from the edge topology alone, ignoring whatever is stored on the
// nodes. In manual mode stored positions are authoritative and only nodes
// that were never placed fall back to a simple grid so nothing renders at
// the origin.
//
// The layered algorithm is deliberately behind the [Engine] interface so a
// different implementation (a full crossing-minimizing layout, an external
// library) can be swapped in without touching the editor or the model.
package layout

import (
	"github.com/isotrack/isotrack/pkg/flow"
)

// Layout spacing defaults, in canvas units. These mirror the values the
// web canvas was tuned with and are configuration, not business logic.
const (
	DefaultRankSep = 160.0 // vertical separation between ranks
	DefaultNodeSep = 120.0 // horizontal separation between rank siblings
	DefaultMarginX = 40.0
	DefaultMarginY = 40.0
)

// Grid fallback geometry for manual mode: positions wrap after three
// columns with fixed spacing.
const (
	GridColumns  = 3
	GridSpacingX = 260.0
	GridSpacingY = 180.0
)

// Config holds the spacing parameters for automatic layout.
type Config struct {
	RankSep float64
	NodeSep float64
	MarginX float64
	MarginY float64
}

// DefaultConfig returns the standard spacing configuration.
func DefaultConfig() Config {
	return Config{
		RankSep: DefaultRankSep,
		NodeSep: DefaultNodeSep,
		MarginX: DefaultMarginX,
		MarginY: DefaultMarginY,
	}
}

// Engine computes a position for every node from the graph topology.
// Implementations must be deterministic: the same nodes, edges and config
// produce identical positions on every call.
type Engine interface {
	Compute(nodes []flow.Node, edges []flow.Edge, cfg Config) (map[string]flow.Position, error)
}

// Apply positions the graph's nodes in place according to its layout mode.
//
// In auto mode every node receives the engine's computed position,
// overriding anything stored. In manual mode stored positions are kept and
// nodes without one get a deterministic grid slot based on their index.
func Apply(g *flow.Graph, engine Engine, cfg Config) error {
	if g.IsAuto() {
		positions, err := engine.Compute(g.Nodes, g.Edges, cfg)
		if err != nil {
			return err
		}
		for i := range g.Nodes {
			if p, ok := positions[g.Nodes[i].ID]; ok {
				pos := p
				g.Nodes[i].Position = &pos
			}
		}
		return nil
	}

	for i := range g.Nodes {
		if g.Nodes[i].Position == nil {
			pos := GridPosition(i)
			g.Nodes[i].Position = &pos
		}
	}
	return nil
}

// GridPosition returns the manual-mode fallback slot for the i-th node:
// a three-column wrap with fixed row and column spacing.
func GridPosition(i int) flow.Position {
	return flow.Position{
		X: float64(i%GridColumns) * GridSpacingX,
		Y: float64(i/GridColumns) * GridSpacingY,
	}
}
