package layout

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"

	"github.com/isotrack/isotrack/pkg/flow"
)

// Memoized wraps an Engine and recomputes only when the structural snapshot
// (node set with box sizes, edge set, config) changes. Hover, selection and
// other non-structural churn therefore never trigger a relayout.
//
// Memoized is not safe for concurrent use; the graph it serves is owned by
// a single view at a time.
type Memoized struct {
	inner Engine

	key       string
	positions map[string]flow.Position
}

// NewMemoized wraps engine with single-snapshot memoization.
func NewMemoized(engine Engine) *Memoized {
	return &Memoized{inner: engine}
}

// Compute returns the cached positions when the snapshot is unchanged,
// delegating to the wrapped engine otherwise. The returned map is a copy
// and safe to mutate.
func (m *Memoized) Compute(nodes []flow.Node, edges []flow.Edge, cfg Config) (map[string]flow.Position, error) {
	key := snapshotKey(nodes, edges, cfg)
	if key != m.key || m.positions == nil {
		positions, err := m.inner.Compute(nodes, edges, cfg)
		if err != nil {
			return nil, err
		}
		m.key = key
		m.positions = positions
	}

	out := make(map[string]flow.Position, len(m.positions))
	for id, p := range m.positions {
		out[id] = p
	}
	return out, nil
}

// snapshotKey hashes the layout-relevant parts of the input. Labels,
// metadata and stored positions are excluded: they do not affect layout.
func snapshotKey(nodes []flow.Node, edges []flow.Edge, cfg Config) string {
	type nodeKey struct {
		ID string  `json:"id"`
		W  float64 `json:"w"`
		H  float64 `json:"h"`
	}
	type edgeKey struct {
		Source string `json:"source"`
		Target string `json:"target"`
	}

	snap := struct {
		Nodes []nodeKey `json:"nodes"`
		Edges []edgeKey `json:"edges"`
		Cfg   Config    `json:"cfg"`
	}{Cfg: cfg}

	for i := range nodes {
		snap.Nodes = append(snap.Nodes, nodeKey{ID: nodes[i].ID, W: nodes[i].BoxWidth(), H: nodes[i].BoxHeight()})
	}
	for _, e := range edges {
		snap.Edges = append(snap.Edges, edgeKey{Source: e.Source, Target: e.Target})
	}

	data, _ := json.Marshal(snap)
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
