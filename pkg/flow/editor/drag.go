package editor

import "github.com/isotrack/isotrack/pkg/flow"

// DragMin is the smallest coordinate a dragged node may reach on either
// axis. It keeps nodes from disappearing past the top/left canvas edge.
const DragMin = 12.0

// dragState tracks the single in-flight drag. Only one node can be dragged
// at a time: starting a new drag replaces any previous one, which mirrors
// the global pointer-listener discipline of the canvas.
type dragState struct {
	nodeID string
	grabX  float64
	grabY  float64
}

// StartDrag begins dragging the node under the pointer. grabX/grabY is the
// pointer offset inside the node box at grab time, so the node does not
// jump to the cursor on the first move. Starting a drag for an unknown
// node ID is a no-op.
func (e *Editor) StartDrag(nodeID string, grabX, grabY float64) {
	if e.graph.Node(nodeID) == nil {
		return
	}
	e.drag = &dragState{nodeID: nodeID, grabX: grabX, grabY: grabY}
}

// MoveDrag repositions the dragged node for a pointer at (px, py).
// The new anchor is pointer minus grab offset, clamped to DragMin on both
// axes. Without an active drag this is a no-op.
func (e *Editor) MoveDrag(px, py float64) {
	if e.drag == nil {
		return
	}
	x := max(px-e.drag.grabX, DragMin)
	y := max(py-e.drag.grabY, DragMin)
	e.Reposition(e.drag.nodeID, x, y)
}

// EndDrag finishes the drag and returns the dragged node's final position,
// or nil when no drag was active. The final position is already applied to
// the graph; callers use the return value to persist the move.
func (e *Editor) EndDrag() *flow.Position {
	if e.drag == nil {
		return nil
	}
	n := e.graph.Node(e.drag.nodeID)
	e.drag = nil
	if n == nil || n.Position == nil {
		return nil
	}
	pos := *n.Position
	return &pos
}

// Dragging returns the ID of the node currently being dragged, or "" when
// no drag is active.
func (e *Editor) Dragging() string {
	if e.drag == nil {
		return ""
	}
	return e.drag.nodeID
}
