package editor

import (
	"testing"

	"github.com/isotrack/isotrack/pkg/flow"
)

func dragGraph() *flow.Graph {
	return &flow.Graph{
		Nodes: []flow.Node{
			{ID: "n1", Position: &flow.Position{X: 100, Y: 100}},
		},
	}
}

func TestDragFollowsPointerMinusGrabOffset(t *testing.T) {
	g := dragGraph()
	e := New(g)

	e.StartDrag("n1", 10, 5)
	e.MoveDrag(300, 200)

	want := flow.Position{X: 290, Y: 195}
	if got := *g.Node("n1").Position; got != want {
		t.Errorf("position = %+v, want %+v", got, want)
	}
}

func TestDragClampsAtMinimum(t *testing.T) {
	tests := []struct {
		name   string
		px, py float64
		want   flow.Position
	}{
		{"BothNegative", -50, -80, flow.Position{X: DragMin, Y: DragMin}},
		{"XNegative", 2, 200, flow.Position{X: DragMin, Y: 190}},
		{"YNegative", 200, 3, flow.Position{X: 190, Y: DragMin}},
		{"ExactlyZero", 10, 10, flow.Position{X: DragMin, Y: DragMin}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := dragGraph()
			e := New(g)

			e.StartDrag("n1", 10, 10)
			e.MoveDrag(tt.px, tt.py)

			if got := *g.Node("n1").Position; got != tt.want {
				t.Errorf("position = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestEndDragReturnsFinalPosition(t *testing.T) {
	g := dragGraph()
	e := New(g)

	e.StartDrag("n1", 0, 0)
	e.MoveDrag(400, 300)

	final := e.EndDrag()
	if final == nil {
		t.Fatal("EndDrag returned nil for active drag")
	}
	if (*final != flow.Position{X: 400, Y: 300}) {
		t.Errorf("final = %+v, want (400,300)", final)
	}

	// Drag is finished: further moves are no-ops.
	e.MoveDrag(500, 500)
	if got := *g.Node("n1").Position; (got != flow.Position{X: 400, Y: 300}) {
		t.Errorf("position moved after EndDrag: %+v", got)
	}
	if e.EndDrag() != nil {
		t.Error("second EndDrag should return nil")
	}
}

func TestOnlyOneDragAtATime(t *testing.T) {
	g := &flow.Graph{
		Nodes: []flow.Node{
			{ID: "n1", Position: &flow.Position{X: 0, Y: 0}},
			{ID: "n2", Position: &flow.Position{X: 50, Y: 50}},
		},
	}
	e := New(g)

	e.StartDrag("n1", 0, 0)
	e.StartDrag("n2", 0, 0) // replaces the first drag

	if e.Dragging() != "n2" {
		t.Errorf("dragging = %q, want n2", e.Dragging())
	}

	e.MoveDrag(200, 200)
	if got := *g.Node("n1").Position; (got != flow.Position{X: 0, Y: 0}) {
		t.Errorf("n1 moved while n2 dragged: %+v", got)
	}
	if got := *g.Node("n2").Position; (got != flow.Position{X: 200, Y: 200}) {
		t.Errorf("n2 = %+v, want (200,200)", got)
	}
}

func TestDragUnknownNodeIsNoop(t *testing.T) {
	e := New(dragGraph())

	e.StartDrag("missing", 0, 0)
	if e.Dragging() != "" {
		t.Errorf("dragging = %q, want none", e.Dragging())
	}
	e.MoveDrag(100, 100) // must not panic
	if e.EndDrag() != nil {
		t.Error("EndDrag should return nil without an active drag")
	}
}
