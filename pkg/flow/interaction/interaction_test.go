package interaction

import (
	"testing"

	"github.com/isotrack/isotrack/pkg/flow"
)

func TestZeroValueEmpty(t *testing.T) {
	var s State
	if s.Hovered() != "" || s.Selected() != "" {
		t.Errorf("zero value not empty: hovered=%q selected=%q", s.Hovered(), s.Selected())
	}
}

func TestSlotsAreIndependent(t *testing.T) {
	s := New()

	s.SetHovered("n1")
	if s.Selected() != "" {
		t.Error("hover should not touch selection")
	}

	s.SetSelected("n2")
	if s.Hovered() != "n1" {
		t.Error("selection should not touch hover")
	}

	// Setting replaces, it does not queue.
	s.SetSelected("n3")
	if s.Selected() != "n3" {
		t.Errorf("selected = %q, want n3", s.Selected())
	}

	s.SetHovered("")
	if s.Hovered() != "" {
		t.Error("empty id should clear hover")
	}
}

func TestReset(t *testing.T) {
	s := New()
	s.SetHovered("n1")
	s.SetSelected("n2")

	s.Reset()
	if s.Hovered() != "" || s.Selected() != "" {
		t.Errorf("after Reset: hovered=%q selected=%q", s.Hovered(), s.Selected())
	}
}

func TestBindGraph(t *testing.T) {
	tests := []struct {
		name         string
		graph        flow.Graph
		wantSelected string
	}{
		{
			name:         "SelectsFirstNode",
			graph:        flow.Graph{Nodes: []flow.Node{{ID: "first"}, {ID: "second"}}},
			wantSelected: "first",
		},
		{
			name:         "EmptyGraphClearsSelection",
			graph:        flow.Graph{},
			wantSelected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New()
			s.SetHovered("stale")
			s.SetSelected("stale")

			s.BindGraph(&tt.graph)

			if s.Selected() != tt.wantSelected {
				t.Errorf("selected = %q, want %q", s.Selected(), tt.wantSelected)
			}
			if s.Hovered() != "" {
				t.Errorf("hovered = %q, want cleared", s.Hovered())
			}
		})
	}
}
