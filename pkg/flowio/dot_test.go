package flowio

import (
	"strings"
	"testing"

	"github.com/isotrack/isotrack/pkg/flow"
)

func TestToDOT_Basic(t *testing.T) {
	g := &flow.Graph{
		Nodes: []flow.Node{
			{ID: "a", Label: "Inicio", Type: flow.TypeStep},
			{ID: "b", Label: "Fin", Type: flow.TypeEvent},
		},
		Edges: []flow.Edge{{ID: "e1", Source: "a", Target: "b"}},
	}

	dot := ToDOT(g, DOTOptions{})

	if !strings.Contains(dot, "digraph G") {
		t.Error("ToDOT() output missing digraph declaration")
	}
	if !strings.Contains(dot, `"a"`) || !strings.Contains(dot, `"b"`) {
		t.Error("ToDOT() output missing nodes")
	}
	if !strings.Contains(dot, `"a" -> "b"`) {
		t.Error("ToDOT() output missing edge")
	}
	if !strings.Contains(dot, TypeColors[flow.TypeEvent]) {
		t.Error("ToDOT() output missing type fill color")
	}
}

func TestToDOT_Detailed(t *testing.T) {
	g := &flow.Graph{
		Nodes: []flow.Node{
			{ID: "a", Label: "Ejecución", Type: flow.TypeProcess, System: "SAP", Code: "EX-02"},
		},
	}

	dot := ToDOT(g, DOTOptions{Detailed: true})

	if !strings.Contains(dot, "system: SAP") {
		t.Error("ToDOT() detailed output missing system line")
	}
	if !strings.Contains(dot, "code: EX-02") {
		t.Error("ToDOT() detailed output missing code line")
	}
}

func TestToDOT_EdgeLabelAndDangling(t *testing.T) {
	g := &flow.Graph{
		Nodes: []flow.Node{{ID: "a"}, {ID: "b"}},
		Edges: []flow.Edge{
			{ID: "e1", Source: "a", Target: "b", Label: "Checklist"},
			{ID: "e2", Source: "a", Target: "ghost"},
		},
	}

	dot := ToDOT(g, DOTOptions{})

	if !strings.Contains(dot, `label="Checklist"`) {
		t.Error("ToDOT() output missing edge label")
	}
	if strings.Contains(dot, "ghost") {
		t.Error("ToDOT() output should drop dangling edges")
	}
}

func TestToDOT_LabelFallsBackToID(t *testing.T) {
	g := &flow.Graph{Nodes: []flow.Node{{ID: "n1"}}}

	dot := ToDOT(g, DOTOptions{})
	if !strings.Contains(dot, `label="n1"`) {
		t.Error("ToDOT() unlabeled node should use its ID")
	}
}

func TestNormalizeViewBox(t *testing.T) {
	tests := []struct {
		name string
		svg  string
		want string
	}{
		{
			name: "with viewBox",
			svg:  `<svg viewBox="10 20 800 600" xmlns="http://www.w3.org/2000/svg">content</svg>`,
			want: `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 800.00 600.00" width="800" height="600">content</svg>`,
		},
		{
			name: "no viewBox",
			svg:  `<svg xmlns="http://www.w3.org/2000/svg">content</svg>`,
			want: `<svg xmlns="http://www.w3.org/2000/svg">content</svg>`,
		},
		{
			name: "zero dimensions",
			svg:  `<svg viewBox="0 0 0 0">content</svg>`,
			want: `<svg viewBox="0 0 0 0">content</svg>`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := normalizeViewBox([]byte(tt.svg))
			if string(got) != tt.want {
				t.Errorf("normalizeViewBox() = %q, want %q", string(got), tt.want)
			}
		})
	}
}
