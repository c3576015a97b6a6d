package flow

import "testing"

func TestRenderableEdges(t *testing.T) {
	tests := []struct {
		name  string
		graph Graph
		want  []string
	}{
		{
			name:  "Empty",
			graph: Graph{},
			want:  nil,
		},
		{
			name: "AllResolved",
			graph: Graph{
				Nodes: []Node{{ID: "a"}, {ID: "b"}},
				Edges: []Edge{{ID: "e1", Source: "a", Target: "b"}},
			},
			want: []string{"e1"},
		},
		{
			name: "DanglingSource",
			graph: Graph{
				Nodes: []Node{{ID: "b"}},
				Edges: []Edge{{ID: "e1", Source: "ghost", Target: "b"}},
			},
			want: nil,
		},
		{
			name: "DanglingTarget",
			graph: Graph{
				Nodes: []Node{{ID: "a"}},
				Edges: []Edge{{ID: "e1", Source: "a", Target: "ghost"}},
			},
			want: nil,
		},
		{
			name: "MixedKeepsOrder",
			graph: Graph{
				Nodes: []Node{{ID: "a"}, {ID: "b"}, {ID: "c"}},
				Edges: []Edge{
					{ID: "e1", Source: "a", Target: "b"},
					{ID: "e2", Source: "b", Target: "missing"},
					{ID: "e3", Source: "b", Target: "c"},
				},
			},
			want: []string{"e1", "e3"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.graph.RenderableEdges()
			if len(got) != len(tt.want) {
				t.Fatalf("edges = %d, want %d", len(got), len(tt.want))
			}
			for i, e := range got {
				if e.ID != tt.want[i] {
					t.Errorf("edge[%d] = %s, want %s", i, e.ID, tt.want[i])
				}
			}
		})
	}
}

func TestRenderableEdgesAppearOnceEndpointExists(t *testing.T) {
	g := Graph{
		Nodes: []Node{{ID: "a"}},
		Edges: []Edge{{ID: "e1", Source: "a", Target: "b"}},
	}

	if got := len(g.RenderableEdges()); got != 0 {
		t.Fatalf("renderable before endpoint exists = %d, want 0", got)
	}

	g.Nodes = append(g.Nodes, Node{ID: "b"})
	if got := len(g.RenderableEdges()); got != 1 {
		t.Fatalf("renderable after endpoint added = %d, want 1", got)
	}
}

func TestNodeLookup(t *testing.T) {
	g := Graph{Nodes: []Node{{ID: "a", Label: "Alpha"}}}

	if n := g.Node("a"); n == nil || n.Label != "Alpha" {
		t.Errorf("Node(a) = %+v, want Alpha", n)
	}
	if n := g.Node("missing"); n != nil {
		t.Errorf("Node(missing) = %+v, want nil", n)
	}
}

func TestEdgeLookup(t *testing.T) {
	g := Graph{Edges: []Edge{{ID: "e1", Source: "a", Target: "b"}}}

	if e := g.Edge("e1"); e == nil || e.Source != "a" {
		t.Errorf("Edge(e1) = %+v, want source a", e)
	}
	if e := g.Edge("missing"); e != nil {
		t.Errorf("Edge(missing) = %+v, want nil", e)
	}
}

func TestNodeLookupReturnsPointerIntoGraph(t *testing.T) {
	g := Graph{Nodes: []Node{{ID: "a", Label: "old"}}}
	g.Node("a").Label = "new"
	if g.Nodes[0].Label != "new" {
		t.Error("Node should return a pointer into the graph's slice")
	}
}

func TestBoxDimensions(t *testing.T) {
	n := Node{}
	if w := n.BoxWidth(); w != DefaultNodeWidth {
		t.Errorf("BoxWidth = %v, want %v", w, DefaultNodeWidth)
	}
	if h := n.BoxHeight(); h != DefaultNodeHeight {
		t.Errorf("BoxHeight = %v, want %v", h, DefaultNodeHeight)
	}

	n = Node{Width: 300, Height: 120}
	if w := n.BoxWidth(); w != 300 {
		t.Errorf("BoxWidth = %v, want 300", w)
	}
	if h := n.BoxHeight(); h != 120 {
		t.Errorf("BoxHeight = %v, want 120", h)
	}
}

func TestValidType(t *testing.T) {
	for _, typ := range NodeTypes {
		if !ValidType(typ) {
			t.Errorf("ValidType(%s) = false, want true", typ)
		}
	}
	if ValidType("banana") {
		t.Error("ValidType(banana) = true, want false")
	}
}

func TestValidTaskStatus(t *testing.T) {
	for _, s := range TaskStatuses {
		if !ValidTaskStatus(s) {
			t.Errorf("ValidTaskStatus(%s) = false, want true", s)
		}
	}
	if ValidTaskStatus("done") {
		t.Error("ValidTaskStatus(done) = true, want false")
	}
}
