package store

import (
	"context"
	"testing"
	"time"

	"github.com/isotrack/isotrack/pkg/errors"
	"github.com/isotrack/isotrack/pkg/flow"
)

func TestMemoryDiagramLifecycle(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	d := &Diagram{
		ID:   "d1",
		Name: "Organigrama",
		Type: DiagramTypeOrgChart,
		Data: &flow.Graph{Nodes: []flow.Node{{ID: "n1", Label: "Dirección"}}},
	}
	if err := m.PutDiagram(ctx, d); err != nil {
		t.Fatalf("PutDiagram error: %v", err)
	}
	if d.CreatedAt.IsZero() || d.UpdatedAt.IsZero() {
		t.Error("timestamps not stamped on insert")
	}

	got, err := m.GetDiagram(ctx, "d1")
	if err != nil {
		t.Fatalf("GetDiagram error: %v", err)
	}
	if got.Name != "Organigrama" || got.Data == nil || len(got.Data.Nodes) != 1 {
		t.Errorf("diagram = %+v", got)
	}

	// Mutating the returned copy must not affect the store.
	got.Name = "Cambiado"
	again, _ := m.GetDiagram(ctx, "d1")
	if again.Name != "Organigrama" {
		t.Error("store leaked internal state to caller")
	}

	if err := m.DeleteDiagram(ctx, "d1"); err != nil {
		t.Fatalf("DeleteDiagram error: %v", err)
	}
	if _, err := m.GetDiagram(ctx, "d1"); !errors.Is(err, errors.ErrCodeDiagramNotFound) {
		t.Errorf("error = %v, want DIAGRAM_NOT_FOUND", err)
	}
}

func TestMemoryUpdateKeepsCreatedAt(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	clock := base
	m.now = func() time.Time { return clock }

	d := &Diagram{ID: "d1", Name: "v1", Type: DiagramTypeFlow}
	if err := m.PutDiagram(ctx, d); err != nil {
		t.Fatal(err)
	}

	clock = base.Add(time.Hour)
	d2 := &Diagram{ID: "d1", Name: "v2", Type: DiagramTypeFlow}
	if err := m.PutDiagram(ctx, d2); err != nil {
		t.Fatal(err)
	}

	got, _ := m.GetDiagram(ctx, "d1")
	if got.Name != "v2" {
		t.Errorf("name = %q, want v2", got.Name)
	}
	if !got.CreatedAt.Equal(base) {
		t.Errorf("CreatedAt = %v, want %v", got.CreatedAt, base)
	}
	if !got.UpdatedAt.Equal(base.Add(time.Hour)) {
		t.Errorf("UpdatedAt = %v", got.UpdatedAt)
	}
}

func TestMemoryListOrder(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	for _, id := range []string{"c", "a", "b"} {
		if err := m.PutDiagram(ctx, &Diagram{ID: id}); err != nil {
			t.Fatal(err)
		}
	}

	list, err := m.ListDiagrams(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 3 || list[0].ID != "c" || list[1].ID != "a" || list[2].ID != "b" {
		t.Errorf("list order = %v", list)
	}
}

func TestMemoryLinks(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	if _, err := m.DiagramLinks(ctx, "missing"); !errors.Is(err, errors.ErrCodeDiagramNotFound) {
		t.Errorf("error = %v, want DIAGRAM_NOT_FOUND", err)
	}

	if err := m.PutDiagram(ctx, &Diagram{ID: "d1"}); err != nil {
		t.Fatal(err)
	}

	links, err := m.DiagramLinks(ctx, "d1")
	if err != nil {
		t.Fatalf("DiagramLinks error: %v", err)
	}
	if len(links) != 0 {
		t.Errorf("links = %v, want empty", links)
	}

	want := []Link{{ID: "l1", ToID: "proc-1", ToType: "process", ToName: "Auditoría"}}
	if err := m.PutDiagramLinks(ctx, "d1", want); err != nil {
		t.Fatalf("PutDiagramLinks error: %v", err)
	}

	links, _ = m.DiagramLinks(ctx, "d1")
	if len(links) != 1 || links[0].ToID != "proc-1" {
		t.Errorf("links = %v", links)
	}
}

func TestMemoryFlows(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	if _, err := m.GetFlow(ctx, "missing"); !errors.Is(err, errors.ErrCodeFlowNotFound) {
		t.Errorf("error = %v, want FLOW_NOT_FOUND", err)
	}

	f := &Flow{ID: "f1", Title: "Auditoría interna", Tags: []string{"iso9001"}}
	if err := m.PutFlow(ctx, f); err != nil {
		t.Fatalf("PutFlow error: %v", err)
	}

	got, err := m.GetFlow(ctx, "f1")
	if err != nil {
		t.Fatalf("GetFlow error: %v", err)
	}
	if got.Title != "Auditoría interna" {
		t.Errorf("flow = %+v", got)
	}

	list, _ := m.ListFlows(ctx)
	if len(list) != 1 {
		t.Errorf("flows = %d, want 1", len(list))
	}
}

func TestSeed(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	if err := Seed(ctx, m, "company-1"); err != nil {
		t.Fatalf("Seed error: %v", err)
	}

	diagrams, _ := m.ListDiagrams(ctx)
	if len(diagrams) != 1 {
		t.Fatalf("diagrams = %d, want 1", len(diagrams))
	}
	org := diagrams[0]
	if org.Type != DiagramTypeOrgChart || org.Data == nil {
		t.Errorf("seeded diagram = %+v", org)
	}
	if len(org.Data.Nodes) != 6 || len(org.Data.Edges) != 4 {
		t.Errorf("org chart = %d nodes %d edges", len(org.Data.Nodes), len(org.Data.Edges))
	}

	links, _ := m.DiagramLinks(ctx, org.ID)
	if len(links) != 2 {
		t.Errorf("links = %d, want 2", len(links))
	}

	flows, _ := m.ListFlows(ctx)
	if len(flows) != 1 {
		t.Errorf("flows = %d, want 1", len(flows))
	}

	// Seeding twice does not duplicate records.
	if err := Seed(ctx, m, "company-1"); err != nil {
		t.Fatal(err)
	}
	diagrams, _ = m.ListDiagrams(ctx)
	if len(diagrams) != 1 {
		t.Errorf("diagrams after reseed = %d, want 1", len(diagrams))
	}
}

func TestDefaultOrgChartIsRenderable(t *testing.T) {
	g := DefaultOrgChart()
	if got := len(g.RenderableEdges()); got != 4 {
		t.Errorf("renderable edges = %d, want 4", got)
	}
	for _, n := range g.Nodes {
		if !flow.ValidType(n.Type) {
			t.Errorf("node %s has invalid type %q", n.ID, n.Type)
		}
		if n.Position == nil {
			t.Errorf("node %s missing a stored position", n.ID)
		}
	}
}
