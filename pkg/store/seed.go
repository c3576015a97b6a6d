package store

import (
	"context"

	"github.com/isotrack/isotrack/pkg/flow"
)

// DefaultOrgChart returns the starter organigrama shown to companies that
// have not drawn anything yet.
func DefaultOrgChart() *flow.Graph {
	return &flow.Graph{
		LayoutMode: flow.LayoutManual,
		Nodes: []flow.Node{
			{ID: "n1", Label: "Dirección", Type: flow.TypeArea, Position: &flow.Position{X: 140, Y: 60}},
			{ID: "n2", Label: "Calidad", Type: flow.TypeArea, Position: &flow.Position{X: 380, Y: 60}},
			{ID: "n3", Label: "Operaciones", Type: flow.TypeArea, Position: &flow.Position{X: 620, Y: 60}},
			{ID: "n4", Label: "Líder ISO", Type: flow.TypeRole, System: "Owner", Position: &flow.Position{X: 140, Y: 190}},
			{ID: "n5", Label: "Analista QA", Type: flow.TypeRole, System: "Calidad", Position: &flow.Position{X: 380, Y: 190}},
			{ID: "n6", Label: "Supervisor", Type: flow.TypeRole, System: "Operaciones", Position: &flow.Position{X: 620, Y: 190}},
		},
		Edges: []flow.Edge{
			{ID: "e1", Source: "n1", Target: "n4", Label: "Reporte"},
			{ID: "e2", Source: "n2", Target: "n5", Label: "Auditoría"},
			{ID: "e3", Source: "n3", Target: "n6", Label: "Ejecución"},
			{ID: "e4", Source: "n4", Target: "n5", Label: "Mejora"},
		},
	}
}

// Seed inserts starter records into an empty store: one organigrama with
// artifact links and one process flow. Stores that already hold diagrams
// are left untouched.
func Seed(ctx context.Context, s Store, companyID string) error {
	existing, err := s.ListDiagrams(ctx)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}

	org := &Diagram{
		ID:          "diagram-organigrama",
		Name:        "Organigrama",
		Code:        "ORG-01",
		Type:        DiagramTypeOrgChart,
		Description: "Estructura de roles y áreas",
		CompanyID:   companyID,
		Data:        DefaultOrgChart(),
	}
	if err := s.PutDiagram(ctx, org); err != nil {
		return err
	}

	links := []Link{
		{ID: "link-1", ToID: "proc-auditoria", ToType: "process", ToName: "Auditoría interna", ToCode: "PR-04"},
		{ID: "link-2", ToID: "doc-manual", ToType: "document", ToName: "Manual de calidad", ToCode: "MC-01"},
	}
	if err := s.PutDiagramLinks(ctx, org.ID, links); err != nil {
		return err
	}

	f := &Flow{
		ID:          "flow-auditoria",
		Title:       "Auditoría interna",
		Description: "Flujo anual de auditoría interna",
		Type:        "proceso",
		Tags:        []string{"iso9001", "auditoría"},
		Area:        "Calidad",
		Visibility:  "company",
		CompanyID:   companyID,
		Data: &flow.Graph{
			LayoutMode: flow.LayoutAuto,
			Nodes: []flow.Node{
				{ID: "node-plan", Label: "Planificación", Type: flow.TypeStep, System: "IsoTrack", Code: "PL-01"},
				{ID: "node-ejecucion", Label: "Ejecución", Type: flow.TypeProcess, System: "IsoTrack", Code: "EX-02"},
				{ID: "node-cierre", Label: "Cierre", Type: flow.TypeDecision, System: "SAP", Code: "CR-03"},
			},
			Edges: []flow.Edge{
				{ID: "edge-plan-ejecucion", Source: "node-plan", Target: "node-ejecucion", Label: "Checklist"},
				{ID: "edge-ejecucion-cierre", Source: "node-ejecucion", Target: "node-cierre", Label: "Validación"},
			},
		},
	}
	return s.PutFlow(ctx, f)
}
