// Package store persists diagram and flow records.
//
// Two backends implement the same [Store] interface: [Memory] for tests
// and single-binary development, and [MongoStore] for deployments. Both
// treat the graph payload as the canonical opaque {nodes, edges} blob on
// the record, mirroring the save format of the REST contract.
package store

import (
	"context"
	"time"

	"github.com/isotrack/isotrack/pkg/errors"
	"github.com/isotrack/isotrack/pkg/flow"
)

// Diagram record types.
const (
	DiagramTypeOrgChart = "organigrama"
	DiagramTypeFlow     = "flujo"
)

// Diagram is a stored diagram record. Data holds the full graph as the
// canonical save payload; SVGExport is the last branded snapshot.
type Diagram struct {
	ID          string      `json:"id" bson:"_id"`
	Name        string      `json:"name" bson:"name"`
	Code        string      `json:"code,omitempty" bson:"code,omitempty"`
	Type        string      `json:"type" bson:"type"`
	Description string      `json:"description,omitempty" bson:"description,omitempty"`
	CompanyID   string      `json:"company_id,omitempty" bson:"company_id,omitempty"`
	Data        *flow.Graph `json:"data,omitempty" bson:"data,omitempty"`
	SVGExport   string      `json:"svg_export,omitempty" bson:"svg_export,omitempty"`
	CreatedAt   time.Time   `json:"createdAt" bson:"created_at"`
	UpdatedAt   time.Time   `json:"updatedAt" bson:"updated_at"`
}

// Link associates a diagram with another quality artifact (a process,
// document or task).
type Link struct {
	ID     string `json:"id" bson:"id"`
	ToID   string `json:"to_id" bson:"to_id"`
	ToType string `json:"to_type" bson:"to_type"`
	ToName string `json:"to_name,omitempty" bson:"to_name,omitempty"`
	ToCode string `json:"to_code,omitempty" bson:"to_code,omitempty"`
}

// Flow is a stored process flow record. Unlike diagrams, the contract
// exposes its nodes and edges as first-class fields on the detail
// response; they are still stored as one graph blob.
type Flow struct {
	ID              string      `json:"id" bson:"_id"`
	Title           string      `json:"title" bson:"title"`
	Description     string      `json:"description,omitempty" bson:"description,omitempty"`
	Type            string      `json:"type,omitempty" bson:"type,omitempty"`
	Tags            []string    `json:"tags,omitempty" bson:"tags,omitempty"`
	Area            string      `json:"area,omitempty" bson:"area,omitempty"`
	Visibility      string      `json:"visibility,omitempty" bson:"visibility,omitempty"`
	VisibilityRoles []string    `json:"visibility_roles,omitempty" bson:"visibility_roles,omitempty"`
	CompanyID       string      `json:"company_id,omitempty" bson:"company_id,omitempty"`
	Data            *flow.Graph `json:"data,omitempty" bson:"data,omitempty"`
	CreatedAt       time.Time   `json:"createdAt" bson:"created_at"`
	UpdatedAt       time.Time   `json:"updatedAt" bson:"updated_at"`
}

// Store is the persistence boundary for diagram and flow records.
type Store interface {
	ListDiagrams(ctx context.Context) ([]Diagram, error)
	GetDiagram(ctx context.Context, id string) (*Diagram, error)
	// PutDiagram upserts a record and maintains its timestamps.
	PutDiagram(ctx context.Context, d *Diagram) error
	DeleteDiagram(ctx context.Context, id string) error

	DiagramLinks(ctx context.Context, diagramID string) ([]Link, error)
	PutDiagramLinks(ctx context.Context, diagramID string, links []Link) error

	ListFlows(ctx context.Context) ([]Flow, error)
	GetFlow(ctx context.Context, id string) (*Flow, error)
	PutFlow(ctx context.Context, f *Flow) error

	Close(ctx context.Context) error
}

// NotFoundDiagram builds the canonical diagram-not-found error.
func NotFoundDiagram(id string) error {
	return errors.New(errors.ErrCodeDiagramNotFound, "diagram %s not found", id)
}

// NotFoundFlow builds the canonical flow-not-found error.
func NotFoundFlow(id string) error {
	return errors.New(errors.ErrCodeFlowNotFound, "flow %s not found", id)
}
