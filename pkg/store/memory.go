package store

import (
	"context"
	"slices"
	"sync"
	"time"
)

// Memory is an in-memory Store for tests and single-binary development.
// It is safe for concurrent use. Records are returned as copies; callers
// can mutate results without affecting the store.
type Memory struct {
	mu       sync.RWMutex
	diagrams map[string]Diagram
	links    map[string][]Link
	flows    map[string]Flow
	order    []string // diagram insertion order, keeps listings stable
	flowIDs  []string
	now      func() time.Time
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{
		diagrams: make(map[string]Diagram),
		links:    make(map[string][]Link),
		flows:    make(map[string]Flow),
		now:      time.Now,
	}
}

// ListDiagrams returns every diagram in insertion order.
func (m *Memory) ListDiagrams(ctx context.Context) ([]Diagram, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]Diagram, 0, len(m.order))
	for _, id := range m.order {
		out = append(out, m.diagrams[id])
	}
	return out, nil
}

// GetDiagram returns a diagram by ID.
func (m *Memory) GetDiagram(ctx context.Context, id string) (*Diagram, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	d, ok := m.diagrams[id]
	if !ok {
		return nil, NotFoundDiagram(id)
	}
	return &d, nil
}

// PutDiagram upserts a diagram, stamping CreatedAt on first write and
// UpdatedAt on every write.
func (m *Memory) PutDiagram(ctx context.Context, d *Diagram) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	if existing, ok := m.diagrams[d.ID]; ok {
		d.CreatedAt = existing.CreatedAt
	} else {
		d.CreatedAt = now
		m.order = append(m.order, d.ID)
	}
	d.UpdatedAt = now

	m.diagrams[d.ID] = *d
	return nil
}

// DeleteDiagram removes a diagram and its links.
func (m *Memory) DeleteDiagram(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.diagrams[id]; !ok {
		return NotFoundDiagram(id)
	}
	delete(m.diagrams, id)
	delete(m.links, id)
	m.order = slices.DeleteFunc(m.order, func(s string) bool { return s == id })
	return nil
}

// DiagramLinks returns the artifact links of a diagram. A diagram with no
// links yields an empty slice, not an error.
func (m *Memory) DiagramLinks(ctx context.Context, diagramID string) ([]Link, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if _, ok := m.diagrams[diagramID]; !ok {
		return nil, NotFoundDiagram(diagramID)
	}
	return slices.Clone(m.links[diagramID]), nil
}

// PutDiagramLinks replaces the artifact links of a diagram.
func (m *Memory) PutDiagramLinks(ctx context.Context, diagramID string, links []Link) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.diagrams[diagramID]; !ok {
		return NotFoundDiagram(diagramID)
	}
	m.links[diagramID] = slices.Clone(links)
	return nil
}

// ListFlows returns every flow in insertion order.
func (m *Memory) ListFlows(ctx context.Context) ([]Flow, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]Flow, 0, len(m.flowIDs))
	for _, id := range m.flowIDs {
		out = append(out, m.flows[id])
	}
	return out, nil
}

// GetFlow returns a flow by ID.
func (m *Memory) GetFlow(ctx context.Context, id string) (*Flow, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	f, ok := m.flows[id]
	if !ok {
		return nil, NotFoundFlow(id)
	}
	return &f, nil
}

// PutFlow upserts a flow record.
func (m *Memory) PutFlow(ctx context.Context, f *Flow) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	if existing, ok := m.flows[f.ID]; ok {
		f.CreatedAt = existing.CreatedAt
	} else {
		f.CreatedAt = now
		m.flowIDs = append(m.flowIDs, f.ID)
	}
	f.UpdatedAt = now

	m.flows[f.ID] = *f
	return nil
}

// Close does nothing for the in-memory store.
func (m *Memory) Close(ctx context.Context) error { return nil }

var _ Store = (*Memory)(nil)
