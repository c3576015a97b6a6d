// Package interaction tracks transient hover and selection state for a
// flow view. The state is ephemeral: it is created fresh per view session,
// never persisted, and cleared independently of graph mutations. It exists
// only to drive presentation (dimming unrelated nodes, opening the detail
// panel for the selected node).
package interaction

import "github.com/isotrack/isotrack/pkg/flow"

// State holds at most one hovered and one selected node ID. The two slots
// are independent: setting one never touches the other, and setting
// replaces rather than queues. The zero value is ready to use with both
// slots empty.
type State struct {
	hovered  string
	selected string
}

// New returns an empty interaction state.
func New() *State { return &State{} }

// SetHovered replaces the hovered node ID. An empty id clears the slot.
func (s *State) SetHovered(id string) { s.hovered = id }

// SetSelected replaces the selected node ID. An empty id clears the slot.
func (s *State) SetSelected(id string) { s.selected = id }

// Hovered returns the hovered node ID, or "" when nothing is hovered.
func (s *State) Hovered() string { return s.hovered }

// Selected returns the selected node ID, or "" when nothing is selected.
func (s *State) Selected() string { return s.selected }

// Reset clears both slots.
func (s *State) Reset() {
	s.hovered = ""
	s.selected = ""
}

// BindGraph re-targets the state at a freshly loaded graph: hover is
// cleared and selection defaults to the first node when one exists.
func (s *State) BindGraph(g *flow.Graph) {
	s.hovered = ""
	if len(g.Nodes) > 0 {
		s.selected = g.Nodes[0].ID
	} else {
		s.selected = ""
	}
}
