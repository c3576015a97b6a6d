// Package flow defines the graph model shared by diagrams and flows.
//
// A [Graph] is the persisted collection of nodes and edges for one visual
// artifact (an organigrama or a process flow). Node and edge IDs are unique
// within a graph; edges reference nodes by ID and may dangle — lookups and
// rendering filter unresolved endpoints instead of failing.
//
// The same structs serve two boundaries: the opaque JSON blob exchanged
// with the diagrams API (the canonical save/load format) and the BSON
// documents stored by the Mongo-backed store. Round-trip fidelity is a hard
// requirement: serialize-then-deserialize is identity modulo key ordering.
//
// Subpackages build on the model:
//   - layout: automatic layered positioning and the manual-mode grid fallback
//   - editor: mutation operations and drag sessions
//   - interaction: transient hover/selection state
package flow
