// Package flowio converts flow graphs to and from boundary formats.
//
// Three formats are supported:
//
//   - CSV: bulk import of nodes and edges from header-plus-rows text.
//     Import replaces the corresponding set wholesale; it never merges.
//   - SVG: a branded, static presentation snapshot of the current graph.
//     The snapshot is for sharing and audits and is not re-importable.
//   - DOT: Graphviz input for the alternative share/print path, rendered
//     to SVG with [RenderGraphvizSVG].
//
// The canonical persistence format is JSON, handled by the flow package
// itself; flowio only covers the lossy boundary formats.
package flowio
