package flowio

import (
	"bytes"
	"cmp"
	"fmt"
	"strings"

	"github.com/isotrack/isotrack/pkg/flow"
)

// TypeColors maps node types to the fill colors used in exports. Unknown
// types fall back to the step color.
var TypeColors = map[string]string{
	flow.TypeStep:        "#2563eb",
	flow.TypeDecision:    "#f59e0b",
	flow.TypeEvent:       "#ec4899",
	flow.TypeProcess:     "#0ea5e9",
	flow.TypeIntegration: "#22c55e",
	flow.TypeRole:        "#4f46e5",
	flow.TypeArea:        "#f59e0b",
}

// TypeColor returns the export fill color for a node type.
func TypeColor(nodeType string) string {
	if c, ok := TypeColors[nodeType]; ok {
		return c
	}
	return TypeColors[flow.TypeStep]
}

// SVGOptions configures the branded snapshot header and canvas.
// Zero fields take the documented defaults.
type SVGOptions struct {
	Title   string  // header line, defaults to "Diagrama"
	Code    string  // document code shown next to the title, defaults to "F1.5"
	Company string  // branding line in header and footer
	Width   float64 // canvas width, defaults to 900
	Height  float64 // canvas height, defaults to 620
}

// ExportSVG renders the graph as a standalone branded SVG document.
//
// The snapshot carries a title/subtitle header, one rounded rectangle plus
// label per node colored by [TypeColor], one line with an optional midpoint
// label per renderable edge, and a branding footer. Edges whose endpoints
// are missing are left out, matching on-canvas rendering. The output is a
// presentation artifact only and cannot be imported back.
func ExportSVG(g *flow.Graph, opts SVGOptions) []byte {
	title := cmp.Or(opts.Title, "Diagrama")
	code := cmp.Or(opts.Code, "F1.5")
	w := cmp.Or(opts.Width, 900.0)
	h := cmp.Or(opts.Height, 620.0)

	var buf bytes.Buffer
	buf.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.0f %.0f" font-family="Inter, sans-serif">`+"\n", w, h)

	buf.WriteString(`  <defs>` + "\n")
	buf.WriteString(`    <linearGradient id="bg" x1="0" x2="1" y1="0" y2="1"><stop stop-color="#0f172a" offset="0"/><stop stop-color="#1d4ed8" offset="1"/></linearGradient>` + "\n")
	buf.WriteString(`    <marker id="arrow" viewBox="0 0 10 10" refX="9" refY="5" markerWidth="7" markerHeight="7" orient="auto-start-reverse"><path d="M 0 0 L 10 5 L 0 10 z" fill="#94a3b8"/></marker>` + "\n")
	buf.WriteString(`  </defs>` + "\n")
	buf.WriteString(`  <rect width="100%" height="100%" fill="url(#bg)" opacity="0.08"/>` + "\n")

	fmt.Fprintf(&buf, `  <text x="24" y="36" font-size="14" fill="#0f172a" font-weight="600">%s · %s</text>`+"\n", escape(title), escape(code))
	if opts.Company != "" {
		fmt.Fprintf(&buf, `  <text x="24" y="56" font-size="12" fill="#475569">%s</text>`+"\n", escape(opts.Company))
	}

	buf.WriteString("  <g>\n")
	renderEdges(&buf, g)
	renderNodes(&buf, g)
	buf.WriteString("  </g>\n")

	if opts.Company != "" {
		fmt.Fprintf(&buf, `  <text x="24" y="%.0f" font-size="11" fill="#475569">Exportado con branding %s</text>`+"\n", h-24, escape(opts.Company))
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func renderEdges(buf *bytes.Buffer, g *flow.Graph) {
	idx := g.NodeIndex()
	for _, e := range g.RenderableEdges() {
		src, dst := idx[e.Source], idx[e.Target]
		x1, y1 := boxCenter(src)
		x2, y2 := boxCenter(dst)

		buf.WriteString("    <g>")
		fmt.Fprintf(buf, `<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="#94a3b8" stroke-width="2" marker-end="url(#arrow)"/>`, x1, y1, x2, y2)
		if e.Label != "" {
			fmt.Fprintf(buf, `<text x="%.1f" y="%.1f" font-size="11" fill="#475569" text-anchor="middle">%s</text>`, (x1+x2)/2, (y1+y2)/2-8, escape(e.Label))
		}
		buf.WriteString("</g>\n")
	}
}

func renderNodes(buf *bytes.Buffer, g *flow.Graph) {
	for i := range g.Nodes {
		n := &g.Nodes[i]
		x, y := 0.0, 0.0
		if n.Position != nil {
			x, y = n.Position.X, n.Position.Y
		}

		fmt.Fprintf(buf, `    <g transform="translate(%.1f,%.1f)">`, x, y)
		fmt.Fprintf(buf, `<rect rx="12" width="%.0f" height="%.0f" fill="%s" opacity="0.95"/>`, n.BoxWidth(), n.BoxHeight(), TypeColor(n.Type))
		fmt.Fprintf(buf, `<text x="12" y="26" font-size="13" fill="white" font-weight="600">%s</text>`, escape(n.Label))
		if n.System != "" {
			fmt.Fprintf(buf, `<text x="12" y="44" font-size="11" fill="white" opacity="0.85">%s</text>`, escape(n.System))
		}
		buf.WriteString("</g>\n")
	}
}

func boxCenter(n *flow.Node) (x, y float64) {
	if n.Position != nil {
		x, y = n.Position.X, n.Position.Y
	}
	return x + n.BoxWidth()/2, y + n.BoxHeight()/2
}

var escaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
)

func escape(s string) string {
	return escaper.Replace(s)
}
