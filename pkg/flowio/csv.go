package flowio

import (
	"cmp"
	"encoding/csv"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	"github.com/isotrack/isotrack/pkg/flow"
)

// Starter templates offered to users before their first import. They match
// the required column sets below and round-trip through the parsers.
const (
	NodesTemplate = `id,label,type,system,x,y,code
node-plan,Planificación,step,IsoTrack,80,120,PL-01
node-ejecucion,Ejecución,process,IsoTrack,420,210,EX-02
node-cierre,Cierre,decision,SAP,740,320,CR-03`

	EdgesTemplate = `id,source,target,label
edge-plan-ejecucion,node-plan,node-ejecucion,Checklist
edge-ejecucion-cierre,node-ejecucion,node-cierre,Validación`
)

// Default coordinate offsets for imported nodes missing x or y. Row i lands
// at (80+30i, 120+30i) so an unpositioned import still fans out diagonally.
const (
	importBaseX, importBaseY = 80.0, 120.0
	importStep               = 30.0
)

// Required headers per import kind.
var (
	nodeColumns = []string{"id", "label", "type", "system"}
	edgeColumns = []string{"id", "source", "target"}
)

// MissingColumnsError reports required CSV columns absent from the header
// row. Import is aborted before any row is read, so the caller's graph is
// untouched on failure.
type MissingColumnsError struct {
	Columns []string
}

func (e *MissingColumnsError) Error() string {
	return fmt.Sprintf("missing required columns: %s", strings.Join(e.Columns, ", "))
}

// ParseNodesCSV parses a nodes CSV block into a replacement node set.
//
// The header must contain id, label, type and system; x, y and code are
// optional. Empty label, type and system cells fall back to "Nodo",
// [flow.TypeStep] and "IsoTrack". A missing or non-numeric coordinate gets
// the row's default offset so imported nodes never stack at the origin.
func ParseNodesCSV(text string) ([]flow.Node, error) {
	rows, err := parseRows(text, nodeColumns)
	if err != nil {
		return nil, err
	}

	nodes := make([]flow.Node, 0, len(rows))
	for i, row := range rows {
		x, okX := parseCoord(row["x"])
		if !okX {
			x = importBaseX + float64(i)*importStep
		}
		y, okY := parseCoord(row["y"])
		if !okY {
			y = importBaseY + float64(i)*importStep
		}

		n := flow.Node{
			ID:       row["id"],
			Label:    cmp.Or(row["label"], "Nodo"),
			Type:     cmp.Or(row["type"], flow.TypeStep),
			System:   cmp.Or(row["system"], "IsoTrack"),
			Code:     row["code"],
			Position: &flow.Position{X: x, Y: y},
		}
		nodes = append(nodes, n)
	}
	return nodes, nil
}

// ParseEdgesCSV parses an edges CSV block into a replacement edge set.
//
// The header must contain id, source and target; label is optional.
// Endpoints are not checked against any node set: dangling edges are legal
// and stay invisible until their nodes appear.
func ParseEdgesCSV(text string) ([]flow.Edge, error) {
	rows, err := parseRows(text, edgeColumns)
	if err != nil {
		return nil, err
	}

	edges := make([]flow.Edge, 0, len(rows))
	for _, row := range rows {
		edges = append(edges, flow.Edge{
			ID:     row["id"],
			Source: row["source"],
			Target: row["target"],
			Label:  row["label"],
		})
	}
	return edges, nil
}

// parseRows reads header-plus-rows CSV text into per-row column maps and
// validates the required header set. Blank lines are skipped; short rows
// leave their trailing columns empty.
func parseRows(text string, required []string) ([]map[string]string, error) {
	r := csv.NewReader(strings.NewReader(strings.TrimSpace(text)))
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	header, err := r.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	for i, h := range header {
		header[i] = strings.TrimSpace(h)
	}

	var missing []string
	for _, col := range required {
		if !slices.Contains(header, col) {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, &MissingColumnsError{Columns: missing}
	}

	var rows []map[string]string
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row: %w", err)
		}

		row := make(map[string]string, len(header))
		for i, col := range header {
			if i < len(record) {
				row[col] = strings.TrimSpace(record[i])
			} else {
				row[col] = ""
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func parseCoord(s string) (float64, bool) {
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

