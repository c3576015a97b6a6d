package flow

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// ReadGraph decodes a JSON graph payload from r.
//
// The input must be a JSON object with "nodes" and "edges" arrays:
//
//	{
//	  "nodes": [{"id": "n1", "label": "Dirección", "type": "area"}],
//	  "edges": [{"id": "e1", "source": "n1", "target": "n2"}]
//	}
//
// ReadGraph does not validate referential integrity: edges may reference
// node IDs that are absent from the payload. Such edges are kept and simply
// excluded from [Graph.RenderableEdges] until their endpoints appear.
// ReadGraph does not close r.
func ReadGraph(r io.Reader) (Graph, error) {
	var g Graph
	if err := json.NewDecoder(r).Decode(&g); err != nil {
		return Graph{}, fmt.Errorf("decode: %w", err)
	}
	return g, nil
}

// WriteGraph encodes the graph as indented JSON and writes it to w.
// The output is the canonical persistence payload and can be re-imported
// with [ReadGraph] for round-trip processing.
func WriteGraph(g Graph, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(g); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// MarshalGraph serializes a Graph to pretty-printed JSON bytes.
func MarshalGraph(g Graph) ([]byte, error) {
	return json.MarshalIndent(g, "", "  ")
}

// UnmarshalGraph deserializes JSON bytes into a Graph.
func UnmarshalGraph(data []byte) (Graph, error) {
	var g Graph
	if err := json.Unmarshal(data, &g); err != nil {
		return Graph{}, fmt.Errorf("unmarshal graph: %w", err)
	}
	return g, nil
}

// ImportGraph reads a JSON file at path and returns the decoded graph.
// The error wraps the underlying cause with the file path for context.
func ImportGraph(path string) (Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		return Graph{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadGraph(f)
}

// ExportGraph writes a graph to a JSON file at path.
// This is a convenience wrapper around [WriteGraph] for file-based output.
func ExportGraph(g Graph, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteGraph(g, f)
}
