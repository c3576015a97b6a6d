package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/isotrack/isotrack/pkg/flow"
	"github.com/isotrack/isotrack/pkg/flowio"
)

// importOpts holds the command-line flags for the import command.
type importOpts struct {
	nodesPath string // CSV file with node rows
	edgesPath string // CSV file with edge rows
	output    string // output JSON path, "-" for stdout
	auto      bool   // mark the graph for automatic layout
}

// newImportCmd creates the import command that converts CSV files into a
// graph payload.
func newImportCmd() *cobra.Command {
	var opts importOpts

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import nodes and edges from CSV into a graph payload",
		Long: `Import reads a node CSV (columns: id,label,type,system and optional
x,y,code) and an optional edge CSV (columns: id,source,target and optional
label), and writes the combined graph as JSON. Rows with missing
coordinates are placed on a staggered diagonal so nothing lands at the
origin.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.nodesPath == "" {
				return fmt.Errorf("--nodes is required")
			}
			return runImport(cmd, &opts)
		},
	}

	cmd.Flags().StringVar(&opts.nodesPath, "nodes", "", "node CSV file")
	cmd.Flags().StringVar(&opts.edgesPath, "edges", "", "edge CSV file")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "-", "output JSON file, - for stdout")
	cmd.Flags().BoolVar(&opts.auto, "auto-layout", false, "mark the graph for automatic layout")

	return cmd
}

func runImport(cmd *cobra.Command, opts *importOpts) error {
	logger := loggerFromContext(cmd.Context())
	prog := newProgress(logger)

	nodesText, err := os.ReadFile(opts.nodesPath)
	if err != nil {
		return err
	}
	nodes, err := flowio.ParseNodesCSV(string(nodesText))
	if err != nil {
		return fmt.Errorf("parse %s: %w", opts.nodesPath, err)
	}

	var edges []flow.Edge
	if opts.edgesPath != "" {
		edgesText, err := os.ReadFile(opts.edgesPath)
		if err != nil {
			return err
		}
		edges, err = flowio.ParseEdgesCSV(string(edgesText))
		if err != nil {
			return fmt.Errorf("parse %s: %w", opts.edgesPath, err)
		}
	}

	g := flow.Graph{Nodes: nodes, Edges: edges, LayoutMode: flow.LayoutManual}
	if opts.auto {
		g.LayoutMode = flow.LayoutAuto
	}

	if dangling := len(g.Edges) - len(g.RenderableEdges()); dangling > 0 {
		printWarning("%d edge(s) reference unknown node IDs and will not render", dangling)
	}

	if err := writeGraphOutput(g, opts.output); err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Imported %d nodes, %d edges", len(nodes), len(edges)))
	if opts.output != "-" {
		printFile(opts.output)
	}
	return nil
}

// writeGraphOutput writes a graph to a file or stdout.
func writeGraphOutput(g flow.Graph, path string) error {
	if path == "-" {
		return flow.WriteGraph(g, os.Stdout)
	}
	return flow.ExportGraph(g, path)
}

// newTemplateCmd creates the template command that prints starter CSVs.
func newTemplateCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "template [nodes|edges]",
		Short:     "Print a starter CSV template",
		ValidArgs: []string{"nodes", "edges"},
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch args[0] {
			case "nodes":
				fmt.Println(flowio.NodesTemplate)
			case "edges":
				fmt.Println(flowio.EdgesTemplate)
			}
			return nil
		},
	}
}
