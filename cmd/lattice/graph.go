package main

import (
	"fmt"
	"os"

	"github.com/aretw0/lattice/internal/presentation/graph"
	"github.com/spf13/cobra"
)

// graphCmd represents the graph command
var graphCmd = &cobra.Command{
	Use:   "graph",
	Short: "Export the capability graph visualization",
	Long:  `Compiles the manifest and outputs a Mermaid diagram (graph TD) of the refinement graph and composite slots.`,
	Run: func(cmd *cobra.Command, args []string) {
		ws, err := loadWorkspace(cmd, args)
		if err != nil {
			fmt.Printf("Error loading model: %v\n", err)
			os.Exit(1)
		}

		output := graph.GenerateMermaid(ws.Snapshot(), nil)
		fmt.Print(output)
	},
}

func init() {
	rootCmd.AddCommand(graphCmd)
}
