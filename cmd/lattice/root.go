package main

import (
	"fmt"
	"os"

	"github.com/aretw0/lattice"
	"github.com/aretw0/lattice/internal/logging"
	"github.com/aretw0/lattice/internal/manifest"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "lattice",
	Short: "Lattice is a declarative control-architecture modeling tool",
	Long:  `Lattice compiles declarative model manifests into capability graphs, checks refinement consistency and serves the frozen model for inspection.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().StringP("file", "f", "lattice.yaml", "Model manifest to load")
	rootCmd.PersistentFlags().String("log-level", "warn", "Log level: debug, info, warn, error")
}

// loadWorkspace compiles the manifest named by --file (or the first
// positional argument) and freezes it.
func loadWorkspace(cmd *cobra.Command, args []string, opts ...lattice.Option) (*lattice.Workspace, error) {
	file, _ := cmd.Flags().GetString("file")
	if !cmd.Flags().Changed("file") && len(args) > 0 {
		file = args[0]
	}

	data, err := os.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}

	level, _ := cmd.Flags().GetString("log-level")
	opts = append([]lattice.Option{lattice.WithLogger(logging.New(logging.ParseLevel(level)))}, opts...)

	ws, err := manifest.Load(data, opts...)
	if err != nil {
		return nil, err
	}
	ws.Freeze()
	return ws, nil
}
