package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check the model for consistency",
	Long:  `Compiles the manifest and reports duplicate names, port mismatches, refinement cycles and unresolvable declarations.`,
	Run: func(cmd *cobra.Command, args []string) {
		ws, err := loadWorkspace(cmd, args)
		if err != nil {
			fmt.Printf("Validation failed: %v\n", err)
			os.Exit(1)
		}
		snap := ws.Snapshot()
		fmt.Printf("Model is valid! ✅ (%d interfaces, %d composites)\n",
			len(snap.Interfaces), len(snap.Composites))
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
