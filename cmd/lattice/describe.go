package main

import (
	"fmt"
	"os"

	"github.com/aretw0/lattice/internal/presentation/report"
	"github.com/aretw0/lattice/internal/presentation/tui"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var describeCmd = &cobra.Command{
	Use:   "describe",
	Short: "Print a human-readable model report",
	Long: `Compiles the manifest and prints a markdown report of all interfaces,
refinements and composites. When stdout is a terminal the report is rendered
with styling; otherwise raw markdown is emitted for piping.`,
	Run: func(cmd *cobra.Command, args []string) {
		ws, err := loadWorkspace(cmd, args)
		if err != nil {
			fmt.Printf("Error loading model: %v\n", err)
			os.Exit(1)
		}

		md := report.Model(ws.Snapshot())

		plain, _ := cmd.Flags().GetBool("plain")
		if plain || !term.IsTerminal(int(os.Stdout.Fd())) {
			fmt.Print(md)
			return
		}

		tui.PrintBanner()
		render := tui.NewRenderer()
		out, err := render(md)
		if err != nil {
			// Fall back to raw markdown rather than failing the command.
			fmt.Print(md)
			return
		}
		fmt.Print(out)
	},
}

func init() {
	rootCmd.AddCommand(describeCmd)
	describeCmd.Flags().Bool("plain", false, "Emit raw markdown even on a terminal")
}
