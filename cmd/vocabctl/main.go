// Package main implements vocabctl, the operational command-line tool for
// a VocabForge deployment. It talks to the same database as the server and
// covers the workflows that do not need the HTTP API: bulk word imports,
// study statistics, and Anki deck exports.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "vocabctl",
		Short: "Manage a VocabForge vocabulary book",
		Long: "vocabctl manages the VocabForge database directly: import words\n" +
			"from text files, inspect study statistics, and export Anki decks.",
		SilenceUsage: true,
	}

	root.AddCommand(newImportCmd())
	root.AddCommand(newStatsCmd())
	root.AddCommand(newExportCmd())
	return root
}
