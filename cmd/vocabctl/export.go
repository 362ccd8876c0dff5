package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/marchen/vocabforge/internal/anki"
)

func newExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export <words|essays>",
		Short: "Export an Anki deck (.apkg)",
		Long: "Export writes an Anki package for either the vocabulary words\n" +
			"(only words that already have learning content) or the generated\n" +
			"essays.",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"words", "essays"},
	}
	databaseURL := databaseURLFlag(cmd)
	output := cmd.Flags().StringP("output", "o", "", "output file (default vocabforge_<kind>.apkg)")

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		kind := args[0]
		if kind != "words" && kind != "essays" {
			return fmt.Errorf("export kind must be 'words' or 'essays', got %q", kind)
		}

		ctx := cmd.Context()
		e, err := newEnv(ctx, *databaseURL)
		if err != nil {
			return err
		}
		defer e.close()

		exporter, err := anki.NewExporter(e.words, e.essays, e.logger)
		if err != nil {
			return err
		}

		path := *output
		if path == "" {
			path = fmt.Sprintf("vocabforge_%s.apkg", kind)
		}
		file, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}

		if kind == "words" {
			err = exporter.ExportWords(ctx, file)
		} else {
			err = exporter.ExportEssays(ctx, file)
		}
		if cerr := file.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			_ = os.Remove(path)
			return fmt.Errorf("export failed: %w", err)
		}

		fmt.Printf("Wrote %s\n", path)
		return nil
	}

	return cmd
}
