package main

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/marchen/vocabforge/internal/domain"
	"github.com/marchen/vocabforge/internal/store"
)

func newImportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Import words from a text file",
		Long: "Import reads one word per line (blank lines and #-comments are\n" +
			"skipped) and adds each to the vocabulary book. Words already in the\n" +
			"book are counted as skipped, not errors.",
		Args: cobra.ExactArgs(1),
	}
	databaseURL := databaseURLFlag(cmd)

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		file, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("failed to open word file: %w", err)
		}
		defer func() { _ = file.Close() }()

		e, err := newEnv(cmd.Context(), *databaseURL)
		if err != nil {
			return err
		}
		defer e.close()

		var imported, skipped, invalid int
		seen := make(map[string]bool)

		scanner := bufio.NewScanner(file)
		for scanner.Scan() {
			text := strings.ToLower(strings.TrimSpace(scanner.Text()))
			if text == "" || strings.HasPrefix(text, "#") || seen[text] {
				continue
			}
			seen[text] = true

			word, err := domain.NewWord(text)
			if err != nil {
				fmt.Fprintf(os.Stderr, "skipping invalid word %q: %v\n", text, err)
				invalid++
				continue
			}

			switch err := e.words.Create(cmd.Context(), word); {
			case err == nil:
				imported++
			case errors.Is(err, store.ErrWordExists):
				skipped++
			default:
				return fmt.Errorf("failed to import %q: %w", text, err)
			}
		}
		if err := scanner.Err(); err != nil {
			return fmt.Errorf("failed to read word file: %w", err)
		}

		fmt.Printf("Imported %d words (%d already present, %d invalid)\n", imported, skipped, invalid)
		return nil
	}

	return cmd
}
