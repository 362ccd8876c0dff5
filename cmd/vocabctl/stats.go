package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show study statistics",
	}
	databaseURL := databaseURLFlag(cmd)

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		e, err := newEnv(ctx, *databaseURL)
		if err != nil {
			return err
		}
		defer e.close()

		total, err := e.words.Count(ctx)
		if err != nil {
			return fmt.Errorf("failed to count words: %w", err)
		}
		studied, err := e.words.CountStudied(ctx)
		if err != nil {
			return fmt.Errorf("failed to count studied words: %w", err)
		}
		unstudied, err := e.words.CountUnstudied(ctx)
		if err != nil {
			return fmt.Errorf("failed to count unstudied words: %w", err)
		}
		withContent, err := e.words.CountWithContent(ctx)
		if err != nil {
			return fmt.Errorf("failed to count words with content: %w", err)
		}
		essays, err := e.essays.Count(ctx)
		if err != nil {
			return fmt.Errorf("failed to count essays: %w", err)
		}

		fmt.Printf("Words:              %d\n", total)
		fmt.Printf("  studied:          %d\n", studied)
		fmt.Printf("  unstudied:        %d\n", unstudied)
		fmt.Printf("  with content:     %d\n", withContent)
		fmt.Printf("Essays:             %d\n", essays)
		return nil
	}

	return cmd
}
