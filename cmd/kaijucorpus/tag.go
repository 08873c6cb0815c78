package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/example/go-kaiju-corpus/internal/corpus"
)

func newTagCmd() *cobra.Command {
	var (
		eval    bool
		twoChar bool
	)

	cmd := &cobra.Command{
		Use:   "tag FILE...",
		Short: "Write tagged (.full) files for existing raw files",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := requireConfig(); err != nil {
				return err
			}

			opts := corpus.TagOptions{Eval: eval, TwoChar: eval || twoChar}
			out := cmd.OutOrStdout()

			for _, path := range args {
				res, err := corpus.TagFile(path, opts, slog.Default())
				if err != nil {
					return fmt.Errorf("%s: %w", path, err)
				}

				_, _ = fmt.Fprintf(out, "Tagged text has been saved to '%s'.\n", res.FullPath)
				if res.TwoCharPath != "" {
					_, _ = fmt.Fprintf(out, "Text in two character format has been saved to '%s'.\n", res.TwoCharPath)
				}
			}

			return nil
		},
	}

	cmd.Flags().BoolVar(&eval, "eval", false, "Treat inputs as evaluation files and also write .2char")
	cmd.Flags().BoolVar(&twoChar, "two-char", false, "Request .2char output (only written with --eval)")

	return cmd
}
