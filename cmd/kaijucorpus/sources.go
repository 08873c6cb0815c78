package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/go-kaiju-corpus/internal/corpus"
	"github.com/example/go-kaiju-corpus/internal/wiki"
)

func newSourcesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sources",
		Short: "Print the resolved source list and output names",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := requireConfig()
			if err != nil {
				return err
			}

			srcs, err := resolveSources(cfg)
			if err != nil {
				return err
			}

			a, err := corpus.NewAssembler(wiki.NewClient(wiki.Options{}), corpus.Options{
				DataDir:     cfg.Paths.DataDir,
				StageSuffix: cfg.Corpus.StageSuffix,
				UnicodeForm: cfg.Corpus.UnicodeForm,
			})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for i, s := range srcs {
				kind := "corpus"
				if s.Holdout {
					kind = "holdout"
				}
				_, _ = fmt.Fprintf(out, "%2d  %-7s  %-45s  %s\n", i+1, kind, s.URL, a.StagePath(i+1, s))
			}

			return nil
		},
	}

	return cmd
}
