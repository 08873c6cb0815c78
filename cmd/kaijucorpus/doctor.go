package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/example/go-kaiju-corpus/internal/config"
	"github.com/example/go-kaiju-corpus/internal/corpus"
	"github.com/example/go-kaiju-corpus/internal/doctor"
)

const probeTimeout = 15 * time.Second

func newDoctorCmd() *cobra.Command {
	var (
		network bool
		eval    bool
	)

	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Check sources, directories and evaluation inputs",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := requireConfig()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()

			dcfg := doctor.Config{
				Sources: func() ([]corpus.Source, error) { return resolveSources(cfg) },
				DataDir: cfg.Paths.DataDir,
			}

			var predErr error
			if eval {
				dcfg.GroundTruth = groundTruthPath(cfg)

				preds, err := resolvePredictions(cfg)
				switch {
				case err != nil:
					predErr = err
				case len(preds) == 0:
					predErr = errors.New("none found")
				}
				for _, p := range preds {
					dcfg.PredictionFiles = append(dcfg.PredictionFiles, p.Path)
				}
			}

			if network {
				dcfg.Probe = newProbe(cmd.Context(), cfg)
			}

			result := doctor.Run(dcfg, out)

			if predErr != nil {
				result.AddFailure(fmt.Sprintf("predictions: %v", predErr))
				_, _ = fmt.Fprintf(out, "%s predictions: %v\n", doctor.FailMark, predErr)
			}

			return reportDoctor(result, out, cmd.ErrOrStderr())
		},
	}

	cmd.Flags().BoolVar(&network, "network", false, "Also check that the first source is reachable")
	cmd.Flags().BoolVar(&eval, "eval", false, "Also check the ground truth and prediction files")

	return cmd
}

// newProbe returns a probe of the first configured source, or nil when the
// source list cannot be resolved (the sources check reports that).
func newProbe(ctx context.Context, cfg config.Config) doctor.ProbeFunc {
	srcs, err := resolveSources(cfg)
	if err != nil || len(srcs) == 0 {
		return nil
	}

	client := newWikiClient(cfg)
	url := srcs[0].URL

	return func() (string, error) {
		pctx, cancel := context.WithTimeout(ctx, probeTimeout)
		defer cancel()

		return client.Probe(pctx, url)
	}
}

func reportDoctor(result doctor.Result, out, errOut io.Writer) error {
	if result.Failed() {
		for _, f := range result.Failures() {
			_, _ = fmt.Fprintf(errOut, "FAIL: %s\n", f)
		}

		return errors.New("doctor checks failed")
	}

	_, _ = fmt.Fprintln(out, "doctor checks passed")

	return nil
}
