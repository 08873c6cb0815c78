package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/example/go-kaiju-corpus/internal/chart"
	"github.com/example/go-kaiju-corpus/internal/config"
	"github.com/example/go-kaiju-corpus/internal/metrics"
)

func newEvaluateCmd() *cobra.Command {
	var (
		predictions string
		format      string
		noChart     bool
		saveReport  bool
	)

	cmd := &cobra.Command{
		Use:   "evaluate",
		Short: "Score prediction files against the ground truth and chart the results",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := requireConfig()
			if err != nil {
				return err
			}

			if format != "table" && format != "json" {
				return fmt.Errorf("--format must be 'table' or 'json'")
			}
			if predictions != "" {
				cfg.Paths.PredictionsFile = predictions
			}

			gt, err := metrics.LoadGroundTruth(groundTruthPath(cfg))
			if err != nil {
				return err
			}

			preds, err := resolvePredictions(cfg)
			if err != nil {
				return err
			}
			if len(preds) == 0 {
				return errors.New("no prediction files found")
			}

			results, err := metrics.Evaluate(gt, preds, metrics.Options{
				DistanceNorm: cfg.Eval.DistanceNorm,
				Variants:     cfg.Eval.Variants,
			})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			switch format {
			case "json":
				if err := metrics.FormatJSON(gt, results, out); err != nil {
					return err
				}
			default:
				metrics.FormatTable(results, out)
			}

			if saveReport {
				path := filepath.Join(cfg.Paths.ResultsDir, "eval_"+cfg.Eval.EvalName+".json")
				if err := writeReport(path, gt, results); err != nil {
					return err
				}
				slog.Info("report saved", "path", path)
			}

			if noChart {
				return nil
			}

			panels := chart.EvaluationPanels(metrics.Group(results))
			if err := chart.SaveFile(cfg.Eval.ChartPath, panels, chart.DefaultOptions()); err != nil {
				return err
			}
			slog.Info("chart saved", "path", cfg.Eval.ChartPath, "predictions", len(results))

			return nil
		},
	}

	cmd.Flags().StringVar(&predictions, "predictions", "", "YAML prediction records (overrides paths.predictions_file)")
	cmd.Flags().StringVar(&format, "format", "table", "Output format: table|json")
	cmd.Flags().BoolVar(&noChart, "no-chart", false, "Skip rendering the chart")
	cmd.Flags().BoolVar(&saveReport, "save-report", false, "Also write a JSON report to the results dir")

	return cmd
}

// groundTruthPath resolves the ground truth against the data dir unless it
// is absolute.
func groundTruthPath(cfg config.Config) string {
	if filepath.IsAbs(cfg.Eval.GroundTruth) {
		return cfg.Eval.GroundTruth
	}
	return filepath.Join(cfg.Paths.DataDir, cfg.Eval.GroundTruth)
}

// resolvePredictions loads the prediction manifest when configured, and
// otherwise discovers prediction files by name in the data dir.
func resolvePredictions(cfg config.Config) ([]metrics.Prediction, error) {
	if cfg.Paths.PredictionsFile != "" {
		return metrics.LoadPredictions(cfg.Paths.PredictionsFile)
	}
	return metrics.Discover(cfg.Paths.DataDir, cfg.Eval.EvalName, cfg.Eval.Variants)
}

func writeReport(path string, gt metrics.GroundTruth, results []metrics.Result) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create results dir: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create report: %w", err)
	}

	if err := metrics.FormatJSON(gt, results, f); err != nil {
		_ = f.Close()
		return err
	}

	return f.Close()
}
