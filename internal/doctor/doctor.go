// Package doctor provides preflight checks for kaijucorpus.
package doctor

import (
	"fmt"
	"io"
	"os"

	"github.com/example/go-kaiju-corpus/internal/corpus"
	"github.com/example/go-kaiju-corpus/internal/metrics"
)

// PassMark and FailMark are the prefix symbols printed for each check result.
const (
	PassMark = "✓"
	FailMark = "✗"
)

// SourcesFunc returns the resolved source list.
type SourcesFunc func() ([]corpus.Source, error)

// ProbeFunc checks that an endpoint is reachable and returns a short status.
type ProbeFunc func() (string, error)

// Config holds injectable dependencies for each doctor check.
type Config struct {
	// Sources loads the source list that generate would use.
	Sources SourcesFunc
	// DataDir must exist or be creatable, and be writable.
	DataDir string
	// GroundTruth is the tagged evaluation file. Empty skips the check.
	GroundTruth string
	// PredictionFiles are verified on disk.
	PredictionFiles []string
	// Probe checks article host reachability. Nil skips the check.
	Probe ProbeFunc
}

// Result collects the outcome of all checks.
type Result struct {
	failures []string
}

// Failed returns true if any check failed.
func (r *Result) Failed() bool { return len(r.failures) > 0 }

// Failures returns the list of failure messages.
func (r *Result) Failures() []string { return append([]string(nil), r.failures...) }

// AddFailure appends an external failure message to the result.
func (r *Result) AddFailure(msg string) { r.failures = append(r.failures, msg) }

func (r *Result) fail(msg string) { r.failures = append(r.failures, msg) }

// Run executes all configured checks and writes human-readable output to w.
// Each check line is prefixed with PassMark or FailMark.
func Run(cfg Config, w io.Writer) Result {
	var res Result

	// ---- sources ----------------------------------------------------------
	if cfg.Sources != nil {
		srcs, err := cfg.Sources()
		if err != nil {
			res.fail(fmt.Sprintf("sources: %v", err))
			fmt.Fprintf(w, "%s sources: %v\n", FailMark, err)
		} else {
			holdouts := 0
			for _, s := range srcs {
				if s.Holdout {
					holdouts++
				}
			}
			fmt.Fprintf(w, "%s sources: %d articles, %d holdout\n", PassMark, len(srcs)-holdouts, holdouts)
		}
	}

	// ---- data dir ---------------------------------------------------------
	if err := checkWritable(cfg.DataDir); err != nil {
		res.fail(fmt.Sprintf("data dir %q: %v", cfg.DataDir, err))
		fmt.Fprintf(w, "%s data dir %s: %v\n", FailMark, cfg.DataDir, err)
	} else {
		fmt.Fprintf(w, "%s data dir: %s\n", PassMark, cfg.DataDir)
	}

	// ---- ground truth -----------------------------------------------------
	if cfg.GroundTruth != "" {
		gt, err := metrics.LoadGroundTruth(cfg.GroundTruth)
		switch {
		case err != nil:
			res.fail(fmt.Sprintf("ground truth %q: %v", cfg.GroundTruth, err))
			fmt.Fprintf(w, "%s ground truth %s: %v\n", FailMark, cfg.GroundTruth, err)
		case gt.Words == 0:
			res.fail(fmt.Sprintf("ground truth %q: %v", cfg.GroundTruth, metrics.ErrEmptyGroundTruth))
			fmt.Fprintf(w, "%s ground truth %s: no words\n", FailMark, cfg.GroundTruth)
		default:
			fmt.Fprintf(w, "%s ground truth: %s (%d words)\n", PassMark, cfg.GroundTruth, gt.Words)
		}
	}

	// ---- prediction files -------------------------------------------------
	for _, path := range cfg.PredictionFiles {
		if _, err := os.Stat(path); err != nil {
			res.fail(fmt.Sprintf("prediction file %q: %v", path, err))
			fmt.Fprintf(w, "%s prediction file %s: not found\n", FailMark, path)
		} else {
			fmt.Fprintf(w, "%s prediction file: %s\n", PassMark, path)
		}
	}

	// ---- network ----------------------------------------------------------
	if cfg.Probe == nil {
		fmt.Fprintf(w, "%s article host: skipped\n", PassMark)
	} else if status, err := cfg.Probe(); err != nil {
		res.fail(fmt.Sprintf("article host: %v", err))
		fmt.Fprintf(w, "%s article host: unreachable (%v)\n", FailMark, err)
	} else {
		fmt.Fprintf(w, "%s article host: %s\n", PassMark, status)
	}

	return res
}

// checkWritable creates dir if needed and verifies a file can be written
// in it.
func checkWritable(dir string) error {
	if dir == "" {
		return fmt.Errorf("not configured")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	f, err := os.CreateTemp(dir, ".doctor-*")
	if err != nil {
		return err
	}
	name := f.Name()
	_ = f.Close()

	return os.Remove(name)
}
