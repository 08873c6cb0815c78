package corpus

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/example/go-kaiju-corpus/internal/tagger"
)

// File extensions of the pipeline outputs.
const (
	ExtRaw     = ".raw"
	ExtFull    = ".full"
	ExtTwoChar = ".2char"
)

// TagOptions selects the derived files written next to a raw file.
type TagOptions struct {
	// Eval marks the raw file as an evaluation holdout.
	Eval bool
	// TwoChar requests the two-character file. It is only produced for
	// evaluation files; otherwise the request is logged and skipped.
	TwoChar bool
}

// TagResult lists the files written for one raw file.
type TagResult struct {
	FullPath    string
	TwoCharPath string
	Bytes       int64
}

// SwapExt replaces the extension of path with ext.
func SwapExt(path, ext string) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + ext
}

// TagFile reads the raw file at path and writes its tagged form, and the
// two-character form when requested, next to it.
func TagFile(path string, opts TagOptions, logger *slog.Logger) (TagResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return TagResult{}, fmt.Errorf("read raw file: %w", err)
	}

	return writeDerived(path, string(data), opts, logger)
}

func writeDerived(rawPath, content string, opts TagOptions, logger *slog.Logger) (TagResult, error) {
	if logger == nil {
		logger = slog.Default()
	}

	res := TagResult{FullPath: SwapExt(rawPath, ExtFull)}

	n, err := writeFileAtomic(res.FullPath, tagger.Tag(content), logger)
	if err != nil {
		return TagResult{}, err
	}
	res.Bytes += n

	if !opts.TwoChar {
		return res, nil
	}

	reduced, err := tagger.Reduce(content, opts.Eval)
	if errors.Is(err, tagger.ErrNotEvaluation) {
		logger.Warn("skipping two-character file", "raw", rawPath, "error", err)
		return res, nil
	}
	if err != nil {
		return TagResult{}, err
	}

	res.TwoCharPath = SwapExt(rawPath, ExtTwoChar)
	n, err = writeFileAtomic(res.TwoCharPath, reduced, logger)
	if err != nil {
		return TagResult{}, err
	}
	res.Bytes += n

	return res, nil
}

// writeFileAtomic writes content to a temporary file in the target
// directory and renames it into place.
func writeFileAtomic(path, content string, logger *slog.Logger) (int64, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return 0, fmt.Errorf("create output dir: %w", err)
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, []byte(content), 0o644); err != nil {
		_ = os.Remove(tmp)
		return 0, fmt.Errorf("write temp file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return 0, fmt.Errorf("move temp file into place: %w", err)
	}

	logger.Debug("wrote file", "path", path, "size", humanize.Bytes(uint64(len(content))))

	return int64(len(content)), nil
}
