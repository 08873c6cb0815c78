// Package corpus assembles the cumulative kaiju corpora and the evaluation
// holdout files from a list of article sources.
package corpus

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"golang.org/x/text/unicode/norm"

	"github.com/example/go-kaiju-corpus/internal/config"
	"github.com/example/go-kaiju-corpus/internal/wiki"
)

// Fetcher retrieves one article. *wiki.Client satisfies it.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (wiki.Article, error)
}

// Observer is notified as each source is processed.
type Observer interface {
	StageStarted(index, total int, src Source)
	StageDone(st Stage)
}

// Stage is the outcome of processing one source. Index is the 1-based
// position of the source in the list.
type Stage struct {
	Index       int
	Source      Source
	Title       string
	RawPath     string
	FullPath    string
	TwoCharPath string
	Bytes       int64
	Err         error
}

// Summary collects every stage of a Build.
type Summary struct {
	Stages []Stage
}

// Failed returns the stages whose article could not be fetched.
func (s Summary) Failed() []Stage {
	var out []Stage
	for _, st := range s.Stages {
		if st.Err != nil {
			out = append(out, st)
		}
	}
	return out
}

// Bytes is the total size of all files written.
func (s Summary) Bytes() int64 {
	var n int64
	for _, st := range s.Stages {
		n += st.Bytes
	}
	return n
}

type Options struct {
	DataDir     string
	StageSuffix string
	// UnicodeForm is one of config.UnicodeNone, UnicodeNFC, UnicodeNFKC.
	UnicodeForm string
	Observer    Observer
	Logger      *slog.Logger
}

// Assembler builds corpus files. Processing is sequential; the only state
// carried between sources is the cumulative text owned by Build.
type Assembler struct {
	fetcher Fetcher
	opts    Options
	logger  *slog.Logger
}

func NewAssembler(f Fetcher, opts Options) (*Assembler, error) {
	if f == nil {
		return nil, errors.New("fetcher is required")
	}
	if opts.DataDir == "" {
		return nil, errors.New("data dir is required")
	}
	if opts.StageSuffix == "" {
		opts.StageSuffix = config.DefaultConfig().Corpus.StageSuffix
	}

	form, err := config.NormalizeUnicodeForm(opts.UnicodeForm)
	if err != nil {
		return nil, err
	}
	opts.UnicodeForm = form

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Assembler{fetcher: f, opts: opts, logger: logger}, nil
}

// StagePath returns the raw file path for the source at 1-based index.
// Corpus stages are named after the number of articles they span; holdouts
// use HoldoutName.
func (a *Assembler) StagePath(index int, src Source) string {
	if src.Holdout {
		return filepath.Join(a.opts.DataDir, HoldoutName(src)+ExtRaw)
	}
	return filepath.Join(a.opts.DataDir, fmt.Sprintf("%d_%s%s", index, a.opts.StageSuffix, ExtRaw))
}

// Build fetches every source in order and writes its files.
//
// Corpus stage N holds the text of sources 1..N; a source whose fetch fails
// is reported, contributes nothing and leaves its stage unwritten. Holdouts
// are written alone and do not extend the cumulative text. Fetch failures
// never abort the build; write failures and context cancellation do.
func (a *Assembler) Build(ctx context.Context, sources []Source) (Summary, error) {
	if err := ValidateSources(sources); err != nil {
		return Summary{}, err
	}
	if err := os.MkdirAll(a.opts.DataDir, 0o755); err != nil {
		return Summary{}, fmt.Errorf("create data dir: %w", err)
	}

	var (
		sum        Summary
		cumulative string
	)

	for i, src := range sources {
		index := i + 1
		if a.opts.Observer != nil {
			a.opts.Observer.StageStarted(index, len(sources), src)
		}

		st, next, err := a.buildStage(ctx, index, src, cumulative)
		if err != nil {
			return sum, err
		}
		cumulative = next

		sum.Stages = append(sum.Stages, st)
		if a.opts.Observer != nil {
			a.opts.Observer.StageDone(st)
		}
	}

	a.logger.Info("corpus build finished",
		"stages", len(sum.Stages),
		"failed", len(sum.Failed()),
		"size", humanize.Bytes(uint64(sum.Bytes())),
	)

	return sum, nil
}

// buildStage processes one source and returns the updated cumulative text.
func (a *Assembler) buildStage(ctx context.Context, index int, src Source, cumulative string) (Stage, string, error) {
	st := Stage{Index: index, Source: src, Title: wiki.TitleFromURL(src.URL)}

	art, err := a.fetcher.Fetch(ctx, src.URL)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return st, cumulative, ctxErr
		}
		st.Err = err
		a.logger.Warn("article fetch failed", "index", index, "url", src.URL, "error", err)
		return st, cumulative, nil
	}
	if art.Title != "" {
		st.Title = art.Title
	}

	text := a.normalize(art.Text())

	content := text
	if !src.Holdout {
		cumulative += text
		content = cumulative
	}
	content += "\n\n"

	st.RawPath = a.StagePath(index, src)
	n, err := writeFileAtomic(st.RawPath, content, a.logger)
	if err != nil {
		return st, cumulative, fmt.Errorf("stage %d: %w", index, err)
	}
	st.Bytes = n

	res, err := writeDerived(st.RawPath, content, TagOptions{Eval: src.Holdout, TwoChar: src.Holdout}, a.logger)
	if err != nil {
		return st, cumulative, fmt.Errorf("stage %d: %w", index, err)
	}
	st.FullPath = res.FullPath
	st.TwoCharPath = res.TwoCharPath
	st.Bytes += res.Bytes

	a.logger.Debug("stage written",
		"index", index,
		"raw", st.RawPath,
		"holdout", src.Holdout,
		"size", humanize.Bytes(uint64(st.Bytes)),
	)

	return st, cumulative, nil
}

func (a *Assembler) normalize(s string) string {
	switch a.opts.UnicodeForm {
	case config.UnicodeNFC:
		return norm.NFC.String(s)
	case config.UnicodeNFKC:
		return norm.NFKC.String(s)
	default:
		return s
	}
}
