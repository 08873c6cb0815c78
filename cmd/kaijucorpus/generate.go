package main

import (
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/gosuri/uiprogress"
	"github.com/spf13/cobra"

	"github.com/example/go-kaiju-corpus/internal/config"
	"github.com/example/go-kaiju-corpus/internal/corpus"
	"github.com/example/go-kaiju-corpus/internal/wiki"
)

func newGenerateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Fetch articles and write cumulative corpora and holdout files",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := requireConfig()
			if err != nil {
				return err
			}

			srcs, err := resolveSources(cfg)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()

			var obs corpus.Observer = corpus.TextObserver{W: out}
			if cfg.Corpus.Progress {
				p := newProgressObserver(len(srcs), cmd.ErrOrStderr())
				defer p.Stop()
				obs = p
			}

			a, err := corpus.NewAssembler(newWikiClient(cfg), corpus.Options{
				DataDir:     cfg.Paths.DataDir,
				StageSuffix: cfg.Corpus.StageSuffix,
				UnicodeForm: cfg.Corpus.UnicodeForm,
				Observer:    obs,
				Logger:      slog.Default(),
			})
			if err != nil {
				return err
			}

			sum, err := a.Build(cmd.Context(), srcs)
			if err != nil {
				return err
			}

			if cfg.Corpus.Progress {
				for _, st := range sum.Failed() {
					_, _ = fmt.Fprintf(out, "Failed to retrieve the article from %s: %v\n", st.Source.URL, st.Err)
				}
			}

			_, _ = fmt.Fprintf(out, "%d of %d sources written (%s)\n",
				len(sum.Stages)-len(sum.Failed()), len(sum.Stages), humanize.Bytes(uint64(sum.Bytes())))

			return nil
		},
	}

	return cmd
}

func newWikiClient(cfg config.Config) *wiki.Client {
	return wiki.NewClient(wiki.Options{
		UserAgent: cfg.Fetch.UserAgent,
		Timeout:   time.Duration(cfg.Fetch.TimeoutSeconds) * time.Second,
		Selector:  cfg.Fetch.Selector,
	})
}

// progressObserver renders one bar across all sources, labelled with the
// article being fetched. The bar is rendered on uiprogress's own goroutine.
type progressObserver struct {
	progress *uiprogress.Progress
	bar      *uiprogress.Bar

	mu      sync.Mutex
	current string
}

func newProgressObserver(total int, w io.Writer) *progressObserver {
	p := &progressObserver{progress: uiprogress.New()}
	p.progress.SetOut(w)

	p.bar = p.progress.AddBar(total)
	p.bar.AppendCompleted()
	p.bar.PrependElapsed()
	p.bar.AppendFunc(func(_ *uiprogress.Bar) string {
		return p.title()
	})

	p.progress.Start()

	return p
}

func (p *progressObserver) StageStarted(_, _ int, src corpus.Source) {
	p.mu.Lock()
	p.current = wiki.TitleFromURL(src.URL)
	p.mu.Unlock()
}

func (p *progressObserver) title() string {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.current
}

func (p *progressObserver) StageDone(_ corpus.Stage) {
	p.bar.Incr()
}

func (p *progressObserver) Stop() {
	p.progress.Stop()
}
