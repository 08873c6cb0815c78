package corpus

import (
	"errors"
	"fmt"
	"io"

	"github.com/example/go-kaiju-corpus/internal/wiki"
)

// TextObserver prints one line per file written, and one per failed fetch.
type TextObserver struct {
	W io.Writer
}

func (o TextObserver) StageStarted(int, int, Source) {}

func (o TextObserver) StageDone(st Stage) {
	if st.Err != nil {
		var se *wiki.StatusError
		if errors.As(st.Err, &se) {
			fmt.Fprintf(o.W, "Failed to retrieve the article from %s. Status code: %d\n", st.Source.URL, se.StatusCode)
		} else {
			fmt.Fprintf(o.W, "Failed to retrieve the article from %s: %v\n", st.Source.URL, st.Err)
		}
		return
	}

	if st.Source.Holdout {
		fmt.Fprintf(o.W, "%s's article has been saved to '%s'\n", st.Title, st.RawPath)
	} else {
		fmt.Fprintf(o.W, "Articles up to %s have been saved to '%s'\n", st.Title, st.RawPath)
	}

	fmt.Fprintf(o.W, "Tagged text has been saved to '%s'.\n", st.FullPath)
	if st.TwoCharPath != "" {
		fmt.Fprintf(o.W, "Text in two character format has been saved to '%s'.\n", st.TwoCharPath)
	}
}
