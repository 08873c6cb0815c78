package metrics

import (
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strings"
)

// FormatTable writes a human-readable table of results to w.
func FormatTable(results []Result, w io.Writer) {
	sb := &strings.Builder{}

	fmt.Fprintf(sb, "%-10s  %6s  %8s  %10s  %6s  %9s  %s\n",
		"Variant", "Kaijus", "Unknown", "UnkRatio", "Edits", "EditRatio", "File")
	fmt.Fprintln(sb, strings.Repeat("-", 72))

	for _, r := range results {
		fmt.Fprintf(sb, "%-10s  %6d  %8d  %10.4f  %6d  %9.4f  %s\n",
			r.Variant,
			r.CorpusSize,
			r.Unknown,
			r.UnknownRatio,
			r.EditDistance,
			r.EditRatio,
			filepath.Base(r.Path),
		)
	}

	fmt.Fprint(w, sb.String())
}

type jsonReport struct {
	GroundTruth jsonGroundTruth `json:"ground_truth"`
	Results     []jsonResult    `json:"results"`
}

type jsonGroundTruth struct {
	Path  string `json:"path"`
	Words int    `json:"words"`
}

type jsonResult struct {
	Variant      string  `json:"variant"`
	CorpusSize   int     `json:"corpus_size"`
	Path         string  `json:"path"`
	Unknown      int     `json:"unknown"`
	UnknownRatio float64 `json:"unknown_ratio"`
	EditDistance int     `json:"edit_distance"`
	EditRatio    float64 `json:"edit_ratio"`
}

// FormatJSON writes a JSON report of results to w.
func FormatJSON(gt GroundTruth, results []Result, w io.Writer) error {
	jr := jsonReport{
		GroundTruth: jsonGroundTruth{Path: gt.Path, Words: gt.Words},
		Results:     make([]jsonResult, len(results)),
	}
	for i, r := range results {
		jr.Results[i] = jsonResult{
			Variant:      r.Variant,
			CorpusSize:   r.CorpusSize,
			Path:         r.Path,
			Unknown:      r.Unknown,
			UnknownRatio: r.UnknownRatio,
			EditDistance: r.EditDistance,
			EditRatio:    r.EditRatio,
		}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	return enc.Encode(jr)
}
