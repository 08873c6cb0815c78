// Package metrics scores tagged predictions against a tagged ground truth.
//
// Two ratios are computed per prediction: the share of unknown tags, and the
// edit distance between the concatenated tag strings.
package metrics

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/agnivade/levenshtein"

	"github.com/example/go-kaiju-corpus/internal/config"
	"github.com/example/go-kaiju-corpus/internal/tagger"
)

// UnknownMarker is the tag a model emits for input it could not classify.
const UnknownMarker = "/UNK"

var (
	// ErrMalformedToken is returned for a tagged token without a "/".
	ErrMalformedToken = errors.New("malformed tagged token")
	// ErrEmptyGroundTruth is returned when the ground truth has no words.
	ErrEmptyGroundTruth = errors.New("ground truth has no words")
)

// GroundTruth is the reference tagged text.
type GroundTruth struct {
	Path  string
	Words int
	Tags  string
}

// LoadGroundTruth reads a tagged file and computes its word count and tag
// string.
func LoadGroundTruth(path string) (GroundTruth, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return GroundTruth{}, fmt.Errorf("read ground truth: %w", err)
	}

	text := string(data)

	tags, err := TagString(text)
	if err != nil {
		return GroundTruth{}, fmt.Errorf("ground truth %s: %w", path, err)
	}

	return GroundTruth{Path: path, Words: WordCount(text), Tags: tags}, nil
}

// UnknownCount returns the number of occurrences of UnknownMarker.
func UnknownCount(text string) int {
	return strings.Count(text, UnknownMarker)
}

// WordCount returns the number of whitespace-separated tokens.
func WordCount(text string) int {
	return len(tagger.Fields(text))
}

// TagString concatenates the second "/"-separated field of every token.
func TagString(text string) (string, error) {
	var sb strings.Builder

	for _, tok := range tagger.Fields(text) {
		fields := strings.Split(tok, "/")
		if len(fields) < 2 {
			return "", fmt.Errorf("%w: %q", ErrMalformedToken, tok)
		}
		sb.WriteString(fields[1])
	}

	return sb.String(), nil
}

// Result holds the scores of one prediction.
type Result struct {
	Prediction
	Unknown      int
	UnknownRatio float64
	EditDistance int
	EditRatio    float64
}

type Options struct {
	// DistanceNorm selects the edit ratio denominator; see
	// config.DistanceNormFilename and config.DistanceNormContent.
	DistanceNorm string
	// Variants fixes the order of variant groups in the output. Variants
	// not listed follow in order of first appearance.
	Variants []string
}

// Evaluate scores every prediction against gt. Results are grouped by
// variant and, within a group, sorted by corpus size, then edit ratio, then
// unknown ratio.
func Evaluate(gt GroundTruth, preds []Prediction, opts Options) ([]Result, error) {
	if gt.Words == 0 {
		return nil, ErrEmptyGroundTruth
	}

	normMode, err := config.NormalizeDistanceNorm(opts.DistanceNorm)
	if err != nil {
		return nil, err
	}

	results := make([]Result, 0, len(preds))

	for _, p := range preds {
		data, err := os.ReadFile(p.Path)
		if err != nil {
			return nil, fmt.Errorf("read prediction: %w", err)
		}

		r, err := score(gt, p, string(data), normMode)
		if err != nil {
			return nil, err
		}
		results = append(results, r)
	}

	order := variantOrder(opts.Variants, preds)
	sort.SliceStable(results, func(i, j int) bool {
		a, b := results[i], results[j]
		if oa, ob := order[a.Variant], order[b.Variant]; oa != ob {
			return oa < ob
		}
		if a.CorpusSize != b.CorpusSize {
			return a.CorpusSize < b.CorpusSize
		}
		if a.EditRatio != b.EditRatio {
			return a.EditRatio < b.EditRatio
		}
		return a.UnknownRatio < b.UnknownRatio
	})

	return results, nil
}

func score(gt GroundTruth, p Prediction, text, normMode string) (Result, error) {
	tags, err := TagString(text)
	if err != nil {
		return Result{}, fmt.Errorf("prediction %s: %w", p.Path, err)
	}

	r := Result{Prediction: p, Unknown: UnknownCount(text)}
	r.UnknownRatio = float64(r.Unknown) / float64(gt.Words)
	r.EditDistance = levenshtein.ComputeDistance(gt.Tags, tags)

	var denom int
	switch normMode {
	case config.DistanceNormContent:
		denom = utf8.RuneCountInString(tags)
	default:
		denom = utf8.RuneCountInString(filepath.Base(p.Path))
	}
	if denom > 0 {
		r.EditRatio = float64(r.EditDistance) / float64(denom)
	}

	return r, nil
}

func variantOrder(variants []string, preds []Prediction) map[string]int {
	order := make(map[string]int, len(variants))
	for _, v := range variants {
		if _, ok := order[v]; !ok {
			order[v] = len(order)
		}
	}
	for _, p := range preds {
		if _, ok := order[p.Variant]; !ok {
			order[p.Variant] = len(order)
		}
	}
	return order
}

// VariantResults is the sorted results of one model variant.
type VariantResults struct {
	Variant string
	Results []Result
}

// Group splits sorted results into per-variant runs, preserving order.
func Group(results []Result) []VariantResults {
	var out []VariantResults
	idx := make(map[string]int)

	for _, r := range results {
		i, ok := idx[r.Variant]
		if !ok {
			i = len(out)
			idx[r.Variant] = i
			out = append(out, VariantResults{Variant: r.Variant})
		}
		out[i].Results = append(out[i].Results, r)
	}

	return out
}
