package metrics

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Prediction is one tagged output of a model trained on a corpus of
// CorpusSize articles.
type Prediction struct {
	CorpusSize int    `yaml:"corpus_size" json:"corpus_size"`
	Variant    string `yaml:"variant" json:"variant"`
	Path       string `yaml:"path" json:"path"`
}

type predictionManifest struct {
	Predictions []Prediction `yaml:"predictions"`
}

// LoadPredictions reads a YAML prediction manifest:
//
//	predictions:
//	  - corpus_size: 3
//	    variant: L2SVM
//	    path: 3_L2SVM_king_kong_pred.full
//
// Relative paths are resolved against the manifest's directory.
func LoadPredictions(manifestPath string) ([]Prediction, error) {
	if manifestPath == "" {
		return nil, errors.New("prediction manifest path is required")
	}

	data, err := os.ReadFile(manifestPath)
	if err != nil {
		return nil, fmt.Errorf("read prediction manifest: %w", err)
	}

	var m predictionManifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("decode prediction manifest: %w", err)
	}

	baseDir := filepath.Dir(manifestPath)
	out := make([]Prediction, 0, len(m.Predictions))

	for i, p := range m.Predictions {
		if p.Path == "" {
			return nil, fmt.Errorf("prediction %d has empty path", i+1)
		}
		if p.Variant == "" {
			return nil, fmt.Errorf("prediction %q has empty variant", p.Path)
		}
		if p.CorpusSize < 0 {
			return nil, fmt.Errorf("prediction %q has negative corpus size %d", p.Path, p.CorpusSize)
		}

		if !filepath.IsAbs(p.Path) {
			p.Path = filepath.Join(baseDir, p.Path)
		}
		p.Path = filepath.Clean(p.Path)

		out = append(out, p)
	}

	return out, nil
}

// Discover finds prediction files in dir that follow the naming convention
// "<corpus size>_<variant>_<evalName>_pred.<ext>", for each of variants.
// The corpus size is parsed here, once; a file matching the convention
// without an integer prefix is an error.
func Discover(dir, evalName string, variants []string) ([]Prediction, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read prediction dir: %w", err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	var out []Prediction

	for _, name := range names {
		for _, variant := range variants {
			marker := "_" + variant + "_" + evalName + "_pred."
			if !strings.Contains(name, marker) {
				continue
			}

			prefix, _, _ := strings.Cut(name, "_")
			size, err := strconv.Atoi(prefix)
			if err != nil {
				return nil, fmt.Errorf("prediction file %q: corpus size prefix %q is not an integer", name, prefix)
			}

			out = append(out, Prediction{
				CorpusSize: size,
				Variant:    variant,
				Path:       filepath.Join(dir, name),
			})

			break
		}
	}

	return out, nil
}
