package corpus

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/example/go-kaiju-corpus/internal/wiki"
)

// Source is one article to fetch. Holdout articles are evaluation-only:
// they are written on their own instead of being added to the cumulative
// corpus, and they also get a two-character file.
type Source struct {
	URL     string `yaml:"url"`
	Holdout bool   `yaml:"holdout"`
	// Name is the output base name of a holdout. Empty means the article
	// title lower-cased with an "_eval" suffix.
	Name string `yaml:"name,omitempty"`
}

type sourceManifest struct {
	Sources []Source `yaml:"sources"`
}

// DefaultSources returns the nine Toho kaiju articles followed by the
// King Kong holdout.
func DefaultSources() []Source {
	return []Source{
		{URL: "https://en.wikipedia.org/wiki/Godzilla"},
		{URL: "https://en.wikipedia.org/wiki/Mothra"},
		{URL: "https://en.wikipedia.org/wiki/King_Ghidorah"},
		{URL: "https://en.wikipedia.org/wiki/Mechagodzilla"},
		{URL: "https://en.wikipedia.org/wiki/Biollante"},
		{URL: "https://en.wikipedia.org/wiki/Gigan"},
		{URL: "https://en.wikipedia.org/wiki/Rodan"},
		{URL: "https://en.wikipedia.org/wiki/Hedorah"},
		{URL: "https://en.wikipedia.org/wiki/Godzilla_vs._Destoroyah"},
		{URL: "https://en.wikipedia.org/wiki/King_Kong", Holdout: true},
	}
}

// LoadSources reads a YAML source list:
//
//	sources:
//	  - url: https://en.wikipedia.org/wiki/Godzilla
//	  - url: https://en.wikipedia.org/wiki/King_Kong
//	    holdout: true
func LoadSources(path string) ([]Source, error) {
	if path == "" {
		return nil, errors.New("sources path is required")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read sources: %w", err)
	}

	var m sourceManifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("decode sources: %w", err)
	}

	if err := ValidateSources(m.Sources); err != nil {
		return nil, err
	}

	return m.Sources, nil
}

// ValidateSources checks that the list is non-empty, every source has a URL,
// holdouts trail the list and holdout names are unique.
func ValidateSources(sources []Source) error {
	if len(sources) == 0 {
		return errors.New("source list is empty")
	}

	seenHoldout := false
	names := make(map[string]string)

	for i, s := range sources {
		if strings.TrimSpace(s.URL) == "" {
			return fmt.Errorf("source %d has empty url", i+1)
		}

		if !s.Holdout {
			if seenHoldout {
				return fmt.Errorf("source %d (%s) follows a holdout; holdouts must come last", i+1, s.URL)
			}
			continue
		}

		seenHoldout = true
		name := HoldoutName(s)
		if name == "." || name == ".." || filepath.Base(name) != name {
			return fmt.Errorf("holdout %s has output name %q; it must be a plain file name", s.URL, name)
		}
		if prev, ok := names[name]; ok {
			return fmt.Errorf("holdouts %s and %s share the output name %q", prev, s.URL, name)
		}
		names[name] = s.URL
	}

	return nil
}

// HoldoutName returns the output base name of a holdout source.
func HoldoutName(s Source) string {
	if s.Name != "" {
		return s.Name
	}
	return strings.ToLower(wiki.TitleFromURL(s.URL)) + "_eval"
}
