package config

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

type Config struct {
	LogLevel string       `mapstructure:"log_level"`
	Paths    PathsConfig  `mapstructure:"paths"`
	Fetch    FetchConfig  `mapstructure:"fetch"`
	Corpus   CorpusConfig `mapstructure:"corpus"`
	Eval     EvalConfig   `mapstructure:"eval"`
}

type PathsConfig struct {
	DataDir         string `mapstructure:"data_dir"`
	ResultsDir      string `mapstructure:"results_dir"`
	SourcesFile     string `mapstructure:"sources_file"`
	PredictionsFile string `mapstructure:"predictions_file"`
}

type FetchConfig struct {
	UserAgent      string `mapstructure:"user_agent"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds"`
	Selector       string `mapstructure:"selector"`
}

type CorpusConfig struct {
	StageSuffix string `mapstructure:"stage_suffix"`
	UnicodeForm string `mapstructure:"unicode_form"`
	Progress    bool   `mapstructure:"progress"`
}

type EvalConfig struct {
	GroundTruth  string   `mapstructure:"ground_truth"`
	EvalName     string   `mapstructure:"eval_name"`
	Variants     []string `mapstructure:"variants"`
	DistanceNorm string   `mapstructure:"distance_norm"`
	ChartPath    string   `mapstructure:"chart_path"`
}

type LoadOptions struct {
	Cmd        flagBinder
	ConfigFile string
	Defaults   Config
}

type flagBinder interface {
	Flags() *pflag.FlagSet
}

func DefaultConfig() Config {
	return Config{
		LogLevel: "info",
		Paths: PathsConfig{
			DataDir:         "data",
			ResultsDir:      "results",
			SourcesFile:     "",
			PredictionsFile: "",
		},
		Fetch: FetchConfig{
			UserAgent:      "kaijucorpus/1.0 (research corpus builder)",
			TimeoutSeconds: 30,
			Selector:       "#bodyContent",
		},
		Corpus: CorpusConfig{
			StageSuffix: "kaiju_corpus",
			UnicodeForm: UnicodeNone,
			Progress:    false,
		},
		Eval: EvalConfig{
			GroundTruth:  "king_kong_eval.full",
			EvalName:     "king_kong",
			Variants:     []string{"L2SVM", "L1SVM"},
			DistanceNorm: DistanceNormFilename,
			ChartPath:    "results/eval_standard.png",
		},
	}
}

func RegisterFlags(fs *pflag.FlagSet, defaults Config) {
	fs.String("log-level", defaults.LogLevel, "Log level: debug|info|warn|error")
	fs.String("paths-data-dir", defaults.Paths.DataDir, "Directory for raw, tagged and prediction files")
	fs.String("paths-results-dir", defaults.Paths.ResultsDir, "Directory for evaluation output")
	fs.String("paths-sources-file", defaults.Paths.SourcesFile, "YAML source list (empty = built-in kaiju list)")
	fs.String("paths-predictions-file", defaults.Paths.PredictionsFile, "YAML prediction records (empty = discover in data dir)")
	fs.String("fetch-user-agent", defaults.Fetch.UserAgent, "User-Agent sent with article requests")
	fs.Int("fetch-timeout-seconds", defaults.Fetch.TimeoutSeconds, "Per-article request timeout (0 = none)")
	fs.String("fetch-selector", defaults.Fetch.Selector, "CSS selector of the article body")
	fs.String("corpus-stage-suffix", defaults.Corpus.StageSuffix, "Base name suffix of cumulative corpus files")
	fs.String("corpus-unicode-form", defaults.Corpus.UnicodeForm, "Unicode normalization of article text: none|nfc|nfkc")
	fs.Bool("corpus-progress", defaults.Corpus.Progress, "Render a progress bar while generating")
	fs.String("eval-ground-truth", defaults.Eval.GroundTruth, "Tagged ground-truth file, relative to the data dir")
	fs.String("eval-name", defaults.Eval.EvalName, "Evaluation document name used in prediction file names")
	fs.StringSlice("eval-variants", defaults.Eval.Variants, "Model variants to evaluate")
	fs.String("eval-distance-norm", defaults.Eval.DistanceNorm, "Edit distance denominator: filename|content")
	fs.String("eval-chart-path", defaults.Eval.ChartPath, "Output path of the evaluation chart")
}

func Load(opts LoadOptions) (Config, error) {
	v := viper.New()

	setDefaults(v, opts.Defaults)
	if opts.Cmd != nil {
		if err := bindFlags(v, opts.Cmd.Flags()); err != nil {
			return Config{}, err
		}
	}

	v.SetEnvPrefix("KAIJU")
	replacer := strings.NewReplacer("-", "_", ".", "_", "__", "_")
	v.SetEnvKeyReplacer(replacer)
	v.AutomaticEnv()

	if opts.ConfigFile != "" {
		v.SetConfigFile(opts.ConfigFile)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
	} else {
		v.SetConfigName("kaijucorpus")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return Config{}, fmt.Errorf("read config file: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}

	var err error
	if cfg.Corpus.UnicodeForm, err = NormalizeUnicodeForm(cfg.Corpus.UnicodeForm); err != nil {
		return Config{}, err
	}
	if cfg.Eval.DistanceNorm, err = NormalizeDistanceNorm(cfg.Eval.DistanceNorm); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper, c Config) {
	v.SetDefault("log_level", c.LogLevel)
	v.SetDefault("paths.data_dir", c.Paths.DataDir)
	v.SetDefault("paths.results_dir", c.Paths.ResultsDir)
	v.SetDefault("paths.sources_file", c.Paths.SourcesFile)
	v.SetDefault("paths.predictions_file", c.Paths.PredictionsFile)
	v.SetDefault("fetch.user_agent", c.Fetch.UserAgent)
	v.SetDefault("fetch.timeout_seconds", c.Fetch.TimeoutSeconds)
	v.SetDefault("fetch.selector", c.Fetch.Selector)
	v.SetDefault("corpus.stage_suffix", c.Corpus.StageSuffix)
	v.SetDefault("corpus.unicode_form", c.Corpus.UnicodeForm)
	v.SetDefault("corpus.progress", c.Corpus.Progress)
	v.SetDefault("eval.ground_truth", c.Eval.GroundTruth)
	v.SetDefault("eval.eval_name", c.Eval.EvalName)
	v.SetDefault("eval.variants", c.Eval.Variants)
	v.SetDefault("eval.distance_norm", c.Eval.DistanceNorm)
	v.SetDefault("eval.chart_path", c.Eval.ChartPath)
}

// flagKeys maps each config key to the persistent flag that overrides it.
var flagKeys = map[string]string{
	"log_level":              "log-level",
	"paths.data_dir":         "paths-data-dir",
	"paths.results_dir":      "paths-results-dir",
	"paths.sources_file":     "paths-sources-file",
	"paths.predictions_file": "paths-predictions-file",
	"fetch.user_agent":       "fetch-user-agent",
	"fetch.timeout_seconds":  "fetch-timeout-seconds",
	"fetch.selector":         "fetch-selector",
	"corpus.stage_suffix":    "corpus-stage-suffix",
	"corpus.unicode_form":    "corpus-unicode-form",
	"corpus.progress":        "corpus-progress",
	"eval.ground_truth":      "eval-ground-truth",
	"eval.eval_name":         "eval-name",
	"eval.variants":          "eval-variants",
	"eval.distance_norm":     "eval-distance-norm",
	"eval.chart_path":        "eval-chart-path",
}

// bindFlags binds registered flags to their nested keys so that a flag only
// wins over the config file and environment when it was set explicitly.
func bindFlags(v *viper.Viper, fs *pflag.FlagSet) error {
	for key, name := range flagKeys {
		f := fs.Lookup(name)
		if f == nil {
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			return fmt.Errorf("bind flag %s: %w", name, err)
		}
	}
	return nil
}
