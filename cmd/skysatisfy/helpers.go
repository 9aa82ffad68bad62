package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"slices"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/skysatisfy/skysatisfy/internal/infrastructure/config"
	"github.com/skysatisfy/skysatisfy/internal/ml/evaluation"
)

// flagKeys maps config keys to the flags that override them.
var flagKeys = map[string]string{
	config.KeyLogLevel:            "log-level",
	config.KeyLogFormat:           "log-format",
	config.KeyDatasetPath:         "data",
	config.KeyModelDir:            "model-dir",
	config.KeyDatabaseURL:         "database-url",
	config.KeyKafkaBrokers:        "brokers",
	config.KeyKafkaTopic:          "topic",
	config.KeyBoostEta:            "eta",
	config.KeyBoostMaxDepth:       "max-depth",
	config.KeyBoostMinChildWeight: "min-child-weight",
	config.KeyBoostRounds:         "rounds",
	config.KeyBoostNThread:        "nthread",
	config.KeyBoostSeed:           "seed",
	config.KeyCVFolds:             "folds",
	config.KeyCVSeed:              "cv-seed",
}

// bindFlags binds the flags the running command defines to their config
// keys. A flag only takes precedence when it was set on the command line.
func bindFlags(v *viper.Viper, flags *pflag.FlagSet, keys map[string]string) {
	for key, name := range keys {
		if f := flags.Lookup(name); f != nil {
			_ = v.BindPFlag(key, f)
		}
	}
}

func newProgressBar(w io.Writer, total int, description string) *progressbar.ProgressBar {
	return progressbar.NewOptions(total,
		progressbar.OptionSetWriter(w),
		progressbar.OptionShowCount(),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionSetWidth(40),
		progressbar.OptionSetDescription(description),
		progressbar.OptionOnCompletion(func() {
			_, _ = fmt.Fprintln(w)
		}),
	)
}

// advance moves bar to done, which callbacks report as a 1-based count.
func advance(bar *progressbar.ProgressBar, done int) {
	if err := bar.Set(done); err != nil {
		slog.Warn("failed to update progress bar", "error", err)
	}
}

// printSummary writes one "metric: mean ± std" line per metric in a stable order.
func printSummary(w io.Writer, summary evaluation.Summary) {
	names := make([]string, 0, len(summary))
	for name := range summary {
		names = append(names, name)
	}
	slices.Sort(names)
	for _, name := range names {
		_, _ = fmt.Fprintf(w, "%-10s %s\n", name+":", summary[name])
	}
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
