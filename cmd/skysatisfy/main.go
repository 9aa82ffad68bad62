package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/skysatisfy/skysatisfy/internal/infrastructure/config"
	"github.com/skysatisfy/skysatisfy/pkg/observability"
)

// app carries what every subcommand needs once flags are parsed.
type app struct {
	v      *viper.Viper
	cfg    *config.Config
	logger *slog.Logger
	fs     afero.Fs
}

func newRootCmd(a *app) *cobra.Command {
	var cfgFile string

	rootCmd := &cobra.Command{
		Use:   "skysatisfy",
		Short: "Train, evaluate and query the passenger satisfaction model",
		Long: `skysatisfy trains a gradient boosted tree classifier on airline passenger
survey data, cross-validates it, and scores individual passengers.

Settings come from defaults, an optional config file and SKYSATISFY-style
environment variables; flags override all of them.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			bindFlags(a.v, cmd.Flags(), flagKeys)
			if cfgFile != "" {
				if err := os.Setenv(config.FileEnv, cfgFile); err != nil {
					return err
				}
			}
			cfg, err := config.LoadFrom(a.v)
			if err != nil {
				return err
			}
			a.cfg = cfg
			a.logger = observability.InitLogger(observability.LogConfig{
				Level:   cfg.LogLevel,
				Format:  cfg.LogFormat,
				Service: "skysatisfy",
				Output:  cmd.ErrOrStderr(),
			})
			return nil
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default: $"+config.FileEnv+")")
	flags.String("log-level", "", "log level (debug, info, warn, error)")
	flags.String("log-format", "", "log format (text, json)")
	flags.String("data", "", "training CSV path")
	flags.String("model-dir", "", "directory holding model.bin and metrics.json")

	rootCmd.AddCommand(trainCmd(a))
	rootCmd.AddCommand(evaluateCmd(a))
	rootCmd.AddCommand(filterCmd(a))
	rootCmd.AddCommand(predictCmd(a))
	rootCmd.AddCommand(migrateCmd(a))
	rootCmd.AddCommand(eventsCmd(a))

	return rootCmd
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	a := &app{v: viper.New(), fs: afero.NewOsFs()}
	if err := newRootCmd(a).ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
