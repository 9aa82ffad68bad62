package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/skysatisfy/skysatisfy/internal/application/usecase"
	"github.com/skysatisfy/skysatisfy/internal/infrastructure/artifact"
	"github.com/skysatisfy/skysatisfy/internal/infrastructure/dataset"
	"github.com/skysatisfy/skysatisfy/internal/infrastructure/messaging"
)

// addModelFlags registers the booster and cross-validation flags shared by
// train and evaluate.
func addModelFlags(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.Float64("eta", 0, "learning rate")
	flags.Int("max-depth", 0, "maximum tree depth")
	flags.Float64("min-child-weight", 0, "minimum hessian sum per child")
	flags.Int("rounds", 0, "number of boosting rounds")
	flags.Int("nthread", 0, "split search workers (0 = all CPUs)")
	flags.Uint64("seed", 0, "booster sampling seed")
	flags.Int("folds", 0, "cross-validation folds")
	flags.Uint64("cv-seed", 0, "fold shuffling seed")
	flags.Bool("json", false, "print the result as JSON")
	flags.Bool("no-progress", false, "disable progress bars")
}

func trainCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "train",
		Short: "Train the model and write model and metrics artifacts",
		Long: `Train fits the booster on every row of the dataset, cross-validates the
same parameters, and writes model.bin and metrics.json to the model directory.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runTrain(a, cmd)
		},
	}
	addModelFlags(cmd)
	return cmd
}

func runTrain(a *app, cmd *cobra.Command) error {
	asJSON, _ := cmd.Flags().GetBool("json")
	noProgress, _ := cmd.Flags().GetBool("no-progress")
	cfg := a.cfg

	trainer := usecase.NewTrainModel(
		dataset.NewCSVSource(a.fs, cfg.DatasetPath, a.logger),
		artifact.NewModelStore(a.fs, cfg.ModelPath()),
		artifact.NewMetricsStore(a.fs, cfg.MetricsPath()),
		messaging.NewLogPublisher(a.logger),
		nil,
		a.logger,
		cfg.Boost,
		cfg.KFold,
	)

	var progress usecase.Progress
	if !noProgress {
		rounds := newProgressBar(cmd.ErrOrStderr(), cfg.Boost.NumBoostRound, "training")
		folds := newProgressBar(cmd.ErrOrStderr(), cfg.KFold.Splits, "cross-validating")
		progress = usecase.Progress{
			OnRound: func(round, _ int) { advance(rounds, round) },
			OnFold:  func(fold, _ int) { advance(folds, fold) },
		}
	}

	result, err := trainer.Execute(cmd.Context(), progress)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if asJSON {
		return printJSON(out, result)
	}
	_, _ = fmt.Fprintf(out, "trained %d trees on %d rows, saved to %s\n", result.Trees, result.Rows, cfg.ModelPath())
	printSummary(out, result.Summary)
	return nil
}
