package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/skysatisfy/skysatisfy/internal/application/usecase"
	"github.com/skysatisfy/skysatisfy/internal/infrastructure/dataset"
)

func evaluateCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "evaluate",
		Short: "Cross-validate the model parameters without saving anything",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			asJSON, _ := cmd.Flags().GetBool("json")
			noProgress, _ := cmd.Flags().GetBool("no-progress")

			var progress usecase.Progress
			if !noProgress {
				folds := newProgressBar(cmd.ErrOrStderr(), a.cfg.KFold.Splits, "cross-validating")
				progress.OnFold = func(fold, _ int) { advance(folds, fold) }
			}

			evaluator := usecase.NewEvaluateModel(
				dataset.NewCSVSource(a.fs, a.cfg.DatasetPath, a.logger),
				a.cfg.Boost,
				a.cfg.KFold,
			)
			result, err := evaluator.Execute(cmd.Context(), progress)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if asJSON {
				return printJSON(out, result)
			}
			_, _ = fmt.Fprintf(out, "%d-fold cross-validation on %d rows\n", result.Metrics.Folds(), result.Rows)
			printSummary(out, result.Summary)
			return nil
		},
	}
	addModelFlags(cmd)
	return cmd
}
