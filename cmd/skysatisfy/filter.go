package main

import (
	"github.com/spf13/cobra"

	"github.com/skysatisfy/skysatisfy/internal/infrastructure/dataset"
)

func filterCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "filter <input.csv> <output.csv>",
		Short: "Keep only the columns the model uses",
		Long: `Filter copies the label and the seven feature columns from a raw survey
export into a new CSV, leaving every other column behind.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := dataset.Filter(a.fs, args[0], args[1])
			if err != nil {
				return err
			}
			a.logger.Info("filtered dataset", "path", result.Path, "file_size", result.FileSize)
			return printJSON(cmd.OutOrStdout(), result)
		},
	}
}
