package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/skysatisfy/skysatisfy/internal/application/dto"
	"github.com/skysatisfy/skysatisfy/internal/application/usecase"
	"github.com/skysatisfy/skysatisfy/internal/infrastructure/artifact"
	"github.com/skysatisfy/skysatisfy/internal/infrastructure/dataset"
	"github.com/skysatisfy/skysatisfy/internal/infrastructure/memory"
	"github.com/skysatisfy/skysatisfy/internal/infrastructure/messaging"
	"github.com/skysatisfy/skysatisfy/internal/infrastructure/ml"
)

func predictCmd(a *app) *cobra.Command {
	var (
		input string
		req   dto.PredictRequest
	)

	cmd := &cobra.Command{
		Use:   "predict",
		Short: "Score one passenger with the saved model",
		Long: `Predict loads model.bin from the model directory and scores a single
passenger given either as flags or as a JSON file with the same fields as
POST /predict. Categorical values may be given in raw survey form, for
example "Loyal Customer" or "Eco Plus".`,
		Example: `  skysatisfy predict --customer-type "Loyal Customer" --age 35 \
    --type-of-travel "Business travel" --flight-distance 1200 \
    --ease-of-online-booking 4 --online-boarding 5 --class Business`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if input != "" {
				raw, err := afero.ReadFile(a.fs, input)
				if err != nil {
					return fmt.Errorf("read %s: %w", input, err)
				}
				if err := json.Unmarshal(raw, &req); err != nil {
					return fmt.Errorf("decode %s: %w", input, err)
				}
			}
			req.CustomerType = dataset.Normalize(req.CustomerType)
			req.TypeOfTravel = dataset.Normalize(req.TypeOfTravel)
			req.Class = dataset.Normalize(req.Class)

			models := artifact.NewModelStore(a.fs, a.cfg.ModelPath())
			booster, err := models.Load(cmd.Context())
			if err != nil {
				return err
			}
			trainedAt, err := models.TrainedAt(cmd.Context())
			if err != nil {
				return err
			}
			scorer, err := ml.NewBoosterScorer(booster)
			if err != nil {
				return err
			}
			repo, err := memory.NewPredictionRepository(1)
			if err != nil {
				return err
			}

			predict := usecase.NewPredictSatisfaction(scorer, trainedAt, repo, messaging.NewLogPublisher(a.logger), nil, a.logger)
			resp, err := predict.Execute(cmd.Context(), req)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), resp)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&input, "input", "f", "", "JSON file with the passenger fields")
	flags.StringVar(&req.CustomerType, "customer-type", "", "loyal_customer or disloyal_customer")
	flags.IntVar(&req.Age, "age", 0, "passenger age (0-120)")
	flags.StringVar(&req.TypeOfTravel, "type-of-travel", "", "business_travel or personal_travel")
	flags.IntVar(&req.FlightDistance, "flight-distance", 0, "flight distance")
	flags.IntVar(&req.EaseOfOnlineBooking, "ease-of-online-booking", 0, "rating (0-5)")
	flags.IntVar(&req.OnlineBoarding, "online-boarding", 0, "rating (0-5)")
	flags.StringVar(&req.Class, "class", "", "business, eco or eco_plus")
	cmd.MarkFlagsMutuallyExclusive("input", "customer-type")

	return cmd
}
