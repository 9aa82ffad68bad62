package main

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/spf13/cobra"

	"github.com/skysatisfy/skysatisfy/internal/infrastructure/messaging"
)

func eventsCmd(a *app) *cobra.Command {
	var group string

	cmd := &cobra.Command{
		Use:   "events",
		Short: "Print prediction and training events from Kafka as JSON lines",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if len(a.cfg.KafkaBrokers) == 0 {
				return errors.New("no brokers configured: set --brokers or KAFKA_BROKERS")
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			consumer := messaging.NewKafkaConsumer(a.cfg.KafkaBrokers, a.cfg.KafkaTopic, group,
				func(_ context.Context, env messaging.Envelope) error {
					return enc.Encode(env)
				}, a.logger)
			defer func() { _ = consumer.Close() }()

			return consumer.Start(cmd.Context())
		},
	}

	cmd.Flags().String("brokers", "", "comma-separated Kafka brokers")
	cmd.Flags().String("topic", "", "events topic")
	cmd.Flags().StringVar(&group, "group", "skysatisfy-cli", "consumer group")
	return cmd
}
