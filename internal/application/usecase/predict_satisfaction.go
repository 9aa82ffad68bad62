package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/skysatisfy/skysatisfy/internal/application/dto"
	"github.com/skysatisfy/skysatisfy/internal/domain/model"
	"github.com/skysatisfy/skysatisfy/internal/domain/port"
	"github.com/skysatisfy/skysatisfy/internal/domain/service"
	"github.com/skysatisfy/skysatisfy/pkg/observability"
)

var tracer = otel.Tracer("github.com/skysatisfy/skysatisfy/internal/application/usecase")

// PredictSatisfaction is the use case for scoring one passenger.
type PredictSatisfaction struct {
	scorer         service.Scorer
	modelTrainedAt time.Time
	repo           port.PredictionRepository
	publisher      port.EventPublisher
	instruments    *observability.Instruments
	logger         *slog.Logger
}

// NewPredictSatisfaction creates a new PredictSatisfaction use case.
// modelTrainedAt is stamped on every prediction the scorer makes.
func NewPredictSatisfaction(
	scorer service.Scorer,
	modelTrainedAt time.Time,
	repo port.PredictionRepository,
	publisher port.EventPublisher,
	instruments *observability.Instruments,
	logger *slog.Logger,
) *PredictSatisfaction {
	return &PredictSatisfaction{
		scorer:         scorer,
		modelTrainedAt: modelTrainedAt,
		repo:           repo,
		publisher:      publisher,
		instruments:    instruments,
		logger:         logger,
	}
}

// Execute validates, encodes and scores the passenger. Recording the
// prediction and publishing its event are best effort: failures are logged
// and do not fail the request.
func (uc *PredictSatisfaction) Execute(ctx context.Context, req dto.PredictRequest) (dto.PredictResponse, error) {
	ctx, span := tracer.Start(ctx, "PredictSatisfaction")
	defer span.End()
	start := time.Now()

	passenger, err := model.NewPassenger(
		req.CustomerType,
		req.Age,
		req.TypeOfTravel,
		req.FlightDistance,
		req.EaseOfOnlineBooking,
		req.OnlineBoarding,
		req.Class,
	)
	if err != nil {
		span.SetStatus(codes.Error, "invalid input")
		return dto.PredictResponse{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	score, err := uc.scorer.Score(service.Encode(passenger))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "scoring failed")
		return dto.PredictResponse{}, fmt.Errorf("failed to score passenger: %w", err)
	}

	prediction, err := model.NewPrediction(passenger, score, uc.modelTrainedAt)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "invalid score")
		return dto.PredictResponse{}, fmt.Errorf("failed to create prediction: %w", err)
	}
	span.SetAttributes(
		attribute.String("prediction.id", prediction.ID().String()),
		attribute.Float64("prediction.score", score),
		attribute.String("prediction.verdict", prediction.Verdict().String()),
	)

	if err := uc.repo.Save(ctx, prediction); err != nil {
		uc.logger.Warn("failed to record prediction",
			slog.String("prediction_id", prediction.ID().String()),
			slog.String("error", err.Error()),
		)
	}

	if events := prediction.ClearEvents(); len(events) > 0 {
		if err := uc.publisher.Publish(ctx, events...); err != nil {
			uc.logger.Warn("failed to publish prediction events",
				slog.String("prediction_id", prediction.ID().String()),
				slog.String("error", err.Error()),
			)
		}
	}

	uc.instruments.RecordPrediction(ctx, prediction.Verdict().String(), time.Since(start))

	return dto.FromPrediction(prediction), nil
}
