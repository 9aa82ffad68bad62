package grpc

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/timestamppb"

	"github.com/skysatisfy/skysatisfy/internal/application/dto"
	"github.com/skysatisfy/skysatisfy/internal/application/usecase"
	"github.com/skysatisfy/skysatisfy/internal/domain/port"
)

// Compile-time assertion that SatisfactionHandler implements SatisfactionServiceServer.
var _ SatisfactionServiceServer = (*SatisfactionHandler)(nil)

// SatisfactionHandler implements the gRPC SatisfactionServiceServer interface.
type SatisfactionHandler struct {
	UnimplementedSatisfactionServiceServer
	predict       *usecase.PredictSatisfaction
	modelInfo     *usecase.GetModelInfo
	getPrediction *usecase.GetPrediction
	logger        *slog.Logger
}

// NewSatisfactionHandler creates a new gRPC handler.
func NewSatisfactionHandler(
	predict *usecase.PredictSatisfaction,
	modelInfo *usecase.GetModelInfo,
	getPrediction *usecase.GetPrediction,
	logger *slog.Logger,
) *SatisfactionHandler {
	return &SatisfactionHandler{
		predict:       predict,
		modelInfo:     modelInfo,
		getPrediction: getPrediction,
		logger:        logger,
	}
}

// Proto-aligned request/response message types.

// PredictRequest represents the proto PredictRequest message. Numeric
// fields are proto3 optional so that an absent field is distinguishable
// from zero.
type PredictRequest struct {
	Age                 *int32 `json:"age"`
	FlightDistance      *int32 `json:"flight_distance"`
	EaseOfOnlineBooking *int32 `json:"ease_of_online_booking"`
	OnlineBoarding      *int32 `json:"online_boarding"`
	CustomerType        string `json:"customer_type"`
	TypeOfTravel        string `json:"type_of_travel"`
	Class               string `json:"class"`
}

// PredictResponse represents the proto PredictResponse message.
type PredictResponse struct {
	ID         string  `json:"id"`
	Verdict    string  `json:"verdict"`
	Prediction float64 `json:"prediction"`
}

// GetModelInfoRequest represents the proto GetModelInfoRequest message.
type GetModelInfoRequest struct{}

// GetModelInfoResponse represents the proto GetModelInfoResponse message.
type GetModelInfoResponse struct {
	Metrics      map[string]string `json:"metrics"`
	ModelType    string            `json:"model_type"`
	TrainingDate string            `json:"training_date"`
}

// GetPredictionRequest represents the proto GetPredictionRequest message.
type GetPredictionRequest struct {
	ID string `json:"id"`
}

// PredictionMsg represents the proto Prediction message.
type PredictionMsg struct {
	Passenger      *PredictRequest        `json:"passenger"`
	CreatedAt      *timestamppb.Timestamp `json:"created_at"`
	ModelTrainedAt *timestamppb.Timestamp `json:"model_trained_at,omitempty"`
	ID             string                 `json:"id"`
	Verdict        string                 `json:"verdict"`
	Prediction     float64                `json:"prediction"`
}

// GetPredictionResponse represents the proto GetPredictionResponse message.
type GetPredictionResponse struct {
	Prediction *PredictionMsg `json:"prediction"`
}

// Predict scores one passenger.
func (h *SatisfactionHandler) Predict(ctx context.Context, req *PredictRequest) (*PredictResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	input, err := toPredictDTO(req)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}

	result, err := h.predict.Execute(ctx, input)
	if err != nil {
		if errors.Is(err, usecase.ErrInvalidInput) {
			return nil, status.Error(codes.InvalidArgument, err.Error())
		}
		h.logger.Error("failed to predict satisfaction", slog.String("error", err.Error()))
		return nil, status.Error(codes.Internal, "internal error")
	}

	return &PredictResponse{
		ID:         result.ID.String(),
		Prediction: result.Prediction,
		Verdict:    result.Verdict,
	}, nil
}

// GetModelInfo describes the served model.
func (h *SatisfactionHandler) GetModelInfo(ctx context.Context, _ *GetModelInfoRequest) (*GetModelInfoResponse, error) {
	info, err := h.modelInfo.Execute(ctx)
	if err != nil {
		h.logger.Error("failed to describe model", slog.String("error", err.Error()))
		if errors.Is(err, port.ErrModelNotFound) || errors.Is(err, port.ErrMetricsNotFound) {
			return nil, status.Error(codes.Unavailable, "model not available")
		}
		return nil, status.Error(codes.Internal, "internal error")
	}

	return &GetModelInfoResponse{
		ModelType:    info.ModelType,
		TrainingDate: info.TrainingDate,
		Metrics:      info.Metrics,
	}, nil
}

// GetPrediction reads a logged prediction back.
func (h *SatisfactionHandler) GetPrediction(ctx context.Context, req *GetPredictionRequest) (*GetPredictionResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	id, err := uuid.Parse(req.ID)
	if err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "invalid id: %v", err)
	}

	record, err := h.getPrediction.Execute(ctx, id)
	if err != nil {
		if errors.Is(err, port.ErrPredictionNotFound) {
			return nil, status.Error(codes.NotFound, "prediction not found")
		}
		h.logger.Error("failed to get prediction",
			slog.String("prediction_id", id.String()),
			slog.String("error", err.Error()),
		)
		return nil, status.Error(codes.Internal, "internal error")
	}

	msg := &PredictionMsg{
		ID:         record.ID.String(),
		Passenger:  fromPredictDTO(record.Passenger),
		Prediction: record.Prediction,
		Verdict:    record.Verdict,
		CreatedAt:  timestamppb.New(record.CreatedAt),
	}
	if record.ModelTrainedAt != nil {
		msg.ModelTrainedAt = timestamppb.New(*record.ModelTrainedAt)
	}
	return &GetPredictionResponse{Prediction: msg}, nil
}

// toPredictDTO rejects requests with absent numeric fields. Absent strings
// fail later as unknown categories.
func toPredictDTO(req *PredictRequest) (dto.PredictRequest, error) {
	var missing []string
	required := func(name string, v *int32) int {
		if v == nil {
			missing = append(missing, name)
			return 0
		}
		return int(*v)
	}

	out := dto.PredictRequest{
		CustomerType:        req.CustomerType,
		Age:                 required("age", req.Age),
		TypeOfTravel:        req.TypeOfTravel,
		FlightDistance:      required("flight_distance", req.FlightDistance),
		EaseOfOnlineBooking: required("ease_of_online_booking", req.EaseOfOnlineBooking),
		OnlineBoarding:      required("online_boarding", req.OnlineBoarding),
		Class:               req.Class,
	}
	if len(missing) > 0 {
		return dto.PredictRequest{}, fmt.Errorf("missing required fields: %s", strings.Join(missing, ", "))
	}
	return out, nil
}

func fromPredictDTO(p dto.PredictRequest) *PredictRequest {
	return &PredictRequest{
		CustomerType:        p.CustomerType,
		Age:                 int32Ptr(p.Age),
		TypeOfTravel:        p.TypeOfTravel,
		FlightDistance:      int32Ptr(p.FlightDistance),
		EaseOfOnlineBooking: int32Ptr(p.EaseOfOnlineBooking),
		OnlineBoarding:      int32Ptr(p.OnlineBoarding),
		Class:               p.Class,
	}
}

func int32Ptr(v int) *int32 {
	n := int32(v)
	return &n
}
