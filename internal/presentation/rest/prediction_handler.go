package rest

import (
	"encoding/json"
	"errors"
	"log/slog"
	"math"
	"net/http"

	"github.com/google/uuid"

	"github.com/skysatisfy/skysatisfy/internal/application/dto"
	"github.com/skysatisfy/skysatisfy/internal/application/usecase"
	"github.com/skysatisfy/skysatisfy/internal/domain/port"
)

// PredictionIDHeader carries the id under which a prediction was logged.
const PredictionIDHeader = "X-Prediction-ID"

const (
	msgBadRequest       = "bad request"
	msgValidationFailed = "validation failed"
	msgInternal         = "internal server error"
)

// PredictionHandler serves the scoring and model description endpoints.
type PredictionHandler struct {
	predict       *usecase.PredictSatisfaction
	modelInfo     *usecase.GetModelInfo
	getPrediction *usecase.GetPrediction
	validator     *RequestValidator
	logger        *slog.Logger
}

// NewPredictionHandler creates a new prediction handler.
func NewPredictionHandler(
	predict *usecase.PredictSatisfaction,
	modelInfo *usecase.GetModelInfo,
	getPrediction *usecase.GetPrediction,
	validator *RequestValidator,
	logger *slog.Logger,
) *PredictionHandler {
	return &PredictionHandler{
		predict:       predict,
		modelInfo:     modelInfo,
		getPrediction: getPrediction,
		validator:     validator,
		logger:        logger,
	}
}

// RegisterRoutes registers prediction endpoints on the provided ServeMux.
func (h *PredictionHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /predict", h.Predict)
	mux.HandleFunc("GET /model/info", h.ModelInfo)
	mux.HandleFunc("GET /predictions/{id}", h.GetPrediction)
}

// predictPayload mirrors dto.PredictRequest with numeric fields decoded as
// float64, since the schema accepts integral values such as 35.0.
type predictPayload struct {
	CustomerType        string  `json:"customer_type"`
	TypeOfTravel        string  `json:"type_of_travel"`
	Class               string  `json:"class"`
	Age                 float64 `json:"age"`
	FlightDistance      float64 `json:"flight_distance"`
	EaseOfOnlineBooking float64 `json:"ease_of_online_booking"`
	OnlineBoarding      float64 `json:"online_boarding"`
}

func (p predictPayload) toRequest() (dto.PredictRequest, map[string]string) {
	fields := make(map[string]string)
	toInt := func(name string, v float64) int {
		if math.Abs(v) > math.MaxInt32 {
			fields[name] = "Number too large."
			return 0
		}
		return int(v)
	}

	req := dto.PredictRequest{
		CustomerType:        p.CustomerType,
		TypeOfTravel:        p.TypeOfTravel,
		Class:               p.Class,
		Age:                 toInt("age", p.Age),
		FlightDistance:      toInt("flight_distance", p.FlightDistance),
		EaseOfOnlineBooking: toInt("ease_of_online_booking", p.EaseOfOnlineBooking),
		OnlineBoarding:      toInt("online_boarding", p.OnlineBoarding),
	}
	return req, fields
}

// Predict handles POST /predict.
func (h *PredictionHandler) Predict(w http.ResponseWriter, r *http.Request) {
	body, err := readBody(r)
	if err != nil || !json.Valid(body) {
		writeError(w, http.StatusBadRequest, msgBadRequest)
		return
	}

	fields, err := h.validator.Validate(body)
	if err != nil {
		writeError(w, http.StatusBadRequest, msgBadRequest)
		return
	}
	if len(fields) > 0 {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: msgValidationFailed, Fields: fields})
		return
	}

	var payload predictPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		writeError(w, http.StatusBadRequest, msgBadRequest)
		return
	}
	req, fields := payload.toRequest()
	if len(fields) > 0 {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: msgValidationFailed, Fields: fields})
		return
	}

	resp, err := h.predict.Execute(r.Context(), req)
	if err != nil {
		if errors.Is(err, usecase.ErrInvalidInput) {
			writeJSON(w, http.StatusBadRequest, ErrorResponse{
				Error:  msgValidationFailed,
				Fields: map[string]string{schemaField: err.Error()},
			})
			return
		}
		h.logger.Error("failed to predict satisfaction",
			slog.String("request_id", RequestIDFromContext(r.Context())),
			slog.String("error", err.Error()),
		)
		writeError(w, http.StatusInternalServerError, msgInternal)
		return
	}

	w.Header().Set(PredictionIDHeader, resp.ID.String())
	writeJSON(w, http.StatusOK, resp)
}

// ModelInfo handles GET /model/info.
func (h *PredictionHandler) ModelInfo(w http.ResponseWriter, r *http.Request) {
	info, err := h.modelInfo.Execute(r.Context())
	if err != nil {
		h.logger.Error("failed to describe model",
			slog.String("request_id", RequestIDFromContext(r.Context())),
			slog.String("error", err.Error()),
		)
		if errors.Is(err, port.ErrModelNotFound) || errors.Is(err, port.ErrMetricsNotFound) {
			writeError(w, http.StatusServiceUnavailable, "model not available")
			return
		}
		writeError(w, http.StatusInternalServerError, msgInternal)
		return
	}

	writeJSON(w, http.StatusOK, info)
}

// GetPrediction handles GET /predictions/{id}.
func (h *PredictionHandler) GetPrediction(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid prediction id")
		return
	}

	record, err := h.getPrediction.Execute(r.Context(), id)
	if err != nil {
		if errors.Is(err, port.ErrPredictionNotFound) {
			writeError(w, http.StatusNotFound, "prediction not found")
			return
		}
		h.logger.Error("failed to get prediction",
			slog.String("prediction_id", id.String()),
			slog.String("error", err.Error()),
		)
		writeError(w, http.StatusInternalServerError, msgInternal)
		return
	}

	writeJSON(w, http.StatusOK, record)
}
