package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/skysatisfy/skysatisfy/internal/domain/model"
	"github.com/skysatisfy/skysatisfy/internal/ml/evaluation"
)

// ScoreDecimals is the precision a score is reported with.
const ScoreDecimals = 3

// PredictRequest is the input DTO for the PredictSatisfaction use case.
// Categorical values are expected in normalized form (e.g. "loyal_customer").
type PredictRequest struct {
	CustomerType        string `json:"customer_type"`
	TypeOfTravel        string `json:"type_of_travel"`
	Class               string `json:"class"`
	Age                 int    `json:"age"`
	FlightDistance      int    `json:"flight_distance"`
	EaseOfOnlineBooking int    `json:"ease_of_online_booking"`
	OnlineBoarding      int    `json:"online_boarding"`
}

// PredictResponse is the output DTO returned after scoring a passenger.
type PredictResponse struct {
	ID         uuid.UUID `json:"-"`
	Verdict    string    `json:"verdict"`
	Prediction float64   `json:"prediction"`
}

// PredictionRecord is a prediction read back from the prediction log.
// ModelTrainedAt is omitted when the prediction was made by a model of
// unknown age.
type PredictionRecord struct {
	CreatedAt      time.Time      `json:"created_at"`
	ModelTrainedAt *time.Time     `json:"model_trained_at,omitempty"`
	Passenger      PredictRequest `json:"passenger"`
	Verdict        string         `json:"verdict"`
	Prediction     float64        `json:"prediction"`
	ID             uuid.UUID      `json:"id"`
}

// RoundScore rounds a probability to ScoreDecimals places, half to even on
// the exact binary value.
func RoundScore(score float64) float64 {
	rounded, _ := evaluation.RoundFixed(score, ScoreDecimals).Float64()
	return rounded
}

// FromPassenger maps a domain passenger back to its request form.
func FromPassenger(p model.Passenger) PredictRequest {
	return PredictRequest{
		CustomerType:        p.CustomerType.String(),
		Age:                 p.Age,
		TypeOfTravel:        p.TypeOfTravel.String(),
		FlightDistance:      p.FlightDistance,
		EaseOfOnlineBooking: p.EaseOfOnlineBooking,
		OnlineBoarding:      p.OnlineBoarding,
		Class:               p.Class.String(),
	}
}

// FromPrediction maps a prediction aggregate to the scoring response.
func FromPrediction(p *model.Prediction) PredictResponse {
	return PredictResponse{
		ID:         p.ID(),
		Prediction: RoundScore(p.Score()),
		Verdict:    p.Verdict().String(),
	}
}

// RecordFromPrediction maps a prediction aggregate to its log record.
func RecordFromPrediction(p *model.Prediction) PredictionRecord {
	rec := PredictionRecord{
		ID:         p.ID(),
		Prediction: RoundScore(p.Score()),
		Verdict:    p.Verdict().String(),
		Passenger:  FromPassenger(p.Passenger()),
		CreatedAt:  p.CreatedAt(),
	}
	if trainedAt := p.ModelTrainedAt(); !trainedAt.IsZero() {
		rec.ModelTrainedAt = &trainedAt
	}
	return rec
}
