package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/skysatisfy/skysatisfy/internal/domain/model"
	"github.com/skysatisfy/skysatisfy/internal/domain/port"
	"github.com/skysatisfy/skysatisfy/internal/domain/valueobject"
)

// Querier abstracts pgxpool.Pool and pgx.Tx so that the repository can run
// against either a pool or a transaction.
type Querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// PredictionRepository implements port.PredictionRepository using PostgreSQL.
type PredictionRepository struct {
	db Querier
}

// NewPredictionRepository creates a new PostgreSQL-backed prediction log.
func NewPredictionRepository(db Querier) *PredictionRepository {
	return &PredictionRepository{db: db}
}

// Save inserts a prediction. Saving the same id twice is a no-op.
func (r *PredictionRepository) Save(ctx context.Context, p *model.Prediction) error {
	query := `
		INSERT INTO predictions (
			id, customer_type, age, type_of_travel, flight_distance,
			ease_of_online_booking, online_boarding, class,
			score, verdict, model_trained_at, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		ON CONFLICT (id) DO NOTHING
	`

	passenger := p.Passenger()
	_, err := r.db.Exec(ctx, query,
		p.ID(),
		passenger.CustomerType.String(),
		passenger.Age,
		passenger.TypeOfTravel.String(),
		passenger.FlightDistance,
		passenger.EaseOfOnlineBooking,
		passenger.OnlineBoarding,
		passenger.Class.String(),
		p.Score(),
		p.Verdict().String(),
		nullableTime(p.ModelTrainedAt()),
		p.CreatedAt(),
	)
	if err != nil {
		return fmt.Errorf("failed to save prediction: %w", err)
	}
	return nil
}

// FindByID retrieves a prediction by its unique identifier.
func (r *PredictionRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Prediction, error) {
	query := `
		SELECT id, customer_type, age, type_of_travel, flight_distance,
			ease_of_online_booking, online_boarding, class,
			score, verdict, model_trained_at, created_at
		FROM predictions
		WHERE id = $1
	`

	var (
		predictionID   uuid.UUID
		customerType   string
		age            int
		typeOfTravel   string
		flightDistance int
		easeOfBooking  int
		onlineBoarding int
		class          string
		score          float64
		verdictStr     string
		modelTrainedAt *time.Time
		createdAt      time.Time
	)

	err := r.db.QueryRow(ctx, query, id).Scan(
		&predictionID, &customerType, &age, &typeOfTravel, &flightDistance,
		&easeOfBooking, &onlineBoarding, &class,
		&score, &verdictStr, &modelTrainedAt, &createdAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, port.ErrPredictionNotFound
		}
		return nil, fmt.Errorf("failed to scan prediction: %w", err)
	}

	passenger, err := model.NewPassenger(
		customerType, age, typeOfTravel, flightDistance,
		easeOfBooking, onlineBoarding, class,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to parse stored passenger: %w", err)
	}

	verdict, err := valueobject.VerdictFromString(verdictStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse verdict: %w", err)
	}

	var trainedAt time.Time
	if modelTrainedAt != nil {
		trainedAt = *modelTrainedAt
	}

	return model.ReconstructPrediction(predictionID, passenger, score, verdict, trainedAt, createdAt), nil
}

// nullableTime stores the zero time as NULL.
func nullableTime(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}
