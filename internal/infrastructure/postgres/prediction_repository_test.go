package postgres

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skysatisfy/skysatisfy/internal/domain/model"
	"github.com/skysatisfy/skysatisfy/internal/domain/port"
	"github.com/skysatisfy/skysatisfy/internal/infrastructure/postgres/migrations"
)

// fakeDB stores the arguments of the last insert and replays them as a row.
type fakeDB struct {
	rows    map[uuid.UUID][]any
	execErr error
}

func newFakeDB() *fakeDB {
	return &fakeDB{rows: make(map[uuid.UUID][]any)}
}

func (f *fakeDB) Exec(_ context.Context, _ string, args ...any) (pgconn.CommandTag, error) {
	if f.execErr != nil {
		return pgconn.CommandTag{}, f.execErr
	}
	id := args[0].(uuid.UUID)
	if _, ok := f.rows[id]; !ok {
		f.rows[id] = args
	}
	return pgconn.NewCommandTag("INSERT 0 1"), nil
}

func (f *fakeDB) QueryRow(_ context.Context, _ string, args ...any) pgx.Row {
	values, ok := f.rows[args[0].(uuid.UUID)]
	if !ok {
		return fakeRow{err: pgx.ErrNoRows}
	}
	return fakeRow{values: values}
}

type fakeRow struct {
	err    error
	values []any
}

func (r fakeRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	if len(dest) != len(r.values) {
		return fmt.Errorf("scan: %d destinations for %d values", len(dest), len(r.values))
	}
	for i, d := range dest {
		switch p := d.(type) {
		case *uuid.UUID:
			*p = r.values[i].(uuid.UUID)
		case *string:
			*p = r.values[i].(string)
		case *int:
			*p = r.values[i].(int)
		case *float64:
			*p = r.values[i].(float64)
		case *time.Time:
			*p = r.values[i].(time.Time)
		case **time.Time:
			*p = r.values[i].(*time.Time)
		default:
			return fmt.Errorf("scan: unsupported destination %T", d)
		}
	}
	return nil
}

var modelTrainedAt = time.Date(2024, 3, 9, 12, 0, 0, 0, time.UTC)

func testPrediction(t *testing.T, trainedAt time.Time) *model.Prediction {
	t.Helper()
	passenger, err := model.NewPassenger("loyal_customer", 35, "business_travel", 1200, 4, 5, "business")
	require.NoError(t, err)
	p, err := model.NewPrediction(passenger, 0.87, trainedAt)
	require.NoError(t, err)
	return p
}

func TestNewPredictionRepository(t *testing.T) {
	repo := NewPredictionRepository(nil)
	assert.NotNil(t, repo)
	assert.Nil(t, repo.db)
}

func TestPredictionRepository_SaveAndFind(t *testing.T) {
	ctx := context.Background()
	repo := NewPredictionRepository(newFakeDB())
	p := testPrediction(t, modelTrainedAt)

	require.NoError(t, repo.Save(ctx, p))

	found, err := repo.FindByID(ctx, p.ID())
	require.NoError(t, err)
	assert.Equal(t, p.ID(), found.ID())
	assert.Equal(t, p.Passenger(), found.Passenger())
	assert.Equal(t, p.Score(), found.Score())
	assert.True(t, p.Verdict().Equal(found.Verdict()))
	assert.Equal(t, modelTrainedAt, found.ModelTrainedAt())
	assert.Equal(t, p.CreatedAt(), found.CreatedAt())
}

func TestPredictionRepository_UnknownModelTime(t *testing.T) {
	ctx := context.Background()
	db := newFakeDB()
	repo := NewPredictionRepository(db)
	p := testPrediction(t, time.Time{})

	require.NoError(t, repo.Save(ctx, p))
	assert.Nil(t, db.rows[p.ID()][10], "zero model time is stored as NULL")

	found, err := repo.FindByID(ctx, p.ID())
	require.NoError(t, err)
	assert.True(t, found.ModelTrainedAt().IsZero())
}

func TestPredictionRepository_FindUnknown(t *testing.T) {
	repo := NewPredictionRepository(newFakeDB())

	_, err := repo.FindByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, port.ErrPredictionNotFound)
}

func TestPredictionRepository_SaveError(t *testing.T) {
	db := newFakeDB()
	db.execErr = errors.New("connection reset")
	repo := NewPredictionRepository(db)

	err := repo.Save(context.Background(), testPrediction(t, modelTrainedAt))
	assert.ErrorContains(t, err, "connection reset")
}

type pingFunc func(ctx context.Context) error

func (f pingFunc) Ping(ctx context.Context) error { return f(ctx) }

func TestHealthCheck(t *testing.T) {
	assert.NoError(t, HealthCheck(context.Background(), pingFunc(func(context.Context) error { return nil })))

	err := HealthCheck(context.Background(), pingFunc(func(context.Context) error { return errors.New("down") }))
	assert.ErrorContains(t, err, "health check")
}

func TestEmbeddedMigrations(t *testing.T) {
	up, err := migrations.FS.ReadFile("000001_create_predictions.up.sql")
	require.NoError(t, err)
	assert.Contains(t, string(up), "CREATE TABLE IF NOT EXISTS predictions")
	assert.Contains(t, string(up), "model_trained_at")

	_, err = migrations.FS.ReadFile("000001_create_predictions.down.sql")
	assert.NoError(t, err)
}
