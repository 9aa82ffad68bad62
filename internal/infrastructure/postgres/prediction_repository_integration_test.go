//go:build integration

package postgres_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/skysatisfy/skysatisfy/internal/domain/model"
	"github.com/skysatisfy/skysatisfy/internal/domain/port"
	"github.com/skysatisfy/skysatisfy/internal/infrastructure/postgres"
)

func startPostgres(ctx context.Context, t *testing.T) string {
	t.Helper()

	container, err := tcpostgres.Run(ctx,
		"postgres:16-alpine",
		tcpostgres.WithDatabase("skysatisfy"),
		tcpostgres.WithUsername("testuser"),
		tcpostgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	require.NoError(t, err)
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := container.Terminate(ctx); err != nil {
			t.Logf("warning: failed to terminate postgres container: %v", err)
		}
	})

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)
	return dsn
}

func TestPredictionRepository_Postgres(t *testing.T) {
	ctx := context.Background()
	dsn := startPostgres(ctx, t)

	require.NoError(t, postgres.RunMigrations(dsn))
	require.NoError(t, postgres.RunMigrations(dsn), "migrations are idempotent")

	pool, err := postgres.NewPool(ctx, dsn)
	require.NoError(t, err)
	defer pool.Close()
	require.NoError(t, postgres.HealthCheck(ctx, pool))

	repo := postgres.NewPredictionRepository(pool)

	passenger, err := model.NewPassenger("disloyal_customer", 22, "personal_travel", 480, 2, 1, "eco")
	require.NoError(t, err)
	trainedAt := time.Date(2024, 3, 9, 12, 0, 0, 0, time.UTC)
	p, err := model.NewPrediction(passenger, 0.125, trainedAt)
	require.NoError(t, err)

	require.NoError(t, repo.Save(ctx, p))
	require.NoError(t, repo.Save(ctx, p))

	found, err := repo.FindByID(ctx, p.ID())
	require.NoError(t, err)
	assert.Equal(t, p.Passenger(), found.Passenger())
	assert.InDelta(t, p.Score(), found.Score(), 1e-12)
	assert.Equal(t, "Not satisfied", found.Verdict().String())
	assert.True(t, trainedAt.Equal(found.ModelTrainedAt()))
	assert.WithinDuration(t, p.CreatedAt(), found.CreatedAt(), time.Millisecond)

	_, err = repo.FindByID(ctx, uuid.New())
	assert.ErrorIs(t, err, port.ErrPredictionNotFound)

	require.NoError(t, postgres.RunMigrationsDown(dsn))
}
