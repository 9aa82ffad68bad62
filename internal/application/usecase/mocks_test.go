package usecase_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/skysatisfy/skysatisfy/internal/domain/event"
	"github.com/skysatisfy/skysatisfy/internal/domain/model"
	"github.com/skysatisfy/skysatisfy/internal/domain/port"
	"github.com/skysatisfy/skysatisfy/internal/domain/service"
	"github.com/skysatisfy/skysatisfy/internal/domain/valueobject"
	"github.com/skysatisfy/skysatisfy/internal/ml/boost"
	"github.com/skysatisfy/skysatisfy/internal/ml/evaluation"
)

// --- Mock implementations ---

type mockScorer struct {
	score float64
	err   error
	seen  []service.FeatureVector
}

func (m *mockScorer) Score(features service.FeatureVector) (float64, error) {
	m.seen = append(m.seen, features)
	return m.score, m.err
}

type mockPredictionRepository struct {
	mu      sync.Mutex
	saved   map[uuid.UUID]*model.Prediction
	saveErr error
}

func newMockPredictionRepository() *mockPredictionRepository {
	return &mockPredictionRepository{saved: make(map[uuid.UUID]*model.Prediction)}
}

func (m *mockPredictionRepository) Save(_ context.Context, p *model.Prediction) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saved[p.ID()] = p
	return nil
}

func (m *mockPredictionRepository) FindByID(_ context.Context, id uuid.UUID) (*model.Prediction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.saved[id]
	if !ok {
		return nil, port.ErrPredictionNotFound
	}
	return p, nil
}

type mockEventPublisher struct {
	published  []event.DomainEvent
	publishErr error
}

func (m *mockEventPublisher) Publish(_ context.Context, events ...event.DomainEvent) error {
	if m.publishErr != nil {
		return m.publishErr
	}
	m.published = append(m.published, events...)
	return nil
}

type mockModelStore struct {
	booster   *boost.Booster
	trainedAt time.Time
	saveErr   error
	saves     int
}

func (m *mockModelStore) Save(_ context.Context, b *boost.Booster) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.booster = b
	m.trainedAt = time.Date(2024, 3, 9, 12, 0, 0, 0, time.Local)
	m.saves++
	return nil
}

func (m *mockModelStore) Load(_ context.Context) (*boost.Booster, error) {
	if m.booster == nil {
		return nil, port.ErrModelNotFound
	}
	return m.booster, nil
}

func (m *mockModelStore) Exists(_ context.Context) (bool, error) {
	return m.booster != nil, nil
}

func (m *mockModelStore) TrainedAt(_ context.Context) (time.Time, error) {
	if m.booster == nil {
		return time.Time{}, port.ErrModelNotFound
	}
	return m.trainedAt, nil
}

type mockMetricsStore struct {
	metrics *evaluation.FoldMetrics
}

func (m *mockMetricsStore) Save(_ context.Context, metrics evaluation.FoldMetrics) error {
	m.metrics = &metrics
	return nil
}

func (m *mockMetricsStore) Load(_ context.Context) (evaluation.FoldMetrics, error) {
	if m.metrics == nil {
		return evaluation.FoldMetrics{}, port.ErrMetricsNotFound
	}
	return *m.metrics, nil
}

func (m *mockMetricsStore) Exists(_ context.Context) (bool, error) {
	return m.metrics != nil, nil
}

type mockDataSource struct {
	rows []model.LabeledPassenger
	err  error
}

func (m *mockDataSource) Load(_ context.Context) ([]model.LabeledPassenger, error) {
	return m.rows, m.err
}

var errBoom = errors.New("boom")

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// boardingRows returns n passengers labeled satisfied iff online_boarding >= 3.
func boardingRows(n int) []model.LabeledPassenger {
	classes := []string{"business", "eco", "eco_plus"}
	rows := make([]model.LabeledPassenger, n)
	for i := range rows {
		boarding := i % 6
		p, err := model.NewPassenger("loyal_customer", 20+i%40, "business_travel", 200+i*11, i%5, boarding, classes[i%3])
		if err != nil {
			panic(err)
		}
		label := valueobject.SatisfactionDissatisfied
		if boarding >= 3 {
			label = valueobject.SatisfactionSatisfied
		}
		rows[i] = model.LabeledPassenger{Passenger: p, Satisfaction: label}
	}
	return rows
}
