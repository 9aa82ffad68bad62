package ml_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skysatisfy/skysatisfy/internal/domain/model"
	"github.com/skysatisfy/skysatisfy/internal/domain/service"
	"github.com/skysatisfy/skysatisfy/internal/domain/valueobject"
	"github.com/skysatisfy/skysatisfy/internal/infrastructure/ml"
	"github.com/skysatisfy/skysatisfy/internal/ml/boost"
)

// boardingBooster learns "satisfied iff online_boarding >= 4".
func boardingBooster(t *testing.T) *boost.Booster {
	t.Helper()
	var rows []model.LabeledPassenger
	for i := 0; i < 120; i++ {
		boarding := i % 6
		p, err := model.NewPassenger("loyal_customer", 20+i%50, "business_travel", 300+i*7, i%5, boarding, "eco")
		require.NoError(t, err)
		label := valueobject.SatisfactionDissatisfied
		if boarding >= 4 {
			label = valueobject.SatisfactionSatisfied
		}
		rows = append(rows, model.LabeledPassenger{Passenger: p, Satisfaction: label})
	}

	x, y := service.EncodeAll(rows)
	ds, err := boost.NewDataset(x, y, service.FeatureNames[:])
	require.NoError(t, err)

	b, err := boost.Train(context.Background(), ds, boost.DefaultParams())
	require.NoError(t, err)
	return b
}

func TestBoosterScorer_Score(t *testing.T) {
	scorer, err := ml.NewBoosterScorer(boardingBooster(t))
	require.NoError(t, err)

	happy, err := model.NewPassenger("loyal_customer", 30, "business_travel", 900, 3, 5, "eco")
	require.NoError(t, err)
	unhappy, err := model.NewPassenger("loyal_customer", 30, "business_travel", 900, 3, 1, "eco")
	require.NoError(t, err)

	high, err := scorer.Score(service.Encode(happy))
	require.NoError(t, err)
	low, err := scorer.Score(service.Encode(unhappy))
	require.NoError(t, err)

	assert.Greater(t, high, 0.5)
	assert.Less(t, low, 0.5)
	assert.NotNil(t, scorer.Booster())
}

func TestNewBoosterScorer_RejectsForeignModels(t *testing.T) {
	b := boardingBooster(t)

	narrow := *b
	narrow.NumFeatures = 3
	_, err := ml.NewBoosterScorer(&narrow)
	assert.ErrorIs(t, err, boost.ErrFeatureMismatch)

	renamed := *b
	renamed.FeatureNames = append([]string{"gender"}, b.FeatureNames[1:]...)
	_, err = ml.NewBoosterScorer(&renamed)
	assert.ErrorIs(t, err, boost.ErrFeatureMismatch)
}
