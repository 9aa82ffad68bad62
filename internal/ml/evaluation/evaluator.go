package evaluation

import (
	"context"
	"fmt"

	"github.com/skysatisfy/skysatisfy/internal/ml/boost"
)

// Metric names as they appear in the metrics artifact.
const (
	MetricAUC       = "auc"
	MetricPrecision = "precision"
	MetricRecall    = "recall"
	MetricF1        = "f1"
)

// FoldMetrics holds one value per fold for each metric. It is the on-disk
// metrics artifact.
type FoldMetrics struct {
	AUC       []float64 `json:"auc"`
	Precision []float64 `json:"precision"`
	Recall    []float64 `json:"recall"`
	F1        []float64 `json:"f1"`
}

// Folds returns the number of evaluated folds.
func (m FoldMetrics) Folds() int { return len(m.AUC) }

// Validate checks that every metric has the same, non-zero number of folds.
func (m FoldMetrics) Validate() error {
	n := len(m.AUC)
	if n == 0 {
		return ErrNoMetrics
	}
	if len(m.Precision) != n || len(m.Recall) != n || len(m.F1) != n {
		return fmt.Errorf("metrics have uneven fold counts: auc=%d precision=%d recall=%d f1=%d",
			n, len(m.Precision), len(m.Recall), len(m.F1))
	}
	return nil
}

// ByName returns the per-fold values of each metric keyed by metric name.
func (m FoldMetrics) ByName() map[string][]float64 {
	return map[string][]float64{
		MetricAUC:       m.AUC,
		MetricPrecision: m.Precision,
		MetricRecall:    m.Recall,
		MetricF1:        m.F1,
	}
}

// FoldFunc is called after each fold with the 1-based fold number.
type FoldFunc func(fold, total int)

// Option configures an evaluation run.
type Option func(*evaluator)

// WithFoldCallback registers a function called after every fold.
func WithFoldCallback(fn FoldFunc) Option {
	return func(e *evaluator) {
		e.onFold = fn
	}
}

// WithTrainOptions passes options through to every per-fold training run.
func WithTrainOptions(opts ...boost.Option) Option {
	return func(e *evaluator) {
		e.trainOpts = append(e.trainOpts, opts...)
	}
}

type evaluator struct {
	onFold    FoldFunc
	trainOpts []boost.Option
}

// Evaluate cross-validates params on ds. For each fold a fresh booster is
// trained on the remaining folds and scored on the held-out fold. The result
// is deterministic for a given dataset, params and KFold seed.
func Evaluate(ctx context.Context, ds *boost.Dataset, params boost.Params, kf KFold, opts ...Option) (FoldMetrics, error) {
	e := &evaluator{}
	for _, opt := range opts {
		opt(e)
	}

	folds, err := kf.Split(ds.Len())
	if err != nil {
		return FoldMetrics{}, err
	}

	var out FoldMetrics
	for i, fold := range folds {
		if err := ctx.Err(); err != nil {
			return FoldMetrics{}, err
		}

		booster, err := boost.Train(ctx, ds.Slice(fold.Train), params, e.trainOpts...)
		if err != nil {
			return FoldMetrics{}, fmt.Errorf("fold %d: train: %w", i+1, err)
		}

		test := ds.Slice(fold.Test)
		scores, err := booster.PredictDataset(test)
		if err != nil {
			return FoldMetrics{}, fmt.Errorf("fold %d: predict: %w", i+1, err)
		}

		auc, err := AUC(test.Labels(), scores)
		if err != nil {
			return FoldMetrics{}, fmt.Errorf("fold %d: %w", i+1, err)
		}
		c, err := Confuse(test.Labels(), scores)
		if err != nil {
			return FoldMetrics{}, fmt.Errorf("fold %d: %w", i+1, err)
		}

		out.AUC = append(out.AUC, auc)
		out.Precision = append(out.Precision, c.Precision())
		out.Recall = append(out.Recall, c.Recall())
		out.F1 = append(out.F1, c.F1())

		if e.onFold != nil {
			e.onFold(i+1, len(folds))
		}
	}
	return out, nil
}
