package evaluation

import (
	"fmt"
	"math/rand/v2"
)

// KFold splits row indices into consecutive folds, optionally shuffling the
// indices first. The first n%Splits folds receive one extra row.
type KFold struct {
	Splits  int
	Shuffle bool
	Seed    uint64
}

// DefaultKFold is the cross-validation scheme models are evaluated with.
func DefaultKFold() KFold {
	return KFold{Splits: 5, Shuffle: true, Seed: 42}
}

// Fold holds the training and held-out row indices of one split.
type Fold struct {
	Train []int
	Test  []int
}

// Split partitions n rows. Every row appears in exactly one Test set.
func (k KFold) Split(n int) ([]Fold, error) {
	if k.Splits < 2 {
		return nil, fmt.Errorf("%w: need at least 2 splits, got %d", ErrInvalidFolds, k.Splits)
	}
	if n < k.Splits {
		return nil, fmt.Errorf("%w: cannot split %d rows into %d folds", ErrInvalidFolds, n, k.Splits)
	}

	indices := make([]int, n)
	for i := range indices {
		indices[i] = i
	}
	if k.Shuffle {
		rng := rand.New(rand.NewPCG(k.Seed, k.Seed^0x9e3779b97f4a7c15))
		rng.Shuffle(n, func(i, j int) {
			indices[i], indices[j] = indices[j], indices[i]
		})
	}

	folds := make([]Fold, 0, k.Splits)
	start := 0
	for f := 0; f < k.Splits; f++ {
		size := n / k.Splits
		if f < n%k.Splits {
			size++
		}
		end := start + size

		test := make([]int, size)
		copy(test, indices[start:end])

		train := make([]int, 0, n-size)
		train = append(train, indices[:start]...)
		train = append(train, indices[end:]...)

		folds = append(folds, Fold{Train: train, Test: test})
		start = end
	}
	return folds, nil
}
