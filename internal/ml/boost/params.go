package boost

import (
	"fmt"
	"runtime"
)

// ObjectiveBinaryLogistic is logistic regression for binary classification,
// producing probabilities.
const ObjectiveBinaryLogistic = "binary:logistic"

// Params holds the booster hyper-parameters. Names follow the conventions of
// common gradient boosting libraries so configuration reads the same.
type Params struct {
	Objective       string  `json:"objective"`
	Eta             float64 `json:"eta"`
	MaxDepth        int     `json:"max_depth"`
	MinChildWeight  float64 `json:"min_child_weight"`
	Lambda          float64 `json:"lambda"`
	Gamma           float64 `json:"gamma"`
	BaseScore       float64 `json:"base_score"`
	Subsample       float64 `json:"subsample"`
	ColsampleByTree float64 `json:"colsample_bytree"`
	NumBoostRound   int     `json:"num_boost_round"`
	NThread         int     `json:"nthread"`
	Seed            uint64  `json:"seed"`
}

// DefaultParams returns the fixed hyper-parameter set the service trains with.
func DefaultParams() Params {
	return Params{
		Objective:       ObjectiveBinaryLogistic,
		Eta:             0.3,
		MaxDepth:        6,
		MinChildWeight:  10,
		Lambda:          1,
		Gamma:           0,
		BaseScore:       0.5,
		Subsample:       1,
		ColsampleByTree: 1,
		NumBoostRound:   25,
		NThread:         8,
		Seed:            42,
	}
}

// Validate checks that the parameters describe a trainable model.
func (p Params) Validate() error {
	switch {
	case p.Objective != ObjectiveBinaryLogistic:
		return fmt.Errorf("%w: unsupported objective %q", ErrInvalidParams, p.Objective)
	case p.Eta <= 0:
		return fmt.Errorf("%w: eta must be positive, got %v", ErrInvalidParams, p.Eta)
	case p.MaxDepth < 1:
		return fmt.Errorf("%w: max_depth must be at least 1, got %d", ErrInvalidParams, p.MaxDepth)
	case p.MinChildWeight < 0:
		return fmt.Errorf("%w: min_child_weight must not be negative, got %v", ErrInvalidParams, p.MinChildWeight)
	case p.Lambda < 0:
		return fmt.Errorf("%w: lambda must not be negative, got %v", ErrInvalidParams, p.Lambda)
	case p.Gamma < 0:
		return fmt.Errorf("%w: gamma must not be negative, got %v", ErrInvalidParams, p.Gamma)
	case p.BaseScore <= 0 || p.BaseScore >= 1:
		return fmt.Errorf("%w: base_score must be in (0, 1), got %v", ErrInvalidParams, p.BaseScore)
	case p.Subsample <= 0 || p.Subsample > 1:
		return fmt.Errorf("%w: subsample must be in (0, 1], got %v", ErrInvalidParams, p.Subsample)
	case p.ColsampleByTree <= 0 || p.ColsampleByTree > 1:
		return fmt.Errorf("%w: colsample_bytree must be in (0, 1], got %v", ErrInvalidParams, p.ColsampleByTree)
	case p.NumBoostRound < 1:
		return fmt.Errorf("%w: num_boost_round must be at least 1, got %d", ErrInvalidParams, p.NumBoostRound)
	case p.NThread < 0:
		return fmt.Errorf("%w: nthread must not be negative, got %d", ErrInvalidParams, p.NThread)
	}
	return nil
}

func (p Params) workers() int {
	if p.NThread == 0 {
		return runtime.GOMAXPROCS(0)
	}
	return p.NThread
}
