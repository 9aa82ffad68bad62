package valueobject

import "fmt"

// SatisfactionThreshold is the probability above which a passenger is
// predicted to be satisfied.
const SatisfactionThreshold = 0.5

// Verdict is the human-readable label derived from a prediction score.
type Verdict struct {
	value string
}

var (
	VerdictSatisfied    = Verdict{value: "satisfied"}
	VerdictNotSatisfied = Verdict{value: "Not satisfied"}
)

// VerdictFromScore thresholds a probability. A score equal to the threshold
// is not satisfied.
func VerdictFromScore(score float64) Verdict {
	if score > SatisfactionThreshold {
		return VerdictSatisfied
	}
	return VerdictNotSatisfied
}

// VerdictFromString reconstructs a Verdict from its string representation.
func VerdictFromString(s string) (Verdict, error) {
	switch s {
	case VerdictSatisfied.value:
		return VerdictSatisfied, nil
	case VerdictNotSatisfied.value:
		return VerdictNotSatisfied, nil
	default:
		return Verdict{}, fmt.Errorf("invalid verdict: %s", s)
	}
}

// IsSatisfied reports whether the verdict is the positive class.
func (v Verdict) IsSatisfied() bool {
	return v == VerdictSatisfied
}

func (v Verdict) String() string {
	return v.value
}

// Equal checks equality with another Verdict.
func (v Verdict) Equal(other Verdict) bool {
	return v.value == other.value
}
