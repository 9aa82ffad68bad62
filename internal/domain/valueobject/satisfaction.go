package valueobject

import "fmt"

// Satisfaction is the training label.
type Satisfaction struct {
	value string
	label float64
}

var (
	SatisfactionSatisfied    = Satisfaction{value: "satisfied", label: 1}
	SatisfactionDissatisfied = Satisfaction{value: "dissatisfied", label: 0}
)

// ParseSatisfaction maps a normalized label string to a Satisfaction. The
// public airline dataset spells the negative class "neutral or dissatisfied",
// which normalizes to neutral_or_dissatisfied.
func ParseSatisfaction(s string) (Satisfaction, error) {
	switch s {
	case "satisfied":
		return SatisfactionSatisfied, nil
	case "dissatisfied", "neutral_or_dissatisfied":
		return SatisfactionDissatisfied, nil
	default:
		return Satisfaction{}, fmt.Errorf("%w: satisfaction %q", ErrUnknownCategory, s)
	}
}

// Label returns 1 for satisfied and 0 otherwise.
func (s Satisfaction) Label() float64 {
	return s.label
}

func (s Satisfaction) String() string {
	return s.value
}
