package evaluation

import (
	"fmt"
	"slices"

	"gonum.org/v1/gonum/integrate"
	"gonum.org/v1/gonum/stat"
)

// Threshold is the probability above which a score counts as positive.
const Threshold = 0.5

// AUC returns the area under the ROC curve of continuous scores against 0/1
// labels. Tied scores contribute a diagonal segment.
func AUC(labels, scores []float64) (float64, error) {
	if len(labels) != len(scores) {
		return 0, fmt.Errorf("%w: %d labels, %d scores", ErrLengthMismatch, len(labels), len(scores))
	}

	y := slices.Clone(scores)
	classes := make([]bool, len(labels))
	var pos int
	for i, l := range labels {
		classes[i] = l == 1
		if classes[i] {
			pos++
		}
	}
	if pos == 0 || pos == len(labels) {
		return 0, ErrUndefinedAUC
	}

	stat.SortWeightedLabeled(y, classes, nil)
	tpr, fpr, _ := stat.ROC(nil, y, classes, nil)
	return integrate.Trapezoidal(fpr, tpr), nil
}

// Confusion counts thresholded predictions against labels.
type Confusion struct {
	TP, FP, TN, FN int
}

// Confuse thresholds scores with score > Threshold and tallies the outcomes.
func Confuse(labels, scores []float64) (Confusion, error) {
	if len(labels) != len(scores) {
		return Confusion{}, fmt.Errorf("%w: %d labels, %d scores", ErrLengthMismatch, len(labels), len(scores))
	}

	var c Confusion
	for i, s := range scores {
		predicted := s > Threshold
		actual := labels[i] == 1
		switch {
		case predicted && actual:
			c.TP++
		case predicted:
			c.FP++
		case actual:
			c.FN++
		default:
			c.TN++
		}
	}
	return c, nil
}

// Precision is tp/(tp+fp). With no positive predictions it is 1.
func (c Confusion) Precision() float64 {
	if c.TP+c.FP == 0 {
		return 1
	}
	return float64(c.TP) / float64(c.TP+c.FP)
}

// Recall is tp/(tp+fn). With no positive labels it is 0.
func (c Confusion) Recall() float64 {
	if c.TP+c.FN == 0 {
		return 0
	}
	return float64(c.TP) / float64(c.TP+c.FN)
}

// F1 is 2tp/(2tp+fp+fn), or 0 when nothing is positive.
func (c Confusion) F1() float64 {
	denom := 2*c.TP + c.FP + c.FN
	if denom == 0 {
		return 0
	}
	return float64(2*c.TP) / float64(denom)
}
