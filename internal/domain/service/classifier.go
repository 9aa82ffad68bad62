package service

// Scorer produces a satisfaction probability for an encoded passenger.
// Implementations must be safe for concurrent use.
type Scorer interface {
	Score(features FeatureVector) (float64, error)
}
