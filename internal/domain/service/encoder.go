package service

import (
	"github.com/skysatisfy/skysatisfy/internal/domain/model"
)

// NumFeatures is the width of the encoded feature vector.
const NumFeatures = 9

// FeatureNames lists the encoded columns in the order the model is fit on.
// Training and inference both encode through Encode, so the order cannot drift.
var FeatureNames = [NumFeatures]string{
	"customer_type",
	"age",
	"type_of_travel",
	"flight_distance",
	"ease_of_online_booking",
	"online_boarding",
	"class_business",
	"class_eco",
	"class_eco_plus",
}

// FeatureVector is the numeric encoding of one passenger.
type FeatureVector [NumFeatures]float64

// Encode maps a passenger to its feature vector. All three class indicator
// columns are always present; the ones not matching the passenger's class are zero.
func Encode(p model.Passenger) FeatureVector {
	oneHot := p.Class.OneHot()
	return FeatureVector{
		p.CustomerType.Code(),
		float64(p.Age),
		p.TypeOfTravel.Code(),
		float64(p.FlightDistance),
		float64(p.EaseOfOnlineBooking),
		float64(p.OnlineBoarding),
		oneHot[0],
		oneHot[1],
		oneHot[2],
	}
}

// EncodeAll encodes a batch of labeled passengers into a row-major feature
// matrix and a label vector.
func EncodeAll(rows []model.LabeledPassenger) ([][]float64, []float64) {
	x := make([][]float64, len(rows))
	y := make([]float64, len(rows))
	for i, r := range rows {
		v := Encode(r.Passenger)
		x[i] = v[:]
		y[i] = r.Satisfaction.Label()
	}
	return x, y
}

// Slice returns the vector as a slice.
func (v FeatureVector) Slice() []float64 {
	out := make([]float64, NumFeatures)
	copy(out, v[:])
	return out
}
