package valueobject

import "fmt"

// TravelType is an immutable value object for the purpose of the flight.
type TravelType struct {
	value string
}

var (
	TravelTypeBusiness = TravelType{value: "business_travel"}
	TravelTypePersonal = TravelType{value: "personal_travel"}
)

// TravelTypeValues lists the accepted raw values in schema order.
var TravelTypeValues = []string{TravelTypeBusiness.value, TravelTypePersonal.value}

// ParseTravelType reconstructs a TravelType from its normalized string form.
func ParseTravelType(s string) (TravelType, error) {
	switch s {
	case "business_travel":
		return TravelTypeBusiness, nil
	case "personal_travel":
		return TravelTypePersonal, nil
	default:
		return TravelType{}, fmt.Errorf("%w: type_of_travel %q", ErrUnknownCategory, s)
	}
}

// Code returns the binary encoding used as a model feature.
func (t TravelType) Code() float64 {
	if t == TravelTypeBusiness {
		return 1
	}
	return 0
}

func (t TravelType) String() string {
	return t.value
}

func (t TravelType) IsZero() bool {
	return t.value == ""
}
