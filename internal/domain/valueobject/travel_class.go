package valueobject

import "fmt"

// TravelClass is an immutable value object for the cabin class. It is one-hot
// encoded, so each class owns a fixed slot among the class indicator columns.
type TravelClass struct {
	value string
	slot  int
}

var (
	TravelClassBusiness = TravelClass{value: "business", slot: 0}
	TravelClassEco      = TravelClass{value: "eco", slot: 1}
	TravelClassEcoPlus  = TravelClass{value: "eco_plus", slot: 2}
)

// TravelClasses lists every class in one-hot column order.
var TravelClasses = []TravelClass{TravelClassBusiness, TravelClassEco, TravelClassEcoPlus}

// TravelClassValues lists the accepted raw values in schema order.
var TravelClassValues = []string{TravelClassBusiness.value, TravelClassEco.value, TravelClassEcoPlus.value}

// ParseTravelClass reconstructs a TravelClass from its normalized string form.
func ParseTravelClass(s string) (TravelClass, error) {
	for _, c := range TravelClasses {
		if c.value == s {
			return c, nil
		}
	}
	return TravelClass{}, fmt.Errorf("%w: class %q", ErrUnknownCategory, s)
}

// OneHot returns the indicator columns (business, eco, eco_plus) for the class.
// The zero TravelClass yields all zeros.
func (c TravelClass) OneHot() [3]float64 {
	var out [3]float64
	if !c.IsZero() {
		out[c.slot] = 1
	}
	return out
}

// ColumnName returns the name of the indicator column for the class.
func (c TravelClass) ColumnName() string {
	return "class_" + c.value
}

func (c TravelClass) String() string {
	return c.value
}

func (c TravelClass) IsZero() bool {
	return c.value == ""
}
