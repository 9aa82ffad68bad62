package model

import (
	"errors"
	"fmt"

	"github.com/skysatisfy/skysatisfy/internal/domain/valueobject"
)

const (
	MinAge    = 0
	MaxAge    = 120
	MinRating = 0
	MaxRating = 5
)

// ErrOutOfRange is returned when a numeric passenger field is outside its
// accepted range.
var ErrOutOfRange = errors.New("value out of range")

// Passenger is one observation of the features the model is trained on.
type Passenger struct {
	CustomerType        valueobject.CustomerType
	TypeOfTravel        valueobject.TravelType
	Class               valueobject.TravelClass
	Age                 int
	FlightDistance      int
	EaseOfOnlineBooking int
	OnlineBoarding      int
}

// NewPassenger parses and validates raw passenger fields. Categorical values
// must already be normalized (lowercase, underscores).
func NewPassenger(
	customerType string,
	age int,
	typeOfTravel string,
	flightDistance int,
	easeOfOnlineBooking int,
	onlineBoarding int,
	class string,
) (Passenger, error) {
	ct, err := valueobject.ParseCustomerType(customerType)
	if err != nil {
		return Passenger{}, err
	}
	tt, err := valueobject.ParseTravelType(typeOfTravel)
	if err != nil {
		return Passenger{}, err
	}
	tc, err := valueobject.ParseTravelClass(class)
	if err != nil {
		return Passenger{}, err
	}
	if age < MinAge || age > MaxAge {
		return Passenger{}, fmt.Errorf("%w: age %d not in [%d, %d]", ErrOutOfRange, age, MinAge, MaxAge)
	}
	if easeOfOnlineBooking < MinRating || easeOfOnlineBooking > MaxRating {
		return Passenger{}, fmt.Errorf("%w: ease_of_online_booking %d not in [%d, %d]",
			ErrOutOfRange, easeOfOnlineBooking, MinRating, MaxRating)
	}
	if onlineBoarding < MinRating || onlineBoarding > MaxRating {
		return Passenger{}, fmt.Errorf("%w: online_boarding %d not in [%d, %d]",
			ErrOutOfRange, onlineBoarding, MinRating, MaxRating)
	}

	return Passenger{
		CustomerType:        ct,
		TypeOfTravel:        tt,
		Class:               tc,
		Age:                 age,
		FlightDistance:      flightDistance,
		EaseOfOnlineBooking: easeOfOnlineBooking,
		OnlineBoarding:      onlineBoarding,
	}, nil
}

// LabeledPassenger pairs a passenger with its satisfaction label.
type LabeledPassenger struct {
	Passenger
	Satisfaction valueobject.Satisfaction
}
