package valueobject

import "fmt"

// CustomerType is an immutable value object for the passenger's loyalty status.
type CustomerType struct {
	value string
}

var (
	CustomerTypeLoyal    = CustomerType{value: "loyal_customer"}
	CustomerTypeDisloyal = CustomerType{value: "disloyal_customer"}
)

// CustomerTypeValues lists the accepted raw values in schema order.
var CustomerTypeValues = []string{CustomerTypeLoyal.value, CustomerTypeDisloyal.value}

// ParseCustomerType reconstructs a CustomerType from its normalized string form.
func ParseCustomerType(s string) (CustomerType, error) {
	switch s {
	case "loyal_customer":
		return CustomerTypeLoyal, nil
	case "disloyal_customer":
		return CustomerTypeDisloyal, nil
	default:
		return CustomerType{}, fmt.Errorf("%w: customer_type %q", ErrUnknownCategory, s)
	}
}

// Code returns the binary encoding used as a model feature.
func (c CustomerType) Code() float64 {
	if c == CustomerTypeLoyal {
		return 1
	}
	return 0
}

// String returns the string representation.
func (c CustomerType) String() string {
	return c.value
}

// IsZero returns true if the CustomerType has not been set.
func (c CustomerType) IsZero() bool {
	return c.value == ""
}
