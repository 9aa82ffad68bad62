package valueobject_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skysatisfy/skysatisfy/internal/domain/valueobject"
)

func TestParseCustomerType(t *testing.T) {
	tests := []struct {
		input    string
		expected valueobject.CustomerType
		code     float64
		wantErr  bool
	}{
		{"loyal_customer", valueobject.CustomerTypeLoyal, 1, false},
		{"disloyal_customer", valueobject.CustomerTypeDisloyal, 0, false},
		{"Loyal Customer", valueobject.CustomerType{}, 0, true},
		{"", valueobject.CustomerType{}, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := valueobject.ParseCustomerType(tt.input)
			if tt.wantErr {
				require.ErrorIs(t, err, valueobject.ErrUnknownCategory)
				assert.True(t, got.IsZero())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
			assert.Equal(t, tt.code, got.Code())
			assert.Equal(t, tt.input, got.String())
		})
	}
}

func TestParseTravelType(t *testing.T) {
	business, err := valueobject.ParseTravelType("business_travel")
	require.NoError(t, err)
	assert.Equal(t, 1.0, business.Code())

	personal, err := valueobject.ParseTravelType("personal_travel")
	require.NoError(t, err)
	assert.Equal(t, 0.0, personal.Code())

	_, err = valueobject.ParseTravelType("leisure")
	assert.ErrorIs(t, err, valueobject.ErrUnknownCategory)
}

func TestTravelClass_OneHot(t *testing.T) {
	tests := []struct {
		input    string
		expected [3]float64
		column   string
	}{
		{"business", [3]float64{1, 0, 0}, "class_business"},
		{"eco", [3]float64{0, 1, 0}, "class_eco"},
		{"eco_plus", [3]float64{0, 0, 1}, "class_eco_plus"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			class, err := valueobject.ParseTravelClass(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, class.OneHot())
			assert.Equal(t, tt.column, class.ColumnName())
		})
	}

	assert.Equal(t, [3]float64{}, valueobject.TravelClass{}.OneHot())

	_, err := valueobject.ParseTravelClass("first")
	assert.ErrorIs(t, err, valueobject.ErrUnknownCategory)
}

func TestParseSatisfaction(t *testing.T) {
	s, err := valueobject.ParseSatisfaction("satisfied")
	require.NoError(t, err)
	assert.Equal(t, 1.0, s.Label())

	for _, neg := range []string{"dissatisfied", "neutral_or_dissatisfied"} {
		s, err := valueobject.ParseSatisfaction(neg)
		require.NoError(t, err)
		assert.Equal(t, 0.0, s.Label())
	}

	_, err = valueobject.ParseSatisfaction("meh")
	assert.ErrorIs(t, err, valueobject.ErrUnknownCategory)
}

func TestVerdictFromScore(t *testing.T) {
	tests := []struct {
		name     string
		score    float64
		expected valueobject.Verdict
	}{
		{"zero", 0, valueobject.VerdictNotSatisfied},
		{"just below threshold", 0.4999, valueobject.VerdictNotSatisfied},
		{"exactly threshold", 0.5, valueobject.VerdictNotSatisfied},
		{"just above threshold", 0.5001, valueobject.VerdictSatisfied},
		{"one", 1, valueobject.VerdictSatisfied},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := valueobject.VerdictFromScore(tt.score)
			assert.True(t, tt.expected.Equal(got), "got %s", got)
		})
	}
}

func TestVerdictFromString(t *testing.T) {
	v, err := valueobject.VerdictFromString("satisfied")
	require.NoError(t, err)
	assert.True(t, v.IsSatisfied())

	v, err = valueobject.VerdictFromString("Not satisfied")
	require.NoError(t, err)
	assert.False(t, v.IsSatisfied())

	_, err = valueobject.VerdictFromString("unsure")
	assert.Error(t, err)
}
