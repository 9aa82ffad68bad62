package evaluation

import (
	"math/big"

	"github.com/shopspring/decimal"
	"gonum.org/v1/gonum/stat"
)

// Summary maps a metric name to its "mean ± std" rendering.
type Summary map[string]string

// Summarize reports the population mean and standard deviation of each
// metric across folds, both fixed to three decimals.
func Summarize(m FoldMetrics) (Summary, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}

	out := make(Summary, 4)
	for name, values := range m.ByName() {
		mean, std := stat.PopMeanStdDev(values, nil)
		out[name] = FormatMeanStd(mean, std)
	}
	return out, nil
}

// FormatMeanStd renders "0.950 ± 0.002".
func FormatMeanStd(mean, std float64) string {
	return RoundFixed(mean, 3).StringFixed(3) + " ± " + RoundFixed(std, 3).StringFixed(3)
}

// exactDigits is enough fractional digits to print any finite float64
// without rounding; the smallest subnormal is 2^-1074.
const exactDigits = 1074

// RoundFixed rounds the exact binary value of x, not its shortest decimal
// form, to places digits with ties to even. 0.1235 is stored just below
// the tie and rounds to 0.123. x must be finite.
func RoundFixed(x float64, places int32) decimal.Decimal {
	exact := new(big.Float).SetFloat64(x).Text('f', exactDigits)
	return decimal.RequireFromString(exact).RoundBank(places)
}
