package utils

import (
	"strings"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// CellDecimal parses a raw spreadsheet cell as a decimal amount.
// Thousands separators and a leading currency sign are tolerated because
// excelize hands back the formatted cell text. ok=false means the cell is
// empty or not numeric; the caller decides the default for that field.
func CellDecimal(raw string) (decimal.Decimal, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return decimal.Zero, false
	}
	s = strings.TrimPrefix(s, "$")
	s = strings.ReplaceAll(s, ",", "")
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}

// RatioPct returns num/den*100, or zero when den is zero.
func RatioPct(num, den decimal.Decimal) decimal.Decimal {
	if den.IsZero() {
		return decimal.Zero
	}
	return num.Div(den).Mul(hundred)
}

// RatioPctPtr is RatioPct for fields whose zero-denominator sentinel is
// null rather than zero: it returns nil when den is zero, else the ratio
// rounded to one decimal place.
func RatioPctPtr(num, den decimal.Decimal) *decimal.Decimal {
	if den.IsZero() {
		return nil
	}
	v := num.Div(den).Mul(hundred).Round(1)
	return &v
}

func DecimalPtr(d decimal.Decimal) *decimal.Decimal {
	return &d
}

func SumDecimals(values []decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, v := range values {
		total = total.Add(v)
	}
	return total
}

func MeanDecimal(values []decimal.Decimal) decimal.Decimal {
	if len(values) == 0 {
		return decimal.Zero
	}
	return SumDecimals(values).Div(decimal.NewFromInt(int64(len(values))))
}

// DecimalsToFloats converts for the stats package (quantiles, stddev).
func DecimalsToFloats(values []decimal.Decimal) []float64 {
	out := make([]float64, len(values))
	for i, v := range values {
		out[i] = v.InexactFloat64()
	}
	return out
}
