package aggregation

import "github.com/shopspring/decimal"

var two = decimal.NewFromInt(2)

// mean is the composite running state of an average: a sum plus a count.
// Values are folded in half-star units and reported on the star scale.
type mean struct {
	sum   decimal.Decimal
	count int64
}

// Apply folds one more half-star value into the running mean.
func (m mean) Apply(halfStars int) mean {
	return mean{
		sum:   m.sum.Add(decimal.NewFromInt(int64(halfStars))),
		count: m.count + 1,
	}
}

// Stars returns the mean on the 0-5 star scale, or zero when nothing was folded.
func (m mean) Stars() decimal.Decimal {
	if m.count == 0 {
		return decimal.Zero
	}
	return m.sum.Div(decimal.NewFromInt(m.count)).Div(two)
}
