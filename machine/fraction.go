package machine

import (
	"fmt"
)

// Fraction is an ordered numerator/denominator pair. A Fraction is immutable
// once built; its position within a Program defines its scan priority.
type Fraction struct {
	Num int64 // Numerator, non-negative.
	Den int64 // Denominator, positive.
}

// NewFraction validates and builds a Fraction.
//
// Lowest-terms reduction is not applied: a non-reduced fraction changes
// which rule fires first, so fractions are taken literally and their form is
// the caller's responsibility.
func NewFraction(num, den int64) (frac Fraction, err error) {
	if num < 0 {
		err = ErrNumeratorInvalid
		return
	}
	if den < 1 {
		err = ErrDenominatorInvalid
		return
	}

	frac = Fraction{Num: num, Den: den}

	return
}

// String renders the fraction as 'num/den'.
func (frac Fraction) String() string {
	return fmt.Sprintf("%v/%v", frac.Num, frac.Den)
}
