// Package factor decomposes non-negative integers into their prime-power
// representation, and renders the canonical 'p^a * q^b * ...' display form.
package factor

import (
	"fmt"
	"math/big"
	"strings"
)

// Term is a single prime power within a factorization.
type Term struct {
	Prime *big.Int // Prime base.
	Power int      // Exponent, always >= 1.
}

// Factorization represents an integer as the ordered product of its prime
// factors, ascending by prime. The empty factorization represents 1.
type Factorization []Term

var one = big.NewInt(1)

// Factorize returns the prime factorization of n.
//
// Candidate divisors are scanned from 2 while divisor^2 <= n, dividing out
// each divisor's full multiplicity. Any residual above 1 after the scan is a
// single prime, since n can have at most one factor exceeding its square
// root. For n <= 1 (including 0, which has no meaningful factorization) the
// result is empty.
func Factorize(n *big.Int) (facts Factorization) {
	if n == nil || n.Cmp(one) <= 0 {
		return
	}

	rest := new(big.Int).Set(n)
	div := big.NewInt(2)
	square := new(big.Int)
	quo := new(big.Int)
	rem := new(big.Int)

	for square.Mul(div, div).Cmp(rest) <= 0 {
		power := 0
		for {
			quo.QuoRem(rest, div, rem)
			if rem.Sign() != 0 {
				break
			}
			rest.Set(quo)
			power++
		}
		if power > 0 {
			facts = append(facts, Term{Prime: new(big.Int).Set(div), Power: power})
		}
		div.Add(div, one)
	}

	if rest.Cmp(one) > 0 {
		facts = append(facts, Term{Prime: rest, Power: 1})
	}

	return
}

// FactorizeInt64 returns the prime factorization of a small integer.
func FactorizeInt64(n int64) Factorization {
	return Factorize(big.NewInt(n))
}

// Value reconstructs the integer the factorization represents.
// The empty factorization reconstructs to 1.
func (facts Factorization) Value() (n *big.Int) {
	n = big.NewInt(1)

	exp := new(big.Int)
	for _, term := range facts {
		exp.Exp(term.Prime, big.NewInt(int64(term.Power)), nil)
		n.Mul(n, exp)
	}

	return
}

// String renders the factorization in the form '2^a * 3^b * 5^c * ...'.
func (facts Factorization) String() string {
	terms := make([]string, 0, len(facts))
	for _, term := range facts {
		terms = append(terms, fmt.Sprintf("%v^%v", term.Prime, term.Power))
	}

	return strings.Join(terms, " * ")
}
