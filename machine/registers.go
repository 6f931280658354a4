package machine

import (
	"iter"
	"maps"
	"math/big"
	"slices"

	"github.com/ezrec/fractran/factor"
	"github.com/ezrec/fractran/internal"
)

// RegisterSet maps register names (primes) to integer values.
//
// In the register-machine view of a FRACTRAN program, every distinct prime
// across the program's numerators and denominators is one named register
// holding that prime's exponent in the state's factorization.
type RegisterSet struct {
	value map[int64]int
}

// Registers derives the register set for a program and starting state: one
// zero-valued register per distinct prime across every numerator and
// denominator, overlaid with the factorization of the starting value.
//
// Registers is pure; each call computes a fresh set, nothing carries over
// between invocations.
func Registers(prog *Program, start *big.Int) (regs *RegisterSet, err error) {
	if prog == nil {
		err = ErrProgramInvalid
		return
	}

	regs = &RegisterSet{value: map[int64]int{}}

	seqs := []iter.Seq[int64]{}
	for _, frac := range prog.Fractions {
		seqs = append(seqs, primesOf(frac.Num), primesOf(frac.Den))
	}
	for prime := range internal.IterSeqDedup(internal.IterSeqConcat(seqs...)) {
		regs.value[prime] = 0
	}

	for _, term := range factor.Factorize(start) {
		if !term.Prime.IsInt64() {
			err = ErrRegisterRange
			regs = nil
			return
		}
		regs.value[term.Prime.Int64()] = term.Power
	}

	return
}

// primesOf iterates the primes of a small integer in ascending order.
func primesOf(n int64) iter.Seq[int64] {
	return func(yield func(int64) bool) {
		for _, term := range factor.FactorizeInt64(n) {
			if !yield(term.Prime.Int64()) {
				return
			}
		}
	}
}

// Primes returns the register names in ascending order.
func (regs *RegisterSet) Primes() []int64 {
	return slices.Sorted(maps.Keys(regs.value))
}

// Get returns the value of a register, 0 if absent.
func (regs *RegisterSet) Get(prime int64) int {
	return regs.value[prime]
}

// Len returns the number of registers.
func (regs *RegisterSet) Len() int {
	return len(regs.value)
}
