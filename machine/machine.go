package machine

import (
	"fmt"
	"iter"
	"log"
	"math/big"
	"strings"

	"github.com/ezrec/fractran/factor"
)

// Verbosity selects the diagnostic detail logged during stepping.
type Verbosity int

//go:generate go tool stringer -linecomment -type=Verbosity
const (
	QUIET   = Verbosity(0) // quiet
	SUCCESS = Verbosity(1) // success
	TRACE   = Verbosity(2) // trace
)

// HaltReason describes why a machine stopped.
//
// The trace ends in 0 for both halt kinds; the reason distinguishes a true
// halt (no fraction applied) from a forced one (step budget exhausted).
type HaltReason int

//go:generate go tool stringer -linecomment -type=HaltReason
const (
	HALT_NONE    = HaltReason(0) // running
	HALT_NATURAL = HaltReason(1) // halted
	HALT_BUDGET  = HaltReason(2) // capped
)

// APPLIED_NONE marks a trace entry that no fraction was applied to.
const APPLIED_NONE = -1

// Step is a single trace entry: the state reached, and the index of the
// fraction applied to leave it (APPLIED_NONE for the final entry).
type Step struct {
	State   *big.Int
	Applied int
}

// Machine plays the fraction game on a FRACTRAN program.
//
// A Machine owns its trace exclusively; entries are appended one per step
// and never rewritten. Instances are not safe for concurrent use - a single
// caller at a time is the caller's responsibility, no internal locking is
// provided.
type Machine struct {
	Verbosity Verbosity // Diagnostic detail level.

	prog   *Program
	nums   []*big.Int // Cached fraction numerators.
	dens   []*big.Int // Cached fraction denominators.
	states []*big.Int
	trans  []int
	reason HaltReason
}

// NewMachine creates a machine for a program, with the trace seeded from the
// starting value. ErrStartInvalid if the starting value is not a positive
// integer.
func NewMachine(prog *Program, start *big.Int) (mach *Machine, err error) {
	if prog == nil {
		err = ErrProgramInvalid
		return
	}

	mach = &Machine{prog: prog}
	for _, frac := range prog.Fractions {
		mach.nums = append(mach.nums, big.NewInt(frac.Num))
		mach.dens = append(mach.dens, big.NewInt(frac.Den))
	}

	err = mach.Reset(start)
	if err != nil {
		mach = nil
	}

	return
}

// Reset discards the trace and begins again from a starting value.
func (mach *Machine) Reset(start *big.Int) (err error) {
	if start == nil || start.Sign() <= 0 {
		err = ErrStartInvalid
		return
	}

	mach.states = []*big.Int{new(big.Int).Set(start)}
	mach.trans = mach.trans[:0]
	mach.reason = HALT_NONE

	return
}

// Step advances the machine by one transition.
//
// The fractions are scanned in program order; the first fraction f whose
// product f*N divides evenly wins, and the quotient is appended to the
// trace. First match wins, not best match. If no fraction divides evenly, 0
// is appended as the halt signal. Once halted, Step is a no-op; the halt
// state is absorbing.
func (mach *Machine) Step() {
	if mach.reason != HALT_NONE {
		return
	}

	state := mach.states[len(mach.states)-1]

	prod := new(big.Int)
	quo := new(big.Int)
	rem := new(big.Int)
	for n, frac := range mach.prog.Fractions {
		if mach.Verbosity >= TRACE {
			log.Printf("trying %v * %v", frac, state)
		}

		prod.Mul(mach.nums[n], state)
		quo.QuoRem(prod, mach.dens[n], rem)
		if rem.Sign() != 0 {
			continue
		}

		next := new(big.Int).Set(quo)
		if mach.Verbosity >= SUCCESS {
			log.Printf("success: N_%v = %v * %v = %v = %v",
				len(mach.states), frac, state, next, factor.Factorize(next))
		}

		mach.states = append(mach.states, next)
		mach.trans = append(mach.trans, n)
		if next.Sign() == 0 {
			// A zero numerator drives the state straight to 0.
			mach.reason = HALT_NATURAL
		}
		return
	}

	mach.states = append(mach.states, new(big.Int))
	mach.reason = HALT_NATURAL
}

// Run repeatedly steps the machine until it halts, or until the trace would
// exceed maxSteps entries, in which case 0 is forced onto the trace and the
// run is marked as capped. A FRACTRAN program can run forever, so the step
// budget is mandatory, not optional. Returns the terminal state.
func (mach *Machine) Run(maxSteps int) *big.Int {
	for mach.reason == HALT_NONE {
		if len(mach.states)+1 > maxSteps {
			mach.states = append(mach.states, new(big.Int))
			mach.reason = HALT_BUDGET
			break
		}
		mach.Step()
	}

	return mach.State()
}

// Len returns the number of trace entries.
func (mach *Machine) Len() int {
	return len(mach.states)
}

// State returns a copy of the most recent state.
func (mach *Machine) State() *big.Int {
	return new(big.Int).Set(mach.states[len(mach.states)-1])
}

// Halted reports whether the machine has appended its halt signal.
func (mach *Machine) Halted() bool {
	return mach.reason != HALT_NONE
}

// Reason returns why the machine stopped, distinguishing a natural halt
// from a step-budget cap.
func (mach *Machine) Reason() HaltReason {
	return mach.reason
}

// Program returns the program under execution.
func (mach *Machine) Program() *Program {
	return mach.prog
}

// Trace iterates the trace entries in order. The yielded states are copies;
// the trace itself cannot be mutated from outside.
func (mach *Machine) Trace() iter.Seq2[int, Step] {
	return func(yield func(int, Step) bool) {
		for n, state := range mach.states {
			step := Step{State: new(big.Int).Set(state), Applied: APPLIED_NONE}
			if n < len(mach.trans) {
				step.Applied = mach.trans[n]
			}
			if !yield(n, step) {
				return
			}
		}
	}
}

// String renders the full trace, one step per line: the factorization of
// each state, and for all but the final entry the fraction applied and its
// single-letter label.
func (mach *Machine) String() string {
	lines := []string{}
	for _, step := range mach.Trace() {
		line := factor.Factorize(step.State).String()
		if step.Applied != APPLIED_NONE {
			frac := mach.prog.Fractions[step.Applied]
			line += fmt.Sprintf("\n*%v (%v)", frac, mach.prog.Label(step.Applied))
		}
		lines = append(lines, line)
	}

	return strings.Join(lines, "\n")
}
