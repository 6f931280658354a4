package synth

import (
	"math/big"

	"github.com/ezrec/fractran/factor"
	"github.com/ezrec/fractran/machine"
)

// Synthesize derives the register program equivalent to a FRACTRAN program
// and starting state. Deterministic: the same inputs always produce the
// same tree.
//
// Each fraction becomes one branch: its denominator's factorization forms
// the guards and the subtracted costs, its numerator's factorization the
// added gains. A zero numerator is a halt-and-clear action. A denominator
// of 1 guards nothing, so its branch is unconditional and terminates the
// chain; fractions after it are unreachable (they still contribute their
// primes to the register set).
func Synthesize(prog *machine.Program, start *big.Int, maxSteps int) (rp *Program, err error) {
	if prog == nil {
		err = machine.ErrProgramInvalid
		return
	}
	if start == nil || start.Sign() <= 0 {
		err = machine.ErrStartInvalid
		return
	}
	if maxSteps < 1 {
		err = ErrBudgetInvalid
		return
	}

	regs, err := machine.Registers(prog, start)
	if err != nil {
		return
	}

	rp = &Program{
		Name:     prog.Name,
		Source:   prog.String(),
		MaxSteps: maxSteps,
	}
	for _, prime := range regs.Primes() {
		rp.Inits = append(rp.Inits, Assign{Reg: prime, Value: regs.Get(prime)})
	}

	unconditional := false
	for n, frac := range prog.Fractions {
		branch := Branch{
			Label: prog.Label(n),
			Num:   frac.Num,
			Den:   frac.Den,
		}

		costs := factor.FactorizeInt64(frac.Den)
		for _, term := range costs {
			branch.Guards = append(branch.Guards, Guard{
				Reg: term.Prime.Int64(),
				Min: term.Power,
			})
		}

		if frac.Num == 0 {
			branch.Body = []Stmt{Clear{}}
		} else {
			for _, term := range costs {
				branch.Body = append(branch.Body, Update{
					Reg:   term.Prime.Int64(),
					Delta: -term.Power,
				})
			}
			for _, term := range factor.FactorizeInt64(frac.Num) {
				branch.Body = append(branch.Body, Update{
					Reg:   term.Prime.Int64(),
					Delta: term.Power,
				})
			}
		}

		rp.Branches = append(rp.Branches, branch)

		if frac.Den == 1 {
			unconditional = true
			break
		}
	}

	if !unconditional {
		// No guard matched: halting is total register clearance.
		rp.Fallback = []Stmt{Clear{}}
	}

	return
}

// Renderer renders a synthesized register program as source text in one
// target language.
type Renderer interface {
	Render(rp *Program) (string, error)
}

// NewRenderer returns the renderer for a target language name.
func NewRenderer(target string) (ren Renderer, err error) {
	switch target {
	case "go":
		ren = &GoRenderer{}
	case "starlark":
		ren = &StarlarkRenderer{}
	default:
		err = ErrTargetUnknown
	}

	return
}
