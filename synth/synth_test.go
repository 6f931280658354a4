package synth

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/fractran/machine"
)

// Conway's PRIMEGAME.
var primegame = [][2]int64{
	{17, 91}, {78, 85}, {19, 51}, {23, 38}, {29, 33}, {77, 29}, {95, 23},
	{77, 19}, {1, 17}, {11, 13}, {13, 11}, {15, 14}, {15, 2}, {55, 1},
}

func TestSynthesize(t *testing.T) {
	assert := assert.New(t)

	prog, err := machine.NewProgram([2]int64{1, 2})
	assert.NoError(err)

	rp, err := Synthesize(prog, big.NewInt(8), 20)
	assert.NoError(err)

	assert.Equal([]Assign{{Reg: 2, Value: 3}}, rp.Inits)
	assert.Equal(20, rp.MaxSteps)
	assert.Equal("1/2", rp.Source)

	assert.Equal(1, len(rp.Branches))
	branch := rp.Branches[0]
	assert.Equal("A", branch.Label)
	assert.Equal([]Guard{{Reg: 2, Min: 1}}, branch.Guards)
	// Numerator 1 factorizes to nothing; only the denominator cost remains.
	assert.Equal([]Stmt{Update{Reg: 2, Delta: -1}}, branch.Body)

	assert.Equal([]Stmt{Clear{}}, rp.Fallback)
}

func TestSynthesize_RegisterSet(t *testing.T) {
	assert := assert.New(t)

	prog, err := machine.NewProgram(primegame...)
	assert.NoError(err)

	rp, err := Synthesize(prog, big.NewInt(2), 100)
	assert.NoError(err)

	// Exactly the distinct primes across every numerator and denominator,
	// no extras, no omissions.
	want := []Assign{
		{Reg: 2, Value: 1}, {Reg: 3}, {Reg: 5}, {Reg: 7}, {Reg: 11},
		{Reg: 13}, {Reg: 17}, {Reg: 19}, {Reg: 23}, {Reg: 29},
	}
	assert.Equal(want, rp.Inits)
}

func TestSynthesize_Deltas(t *testing.T) {
	assert := assert.New(t)

	prog, err := machine.NewProgram([2]int64{45, 12})
	assert.NoError(err)

	rp, err := Synthesize(prog, big.NewInt(12), 100)
	assert.NoError(err)

	// 45/12 unreduced: guards and costs from 12 = 2^2 * 3, gains from
	// 45 = 3^2 * 5.
	branch := rp.Branches[0]
	assert.Equal([]Guard{{Reg: 2, Min: 2}, {Reg: 3, Min: 1}}, branch.Guards)
	assert.Equal([]Stmt{
		Update{Reg: 2, Delta: -2},
		Update{Reg: 3, Delta: -1},
		Update{Reg: 3, Delta: 2},
		Update{Reg: 5, Delta: 1},
	}, branch.Body)
}

func TestSynthesize_ZeroNumerator(t *testing.T) {
	assert := assert.New(t)

	prog, err := machine.NewProgram([2]int64{0, 2})
	assert.NoError(err)

	rp, err := Synthesize(prog, big.NewInt(4), 10)
	assert.NoError(err)

	branch := rp.Branches[0]
	assert.Equal([]Guard{{Reg: 2, Min: 1}}, branch.Guards)
	assert.Equal([]Stmt{Clear{}}, branch.Body)
}

func TestSynthesize_Unconditional(t *testing.T) {
	assert := assert.New(t)

	prog, err := machine.NewProgram([2]int64{3, 2}, [2]int64{55, 1}, [2]int64{7, 3})
	assert.NoError(err)

	rp, err := Synthesize(prog, big.NewInt(2), 10)
	assert.NoError(err)

	// 55/1 guards nothing, so it ends the chain; 7/3 is unreachable but
	// still contributes its primes to the register set.
	assert.Equal(2, len(rp.Branches))
	assert.Empty(rp.Branches[1].Guards)
	assert.Equal([]Stmt{
		Update{Reg: 5, Delta: 1},
		Update{Reg: 11, Delta: 1},
	}, rp.Branches[1].Body)
	assert.Nil(rp.Fallback)

	var primes []int64
	for _, init := range rp.Inits {
		primes = append(primes, init.Reg)
	}
	assert.Equal([]int64{2, 3, 5, 7, 11}, primes)
}

func TestSynthesize_Invalid(t *testing.T) {
	assert := assert.New(t)

	prog, err := machine.NewProgram([2]int64{1, 2})
	assert.NoError(err)

	rp, err := Synthesize(nil, big.NewInt(2), 10)
	assert.ErrorIs(err, machine.ErrProgramInvalid)
	assert.Nil(rp)

	rp, err = Synthesize(prog, nil, 10)
	assert.ErrorIs(err, machine.ErrStartInvalid)
	assert.Nil(rp)

	rp, err = Synthesize(prog, big.NewInt(0), 10)
	assert.ErrorIs(err, machine.ErrStartInvalid)
	assert.Nil(rp)

	rp, err = Synthesize(prog, big.NewInt(2), 0)
	assert.ErrorIs(err, ErrBudgetInvalid)
	assert.Nil(rp)
}

func TestNewRenderer(t *testing.T) {
	assert := assert.New(t)

	ren, err := NewRenderer("go")
	assert.NoError(err)
	assert.IsType(&GoRenderer{}, ren)

	ren, err = NewRenderer("starlark")
	assert.NoError(err)
	assert.IsType(&StarlarkRenderer{}, ren)

	ren, err = NewRenderer("cobol")
	assert.ErrorIs(err, ErrTargetUnknown)
	assert.Nil(ren)
}
