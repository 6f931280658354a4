package synth

import (
	"fmt"
	"math/big"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"

	"github.com/ezrec/fractran/machine"
)

// execStarlark executes emitted Starlark source and captures its prints.
func execStarlark(t *testing.T, src string) (lines []string) {
	thread := &starlark.Thread{
		Print: func(_ *starlark.Thread, msg string) {
			lines = append(lines, msg)
		},
	}
	opts := syntax.FileOptions{}
	_, err := starlark.ExecFileOptions(&opts, thread, "synth", src, nil)
	assert.NoError(t, err)

	return
}

// lineValue reconstructs the integer from a printed 'p^a * q^b' line.
func lineValue(t *testing.T, line string) (value *big.Int) {
	value = big.NewInt(1)
	for _, term := range strings.Split(line, " * ") {
		var prime, power int64
		_, err := fmt.Sscanf(term, "%d^%d", &prime, &power)
		assert.NoError(t, err)
		value.Mul(value, new(big.Int).Exp(big.NewInt(prime), big.NewInt(power), nil))
	}

	return
}

var halvingStarlark = strings.Join([]string{
	"# 1/2",
	"",
	"def run():",
	"    # Starting conditions",
	"    registers = {}",
	"    registers[2] = 3",
	"",
	"    # Main loop",
	"    for _ in range(20):",
	"        if not any([registers[p] != 0 for p in registers]):",
	"            break",
	"        if registers[2] >= 1:  # fraction A (1/2)",
	"            registers[2] -= 1",
	"        else:",
	"            registers = {p: 0 for p in registers}",
	"        print(\" * \".join([str(p) + \"^\" + str(registers[p]) for p in registers]))",
	"",
	"run()",
	"",
}, "\n")

func TestStarlarkRenderer(t *testing.T) {
	assert := assert.New(t)

	prog, err := machine.NewProgram([2]int64{1, 2})
	assert.NoError(err)

	rp, err := Synthesize(prog, big.NewInt(8), 20)
	assert.NoError(err)

	src, err := (&StarlarkRenderer{}).Render(rp)
	assert.NoError(err)
	assert.Equal(halvingStarlark, src)
}

func TestStarlarkRenderer_Executes(t *testing.T) {
	assert := assert.New(t)

	prog, err := machine.NewProgram([2]int64{1, 2})
	assert.NoError(err)

	rp, err := Synthesize(prog, big.NewInt(8), 20)
	assert.NoError(err)

	src, err := (&StarlarkRenderer{}).Render(rp)
	assert.NoError(err)

	// 8 halves to 4, 2, 1, then every register is zero and the loop ends.
	lines := execStarlark(t, src)
	assert.Equal([]string{"2^2", "2^1", "2^0"}, lines)
}

func TestStarlarkRenderer_HaltClears(t *testing.T) {
	assert := assert.New(t)

	// Start state 3 has no factor of 2, so no guard matches: the fallback
	// clears every register, then the loop ends.
	prog, err := machine.NewProgram([2]int64{1, 2})
	assert.NoError(err)

	rp, err := Synthesize(prog, big.NewInt(3), 20)
	assert.NoError(err)

	src, err := (&StarlarkRenderer{}).Render(rp)
	assert.NoError(err)

	lines := execStarlark(t, src)
	assert.Equal([]string{"2^0 * 3^0"}, lines)
}

func TestStarlarkRenderer_Fallthrough(t *testing.T) {
	assert := assert.New(t)

	// The 1/1 else-branch keeps the program live; only the cap stops it.
	prog, err := machine.NewProgram([2]int64{3, 2}, [2]int64{1, 1})
	assert.NoError(err)

	rp, err := Synthesize(prog, big.NewInt(5), 5)
	assert.NoError(err)

	src, err := (&StarlarkRenderer{}).Render(rp)
	assert.NoError(err)

	lines := execStarlark(t, src)
	assert.Equal(5, len(lines))
	for _, line := range lines {
		assert.Equal(int64(5), lineValue(t, line).Int64())
	}
}

func TestStarlarkRenderer_MatchesMachine(t *testing.T) {
	assert := assert.New(t)

	prog, err := machine.NewProgram(primegame...)
	assert.NoError(err)

	mach, err := machine.NewMachine(prog, big.NewInt(2))
	assert.NoError(err)
	mach.Run(11)

	var states []*big.Int
	for _, step := range mach.Trace() {
		states = append(states, step.State)
	}

	rp, err := Synthesize(prog, big.NewInt(2), 10)
	assert.NoError(err)

	src, err := (&StarlarkRenderer{}).Render(rp)
	assert.NoError(err)

	// Register iteration i lands on the same value the engine reaches at
	// step i+1.
	lines := execStarlark(t, src)
	assert.Equal(10, len(lines))
	for n, line := range lines {
		assert.Equal(0, states[n+1].Cmp(lineValue(t, line)), "iteration %v", n)
	}
}
