package synth

import (
	"fmt"
	"strings"
)

// StarlarkRenderer renders the register program as Starlark source.
//
// Starlark has no while statement, so the iteration cap is structural: the
// main loop is a bounded 'for _ in range(n)' that breaks once every
// register is zero. The output executes under go.starlark.net with default
// file options.
type StarlarkRenderer struct{}

// Render emits the register program as Starlark source text.
func (ren *StarlarkRenderer) Render(rp *Program) (text string, err error) {
	out := &strings.Builder{}

	if len(rp.Name) != 0 {
		fmt.Fprintf(out, "# %v\n", rp.Name)
	}
	if len(rp.Source) != 0 {
		fmt.Fprintf(out, "# %v\n", rp.Source)
	}

	fmt.Fprintf(out, "\ndef run():\n")
	fmt.Fprintf(out, "    # Starting conditions\n")
	fmt.Fprintf(out, "    registers = {}\n")
	for _, init := range rp.Inits {
		ren.stmt(out, "    ", init)
	}

	fmt.Fprintf(out, "\n    # Main loop\n")
	fmt.Fprintf(out, "    for _ in range(%v):\n", rp.MaxSteps)
	fmt.Fprintf(out, "        if not any([registers[p] != 0 for p in registers]):\n")
	fmt.Fprintf(out, "            break\n")

	for n, branch := range rp.Branches {
		var head string
		switch {
		case len(branch.Guards) == 0 && n == 0:
			head = "if True:"
		case len(branch.Guards) == 0:
			head = "else:"
		default:
			conds := make([]string, 0, len(branch.Guards))
			for _, guard := range branch.Guards {
				conds = append(conds, fmt.Sprintf("registers[%v] >= %v", guard.Reg, guard.Min))
			}
			kw := "if"
			if n > 0 {
				kw = "elif"
			}
			head = fmt.Sprintf("%v %v:", kw, strings.Join(conds, " and "))
		}
		fmt.Fprintf(out, "        %v  # fraction %v (%v/%v)\n",
			head, branch.Label, branch.Num, branch.Den)
		ren.body(out, "            ", branch.Body)
	}

	if rp.Fallback != nil {
		if len(rp.Branches) != 0 {
			fmt.Fprintf(out, "        else:\n")
			ren.body(out, "            ", rp.Fallback)
		} else {
			ren.body(out, "        ", rp.Fallback)
		}
	}

	fmt.Fprintf(out, "        print(\" * \".join([str(p) + \"^\" + str(registers[p]) for p in registers]))\n")
	fmt.Fprintf(out, "\nrun()\n")

	text = out.String()

	return
}

// body emits a statement suite; Starlark requires 'pass' for an empty one.
func (ren *StarlarkRenderer) body(out *strings.Builder, indent string, body []Stmt) {
	if len(body) == 0 {
		fmt.Fprintf(out, "%vpass\n", indent)
		return
	}

	for _, st := range body {
		ren.stmt(out, indent, st)
	}
}

func (ren *StarlarkRenderer) stmt(out *strings.Builder, indent string, st Stmt) {
	switch st := st.(type) {
	case Assign:
		fmt.Fprintf(out, "%vregisters[%v] = %v\n", indent, st.Reg, st.Value)
	case Update:
		op, delta := "+=", st.Delta
		if delta < 0 {
			op, delta = "-=", -delta
		}
		fmt.Fprintf(out, "%vregisters[%v] %v %v\n", indent, st.Reg, op, delta)
	case Clear:
		// Comprehension rather than dict.clear(): the register names must
		// survive for the state print.
		fmt.Fprintf(out, "%vregisters = {p: 0 for p in registers}\n", indent)
	}
}
