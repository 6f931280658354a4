package synth

import (
	"fmt"
	"strings"
)

// GoRenderer renders the register program as a complete, runnable Go
// package main. The iteration cap is the loop condition of the main loop.
type GoRenderer struct{}

// Render emits the register program as Go source text.
func (ren *GoRenderer) Render(rp *Program) (text string, err error) {
	out := &strings.Builder{}

	fmt.Fprintf(out, "// Code generated by fractran synth. DO NOT EDIT.\n")
	if len(rp.Name) != 0 {
		fmt.Fprintf(out, "//\n// %v\n", rp.Name)
	}
	if len(rp.Source) != 0 {
		fmt.Fprintf(out, "//\n// %v\n", rp.Source)
	}

	fmt.Fprintf(out, "\npackage main\n")
	fmt.Fprintf(out, "\nimport \"fmt\"\n")
	fmt.Fprintf(out, "\nfunc main() {\n")

	fmt.Fprintf(out, "\t// Starting conditions\n")
	primes := make([]string, 0, len(rp.Inits))
	for _, init := range rp.Inits {
		primes = append(primes, fmt.Sprintf("%v", init.Reg))
	}
	fmt.Fprintf(out, "\tprimes := []int64{%v}\n", strings.Join(primes, ", "))
	fmt.Fprintf(out, "\tregisters := map[int64]int{}\n")
	for _, init := range rp.Inits {
		ren.stmt(out, "\t", init)
	}

	fmt.Fprintf(out, "\n\t// Main loop\n")
	fmt.Fprintf(out, "\tfor counter := 0; counter < %v; counter++ {\n", rp.MaxSteps)
	fmt.Fprintf(out, "\t\thalted := true\n")
	fmt.Fprintf(out, "\t\tfor _, p := range primes {\n")
	fmt.Fprintf(out, "\t\t\tif registers[p] != 0 {\n")
	fmt.Fprintf(out, "\t\t\t\thalted = false\n")
	fmt.Fprintf(out, "\t\t\t}\n")
	fmt.Fprintf(out, "\t\t}\n")
	fmt.Fprintf(out, "\t\tif halted {\n")
	fmt.Fprintf(out, "\t\t\tbreak\n")
	fmt.Fprintf(out, "\t\t}\n\n")

	for n, branch := range rp.Branches {
		var head string
		switch {
		case len(branch.Guards) == 0 && n == 0:
			head = "if true {"
		case len(branch.Guards) == 0:
			head = "} else {"
		default:
			conds := make([]string, 0, len(branch.Guards))
			for _, guard := range branch.Guards {
				conds = append(conds, fmt.Sprintf("registers[%v] >= %v", guard.Reg, guard.Min))
			}
			head = fmt.Sprintf("if %v {", strings.Join(conds, " && "))
			if n > 0 {
				head = "} else " + head
			}
		}
		fmt.Fprintf(out, "\t\t%v // fraction %v (%v/%v)\n",
			head, branch.Label, branch.Num, branch.Den)
		for _, st := range branch.Body {
			ren.stmt(out, "\t\t\t", st)
		}
	}

	if rp.Fallback != nil {
		if len(rp.Branches) != 0 {
			fmt.Fprintf(out, "\t\t} else {\n")
		}
		indent := "\t\t"
		if len(rp.Branches) != 0 {
			indent = "\t\t\t"
		}
		for _, st := range rp.Fallback {
			ren.stmt(out, indent, st)
		}
	}
	if len(rp.Branches) != 0 {
		fmt.Fprintf(out, "\t\t}\n")
	}

	fmt.Fprintf(out, "\n\t\tline := \"\"\n")
	fmt.Fprintf(out, "\t\tfor n, p := range primes {\n")
	fmt.Fprintf(out, "\t\t\tif n > 0 {\n")
	fmt.Fprintf(out, "\t\t\t\tline += \" * \"\n")
	fmt.Fprintf(out, "\t\t\t}\n")
	fmt.Fprintf(out, "\t\t\tline += fmt.Sprintf(\"%%v^%%v\", p, registers[p])\n")
	fmt.Fprintf(out, "\t\t}\n")
	fmt.Fprintf(out, "\t\tfmt.Println(line)\n")
	fmt.Fprintf(out, "\t}\n")
	fmt.Fprintf(out, "}\n")

	text = out.String()

	return
}

func (ren *GoRenderer) stmt(out *strings.Builder, indent string, st Stmt) {
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
		fmt.Fprintf(out, "%vfor _, p := range primes {\n", indent)
		fmt.Fprintf(out, "%v\tregisters[p] = 0\n", indent)
		fmt.Fprintf(out, "%v}\n", indent)
	}
}
