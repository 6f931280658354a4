// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"flag"
	"fmt"
	"log"
	"math/big"
	"os"
	"strings"

	"github.com/olekukonko/tablewriter"

	"github.com/ezrec/fractran/machine"
	"github.com/ezrec/fractran/synth"
)

func main() {
	var file string
	var yamlFile string
	var start string
	var maxSteps int
	var verbose bool
	var trace bool
	var target string
	var registers bool

	flag.StringVar(&file, "f", "", "program text file to run")
	flag.StringVar(&yamlFile, "y", "", "YAML program file to run")
	flag.StringVar(&start, "n", "", "starting value (default 2)")
	flag.IntVar(&maxSteps, "m", 0, "maximum number of steps (default 100)")
	flag.BoolVar(&verbose, "v", false, "log each successful step")
	flag.BoolVar(&trace, "vv", false, "log every attempted fraction")
	flag.StringVar(&target, "synth", "", "emit an equivalent register program ('go' or 'starlark') instead of running")
	flag.BoolVar(&registers, "registers", false, "show the program's register set instead of running")

	flag.Parse()

	var prog *machine.Program
	var err error
	switch {
	case len(file) != 0:
		if flag.NArg() != 0 {
			log.Fatalf("%v: Unknown arguments: %v", os.Args[0], flag.Args())
		}
		inf, err2 := os.Open(file)
		if err2 != nil {
			log.Fatalf("%v: %v", file, err2)
		}
		defer inf.Close()

		par := &machine.Parser{}
		prog, err = par.Parse(inf)
	case len(yamlFile) != 0:
		if flag.NArg() != 0 {
			log.Fatalf("%v: Unknown arguments: %v", os.Args[0], flag.Args())
		}
		inf, err2 := os.Open(yamlFile)
		if err2 != nil {
			log.Fatalf("%v: %v", yamlFile, err2)
		}
		defer inf.Close()

		prog, err = machine.LoadProgram(inf)
	default:
		// Positional fractions: 'num/den num/den ...'
		par := &machine.Parser{}
		prog, err = par.Parse(strings.NewReader(strings.Join(flag.Args(), " ")))
	}
	if err != nil {
		log.Fatalf("%v: %v", os.Args[0], err)
	}

	value := big.NewInt(2)
	if prog.Start != nil {
		value = prog.Start
	}
	if len(start) != 0 {
		var ok bool
		value, ok = new(big.Int).SetString(start, 10)
		if !ok {
			log.Fatalf("%v: starting value '%v' is not an integer", os.Args[0], start)
		}
	}

	if maxSteps == 0 {
		maxSteps = prog.MaxSteps
	}
	if maxSteps == 0 {
		maxSteps = 100
	}

	if registers {
		regs, err := machine.Registers(prog, value)
		if err != nil {
			log.Fatalf("%v: %v", os.Args[0], err)
		}

		table := tablewriter.NewWriter(os.Stdout)
		table.SetHeader([]string{"Register", "Initial"})
		for _, prime := range regs.Primes() {
			table.Append([]string{
				fmt.Sprintf("%v", prime),
				fmt.Sprintf("%v", regs.Get(prime)),
			})
		}
		table.Render()
		return
	}

	if len(target) != 0 {
		rp, err := synth.Synthesize(prog, value, maxSteps)
		if err != nil {
			log.Fatalf("%v: %v", os.Args[0], err)
		}

		ren, err := synth.NewRenderer(target)
		if err != nil {
			log.Fatalf("%v: %v", os.Args[0], err)
		}

		text, err := ren.Render(rp)
		if err != nil {
			log.Fatalf("%v: %v", os.Args[0], err)
		}
		fmt.Print(text)
		return
	}

	mach, err := machine.NewMachine(prog, value)
	if err != nil {
		log.Fatalf("%v: %v", os.Args[0], err)
	}
	if verbose {
		mach.Verbosity = machine.SUCCESS
	}
	if trace {
		mach.Verbosity = machine.TRACE
	}

	mach.Run(maxSteps)
	fmt.Println(mach.String())

	if mach.Reason() == machine.HALT_BUDGET {
		log.Printf("step budget of %v exhausted before halt", maxSteps)
	}
}
