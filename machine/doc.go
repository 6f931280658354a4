// Package machine implements the FRACTRAN execution engine.
//
// A FRACTRAN program is an ordered list of fractions, and the entire machine
// state is a single positive integer N. Each step scans the fractions in
// program order and replaces N with f*N for the first fraction f such that
// f*N is an integer; if no fraction applies, the machine halts. State values
// are unbounded products of primes, so all state arithmetic is performed on
// arbitrary-precision integers.
//
// The package also provides the program text parser, a YAML program loader,
// and the register-set derivation shared with the synthesizer.
package machine
