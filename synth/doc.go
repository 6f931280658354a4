// Package synth translates a FRACTRAN program into an equivalent explicit
// register-machine program over named integer registers, one register per
// distinct prime across the program's fractions.
//
// Synthesis builds a typed statement tree mirroring the engine's
// first-match-wins fraction scan as a priority-ordered conditional chain; a
// separate, swappable renderer turns the tree into source text for one
// target language. The synthesizer only emits source, it never executes it.
package synth
