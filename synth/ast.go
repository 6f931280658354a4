package synth

// Stmt is a single statement in a synthesized register program.
type Stmt interface {
	stmt()
}

// Assign sets a register to a value.
type Assign struct {
	Reg   int64 // Register name (prime).
	Value int   // Value assigned.
}

// Update adjusts a register by a signed delta.
type Update struct {
	Reg   int64 // Register name (prime).
	Delta int   // Signed exponent delta.
}

// Clear zeroes every register. Since "all registers zero" is the main
// loop's own termination test, halting must be total register clearance,
// not a flag.
type Clear struct{}

func (Assign) stmt() {}
func (Update) stmt() {}
func (Clear) stmt()  {}

// Guard requires a register to hold at least Min. Registers absent from a
// fraction's denominator need no guard; their implicit requirement is 0.
type Guard struct {
	Reg int64 // Register name (prime).
	Min int   // Required minimum value.
}

// Branch is one alternative of the conditional chain, mirroring one
// fraction of the source program. Empty Guards means the branch is
// unconditional.
type Branch struct {
	Label  string  // Single-letter fraction label.
	Num    int64   // Source fraction numerator.
	Den    int64   // Source fraction denominator.
	Guards []Guard // Guard conditions, all must hold.
	Body   []Stmt  // Effect when the branch is taken.
}

// Program is a synthesized register program: initialize the registers,
// then loop while any register is nonzero, evaluating the branches in
// priority order, first match wins, printing the register state after
// every iteration, bounded by the iteration cap.
type Program struct {
	Name     string   // Optional source program name.
	Source   string   // Source fraction list, for the header comment.
	Inits    []Assign // Starting register values, ascending by register.
	MaxSteps int      // Iteration safety cap.
	Branches []Branch // Priority-ordered conditional chain.
	Fallback []Stmt   // Effect when no branch matches; nil when a branch is unconditional.
}
