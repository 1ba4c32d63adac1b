package pddl

import "errors"

// Structural errors are fatal: the pipeline surfaces them immediately and a
// caller that receives one should discard the partially mutated tables.
var (
	// ErrNilInput reports a nil problem or a missing required table.
	ErrNilInput = errors.New("pddl: nil input")

	// ErrMismatchedTables reports side tables whose sizes disagree with the
	// predicate table.
	ErrMismatchedTables = errors.New("pddl: mismatched tables")

	// ErrMalformedExpression reports a connective with fewer children than
	// its traversal requires.
	ErrMalformedExpression = errors.New("pddl: malformed expression")
)
