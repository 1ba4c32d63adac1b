package pddl

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestIncrementMask_VisitsAllMasks: starting from all-zeros the counter
// visits each of the 2^n masks exactly once, right-most bit first, before
// overflowing.
func TestIncrementMask_VisitsAllMasks(t *testing.T) {
	mask := make([]int, 3)
	seen := map[int]bool{maskToInt(mask): true}

	steps := 1
	for incrementMask(mask) {
		encoded := maskToInt(mask)
		assert.False(t, seen[encoded], "mask %d visited twice", encoded)
		seen[encoded] = true
		steps++
	}
	assert.Equal(t, 8, steps)
	assert.Len(t, seen, 8)
	// Overflow leaves the mask at all-zeros; advancing an all-ones mask
	// fails.
	assert.Equal(t, []int{0, 0, 0}, mask)
	assert.False(t, incrementMask([]int{1, 1}))
}

// TestMaskToInt_BigEndian: [0,1,1] encodes to 3, [1,0] to 2.
func TestMaskToInt_BigEndian(t *testing.T) {
	assert.Equal(t, 0, maskToInt(nil))
	assert.Equal(t, 3, maskToInt([]int{0, 1, 1}))
	assert.Equal(t, 2, maskToInt([]int{1, 0}))
	assert.Equal(t, 5, maskToInt([]int{1, 0, 1}))
}

// TestIncrementMask_MatchesTableOrder: the mask sequence lines up with
// the table indices 0, 1, 2, ... so the table for mask m sits at index m.
func TestIncrementMask_MatchesTableOrder(t *testing.T) {
	mask := make([]int, 2)
	var order []int
	order = append(order, maskToInt(mask))
	for incrementMask(mask) {
		order = append(order, maskToInt(mask))
	}
	assert.Equal(t, []int{0, 1, 2, 3}, order)
}

// predicateTableProblem builds the binary-relation scenario: R(a, b) over
// constants {x, y} with init {R(x,y), R(y,y)}.
func predicateTableProblem() *Problem {
	return &Problem{
		Predicates:      []string{"R"},
		TypedPredicates: [][]int{{0, 0}},
		Types:           []string{"object"},
		Domains:         []*ConstantSet{NewConstantSet(0, 1)},
		Constants:       []string{"x", "y"},
		Init: []*Expression{
			NewAtom(0, 0, 1), // R(x, y)
			NewAtom(0, 1, 1), // R(y, y)
		},
	}
}

// TestCreatePredicateTables_BinaryRelation checks every mask of the
// scenario: first-argument counts, second-argument counts, full tuples
// and the arity-zero total.
func TestCreatePredicateTables_BinaryRelation(t *testing.T) {
	p := predicateTableProblem()
	p.CreatePredicateTables()

	require.Len(t, p.PredicateTables, 1)
	tables := p.PredicateTables[0]
	require.Len(t, tables, 4)

	// Mask 00: total number of R facts.
	assert.Equal(t, 2, tables[0].Get(nil))

	// Mask 01: second argument only.
	assert.Equal(t, 2, tables[1].Get([]int{1}))
	assert.Equal(t, 0, tables[1].Get([]int{0}))

	// Mask 10: first argument only.
	assert.Equal(t, 1, tables[2].Get([]int{0}))
	assert.Equal(t, 1, tables[2].Get([]int{1}))

	// Mask 11: full tuples.
	assert.Equal(t, 1, tables[3].Get([]int{0, 1}))
	assert.Equal(t, 1, tables[3].Get([]int{1, 1}))
	assert.Equal(t, 0, tables[3].Get([]int{0, 0}))
}

// TestCreatePredicateTables_Dimensions: table m counts tuples of
// popcount(m) positions.
func TestCreatePredicateTables_Dimensions(t *testing.T) {
	p := predicateTableProblem()
	p.CreatePredicateTables()

	dims := []int{0, 1, 1, 2}
	for m, table := range p.PredicateTables[0] {
		assert.Equal(t, dims[m], table.Dimension(), "mask %d", m)
	}
}

// TestCreatePredicateTables_UnwrapsNot counts a NOT-wrapped initial fact
// under its inner atom, as the original encoding does.
func TestCreatePredicateTables_UnwrapsNot(t *testing.T) {
	p := predicateTableProblem()
	p.Init = append(p.Init, NewNot(NewAtom(0, 0, 0)))
	p.CreatePredicateTables()

	tables := p.PredicateTables[0]
	assert.Equal(t, 3, tables[0].Get(nil))
	assert.Equal(t, 1, tables[3].Get([]int{0, 0}))
}

// TestPredicateTableLines renders only non-zero counters, free positions
// as X variables.
func TestPredicateTableLines(t *testing.T) {
	p := predicateTableProblem()
	p.CreatePredicateTables()

	lines := p.predicateTableLines()
	assert.Contains(t, lines, "(R X0 X1) : 2")
	assert.Contains(t, lines, "(R x X0) : 1")
	assert.Contains(t, lines, "(R X0 y) : 2")
	assert.Contains(t, lines, "(R x y) : 1")
	assert.Contains(t, lines, "(R y y) : 1")
	assert.NotContains(t, lines, "(R x x) : 0")
	for _, line := range lines {
		assert.NotContains(t, line, ": 0")
	}
}
