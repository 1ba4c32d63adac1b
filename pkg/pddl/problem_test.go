package pddl

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestConstantSet_InsertionOrder: values come back in first-insertion
// order with duplicates ignored.
func TestConstantSet_InsertionOrder(t *testing.T) {
	s := NewConstantSet(3, 1, 2)
	assert.False(t, s.Add(1))
	assert.True(t, s.Add(0))
	assert.Equal(t, []int{3, 1, 2, 0}, s.Values())
	assert.Equal(t, 4, s.Size())
	assert.True(t, s.Contains(2))
	assert.False(t, s.Contains(9))
}

// TestConstantSet_Algebra: intersection and difference keep the
// receiver's order, and equality ignores order.
func TestConstantSet_Algebra(t *testing.T) {
	a := NewConstantSet(0, 1, 2, 3)
	b := NewConstantSet(3, 1)

	inter := a.Intersect(b)
	assert.Equal(t, []int{1, 3}, inter.Values())

	diff := a.Difference(b)
	assert.Equal(t, []int{0, 2}, diff.Values())

	assert.True(t, inter.Equal(NewConstantSet(3, 1)))
	assert.False(t, inter.Equal(diff))

	// The inputs are untouched.
	assert.Equal(t, []int{0, 1, 2, 3}, a.Values())
}

// TestConstantSet_CloneIndependence mutates a clone only.
func TestConstantSet_CloneIndependence(t *testing.T) {
	a := NewConstantSet(1, 2)
	c := a.Clone()
	c.Add(3)
	assert.Equal(t, 2, a.Size())
	assert.Equal(t, 3, c.Size())
}

// TestProblem_EnsureType adds a refined type once and reuses it after.
func TestProblem_EnsureType(t *testing.T) {
	p := &Problem{
		Types:   []string{"object"},
		Domains: []*ConstantSet{NewConstantSet(0, 1)},
	}
	calls := 0
	build := func() *ConstantSet {
		calls++
		return NewConstantSet(0)
	}

	ti := p.ensureType("object^P", build)
	assert.Equal(t, 1, ti)
	assert.Equal(t, 1, calls)

	again := p.ensureType("object^P", build)
	assert.Equal(t, ti, again)
	assert.Equal(t, 1, calls, "domain must not be rebuilt for an existing type")
	require.Len(t, p.Types, 2)
	require.Len(t, p.Domains, 2)
}

// TestProblem_CheckInvariants covers the table-size invariants.
func TestProblem_CheckInvariants(t *testing.T) {
	p := &Problem{
		Predicates:      []string{"P"},
		TypedPredicates: [][]int{{0}},
		Types:           []string{"object"},
		Domains:         []*ConstantSet{NewConstantSet(0)},
		Constants:       []string{"a"},
	}
	require.NoError(t, p.check())

	p.Inertia = []Inertia{INERTIA, FLUENT}
	assert.ErrorIs(t, p.check(), ErrMismatchedTables)

	p.Inertia = nil
	p.Domains = nil
	assert.ErrorIs(t, p.check(), ErrNilInput)
}

// TestProblem_Arity reads the typed-predicate table.
func TestProblem_Arity(t *testing.T) {
	p := &Problem{TypedPredicates: [][]int{{0, 0}, {}, {0}}}
	assert.Equal(t, 2, p.Arity(0))
	assert.Equal(t, 0, p.Arity(1))
	assert.Equal(t, 1, p.Arity(2))
}
