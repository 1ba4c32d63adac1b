package pddl

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestInferTypes_UnaryInertiaOnly: only unary predicates with pure
// inertia get an inferred domain; everything else stays nil.
func TestInferTypes_UnaryInertiaOnly(t *testing.T) {
	p := &Problem{
		Predicates:      []string{"truck", "at", "busy"},
		TypedPredicates: [][]int{{0}, {0, 0}, {0}},
		Types:           []string{"object"},
		Domains:         []*ConstantSet{NewConstantSet(0, 1, 2)},
		Constants:       []string{"a", "b", "c"},
		Init: []*Expression{
			NewAtom(0, 0),    // truck(a)
			NewAtom(0, 1),    // truck(b)
			NewAtom(1, 0, 2), // at(a, c)
			NewAtom(2, 2),    // busy(c)
		},
	}
	// busy is added by an action, so it is not a pure inertia.
	a := NewAction("work", 0)
	a.Effects = NewAtom(2, 0)
	p.Actions = []*Action{a}

	p.ExtractInertia()
	p.InferTypesFromInertia()

	require.Len(t, p.InferredDomains, 3)
	require.NotNil(t, p.InferredDomains[0])
	assert.Equal(t, []int{0, 1}, p.InferredDomains[0].Values())
	assert.Nil(t, p.InferredDomains[1], "binary predicate must not get a domain")
	assert.Nil(t, p.InferredDomains[2], "negative inertia must not get a domain")
}

// TestInferTypes_Soundness: the inferred domain holds exactly the
// constants whose fact is in the initial state.
func TestInferTypes_Soundness(t *testing.T) {
	p := &Problem{
		Predicates:      []string{"heavy"},
		TypedPredicates: [][]int{{0}},
		Types:           []string{"object"},
		Domains:         []*ConstantSet{NewConstantSet(0, 1, 2, 3)},
		Constants:       []string{"a", "b", "c", "d"},
		Init: []*Expression{
			NewAtom(0, 3),
			NewAtom(0, 1),
		},
	}
	p.ExtractInertia()
	p.InferTypesFromInertia()

	domain := p.InferredDomains[0]
	require.NotNil(t, domain)
	for _, fact := range p.Init {
		assert.True(t, domain.Contains(fact.Arguments[0]))
	}
	for _, c := range domain.Values() {
		found := false
		for _, fact := range p.Init {
			if fact.Arguments[0] == c {
				found = true
			}
		}
		assert.True(t, found, "constant %d has no supporting fact", c)
	}
	assert.Equal(t, 2, domain.Size())
}

// TestInferTypes_UnwrapsLeadingNot follows the original encoding: a fact
// wrapped in NOT is unwrapped before the predicate is matched.
func TestInferTypes_UnwrapsLeadingNot(t *testing.T) {
	p := &Problem{
		Predicates:      []string{"flagged"},
		TypedPredicates: [][]int{{0}},
		Types:           []string{"object"},
		Domains:         []*ConstantSet{NewConstantSet(0, 1)},
		Constants:       []string{"a", "b"},
		Init: []*Expression{
			NewAtom(0, 0),
			NewNot(NewAtom(0, 1)),
		},
	}
	p.ExtractInertia()
	p.InferTypesFromInertia()

	require.NotNil(t, p.InferredDomains[0])
	assert.Equal(t, []int{0, 1}, p.InferredDomains[0].Values())
}

// TestInferTypes_EmptyExtension: a unary pure inertia absent from the
// initial state gets an empty, non-nil domain.
func TestInferTypes_EmptyExtension(t *testing.T) {
	p := &Problem{
		Predicates:      []string{"ghost"},
		TypedPredicates: [][]int{{0}},
		Types:           []string{"object"},
		Domains:         []*ConstantSet{NewConstantSet(0)},
		Constants:       []string{"a"},
	}
	p.ExtractInertia()
	p.InferTypesFromInertia()

	require.NotNil(t, p.InferredDomains[0])
	assert.Equal(t, 0, p.InferredDomains[0].Size())
}
