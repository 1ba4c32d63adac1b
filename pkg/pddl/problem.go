package pddl

import (
	"fmt"

	set "github.com/hashicorp/go-set/v3"
)

// ConstantSet is an insertion-ordered set of constant ids. Type domains and
// inferred domains preserve the order constants were first added, so table
// dumps and refined-type domains are deterministic.
type ConstantSet struct {
	members *set.Set[int]
	order   []int
}

// NewConstantSet returns a set holding the given constants in order.
func NewConstantSet(constants ...int) *ConstantSet {
	s := &ConstantSet{members: set.New[int](len(constants))}
	for _, c := range constants {
		s.Add(c)
	}
	return s
}

// Add inserts the constant and reports whether it was not already present.
func (s *ConstantSet) Add(c int) bool {
	if !s.members.Insert(c) {
		return false
	}
	s.order = append(s.order, c)
	return true
}

// Contains reports membership.
func (s *ConstantSet) Contains(c int) bool { return s.members.Contains(c) }

// Size returns the number of constants in the set.
func (s *ConstantSet) Size() int { return s.members.Size() }

// Values returns the constants in insertion order. The slice is a copy.
func (s *ConstantSet) Values() []int {
	out := make([]int, len(s.order))
	copy(out, s.order)
	return out
}

// Clone returns an independent copy of the set.
func (s *ConstantSet) Clone() *ConstantSet {
	return NewConstantSet(s.order...)
}

// Intersect returns a new set holding the constants present in both sets,
// in the receiver's insertion order.
func (s *ConstantSet) Intersect(other *ConstantSet) *ConstantSet {
	inter := s.members.Intersect(other.members)
	out := NewConstantSet()
	for _, c := range s.order {
		if inter.Contains(c) {
			out.Add(c)
		}
	}
	return out
}

// Difference returns a new set holding the receiver's constants absent
// from other, in the receiver's insertion order.
func (s *ConstantSet) Difference(other *ConstantSet) *ConstantSet {
	diff := s.members.Difference(other.members)
	out := NewConstantSet()
	for _, c := range s.order {
		if diff.Contains(c) {
			out.Add(c)
		}
	}
	return out
}

// Equal reports whether both sets hold the same constants, regardless of
// insertion order.
func (s *ConstantSet) Equal(other *ConstantSet) bool {
	if s.Size() != other.Size() {
		return false
	}
	for _, c := range s.order {
		if !other.members.Contains(c) {
			return false
		}
	}
	return true
}

func (s *ConstantSet) String() string {
	return fmt.Sprintf("%v", s.order)
}

// Problem owns every table of the integer-encoded planning problem. The
// pre-instantiation pipeline is the single writer; afterwards the tables
// are read-only. Problems are independent values: concurrent runs each get
// their own Problem, never a shared singleton.
type Problem struct {
	// Parser-provided tables.
	Predicates      []string      // predicate id -> name
	TypedPredicates [][]int       // predicate id -> argument type ids
	Types           []string      // type id -> name
	Domains         []*ConstantSet // type id -> constants of that type
	Constants       []string      // constant id -> name

	// Parser-provided structures.
	Actions []*Action
	Methods []*Method
	Init    []*Expression // ground ATOM or NOT ATOM facts

	// Pipeline products.
	Inertia         []Inertia      // predicate id -> inertia tag
	InferredDomains []*ConstantSet // predicate id -> inferred domain, nil unless unary pure inertia
	PredicateTables [][]*IntMatrix // predicate id -> 2^arity occurrence tables
}

// Arity returns the number of arguments of the predicate.
func (p *Problem) Arity(predicate int) int {
	return len(p.TypedPredicates[predicate])
}

// check validates the structural invariants the pipeline relies on.
func (p *Problem) check() error {
	if p == nil {
		return fmt.Errorf("%w: problem", ErrNilInput)
	}
	if p.Predicates == nil || p.TypedPredicates == nil || p.Types == nil ||
		p.Domains == nil || p.Constants == nil {
		return fmt.Errorf("%w: missing symbol table", ErrNilInput)
	}
	if len(p.TypedPredicates) != len(p.Predicates) {
		return fmt.Errorf("%w: %d typed predicates for %d predicates",
			ErrMismatchedTables, len(p.TypedPredicates), len(p.Predicates))
	}
	if len(p.Domains) != len(p.Types) {
		return fmt.Errorf("%w: %d domains for %d types",
			ErrMismatchedTables, len(p.Domains), len(p.Types))
	}
	if p.Inertia != nil && len(p.Inertia) != len(p.Predicates) {
		return fmt.Errorf("%w: %d inertia tags for %d predicates",
			ErrMismatchedTables, len(p.Inertia), len(p.Predicates))
	}
	return nil
}

// typeIndex returns the id of the named type, or -1 if absent.
func (p *Problem) typeIndex(name string) int {
	for i, t := range p.Types {
		if t == name {
			return i
		}
	}
	return -1
}

// ensureType returns the id of the named type, adding it with the given
// domain when missing. Each refined type name appears exactly once in the
// type table.
func (p *Problem) ensureType(name string, domain func() *ConstantSet) int {
	if i := p.typeIndex(name); i >= 0 {
		return i
	}
	p.Types = append(p.Types, name)
	p.Domains = append(p.Domains, domain())
	return len(p.Types) - 1
}
