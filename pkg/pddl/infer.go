package pddl

// InferTypesFromInertia computes the inferred domain of every unary pure
// inertia predicate. For such a predicate p the inferred domain is the set
// of constants c with (p c) in the initial state: by inertia the extension
// never changes, so it refines p's single parameter type. Every other
// predicate gets a nil entry.
//
// Initial-state facts wrapped in a leading NOT are unwrapped before the
// predicate is matched, as the original encoding does.
func (p *Problem) InferTypesFromInertia() {
	p.InferredDomains = make([]*ConstantSet, len(p.Predicates))
	for i := range p.Predicates {
		if p.Arity(i) != 1 || p.Inertia[i] != INERTIA {
			continue
		}
		domain := NewConstantSet()
		for _, fact := range p.Init {
			if fact.Connective == NOT {
				fact = fact.Children[0]
			}
			if fact.Predicate == i {
				domain.Add(fact.Arguments[0])
			}
		}
		p.InferredDomains[i] = domain
	}
}
