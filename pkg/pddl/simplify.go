package pddl

// This file implements the action and method simplification by typed
// parameter splitting. Every unary inertia literal reachable in an
// operator splits the operator into two candidates: one whose parameter
// type is narrowed to the constants satisfying the literal (the literal
// becomes TRUE) and one narrowed to the complement (the literal becomes
// FALSE). Candidates whose precondition or effect collapses to FALSE at
// the root are unreachable and dropped.

// SimplifyActionsWithInferredTypes replaces the problem's action list with
// the refined actions produced by splitting along every unary inertia
// literal. InferTypesFromInertia must have run first.
func (p *Problem) SimplifyActionsWithInferredTypes() {
	p.simplifyActions(false)
}

// SimplifyMethodsWithInferredTypes replaces the problem's method list with
// the refined methods. Only preconditions are collected and rewritten;
// methods have no effects.
func (p *Problem) SimplifyMethodsWithInferredTypes() {
	p.simplifyMethods(false)
}

func (p *Problem) simplifyActions(legacyConstantBreak bool) {
	var refined []*Action
	for _, a := range p.Actions {
		refined = append(refined, p.simplifyAction(a, legacyConstantBreak)...)
	}
	p.Actions = refined
}

func (p *Problem) simplifyAction(action *Action, legacyConstantBreak bool) []*Action {
	unaryInertia := p.collectUnaryInertia(action.Preconditions)
	unaryInertia = append(unaryInertia, p.collectUnaryInertia(action.Effects)...)

	candidates := []*Action{action}
	for _, inertia := range unaryInertia {
		index := DecodeVariable(inertia.Arguments[0])
		if index < 0 && !legacyConstantBreak {
			// The literal's argument is a constant: no parameter to split
			// on, so the literal is skipped and the candidates survive
			// unchanged.
			continue
		}
		var split []*Action
		for _, candidate := range candidates {
			if candidate.Arity() == 0 {
				continue
			}
			if index < 0 {
				// Legacy behavior inherited from the reference encoder:
				// a constant argument abandons the remaining candidates
				// of this literal, and with them the whole split chain.
				break
			}
			ti, ts := p.refinedTypes(action.TypeOfParameter(index), inertia.Predicate)

			with := CopyAction(candidate)
			with.SetTypeOfParameter(index, ti)
			p.replace(with.Preconditions, inertia, TRUE, ti, ts)
			p.replace(with.Effects, inertia, TRUE, ti, ts)
			if with.Preconditions.Connective != FALSE && with.Effects.Connective != FALSE {
				split = append(split, with)
			}

			without := CopyAction(candidate)
			without.SetTypeOfParameter(index, ts)
			p.replace(without.Preconditions, inertia, FALSE, ti, ts)
			p.replace(without.Effects, inertia, FALSE, ti, ts)
			if without.Preconditions.Connective != FALSE && without.Effects.Connective != FALSE {
				split = append(split, without)
			}
		}
		candidates = split
	}
	return candidates
}

func (p *Problem) simplifyMethods(legacyConstantBreak bool) {
	var refined []*Method
	for _, m := range p.Methods {
		refined = append(refined, p.simplifyMethod(m, legacyConstantBreak)...)
	}
	p.Methods = refined
}

func (p *Problem) simplifyMethod(method *Method, legacyConstantBreak bool) []*Method {
	unaryInertia := p.collectUnaryInertia(method.Preconditions)

	candidates := []*Method{method}
	for _, inertia := range unaryInertia {
		index := DecodeVariable(inertia.Arguments[0])
		if index < 0 && !legacyConstantBreak {
			continue
		}
		var split []*Method
		for _, candidate := range candidates {
			if candidate.Arity() == 0 {
				continue
			}
			if index < 0 {
				break
			}
			ti, ts := p.refinedTypes(method.TypeOfParameter(index), inertia.Predicate)

			with := CopyMethod(candidate)
			with.SetTypeOfParameter(index, ti)
			p.replace(with.Preconditions, inertia, TRUE, ti, ts)
			if with.Preconditions.Connective != FALSE {
				split = append(split, with)
			}

			without := CopyMethod(candidate)
			without.SetTypeOfParameter(index, ts)
			p.replace(without.Preconditions, inertia, FALSE, ti, ts)
			if without.Preconditions.Connective != FALSE {
				split = append(split, without)
			}
		}
		candidates = split
	}
	return candidates
}

// refinedTypes materializes the intersection and subtraction types of a
// declared type against the inferred domain of a unary inertia predicate.
// Refined types are keyed by name and created at most once:
// domains[A^B] = domains[A] n inferredDomains[B] and
// domains[A\B] = domains[A] \ inferredDomains[B].
func (p *Problem) refinedTypes(declared, inertiaPredicate int) (ti, ts int) {
	declaredName := p.Types[declared]
	inertiaName := p.Predicates[inertiaPredicate]
	ti = p.ensureType(declaredName+"^"+inertiaName, func() *ConstantSet {
		return p.Domains[declared].Intersect(p.InferredDomains[inertiaPredicate])
	})
	ts = p.ensureType(declaredName+`\`+inertiaName, func() *ConstantSet {
		return p.Domains[declared].Difference(p.InferredDomains[inertiaPredicate])
	})
	return ti, ts
}

// replace rewrites, in place, every occurrence of the unary inertia
// literal in the expression to the given truth connective, propagating the
// usual collapses: a FALSE child collapses an AND, a TRUE child collapses
// an OR, and collapsed-away children are dropped. A quantifier binding the
// literal's variable expands into the two type-refined branches.
func (p *Problem) replace(e, inertia *Expression, truth Connective, ti, ts int) {
	switch e.Connective {
	case ATOM:
		if e.Equal(inertia) {
			e.Connective = truth
		}
	case AND:
		kept := make([]*Expression, 0, len(e.Children))
		for _, child := range e.Children {
			if e.Connective != AND {
				kept = append(kept, child)
				continue
			}
			p.replace(child, inertia, truth, ti, ts)
			switch child.Connective {
			case FALSE:
				e.Connective = FALSE
			case TRUE:
				// A satisfied conjunct disappears.
			default:
				kept = append(kept, child)
			}
		}
		e.Children = kept
	case OR:
		kept := make([]*Expression, 0, len(e.Children))
		for _, child := range e.Children {
			if e.Connective != OR {
				kept = append(kept, child)
				continue
			}
			p.replace(child, inertia, truth, ti, ts)
			switch child.Connective {
			case TRUE:
				e.Connective = TRUE
			case FALSE:
				// A refuted disjunct disappears.
			default:
				kept = append(kept, child)
			}
		}
		e.Children = kept
	case FORALL, EXISTS:
		if inertia.Arguments[0] == e.Variable {
			// The quantified variable is the literal's argument: the
			// quantifier splits into one branch per refined type, TRUE
			// under the intersection type, FALSE under the subtraction.
			with := e.Copy()
			with.Type = ti
			p.replace(with.Children[0], inertia, TRUE, ti, ts)
			without := e.Copy()
			without.Type = ts
			p.replace(without.Children[0], inertia, FALSE, ti, ts)
			if e.Connective == FORALL {
				e.Connective = AND
			} else {
				e.Connective = OR
			}
			e.Variable = NoID
			e.Type = NoID
			e.Children = []*Expression{with, without}
		} else {
			p.replace(e.Children[0], inertia, truth, ti, ts)
		}
	case AT_START, AT_END, NOT, ALWAYS, OVER_ALL, SOMETIME, AT_MOST_ONCE,
		SOMETIME_AFTER, SOMETIME_BEFORE, WITHIN, HOLD_AFTER, WHEN:
		p.replace(e.Children[0], inertia, truth, ti, ts)
	case ALWAYS_WITHIN, HOLD_DURING:
		p.replace(e.Children[0], inertia, truth, ti, ts)
		p.replace(e.Children[1], inertia, truth, ti, ts)
		p.replace(e.Children[3], inertia, truth, ti, ts)
	}
	// Arithmetic, comparison, duration and function nodes are never
	// rewritten.
}

// collectUnaryInertia returns every atom of the expression whose predicate
// has an inferred domain, in traversal order.
func (p *Problem) collectUnaryInertia(e *Expression) []*Expression {
	var literals []*Expression
	switch e.Connective {
	case ATOM:
		if p.InferredDomains[e.Predicate] != nil {
			literals = append(literals, e)
		}
	case AND, OR:
		for _, child := range e.Children {
			literals = append(literals, p.collectUnaryInertia(child)...)
		}
	case FORALL, EXISTS, AT_START, AT_END, NOT, ALWAYS, OVER_ALL, SOMETIME,
		AT_MOST_ONCE, SOMETIME_AFTER, SOMETIME_BEFORE, WITHIN, HOLD_AFTER, WHEN:
		literals = append(literals, p.collectUnaryInertia(e.Children[0])...)
	case ALWAYS_WITHIN, HOLD_DURING:
		literals = append(literals, p.collectUnaryInertia(e.Children[0])...)
		literals = append(literals, p.collectUnaryInertia(e.Children[1])...)
		literals = append(literals, p.collectUnaryInertia(e.Children[3])...)
	}
	return literals
}
