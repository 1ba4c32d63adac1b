// Package main walks the pre-instantiation pipeline on a small transport
// domain: inertia extraction, inferred-type refinement, predicate tables
// and action simplification, printing the tables a grounder would consume.
package main

import (
	"context"
	"fmt"
	"log"

	"go.uber.org/zap"

	"github.com/gitrdm/gopddl/pkg/pddl"
)

func main() {
	fmt.Println("=== gopddl pre-instantiation example ===")
	fmt.Println()

	p := transportProblem()

	logger, err := zap.NewDevelopment()
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer logger.Sync()

	if err := pddl.Preprocess(context.Background(), p, pddl.WithLogger(logger), pddl.WithTableDump()); err != nil {
		log.Fatalf("preprocess: %v", err)
	}

	fmt.Println("Inertia classification:")
	for i, name := range p.Predicates {
		fmt.Printf("   %-10s %s\n", name, p.Inertia[i])
	}
	fmt.Println()

	fmt.Println("Inferred domains (unary inertia):")
	for i, domain := range p.InferredDomains {
		if domain == nil {
			continue
		}
		names := make([]string, 0, domain.Size())
		for _, c := range domain.Values() {
			names = append(names, p.Constants[c])
		}
		fmt.Printf("   %-10s %v\n", p.Predicates[i], names)
	}
	fmt.Println()

	fmt.Println("Refined actions:")
	for _, a := range p.Actions {
		fmt.Printf("   %s", a.Name)
		for i := range a.Parameters {
			fmt.Printf(" ?x%d - %s", i, p.Types[a.TypeOfParameter(i)])
		}
		fmt.Printf("\n      preconditions: %s\n", a.Preconditions.Render(p))
	}
}

// transportProblem encodes a domain with one truck type refinement: the
// unary predicate truck is an inertia, at is only deleted by drive and so
// is a positive inertia.
func transportProblem() *pddl.Problem {
	p := &pddl.Problem{
		Predicates:      []string{"truck", "at"},
		TypedPredicates: [][]int{{0}, {0, 0}},
		Types:           []string{"object"},
		Domains:         []*pddl.ConstantSet{pddl.NewConstantSet(0, 1, 2)},
		Constants:       []string{"t1", "paris", "lyon"},
		Init: []*pddl.Expression{
			pddl.NewAtom(0, 0),    // truck(t1)
			pddl.NewAtom(1, 0, 1), // at(t1, paris)
		},
	}

	drive := pddl.NewAction("drive", 2)
	drive.Preconditions = pddl.NewExpression(pddl.AND,
		pddl.NewAtom(0, pddl.EncodeVariable(0)),
		pddl.NewAtom(1, pddl.EncodeVariable(0), pddl.EncodeVariable(1)),
	)
	drive.Effects = pddl.NewExpression(pddl.AND,
		pddl.NewNot(pddl.NewAtom(1, pddl.EncodeVariable(0), pddl.EncodeVariable(1))),
	)
	p.Actions = []*pddl.Action{drive}
	return p
}
