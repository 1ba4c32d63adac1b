package pddl

import (
	"context"
	"fmt"
	"runtime"
	"sync"

	"go.uber.org/zap"
)

// Preprocess runs the pre-instantiation pipeline on the problem:
// inertia extraction, inferred-type refinement, predicate occurrence
// tables, and action and method simplification by typed-parameter
// splitting. The problem's tables are mutated in place and are ready for
// the grounder afterwards.
//
// The pipeline is synchronous and deterministic. The context is consulted
// between stages only; a cancelled context leaves the tables partially
// written and the caller should discard the problem.
func Preprocess(ctx context.Context, p *Problem, opts ...Option) error {
	o := newOptions(opts)
	log := o.logger

	if err := p.check(); err != nil {
		return err
	}
	if err := p.checkExpressions(); err != nil {
		return err
	}

	p.ExtractInertia()
	log.Debug("inertia extracted", zap.Int("predicates", len(p.Inertia)))
	if err := ctx.Err(); err != nil {
		return err
	}

	p.InferTypesFromInertia()
	inferred := 0
	for _, d := range p.InferredDomains {
		if d != nil {
			inferred++
		}
	}
	log.Debug("types inferred from unary inertia", zap.Int("inferred", inferred))
	if err := ctx.Err(); err != nil {
		return err
	}

	p.CreatePredicateTables()
	log.Debug("predicate tables created", zap.Int("predicates", len(p.PredicateTables)))
	if o.DumpTables {
		p.DumpPredicateTables(log)
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	actions, methods := len(p.Actions), len(p.Methods)
	p.simplifyActions(o.LegacyConstantBreak)
	p.simplifyMethods(o.LegacyConstantBreak)
	log.Debug("operators simplified with inferred types",
		zap.Int("actions", actions), zap.Int("refined_actions", len(p.Actions)),
		zap.Int("methods", methods), zap.Int("refined_methods", len(p.Methods)),
		zap.Int("types", len(p.Types)))
	return nil
}

// PreprocessAll preprocesses several independent problems concurrently,
// at most one worker per CPU core. Every problem owns its tables, so the
// workers share nothing but the queue. A failing problem does not stop
// the others; the first error encountered is returned.
func PreprocessAll(ctx context.Context, problems []*Problem, opts ...Option) error {
	workers := runtime.NumCPU()
	if workers > len(problems) {
		workers = len(problems)
	}
	if workers < 1 {
		return nil
	}

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		firstErr error
	)
	record := func(err error) {
		if err == nil {
			return
		}
		mu.Lock()
		if firstErr == nil {
			firstErr = err
		}
		mu.Unlock()
	}

	queue := make(chan *Problem)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for p := range queue {
				record(Preprocess(ctx, p, opts...))
			}
		}()
	}

feed:
	for _, p := range problems {
		select {
		case queue <- p:
		case <-ctx.Done():
			record(ctx.Err())
			break feed
		}
	}
	close(queue)
	wg.Wait()
	return firstErr
}

// checkExpressions validates that the action preconditions and effects,
// the method preconditions and the initial-state facts have the children
// their connectives require. Action durations and task-network tasks are
// not checked. A failure is fatal and reported before any table is written.
func (p *Problem) checkExpressions() error {
	for _, a := range p.Actions {
		if err := checkExpression(a.Preconditions); err != nil {
			return fmt.Errorf("action %s preconditions: %w", a.Name, err)
		}
		if err := checkExpression(a.Effects); err != nil {
			return fmt.Errorf("action %s effects: %w", a.Name, err)
		}
	}
	for _, m := range p.Methods {
		if err := checkExpression(m.Preconditions); err != nil {
			return fmt.Errorf("method %s preconditions: %w", m.Name, err)
		}
	}
	for _, fact := range p.Init {
		if err := checkExpression(fact); err != nil {
			return fmt.Errorf("initial state: %w", err)
		}
	}
	return nil
}

func checkExpression(e *Expression) error {
	if e == nil {
		return fmt.Errorf("%w: nil expression", ErrNilInput)
	}
	required := 0
	switch e.Connective {
	case NOT, FORALL, EXISTS, AT_START, AT_END, OVER_ALL, ALWAYS, SOMETIME,
		AT_MOST_ONCE, SOMETIME_AFTER, SOMETIME_BEFORE, WITHIN, HOLD_AFTER:
		required = 1
	case WHEN:
		required = 2
	case ALWAYS_WITHIN, HOLD_DURING:
		required = 4
	case ATOM:
		if e.Predicate < 0 {
			return fmt.Errorf("%w: atom without predicate", ErrMalformedExpression)
		}
	}
	if len(e.Children) < required {
		return fmt.Errorf("%w: %s with %d of %d children",
			ErrMalformedExpression, e.Connective, len(e.Children), required)
	}
	for _, child := range e.Children {
		if err := checkExpression(child); err != nil {
			return err
		}
	}
	return nil
}
