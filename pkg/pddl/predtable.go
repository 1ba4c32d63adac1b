package pddl

import (
	"fmt"
	"math/bits"
	"strconv"
	"strings"

	"go.uber.org/zap"
)

// IntMatrix counts occurrences of constant tuples of a fixed dimension. It
// backs the predicate occurrence tables: the table for argument mask m of a
// predicate counts, over the initial state, every partial assignment to the
// argument positions selected by m. Unused tuples count zero.
type IntMatrix struct {
	dimension int
	counters  map[string]int
}

// NewIntMatrix returns an empty counter over tuples of the given dimension.
func NewIntMatrix(dimension int) *IntMatrix {
	return &IntMatrix{dimension: dimension, counters: make(map[string]int)}
}

// Dimension returns the tuple length the matrix counts over.
func (m *IntMatrix) Dimension() int { return m.dimension }

// Get returns the count recorded for the tuple.
func (m *IntMatrix) Get(index []int) int {
	return m.counters[tupleKey(index)]
}

// Increment adds one to the count of the tuple.
func (m *IntMatrix) Increment(index []int) {
	m.counters[tupleKey(index)]++
}

func tupleKey(index []int) string {
	if len(index) == 0 {
		return ""
	}
	var b strings.Builder
	for i, v := range index {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.Itoa(v))
	}
	return b.String()
}

// maskToInt returns the big-endian integer encoding of a 0/1 mask:
// [0, 1, 1] encodes to 3.
func maskToInt(mask []int) int {
	if len(mask) == 0 {
		return 0
	}
	res := mask[0]
	for _, b := range mask[1:] {
		res = res<<1 | b
	}
	return res
}

// incrementMask advances the 0/1 mask in place, right-most bit first, and
// reports whether the increment stayed in range. Advancing past all-ones
// returns false.
func incrementMask(mask []int) bool {
	for i := len(mask) - 1; i >= 0; i-- {
		if mask[i] == 0 {
			mask[i] = 1
			return true
		}
		mask[i] = 0
		if i == 0 {
			return false
		}
	}
	return false
}

// CreatePredicateTables builds, for every predicate of arity a, the 2^a
// occurrence tables indexed by argument mask. Table m counts how often each
// partial assignment to the argument positions selected by the bits of m
// occurs among the initial-state facts of the predicate. Table 0 holds the
// total fact count under the empty tuple.
func (p *Problem) CreatePredicateTables() {
	p.PredicateTables = make([][]*IntMatrix, len(p.Predicates))
	for pred := range p.TypedPredicates {
		arity := p.Arity(pred)
		tables := make([]*IntMatrix, 1<<uint(arity))
		for j := range tables {
			tables[j] = NewIntMatrix(bits.OnesCount(uint(j)))
		}
		p.PredicateTables[pred] = tables
	}

	for _, fact := range p.Init {
		if fact.Connective == NOT {
			fact = fact.Children[0]
		}
		arity := p.Arity(fact.Predicate)
		mask := make([]int, arity)
		for _, table := range p.PredicateTables[fact.Predicate] {
			index := make([]int, 0, table.Dimension())
			for i, bit := range mask {
				if bit == 1 {
					index = append(index, fact.Arguments[i])
				}
			}
			table.Increment(index)
			incrementMask(mask)
		}
	}
}

// DumpPredicateTables logs every non-zero counter of the predicate tables
// at debug level, one line per partial assignment. Free argument positions
// print as X variables.
func (p *Problem) DumpPredicateTables(logger *zap.Logger) {
	logger.Debug("tables of predicates:")
	for _, line := range p.predicateTableLines() {
		logger.Debug(line)
	}
}

// predicateTableLines renders the non-zero counters of every predicate
// table in mask order.
func (p *Problem) predicateTableLines() []string {
	var lines []string
	for pred := range p.PredicateTables {
		arity := p.Arity(pred)
		mask := make([]int, arity)
		for range p.PredicateTables[pred] {
			lines = p.appendTableLines(lines, pred, mask, nil)
			incrementMask(mask)
		}
	}
	return lines
}

// appendTableLines enumerates the index tuples selected by the mask. A -1
// entry stands for a free position.
func (p *Problem) appendTableLines(lines []string, pred int, mask, index []int) []string {
	arity := p.Arity(pred)
	if len(index) == arity {
		var b strings.Builder
		b.WriteByte('(')
		b.WriteString(p.Predicates[pred])
		variable := 0
		selected := make([]int, 0, len(index))
		for _, v := range index {
			if v == -1 {
				fmt.Fprintf(&b, " X%d", variable)
				variable++
			} else {
				selected = append(selected, v)
				b.WriteByte(' ')
				b.WriteString(p.Constants[v])
			}
		}
		b.WriteByte(')')
		counter := p.PredicateTables[pred][maskToInt(mask)].Get(selected)
		if counter != 0 {
			lines = append(lines, fmt.Sprintf("%s : %d", b.String(), counter))
		}
		return lines
	}
	if mask[len(index)] == 0 {
		return p.appendTableLines(lines, pred, mask, append(index[:len(index):len(index)], -1))
	}
	for c := range p.Constants {
		lines = p.appendTableLines(lines, pred, mask, append(index[:len(index):len(index)], c))
	}
	return lines
}
