package combinator

import (
	"fmt"

	"github.com/edwingeng/deque"
)

// BinaryFunc combines the two operands of an infix operator.
type BinaryFunc func(left, right any) any

// Operator describes one row of an operator table. Pattern is a Parser or a
// string, which is matched literally.
type Operator struct {
	Pattern    any
	Precedence int
}

// Op returns an operator table row.
func Op(pattern any, precedence int) Operator {
	return Operator{Pattern: pattern, Precedence: precedence}
}

// Infix returns an operator row matching the literal symbol whose payload is
// fn, ready for a folding ShuntingYard.
func Infix(symbol string, precedence int, fn BinaryFunc) Operator {
	return Operator{
		Pattern:    Map(Literal(symbol), func(any) any { return fn }),
		Precedence: precedence,
	}
}

// YardOption configures ShuntingYard.
type YardOption func(*yardConfig)

type yardConfig struct {
	left   []Operator
	right  []Operator
	before Parser
	after  Parser
	fold   bool
}

// WithLeft adds left-associative operators.
func WithLeft(ops ...Operator) YardOption {
	return func(c *yardConfig) {
		c.left = append(c.left, ops...)
	}
}

// WithRight adds right-associative operators.
func WithRight(ops ...Operator) YardOption {
	return func(c *yardConfig) {
		c.right = append(c.right, ops...)
	}
}

// WithFillerBefore sets the filler skipped before an operator.
// The default is Blanks.
func WithFillerBefore(filler Parser) YardOption {
	return func(c *yardConfig) {
		c.before = filler
	}
}

// WithFillerAfter sets the filler skipped after an operator.
// The default is Spaces.
func WithFillerAfter(filler Parser) YardOption {
	return func(c *yardConfig) {
		c.after = filler
	}
}

// WithOperatorFiller sets the filler on both sides of an operator.
func WithOperatorFiller(filler Parser) YardOption {
	return func(c *yardConfig) {
		c.before = filler
		c.after = filler
	}
}

// WithFold makes the yard reduce eagerly. Every operator payload must then
// be a BinaryFunc (or a plain func(any, any) any) and the result is the single
// reduced value. String patterns are rejected by ShuntingYard; use Infix.
func WithFold() YardOption {
	return func(c *yardConfig) {
		c.fold = true
	}
}

type tableEntry struct {
	parser     Parser
	literal    string
	precedence int
	left       bool
}

type stackEntry struct {
	payload    Result
	precedence int
}

// Yard is an operator-precedence parser built by ShuntingYard.
type Yard struct {
	term   Parser
	table  []tableEntry
	before Parser
	after  Parser
	fold   bool
}

// ShuntingYard returns a parser for term (operator term)*, grouping the
// operands by precedence and associativity. Higher precedence binds tighter.
//
// Operators are probed in table order: right-associative operators first,
// then left-associative ones. A literal listed in both tables keeps its first
// slot and takes the later definition.
//
// Without WithFold the result is a []any holding terms and operator payloads
// in postfix order, for example 2 3 4 * + for "2+3*4"; see Reduce.
func ShuntingYard(term Parser, opts ...YardOption) (*Yard, error) {
	cfg := yardConfig{before: Blanks, after: Spaces}
	for _, opt := range opts {
		opt(&cfg)
	}
	y := &Yard{term: term, before: cfg.before, after: cfg.after, fold: cfg.fold}
	if err := y.addOperators(cfg.right, false, cfg.fold); err != nil {
		return nil, err
	}
	if err := y.addOperators(cfg.left, true, cfg.fold); err != nil {
		return nil, err
	}
	return y, nil
}

// addOperators appends ops to the table. A folding yard rejects bare string
// patterns, whose payload is the matched text and can never combine operands.
func (y *Yard) addOperators(ops []Operator, left, fold bool) error {
	for _, op := range ops {
		if s, ok := op.Pattern.(string); ok && fold {
			return fmt.Errorf("operator %q: folding needs a BinaryFunc payload: %w", s, ErrInvalidPattern)
		}
		p, err := toParser(op.Pattern)
		if err != nil {
			return fmt.Errorf("operator table: %w", err)
		}
		entry := tableEntry{parser: p, precedence: op.Precedence, left: left}
		if s, ok := op.Pattern.(string); ok {
			entry.literal = s
			if i := y.findLiteral(s); i >= 0 {
				y.table[i] = entry
				continue
			}
		}
		y.table = append(y.table, entry)
	}
	return nil
}

func (y *Yard) findLiteral(s string) int {
	for i, e := range y.table {
		if e.literal == s && e.literal != "" {
			return i
		}
	}
	return -1
}

// scan probes every operator at the current position and returns the first
// that matches. The position is restored after each failed probe.
func (y *Yard) scan(ctx *Context) (tableEntry, Result, bool) {
	start := ctx.Pos()
	for _, e := range y.table {
		if r := e.parser.Parse(ctx); r.OK() {
			return e, r, true
		}
		ctx.SetPos(start)
	}
	return tableEntry{}, Failure(), false
}

func (y *Yard) Parse(ctx *Context) Result {
	first := y.term.Parse(ctx)
	if !first.OK() {
		return Failure()
	}
	var out output
	if y.fold {
		out = &foldOutput{operands: deque.NewDeque()}
	} else {
		out = &flatOutput{values: []any{}}
	}
	out.term(first)

	stack := deque.NewDeque()
	for {
		start := ctx.Pos()
		if !ctx.Skip(y.before).OK() {
			break
		}
		op, payload, ok := y.scan(ctx)
		if !ok {
			ctx.SetPos(start)
			break
		}
		for !stack.Empty() {
			top := stack.Back().(stackEntry)
			if !(op.left && op.precedence <= top.precedence || op.precedence < top.precedence) {
				break
			}
			stack.PopBack()
			out.operator(top.payload)
		}
		if !ctx.Skip(y.after).OK() {
			ctx.SetPos(start)
			break
		}
		next := y.term.Parse(ctx)
		if !next.OK() {
			ctx.SetPos(start)
			break
		}
		stack.PushBack(stackEntry{payload: payload, precedence: op.precedence})
		out.term(next)
	}
	for !stack.Empty() {
		out.operator(stack.PopBack().(stackEntry).payload)
	}
	return Success(out.result())
}

type output interface {
	term(r Result)
	operator(r Result)
	result() any
}

type flatOutput struct {
	values []any
}

func (o *flatOutput) term(r Result) {
	o.values = collect(o.values, r)
}

func (o *flatOutput) operator(r Result) {
	o.values = collect(o.values, r)
}

func (o *flatOutput) result() any {
	return o.values
}

type foldOutput struct {
	operands deque.Deque
}

func (o *foldOutput) term(r Result) {
	if !r.Skip() {
		o.operands.PushBack(r.Value())
	}
}

func (o *foldOutput) operator(r Result) {
	fn, ok := binaryFunc(r.Value())
	if !ok || r.Skip() {
		panic(grammarErrorf("operator payload %T cannot combine operands", r.Value()))
	}
	if o.operands.Len() < 2 {
		panic(grammarErrorf("operator needs two operands, have %d", o.operands.Len()))
	}
	right := o.operands.PopBack()
	left := o.operands.PopBack()
	o.operands.PushBack(fn(left, right))
}

func (o *foldOutput) result() any {
	if o.operands.Len() != 1 {
		panic(grammarErrorf("expression reduced to %d values, want 1", o.operands.Len()))
	}
	return o.operands.PopBack()
}

func binaryFunc(v any) (BinaryFunc, bool) {
	switch fn := v.(type) {
	case BinaryFunc:
		return fn, true
	case func(left, right any) any:
		return fn, true
	}
	return nil, false
}

// Reduce folds a postfix sequence produced by a non-folding ShuntingYard.
// operator reports whether an element is an operator and how to apply it;
// every other element is an operand.
func Reduce(seq []any, operator func(v any) (BinaryFunc, bool)) (any, error) {
	var operands []any
	for i, v := range seq {
		fn, ok := operator(v)
		if !ok {
			operands = append(operands, v)
			continue
		}
		if len(operands) < 2 {
			return nil, fmt.Errorf("reduce: operator %v at %d has %d operands", v, i, len(operands))
		}
		n := len(operands)
		operands = append(operands[:n-2], fn(operands[n-2], operands[n-1]))
	}
	if len(operands) != 1 {
		return nil, fmt.Errorf("reduce: sequence leaves %d values, want 1", len(operands))
	}
	return operands[0], nil
}
