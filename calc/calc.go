// Package calc evaluates arithmetic expressions over float64 numbers.
//
// Supported syntax: decimal numbers, parentheses, unary minus and the binary
// operators + - * / % (left-associative) and ^ (right-associative), in
// increasing order of precedence. Unary minus binds tighter than ^, so -2^2
// is 4.
package calc

import (
	"fmt"
	"math"
	"strconv"

	"github.com/dhamidi/pcomb/combinator"
	"github.com/tliron/commonlog"
)

var log = commonlog.GetLogger("pcomb.calc")

const (
	precAdd = 1
	precMul = 2
	precPow = 3
)

var operators = map[string]func(a, b float64) float64{
	"+": func(a, b float64) float64 { return a + b },
	"-": func(a, b float64) float64 { return a - b },
	"*": func(a, b float64) float64 { return a * b },
	"/": func(a, b float64) float64 { return a / b },
	"%": math.Mod,
	"^": math.Pow,
}

var numberPattern = combinator.MustPattern(`(?:\d+(?:\.\d*)?|\.\d+)(?:[eE][+-]?\d+)?`)

// Option configures a Calculator.
type Option func(*Calculator)

// WithFlat makes Eval build the postfix sequence first and reduce it
// afterwards instead of folding operands while parsing.
func WithFlat() Option {
	return func(c *Calculator) {
		c.flat = true
	}
}

// WithFilename sets the name used in syntax error positions.
func WithFilename(name string) Option {
	return func(c *Calculator) {
		c.filename = name
	}
}

// Calculator parses and evaluates expressions. It is safe for concurrent use.
type Calculator struct {
	flat     bool
	filename string
	fold     combinator.Parser
	postfix  combinator.Parser
}

// New builds the expression grammars.
func New(opts ...Option) *Calculator {
	c := &Calculator{}
	for _, opt := range opts {
		opt(c)
	}
	c.fold = wholeInput(foldExpression())
	c.postfix = wholeInput(flatExpression())
	return c
}

// Eval evaluates input. Division by zero follows IEEE 754 and yields an
// infinity or NaN.
func (c *Calculator) Eval(input string) (float64, error) {
	if !c.flat {
		v, err := combinator.Parse(c.fold, input, c.parseOptions()...)
		if err != nil {
			return 0, err
		}
		return v.(float64), nil
	}

	v, err := combinator.Parse(c.postfix, input, c.parseOptions()...)
	if err != nil {
		return 0, err
	}
	return evalFlat(v)
}

// Postfix returns the tokens of input in reverse Polish order. Numbers are
// formatted in their shortest form and unary minus is written as "neg".
func (c *Calculator) Postfix(input string) ([]string, error) {
	v, err := combinator.Parse(c.postfix, input, c.parseOptions()...)
	if err != nil {
		return nil, err
	}
	return appendPostfix(nil, v), nil
}

func (c *Calculator) parseOptions() []combinator.Option {
	if c.filename == "" {
		return nil
	}
	return []combinator.Option{combinator.WithFilename(c.filename)}
}

func wholeInput(expr combinator.Parser) combinator.Parser {
	return combinator.KeepLeft(
		combinator.WithError(combinator.KeepRight(combinator.Spaces, expr), "expected an expression"),
		combinator.WithError(combinator.KeepRight(combinator.Spaces, combinator.EOF), "unexpected input after expression"),
	)
}

func number() combinator.Parser {
	return combinator.Map(numberPattern, func(v any) any {
		// out of range values saturate to ±Inf
		f, _ := strconv.ParseFloat(v.(string), 64)
		return f
	})
}

// operand builds the shared term grammar: a number, a parenthesized
// expression or a negated operand. group wraps the payload of a
// parenthesized expression and negate that of a negated operand.
func operand(expr func() combinator.Parser, group, negate func(any) any) combinator.Parser {
	var term combinator.Parser
	parens := combinator.KeepRight(
		combinator.Char('('),
		combinator.KeepLeft(
			combinator.KeepRight(combinator.Spaces, combinator.Lazy(expr)),
			combinator.KeepRight(combinator.Spaces, combinator.Char(')')),
		),
	)
	neg := combinator.KeepRight(
		combinator.Char('-'),
		combinator.KeepRight(combinator.Blanks, combinator.Lazy(func() combinator.Parser { return term })),
	)
	term = combinator.Alt(
		number(),
		combinator.Map(parens, group),
		combinator.Map(neg, negate),
	)
	return term
}

func foldExpression() combinator.Parser {
	var expr combinator.Parser
	term := operand(
		func() combinator.Parser { return expr },
		func(v any) any { return v },
		func(v any) any { return -v.(float64) },
	)

	infix := func(symbol string, prec int) combinator.Operator {
		fn := operators[symbol]
		return combinator.Infix(symbol, prec, func(left, right any) any {
			return fn(left.(float64), right.(float64))
		})
	}
	expr = combinator.Must(combinator.ShuntingYard(term,
		combinator.WithLeft(
			infix("+", precAdd), infix("-", precAdd),
			infix("*", precMul), infix("/", precMul), infix("%", precMul),
		),
		combinator.WithRight(infix("^", precPow)),
		combinator.WithFold(),
	))
	return expr
}

// group is a parenthesized postfix sequence.
type group []any

// negation is a negated operand in a postfix sequence.
type negation struct {
	operand any
}

func flatExpression() combinator.Parser {
	var expr combinator.Parser
	term := operand(
		func() combinator.Parser { return expr },
		func(v any) any { return group(v.([]any)) },
		func(v any) any { return negation{operand: v} },
	)
	expr = combinator.Must(combinator.ShuntingYard(term,
		combinator.WithLeft(
			combinator.Op("+", precAdd), combinator.Op("-", precAdd),
			combinator.Op("*", precMul), combinator.Op("/", precMul), combinator.Op("%", precMul),
		),
		combinator.WithRight(combinator.Op("^", precPow)),
	))
	return expr
}

func appendPostfix(tokens []string, v any) []string {
	switch x := v.(type) {
	case float64:
		return append(tokens, strconv.FormatFloat(x, 'g', -1, 64))
	case string:
		return append(tokens, x)
	case []any:
		for _, item := range x {
			tokens = appendPostfix(tokens, item)
		}
	case group:
		return appendPostfix(tokens, []any(x))
	case negation:
		return append(appendPostfix(tokens, x.operand), "neg")
	}
	return tokens
}

// evalFlat evaluates one postfix sequence produced by the flat grammar.
// Operands are evaluated first so that Reduce only sees numbers and
// operator symbols.
func evalFlat(v any) (float64, error) {
	switch x := v.(type) {
	case float64:
		return x, nil
	case group:
		return evalFlat([]any(x))
	case negation:
		f, err := evalFlat(x.operand)
		return -f, err
	case []any:
		seq := make([]any, len(x))
		for i, item := range x {
			if sym, ok := item.(string); ok {
				seq[i] = sym
				continue
			}
			f, err := evalFlat(item)
			if err != nil {
				return 0, err
			}
			seq[i] = f
		}
		result, err := combinator.Reduce(seq, binaryOperator)
		if err != nil {
			return 0, err
		}
		log.Debugf("reduced %v to %v", seq, result)
		return result.(float64), nil
	}
	return 0, fmt.Errorf("calc: unexpected postfix element %T", v)
}

func binaryOperator(v any) (combinator.BinaryFunc, bool) {
	sym, ok := v.(string)
	if !ok {
		return nil, false
	}
	fn, ok := operators[sym]
	if !ok {
		return nil, false
	}
	return func(left, right any) any {
		return fn(left.(float64), right.(float64))
	}, true
}
