package ebnfparse

import (
	"fmt"
	"unicode"
	"unicode/utf8"

	"github.com/dhamidi/pcomb/combinator"
	"golang.org/x/exp/ebnf"
)

// BuildError reports a production that cannot be turned into a parser.
type BuildError struct {
	Production string
	Pos        string
	Message    string
}

func (e *BuildError) Error() string {
	if e.Pos != "" {
		return fmt.Sprintf("%s: %s: %s", e.Pos, e.Production, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Production, e.Message)
}

// Option configures a Builder.
type Option func(*Builder)

// WithFiller sets the filler skipped before terminals and lexical
// references in syntactic productions. The default is combinator.Spaces.
func WithFiller(filler combinator.Parser) Option {
	return func(b *Builder) {
		b.filler = filler
	}
}

// WithTrace logs every production attempt at debug level.
func WithTrace() Option {
	return func(b *Builder) {
		b.trace = true
	}
}

// Builder compiles the productions of a grammar into combinator parsers.
// Each production is compiled once and shared by every reference to it.
type Builder struct {
	grammar ebnf.Grammar
	filler  combinator.Parser
	trace   bool
	rules   map[string]*rule
}

// NewBuilder creates a builder for grammar.
func NewBuilder(grammar ebnf.Grammar, opts ...Option) *Builder {
	b := &Builder{
		grammar: grammar,
		filler:  combinator.Spaces,
		rules:   make(map[string]*rule),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Build verifies grammar from start and returns a parser for the start
// production. The parser produces a *Node.
func Build(grammar ebnf.Grammar, start string, opts ...Option) (combinator.Parser, error) {
	if err := Check(grammar, start); err != nil {
		return nil, err
	}
	return NewBuilder(grammar, opts...).Production(start)
}

// Production returns the parser for the named production, compiling it and
// every production it refers to on first use.
func (b *Builder) Production(name string) (combinator.Parser, error) {
	r, err := b.rule(name)
	if err != nil {
		return nil, err
	}
	if b.trace {
		return combinator.Trace(name, r), nil
	}
	return r, nil
}

func (b *Builder) rule(name string) (*rule, error) {
	if r, ok := b.rules[name]; ok {
		return r, nil
	}
	prod, ok := b.grammar[name]
	if !ok {
		return nil, &BuildError{Production: name, Message: "production not defined"}
	}
	r := &rule{name: name, lexical: isLexical(name)}
	b.rules[name] = r

	body, err := b.expr(name, prod.Expr, r.lexical)
	if err != nil {
		return nil, err
	}
	if b.trace {
		body = combinator.Trace(name, body)
	}
	r.body = body
	log.Debugf("compiled production %s (lexical=%v)", name, r.lexical)
	return r, nil
}

// expr compiles one expression of production name.
func (b *Builder) expr(name string, x ebnf.Expression, lexical bool) (combinator.Parser, error) {
	switch e := x.(type) {
	case nil:
		return combinator.Empty, nil

	case *ebnf.Token:
		return b.terminal(combinator.Literal(e.String), lexical), nil

	case *ebnf.Range:
		lo, _ := utf8.DecodeRuneInString(e.Begin.String)
		hi, _ := utf8.DecodeRuneInString(e.End.String)
		if utf8.RuneCountInString(e.Begin.String) != 1 || utf8.RuneCountInString(e.End.String) != 1 || lo > hi {
			return nil, &BuildError{
				Production: name,
				Pos:        e.Pos().String(),
				Message:    fmt.Sprintf("invalid character range %q … %q", e.Begin.String, e.End.String),
			}
		}
		return b.terminal(combinator.CharRange(lo, hi), lexical), nil

	case ebnf.Sequence:
		parsers, err := b.exprs(name, e, lexical)
		if err != nil {
			return nil, err
		}
		return combinator.Seq(parsers...), nil

	case ebnf.Alternative:
		parsers, err := b.exprs(name, e, lexical)
		if err != nil {
			return nil, err
		}
		return combinator.Longest(parsers...), nil

	case *ebnf.Repetition:
		body, err := b.expr(name, e.Body, lexical)
		if err != nil {
			return nil, err
		}
		return combinator.Many(body), nil

	case *ebnf.Option:
		body, err := b.expr(name, e.Body, lexical)
		if err != nil {
			return nil, err
		}
		return combinator.Must(combinator.RepeatRange(body, 0, 1)), nil

	case *ebnf.Group:
		return b.expr(name, e.Body, lexical)

	case *ebnf.Name:
		r, err := b.rule(e.String)
		if err != nil {
			return nil, err
		}
		if !lexical && r.lexical {
			return combinator.KeepRight(b.filler, r), nil
		}
		return r, nil

	case *ebnf.Bad:
		return nil, &BuildError{Production: name, Pos: e.Pos().String(), Message: e.Error}

	default:
		return nil, &BuildError{Production: name, Message: fmt.Sprintf("unsupported expression %T", x)}
	}
}

func (b *Builder) exprs(name string, xs []ebnf.Expression, lexical bool) ([]combinator.Parser, error) {
	parsers := make([]combinator.Parser, 0, len(xs))
	for _, x := range xs {
		p, err := b.expr(name, x, lexical)
		if err != nil {
			return nil, err
		}
		parsers = append(parsers, p)
	}
	return parsers, nil
}

// terminal wraps a token matcher. Inside lexical productions the matched text
// is all that matters; inside syntactic productions filler is skipped first
// and the match becomes a leaf node.
func (b *Builder) terminal(p combinator.Parser, lexical bool) combinator.Parser {
	if lexical {
		return p
	}
	return combinator.KeepRight(b.filler, leaf(TokenKind, p))
}

func leaf(kind string, p combinator.Parser) combinator.Parser {
	return combinator.ParserFunc(func(ctx *combinator.Context) combinator.Result {
		start := ctx.Pos()
		if r := p.Parse(ctx); !r.OK() {
			return r
		}
		return combinator.Success(&Node{
			Kind: kind,
			Text: ctx.Input()[start:ctx.Pos()],
			Span: Span{Start: ctx.PositionAt(start), End: ctx.Position()},
		})
	})
}

// isLexical follows the ebnf package: names that do not start with an
// upper-case letter are lexical.
func isLexical(name string) bool {
	ch, _ := utf8.DecodeRuneInString(name)
	return !unicode.IsUpper(ch)
}

type ruleKey struct {
	name   string
	offset int
}

// rule is the parser of one production.
type rule struct {
	name    string
	lexical bool
	body    combinator.Parser
}

func (r *rule) Parse(ctx *combinator.Context) combinator.Result {
	start := ctx.Pos()
	key := ruleKey{name: r.name, offset: start}
	// a production re-entered at the same offset is left recursive
	if !ctx.Enter(key) {
		return combinator.Failure()
	}
	defer ctx.Leave(key)

	res := r.body.Parse(ctx)
	if !res.OK() {
		return res
	}
	node := &Node{
		Kind: r.name,
		Span: Span{Start: ctx.PositionAt(start), End: ctx.Position()},
	}
	if r.lexical {
		node.Text = ctx.Input()[start:ctx.Pos()]
		return combinator.Success(node)
	}
	// children narrow the span to exclude leading filler
	node.Children = make([]*Node, 0)
	for _, child := range flatten(res.Value(), nil) {
		node.AddChild(child)
	}
	return combinator.Success(node)
}
