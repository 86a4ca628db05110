package combinator

import (
	"errors"
	"fmt"

	"github.com/tliron/commonlog"
)

var log = commonlog.GetLogger("pcomb.combinator")

var (
	// ErrInvalidBounds is returned when repetition bounds are negative or
	// the maximum is below the minimum.
	ErrInvalidBounds = errors.New("invalid repetition bounds")

	// ErrInvalidPattern is returned when a pattern is neither a Parser nor a
	// literal string.
	ErrInvalidPattern = errors.New("invalid pattern")
)

// Parser is implemented by every parser and combinator.
// Parse attempts a match at the current position of ctx. On success the
// position is left after the consumed input.
type Parser interface {
	Parse(ctx *Context) Result
}

// ParserFunc adapts an ordinary function to the Parser interface.
type ParserFunc func(ctx *Context) Result

func (f ParserFunc) Parse(ctx *Context) Result {
	return f(ctx)
}

// Must panics if err is non-nil and returns p otherwise.
// It simplifies declaring grammars in package-level variables.
func Must[P Parser](p P, err error) P {
	if err != nil {
		panic(err)
	}
	return p
}

// toParser converts a pattern argument into a Parser.
// Strings are matched literally.
func toParser(pattern any) (Parser, error) {
	switch p := pattern.(type) {
	case Parser:
		return p, nil
	case string:
		return Literal(p), nil
	default:
		return nil, fmt.Errorf("%T: %w", pattern, ErrInvalidPattern)
	}
}

// SyntaxError is returned by Parse when the input does not match.
type SyntaxError struct {
	Pos     Position
	Message string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s: %s", e.Pos, e.Message)
}

// GrammarError reports a grammar that cannot produce a well-formed result,
// such as an operator whose payload cannot fold two operands.
// It is raised as a panic during evaluation and recovered by Parse.
type GrammarError struct {
	Message string
}

func (e *GrammarError) Error() string {
	return "grammar error: " + e.Message
}

func grammarErrorf(format string, args ...any) *GrammarError {
	return &GrammarError{Message: fmt.Sprintf(format, args...)}
}

// Attempt runs p against input on a fresh context and returns the raw result
// together with the context, so callers can inspect the final position.
// Unlike Parse it does not recover: a *GrammarError raised while folding
// propagates as a panic.
func Attempt(p Parser, input string, opts ...Option) (Result, *Context) {
	ctx := NewContext(input, opts...)
	return p.Parse(ctx), ctx
}

// Parse runs p against input and returns its payload.
// Trailing unconsumed input is not an error; compose with EOF to require it.
// On failure the returned *SyntaxError carries the position the cursor was
// left at and the diagnostic installed by WithError, if any.
func Parse(p Parser, input string, opts ...Option) (value any, err error) {
	ctx := NewContext(input, opts...)
	defer func() {
		if x := recover(); x != nil {
			gerr, ok := x.(*GrammarError)
			if !ok {
				panic(x)
			}
			value, err = nil, gerr
		}
	}()

	r := p.Parse(ctx)
	if r.OK() {
		return r.Value(), nil
	}
	msg, ok := ctx.Diagnostic()
	if !ok {
		msg = "unexpected input"
	}
	serr := &SyntaxError{Pos: ctx.Position(), Message: msg}
	log.Debugf("parse failed: %s", serr)
	return nil, serr
}

// Trace wraps p so that every attempt is logged at debug level under name.
func Trace(name string, p Parser) Parser {
	return ParserFunc(func(ctx *Context) Result {
		if !log.AllowLevel(commonlog.Debug) {
			return p.Parse(ctx)
		}
		start := ctx.Pos()
		log.Debugf("%s: enter at %d", name, start)
		r := p.Parse(ctx)
		if r.OK() {
			log.Debugf("%s: matched %d..%d", name, start, ctx.Pos())
		} else {
			log.Debugf("%s: failed at %d", name, start)
		}
		return r
	})
}
