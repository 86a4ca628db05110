package combinator

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

var (
	// Spaces skips any amount of whitespace, including newlines. It never fails.
	Spaces = Discard(MustPattern(`\s*`))

	// Blanks skips spaces and tabs. It never fails.
	Blanks = Discard(MustPattern(`[ \t]*`))
)

// Literal matches s exactly and returns it.
func Literal(s string) Parser {
	return ParserFunc(func(ctx *Context) Result {
		if !strings.HasPrefix(ctx.Rest(), s) {
			return Failure()
		}
		ctx.Advance(len(s))
		return Success(s)
	})
}

// Char matches the single rune r and returns it as a string.
func Char(r rune) Parser {
	return CharRange(r, r)
}

// CharRange matches one rune in the inclusive range lo..hi and returns it as a
// string.
func CharRange(lo, hi rune) Parser {
	return ParserFunc(func(ctx *Context) Result {
		r, size := utf8.DecodeRuneInString(ctx.Rest())
		if size == 0 || r == utf8.RuneError && size == 1 || r < lo || r > hi {
			return Failure()
		}
		text := ctx.Rest()[:size]
		ctx.Advance(size)
		return Success(text)
	})
}

// Pattern compiles expr and returns a parser matching it at the current
// position. The matched text is the payload.
func Pattern(expr string) (Parser, error) {
	re, err := regexp.Compile(`\A(?:` + expr + `)`)
	if err != nil {
		return nil, fmt.Errorf("compile pattern %q: %w", expr, err)
	}
	return Regexp(re), nil
}

// MustPattern is like Pattern but panics if expr does not compile.
func MustPattern(expr string) Parser {
	return Must(Pattern(expr))
}

// Regexp matches re at the current position. re should be anchored with \A;
// a match that does not start at the cursor is a failure.
func Regexp(re *regexp.Regexp) Parser {
	return ParserFunc(func(ctx *Context) Result {
		rest := ctx.Rest()
		match := re.FindStringIndex(rest)
		if match == nil || match[0] != 0 {
			return Failure()
		}
		ctx.Advance(match[1])
		return Success(rest[:match[1]])
	})
}

// EOF succeeds without consuming anything when all input is consumed.
var EOF Parser = ParserFunc(func(ctx *Context) Result {
	if !ctx.EOF() {
		return Failure()
	}
	return Skipped()
})

// Empty always succeeds without consuming input, producing a skipped result.
var Empty Parser = ParserFunc(func(*Context) Result {
	return Skipped()
})

// Value succeeds without consuming input and produces v.
func Value(v any) Parser {
	return ParserFunc(func(*Context) Result {
		return Success(v)
	})
}

// Discard runs p and turns its success into a skipped result, so that the
// match is left out of any sequence it appears in.
func Discard(p Parser) Parser {
	return ParserFunc(func(ctx *Context) Result {
		if r := p.Parse(ctx); !r.OK() {
			return r
		}
		return Skipped()
	})
}
