package combinator

import "fmt"

// Unbounded is the maximum passed by RepeatAtLeastN.
const Unbounded = -1

// Repeat matches a base parser a bounded or unbounded number of times and
// returns the non-skipped payloads as a []any.
type Repeat struct {
	base Parser
	min  int
	max  int // Unbounded for no limit
}

// RepeatRange matches base at least min and at most max times.
// The first min matches are mandatory: if any of them fails the repeat fails,
// without rewinding the matches before it. Further matches are optional and
// the first one to fail ends the repetition at the position it started.
func RepeatRange(base Parser, min, max int) (*Repeat, error) {
	if min < 0 || max < min {
		return nil, fmt.Errorf("repeat %d..%d: %w", min, max, ErrInvalidBounds)
	}
	return &Repeat{base: base, min: min, max: max}, nil
}

// RepeatN matches base exactly n times.
func RepeatN(base Parser, n int) (*Repeat, error) {
	if n < 0 {
		return nil, fmt.Errorf("repeat %d times: %w", n, ErrInvalidBounds)
	}
	return RepeatRange(base, n, n)
}

// RepeatAtLeastN matches base at least n times and then as often as it keeps
// matching. A match that consumes no input ends the repetition and is not
// included in the result.
func RepeatAtLeastN(base Parser, n int) (*Repeat, error) {
	if n < 0 {
		return nil, fmt.Errorf("repeat at least %d times: %w", n, ErrInvalidBounds)
	}
	return &Repeat{base: base, min: n, max: Unbounded}, nil
}

// Maybe matches base zero or one times. The payload is base's payload, or nil
// when base did not match.
func Maybe(base Parser) Parser {
	rep := Must(RepeatRange(base, 0, 1))
	return Map(rep, func(v any) any {
		if values := v.([]any); len(values) > 0 {
			return values[0]
		}
		return nil
	})
}

// Many matches base zero or more times.
func Many(base Parser) Parser {
	return Must(RepeatAtLeastN(base, 0))
}

// Some matches base one or more times.
func Some(base Parser) Parser {
	return Must(RepeatAtLeastN(base, 1))
}

func (p *Repeat) Parse(ctx *Context) Result {
	values := []any{}
	for i := 0; i < p.min; i++ {
		r := p.base.Parse(ctx)
		if !r.OK() {
			return Failure()
		}
		values = collect(values, r)
	}
	if p.max == Unbounded {
		return Success(p.unbounded(ctx, values))
	}
	for i := p.min; i < p.max; i++ {
		start := ctx.Pos()
		r := p.base.Parse(ctx)
		if !r.OK() {
			ctx.SetPos(start)
			break
		}
		values = collect(values, r)
	}
	return Success(values)
}

func (p *Repeat) unbounded(ctx *Context, values []any) []any {
	for {
		start := ctx.Pos()
		r := p.base.Parse(ctx)
		if !r.OK() {
			ctx.SetPos(start)
			return values
		}
		if ctx.Pos() == start {
			return values
		}
		values = collect(values, r)
	}
}
