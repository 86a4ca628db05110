package combinator

type join struct {
	token       Parser
	separator   Parser
	beforeSep   Parser
	beforeToken Parser
}

// Join matches token (separator token)* and returns the non-skipped results
// in input order as a []any. At least one token is required.
//
// Each separator+token pair is attempted speculatively: if either side
// fails the cursor returns to before the separator and the list ends there.
// A pair that consumes no input also ends the list.
func Join(token, separator Parser) Parser {
	return &join{token: token, separator: separator}
}

// JoinOption configures SpacedJoin.
type JoinOption func(*join)

// WithSeparatorFiller sets the filler skipped before each separator.
func WithSeparatorFiller(filler Parser) JoinOption {
	return func(j *join) {
		j.beforeSep = filler
	}
}

// WithTokenFiller sets the filler skipped before each token that follows a
// separator.
func WithTokenFiller(filler Parser) JoinOption {
	return func(j *join) {
		j.beforeToken = filler
	}
}

// WithFiller sets both fillers of a SpacedJoin.
func WithFiller(filler Parser) JoinOption {
	return func(j *join) {
		j.beforeSep = filler
		j.beforeToken = filler
	}
}

// SpacedJoin is Join with filler skipped before every separator and before
// every token after a separator. Both fillers default to Spaces. A filler
// that fails is treated like a missing separator: the pair is abandoned and
// the cursor returns to before it.
func SpacedJoin(token, separator Parser, opts ...JoinOption) Parser {
	j := &join{
		token:       token,
		separator:   separator,
		beforeSep:   Spaces,
		beforeToken: Spaces,
	}
	for _, opt := range opts {
		opt(j)
	}
	return j
}

func (p *join) Parse(ctx *Context) Result {
	first := p.token.Parse(ctx)
	if !first.OK() {
		return Failure()
	}
	values := collect([]any{}, first)
	for {
		start := ctx.Pos()
		if !ctx.Skip(p.beforeSep).OK() {
			break
		}
		sep := p.separator.Parse(ctx)
		if !sep.OK() {
			ctx.SetPos(start)
			break
		}
		if !ctx.Skip(p.beforeToken).OK() {
			ctx.SetPos(start)
			break
		}
		tok := p.token.Parse(ctx)
		if !tok.OK() {
			ctx.SetPos(start)
			break
		}
		if ctx.Pos() == start {
			break
		}
		values = collect(collect(values, sep), tok)
	}
	return Success(values)
}
