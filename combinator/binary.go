package combinator

// The binary combinators are each built from exactly two constituents.
// A failure of either constituent propagates unchanged. Only LookAhead and
// NegativeLookAhead restore the cursor; KeepLeft and KeepRight leave the
// left side's consumption in place even when the right side fails.

type mapParser struct {
	left Parser
	fn   func(any) any
}

// Map replaces the payload of a successful left result with fn(payload).
// Skipped results carry no payload and pass through untouched.
func Map(left Parser, fn func(any) any) Parser {
	return &mapParser{left: left, fn: fn}
}

func (p *mapParser) Parse(ctx *Context) Result {
	r := p.left.Parse(ctx)
	if !r.OK() || r.Skip() {
		return r
	}
	return Success(p.fn(r.Value()))
}

type onSuccess struct {
	left Parser
	fn   func(any)
}

// OnSuccess calls fn with the payload of every successful left result.
// The result of left is returned unchanged.
func OnSuccess(left Parser, fn func(any)) Parser {
	return &onSuccess{left: left, fn: fn}
}

func (p *onSuccess) Parse(ctx *Context) Result {
	r := p.left.Parse(ctx)
	if r.OK() {
		p.fn(r.Value())
	}
	return r
}

type withError struct {
	left    Parser
	message string
}

// WithError installs message as the context diagnostic while left runs.
// The diagnostic is cleared when left succeeds and kept when it fails, so
// that the caller can report message instead of a generic error.
func WithError(left Parser, message string) Parser {
	return &withError{left: left, message: message}
}

func (p *withError) Parse(ctx *Context) Result {
	ctx.SetDiagnostic(p.message)
	r := p.left.Parse(ctx)
	if r.OK() {
		ctx.ClearDiagnostic()
	}
	return r
}

type keepLeft struct {
	left, right Parser
}

// KeepLeft matches left then right and returns left's result.
// If right fails the whole match fails, but whatever left consumed stays
// consumed.
func KeepLeft(left, right Parser) Parser {
	return &keepLeft{left: left, right: right}
}

func (p *keepLeft) Parse(ctx *Context) Result {
	r := p.left.Parse(ctx)
	if !r.OK() {
		return r
	}
	if !p.right.Parse(ctx).OK() {
		return Failure()
	}
	return r
}

type keepRight struct {
	left, right Parser
}

// KeepRight matches left then right and returns right's result.
// As with KeepLeft, a failing right side does not rewind left.
func KeepRight(left, right Parser) Parser {
	return &keepRight{left: left, right: right}
}

func (p *keepRight) Parse(ctx *Context) Result {
	if !p.left.Parse(ctx).OK() {
		return Failure()
	}
	return p.right.Parse(ctx)
}

type lookAhead struct {
	left, right Parser
}

// LookAhead matches left and then checks that right matches next, without
// consuming what right matched.
func LookAhead(left, right Parser) Parser {
	return &lookAhead{left: left, right: right}
}

func (p *lookAhead) Parse(ctx *Context) Result {
	r := p.left.Parse(ctx)
	if !r.OK() {
		return r
	}
	pos := ctx.Pos()
	ahead := p.right.Parse(ctx)
	ctx.SetPos(pos)
	if !ahead.OK() {
		return Failure()
	}
	return r
}

type negativeLookAhead struct {
	left, right Parser
}

// NegativeLookAhead matches left and then checks that right does not match
// next. Nothing right reads is consumed.
func NegativeLookAhead(left, right Parser) Parser {
	return &negativeLookAhead{left: left, right: right}
}

func (p *negativeLookAhead) Parse(ctx *Context) Result {
	r := p.left.Parse(ctx)
	if !r.OK() {
		return r
	}
	pos := ctx.Pos()
	ahead := p.right.Parse(ctx)
	ctx.SetPos(pos)
	if ahead.OK() {
		return Failure()
	}
	return r
}
