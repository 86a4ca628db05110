package combinator

type seq struct {
	parsers []Parser
}

// Seq matches each parser in turn and returns their non-skipped payloads as a
// []any. It fails as soon as one parser fails, leaving the cursor where that
// parser left it; wrap it in Alt or a repetition to backtrack.
func Seq(parsers ...Parser) Parser {
	return &seq{parsers: parsers}
}

func (p *seq) Parse(ctx *Context) Result {
	values := make([]any, 0, len(p.parsers))
	for _, sub := range p.parsers {
		r := sub.Parse(ctx)
		if !r.OK() {
			return Failure()
		}
		values = collect(values, r)
	}
	return Success(values)
}

type alt struct {
	parsers []Parser
}

// Alt tries each parser at the same position and returns the first success.
func Alt(parsers ...Parser) Parser {
	return &alt{parsers: parsers}
}

func (p *alt) Parse(ctx *Context) Result {
	start := ctx.Pos()
	for _, sub := range p.parsers {
		if r := sub.Parse(ctx); r.OK() {
			return r
		}
		ctx.SetPos(start)
	}
	return Failure()
}

type longest struct {
	parsers []Parser
}

// Longest tries every parser at the same position and keeps the success that
// consumed the most input. Ties go to the earlier parser.
func Longest(parsers ...Parser) Parser {
	return &longest{parsers: parsers}
}

func (p *longest) Parse(ctx *Context) Result {
	start := ctx.Pos()
	best, end := Failure(), -1
	for _, sub := range p.parsers {
		ctx.SetPos(start)
		if r := sub.Parse(ctx); r.OK() && ctx.Pos() > end {
			best, end = r, ctx.Pos()
		}
	}
	if end < 0 {
		ctx.SetPos(start)
		return Failure()
	}
	ctx.SetPos(end)
	return best
}

// Lazy defers calling fn until the first parse, which allows a grammar to
// refer to itself. fn is called on every parse; it should return a parser
// stored elsewhere rather than build a new one.
func Lazy(fn func() Parser) Parser {
	return ParserFunc(func(ctx *Context) Result {
		return fn().Parse(ctx)
	})
}
