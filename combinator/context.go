package combinator

import (
	"fmt"
	"strings"

	"github.com/ahrtr/gocontainer/set"
)

// Position represents a location in the input.
type Position struct {
	Filename string
	Offset   int
	Line     int
	Column   int
}

func (p Position) String() string {
	if p.Filename != "" {
		return fmt.Sprintf("%s:%d:%d", p.Filename, p.Line, p.Column)
	}
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Option configures a Context.
type Option func(*Context)

// WithFilename sets the name reported in positions and syntax errors.
func WithFilename(name string) Option {
	return func(c *Context) {
		c.filename = name
	}
}

// Context is the cursor shared by every parser of one parse invocation.
// The input never changes; only the position and the diagnostic do.
// A Context must not be used by more than one goroutine at a time.
type Context struct {
	input      string
	filename   string
	pos        int
	diagnostic string
	hasDiag    bool
	active     set.Interface
}

// NewContext creates a context positioned at the start of input.
func NewContext(input string, opts ...Option) *Context {
	c := &Context{input: input}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Input returns the whole input.
func (c *Context) Input() string {
	return c.input
}

// Rest returns the unconsumed input.
func (c *Context) Rest() string {
	return c.input[c.pos:]
}

// Pos returns the current byte offset.
func (c *Context) Pos() int {
	return c.pos
}

// SetPos moves the cursor. It is the only way to backtrack.
func (c *Context) SetPos(pos int) {
	if pos < 0 || pos > len(c.input) {
		panic(fmt.Sprintf("combinator: position %d out of range [0, %d]", pos, len(c.input)))
	}
	c.pos = pos
}

// Advance moves the cursor forward by n bytes.
func (c *Context) Advance(n int) {
	c.SetPos(c.pos + n)
}

// EOF reports whether all input has been consumed.
func (c *Context) EOF() bool {
	return c.pos >= len(c.input)
}

// Position returns the current location.
func (c *Context) Position() Position {
	return c.PositionAt(c.pos)
}

// PositionAt returns the location of the given byte offset.
// Lines and columns are 1-based; columns count bytes.
func (c *Context) PositionAt(offset int) Position {
	if offset > len(c.input) {
		offset = len(c.input)
	}
	before := c.input[:offset]
	line := strings.Count(before, "\n") + 1
	column := offset - (strings.LastIndexByte(before, '\n') + 1) + 1
	return Position{
		Filename: c.filename,
		Offset:   offset,
		Line:     line,
		Column:   column,
	}
}

// Diagnostic returns the message installed by WithError, if any.
func (c *Context) Diagnostic() (string, bool) {
	return c.diagnostic, c.hasDiag
}

// SetDiagnostic installs msg as the current diagnostic.
func (c *Context) SetDiagnostic(msg string) {
	c.diagnostic = msg
	c.hasDiag = true
}

// ClearDiagnostic removes the current diagnostic.
func (c *Context) ClearDiagnostic() {
	c.diagnostic = ""
	c.hasDiag = false
}

// Skip consumes filler at the current position.
// It returns a skipped result on success. When filler fails the position is
// restored and a failure is returned; zero-or-more fillers never fail.
func (c *Context) Skip(filler Parser) Result {
	if filler == nil {
		return Skipped()
	}
	start := c.pos
	if r := filler.Parse(c); !r.OK() {
		c.pos = start
		return Failure()
	}
	return Skipped()
}

// Enter marks key as active and reports whether it was inactive before.
// Recursive rules use it to refuse re-entry at the same offset.
func (c *Context) Enter(key any) bool {
	if c.active == nil {
		c.active = set.New()
	}
	if c.active.Contains(key) {
		return false
	}
	c.active.Add(key)
	return true
}

// Leave clears a key marked by Enter.
func (c *Context) Leave(key any) {
	if c.active != nil {
		c.active.Remove(key)
	}
}
