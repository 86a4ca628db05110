package combinator

import "fmt"

type resultKind uint8

const (
	kindFailure resultKind = iota
	kindSuccess
	kindSkip
)

// Result is the outcome of a single Parse call.
// A successful result carries a payload, which may legitimately be nil or an
// empty slice. A skipped result is a success whose payload is dropped from any
// sequence a combinator assembles. The zero Result is a failure.
type Result struct {
	value any
	kind  resultKind
}

// Success returns a successful result carrying v.
func Success(v any) Result {
	return Result{value: v, kind: kindSuccess}
}

// Skipped returns a successful result that is omitted from sequences.
func Skipped() Result {
	return Result{kind: kindSkip}
}

// Failure returns a failed result.
func Failure() Result {
	return Result{}
}

// OK reports whether the parse succeeded. Skipped results are successes.
func (r Result) OK() bool {
	return r.kind != kindFailure
}

// Skip reports whether the result succeeded but must be left out of
// assembled sequences.
func (r Result) Skip() bool {
	return r.kind == kindSkip
}

// Value returns the payload. It is nil for failed and skipped results.
func (r Result) Value() any {
	return r.value
}

func (r Result) String() string {
	switch r.kind {
	case kindSuccess:
		return fmt.Sprintf("success(%v)", r.value)
	case kindSkip:
		return "skip"
	default:
		return "failure"
	}
}

// collect appends the payload of r to values unless r is skipped.
func collect(values []any, r Result) []any {
	if r.Skip() {
		return values
	}
	return append(values, r.value)
}
