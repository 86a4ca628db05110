// Package combinator provides composable parsers for building recursive-descent
// parsers at runtime.
//
// # Overview
//
// A grammar is a graph of values implementing Parser. Parsing walks that graph
// against an input string, threading one *Context through every call:
//
//	┌─────────────┐     ┌─────────────┐     ┌─────────────┐
//	│   Input     │────▶│   Context   │────▶│   Parser    │
//	│  (string)   │     │ (pos, diag) │     │   graph     │
//	└─────────────┘     └─────────────┘     └─────────────┘
//	                                               │
//	                                               ▼
//	                                        ┌─────────────┐
//	                                        │   Result    │
//	                                        │ ok/skip/val │
//	                                        └─────────────┘
//
// # Results
//
// Every Parse call returns a Result. A failure carries nothing. A success
// carries a payload, which may be nil or an empty slice. A skipped result is a
// success whose payload is left out of the sequences built by Seq, Join,
// the repetitions and ShuntingYard; Discard turns any parser into one that
// produces skipped results, which is how whitespace and punctuation are
// usually dropped.
//
// # Backtracking
//
// The only way to undo consumption is to save ctx.Pos() before a speculative
// attempt and restore it with ctx.SetPos on failure. Alt, Longest, Join, the
// optional part of a repetition, LookAhead, NegativeLookAhead and
// ShuntingYard do this. Seq, KeepLeft and KeepRight do not: when their right
// side fails, what the left side consumed stays consumed.
//
// # Termination
//
// Join and RepeatAtLeastN stop as soon as an iteration succeeds without
// consuming input, so zero-width parsers cannot loop forever inside them.
// There is no step or time budget.
//
// # Concurrency
//
// Parsers hold only their construction parameters and may be shared by any
// number of goroutines. A Context belongs to one parse and one goroutine.
//
// # Example
//
//	digits := combinator.Map(combinator.MustPattern(`[0-9]+`), func(v any) any {
//	    n, _ := strconv.Atoi(v.(string))
//	    return n
//	})
//	sum := combinator.Must(combinator.ShuntingYard(digits,
//	    combinator.WithLeft(combinator.Infix("+", 1, add)),
//	    combinator.WithFold(),
//	))
//	v, err := combinator.Parse(sum, "1 + 2 + 3")
package combinator
