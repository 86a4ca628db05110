// Package ebnfparse turns EBNF grammars into combinator parsers that produce
// concrete syntax trees.
package ebnfparse

import (
	"fmt"
	"io"
	"os"
	"reflect"

	"github.com/tliron/commonlog"
	"golang.org/x/exp/ebnf"
)

var log = commonlog.GetLogger("pcomb.ebnfparse")

// LoadGrammar loads an EBNF grammar from a file.
func LoadGrammar(filename string) (ebnf.Grammar, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("open grammar: %w", err)
	}
	defer f.Close()

	return ParseGrammar(filename, f)
}

// ParseGrammar parses an EBNF grammar read from r.
func ParseGrammar(filename string, r io.Reader) (ebnf.Grammar, error) {
	grammar, err := ebnf.Parse(filename, r)
	if err != nil {
		return nil, fmt.Errorf("parse grammar: %w", err)
	}
	return grammar, nil
}

// Check verifies that every production reachable from start is defined, that
// every production is reachable and that lexical productions only refer to
// lexical productions. An empty start skips verification.
func Check(grammar ebnf.Grammar, start string) error {
	if start == "" {
		return nil
	}
	if err := ebnf.Verify(grammar, start); err != nil {
		return fmt.Errorf("verify grammar: %w", err)
	}
	return nil
}

// Errors splits an error returned by this package into the individual
// errors reported by the EBNF parser or verifier.
func Errors(err error) []error {
	if err == nil {
		return nil
	}
	for e := err; e != nil; {
		v := reflect.ValueOf(e)
		if v.Kind() == reflect.Slice {
			errs := make([]error, 0, v.Len())
			for i := 0; i < v.Len(); i++ {
				if item, ok := v.Index(i).Interface().(error); ok {
					errs = append(errs, item)
				}
			}
			return errs
		}
		u, ok := e.(interface{ Unwrap() error })
		if !ok {
			break
		}
		e = u.Unwrap()
	}
	return []error{err}
}
