package ebnfparse

import (
	"fmt"

	"github.com/dhamidi/pcomb/combinator"
	"golang.org/x/exp/ebnf"
)

// Matcher parses whole inputs with one production of a grammar.
type Matcher struct {
	start  string
	parser combinator.Parser
}

// NewMatcher verifies grammar from start and compiles it.
func NewMatcher(grammar ebnf.Grammar, start string, opts ...Option) (*Matcher, error) {
	if err := Check(grammar, start); err != nil {
		return nil, err
	}
	b := NewBuilder(grammar, opts...)
	p, err := b.Production(start)
	if err != nil {
		return nil, err
	}
	root := combinator.KeepLeft(
		combinator.WithError(p, fmt.Sprintf("expected %s", start)),
		combinator.WithError(combinator.KeepRight(b.filler, combinator.EOF), "unexpected input after "+start),
	)
	return &Matcher{start: start, parser: root}, nil
}

// Match parses input, which must be matched completely, and returns the tree
// of the start production.
func (m *Matcher) Match(filename, input string) (*Node, error) {
	v, err := combinator.Parse(m.parser, input, combinator.WithFilename(filename))
	if err != nil {
		return nil, err
	}
	return v.(*Node), nil
}

// Match is a shorthand for NewMatcher followed by Matcher.Match.
func Match(grammar ebnf.Grammar, start, input string, opts ...Option) (*Node, error) {
	m, err := NewMatcher(grammar, start, opts...)
	if err != nil {
		return nil, err
	}
	return m.Match("", input)
}
