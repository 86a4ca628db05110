package ebnfparse

import (
	"strconv"
	"strings"

	"github.com/dhamidi/pcomb/combinator"
)

// TokenKind is the Kind of leaf nodes produced by literal tokens and
// character ranges inside syntactic productions.
const TokenKind = "Token"

// Span represents a range in the input.
type Span struct {
	Start combinator.Position
	End   combinator.Position
}

// Node represents a node in the concrete syntax tree.
// Lexical productions and tokens produce leaves with Text set; syntactic
// productions produce interior nodes with Children.
type Node struct {
	Kind     string  // Production name, or TokenKind
	Text     string  // Matched text (leaves only)
	Children []*Node // Child nodes (nil for leaves)
	Span     Span    // Input span covering this node
}

// IsTerminal returns true if this is a leaf node.
func (n *Node) IsTerminal() bool {
	return n.Children == nil
}

// AddChild appends a child node and updates the span. The first child sets
// the start of the span and every child extends its end.
func (n *Node) AddChild(child *Node) {
	if child == nil {
		return
	}
	n.Children = append(n.Children, child)
	if len(n.Children) == 1 {
		n.Span.Start = child.Span.Start
	}
	n.Span.End = child.Span.End
}

// Find returns the first node of the given kind in depth-first order.
func (n *Node) Find(kind string) *Node {
	if n.Kind == kind {
		return n
	}
	for _, c := range n.Children {
		if found := c.Find(kind); found != nil {
			return found
		}
	}
	return nil
}

// String renders the tree as an s-expression, e.g.
// (Sum (number "1") (Token "+") (number "2")).
func (n *Node) String() string {
	var b strings.Builder
	n.write(&b)
	return b.String()
}

func (n *Node) write(b *strings.Builder) {
	b.WriteByte('(')
	b.WriteString(n.Kind)
	if n.IsTerminal() {
		b.WriteByte(' ')
		b.WriteString(strconv.Quote(n.Text))
	}
	for _, c := range n.Children {
		b.WriteByte(' ')
		c.write(b)
	}
	b.WriteByte(')')
}

// flatten collects the nodes held in a combinator payload, which is either a
// *Node or an arbitrarily nested []any of them.
func flatten(v any, into []*Node) []*Node {
	switch x := v.(type) {
	case *Node:
		return append(into, x)
	case []any:
		for _, item := range x {
			into = flatten(item, into)
		}
	}
	return into
}
