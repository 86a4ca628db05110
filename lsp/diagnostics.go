package lsp

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/dhamidi/pcomb/ebnfparse"
	"golang.org/x/exp/ebnf"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

const diagnosticSource = "pcomb"

// errorPosition matches the "file:line:col: message" form used by the ebnf
// package. The file part may itself contain colons.
var errorPosition = regexp.MustCompile(`^(?:(.*):)?(\d+):(\d+): (.*)$`)

// Diagnose parses and verifies an EBNF grammar and reports every problem
// found. start names the production to verify from; when it is empty the
// first production in the document is used.
func Diagnose(filename, text, start string) []protocol.Diagnostic {
	diagnostics := []protocol.Diagnostic{}

	grammar, err := ebnfparse.ParseGrammar(filename, strings.NewReader(text))
	if err != nil {
		return appendErrors(diagnostics, err)
	}
	if len(grammar) == 0 {
		return diagnostics
	}
	if start == "" {
		start = firstProduction(grammar)
	}
	if err := ebnfparse.Check(grammar, start); err != nil {
		return appendErrors(diagnostics, err)
	}
	if _, err := ebnfparse.NewBuilder(grammar).Production(start); err != nil {
		return appendErrors(diagnostics, err)
	}
	return diagnostics
}

func appendErrors(diagnostics []protocol.Diagnostic, err error) []protocol.Diagnostic {
	for _, e := range ebnfparse.Errors(err) {
		diagnostics = append(diagnostics, toDiagnostic(e))
	}
	return diagnostics
}

// firstProduction returns the name of the production defined first in the
// source.
func firstProduction(grammar ebnf.Grammar) string {
	name, offset := "", math.MaxInt
	for n, p := range grammar {
		if o := p.Name.Pos().Offset; o < offset {
			name, offset = n, o
		}
	}
	return name
}

func toDiagnostic(err error) protocol.Diagnostic {
	line, column, message := splitPosition(err)
	severity := protocol.DiagnosticSeverityError
	if strings.HasSuffix(message, "is unreachable") {
		severity = protocol.DiagnosticSeverityWarning
	}
	source := diagnosticSource
	pos := protocol.Position{Line: line, Character: column}
	return protocol.Diagnostic{
		Range:    protocol.Range{Start: pos, End: pos},
		Severity: &severity,
		Source:   &source,
		Message:  message,
	}
}

// splitPosition extracts the zero-based position and the bare message from
// err. Errors without a position are reported at the start of the document.
func splitPosition(err error) (line, column protocol.UInteger, message string) {
	text := err.Error()
	m := errorPosition.FindStringSubmatch(text)
	if m == nil {
		return 0, 0, strings.TrimPrefix(text, "-: ")
	}
	return toZeroBased(m[2]), toZeroBased(m[3]), m[4]
}

func toZeroBased(s string) protocol.UInteger {
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return 0
	}
	return protocol.UInteger(n - 1)
}
