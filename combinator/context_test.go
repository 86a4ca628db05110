package combinator

import (
	"errors"
	"testing"
)

func TestPositionAt(t *testing.T) {
	ctx := NewContext("ab\ncd\n\nef", WithFilename("in.txt"))
	tests := []struct {
		offset int
		line   int
		column int
	}{
		{0, 1, 1},
		{2, 1, 3},
		{3, 2, 1},
		{4, 2, 2},
		{6, 3, 1},
		{7, 4, 1},
		{9, 4, 3},
		{100, 4, 3},
	}

	for _, tt := range tests {
		pos := ctx.PositionAt(tt.offset)
		if pos.Line != tt.line || pos.Column != tt.column {
			t.Errorf("PositionAt(%d) = %d:%d, want %d:%d", tt.offset, pos.Line, pos.Column, tt.line, tt.column)
		}
		if pos.Filename != "in.txt" {
			t.Errorf("PositionAt(%d).Filename = %q", tt.offset, pos.Filename)
		}
	}

	if got := ctx.PositionAt(4).String(); got != "in.txt:2:2" {
		t.Errorf("String() = %q, want %q", got, "in.txt:2:2")
	}
	if got := (Position{Line: 3, Column: 7}).String(); got != "3:7" {
		t.Errorf("String() = %q, want %q", got, "3:7")
	}
}

func TestContextSkip(t *testing.T) {
	ctx := NewContext("   x")
	if r := ctx.Skip(Spaces); !r.OK() || !r.Skip() {
		t.Errorf("Skip(Spaces) = %v, want skip", r)
	}
	if ctx.Pos() != 3 {
		t.Errorf("position = %d, want 3", ctx.Pos())
	}

	// zero-or-more fillers never fail
	if r := ctx.Skip(Spaces); !r.OK() || ctx.Pos() != 3 {
		t.Errorf("Skip(Spaces) on no filler = %v at %d", r, ctx.Pos())
	}

	mandatory := Seq(Literal("x"), MustPattern(`\s+`))
	if r := ctx.Skip(mandatory); r.OK() {
		t.Errorf("Skip(mandatory) = %v, want failure", r)
	}
	if ctx.Pos() != 3 {
		t.Errorf("failed Skip moved position to %d", ctx.Pos())
	}

	if r := ctx.Skip(nil); !r.OK() || ctx.Pos() != 3 {
		t.Errorf("Skip(nil) = %v at %d, want skip at 3", r, ctx.Pos())
	}
}

func TestContextSetPosOutOfRange(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("SetPos beyond input did not panic")
		}
	}()
	NewContext("ab").SetPos(3)
}

func TestContextEnterLeave(t *testing.T) {
	ctx := NewContext("")
	type key struct {
		rule string
		pos  int
	}
	if !ctx.Enter(key{"expr", 0}) {
		t.Fatal("first Enter refused")
	}
	if ctx.Enter(key{"expr", 0}) {
		t.Error("second Enter of an active key accepted")
	}
	if !ctx.Enter(key{"expr", 1}) {
		t.Error("Enter at a different offset refused")
	}
	ctx.Leave(key{"expr", 0})
	if !ctx.Enter(key{"expr", 0}) {
		t.Error("Enter after Leave refused")
	}
}

func TestResult(t *testing.T) {
	tests := []struct {
		name   string
		result Result
		ok     bool
		skip   bool
		str    string
	}{
		{"zero", Result{}, false, false, "failure"},
		{"failure", Failure(), false, false, "failure"},
		{"nil payload", Success(nil), true, false, "success(<nil>)"},
		{"empty slice", Success([]any{}), true, false, "success([])"},
		{"skipped", Skipped(), true, true, "skip"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.result.OK() != tt.ok || tt.result.Skip() != tt.skip {
				t.Errorf("OK, Skip = %v, %v; want %v, %v", tt.result.OK(), tt.result.Skip(), tt.ok, tt.skip)
			}
			if got := tt.result.String(); got != tt.str {
				t.Errorf("String() = %q, want %q", got, tt.str)
			}
		})
	}
}

func TestParse(t *testing.T) {
	digit := WithError(MustPattern(`[0-9]`), "expected digit")
	sum := Seq(Literal("1"), Literal("+"), digit)

	v, err := Parse(sum, "1+2")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if got := v.([]any); len(got) != 3 || got[2] != "2" {
		t.Errorf("Parse = %v, want [1 + 2]", v)
	}

	_, err = Parse(sum, "1+x", WithFilename("calc"))
	var serr *SyntaxError
	if !errors.As(err, &serr) {
		t.Fatalf("Parse error = %v, want *SyntaxError", err)
	}
	if serr.Error() != "calc:1:3: expected digit" {
		t.Errorf("Error() = %q", serr.Error())
	}

	_, err = Parse(Literal("a"), "b")
	if !errors.As(err, &serr) || serr.Message != "unexpected input" {
		t.Errorf("Parse error = %v, want default message", err)
	}
}

func TestParsePropagatesOtherPanics(t *testing.T) {
	boom := ParserFunc(func(*Context) Result { panic("boom") })
	defer func() {
		if x := recover(); x != "boom" {
			t.Errorf("recovered %v, want boom", x)
		}
	}()
	Parse(boom, "")
}
