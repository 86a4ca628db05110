package combinator

import (
	"strings"
	"testing"
)

func TestMap(t *testing.T) {
	upper := Map(Literal("ab"), func(v any) any { return strings.ToUpper(v.(string)) })

	r, ctx := Attempt(upper, "abc")
	if !r.OK() || r.Value() != "AB" {
		t.Fatalf("Map on %q = %v, want success(AB)", "abc", r)
	}
	if ctx.Pos() != 2 {
		t.Errorf("position = %d, want 2", ctx.Pos())
	}

	called := false
	failing := Map(Literal("ab"), func(v any) any { called = true; return v })
	if r, _ := Attempt(failing, "xy"); r.OK() {
		t.Errorf("Map on %q = %v, want failure", "xy", r)
	}
	if called {
		t.Error("transform called on failed left")
	}
}

func TestMapKeepsSkipped(t *testing.T) {
	p := Map(Discard(Literal("a")), func(any) any { return "changed" })
	r, _ := Attempt(p, "a")
	if !r.OK() || !r.Skip() {
		t.Errorf("Map over skipped result = %v, want skip", r)
	}
}

func TestOnSuccess(t *testing.T) {
	var seen []any
	p := OnSuccess(Literal("a"), func(v any) { seen = append(seen, v) })

	r, _ := Attempt(p, "a")
	if !r.OK() || r.Value() != "a" {
		t.Fatalf("OnSuccess = %v, want success(a)", r)
	}
	if r, _ := Attempt(p, "b"); r.OK() {
		t.Fatalf("OnSuccess on %q = %v, want failure", "b", r)
	}
	if len(seen) != 1 || seen[0] != "a" {
		t.Errorf("effect saw %v, want [a]", seen)
	}
}

func TestWithError(t *testing.T) {
	p := WithError(Literal("a"), "expected a")

	r, ctx := Attempt(p, "b")
	if r.OK() {
		t.Fatalf("WithError on %q = %v, want failure", "b", r)
	}
	if msg, ok := ctx.Diagnostic(); !ok || msg != "expected a" {
		t.Errorf("diagnostic = %q, %v; want %q, true", msg, ok, "expected a")
	}

	r, ctx = Attempt(p, "a")
	if !r.OK() {
		t.Fatalf("WithError on %q = %v, want success", "a", r)
	}
	if msg, ok := ctx.Diagnostic(); ok {
		t.Errorf("diagnostic = %q after success, want none", msg)
	}
}

func TestKeepLeftDoesNotRewind(t *testing.T) {
	p := KeepLeft(Literal("a"), Literal("b"))

	r, ctx := Attempt(p, "ab")
	if !r.OK() || r.Value() != "a" || ctx.Pos() != 2 {
		t.Errorf("KeepLeft on %q = %v at %d, want success(a) at 2", "ab", r, ctx.Pos())
	}

	r, ctx = Attempt(p, "ac")
	if r.OK() {
		t.Fatalf("KeepLeft on %q = %v, want failure", "ac", r)
	}
	if ctx.Pos() != 1 {
		t.Errorf("position after failed right = %d, want 1 (left consumption kept)", ctx.Pos())
	}
}

func TestKeepRightDoesNotRewind(t *testing.T) {
	p := KeepRight(Literal("a"), Literal("b"))

	r, ctx := Attempt(p, "ab")
	if !r.OK() || r.Value() != "b" || ctx.Pos() != 2 {
		t.Errorf("KeepRight on %q = %v at %d, want success(b) at 2", "ab", r, ctx.Pos())
	}

	r, ctx = Attempt(p, "ac")
	if r.OK() {
		t.Fatalf("KeepRight on %q = %v, want failure", "ac", r)
	}
	if ctx.Pos() != 1 {
		t.Errorf("position after failed right = %d, want 1 (left consumption kept)", ctx.Pos())
	}

	if r, ctx := Attempt(p, "b"); r.OK() || ctx.Pos() != 0 {
		t.Errorf("KeepRight on %q = %v at %d, want failure at 0", "b", r, ctx.Pos())
	}
}

func TestLookAhead(t *testing.T) {
	word := MustPattern(`[a-z]+`)
	tests := []struct {
		input string
		right Parser
		ok    bool
	}{
		{"abc(", Literal("("), true},
		{"abc(x)", MustPattern(`\(x\)`), true},
		{"abc)", Literal("("), false},
		{"abc", EOF, true},
		{"abc", Literal("("), false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			_, alone := Attempt(word, tt.input)
			r, ctx := Attempt(LookAhead(word, tt.right), tt.input)
			if r.OK() != tt.ok {
				t.Fatalf("LookAhead = %v, want ok=%v", r, tt.ok)
			}
			if ctx.Pos() > alone.Pos() {
				t.Errorf("position = %d, beyond left alone %d", ctx.Pos(), alone.Pos())
			}
			if tt.ok && r.Value() != "abc" {
				t.Errorf("payload = %v, want abc", r.Value())
			}
		})
	}
}

func TestNegativeLookAhead(t *testing.T) {
	keyword := NegativeLookAhead(Literal("if"), MustPattern(`[a-z0-9_]`))
	tests := []struct {
		input string
		ok    bool
	}{
		{"if", true},
		{"if (x)", true},
		{"iffy", false},
		{"if_", false},
		{"of", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			r, ctx := Attempt(keyword, tt.input)
			if r.OK() != tt.ok {
				t.Fatalf("NegativeLookAhead on %q = %v, want ok=%v", tt.input, r, tt.ok)
			}
			if tt.ok && (r.Value() != "if" || ctx.Pos() != 2) {
				t.Errorf("got %v at %d, want success(if) at 2", r, ctx.Pos())
			}
		})
	}
}
