package calc

import (
	"errors"
	"math"
	"strings"
	"sync"
	"testing"

	"github.com/dhamidi/pcomb/combinator"
)

func TestEval(t *testing.T) {
	tests := []struct {
		input string
		want  float64
	}{
		{"42", 42},
		{"2+3*4", 14},
		{"(2+3)*4", 20},
		{"2 - 3 - 4", -5},
		{"2^3^2", 512},
		{"-2^2", 4},
		{"2--3", 5},
		{"7 % 4 * 2", 6},
		{"1.5e1 / 3", 5},
		{"  ( 1 +\n 2 )  ", 3},
		{".5*4", 2},
	}

	calcs := map[string]*Calculator{
		"fold": New(),
		"flat": New(WithFlat()),
	}
	for mode, c := range calcs {
		for _, tt := range tests {
			t.Run(mode+"/"+tt.input, func(t *testing.T) {
				got, err := c.Eval(tt.input)
				if err != nil {
					t.Fatalf("Eval(%q) error: %v", tt.input, err)
				}
				if got != tt.want {
					t.Errorf("Eval(%q) = %v, want %v", tt.input, got, tt.want)
				}
			})
		}
	}
}

func TestEvalDivisionByZero(t *testing.T) {
	c := New()
	if got, _ := c.Eval("1/0"); !math.IsInf(got, 1) {
		t.Errorf("1/0 = %v, want +Inf", got)
	}
	if got, _ := c.Eval("0/0"); !math.IsNaN(got) {
		t.Errorf("0/0 = %v, want NaN", got)
	}
}

func TestPostfix(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"2+3*4", "2 3 4 * +"},
		{"2*3+4", "2 3 * 4 +"},
		{"2-3-4", "2 3 - 4 -"},
		{"2^3^2", "2 3 2 ^ ^"},
		{"(1+2)*3", "1 2 + 3 *"},
		{"-(0.5)", "0.5 neg"},
	}

	c := New()
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			tokens, err := c.Postfix(tt.input)
			if err != nil {
				t.Fatalf("Postfix error: %v", err)
			}
			if got := strings.Join(tokens, " "); got != tt.want {
				t.Errorf("Postfix(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestEvalErrors(t *testing.T) {
	tests := []struct {
		input   string
		message string
		column  int
	}{
		{"", "expected an expression", 1},
		{"2 +", "unexpected input after expression", 3},
		{"2 3", "unexpected input after expression", 3},
		{"(1", "expected an expression", 1},
	}

	c := New(WithFilename("expr"))
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			_, err := c.Eval(tt.input)
			var serr *combinator.SyntaxError
			if !errors.As(err, &serr) {
				t.Fatalf("Eval(%q) error = %v, want *combinator.SyntaxError", tt.input, err)
			}
			if serr.Message != tt.message || serr.Pos.Column != tt.column || serr.Pos.Filename != "expr" {
				t.Errorf("Eval(%q) error = %v, want %q at column %d", tt.input, err, tt.message, tt.column)
			}
		})
	}
}

func TestConcurrentEval(t *testing.T) {
	c := New()
	var wg sync.WaitGroup
	errs := make(chan error, 16)
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got, err := c.Eval("(1+2)*(3+4)")
			if err != nil {
				errs <- err
				return
			}
			if got != 21 {
				errs <- errors.New("wrong result")
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Error(err)
	}
}
