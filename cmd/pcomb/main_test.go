package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
)

func run(t *testing.T, cmd *cobra.Command, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true
	err := cmd.Execute()
	return out.String(), err
}

func TestCalcCmd(t *testing.T) {
	tests := []struct {
		args []string
		want string
	}{
		{[]string{"2", "+", "3*4"}, "14\n"},
		{[]string{"--flat", "2^3^2"}, "512\n"},
		{[]string{"--postfix", "(1+2)*3"}, "1 2 + 3 *\n"},
	}
	for _, tt := range tests {
		t.Run(strings.Join(tt.args, " "), func(t *testing.T) {
			got, err := run(t, newCalcCmd(), tt.args...)
			if err != nil {
				t.Fatalf("calc: %v", err)
			}
			if got != tt.want {
				t.Errorf("output = %q, want %q", got, tt.want)
			}
		})
	}

	if _, err := run(t, newCalcCmd(), "2", "+"); err == nil || !strings.Contains(err.Error(), "expr:1:3") {
		t.Errorf("calc 2 + error = %v, want position expr:1:3", err)
	}
}

func TestEbnfCmd(t *testing.T) {
	dir := t.TempDir()
	grammar := filepath.Join(dir, "sum.ebnf")
	src := "Sum = number { \"+\" number } .\nnumber = digit { digit } .\ndigit = \"0\" … \"9\" .\n"
	if err := os.WriteFile(grammar, []byte(src), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := run(t, newEbnfCmd(), "check", grammar, "--start", "Sum"); err != nil {
		t.Errorf("check: %v", err)
	}
	if _, err := run(t, newEbnfCmd(), "check", grammar, "--start", "digit"); err == nil {
		t.Error("check from digit succeeded despite unreachable productions")
	}

	out, err := run(t, newEbnfCmd(), "match", grammar, "--start", "Sum", "1 + 23")
	if err != nil {
		t.Fatalf("match: %v", err)
	}
	for _, want := range []string{`"kind": "Sum"`, `"text": "23"`} {
		if !strings.Contains(out, want) {
			t.Errorf("match output missing %s:\n%s", want, out)
		}
	}

	input := filepath.Join(dir, "input.txt")
	if err := os.WriteFile(input, []byte("1 +"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := run(t, newEbnfCmd(), "match", grammar, "--start", "Sum", "--file", input); err == nil {
		t.Error("match of incomplete input succeeded")
	}
}

func TestEbnfMatchRequiresStart(t *testing.T) {
	grammar := filepath.Join(t.TempDir(), "g.ebnf")
	if err := os.WriteFile(grammar, []byte("S = \"s\" .\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err := run(t, newEbnfCmd(), "match", grammar, "s")
	if err == nil || !strings.Contains(err.Error(), "start") {
		t.Errorf("match without --start error = %v, want required flag error", err)
	}
}
