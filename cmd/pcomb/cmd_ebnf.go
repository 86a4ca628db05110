package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dhamidi/pcomb/ebnfparse"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func newEbnfCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ebnf",
		Short: "EBNF grammar tools",
	}

	cmd.AddCommand(newEbnfCheckCmd())
	cmd.AddCommand(newEbnfMatchCmd())

	return cmd
}

func newEbnfCheckCmd() *cobra.Command {
	var startProduction string

	cmd := &cobra.Command{
		Use:   "check <file>",
		Short: "Parse and verify an EBNF grammar file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			grammar, err := ebnfparse.LoadGrammar(args[0])
			if err != nil {
				printErrors(cmd.ErrOrStderr(), err)
				return fmt.Errorf("%s: invalid grammar", args[0])
			}

			if err := ebnfparse.Check(grammar, startProduction); err != nil {
				printErrors(cmd.ErrOrStderr(), err)
				return fmt.Errorf("%s: verification failed", args[0])
			}

			if startProduction != "" {
				if _, err := ebnfparse.NewBuilder(grammar).Production(startProduction); err != nil {
					printErrors(cmd.ErrOrStderr(), err)
					return fmt.Errorf("%s: cannot build parser", args[0])
				}
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&startProduction, "start", "", "start production for verification (if empty, only checks syntax)")

	return cmd
}

func newEbnfMatchCmd() *cobra.Command {
	var startProduction string
	var inputFile string
	var trace bool

	cmd := &cobra.Command{
		Use:   "match <grammar> [text...]",
		Short: "Match input against a grammar and print the syntax tree as JSON",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			grammar, err := ebnfparse.LoadGrammar(args[0])
			if err != nil {
				printErrors(cmd.ErrOrStderr(), err)
				return fmt.Errorf("%s: invalid grammar", args[0])
			}

			var opts []ebnfparse.Option
			if trace {
				opts = append(opts, ebnfparse.WithTrace())
			}
			m, err := ebnfparse.NewMatcher(grammar, startProduction, opts...)
			if err != nil {
				printErrors(cmd.ErrOrStderr(), err)
				return fmt.Errorf("%s: cannot build parser", args[0])
			}

			filename, input, err := readInput(cmd.InOrStdin(), inputFile, args[1:])
			if err != nil {
				return err
			}

			node, err := m.Match(filename, input)
			if err != nil {
				return err
			}

			if err := ebnfparse.NewJSONEncoder(cmd.OutOrStdout()).Encode(node); err != nil {
				return fmt.Errorf("encode json: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout())
			return nil
		},
	}

	cmd.Flags().StringVar(&startProduction, "start", "", "production to match")
	cmd.Flags().StringVarP(&inputFile, "file", "f", "", "read input from file (- for stdin)")
	cmd.Flags().BoolVar(&trace, "trace", false, "log every production attempt (needs -vv)")
	if err := cmd.MarkFlagRequired("start"); err != nil {
		panic(err) // only fails for an undefined flag
	}

	return cmd
}

func readInput(stdin io.Reader, file string, words []string) (string, string, error) {
	switch {
	case file == "-":
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", "", fmt.Errorf("read stdin: %w", err)
		}
		return "stdin", string(data), nil
	case file != "":
		data, err := os.ReadFile(file)
		if err != nil {
			return "", "", fmt.Errorf("read input: %w", err)
		}
		return file, string(data), nil
	default:
		return "", strings.Join(words, " "), nil
	}
}

func printErrors(w io.Writer, err error) {
	red := color.New(color.FgRed)
	for _, e := range ebnfparse.Errors(err) {
		red.Fprintln(w, e)
	}
}
