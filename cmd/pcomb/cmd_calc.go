package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dhamidi/pcomb/calc"
	"github.com/spf13/cobra"
)

func newCalcCmd() *cobra.Command {
	var postfix bool
	var flat bool

	cmd := &cobra.Command{
		Use:   "calc <expression...>",
		Short: "Evaluate an arithmetic expression",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := strings.Join(args, " ")

			opts := []calc.Option{calc.WithFilename("expr")}
			if flat {
				opts = append(opts, calc.WithFlat())
			}
			c := calc.New(opts...)

			if postfix {
				tokens, err := c.Postfix(input)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), strings.Join(tokens, " "))
				return nil
			}

			v, err := c.Eval(input)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), strconv.FormatFloat(v, 'g', -1, 64))
			return nil
		},
	}

	cmd.Flags().BoolVar(&postfix, "postfix", false, "print the expression in reverse Polish notation instead of evaluating it")
	cmd.Flags().BoolVar(&flat, "flat", false, "evaluate by reducing the postfix form")

	return cmd
}
