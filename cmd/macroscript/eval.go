package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

func newEvalCmd() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "eval [script]",
		Short: "Evaluate a macroscript string or file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := newRuntime()
			if err != nil {
				return err
			}
			defer rt.Close()

			var result string
			switch {
			case file != "":
				result, err = rt.EvalFile(file)
			case len(args) == 1:
				result, err = rt.Eval(args[0])
			default:
				data, readErr := io.ReadAll(os.Stdin)
				if readErr != nil {
					return readErr
				}
				result, err = rt.Eval(string(data))
			}
			if err != nil {
				fmt.Fprintln(os.Stderr, renderError(err.Error()))
				os.Exit(1)
			}
			fmt.Println(result)
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "Evaluate a script file instead of an inline string")
	return cmd
}
