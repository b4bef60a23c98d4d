package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"
)

func newMacrosCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "macros",
		Short: "List registered handler names",
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := newRuntime()
			if err != nil {
				return err
			}
			defer rt.Close()

			names := rt.Handlers()
			sort.Strings(names)
			for _, name := range names {
				fmt.Println(name)
			}
			return nil
		},
	}
}
