// Command macroscript is the bracket-macro interpreter CLI.
//
// Grounded on _examples/nperez-losp/cmd/losp/main.go's flag handling
// (LOAD-then-eval ordering, stdin-pipe fallback) but built on
// github.com/spf13/cobra instead of the standard flag package, per
// SPEC_FULL.md §3.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/nate-chandler/macroscript/pkg/macroscript"
)

var (
	dbPath       string
	macroCfgPath string
	noStdlib     bool
	stepBudget   int
	logPath      string
)

func newRuntime() (*macroscript.Runtime, error) {
	opts := []macroscript.Option{}
	if dbPath != "" {
		opts = append(opts, macroscript.WithSQLiteStore(dbPath))
	} else {
		opts = append(opts, macroscript.WithMemoryStore())
	}
	if macroCfgPath != "" {
		opts = append(opts, macroscript.WithMacroConfig(macroCfgPath))
	}
	if noStdlib {
		opts = append(opts, macroscript.WithNoStdlib())
	}
	if stepBudget != 0 {
		opts = append(opts, macroscript.WithStepBudget(stepBudget))
	}
	return macroscript.New(opts...), nil
}

func main() {
	root := &cobra.Command{
		Use:   "macroscript",
		Short: "A bracket-macro text expander",
	}

	root.PersistentFlags().StringVar(&dbPath, "db", "", "SQLite database path for persisted definitions (empty: in-memory only)")
	root.PersistentFlags().StringVar(&macroCfgPath, "macros", "", "TOML file of extra text-macro definitions")
	root.PersistentFlags().BoolVar(&noStdlib, "no-stdlib", false, "Disable the built-in handler library")
	root.PersistentFlags().IntVar(&stepBudget, "step-budget", 0, "Override the rewrite step budget (0: use the default)")
	root.PersistentFlags().StringVar(&logPath, "log", "", "Shared session-log file for repl/watch (empty: session id is still assigned but nothing is written to disk)")

	root.AddCommand(newEvalCmd())
	root.AddCommand(newReplCmd())
	root.AddCommand(newWatchCmd())
	root.AddCommand(newMacrosCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
