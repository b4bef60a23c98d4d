package main

import (
	"fmt"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/nate-chandler/macroscript/internal/sessionlog"
)

// newWatchCmd re-evaluates a script file every time it's saved,
// grounded on _examples/MadAppGang-dingo/pkg/lsp/watcher.go's
// fsnotify.Watcher-plus-debounce shape (trimmed to a single watched
// file instead of a recursive workspace walk), per SPEC_FULL.md §3.
func newWatchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "watch <file>",
		Short: "Re-evaluate a script file on save",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]

			logger, err := sessionlog.Open(logPath)
			if err != nil {
				return err
			}
			defer logger.Close()
			sessionID := logger.ID()

			rt, err := newRuntime()
			if err != nil {
				return err
			}
			defer rt.Close()

			watcher, err := fsnotify.NewWatcher()
			if err != nil {
				return err
			}
			defer watcher.Close()

			if err := watcher.Add(path); err != nil {
				return err
			}

			runOnce := func() {
				info, statErr := os.Stat(path)
				size := int64(0)
				if statErr == nil {
					size = info.Size()
				}
				result, evalErr := rt.EvalFile(path)
				if evalErr != nil {
					fmt.Fprintf(os.Stderr, "[%s] %s\n", sessionID, renderError(evalErr.Error()))
					logger.Logf("watch %s: error: %s", path, evalErr.Error())
					return
				}
				fmt.Printf("[%s] reacted to %s: %s\n", sessionID, humanize.Bytes(uint64(size)), renderSuccess(result))
				logger.Logf("watch %s: reacted to %s, produced %s", path, humanize.Bytes(uint64(size)), humanize.Bytes(uint64(len(result))))
			}

			runOnce()

			var debounce *time.Timer
			for {
				select {
				case event, ok := <-watcher.Events:
					if !ok {
						return nil
					}
					if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
						continue
					}
					if debounce != nil {
						debounce.Stop()
					}
					debounce = time.AfterFunc(200*time.Millisecond, runOnce)
				case werr, ok := <-watcher.Errors:
					if !ok {
						return nil
					}
					fmt.Fprintln(os.Stderr, renderError(werr.Error()))
				}
			}
		},
	}
}
