package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/dustin/go-humanize"
	shellquote "github.com/kballard/go-shellquote"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/nate-chandler/macroscript/internal/sessionlog"
	"github.com/nate-chandler/macroscript/pkg/macroscript"
)

// newReplCmd runs an interactive REPL. Grounded on
// _examples/nperez-losp/cmd/losp/repl.go's TTY-vs-pipe split
// (term.IsTerminal, term.MakeRaw for raw-mode line editing) and, for
// session correlation, on the same file's session-id-in-every-line
// convention — but here the id comes from internal/sessionlog so a
// repl run and a watch run sharing "--log" correlate in one file, which
// losp's own id-per-process never did. Up/down history recall is new:
// losp's own raw reader left the up/down arrow cases as no-ops (see
// DESIGN.md); lineEditor backs them with an actual in-session buffer of
// previously entered lines.
func newReplCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Start an interactive REPL",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := sessionlog.Open(logPath)
			if err != nil {
				return err
			}
			defer logger.Close()

			rt, err := newRuntime()
			if err != nil {
				return err
			}
			defer rt.Close()

			fmt.Printf("macroscript REPL, session %s (Ctrl+D to exit)\n", logger.ID())
			fmt.Println(`Meta-commands: ":save <name> <pattern>", ":load <file>", ":quit"`)
			fmt.Println()
			logger.Logf("repl: session started")

			if !term.IsTerminal(int(os.Stdin.Fd())) {
				runBasicREPL(rt, logger)
				return nil
			}
			runRawREPL(rt, logger)
			return nil
		},
	}
}

func handleLine(rt *macroscript.Runtime, logger *sessionlog.Logger, input string) (output string, quit bool) {
	trimmed := strings.TrimSpace(input)
	switch {
	case trimmed == "":
		return "", false
	case trimmed == ":quit":
		logger.Logf("repl: session ended")
		return "", true
	case strings.HasPrefix(trimmed, ":save "):
		fields, err := shellquote.Split(strings.TrimPrefix(trimmed, ":save "))
		if err != nil || len(fields) < 2 {
			return "usage: :save <name> <pattern>", false
		}
		name := fields[0]
		pattern := strings.Join(fields[1:], " ")
		if err := rt.Define(name, pattern); err != nil {
			logger.Logf("repl: save %q: error: %s", name, err.Error())
			return err.Error(), false
		}
		logger.Logf("repl: saved %q (%s)", name, humanize.Bytes(uint64(len(pattern))))
		return fmt.Sprintf("saved %q", name), false
	case strings.HasPrefix(trimmed, ":load "):
		fields, err := shellquote.Split(strings.TrimPrefix(trimmed, ":load "))
		if err != nil || len(fields) < 1 {
			return "usage: :load <file> [args...]", false
		}
		result, evalErr := rt.EvalFile(fields[0])
		if evalErr != nil {
			logger.Logf("repl: load %q: error: %s", fields[0], evalErr.Error())
			return evalErr.Error(), false
		}
		logger.Logf("repl: load %q produced %s", fields[0], humanize.Bytes(uint64(len(result))))
		return result, false
	default:
		result, evalErr := rt.Eval(input)
		if evalErr != nil {
			logger.Logf("repl: eval: error: %s", evalErr.Error())
			return evalErr.Error(), false
		}
		logger.Logf("repl: eval produced %s", humanize.Bytes(uint64(len(result))))
		return result, false
	}
}

// runBasicREPL handles non-TTY input (piped input): no line editing or
// history recall is possible without a raw terminal.
func runBasicREPL(rt *macroscript.Runtime, logger *sessionlog.Logger) {
	reader := bufio.NewReader(os.Stdin)
	for {
		fmt.Print(">>> ")
		line, err := reader.ReadString('\n')
		if err != nil {
			fmt.Println()
			return
		}
		line = strings.TrimRight(line, "\r\n")
		out, quit := handleLine(rt, logger, line)
		if quit {
			return
		}
		if out != "" {
			fmt.Println(out)
		}
	}
}

// runRawREPL handles TTY input with arrow-key/Ctrl editing and
// up/down history recall across the session.
func runRawREPL(rt *macroscript.Runtime, logger *sessionlog.Logger) {
	fd := int(os.Stdin.Fd())

	oldState, err := term.MakeRaw(fd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to set raw mode: %v\n", err)
		runBasicREPL(rt, logger)
		return
	}
	defer term.Restore(fd, oldState)

	ed := newLineEditor(bufio.NewReader(os.Stdin))
	for {
		fmt.Print(">>> ")
		line, eof := ed.readLine()
		if eof {
			fmt.Print("\r\n")
			return
		}
		out, quit := handleLine(rt, logger, line)
		if quit {
			return
		}
		if out != "" {
			fmt.Print(strings.ReplaceAll(out, "\n", "\r\n"))
			fmt.Print("\r\n")
		}
	}
}

// history is the REPL's up/down-arrow recall buffer: every committed
// line entered this session, plus the in-progress line a user was
// typing before pressing up, so pressing down past the newest recalled
// entry restores it instead of leaving a blank prompt.
//
// The teacher's raw-mode reader (_examples/nperez-losp/cmd/losp/repl.go)
// has up/down arrow cases that do nothing at all; lineEditor backs them
// with real recall instead of carrying the stub forward.
type history struct {
	entries []string
	pos     int // index into entries; len(entries) means "not recalling"
	draft   string
}

func newHistory() *history { return &history{} }

// commit appends line to history (skipping blanks and immediate
// repeats) and resets recall position to "not recalling".
func (h *history) commit(line string) {
	if line != "" && (len(h.entries) == 0 || h.entries[len(h.entries)-1] != line) {
		h.entries = append(h.entries, line)
	}
	h.pos = len(h.entries)
}

// prev recalls the entry before the current recall position, stashing
// current as the draft to return to once the user arrows back down
// past the newest entry.
func (h *history) prev(current string) (string, bool) {
	if h.pos == 0 {
		return "", false
	}
	if h.pos == len(h.entries) {
		h.draft = current
	}
	h.pos--
	return h.entries[h.pos], true
}

// next recalls the entry after the current recall position, or the
// stashed draft once past the newest entry.
func (h *history) next() (string, bool) {
	if h.pos >= len(h.entries) {
		return "", false
	}
	h.pos++
	if h.pos == len(h.entries) {
		return h.draft, true
	}
	return h.entries[h.pos], true
}

// lineEditor holds the in-progress line and cursor for one raw-mode read
// and dispatches each incoming byte to a small editing operation, rather
// than threading line/cursor through a single large function the way
// losp's readLineRaw does. Each operation owns both the buffer mutation
// and the escape codes needed to keep the terminal in sync.
type lineEditor struct {
	r      *bufio.Reader
	line   []rune
	cursor int
	hist   *history
}

func newLineEditor(r *bufio.Reader) *lineEditor {
	return &lineEditor{r: r, hist: newHistory()}
}

func (e *lineEditor) readByte() (byte, bool) {
	b, err := e.r.ReadByte()
	return b, err == nil
}

// readLine resets editor state and reads one line, returning it and
// whether EOF (Ctrl+D on an empty line, or a read error) was hit.
func (e *lineEditor) readLine() (string, bool) {
	e.line = e.line[:0]
	e.cursor = 0

	for {
		b, ok := e.readByte()
		if !ok {
			return string(e.line), true
		}
		if done, eof := e.dispatch(b); done {
			if eof {
				return "", true
			}
			line := string(e.line)
			e.hist.commit(line)
			return line, false
		}
	}
}

// dispatch applies the editing effect of a single input byte. done is
// true once the line is finished (Enter, Ctrl+C, or EOF on an empty
// line); eof is only meaningful when done is true.
func (e *lineEditor) dispatch(b byte) (done, eof bool) {
	switch b {
	case 0x04: // Ctrl+D
		if len(e.line) == 0 {
			return true, true
		}
		e.deleteForward()
	case 0x03: // Ctrl+C
		fmt.Print("^C\r\n")
		return true, false
	case 0x0d, 0x0a: // Enter
		fmt.Print("\r\n")
		return true, false
	case 0x7f, 0x08: // Backspace
		e.backspace()
	case 0x1b: // ESC: arrow/delete sequence
		e.dispatchEscape()
	case 0x01: // Ctrl+A
		e.moveToStart()
	case 0x05: // Ctrl+E
		e.moveToEnd()
	case 0x0b: // Ctrl+K
		e.killToEnd()
	case 0x15: // Ctrl+U
		e.killToStart()
	default:
		if r, ok := e.decodeRune(b); ok {
			e.insert(r)
		}
	}
	return false, false
}

// dispatchEscape consumes and applies a "ESC [ ..." sequence: the
// arrow keys and the 3-byte Delete sequence. Unrecognized or truncated
// sequences are silently absorbed.
func (e *lineEditor) dispatchEscape() {
	next, ok := e.readByte()
	if !ok || next != '[' {
		return
	}
	arrow, ok := e.readByte()
	if !ok {
		return
	}
	switch arrow {
	case 'A':
		e.recall(e.hist.prev)
	case 'B':
		e.recall(func(string) (string, bool) { return e.hist.next() })
	case 'C':
		e.moveRight()
	case 'D':
		e.moveLeft()
	case '3':
		if tail, ok := e.readByte(); ok && tail == '~' {
			e.deleteForward()
		}
	}
}

// decodeRune turns a lead byte into a full rune, reading the UTF-8
// continuation bytes a multi-byte lead implies. ok is false for
// non-printable, non-UTF-8-lead bytes that carry no insertable rune.
func (e *lineEditor) decodeRune(lead byte) (rune, bool) {
	if lead >= 0x20 && lead < 0x7f {
		return rune(lead), true
	}
	if lead < 0x80 {
		return 0, false
	}
	var want int
	switch {
	case lead&0xE0 == 0xC0:
		want = 1
	case lead&0xF0 == 0xE0:
		want = 2
	case lead&0xF8 == 0xF0:
		want = 3
	default:
		return 0, false
	}
	buf := []byte{lead}
	for i := 0; i < want; i++ {
		b, ok := e.readByte()
		if !ok {
			break
		}
		buf = append(buf, b)
	}
	return []rune(string(buf))[0], true
}

func (e *lineEditor) insert(r rune) {
	out := make([]rune, 0, len(e.line)+1)
	out = append(out, e.line[:e.cursor]...)
	out = append(out, r)
	out = append(out, e.line[e.cursor:]...)
	e.line = out
	e.cursor++
	fmt.Print(string(r))
	if e.cursor < len(e.line) {
		e.redrawTail()
	}
}

func (e *lineEditor) backspace() {
	if e.cursor == 0 {
		return
	}
	e.cursor--
	e.line = append(e.line[:e.cursor], e.line[e.cursor+1:]...)
	fmt.Print("\b")
	e.redrawTail()
}

func (e *lineEditor) deleteForward() {
	if e.cursor >= len(e.line) {
		return
	}
	e.line = append(e.line[:e.cursor], e.line[e.cursor+1:]...)
	e.redrawTail()
}

func (e *lineEditor) moveLeft() {
	if e.cursor == 0 {
		return
	}
	e.cursor--
	fmt.Print("\x1b[D")
}

func (e *lineEditor) moveRight() {
	if e.cursor >= len(e.line) {
		return
	}
	e.cursor++
	fmt.Print("\x1b[C")
}

func (e *lineEditor) moveToStart() {
	if e.cursor == 0 {
		return
	}
	fmt.Printf("\x1b[%dD", e.cursor)
	e.cursor = 0
}

func (e *lineEditor) moveToEnd() {
	if e.cursor >= len(e.line) {
		return
	}
	fmt.Printf("\x1b[%dC", len(e.line)-e.cursor)
	e.cursor = len(e.line)
}

func (e *lineEditor) killToEnd() {
	if e.cursor >= len(e.line) {
		return
	}
	e.line = e.line[:e.cursor]
	fmt.Print("\x1b[K")
}

func (e *lineEditor) killToStart() {
	if e.cursor == 0 {
		return
	}
	fmt.Printf("\x1b[%dD", e.cursor)
	e.line = e.line[e.cursor:]
	e.cursor = 0
	e.redrawTail()
}

// recall replaces the line with whatever lookup returns (given the
// current line, for stashing the in-progress draft), redrawing in
// place. lookup is hist.prev or hist.next.
func (e *lineEditor) recall(lookup func(string) (string, bool)) {
	entry, ok := lookup(string(e.line))
	if !ok {
		return
	}
	if e.cursor > 0 {
		fmt.Printf("\x1b[%dD", e.cursor)
	}
	fmt.Print("\x1b[K")
	e.line = []rune(entry)
	e.cursor = len(e.line)
	fmt.Print(entry)
}

// redrawTail repaints everything from the cursor onward, used whenever
// an edit changes the line's tail without a full-line replacement.
func (e *lineEditor) redrawTail() {
	fmt.Print("\x1b[K")
	for i := e.cursor; i < len(e.line); i++ {
		fmt.Print(string(e.line[i]))
	}
	if e.cursor < len(e.line) {
		fmt.Printf("\x1b[%dD", len(e.line)-e.cursor)
	}
}
