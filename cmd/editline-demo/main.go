// Command editline-demo wires the library's pieces into a runnable read
// loop: termio for raw mode, a fuzzy completer over a static word list, a
// YAML-backed file history, and a prompt that shows the active edit mode.
// It mirrors the shape of the teacher's own main.go (RunApp separated from
// main for testability) without any of ggc's git-subcommand routing.
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/go-editline/editline"
	"github.com/go-editline/editline/completer/fuzzy"
	"github.com/go-editline/editline/editmode"
	"github.com/go-editline/editline/history/filehistory"
	"github.com/go-editline/editline/menu"
	"github.com/go-editline/editline/ports"
)

// wordSource is a fuzzy.Source over a fixed vocabulary, standing in for
// whatever domain-specific completion a real host would supply.
type wordSource struct {
	words []string
}

func (w wordSource) Candidates(line string, pos int) []string { return w.words }

func (w wordSource) Span(line string, pos int) ports.Span {
	start := pos
	for start > 0 && line[start-1] != ' ' {
		start--
	}
	return ports.Span{Start: start, End: pos}
}

// demoPrompt implements ports.Prompt with a mode-aware left prompt.
type demoPrompt struct{}

func (demoPrompt) RenderLeft() string { return "editline> " }
func (demoPrompt) RenderRight() string { return "" }

func (demoPrompt) RenderIndicator(mode ports.EditModeTag) string {
	switch mode {
	case ports.ModeViNormal:
		return "[N] "
	case ports.ModeViInsert:
		return "[I] "
	case ports.ModeHelixNormal:
		return "[N] "
	case ports.ModeHelixInsert:
		return "[I] "
	case ports.ModeHelixSelect:
		return "[S] "
	default:
		return ""
	}
}

func (demoPrompt) RenderMultilineIndicator() string { return "::: " }

func (demoPrompt) RenderHistorySearchIndicator(status ports.SearchStatus, term string) string {
	if status == ports.SearchFailing {
		return fmt.Sprintf("(failed reverse-i-search)`%s': ", term)
	}
	return fmt.Sprintf("(reverse-i-search)`%s': ", term)
}

func (demoPrompt) RightPromptOnLastLine() bool { return false }

// RunApp builds an Engine from flags and args and runs the read loop until
// Ctrl-D on an empty buffer, a submitted "exit" or "quit", or an I/O error.
// Ctrl-C prints "^C" and starts a fresh line.
func RunApp(args []string) error {
	fs := flag.NewFlagSet("editline-demo", flag.ContinueOnError)
	mode := fs.String("mode", "emacs", "edit mode: emacs, vi, or helix")
	if err := fs.Parse(args); err != nil {
		return err
	}

	var em editmode.EditMode
	switch strings.ToLower(*mode) {
	case "vi":
		em = editmode.NewVi()
	case "helix":
		em = editmode.NewHelix()
	default:
		em = editmode.NewEmacs()
	}

	histPath, err := filehistory.DefaultPath()
	if err != nil {
		return fmt.Errorf("resolve history path: %w", err)
	}
	hist, err := filehistory.Open(histPath, "#")
	if err != nil {
		return fmt.Errorf("open history: %w", err)
	}

	words := wordSource{words: []string{"login", "logout", "log", "list", "status", "commit", "checkout"}}
	comp := fuzzy.New(words, 10)

	b := editline.NewBuilder().
		WithEditMode(em).
		WithHistory(hist).
		WithCompleter(comp).
		WithMenu(menu.NewColumnar("completion", comp)).
		WithExclusionPrefix("#")

	eng := b.Build()
	defer hist.Sync()

	prompt := demoPrompt{}
	for {
		sig, err := eng.ReadLine(prompt)
		if err != nil {
			return fmt.Errorf("read line: %w", err)
		}
		switch sig.Kind {
		case editline.SignalCtrlC:
			fmt.Println("^C")
			continue
		case editline.SignalCtrlD:
			fmt.Println()
			return nil
		case editline.SignalSuccess:
			fmt.Printf("you typed: %q\n", sig.Text)
			if sig.Text == "exit" || sig.Text == "quit" {
				return nil
			}
		}
	}
}

func main() {
	if err := RunApp(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "editline-demo:", err)
		os.Exit(1)
	}
}
