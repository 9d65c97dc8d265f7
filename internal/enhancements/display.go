package enhancements

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/huh"
	"golang.org/x/term"
)

// TUIDisplay presents Confirm prompts with a huh select form, falling
// back to plain text prompts on In/Out when the ACCESSIBLE environment
// variable is set or Out is an *os.File that is not a terminal (screen
// readers and non-interactive pipes alike). An Out that is not an
// *os.File always gets the form unless ACCESSIBLE is set.
type TUIDisplay struct {
	In  io.Reader
	Out io.Writer
}

// NewTUIDisplay builds a TUIDisplay reading from stdin and writing to
// stdout.
func NewTUIDisplay() *TUIDisplay {
	return &TUIDisplay{In: os.Stdin, Out: os.Stdout}
}

func (t *TUIDisplay) Confirm(title string, choices [2]Choice) (bool, error) {
	if t.accessible() {
		return t.confirmText(title, choices)
	}
	return t.confirmForm(title, choices)
}

func (t *TUIDisplay) accessible() bool {
	if os.Getenv("ACCESSIBLE") != "" {
		return true
	}
	f, ok := t.Out.(*os.File)
	return ok && !term.IsTerminal(int(f.Fd()))
}

func (t *TUIDisplay) confirmForm(title string, choices [2]Choice) (bool, error) {
	options := make([]huh.Option[int], len(choices))
	for i, c := range choices {
		options[i] = huh.NewOption(c.Label, i)
	}

	var selected int
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[int]().
				Title(title).
				Options(options...).
				Value(&selected),
		),
	)

	if err := form.Run(); err != nil {
		return false, fmt.Errorf("enhancement prompt failed: %w", err)
	}

	return choices[selected].Selected, nil
}

func (t *TUIDisplay) confirmText(title string, choices [2]Choice) (bool, error) {
	fmt.Fprintln(t.Out, title)
	for i, c := range choices {
		fmt.Fprintf(t.Out, "  %d) %s\n", i+1, c.Label)
	}
	fmt.Fprint(t.Out, "Choice: ")

	reader := bufio.NewReader(t.In)
	line, err := reader.ReadString('\n')
	if err != nil && line == "" {
		return false, fmt.Errorf("reading enhancement prompt response: %w", err)
	}

	switch strings.TrimSpace(line) {
	case "1":
		return choices[0].Selected, nil
	case "2":
		return choices[1].Selected, nil
	default:
		return false, fmt.Errorf("invalid choice %q", strings.TrimSpace(line))
	}
}
