package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

var promptStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("214"))

// Confirmer asks yes/no questions on a terminal or a piped input.
type Confirmer struct {
	In      io.Reader
	Out     io.Writer
	AutoYes bool

	reader *bufio.Reader
}

// Confirm prints prompt and reads one answer. Only "y" or "yes" accepts.
// End of input declines.
func (c *Confirmer) Confirm(prompt string) bool {
	if c.AutoYes {
		return true
	}
	if c.reader == nil {
		c.reader = bufio.NewReader(c.In)
	}

	text := prompt + " (y/n): "
	if isTerminal(c.Out) {
		text = promptStyle.Render(prompt) + " (y/n): "
	}
	fmt.Fprint(c.Out, text)

	line, err := c.reader.ReadString('\n')
	if err != nil && line == "" {
		fmt.Fprintln(c.Out)
		return false
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	}
	return false
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
