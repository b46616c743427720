// Package console renders themed terminal output and owns the interactive
// prompt loop, including interrupt-aware line reading.
package console

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
)

// Console is the single user-facing output/input surface. All packages that
// talk to the user go through it so theming stays consistent.
type Console struct {
	theme  Theme
	out    io.Writer
	reader *lineReader
	md     *glamour.TermRenderer
}

// Option configures a Console.
type Option func(*Console)

// WithWriter redirects output, used by tests.
func WithWriter(w io.Writer) Option {
	return func(c *Console) { c.out = w }
}

// WithInput sets the prompt input source, used by tests.
func WithInput(in io.Reader) Option {
	return func(c *Console) { c.reader = newLineReader(in) }
}

// New creates a Console with the named theme.
func New(themeName string, opts ...Option) *Console {
	c := &Console{
		theme: NewTheme(themeName),
		out:   os.Stdout,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.reader == nil {
		c.reader = newLineReader(os.Stdin)
	}
	return c
}

// Close releases the signal hook held by the prompt reader.
func (c *Console) Close() {
	c.reader.Close()
}

// Out returns the raw writer for streamed subprocess output.
func (c *Console) Out() io.Writer {
	return c.out
}

// Theme exposes the active theme for callers that style inline fragments.
func (c *Console) Theme() Theme {
	return c.theme
}

// Say prints an assistant message inside a themed panel.
func (c *Console) Say(msg string) {
	panel := c.theme.Panel.Render(strings.TrimRight(msg, "\n"))
	fmt.Fprintln(c.out, panel)
}

// Markdown renders markdown through glamour inside a panel. Falls back to
// plain text when rendering fails (e.g. no TTY detection).
func (c *Console) Markdown(md string) {
	r, err := c.renderer()
	if err != nil {
		c.Say(md)
		return
	}
	rendered, err := r.Render(md)
	if err != nil {
		c.Say(md)
		return
	}
	fmt.Fprint(c.out, rendered)
}

// Thought prints a dim reasoning line from the model.
func (c *Console) Thought(text string) {
	fmt.Fprintln(c.out, c.theme.Thought.Render("· "+text))
}

// Command prints a proposed shell command.
func (c *Console) Command(cmd string) {
	fmt.Fprintln(c.out, c.theme.Command.Render("$ "+cmd))
}

// Info prints a secondary detail line.
func (c *Console) Info(format string, args ...any) {
	fmt.Fprintln(c.out, c.theme.Muted.Render(fmt.Sprintf(format, args...)))
}

// Warn prints a warning line.
func (c *Console) Warn(format string, args ...any) {
	fmt.Fprintln(c.out, c.theme.Warn.Render("! "+fmt.Sprintf(format, args...)))
}

// Errorf prints an error line.
func (c *Console) Errorf(format string, args ...any) {
	fmt.Fprintln(c.out, c.theme.Error.Render("✗ "+fmt.Sprintf(format, args...)))
}

// Prompt shows a label and blocks for one line of input. Returns
// ErrInterrupted if the user hits Ctrl-C while waiting.
func (c *Console) Prompt(label string) (string, error) {
	fmt.Fprint(c.out, c.theme.Prompt.Render(label+" "))
	line, err := c.reader.ReadLine()
	if err != nil {
		fmt.Fprintln(c.out)
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func (c *Console) renderer() (*glamour.TermRenderer, error) {
	if c.md != nil {
		return c.md, nil
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(100),
	)
	if err != nil {
		return nil, err
	}
	c.md = r
	return r, nil
}
