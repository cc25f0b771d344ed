package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/fatih/color"
	"golang.org/x/term"
)

// LineReader reads one answer line after showing a prompt.
type LineReader interface {
	ReadLine(prompt string) (string, error)
	Close() error
}

// Console is an interactive Decider reading answers line by line.
type Console struct {
	in  LineReader
	out io.Writer

	bold  func(a ...interface{}) string
	red   func(a ...interface{}) string
	green func(a ...interface{}) string
}

// NewConsole creates a Console reading plain lines from r and writing to w.
func NewConsole(r io.Reader, w io.Writer) *Console {
	return newConsole(&scanReader{scanner: bufio.NewScanner(r), out: w}, w)
}

// NewStdConsole creates a Console on stdin/stdout. A terminal gets line
// editing through readline; pipes and files are read plainly.
func NewStdConsole() (*Console, error) {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return NewConsole(os.Stdin, os.Stdout), nil
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          ">>> ",
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create readline: %w", err)
	}
	return newConsole(&readlineReader{rl: rl}, rl.Stdout()), nil
}

func newConsole(in LineReader, out io.Writer) *Console {
	return &Console{
		in:    in,
		out:   out,
		bold:  color.New(color.Bold).SprintFunc(),
		red:   color.New(color.FgRed).SprintFunc(),
		green: color.New(color.FgGreen, color.Bold).SprintFunc(),
	}
}

// Close releases the underlying line reader.
func (c *Console) Close() error {
	return c.in.Close()
}

// Printf writes an informational message.
func (c *Console) Printf(format string, a ...interface{}) {
	fmt.Fprintf(c.out, format, a...)
}

// Warnf writes a message in red.
func (c *Console) Warnf(format string, a ...interface{}) {
	fmt.Fprint(c.out, c.red(fmt.Sprintf(format, a...)))
}

// Successf writes a message in bold green.
func (c *Console) Successf(format string, a ...interface{}) {
	fmt.Fprint(c.out, c.green(fmt.Sprintf(format, a...)))
}

// Section writes a bold section banner.
func (c *Console) Section(title string) {
	fmt.Fprintf(c.out, "\n%s\n", c.bold(fmt.Sprintf("==== %s ====", strings.ToUpper(title))))
}

func (c *Console) ask(question, def string) (string, error) {
	fmt.Fprintln(c.out, question)
	p := ">>> "
	if def != "" {
		p = fmt.Sprintf(">>> (%s) ", def)
	}
	line, err := c.in.ReadLine(p)
	if err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, readline.ErrInterrupt) {
			return "", ErrAborted
		}
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// Confirm implements Decider.
func (c *Console) Confirm(question string) (bool, error) {
	for {
		answer, err := c.ask(question+" (y/n)", "")
		if err != nil {
			return false, err
		}
		if v, ok := ParseYesNo(answer); ok {
			return v, nil
		}
		c.Warnf("Invalid input.\n")
	}
}

// AskText implements Decider.
func (c *Console) AskText(question string) (string, error) {
	return c.ask(question, "")
}

// AskNumber implements Decider.
func (c *Console) AskNumber(question string, def float64) (float64, error) {
	for {
		answer, err := c.ask(question, fmt.Sprint(def))
		if err != nil {
			return 0, err
		}
		if v, ok := ParseNumber(answer, def); ok {
			return v, nil
		}
		c.Warnf("Invalid input. Please enter a valid number or leave the prompt blank.\n")
	}
}

// AskChoice implements Decider.
func (c *Console) AskChoice(question string, options []string) (int, error) {
	q := fmt.Sprintf("%s: %s", question, strings.Join(options, "/"))
	for {
		answer, err := c.ask(q, "")
		if err != nil {
			return 0, err
		}
		if i, ok := ParseChoice(answer, options); ok {
			return i, nil
		}
		c.Warnf("Invalid input. Please enter one of the provided options.\n")
	}
}

// AskSelection implements Decider.
func (c *Console) AskSelection(question string, count int) ([]int, error) {
	answer, err := c.ask(question+", separated by spaces:", "")
	if err != nil {
		return nil, err
	}
	picked, rejected := ParseSelection(answer, count)
	for _, r := range rejected {
		c.Warnf("%s\n", r)
	}
	return picked, nil
}

var _ Decider = (*Console)(nil)

type scanReader struct {
	scanner *bufio.Scanner
	out     io.Writer
}

func (s *scanReader) ReadLine(prompt string) (string, error) {
	fmt.Fprint(s.out, prompt)
	if !s.scanner.Scan() {
		if err := s.scanner.Err(); err != nil {
			return "", fmt.Errorf("failed to read input: %w", err)
		}
		return "", io.EOF
	}
	return s.scanner.Text(), nil
}

func (s *scanReader) Close() error { return nil }

type readlineReader struct {
	rl *readline.Instance
}

func (r *readlineReader) ReadLine(prompt string) (string, error) {
	r.rl.SetPrompt(prompt)
	return r.rl.Readline()
}

func (r *readlineReader) Close() error { return r.rl.Close() }
