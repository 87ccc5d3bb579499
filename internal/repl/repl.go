// Package repl implements the terminal user-interaction spec.md section 1
// calls out of the core's scope: choosing between LL(1) and SLR(1) when a
// grammar is valid under both, and testing input lines one at a time.
// Grounded on the teacher's InteractiveCommandReader, which also wraps
// chzyer/readline for a TTY-clean prompt with history.
package repl

import (
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"

	"github.com/dekarrin/predikt/internal/toolkit"
)

// Chooser wraps a readline instance to prompt an operator for which
// recognizer to use and then feed it input lines, one at a time, until EOF
// or a blank line.
type Chooser struct {
	rl *readline.Instance
}

// New creates a Chooser. The caller must call Close when done to tear down
// the underlying readline instance.
func New() (*Chooser, error) {
	rl, err := readline.NewEx(&readline.Config{Prompt: "> "})
	if err != nil {
		return nil, fmt.Errorf("create readline config: %w", err)
	}
	return &Chooser{rl: rl}, nil
}

// Close releases readline's terminal resources.
func (c *Chooser) Close() error {
	return c.rl.Close()
}

// ChooseMethod prompts the operator to pick between LL(1) and SLR(1) when
// both are valid for the loaded grammar, matching the original's
// "¿Qué analizador desea usar?" prompt. It reprompts on invalid input.
func (c *Chooser) ChooseMethod() (toolkit.Method, error) {
	c.rl.SetPrompt("which analyzer? (1: LL(1), 2: SLR(1)): ")
	for {
		line, err := c.rl.Readline()
		if err != nil {
			return 0, err
		}
		switch strings.TrimSpace(line) {
		case "1":
			return toolkit.LL1, nil
		case "2":
			return toolkit.SLR1, nil
		}
		fmt.Println("invalid option, try again")
	}
}

// RunLines repeatedly reads a line of input, recognizes it with method
// against tk, prints the verdict, and repeats until EOF (Ctrl-D) or an
// empty line.
func (c *Chooser) RunLines(tk *toolkit.Toolkit, method toolkit.Method) error {
	c.rl.SetPrompt(fmt.Sprintf("%s input (blank to quit)> ", method))
	for {
		line, err := c.rl.Readline()
		if err == io.EOF || strings.TrimSpace(line) == "" {
			return nil
		}
		if err != nil {
			return err
		}

		result := tk.Recognize(method, line)
		if result.Accepted {
			fmt.Printf("%q: accept\n", line)
		} else {
			fmt.Printf("%q: reject (%s): %s\n", line, result.Cause, result.Message)
		}
	}
}
