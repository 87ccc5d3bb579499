// Package predikterr defines the error types raised while loading a grammar
// file or a config file. Each carries both a technical Error()
// message and a short operator-facing message, mirroring how the teacher's
// tqerrors package separates the two audiences.
package predikterr

import "fmt"

// predictError is an error with both a technical message (for logs) and a
// terser message meant for an operator at a terminal or REPL prompt.
type predictError struct {
	msg     string
	display string
	wrap    error
}

func (e *predictError) Error() string {
	return e.msg
}

// Display returns the short message suitable for showing an operator, as
// opposed to the full technical Error() text.
func (e *predictError) Display() string {
	return e.display
}

func (e *predictError) Unwrap() error {
	return e.wrap
}

// Load builds a new error for a malformed grammar file, with display as the
// operator-facing summary and technical as the Error() text. If technical is
// empty, a generic message derived from display is used.
func Load(display, technical string) error {
	if technical == "" {
		technical = fmt.Sprintf("load grammar: %s", display)
	}
	return &predictError{msg: technical, display: display}
}

// Loadf is Load with the display message built from a format string.
func Loadf(format string, a ...interface{}) error {
	return Load(fmt.Sprintf(format, a...), "")
}

// WrapLoad is Load but wraps an underlying error for errors.Is/As chains.
func WrapLoad(wrapped error, display, technical string) error {
	if technical == "" {
		technical = fmt.Sprintf("load grammar: %s", display)
	}
	return &predictError{msg: technical, display: display, wrap: wrapped}
}

// Config builds a new error for a malformed configuration file.
func Config(display, technical string) error {
	if technical == "" {
		technical = fmt.Sprintf("load config: %s", display)
	}
	return &predictError{msg: technical, display: display}
}

// Configf is Config with the display message built from a format string.
func Configf(format string, a ...interface{}) error {
	return Config(fmt.Sprintf(format, a...), "")
}

// Display gets the operator-facing message for err. If err is not one of the
// types defined in this package, err.Error() is returned instead.
func Display(err error) string {
	if pe, ok := err.(*predictError); ok {
		return pe.Display()
	}
	return err.Error()
}
