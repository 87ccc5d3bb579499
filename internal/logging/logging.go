// Package logging configures predikt's structured logging via commonlog,
// the logging library used by the lsp-and-grammar-tooling corner of the
// example pack (dhamidi-sai's LSP server imports commonlog/simple as its
// logging backend). predikt uses the same backend for its CLI and server.
package logging

import (
	"os"

	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"
)

// Configure sets up commonlog's simple backend at the given verbosity
// (0 disables logging; higher values are more verbose, following
// commonlog's convention) writing to path, or stderr if path is empty.
func Configure(verbosity int, path string) error {
	var file *os.File
	if path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return err
		}
		file = f
	}

	commonlog.Configure(verbosity, file)
	return nil
}

// For returns a named logger, scoped the way predikt's subsystems (loader,
// toolkit, httpapi) identify themselves in log output.
func For(name string) commonlog.Logger {
	return commonlog.GetLogger(name)
}
