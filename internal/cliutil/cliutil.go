// Package cliutil holds small helpers shared by the commands under cmd/.
package cliutil

import (
	"github.com/mattn/go-isatty"
)

// IsTty reports if the given file descriptor is attached to a terminal.
// Commands use this to decide whether reading from stdin makes sense.
func IsTty(fd uintptr) bool {
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
