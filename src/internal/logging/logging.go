// Package logging builds the structured logger shared by the refgen commands.
package logging

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"
)

// Prefix is attached to every line.
const Prefix = "refgen"

// New returns a logger writing to w at the named level ("debug", "info",
// "warn", "error"). An empty level means warn.
func New(level string, w io.Writer) (*log.Logger, error) {
	lvl := log.WarnLevel
	if level != "" {
		var err error
		lvl, err = log.ParseLevel(level)
		if err != nil {
			return nil, fmt.Errorf("log level: %w", err)
		}
	}
	return log.NewWithOptions(w, log.Options{
		Level:  lvl,
		Prefix: Prefix,
	}), nil
}
