// Package strandlog is the control-plane logger used across strand's
// command-side constructors and demo binaries. It is never touched from
// the audio thread: a Spatial, Mixer, or transformer's Sample method
// takes no logger, only its constructor does.
package strandlog

import (
	"os"

	"github.com/charmbracelet/log"
)

// Logger is a thin alias so callers don't need to import charmbracelet/log
// directly to hold one.
type Logger = log.Logger

// New builds a Logger writing to stderr with the given name as a prefix,
// e.g. "mixer" or "spatial".
func New(name string) *Logger {
	l := log.NewWithOptions(os.Stderr, log.Options{
		Prefix:          name,
		ReportTimestamp: true,
	})
	return l
}

// Discard is a Logger that drops everything, for constructors in tests
// and other callers that don't want control-plane diagnostics.
func Discard() *Logger {
	l := log.NewWithOptions(os.Stderr, log.Options{Prefix: "discard"})
	l.SetLevel(log.FatalLevel + 1)
	return l
}
