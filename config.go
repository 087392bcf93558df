package problema

import "github.com/sirupsen/logrus"

// Config carries the caller-facing knobs of a cipher context. There is no
// process-wide state: the logger and the trace switch travel with the
// context they were handed to.
type Config struct {
	// Logger receives structured output. Init installs a default logger
	// when nil.
	Logger *logrus.Logger

	// Trace emits per-stage Debug records for every processed unit. It
	// replaces the global debug flag of older designs; expensive field
	// assembly only happens when set.
	Trace bool
}
