package composite

import (
	"io"
	"log"
)

// Option customises an Extractor.
type Option func(*Extractor)

// WithLogger sends construction and compute diagnostics to l. Without it
// they are discarded.
func WithLogger(l *log.Logger) Option {
	return func(e *Extractor) {
		if l != nil {
			e.logger = l
		}
	}
}

func discardLogger() *log.Logger {
	return log.New(io.Discard, "", 0)
}
