// Package must provides non-fatal wrappers around cleanup operations (close,
// flush, write) whose errors are worth logging but never worth failing the
// calling operation over — the same role the teacher's pkg/must plays, with
// the RPC/proto-specific helpers it also carried dropped (see DESIGN.md).
package must

import (
	"fmt"
	"io"

	"mtpsync/pkg/logging"
)

// Fprint writes a using fmt.Fprint, logging (rather than returning) any
// error or short write.
func Fprint(w io.Writer, logger *logging.Logger, a ...interface{}) {
	s := fmt.Sprint(a...)
	n, err := fmt.Fprint(w, s)
	if err != nil {
		logger.Warnf("unable to write %q: %s", s, err.Error())
		return
	}
	if n < len(s) {
		logger.Warnf("short write of %q: wrote %d of %d bytes", s, n, len(s))
	}
}

// WriteString writes s using an io.StringWriter, logging any error or short
// write.
func WriteString(w interface{ WriteString(string) (int, error) }, s string, logger *logging.Logger) {
	n, err := w.WriteString(s)
	if err != nil {
		logger.Warnf("unable to write string %q: %s", s, err.Error())
		return
	}
	if n < len(s) {
		logger.Warnf("short write of string %q: wrote %d of %d bytes", s, n, len(s))
	}
}

// Close closes c, logging (rather than returning) any error.
func Close(c io.Closer, logger *logging.Logger) {
	if err := c.Close(); err != nil {
		logger.Warnf("unable to close: %s", err.Error())
	}
}
