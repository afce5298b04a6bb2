// Package cmdutil holds small logging helpers shared by the CLI binaries,
// kept deliberately thin: fmt.Fprintf over a caller-supplied writer, no
// logging framework. Grounded on KPU-AGC-ipcr's internal/cmdutil/log.go.
package cmdutil

import (
	"fmt"
	"io"
)

// Warnf writes a warning line unless quiet is set.
func Warnf(dst io.Writer, quiet bool, format string, a ...any) {
	if quiet {
		return
	}
	_, _ = fmt.Fprintf(dst, "WARN: "+format+"\n", a...)
}

// Debugf writes a verbose trace line, gated by verbose rather than quiet.
// Used by core/align.Config.TraceEveryN to report wavefront progress under
// the CLI's -v flag.
func Debugf(dst io.Writer, verbose bool, format string, a ...any) {
	if !verbose {
		return
	}
	_, _ = fmt.Fprintf(dst, "DEBUG: "+format+"\n", a...)
}
