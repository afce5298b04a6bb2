// Package output renders alignment and MSA results into the CLI's output
// formats (GAF, SAM, GFA, a column-layout MSA view, consensus FASTA, and
// Dot), dispatched through a format-name registry in the style of the
// teacher's internal/writers/registry.go.
package output

import (
	"fmt"
	"io"
)

// Output kinds accepted by cmd/theseus.
const (
	FormatGAF = "gaf"
	FormatDot = "dot"
	FormatSAM = "sam"
)

// Output kinds accepted by cmd/theseus-msa (which also accepts FormatDot).
const (
	FormatMSA       = "msa"
	FormatGFA       = "gfa"
	FormatConsensus = "consensus"
)

// AlignWriters maps a cmd/theseus --format value to its render function.
// The payload is always an AlignResult.
var AlignWriters = map[string]func(w io.Writer, payload AlignResult) error{
	FormatGAF: func(w io.Writer, r AlignResult) error { return WriteGAF(w, r) },
	FormatDot: func(w io.Writer, r AlignResult) error { return r.Graph.WriteDot(w) },
	FormatSAM: func(w io.Writer, r AlignResult) error { return WriteSAM(w, r) },
}

// MSAWriters maps a cmd/theseus-msa --format value to its render function.
// The payload is always an MSAResult.
var MSAWriters = map[string]func(w io.Writer, payload MSAResult) error{
	FormatMSA:       func(w io.Writer, r MSAResult) error { return WriteMSA(w, r) },
	FormatGFA:       func(w io.Writer, r MSAResult) error { return r.Compact.WriteGFA(w) },
	FormatConsensus: func(w io.Writer, r MSAResult) error { return WriteConsensus(w, r) },
	FormatDot:       func(w io.Writer, r MSAResult) error { return r.Compact.WriteDot(w) },
}

// WriteAlign dispatches an AlignResult to the writer registered for format.
func WriteAlign(format string, w io.Writer, r AlignResult) error {
	fn, ok := AlignWriters[format]
	if !ok {
		return fmt.Errorf("unknown output format %q (no writer registered)", format)
	}
	return fn(w, r)
}

// WriteMSAResult dispatches an MSAResult to the writer registered for format.
func WriteMSAResult(format string, w io.Writer, r MSAResult) error {
	fn, ok := MSAWriters[format]
	if !ok {
		return fmt.Errorf("unknown output format %q (no writer registered)", format)
	}
	return fn(w, r)
}
