package output

import (
	"fmt"
	"io"
)

// WriteConsensus renders the POA graph's dominant path as a single FASTA
// record.
func WriteConsensus(w io.Writer, r MSAResult) error {
	_, err := fmt.Fprintf(w, ">consensus run=%s\n%s\n", r.RunID, r.Consensus)
	return err
}
