package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/tmokveld/theseus-lib/core/cigar"
)

// WriteGAF renders one alignment result as a single GAF (Graph Alignment
// Format) line: query name/length/span, the traversed path as an
// orientation-prefixed segment-name string, path span, residue matches,
// alignment block length, a fixed mapping quality, and a trailing cg:Z:
// CIGAR tag. Theseus only ever emits '+'-oriented vertices (§6), so every
// path segment is prefixed with '>'. Path span is approximated as the sum
// of visited vertex label lengths (a documented simplification: it does not
// reconcile partial first/last vertex overlap the way a byte-exact PAF
// coordinate would).
func WriteGAF(w io.Writer, r AlignResult) error {
	var path strings.Builder
	pathLen := 0
	for _, v := range r.Alignment.Path {
		name := strings.TrimSuffix(r.Graph.Vertex(v).Name, "+")
		path.WriteByte('>')
		path.WriteString(name)
		pathLen += len(r.Graph.Vertex(v).Label)
	}

	matches, blockLen := 0, 0
	for _, op := range r.Alignment.EditOps {
		blockLen++
		if op == cigar.M {
			matches++
		}
	}

	rec := cigar.FromOps(r.Alignment.EditOps)
	_, err := fmt.Fprintf(w, "%s\t%d\t%d\t%d\t+\t%s\t%d\t%d\t%d\t%d\t%d\t255\tcg:Z:%s\n",
		r.QueryID, len(r.Query), 0, len(r.Query),
		path.String(), pathLen, r.StartOffset, pathLen,
		matches, blockLen, rec.String(),
	)
	return err
}
