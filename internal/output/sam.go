package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/biogo/hts/sam"

	"github.com/tmokveld/theseus-lib/core/cigar"
)

func samOpType(op cigar.Op) sam.CigarOpType {
	switch op {
	case cigar.M:
		return sam.CigarMatch
	case cigar.X:
		return sam.CigarMismatch
	case cigar.I:
		return sam.CigarInsertion
	case cigar.D:
		return sam.CigarDeletion
	default:
		return sam.CigarMatch
	}
}

// toSamCigar run-length-encodes ops into a sam.Cigar.
func toSamCigar(ops []cigar.Op) sam.Cigar {
	var out sam.Cigar
	var cur cigar.Op
	n := 0
	flush := func() {
		if n > 0 {
			out = append(out, sam.NewCigarOp(samOpType(cur), n))
		}
	}
	for i, op := range ops {
		if i == 0 {
			cur = op
		} else if op != cur {
			flush()
			cur, n = op, 0
		}
		n++
	}
	flush()
	return out
}

func pathName(r AlignResult) (string, int) {
	name := strings.TrimSuffix(r.Graph.Vertex(r.StartNode).Name, "+")
	total := 0
	for _, v := range r.Alignment.Path {
		total += len(r.Graph.Vertex(v).Label)
	}
	if total == 0 {
		total = 1
	}
	return name, total
}

// WriteSAM renders one alignment as a single-record SAM stream: a synthetic
// reference named after the start vertex, spanning the traversed path
// length, and one mapped record carrying the query's CIGAR -- embeddable
// into a downstream BAM pipeline the way other example repos in the pack
// (balanur-brosv-go's incase.go) build sam.Record values by hand.
func WriteSAM(w io.Writer, r AlignResult) error {
	refName, refLen := pathName(r)
	ref, err := sam.NewReference(refName, "", "", refLen, nil, nil)
	if err != nil {
		return fmt.Errorf("output: sam reference: %w", err)
	}
	header, err := sam.NewHeader(nil, []*sam.Reference{ref})
	if err != nil {
		return fmt.Errorf("output: sam header: %w", err)
	}

	qual := make([]byte, len(r.Query))
	for i := range qual {
		qual[i] = 0xff
	}
	rec, err := sam.NewRecord(r.QueryID, ref, nil, r.StartOffset, -1, len(r.Query), 60,
		toSamCigar(r.Alignment.EditOps), r.Query, qual, nil)
	if err != nil {
		return fmt.Errorf("output: sam record: %w", err)
	}

	sw, err := sam.NewWriter(w, header, 0)
	if err != nil {
		return fmt.Errorf("output: sam writer: %w", err)
	}
	return sw.Write(rec)
}
