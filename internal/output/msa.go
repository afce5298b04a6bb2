package output

import (
	"fmt"
	"io"

	"github.com/tmokveld/theseus-lib/core/graph"
)

// WriteMSA renders the progressive alignment as a column-layout multiple
// sequence alignment: one column per vertex of the per-base POA graph's
// topological order, one row per input record, '-' where a record's
// realized path never visited that column.
func WriteMSA(w io.Writer, r MSAResult) error {
	order, err := topoSort(r.PerBase)
	if err != nil {
		return fmt.Errorf("output: msa layout: %w", err)
	}
	col := make(map[graph.VertexID]int, len(order))
	for i, v := range order {
		col[v] = i
	}

	rows := make([][]byte, len(r.Paths))
	for i := range rows {
		rows[i] = make([]byte, len(order))
		for j := range rows[i] {
			rows[i][j] = '-'
		}
	}
	for i, path := range r.Paths {
		for _, v := range path {
			c, ok := col[v]
			if !ok {
				continue
			}
			rows[i][c] = r.PerBase.Vertex(v).Label[0]
		}
	}

	for i, id := range r.IDs {
		if _, err := fmt.Fprintf(w, ">%s\n%s\n", id, rows[i]); err != nil {
			return err
		}
	}
	return nil
}
