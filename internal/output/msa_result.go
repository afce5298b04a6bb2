package output

import "github.com/tmokveld/theseus-lib/core/graph"

// MSAResult bundles a completed progressive alignment run for cmd/theseus-msa:
// every input record's realized path through the per-base POA graph, plus
// the compacted view used for gfa/dot output and the running consensus.
type MSAResult struct {
	RunID     string
	IDs       []string
	Paths     [][]graph.VertexID
	PerBase   *graph.Graph
	Compact   *graph.Graph
	Consensus []byte
}
