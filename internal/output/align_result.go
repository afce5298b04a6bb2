package output

import (
	"github.com/tmokveld/theseus-lib/core/align"
	"github.com/tmokveld/theseus-lib/core/graph"
)

// AlignResult bundles one cmd/theseus alignment together with the inputs a
// writer needs to render it (the query itself and the graph it was aligned
// against).
type AlignResult struct {
	RunID       string
	QueryID     string
	Query       []byte
	Graph       *graph.Graph
	StartNode   graph.VertexID
	StartOffset int
	Alignment   align.Alignment
}
