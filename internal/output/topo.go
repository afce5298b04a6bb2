package output

import (
	"errors"

	"github.com/tmokveld/theseus-lib/core/graph"
)

// errCyclicGraph signals a topoSort input that was not the DAG a
// progressively built POA graph is expected to be.
var errCyclicGraph = errors.New("output: graph has a cycle, cannot lay out as columns")

// topoSort returns g's vertices in a Kahn's-algorithm topological order.
// MSA-mode graphs are DAGs by construction (each Update only ever appends
// new vertices or reuses ones already reachable forward from the source),
// so a cycle here indicates a bug upstream rather than a legitimate input.
func topoSort(g *graph.Graph) ([]graph.VertexID, error) {
	n := g.NumVertices()
	indeg := make([]int, n)
	for i := 0; i < n; i++ {
		indeg[i] = len(g.Vertex(graph.VertexID(i)).In)
	}
	queue := make([]graph.VertexID, 0, n)
	for i := 0; i < n; i++ {
		if indeg[i] == 0 {
			queue = append(queue, graph.VertexID(i))
		}
	}
	order := make([]graph.VertexID, 0, n)
	for len(queue) > 0 {
		v := queue[0]
		queue = queue[1:]
		order = append(order, v)
		for _, e := range g.Vertex(v).Out {
			indeg[e.To]--
			if indeg[e.To] == 0 {
				queue = append(queue, e.To)
			}
		}
	}
	if len(order) != n {
		return nil, errCyclicGraph
	}
	return order, nil
}
