package poa

import (
	"fmt"

	"github.com/biogo/biogo/seq"

	"github.com/tmokveld/theseus-lib/core/graph"
)

// Compact rebuilds a fresh graph.Graph in which every maximal unbranched
// run of per-base POA vertices (single predecessor, single successor, no
// branching on either side) is merged into one multi-character vertex,
// matching the granularity a GFA writer or dot visualization expects. It
// is recomputed from scratch on each call rather than incrementally
// maintained -- simpler, and cheap enough at MSA scale (a per-alignment
// operation, not a per-score one).
func (p *Graph) Compact() *graph.Graph {
	n := p.g.NumVertices()
	visited := make([]bool, n)
	runOf := make([]graph.VertexID, n)
	out := graph.New()
	idFor := make(map[graph.VertexID]graph.VertexID, n)

	isRunStart := func(v graph.VertexID) bool {
		in := p.g.Vertex(v).In
		if len(in) != 1 {
			return true
		}
		u := in[0].From
		return len(p.g.Vertex(u).Out) != 1
	}

	for i := 0; i < n; i++ {
		v := graph.VertexID(i)
		if visited[v] || !isRunStart(v) {
			continue
		}
		var bases []byte
		cur := v
		for {
			bases = append(bases, p.g.Vertex(cur).Label...)
			visited[cur] = true
			runOf[cur] = v
			outs := p.g.Vertex(cur).Out
			if len(outs) != 1 {
				break
			}
			next := outs[0].To
			if len(p.g.Vertex(next).In) != 1 || next == v {
				break
			}
			cur = next
		}
		idFor[v] = out.AddVertex(fmt.Sprintf("c%d", int(v)), bases, seq.Plus)
	}

	// Any vertex left unvisited sits on a cycle with no unambiguous run
	// start; treat it as its own singleton run.
	for i := 0; i < n; i++ {
		v := graph.VertexID(i)
		if visited[v] {
			continue
		}
		runOf[v] = v
		idFor[v] = out.AddVertex(fmt.Sprintf("c%d", int(v)), append([]byte{}, p.g.Vertex(v).Label...), seq.Plus)
	}

	seen := make(map[[2]graph.VertexID]bool)
	for i := 0; i < n; i++ {
		v := graph.VertexID(i)
		for _, e := range p.g.Vertex(v).Out {
			if runOf[e.To] == runOf[v] {
				continue
			}
			key := [2]graph.VertexID{runOf[v], runOf[e.To]}
			if seen[key] {
				continue
			}
			seen[key] = true
			out.AddEdge(idFor[runOf[v]], idFor[runOf[e.To]], 0)
		}
	}
	return out
}

// Consensus greedily follows the heaviest outgoing edge from a source
// vertex (no in-edges) to build the graph's dominant sequence. Ties break
// toward the first edge encountered; this is a simplification of true
// heaviest-bundling consensus, adequate for the small MSA graphs this
// package targets.
func (p *Graph) Consensus() []byte {
	start, ok := p.sourceVertex()
	if !ok {
		return nil
	}
	var out []byte
	visited := make(map[graph.VertexID]bool)
	cur := start
	for !visited[cur] {
		visited[cur] = true
		out = append(out, p.g.Vertex(cur).Label...)
		outs := p.g.Vertex(cur).Out
		if len(outs) == 0 {
			break
		}
		best := outs[0]
		for _, e := range outs[1:] {
			if e.Weight > best.Weight {
				best = e
			}
		}
		cur = best.To
	}
	return out
}

func (p *Graph) sourceVertex() (graph.VertexID, bool) {
	for i := 0; i < p.g.NumVertices(); i++ {
		v := graph.VertexID(i)
		if len(p.g.Vertex(v).In) == 0 {
			return v, true
		}
	}
	return 0, false
}
