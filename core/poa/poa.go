// Package poa implements the partial-order alignment graph updater (C7):
// a per-base view layered over a core/graph.Graph, tracking "aligned-to"
// equivalence classes for substitutions and a compacted (run-merged) view
// for GFA/consensus output. Grounded in spec.md §4.7; the vertex-per-base
// granularity matches how the MSA-mode aligner in core/align consumes and
// produces graph.VertexID paths.
package poa

import (
	"fmt"

	"github.com/biogo/biogo/seq"

	"github.com/tmokveld/theseus-lib/core/cigar"
	"github.com/tmokveld/theseus-lib/core/graph"
)

// Graph wraps a per-base sequence graph with the aligned-to bookkeeping a
// progressive multiple-sequence alignment needs. The wrapped graph.Graph is
// also what core/align.AlignMSA operates on directly: each vertex is one
// base, so an Alignment.Path there already walks p = v0, v1, ... one entry
// per graph-column-consuming CIGAR operation (M, X or I).
type Graph struct {
	g         *graph.Graph
	alignedTo map[graph.VertexID][]graph.VertexID
	nextID    int
}

// New wraps g as a POA graph. g may already contain a linear seed sequence
// (see AddSequence) or be empty.
func New(g *graph.Graph) *Graph {
	return &Graph{g: g, alignedTo: make(map[graph.VertexID][]graph.VertexID)}
}

// Underlying returns the wrapped per-base graph, e.g. to pass as the graph
// argument to core/align.AlignMSA.
func (p *Graph) Underlying() *graph.Graph { return p.g }

// AlignedTo returns the equivalence class of vertices that occupy the same
// alignment column as v (not including v itself).
func (p *Graph) AlignedTo(v graph.VertexID) []graph.VertexID {
	return p.alignedTo[v]
}

func (p *Graph) newVertex(base byte) graph.VertexID {
	name := fmt.Sprintf("poa%d", p.nextID)
	p.nextID++
	return p.g.AddVertex(name, []byte{base}, seq.Plus)
}

// AddSequence seeds the graph with bases as a straight chain, the standard
// way to initialize an empty POA graph with its first member sequence.
// The wrapped graph must be empty; use Update thereafter for every
// subsequent sequence.
func (p *Graph) AddSequence(bases []byte) []graph.VertexID {
	path := make([]graph.VertexID, len(bases))
	for i, b := range bases {
		path[i] = p.newVertex(b)
		if i > 0 {
			p.g.IncrementEdgeWeight(path[i-1], path[i])
		}
	}
	return path
}

func (p *Graph) classOf(v graph.VertexID) []graph.VertexID {
	return append([]graph.VertexID{v}, p.alignedTo[v]...)
}

// linkAlignedTo merges newV into v's aligned-to equivalence class.
func (p *Graph) linkAlignedTo(v, newV graph.VertexID) {
	cls := p.classOf(v)
	for _, m := range cls {
		p.alignedTo[m] = appendUnique(p.alignedTo[m], newV)
	}
	p.alignedTo[newV] = cls
}

func appendUnique(list []graph.VertexID, v graph.VertexID) []graph.VertexID {
	for _, x := range list {
		if x == v {
			return list
		}
	}
	return append(list, v)
}

// findAlignedBase looks for a member of v's own alignment column (v
// included) whose base already matches want, so a repeated substitution at
// the same column reuses one POA vertex instead of growing the class.
func (p *Graph) findAlignedBase(v graph.VertexID, want byte) (graph.VertexID, bool) {
	for _, m := range p.classOf(v) {
		if p.g.Vertex(m).Label[0] == want {
			return m, true
		}
	}
	return 0, false
}

// Update walks path against ops and query, growing the graph per op. path
// holds one vertex per graph column the alignment consumed (the M, X and I
// ops, in the orientation core/align emits), and each vertex kept or added
// for this query is linked from the previous one by an edge whose weight
// is bumped:
//   - M: reuse the path vertex; advance both iterators.
//   - X: reuse an aligned-to vertex sharing this query's base if one
//     exists, else create one and link it into the column's equivalence
//     class; advance both iterators.
//   - I: the graph column is consumed but the query contributes no base;
//     advance only the path iterator.
//   - D: the query contributes a base the graph does not have yet; create
//     a fresh vertex chained off the last one kept or added, advance only
//     the query iterator.
//
// It returns this query's realized path through the (possibly grown)
// graph, for consensus/MSA bookkeeping.
func (p *Graph) Update(path []graph.VertexID, ops []cigar.Op, query []byte) []graph.VertexID {
	if len(path) == 0 {
		return nil
	}
	var newPath []graph.VertexID
	link := func(v graph.VertexID) {
		if n := len(newPath); n > 0 {
			p.g.IncrementEdgeWeight(newPath[n-1], v)
		}
		newPath = append(newPath, v)
	}
	pi, qi := 0, 0

	for _, op := range ops {
		switch op {
		case cigar.M:
			link(path[pi])
			pi++
			qi++
		case cigar.X:
			v := path[pi]
			base := query[qi]
			target, ok := p.findAlignedBase(v, base)
			if !ok {
				target = p.newVertex(base)
				p.linkAlignedTo(v, target)
			}
			link(target)
			pi++
			qi++
		case cigar.I:
			pi++
		case cigar.D:
			link(p.newVertex(query[qi]))
			qi++
		}
	}
	return newPath
}
