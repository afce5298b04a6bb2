package align

import (
	"github.com/tmokveld/theseus-lib/core/cigar"
	"github.com/tmokveld/theseus-lib/core/graph"
	"github.com/tmokveld/theseus-lib/core/wavefront"
)

// backtrace walks from rs.startPos back to the origin seed, emitting a
// CIGAR and a vertex path, per spec.md §4.6's backtrace algorithm. It
// stops at the first cell with prev_pos == -1 and emits matches for that
// cell's offset without checking it further. An unresolvable from_matrix
// tag panics inside BeyondScope.Resolve; Align/AlignMSA recover this into
// ErrInvalidBacktrace.
func (rs *runState) backtrace() (Alignment, error) {
	rec := &cigar.Record{}
	path := []graph.VertexID{rs.startVertex}

	curr := rs.startPos

	for curr.PrevPos != -1 {
		prev := rs.beyond.Resolve(curr.From, curr.PrevPos)

		if curr.VertexID == prev.VertexID {
			switch {
			case curr.Diag == prev.Diag:
				for off := prev.Offset + 1; off <= curr.Offset-1; off++ {
					rec.Add(cigar.M)
				}
				rec.Add(cigar.X)
			case curr.Diag < prev.Diag:
				delta := prev.Diag - curr.Diag
				for off := prev.Offset + delta; off < curr.Offset; off++ {
					rec.Add(cigar.M)
				}
				rec.AddN(cigar.D, int(delta))
			default:
				delta := curr.Diag - prev.Diag
				for off := prev.Offset; off < curr.Offset; off++ {
					rec.Add(cigar.M)
				}
				rec.AddN(cigar.I, int(delta))
			}
		} else {
			for off := prev.Offset; off < curr.Offset; off++ {
				rec.Add(cigar.M)
			}
			if curr.From == wavefront.MatrixIJumps {
				chain := rs.recoverInsertionChain(graph.VertexID(prev.VertexID), graph.VertexID(curr.VertexID), prev.Offset, curr.Offset)
				for i := len(chain) - 1; i >= 0; i-- {
					path = append(path, chain[i])
				}
				rec.AddN(cigar.I, int(curr.Offset-prev.Offset))
			} else {
				path = append(path, graph.VertexID(prev.VertexID))
			}
		}

		curr = prev
	}

	for off := int32(0); off < curr.Offset; off++ {
		rec.Add(cigar.M)
	}

	rec.Reverse()
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}

	ops := rec.Ops()
	score := cigar.Score(ops, rs.p.Match, rs.p.Mismatch, rs.p.GapOpen, rs.p.GapExtend)

	return Alignment{EditOps: ops, Path: path, Score: score}, nil
}

// recoverInsertionChain reconstructs the vertex chain an I-jump silently
// skipped over, per spec.md §4.6's Dijkstra helper: a shortest-path search
// weighted by columns consumed per edge (label length minus overlap),
// returned in traversal order from just-after from to and including to.
func (rs *runState) recoverInsertionChain(from, to graph.VertexID, offFrom, offTo int32) []graph.VertexID {
	if from == to {
		return nil
	}

	const unvisited = int32(-1)
	dist := map[graph.VertexID]int32{from: 0}
	prev := map[graph.VertexID]graph.VertexID{}
	visited := map[graph.VertexID]bool{}

	for {
		u, best, found := graph.VertexID(-1), unvisited, false
		for v, d := range dist {
			if visited[v] {
				continue
			}
			if !found || d < best {
				u, best, found = v, d, true
			}
		}
		if !found {
			break
		}
		if u == to {
			break
		}
		visited[u] = true

		for _, e := range rs.g.Vertex(u).Out {
			w := e.To
			weight := int32(len(rs.g.Vertex(u).Label)) - int32(e.Overlap)
			nd := dist[u] + weight
			if old, ok := dist[w]; !ok || nd < old {
				dist[w] = nd
				prev[w] = u
			}
		}
	}

	var chain []graph.VertexID
	cur := to
	for cur != from {
		chain = append(chain, cur)
		p, ok := prev[cur]
		if !ok {
			break
		}
		cur = p
	}
	for i, j := 0, len(chain)-1; i < j; i, j = i+1, j-1 {
		chain[i], chain[j] = chain[j], chain[i]
	}
	return chain
}
