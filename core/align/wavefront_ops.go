package align

import (
	"github.com/tmokveld/theseus-lib/core/graph"
	"github.com/tmokveld/theseus-lib/core/wavefront"
)

// posAt returns ranges[idx], or the zero Range (an empty slice) if idx is
// out of bounds -- meaning the vertex it names contributed nothing at the
// score this position vector belongs to.
func posAt(ranges []wavefront.Range, idx int32) wavefront.Range {
	if idx < 0 || int(idx) >= len(ranges) {
		return wavefront.Range{}
	}
	return ranges[idx]
}

// setPosAt records r at ranges[idx], growing the backing slice with empty
// ranges as needed.
func setPosAt(ranges *[]wavefront.Range, idx int32, r wavefront.Range) {
	for int32(len(*ranges)) <= idx {
		*ranges = append(*ranges, wavefront.Range{})
	}
	(*ranges)[idx] = r
}

// sliceCells returns cells[r.Start:r.End], clamped defensively to the
// slice's current length.
func sliceCells(cells []wavefront.Cell, r wavefront.Range) []wavefront.Cell {
	end := r.End
	if end > int32(len(cells)) {
		end = int32(len(cells))
	}
	start := r.Start
	if start < 0 || start >= end {
		return nil
	}
	return cells[start:end]
}

// sparsify writes one candidate into the scratchpad at newDiag, keeping
// whichever candidate for that diagonal has the larger offset (further
// along the query, per spec.md's max-per-diagonal rule); on equal offsets
// the candidate written first is kept.
func (rs *runState) sparsify(v graph.VertexID, upper, newDiag, newOffset, prevPos int32, from wavefront.MatrixTag) {
	if newOffset > rs.q {
		return
	}
	if newDiag+newOffset > upper {
		return
	}
	slot := rs.scratch.AccessOrCreate(newDiag)
	if slot.Offset < newOffset {
		slot.VertexID = int32(v)
		slot.Diag = newDiag
		slot.Offset = newOffset
		slot.PrevPos = prevPos
		slot.From = from
	}
}

// nextI implements next_I: I(s,v) is fed by I(s-ge,v) (copy-through, since
// I is not a resolvable from_matrix tag), by I-jumps(s-ge,v) (a direct
// reference into BeyondScope.IJumps) and by M(s-go-ge,v) and
// M-jumps(s-go-ge,v) (direct references, opening a new gap). After densify, every newly pushed cell that reached the vertex's
// right boundary triggers both an M-jump and an I-jump.
func (rs *runState) nextI(v graph.VertexID, vidx, upper int32) {
	s := rs.score

	if src := s - rs.gape; src >= 0 {
		cells := *rs.scope.IWF(src)
		for _, c := range sliceCells(cells, posAt(*rs.scope.IPos(src), vidx)) {
			rs.sparsify(v, upper, c.Diag+1, c.Offset, c.PrevPos, c.From)
		}
		for _, pos := range rs.vd.IJumpPositions(vidx, src) {
			c := rs.beyond.IJumps[pos]
			rs.sparsify(v, upper, c.Diag+1, c.Offset, pos, wavefront.MatrixIJumps)
		}
	}
	if src := s - rs.gapo - rs.gape; src >= 0 {
		mr := posAt(*rs.scope.MPos(src), vidx)
		for i := mr.Start; i < mr.End; i++ {
			c := rs.beyond.M[i]
			rs.sparsify(v, upper, c.Diag+1, c.Offset, i, wavefront.MatrixM)
		}
		for _, pos := range rs.vd.MJumpPositions(vidx, src) {
			c := rs.beyond.MJumps[pos]
			rs.sparsify(v, upper, c.Diag+1, c.Offset, pos, wavefront.MatrixMJumps)
		}
	}

	iwf := rs.scope.IWF(s)
	startLen := int32(len(*iwf))
	for _, d := range rs.scratch.ActiveDiags() {
		if !rs.vd.IsValidI(vidx, d) {
			continue
		}
		*iwf = append(*iwf, *rs.scratch.Access(d))
	}
	setPosAt(rs.scope.IPos(s), vidx, wavefront.Range{Start: startLen, End: int32(len(*iwf))})

	fresh := (*iwf)[startLen:]
	for i := range fresh {
		c := fresh[i]
		if c.Diag+c.Offset == upper {
			rs.storeMJump(v, c, c.PrevPos, c.From)
			rs.storeIJump(v, c, c.PrevPos, c.From)
			if rs.end {
				return
			}
		}
	}
}

// nextD implements next_D: D(s,v) is fed by D(s-ge,v) (copy-through) and
// M(s-go-ge,v) / M-jumps(s-go-ge,v) (direct). Deletions never themselves
// trigger a jump; a D chain only reaches the vertex boundary by first
// merging into M(s,v), which does the boundary/LCP check on extension.
func (rs *runState) nextD(v graph.VertexID, vidx, upper int32) {
	s := rs.score

	if src := s - rs.gape; src >= 0 {
		cells := *rs.scope.DWF(src)
		for _, c := range sliceCells(cells, posAt(*rs.scope.DPos(src), vidx)) {
			rs.sparsify(v, upper, c.Diag-1, c.Offset+1, c.PrevPos, c.From)
		}
	}
	if src := s - rs.gapo - rs.gape; src >= 0 {
		mr := posAt(*rs.scope.MPos(src), vidx)
		for i := mr.Start; i < mr.End; i++ {
			c := rs.beyond.M[i]
			rs.sparsify(v, upper, c.Diag-1, c.Offset+1, i, wavefront.MatrixM)
		}
		for _, pos := range rs.vd.MJumpPositions(vidx, src) {
			c := rs.beyond.MJumps[pos]
			rs.sparsify(v, upper, c.Diag-1, c.Offset+1, pos, wavefront.MatrixMJumps)
		}
	}

	dwf := rs.scope.DWF(s)
	startLen := int32(len(*dwf))
	for _, d := range rs.scratch.ActiveDiags() {
		if !rs.vd.IsValidD(vidx, d) {
			continue
		}
		*dwf = append(*dwf, *rs.scratch.Access(d))
	}
	setPosAt(rs.scope.DPos(s), vidx, wavefront.Range{Start: startLen, End: int32(len(*dwf))})
}

// nextM implements next_M: M(s,v) merges I(s,v) and D(s,v) at the same
// score (both copy-through, zero delta) with M(s-mism,v) and
// M-jumps(s-mism,v) (direct, opening a substitution). The target
// wavefront lives in BeyondScope, not Scope, since I/D at later scores may
// need to reach further back than n_scores to find it.
func (rs *runState) nextM(v graph.VertexID, vidx, upper int32) {
	s := rs.score

	{
		cells := *rs.scope.IWF(s)
		for _, c := range sliceCells(cells, posAt(*rs.scope.IPos(s), vidx)) {
			rs.sparsify(v, upper, c.Diag, c.Offset, c.PrevPos, c.From)
		}
	}
	{
		cells := *rs.scope.DWF(s)
		for _, c := range sliceCells(cells, posAt(*rs.scope.DPos(s), vidx)) {
			rs.sparsify(v, upper, c.Diag, c.Offset, c.PrevPos, c.From)
		}
	}
	if src := s - rs.mism; src >= 0 {
		mr := posAt(*rs.scope.MPos(src), vidx)
		for i := mr.Start; i < mr.End; i++ {
			c := rs.beyond.M[i]
			rs.sparsify(v, upper, c.Diag, c.Offset+1, i, wavefront.MatrixM)
		}
		for _, pos := range rs.vd.MJumpPositions(vidx, src) {
			c := rs.beyond.MJumps[pos]
			rs.sparsify(v, upper, c.Diag, c.Offset+1, pos, wavefront.MatrixMJumps)
		}
	}

	startLen := int32(len(rs.beyond.M))
	for _, d := range rs.scratch.ActiveDiags() {
		if !rs.vd.IsValidM(vidx, d) {
			continue
		}
		rs.beyond.PushM(*rs.scratch.Access(d))
	}
	setPosAt(rs.scope.MPos(s), vidx, wavefront.Range{Start: startLen, End: int32(len(rs.beyond.M))})
}

// extend performs the LCP (matching) extension of an M-resident cell
// (either a plain M cell or an M-jumps cell -- the only two matrices that
// live in BeyondScope and so can be mutated in place and self-referenced).
// It checks termination and, on hitting the vertex's right boundary with
// an out-edge, chains into store_M_jump.
func (rs *runState) extend(v graph.VertexID, tag wavefront.MatrixTag, pos int32) {
	var cell *wavefront.Cell
	switch tag {
	case wavefront.MatrixM:
		cell = &rs.beyond.M[pos]
	case wavefront.MatrixMJumps:
		cell = &rs.beyond.MJumps[pos]
	default:
		panic("align: extend called with a non-M matrix tag")
	}

	label := rs.g.Vertex(v).Label
	for {
		col := cell.Diag + cell.Offset
		if col >= int32(len(label)) || cell.Offset >= rs.q {
			break
		}
		if rs.query[cell.Offset] != label[col] {
			break
		}
		cell.Offset++
	}

	if rs.isTerminal(v, *cell) {
		rs.end = true
		rs.startVertex = v
		rs.startPos = *cell
		return
	}

	col := cell.Diag + cell.Offset
	if col == int32(len(label)) && len(rs.g.Vertex(v).Out) > 0 {
		rs.storeMJump(v, *cell, pos, tag)
	}
}

// storeMJump implements store_M_jump: it masks the boundary diagonal in M
// of v, then for every out-edge constructs a new M-jumps cell in the
// successor and immediately extends it -- the mechanism by which cycles
// and chains of empty vertices are traversed within a single score.
func (rs *runState) storeMJump(v graph.VertexID, cell wavefront.Cell, prevPos int32, prevTag wavefront.MatrixTag) {
	vidx := rs.vd.IndexOf(int32(v))
	rs.vd.InvalidateMJump(vidx, cell.Diag, rs.gapo, rs.gape)

	for _, e := range rs.g.Vertex(v).Out {
		w := e.To
		widx := rs.vd.Activate(int32(w))
		newDiag := -cell.Offset + int32(e.Overlap)
		if !rs.vd.IsValidM(widx, newDiag) {
			continue
		}
		nc := wavefront.Cell{VertexID: int32(w), Diag: newDiag, Offset: cell.Offset, PrevPos: prevPos, From: prevTag}
		idx := rs.beyond.PushMJumps(nc)
		rs.vd.RecordMJump(widx, rs.score, idx)
		rs.extend(w, wavefront.MatrixMJumps, idx)
		if rs.end {
			return
		}
	}
}

// storeIJump implements store_I_jump: same shape as storeMJump but for the
// I matrix, and it never extends (an insertion jump does not itself
// consume a graph column) -- it only propagates through empty vertices by
// recursing with the same (prevPos, prevTag), so a whole chain of
// zero-length vertices still resolves back to the original gap-opening
// cell in one hop, matching the Dijkstra-recoverable backtrace design.
func (rs *runState) storeIJump(v graph.VertexID, cell wavefront.Cell, prevPos int32, prevTag wavefront.MatrixTag) {
	vidx := rs.vd.IndexOf(int32(v))
	rs.vd.InvalidateIJump(vidx, cell.Diag, rs.gapo, rs.gape)

	for _, e := range rs.g.Vertex(v).Out {
		w := e.To
		widx := rs.vd.Activate(int32(w))
		newDiag := -cell.Offset + int32(e.Overlap)
		if !rs.vd.IsValidI(widx, newDiag) {
			continue
		}
		nc := wavefront.Cell{VertexID: int32(w), Diag: newDiag, Offset: cell.Offset, PrevPos: prevPos, From: prevTag}
		idx := rs.beyond.PushIJumps(nc)
		rs.vd.RecordIJump(widx, rs.score, idx)
		if len(rs.g.Vertex(w).Label) == 0 {
			rs.storeIJump(w, nc, prevPos, prevTag)
		}
	}
}
