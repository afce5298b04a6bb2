package wavefront

import "sort"

// Segment is an inclusive diagonal range [StartD, EndD]. A range with
// StartD > EndD denotes an empty (zero-width) segment, used as the initial
// state of an interval that has not yet grown on one side.
type Segment struct {
	StartD, EndD int32
}

// Invalid is one masked-out diagonal interval for a matrix/vertex pair,
// with the two funnel countdown counters from spec.md §3.
type Invalid struct {
	Seg            Segment
	RemUp, RemDown int32
}

type vertexData struct {
	vertexID int32

	mInvalid, iInvalid, dInvalid []Invalid

	mJumpsPositions [][]int32 // ring of length nScores
	iJumpsPositions [][]int32
}

// VerticesData is the per-active-vertex bookkeeping component (C5):
// invalid-diagonal intervals per matrix, per-score jump arrival positions,
// and the vertex-id -> index mapping. Grounded in theseus/vertices_data.h.
type VerticesData struct {
	nScores     int32
	active      []vertexData
	vertexToIdx []int32
}

// NewVerticesData allocates C5 state sized for n_scores lookback and an
// expected active-vertex count (a capacity hint, not a hard limit).
func NewVerticesData(nScores int32, expectedVertices int) *VerticesData {
	return &VerticesData{
		nScores:     nScores,
		active:      make([]vertexData, 0, expectedVertices),
		vertexToIdx: make([]int32, 0, expectedVertices),
	}
}

// NewAlignment clears all per-query state.
func (vd *VerticesData) NewAlignment() {
	vd.active = vd.active[:0]
	vd.vertexToIdx = vd.vertexToIdx[:0]
}

// IsActive reports whether v has been activated during the current query.
func (vd *VerticesData) IsActive(v int32) bool {
	if int(v) >= len(vd.vertexToIdx) {
		return false
	}
	return vd.vertexToIdx[v] != -1
}

// Activate registers v as active if it is not already, and returns its
// slot index either way.
func (vd *VerticesData) Activate(v int32) int32 {
	if vd.IsActive(v) {
		return vd.vertexToIdx[v]
	}
	for int32(len(vd.vertexToIdx)) <= v {
		vd.vertexToIdx = append(vd.vertexToIdx, -1)
	}
	idx := int32(len(vd.active))
	vd.vertexToIdx[v] = idx
	vd.active = append(vd.active, vertexData{
		vertexID:        v,
		mJumpsPositions: make([][]int32, vd.nScores),
		iJumpsPositions: make([][]int32, vd.nScores),
	})
	return idx
}

// NumActive returns the number of currently active vertices.
func (vd *VerticesData) NumActive() int32 { return int32(len(vd.active)) }

// VertexAt returns the vertex id registered at active-vertex slot i.
func (vd *VerticesData) VertexAt(i int32) int32 { return vd.active[i].vertexID }

// IndexOf returns the active-vertex slot for v (v must be active).
func (vd *VerticesData) IndexOf(v int32) int32 { return vd.vertexToIdx[v] }

func (vd *VerticesData) scoreSlot(score int32) int32 {
	s := score % vd.nScores
	if s < 0 {
		s += vd.nScores
	}
	return s
}

// NewScore clears the jump-arrival lists that score's ring slot is about to
// reuse, for every active vertex.
func (vd *VerticesData) NewScore(score int32) {
	slot := vd.scoreSlot(score)
	for i := range vd.active {
		vd.active[i].mJumpsPositions[slot] = vd.active[i].mJumpsPositions[slot][:0]
		vd.active[i].iJumpsPositions[slot] = vd.active[i].iJumpsPositions[slot][:0]
	}
}

// RecordMJump appends pos (an index into BeyondScope.MJumps) to vertex
// idx's arrival list for score.
func (vd *VerticesData) RecordMJump(idx, score, pos int32) {
	slot := vd.scoreSlot(score)
	vd.active[idx].mJumpsPositions[slot] = append(vd.active[idx].mJumpsPositions[slot], pos)
}

// RecordIJump appends pos (an index into BeyondScope.IJumps) to vertex
// idx's arrival list for score.
func (vd *VerticesData) RecordIJump(idx, score, pos int32) {
	slot := vd.scoreSlot(score)
	vd.active[idx].iJumpsPositions[slot] = append(vd.active[idx].iJumpsPositions[slot], pos)
}

// MJumpPositions returns vertex idx's M-jump arrivals at score.
func (vd *VerticesData) MJumpPositions(idx, score int32) []int32 {
	return vd.active[idx].mJumpsPositions[vd.scoreSlot(score)]
}

// IJumpPositions returns vertex idx's I-jump arrivals at score.
func (vd *VerticesData) IJumpPositions(idx, score int32) []int32 {
	return vd.active[idx].iJumpsPositions[vd.scoreSlot(score)]
}

// InvalidateMJump appends the three initial invalid intervals (M, I, D) an
// M-jump on diag opens for vertex idx, per spec.md §4.5's table.
func (vd *VerticesData) InvalidateMJump(idx, diag, gapo, gape int32) {
	v := &vd.active[idx]
	v.mInvalid = append(v.mInvalid, Invalid{Segment{diag, diag}, gapo + gape, gapo + gape})
	v.iInvalid = append(v.iInvalid, Invalid{Segment{diag + 1, diag}, gapo + gape, 2 * (gapo + gape)})
	v.dInvalid = append(v.dInvalid, Invalid{Segment{diag, diag - 1}, 2 * (gapo + gape), gapo + gape})
}

// InvalidateIJump appends the three initial invalid intervals an I-jump on
// diag opens for vertex idx.
func (vd *VerticesData) InvalidateIJump(idx, diag, gapo, gape int32) {
	v := &vd.active[idx]
	v.mInvalid = append(v.mInvalid, Invalid{Segment{diag, diag}, gape, gapo + gape})
	v.iInvalid = append(v.iInvalid, Invalid{Segment{diag, diag}, gape, 2*gapo + 3*gape})
	v.dInvalid = append(v.dInvalid, Invalid{Segment{diag, diag - 1}, gapo + 2*gape, gapo + gape})
}

// Expand ages every interval of every matrix of every active vertex by one
// score: each side's countdown decrements, and hits zero it grows that side
// by one diagonal and resets to the default (gape, per spec.md §4.5).
func (vd *VerticesData) Expand(gape int32) {
	for i := range vd.active {
		v := &vd.active[i]
		expandList(v.mInvalid, gape, gape)
		expandList(v.iInvalid, gape, gape)
		expandList(v.dInvalid, gape, gape)
	}
}

func expandList(list []Invalid, defaultUp, defaultDown int32) {
	for i := range list {
		list[i].RemUp--
		list[i].RemDown--
		if list[i].RemUp <= 0 {
			list[i].RemUp = defaultUp
			list[i].Seg.EndD++
		}
		if list[i].RemDown <= 0 {
			list[i].RemDown = defaultDown
			list[i].Seg.StartD--
		}
	}
}

// Compact merges adjacent/overlapping intervals within each matrix of each
// active vertex, keeping the pairwise-disjoint invariant spec.md §8 demands.
func (vd *VerticesData) Compact(gape int32) {
	for i := range vd.active {
		v := &vd.active[i]
		v.mInvalid = compactList(v.mInvalid, gape, gape)
		v.iInvalid = compactList(v.iInvalid, gape, gape)
		v.dInvalid = compactList(v.dInvalid, gape, gape)
	}
}

func compactList(list []Invalid, defaultUp, defaultDown int32) []Invalid {
	if len(list) == 0 {
		return list
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Seg.StartD < list[j].Seg.StartD })
	k := 0
	for l := 1; l < len(list); l++ {
		if list[k].Seg.EndD+1 >= list[l].Seg.StartD {
			kEnd, lEnd := list[k].Seg.EndD, list[l].Seg.EndD

			downShift := list[l].RemDown + (list[l].Seg.StartD-list[k].Seg.StartD)*defaultDown
			if downShift < list[k].RemDown {
				list[k].RemDown = downShift
			}

			if lEnd > kEnd {
				shift := list[k].RemUp + (lEnd-kEnd)*defaultUp
				if list[l].RemUp < shift {
					list[k].RemUp = list[l].RemUp
				} else {
					list[k].RemUp = shift
				}
				list[k].Seg.EndD = lEnd
			} else {
				shift := list[l].RemUp + (kEnd-lEnd)*defaultUp
				if shift < list[k].RemUp {
					list[k].RemUp = shift
				}
			}
		} else {
			k++
			list[k] = list[l]
		}
	}
	return list[:k+1]
}

func isValidDiag(list []Invalid, diag int32) bool {
	for _, iv := range list {
		if iv.Seg.StartD <= diag && diag <= iv.Seg.EndD {
			return false
		}
	}
	return true
}

// IsValidM reports whether diag is currently unmasked in M for vertex idx.
func (vd *VerticesData) IsValidM(idx, diag int32) bool { return isValidDiag(vd.active[idx].mInvalid, diag) }

// IsValidI reports whether diag is currently unmasked in I for vertex idx.
func (vd *VerticesData) IsValidI(idx, diag int32) bool { return isValidDiag(vd.active[idx].iInvalid, diag) }

// IsValidD reports whether diag is currently unmasked in D for vertex idx.
func (vd *VerticesData) IsValidD(idx, diag int32) bool { return isValidDiag(vd.active[idx].dInvalid, diag) }
