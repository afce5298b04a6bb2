// Package wavefront implements the storage layer of the gap-affine
// wavefront aligner: the scratchpad (C2), the short-memory scope (C3), the
// persistent beyond-scope arenas (C4), and per-vertex bookkeeping (C5).
package wavefront

// MatrixTag identifies which BeyondScope arena a Cell's PrevPos indexes
// into. Per spec.md §9, the tags a stored cell carries form a three-member
// sum type (M, MJumps, IJumps; MatrixNone is only the zero value): even
// cells that logically live in a matrix with finite look-back (I, D) always
// carry a tag pointing at one of these three, because their own
// predecessor chain is collapsed at construction time (see runState.nextI
// and runState.nextD in core/align).
type MatrixTag uint8

const (
	MatrixNone MatrixTag = iota
	MatrixM
	MatrixMJumps
	MatrixIJumps
)

func (t MatrixTag) String() string {
	switch t {
	case MatrixM:
		return "M"
	case MatrixMJumps:
		return "MJumps"
	case MatrixIJumps:
		return "IJumps"
	default:
		return "None"
	}
}

// Cell is one point reached in DP space (spec.md §3). Offset == -1 marks an
// empty scratchpad slot.
type Cell struct {
	VertexID int32
	Diag     int32
	Offset   int32
	PrevPos  int32
	From     MatrixTag
}

// Range is a half-open [Start, End) slice of a wavefront, one per active
// vertex, in the vertex's activation-order slot.
type Range struct {
	Start, End int32
}
