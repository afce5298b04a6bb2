package wavefront

// BeyondScope holds the persistent, monotone-growing arenas backtrace must
// be able to walk after the score loop has moved on (C4): M and M-jumps,
// plus I-jumps (placed here rather than in Scope per spec.md's Open
// Question (c), since backtrace needs to resolve I-jump predecessors long
// after the score that produced them has cycled out of Scope). Indices into
// these slices are stable across append -- only the backing array may move,
// never an already-issued logical index -- matching the arena+index
// strategy of spec.md §9.
type BeyondScope struct {
	M      []Cell
	MJumps []Cell
	IJumps []Cell
}

// NewBeyondScope returns an empty BeyondScope.
func NewBeyondScope() *BeyondScope { return &BeyondScope{} }

// NewAlignment clears all three arenas for a fresh query.
func (b *BeyondScope) NewAlignment() {
	b.M = b.M[:0]
	b.MJumps = b.MJumps[:0]
	b.IJumps = b.IJumps[:0]
}

func (b *BeyondScope) PushM(c Cell) int32 {
	b.M = append(b.M, c)
	return int32(len(b.M) - 1)
}

func (b *BeyondScope) PushMJumps(c Cell) int32 {
	b.MJumps = append(b.MJumps, c)
	return int32(len(b.MJumps) - 1)
}

func (b *BeyondScope) PushIJumps(c Cell) int32 {
	b.IJumps = append(b.IJumps, c)
	return int32(len(b.IJumps) - 1)
}

// Resolve fetches the cell tag references at pos. A tag of MatrixNone (the
// zero value, carried only by unwritten scratchpad slots) must never be
// passed here, nor the origin seed's PrevPos == -1; callers check PrevPos
// before calling Resolve.
func (b *BeyondScope) Resolve(tag MatrixTag, pos int32) Cell {
	switch tag {
	case MatrixM:
		return b.M[pos]
	case MatrixMJumps:
		return b.MJumps[pos]
	case MatrixIJumps:
		return b.IJumps[pos]
	default:
		panic("wavefront: Resolve called with unknown matrix tag")
	}
}
