package wavefront

import "testing"

func TestScratchPadResetIsProportionalToTouched(t *testing.T) {
	sp := NewScratchPad(-5, 5)
	c := sp.AccessOrCreate(2)
	c.Offset = 3
	c2 := sp.AccessOrCreate(-3)
	c2.Offset = 1

	diags := sp.ActiveDiags()
	if len(diags) != 2 {
		t.Fatalf("ActiveDiags() len = %d, want 2", len(diags))
	}
	sp.Reset()
	if len(sp.ActiveDiags()) != 0 {
		t.Fatalf("ActiveDiags() after Reset should be empty")
	}
	if sp.Access(2).Offset != -1 {
		t.Errorf("cell at diag 2 not reset")
	}
}

func TestScratchPadAccessOrCreateOnlyTouchesOnce(t *testing.T) {
	sp := NewScratchPad(-2, 2)
	sp.AccessOrCreate(0).Offset = 1
	sp.AccessOrCreate(0).Offset = 5
	if len(sp.ActiveDiags()) != 1 {
		t.Errorf("ActiveDiags() len = %d, want 1", len(sp.ActiveDiags()))
	}
}

func TestScopeNewScoreClearsOnlyThatSlot(t *testing.T) {
	s := NewScope(4)
	*s.IWF(0) = append(*s.IWF(0), Cell{Offset: 1})
	*s.IWF(1) = append(*s.IWF(1), Cell{Offset: 2})
	s.NewScore(0)
	if len(*s.IWF(0)) != 0 {
		t.Errorf("slot 0 not cleared")
	}
	if len(*s.IWF(1)) != 1 {
		t.Errorf("slot 1 unexpectedly cleared")
	}
}

func TestScopeWrapsAround(t *testing.T) {
	s := NewScope(3)
	*s.IWF(5) = append(*s.IWF(5), Cell{Offset: 9}) // slot 2
	if got := (*s.IWF(2))[0].Offset; got != 9 {
		t.Errorf("wraparound slot mismatch: got %d", got)
	}
}

func TestBeyondScopeIndicesStableAcrossAppend(t *testing.T) {
	b := NewBeyondScope()
	i0 := b.PushM(Cell{Offset: 1})
	for i := 0; i < 100; i++ {
		b.PushM(Cell{Offset: int32(i)})
	}
	if b.M[i0].Offset != 1 {
		t.Errorf("index %d no longer points at original cell", i0)
	}
}

func TestVerticesDataActivateAndIndex(t *testing.T) {
	vd := NewVerticesData(8, 4)
	idx0 := vd.Activate(5)
	idx1 := vd.Activate(5)
	if idx0 != idx1 {
		t.Errorf("re-activating an active vertex should return the same index")
	}
	if vd.VertexAt(idx0) != 5 {
		t.Errorf("VertexAt(%d) = %d, want 5", idx0, vd.VertexAt(idx0))
	}
	if !vd.IsActive(5) {
		t.Errorf("IsActive(5) = false, want true")
	}
	if vd.IsActive(6) {
		t.Errorf("IsActive(6) = true, want false")
	}
}

func TestInvalidIntervalMonotonicityAfterExpand(t *testing.T) {
	vd := NewVerticesData(8, 1)
	idx := vd.Activate(0)
	vd.InvalidateMJump(idx, 3, 3, 1) // gapo=3, gape=1

	before := vd.active[idx].mInvalid[0].Seg
	vd.Expand(1)
	after := vd.active[idx].mInvalid[0].Seg
	if after.StartD > before.StartD || after.EndD < before.EndD {
		t.Errorf("Expand should only grow the interval: before %+v after %+v", before, after)
	}
}

func TestCompactMergesOverlapping(t *testing.T) {
	vd := NewVerticesData(8, 1)
	idx := vd.Activate(0)
	vd.active[idx].mInvalid = []Invalid{
		{Seg: Segment{0, 2}, RemUp: 5, RemDown: 5},
		{Seg: Segment{2, 4}, RemUp: 3, RemDown: 3},
	}
	vd.Compact(1)
	if len(vd.active[idx].mInvalid) != 1 {
		t.Fatalf("expected merge into one interval, got %d", len(vd.active[idx].mInvalid))
	}
	seg := vd.active[idx].mInvalid[0].Seg
	if seg.StartD != 0 || seg.EndD != 4 {
		t.Errorf("merged segment = %+v, want {0 4}", seg)
	}
}

func TestIsValidDiagAfterInvalidate(t *testing.T) {
	vd := NewVerticesData(8, 1)
	idx := vd.Activate(0)
	vd.InvalidateMJump(idx, 3, 3, 1)
	if vd.IsValidM(idx, 3) {
		t.Errorf("diag 3 should be masked in M immediately after an M-jump on it")
	}
	if !vd.IsValidM(idx, 4) {
		t.Errorf("diag 4 should still be valid")
	}
}
