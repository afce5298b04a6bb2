// Package align implements the wavefront aligner core (C6): the per-score
// loop over C2-C5 that computes a gap-affine sequence-to-graph alignment,
// plus the backtrace that turns the wavefront trace into a CIGAR and a
// vertex path. Grounded in spec.md §4.6 and, for API shape only, in
// theseus_aligner_impl.h's method list.
package align

import (
	"errors"
	"fmt"
	"io"

	"github.com/tmokveld/theseus-lib/core/cigar"
	"github.com/tmokveld/theseus-lib/core/graph"
	"github.com/tmokveld/theseus-lib/core/penalty"
	"github.com/tmokveld/theseus-lib/core/wavefront"
	"github.com/tmokveld/theseus-lib/internal/cmdutil"
)

// ErrUnalignableQuery is returned when the score loop crosses a non-zero
// Config.MaxScore without terminating: in MSA mode, without reaching the
// designated sink; in anchored mode, without consuming the whole query.
var ErrUnalignableQuery = errors.New("unalignable query")

// ErrInvalidBacktrace signals an internal consistency failure, treated as a
// bug rather than a user error: Align/AlignMSA recover any panic raised
// during the score loop or backtrace (for example backtrace resolving an
// unknown from_matrix tag) and turn it into a wrapped error at the API
// boundary. Backtrace does not separately check where the prev_pos == -1
// cell that ends its walk sits relative to the query.
var ErrInvalidBacktrace = errors.New("invalid backtrace")

// Config carries ambient, non-algorithmic knobs the teacher's engine.Config
// also carries: a safety cap on the score loop and an optional progress
// trace, neither of which spec.md's algorithm text depends on.
type Config struct {
	// MaxScore caps the score loop. Crossing it returns ErrUnalignableQuery
	// in both modes; in anchored mode this only happens for a start node
	// that can never reach the query length within the cap. Zero means
	// unbounded.
	MaxScore int

	// TraceEveryN, when non-zero, writes a progress line to TraceWriter
	// every N scores via cmdutil.Debugf.
	TraceEveryN int
	TraceWriter io.Writer
}

// Alignment is the result of a successful Align or AlignMSA call.
type Alignment struct {
	EditOps []cigar.Op
	Path    []graph.VertexID
	Score   int32
}

// Aligner owns the Scratchpad, which repeated calls reuse (growing it when
// a query needs a wider diagonal range); Scope, BeyondScope and
// VerticesData are rebuilt for every call (see runState). It is not safe
// for concurrent use.
type Aligner struct {
	cfg     Config
	scratch *wavefront.ScratchPad
}

// New returns an Aligner ready to align any number of queries sequentially.
func New(cfg Config) *Aligner {
	return &Aligner{cfg: cfg}
}

// Align performs anchored sequence-to-graph alignment: it terminates as
// soon as any cell consumes the whole query, wherever that happens.
func (a *Aligner) Align(g *graph.Graph, p penalty.Set, query []byte, start graph.VertexID, startOffset int) (result Alignment, err error) {
	defer a.recoverBacktrace(&err)
	rs := a.newRunState(g, p, query, false, 0)
	return rs.run(start, int32(startOffset))
}

// AlignMSA performs MSA-mode alignment: termination requires reaching the
// designated sink vertex with the full label consumed, matching how a
// query is threaded through a partial-order alignment graph.
func (a *Aligner) AlignMSA(g *graph.Graph, p penalty.Set, query []byte, source, sink graph.VertexID) (result Alignment, err error) {
	defer a.recoverBacktrace(&err)
	rs := a.newRunState(g, p, query, true, sink)
	return rs.run(source, 0)
}

func (a *Aligner) recoverBacktrace(err *error) {
	if r := recover(); r != nil {
		*err = fmt.Errorf("%v: %w", r, ErrInvalidBacktrace)
	}
}

// Align is a convenience one-shot wrapper for callers that do not need to
// reuse buffers across queries.
func Align(g *graph.Graph, p penalty.Set, query []byte, start graph.VertexID, startOffset int) (Alignment, error) {
	return New(Config{}).Align(g, p, query, start, startOffset)
}

// AlignMSA is the one-shot equivalent of (*Aligner).AlignMSA.
func AlignMSA(g *graph.Graph, p penalty.Set, query []byte, source, sink graph.VertexID) (Alignment, error) {
	return New(Config{}).AlignMSA(g, p, query, source, sink)
}

// runState holds everything specific to a single align() call. A fresh one
// is built per call; only the Scratchpad survives across calls on the same
// Aligner (Scope/VerticesData/BeyondScope are cheap to rebuild sized to
// this call's n_scores, which can differ if the caller varies penalties
// between calls on the same Aligner).
type runState struct {
	cfg Config

	g     *graph.Graph
	p     penalty.Set
	query []byte
	q     int32

	mism, gapo, gape int32

	scratch *wavefront.ScratchPad
	scope   *wavefront.Scope
	beyond  *wavefront.BeyondScope
	vd      *wavefront.VerticesData

	msa  bool
	sink graph.VertexID

	score int32
	end   bool

	startVertex graph.VertexID
	startPos    wavefront.Cell
}

func (a *Aligner) newRunState(g *graph.Graph, p penalty.Set, query []byte, msa bool, sink graph.VertexID) *runState {
	mism, gapo, gape := p.Internal()
	q := int32(len(query))
	maxLabel := int32(g.MaxLabelLen())
	a.scratch = ensureScratch(a.scratch, -q, maxLabel)

	nScores := p.NScores()
	rs := &runState{
		cfg:     a.cfg,
		g:       g,
		p:       p,
		query:   query,
		q:       q,
		mism:    mism,
		gapo:    gapo,
		gape:    gape,
		scratch: a.scratch,
		scope:   wavefront.NewScope(nScores),
		beyond:  wavefront.NewBeyondScope(),
		vd:      wavefront.NewVerticesData(nScores, g.NumVertices()),
		msa:     msa,
		sink:    sink,
	}
	return rs
}

// ensureScratch grows sp geometrically so it covers [minDiag, maxDiag],
// per spec.md §9's "pre-size, grow geometrically" guidance.
func ensureScratch(sp *wavefront.ScratchPad, minDiag, maxDiag int32) *wavefront.ScratchPad {
	if sp != nil && sp.Covers(minDiag, maxDiag) {
		return sp
	}
	newMin, newMax := minDiag, maxDiag
	if sp != nil {
		if g := 2 * sp.MinDiag(); g < newMin {
			newMin = g
		}
		if g := 2 * sp.MaxDiag(); g > newMax {
			newMax = g
		}
	}
	return wavefront.NewScratchPad(newMin, newMax)
}

// run seeds the alignment at (start, startOffset) and drives the per-score
// loop of spec.md §4.6 to completion, then backtraces.
func (rs *runState) run(start graph.VertexID, startOffset int32) (Alignment, error) {
	rs.scope.NewAlignment()
	rs.beyond.NewAlignment()
	rs.vd.NewAlignment()

	rs.startVertex = start
	seed := wavefront.Cell{VertexID: int32(start), Diag: startOffset, Offset: 0, PrevPos: -1, From: wavefront.MatrixMJumps}
	seedPos := rs.beyond.PushMJumps(seed)
	vidx := rs.vd.Activate(int32(start))
	rs.vd.RecordMJump(vidx, 0, seedPos)

	rs.score = 0
	rs.end = false

	for {
		if rs.score == 0 {
			rs.extend(start, wavefront.MatrixMJumps, seedPos)
			if rs.end {
				break
			}
		}
		rs.computeWave()
		if rs.end {
			break
		}
		rs.score++
		if rs.cfg.MaxScore > 0 && int(rs.score) > rs.cfg.MaxScore {
			if rs.msa {
				return Alignment{}, fmt.Errorf("score exceeded %d without reaching sink %d: %w", rs.cfg.MaxScore, rs.sink, ErrUnalignableQuery)
			}
			return Alignment{}, fmt.Errorf("score exceeded %d: %w", rs.cfg.MaxScore, ErrUnalignableQuery)
		}
		rs.scope.NewScore(rs.score)
		rs.vd.NewScore(rs.score)
		if rs.cfg.TraceEveryN > 0 && rs.cfg.TraceWriter != nil && rs.score%int32(rs.cfg.TraceEveryN) == 0 {
			cmdutil.Debugf(rs.cfg.TraceWriter, true, "score=%d active_vertices=%d", rs.score, rs.vd.NumActive())
		}
	}

	return rs.backtrace()
}

// computeWave runs one score's worth of vertex processing: age and merge
// the invalid-diagonal intervals, then sweep every vertex active at the
// start of this score in insertion order. Newly activated vertices (from a
// jump triggered mid-sweep) are deferred to the following score, since
// their arrival is already recorded as this score's contribution.
func (rs *runState) computeWave() {
	rs.vd.Expand(rs.gape)
	rs.vd.Compact(rs.gape)
	n := rs.vd.NumActive()
	for i := int32(0); i < n; i++ {
		rs.processVertex(i)
		if rs.end {
			return
		}
	}
}

// processVertex runs the five sub-steps of spec.md §4.6's process_vertex:
// next_I, next_D, next_M (each followed by a scratchpad reset), then LCP
// extension of every M cell just produced for this vertex.
func (rs *runState) processVertex(vidx int32) {
	v := graph.VertexID(rs.vd.VertexAt(vidx))
	upper := int32(len(rs.g.Vertex(v).Label))

	rs.nextI(v, vidx, upper)
	rs.scratch.Reset()
	rs.nextD(v, vidx, upper)
	rs.scratch.Reset()
	rs.nextM(v, vidx, upper)
	rs.scratch.Reset()

	mRange := posAt(*rs.scope.MPos(rs.score), vidx)
	for i := mRange.Start; i < mRange.End; i++ {
		rs.extend(v, wavefront.MatrixM, i)
		if rs.end {
			return
		}
	}
}

func (rs *runState) isTerminal(v graph.VertexID, c wavefront.Cell) bool {
	if c.Offset != rs.q {
		return false
	}
	if !rs.msa {
		return true
	}
	col := c.Diag + c.Offset
	return v == rs.sink && col == int32(len(rs.g.Vertex(v).Label))
}
