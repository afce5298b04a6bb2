package poa

import (
	"testing"

	"github.com/tmokveld/theseus-lib/core/align"
	"github.com/tmokveld/theseus-lib/core/graph"
	"github.com/tmokveld/theseus-lib/core/penalty"
)

func mustPenalties(t *testing.T) penalty.Set {
	t.Helper()
	p, err := penalty.NewAffine(0, 2, 3, 1)
	if err != nil {
		t.Fatalf("penalty.NewAffine: %v", err)
	}
	return p
}

func TestAlignMSAOfSeedIsPureMatch(t *testing.T) {
	p := New(graph.New())
	seed := p.AddSequence([]byte("ACCCGTAAAAGGG"))
	source, sink := seed[0], seed[len(seed)-1]

	pen := mustPenalties(t)
	a := align.New(align.Config{})

	res, err := a.AlignMSA(p.Underlying(), pen, []byte("ACCCGTAAAAGGG"), source, sink)
	if err != nil {
		t.Fatalf("AlignMSA: %v", err)
	}
	for _, op := range res.EditOps {
		if op != 'M' {
			t.Fatalf("expected pure-M CIGAR for a sequence already in the graph, got %v", res.EditOps)
		}
	}
	if res.Score != 0 {
		t.Errorf("Score = %d, want 0", res.Score)
	}
}

func TestUpdateGrowsGraphAndStabilizesRepeatedAlignment(t *testing.T) {
	p := New(graph.New())
	seed := p.AddSequence([]byte("ACCCGTAAAAGGG"))
	source, sink := seed[0], seed[len(seed)-1]

	pen := mustPenalties(t)
	a := align.New(align.Config{})

	query := []byte("ACCCGTCAAAGGG")
	res, err := a.AlignMSA(p.Underlying(), pen, query, source, sink)
	if err != nil {
		t.Fatalf("AlignMSA: %v", err)
	}
	if res.Score != 2 {
		t.Fatalf("Score = %d, want 2", res.Score)
	}

	before := p.Underlying().NumVertices()
	p.Update(res.Path, res.EditOps, query)
	after := p.Underlying().NumVertices()
	if after != before+1 {
		t.Errorf("Update should add exactly one vertex for the single substitution, got %d -> %d", before, after)
	}

	res2, err := a.AlignMSA(p.Underlying(), pen, query, source, sink)
	if err != nil {
		t.Fatalf("second AlignMSA: %v", err)
	}
	if res2.Score != 0 {
		t.Errorf("aligning the just-added sequence again should score 0, got %d", res2.Score)
	}

	res3, err := a.AlignMSA(p.Underlying(), pen, []byte("ACCCGAAGGG"), source, sink)
	if err != nil {
		t.Fatalf("third AlignMSA: %v", err)
	}
	if res3.Score != 6 {
		t.Errorf("Score = %d, want 6 (stable, never added to the graph)", res3.Score)
	}
}

func TestCompactMergesLinearChain(t *testing.T) {
	p := New(graph.New())
	p.AddSequence([]byte("ACGT"))
	c := p.Compact()
	if c.NumVertices() != 1 {
		t.Fatalf("Compact() of a linear chain should yield one vertex, got %d", c.NumVertices())
	}
	if string(c.Vertex(0).Label) != "ACGT" {
		t.Errorf("compact label = %q, want ACGT", c.Vertex(0).Label)
	}
}

func TestConsensusFollowsHeaviestPath(t *testing.T) {
	p := New(graph.New())
	seed := p.AddSequence([]byte("ACGT"))
	// Add three more copies of the same sequence so the original edges are
	// the heaviest path by a wide margin.
	pen := mustPenalties(t)
	a := align.New(align.Config{})
	for i := 0; i < 3; i++ {
		res, err := a.AlignMSA(p.Underlying(), pen, []byte("ACGT"), seed[0], seed[len(seed)-1])
		if err != nil {
			t.Fatalf("AlignMSA: %v", err)
		}
		p.Update(res.Path, res.EditOps, []byte("ACGT"))
	}
	if got := string(p.Consensus()); got != "ACGT" {
		t.Errorf("Consensus() = %q, want ACGT", got)
	}
}
