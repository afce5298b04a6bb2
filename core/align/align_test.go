package align

import (
	"errors"
	"testing"

	"github.com/biogo/biogo/seq"

	"github.com/tmokveld/theseus-lib/core/cigar"
	"github.com/tmokveld/theseus-lib/core/graph"
	"github.com/tmokveld/theseus-lib/core/penalty"
)

func opsString(ops []cigar.Op) string {
	return cigar.FromOps(ops).String()
}

func mustPenalties(t *testing.T, match, mism, gapo, gape int32) penalty.Set {
	t.Helper()
	p, err := penalty.NewAffine(match, mism, gapo, gape)
	if err != nil {
		t.Fatalf("penalty.NewAffine: %v", err)
	}
	return p
}

func singleVertexGraph(label string) (*graph.Graph, graph.VertexID) {
	g := graph.New()
	v := g.AddVertex("v0", []byte(label), seq.Plus)
	return g, v
}

func TestAlignPerfectMatch(t *testing.T) {
	g, v := singleVertexGraph("ACCCGTAAAAGGG")
	p := mustPenalties(t, 0, 2, 3, 1)

	res, err := Align(g, p, []byte("ACCCGTAAAAGGG"), v, 0)
	if err != nil {
		t.Fatalf("Align: %v", err)
	}
	if got := opsString(res.EditOps); got != "13M" {
		t.Errorf("CIGAR = %s, want 13M", got)
	}
	if res.Score != 0 {
		t.Errorf("Score = %d, want 0", res.Score)
	}
	if len(res.Path) != 1 || res.Path[0] != v {
		t.Errorf("Path = %v, want [%v]", res.Path, v)
	}
}

func TestAlignSingleMismatch(t *testing.T) {
	g, v := singleVertexGraph("ACCCGTAAAAGGG")
	p := mustPenalties(t, 0, 2, 3, 1)

	res, err := Align(g, p, []byte("ACCCGTCAAAGGG"), v, 0)
	if err != nil {
		t.Fatalf("Align: %v", err)
	}
	if got := opsString(res.EditOps); got != "6M1X6M" {
		t.Errorf("CIGAR = %s, want 6M1X6M", got)
	}
	if res.Score != 2 {
		t.Errorf("Score = %d, want 2", res.Score)
	}
}

func TestAlignInsertion(t *testing.T) {
	g, v := singleVertexGraph("ACCCGTAAAAGGG")
	p := mustPenalties(t, 0, 2, 3, 1)

	res, err := Align(g, p, []byte("ACCCGAAGGG"), v, 0)
	if err != nil {
		t.Fatalf("Align: %v", err)
	}
	if got := opsString(res.EditOps); got != "5M3I5M" {
		t.Errorf("CIGAR = %s, want 5M3I5M", got)
	}
	if res.Score != 6 {
		t.Errorf("Score = %d, want 6", res.Score)
	}
}

func TestAlignDeletion(t *testing.T) {
	g, v := singleVertexGraph("ACCCGTAAAAGGG")
	p := mustPenalties(t, 0, 2, 3, 1)

	res, err := Align(g, p, []byte("CATACCCGTAAAAGGG"), v, 0)
	if err != nil {
		t.Fatalf("Align: %v", err)
	}
	if got := opsString(res.EditOps); got != "3D13M" {
		t.Errorf("CIGAR = %s, want 3D13M", got)
	}
	if res.Score != 6 {
		t.Errorf("Score = %d, want 6", res.Score)
	}
}

func TestAlignEmptyQuery(t *testing.T) {
	g, v := singleVertexGraph("ACCCGTAAAAGGG")
	p := mustPenalties(t, 0, 2, 3, 1)

	res, err := Align(g, p, []byte(""), v, 0)
	if err != nil {
		t.Fatalf("Align: %v", err)
	}
	if len(res.EditOps) != 0 {
		t.Errorf("EditOps = %v, want empty", res.EditOps)
	}
	if len(res.Path) != 1 || res.Path[0] != v {
		t.Errorf("Path = %v, want [%v]", res.Path, v)
	}
	if res.Score != 0 {
		t.Errorf("Score = %d, want 0", res.Score)
	}
}

// cyclicGraph builds scenario C's graph: 1="ACTTAG" 2="ACA" 3="T" 4="GTACTT",
// edges 1->2, 1->3, 2->4, 3->4, 4->1, all overlap 0.
func cyclicGraph() (*graph.Graph, map[int]graph.VertexID) {
	g := graph.New()
	ids := map[int]graph.VertexID{}
	ids[1] = g.AddVertex("1", []byte("ACTTAG"), seq.Plus)
	ids[2] = g.AddVertex("2", []byte("ACA"), seq.Plus)
	ids[3] = g.AddVertex("3", []byte("T"), seq.Plus)
	ids[4] = g.AddVertex("4", []byte("GTACTT"), seq.Plus)
	g.AddEdge(ids[1], ids[2], 0)
	g.AddEdge(ids[1], ids[3], 0)
	g.AddEdge(ids[2], ids[4], 0)
	g.AddEdge(ids[3], ids[4], 0)
	g.AddEdge(ids[4], ids[1], 0)
	return g, ids
}

func TestAlignCyclicGraphNoGap(t *testing.T) {
	g, ids := cyclicGraph()
	p := mustPenalties(t, 0, 2, 3, 1)

	res, err := Align(g, p, []byte("TAGACAGTACT"), ids[1], 3)
	if err != nil {
		t.Fatalf("Align: %v", err)
	}
	if got := opsString(res.EditOps); got != "11M" {
		t.Errorf("CIGAR = %s, want 11M", got)
	}
	if res.Score != 0 {
		t.Errorf("Score = %d, want 0", res.Score)
	}
	wantPath := []graph.VertexID{ids[1], ids[2], ids[4]}
	if !pathEqual(res.Path, wantPath) {
		t.Errorf("Path = %v, want %v", res.Path, wantPath)
	}
}

func TestAlignCyclicGraphWithDeletion(t *testing.T) {
	g, ids := cyclicGraph()
	p := mustPenalties(t, 0, 2, 3, 1)

	res, err := Align(g, p, []byte("AACAGTACTTACT"), ids[2], 0)
	if err != nil {
		t.Fatalf("Align: %v", err)
	}
	if got := opsString(res.EditOps); got != "1M1D11M" {
		t.Errorf("CIGAR = %s, want 1M1D11M", got)
	}
	if res.Score != 4 {
		t.Errorf("Score = %d, want 4", res.Score)
	}
	wantPath := []graph.VertexID{ids[2], ids[4], ids[1]}
	if !pathEqual(res.Path, wantPath) {
		t.Errorf("Path = %v, want %v", res.Path, wantPath)
	}
}

func pathEqual(a, b []graph.VertexID) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestAlignScoreNonNegative(t *testing.T) {
	g, v := singleVertexGraph("ACCCGTAAAAGGG")
	p := mustPenalties(t, 0, 2, 3, 1)

	a := New(Config{})
	res, err := a.Align(g, p, []byte("ACCCGTCAAAGGG"), v, 0)
	if err != nil {
		t.Fatalf("Align: %v", err)
	}
	if res.Score < 0 {
		t.Errorf("Score should never be negative, got %d", res.Score)
	}
}

func TestAlignReusableAligner(t *testing.T) {
	g, v := singleVertexGraph("ACCCGTAAAAGGG")
	p := mustPenalties(t, 0, 2, 3, 1)
	a := New(Config{})

	first, err := a.Align(g, p, []byte("ACCCGTAAAAGGG"), v, 0)
	if err != nil {
		t.Fatalf("first Align: %v", err)
	}
	second, err := a.Align(g, p, []byte("ACCCGTCAAAGGG"), v, 0)
	if err != nil {
		t.Fatalf("second Align: %v", err)
	}
	if first.Score != 0 {
		t.Errorf("first.Score = %d, want 0", first.Score)
	}
	if second.Score != 2 {
		t.Errorf("second.Score = %d, want 2", second.Score)
	}
}

func TestAlignUnalignableQueryHitsCap(t *testing.T) {
	// A vertex with no out-edges cannot satisfy a query longer than its
	// label in MSA mode, which requires reaching a designated sink.
	g := graph.New()
	v := g.AddVertex("v0", []byte("AC"), seq.Plus)

	p := mustPenalties(t, 0, 2, 3, 1)
	a := New(Config{MaxScore: 4})
	_, err := a.AlignMSA(g, p, []byte("ACGTGTGTGTGT"), v, v)
	if !errors.Is(err, ErrUnalignableQuery) {
		t.Fatalf("expected ErrUnalignableQuery, got %v", err)
	}
}
