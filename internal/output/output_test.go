package output

import (
	"bytes"
	"strings"
	"testing"

	"github.com/biogo/biogo/seq"

	"github.com/tmokveld/theseus-lib/core/align"
	"github.com/tmokveld/theseus-lib/core/cigar"
	"github.com/tmokveld/theseus-lib/core/graph"
)

func singleVertexGraph(t *testing.T, label string) (*graph.Graph, graph.VertexID) {
	t.Helper()
	g := graph.New()
	v := g.AddVertex("v1+", []byte(label), seq.Plus)
	return g, v
}

func TestWriteGAF(t *testing.T) {
	g, v := singleVertexGraph(t, "ACGTACGT")
	r := AlignResult{
		QueryID: "q1", Query: []byte("ACGTACGT"), Graph: g,
		StartNode: v, StartOffset: 0,
		Alignment: align.Alignment{EditOps: []cigar.Op{cigar.M, cigar.M, cigar.M, cigar.M, cigar.M, cigar.M, cigar.M, cigar.M}, Path: []graph.VertexID{v}, Score: 0},
	}
	var buf bytes.Buffer
	if err := WriteGAF(&buf, r); err != nil {
		t.Fatalf("WriteGAF: %v", err)
	}
	line := buf.String()
	if !strings.HasPrefix(line, "q1\t8\t0\t8\t+\t>v1\t") {
		t.Fatalf("unexpected GAF line: %q", line)
	}
	if !strings.Contains(line, "cg:Z:8M") {
		t.Fatalf("missing CIGAR tag: %q", line)
	}
}

func TestWriteMSAColumnLayout(t *testing.T) {
	g := graph.New()
	a := g.AddVertex("poa0", []byte("A"), seq.Plus)
	c := g.AddVertex("poa1", []byte("C"), seq.Plus)
	gg := g.AddVertex("poa2", []byte("G"), seq.Plus)
	g.AddEdge(a, c, 0)
	g.AddEdge(c, gg, 0)

	r := MSAResult{
		IDs:     []string{"full", "skips-middle"},
		Paths:   [][]graph.VertexID{{a, c, gg}, {a, gg}},
		PerBase: g,
	}
	var buf bytes.Buffer
	if err := WriteMSA(&buf, r); err != nil {
		t.Fatalf("WriteMSA: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, ">full\nACG\n") {
		t.Fatalf("unexpected msa output: %q", out)
	}
	if !strings.Contains(out, ">skips-middle\nA-G\n") {
		t.Fatalf("unexpected msa output: %q", out)
	}
}

func TestWriteConsensus(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteConsensus(&buf, MSAResult{RunID: "r1", Consensus: []byte("ACGT")}); err != nil {
		t.Fatalf("WriteConsensus: %v", err)
	}
	if !strings.Contains(buf.String(), ">consensus run=r1\nACGT\n") {
		t.Fatalf("unexpected consensus output: %q", buf.String())
	}
}

func TestIsBrokenPipe(t *testing.T) {
	if IsBrokenPipe(nil) {
		t.Fatalf("nil error should not be a broken pipe")
	}
}
