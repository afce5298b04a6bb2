package graph

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/biogo/biogo/seq"
)

// LoadGFA reads the GFA1 subset described in spec.md §6:
//
//	H            ignored
//	S<TAB>name<TAB>seq              registers vertex "<name>+" with label seq
//	L<TAB>from<TAB>fs<TAB>to<TAB>ts<TAB>overlap  registers an oriented edge
//
// A '*' segment sequence is rejected. Overlaps must be "NM" with N >= 0;
// '*' or a non-M CIGAR op is rejected. Edges into a vertex that was never
// registered with '+' orientation (either missing entirely, or only ever
// seen with '-') fail with ErrInvalidGraph -- this loader never synthesizes
// reverse-complement vertices.
func LoadGFA(r io.Reader) (*Graph, error) {
	g := New()

	sc := bufio.NewScanner(r)
	const maxLine = 64 * 1024 * 1024
	sc.Buffer(make([]byte, 64*1024), maxLine)

	type pendingEdge struct {
		fromName, toName string
		overlap          int
		lineNo           int
	}
	var edges []pendingEdge

	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimRight(sc.Text(), "\r\n")
		if line == "" {
			continue
		}
		fields := strings.Split(line, "\t")
		switch fields[0] {
		case "H":
			continue
		case "S":
			if len(fields) < 3 {
				return nil, invalidGraphf("line %d: malformed S line %q", lineNo, line)
			}
			name, label := fields[1], fields[2]
			if label == "*" {
				return nil, invalidGraphf("line %d: segment %q has '*' sequence", lineNo, name)
			}
			oriented := name + "+"
			if _, exists := g.ID(oriented); exists {
				return nil, invalidGraphf("line %d: duplicate segment %q", lineNo, name)
			}
			g.AddVertex(oriented, []byte(label), seq.Plus)
		case "L":
			if len(fields) < 6 {
				return nil, invalidGraphf("line %d: malformed L line %q", lineNo, line)
			}
			fromName, fs, toName, ts, overlapStr := fields[1], fields[2], fields[3], fields[4], fields[5]
			if fs != "+" && fs != "-" {
				return nil, invalidGraphf("line %d: bad from-strand %q", lineNo, fs)
			}
			if ts != "+" && ts != "-" {
				return nil, invalidGraphf("line %d: bad to-strand %q", lineNo, ts)
			}
			overlap, err := parseOverlap(overlapStr)
			if err != nil {
				return nil, invalidGraphf("line %d: %v", lineNo, err)
			}
			edges = append(edges, pendingEdge{fromName: fromName + fs, toName: toName + ts, overlap: overlap, lineNo: lineNo})
		default:
			continue
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("gfa scan: %w", err)
	}

	for _, e := range edges {
		from, ok := g.ID(e.fromName)
		if !ok {
			return nil, invalidGraphf("line %d: edge references unknown or minus-strand-only vertex %q", e.lineNo, e.fromName)
		}
		to, ok := g.ID(e.toName)
		if !ok {
			return nil, invalidGraphf("line %d: edge references unknown or minus-strand-only vertex %q", e.lineNo, e.toName)
		}
		if e.overlap >= len(g.Vertices[from].Label) || e.overlap >= len(g.Vertices[to].Label) {
			return nil, invalidGraphf("line %d: overlap %d not strictly less than both vertex label lengths", e.lineNo, e.overlap)
		}
		g.AddEdge(from, to, e.overlap)
	}

	return g, nil
}

// parseOverlap accepts exactly "NM" with N >= 0; rejects "*" and any other
// CIGAR op.
func parseOverlap(s string) (int, error) {
	if s == "*" {
		return 0, fmt.Errorf("unsupported overlap %q", s)
	}
	if len(s) < 2 || s[len(s)-1] != 'M' {
		return 0, fmt.Errorf("unsupported overlap %q, want NM", s)
	}
	n, err := strconv.Atoi(s[:len(s)-1])
	if err != nil || n < 0 {
		return 0, fmt.Errorf("unsupported overlap %q, want NM", s)
	}
	return n, nil
}

// WriteGFA serializes the graph back to GFA1 text, one S line per vertex
// (registration order) followed by one L line per in-edge. Re-deriving
// edges from In (not Out) when printing mirrors the reference C++'s
// print_as_gfa, and always emits '+' orientation on both ends since this
// loader never tracks minus-strand vertices.
func (g *Graph) WriteGFA(w io.Writer) error {
	bw := bufio.NewWriter(w)
	for _, v := range g.Vertices {
		name := strings.TrimSuffix(v.Name, "+")
		if _, err := fmt.Fprintf(bw, "S\t%s\t%s\n", name, v.Label); err != nil {
			return err
		}
	}
	for _, v := range g.Vertices {
		toName := strings.TrimSuffix(v.Name, "+")
		for _, e := range v.In {
			fromName := strings.TrimSuffix(g.Vertices[e.From].Name, "+")
			if _, err := fmt.Fprintf(bw, "L\t%s\t+\t%s\t+\t%dM\n", fromName, toName, e.Overlap); err != nil {
				return err
			}
		}
	}
	return bw.Flush()
}

// WriteDot renders the graph in Graphviz Dot notation, grounded in
// theseus/graph.h's print_code_graphviz.
func (g *Graph) WriteDot(w io.Writer) error {
	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintln(bw, "digraph G {"); err != nil {
		return err
	}
	for _, v := range g.Vertices {
		if _, err := fmt.Fprintf(bw, "  %d [label=\"%s\"];\n", v.ID, v.Label); err != nil {
			return err
		}
	}
	for _, v := range g.Vertices {
		for _, e := range v.Out {
			if _, err := fmt.Fprintf(bw, "  %d -> %d;\n", e.From, e.To); err != nil {
				return err
			}
		}
	}
	if _, err := fmt.Fprintln(bw, "}"); err != nil {
		return err
	}
	return bw.Flush()
}
