package output

import (
	"strings"

	"github.com/tmokveld/theseus-lib/core/cigar"
	"github.com/tmokveld/theseus-lib/pkg/api"
)

// ToAlignmentV1 projects an AlignResult onto the stable wire schema, used
// for structured debug logging (see internal/app's -v trace) rather than a
// dedicated JSON output format -- the CLI's own output kinds are the
// GAF/Dot/SAM/MSA/GFA/consensus text formats named in SPEC_FULL.
func ToAlignmentV1(r AlignResult, runID string) api.AlignmentV1 {
	path := make([]string, len(r.Alignment.Path))
	for i, v := range r.Alignment.Path {
		path[i] = strings.TrimSuffix(r.Graph.Vertex(v).Name, "+")
	}
	return api.AlignmentV1{
		RunID:     runID,
		QueryID:   r.QueryID,
		Cigar:     cigar.FromOps(r.Alignment.EditOps).String(),
		Score:     r.Alignment.Score,
		StartNode: strings.TrimSuffix(r.Graph.Vertex(r.StartNode).Name, "+"),
		Path:      path,
		Mode:      "anchored",
	}
}
