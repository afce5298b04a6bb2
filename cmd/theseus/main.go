// Command theseus performs anchored gap-affine sequence-to-graph alignment:
// a query is aligned starting from a fixed vertex and offset in a GFA1
// graph, and the resulting CIGAR/path is rendered in one of several
// output formats.
package main

import (
	"os"

	"github.com/tmokveld/theseus-lib/internal/app"
)

func main() {
	os.Exit(app.RunAlign(os.Args[1:], os.Stdout, os.Stderr))
}
