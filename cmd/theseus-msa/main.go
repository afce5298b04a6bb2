// Command theseus-msa builds a progressive multiple sequence alignment: each
// FASTA record is aligned in turn against a growing partial-order (POA)
// graph seeded by the first record, then folded into the graph.
package main

import (
	"os"

	"github.com/tmokveld/theseus-lib/internal/app"
)

func main() {
	os.Exit(app.RunMSA(os.Args[1:], os.Stdout, os.Stderr))
}
