// Package cli parses command-line flags for the theseus and theseus-msa
// binaries: two flat Options structs plus a shared flag.FlagSet
// constructor, in the style of the teacher's internal/cli/flagset.go.
package cli

import "flag"

// NewFlagSet returns a clean FlagSet with ContinueOnError and no default
// usage output (ParseAlignArgs/ParseMSAArgs install their own fs.Usage).
func NewFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.Usage = func() {}
	return fs
}
