package cli

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/tmokveld/theseus-lib/internal/version"
)

// penalties holds the flags common to both binaries.
type penalties struct {
	Match      int
	Mismatch   int
	GapOpen    int
	GapExtend  int
	GapOpen2   int
	GapExtend2 int
}

func registerPenalties(fs *flag.FlagSet, p *penalties) {
	fs.IntVar(&p.Match, "match", 0, "match score [0]")
	fs.IntVar(&p.Mismatch, "mismatch", 4, "mismatch penalty [4]")
	fs.IntVar(&p.GapOpen, "gapo", 6, "gap-open penalty [6]")
	fs.IntVar(&p.GapExtend, "gape", 2, "gap-extend penalty [2]")
	fs.IntVar(&p.GapOpen2, "gapo2", 0, "second gap-open penalty, reserved for dual-affine [0]")
	fs.IntVar(&p.GapExtend2, "gape2", 0, "second gap-extend penalty, reserved for dual-affine [0]")
}

// AlignOptions holds the flags for cmd/theseus (anchored alignment).
type AlignOptions struct {
	penalties

	Graph        string
	Query        string
	StartNode    string
	StartOffset  int
	Output       string
	Format       string
	Verbose      bool
	Version      bool
}

func usageHeader(fs *flag.FlagSet, name, usage string) {
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "%s: gap-affine sequence-to-graph aligner\n\nVersion: %s\n\n%s", name, version.Version, usage)
		fs.PrintDefaults()
	}
}

// ParseAlign parses cmd/theseus's flags from the process command line.
func ParseAlign() (AlignOptions, error) { return ParseAlignArgs(NewFlagSet("theseus"), os.Args[1:]) }

// ParseAlignArgs registers and parses cmd/theseus's flags.
func ParseAlignArgs(fs *flag.FlagSet, argv []string) (AlignOptions, error) {
	var o AlignOptions
	var help bool

	registerPenalties(fs, &o.penalties)
	fs.StringVar(&o.Graph, "graph", "", "GFA1 graph file [*]")
	fs.StringVar(&o.Query, "query", "", "FASTA query file [*]")
	fs.StringVar(&o.StartNode, "start-node", "", "GFA segment name to start alignment from [*]")
	fs.IntVar(&o.StartOffset, "start-offset", 0, "0-based offset into the start node's label [0]")
	fs.StringVar(&o.Output, "output", "-", "output path, '-' for stdout [-]")
	fs.StringVar(&o.Format, "format", "gaf", "output format: gaf | dot | sam [gaf]")
	fs.BoolVar(&o.Verbose, "v", false, "trace wavefront progress to stderr [false]")
	fs.BoolVar(&o.Version, "version", false, "print version and exit [false]")
	fs.BoolVar(&help, "h", false, "show this help message [false]")

	usageHeader(fs, "theseus", "Usage of theseus:\n")

	if err := fs.Parse(argv); err != nil {
		return o, err
	}
	if help {
		fs.SetOutput(fs.Output())
		fs.Usage()
		return o, flag.ErrHelp
	}
	if o.Version {
		return o, nil
	}

	if o.Graph == "" {
		return o, errors.New("--graph is required")
	}
	if o.Query == "" {
		return o, errors.New("--query is required")
	}
	if o.StartNode == "" {
		return o, errors.New("--start-node is required")
	}
	if o.StartOffset < 0 {
		return o, errors.New("--start-offset must be >= 0")
	}
	switch o.Format {
	case "gaf", "dot", "sam":
	default:
		return o, fmt.Errorf("invalid --format %q", o.Format)
	}
	return o, nil
}

// MSAOptions holds the flags for cmd/theseus-msa (progressive MSA / POA).
type MSAOptions struct {
	penalties

	Sequences string
	Output    string
	Format    string
	Verbose   bool
	Version   bool
}

// ParseMSA parses cmd/theseus-msa's flags from the process command line.
func ParseMSA() (MSAOptions, error) { return ParseMSAArgs(NewFlagSet("theseus-msa"), os.Args[1:]) }

// ParseMSAArgs registers and parses cmd/theseus-msa's flags.
func ParseMSAArgs(fs *flag.FlagSet, argv []string) (MSAOptions, error) {
	var o MSAOptions
	var help bool

	registerPenalties(fs, &o.penalties)
	fs.StringVar(&o.Sequences, "sequences", "", "FASTA file of sequences to align progressively, one alignment per record in file order [*]")
	fs.StringVar(&o.Output, "output", "-", "output path, '-' for stdout [-]")
	fs.StringVar(&o.Format, "format", "msa", "output format: msa | gfa | consensus | dot [msa]")
	fs.BoolVar(&o.Verbose, "v", false, "trace wavefront progress to stderr [false]")
	fs.BoolVar(&o.Version, "version", false, "print version and exit [false]")
	fs.BoolVar(&help, "h", false, "show this help message [false]")

	usageHeader(fs, "theseus-msa", "Usage of theseus-msa:\n")

	if err := fs.Parse(argv); err != nil {
		return o, err
	}
	if help {
		fs.SetOutput(fs.Output())
		fs.Usage()
		return o, flag.ErrHelp
	}
	if o.Version {
		return o, nil
	}

	if o.Sequences == "" {
		return o, errors.New("--sequences is required")
	}
	switch o.Format {
	case "msa", "gfa", "consensus", "dot":
	default:
		return o, fmt.Errorf("invalid --format %q", o.Format)
	}
	return o, nil
}
