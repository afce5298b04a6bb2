package app

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"

	"github.com/tmokveld/theseus-lib/core/align"
	"github.com/tmokveld/theseus-lib/core/graph"
	"github.com/tmokveld/theseus-lib/core/penalty"
	"github.com/tmokveld/theseus-lib/core/poa"
	"github.com/tmokveld/theseus-lib/internal/cli"
	"github.com/tmokveld/theseus-lib/internal/cmdutil"
	"github.com/tmokveld/theseus-lib/internal/fastaio"
	"github.com/tmokveld/theseus-lib/internal/output"
)

// RunMSA is cmd/theseus-msa's entry point.
func RunMSA(argv []string, stdout, stderr io.Writer) int {
	return RunMSAContext(context.Background(), argv, stdout, stderr)
}

// RunMSAContext runs cmd/theseus-msa, progressively aligning every record in
// --sequences against a POA graph seeded with the first record.
func RunMSAContext(ctx context.Context, argv []string, stdout, stderr io.Writer) int {
	outw := bufio.NewWriter(stdout)
	defer func() { _ = outw.Flush() }()

	fs := cli.NewFlagSet("theseus-msa")
	fs.SetOutput(io.Discard)

	opts, err := cli.ParseMSAArgs(fs, argv)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			fs.SetOutput(outw)
			fs.Usage()
			return flushOrFail(outw, stderr, ExitOK)
		}
		fmt.Fprintln(stderr, err)
		fs.SetOutput(outw)
		fs.Usage()
		return flushOrFail(outw, stderr, ExitArgs)
	}
	if opts.Version {
		fmt.Fprintln(outw, versionLine("theseus-msa"))
		return flushOrFail(outw, stderr, ExitOK)
	}

	runID := uuid.New().String()

	sf, err := os.Open(opts.Sequences)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return ExitInvalidInput
	}
	defer sf.Close()
	records, err := fastaio.ReadAll(sf)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return ExitInvalidInput
	}
	if len(records) == 0 {
		fmt.Fprintln(stderr, "--sequences contains no records")
		return ExitInvalidInput
	}

	pen, err := penalty.NewAffine(
		int32(opts.Match), int32(opts.Mismatch), int32(opts.GapOpen), int32(opts.GapExtend),
	)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return ExitInvalidInput
	}

	p := poa.New(graph.New())
	seed := p.AddSequence(records[0].Seq)
	ids := []string{records[0].ID}
	paths := [][]graph.VertexID{seed}

	cfg := align.Config{}
	if opts.Verbose {
		cfg.TraceEveryN = 1
		cfg.TraceWriter = stderr
	}
	aligner := align.New(cfg)

	source, sink := seed[0], seed[len(seed)-1]
	for _, rec := range records[1:] {
		if opts.Verbose {
			cmdutil.Debugf(stderr, true, "run=%s aligning %q", runID, rec.ID)
		}
		res, err := aligner.AlignMSA(p.Underlying(), pen, rec.Seq, source, sink)
		if err != nil {
			fmt.Fprintln(stderr, err)
			if errors.Is(err, align.ErrUnalignableQuery) {
				return ExitUnalignable
			}
			return ExitInvalidInput
		}
		path := p.Update(res.Path, res.EditOps, rec.Seq)
		ids = append(ids, rec.ID)
		paths = append(paths, path)
		sink = path[len(path)-1]
	}

	result := output.MSAResult{
		RunID: runID, IDs: ids, Paths: paths,
		PerBase:   p.Underlying(),
		Compact:   p.Compact(),
		Consensus: p.Consensus(),
	}

	dst, closeDst, err := openOutput(opts.Output, stdout)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return ExitOutput
	}
	defer closeDst()

	if err := output.WriteMSAResult(opts.Format, dst, result); err != nil {
		if output.IsBrokenPipe(err) {
			return ExitOK
		}
		fmt.Fprintln(stderr, err)
		return ExitOutput
	}
	return ExitOK
}
