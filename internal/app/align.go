// Package app wires the CLI flag layer, the core aligner/POA packages, and
// the output writers together, and owns the process exit code -- the same
// role the teacher's internal/app/app.go plays for ipcr.
package app

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"

	"github.com/tmokveld/theseus-lib/core/align"
	"github.com/tmokveld/theseus-lib/core/graph"
	"github.com/tmokveld/theseus-lib/core/penalty"
	"github.com/tmokveld/theseus-lib/internal/cli"
	"github.com/tmokveld/theseus-lib/internal/cmdutil"
	"github.com/tmokveld/theseus-lib/internal/fastaio"
	"github.com/tmokveld/theseus-lib/internal/output"
)

// Exit codes, matching the teacher's internal/app convention.
const (
	ExitOK             = 0
	ExitArgs           = 2
	ExitOutput         = 3
	ExitInvalidInput   = 4
	ExitUnalignable    = 5
)

// RunAlign is cmd/theseus's entry point.
func RunAlign(argv []string, stdout, stderr io.Writer) int {
	return RunAlignContext(context.Background(), argv, stdout, stderr)
}

// RunAlignContext runs cmd/theseus with an explicit context. The context is
// not passed to the aligner; an alignment, once started, runs to completion.
func RunAlignContext(ctx context.Context, argv []string, stdout, stderr io.Writer) int {
	outw := bufio.NewWriter(stdout)
	defer func() { _ = outw.Flush() }()

	fs := cli.NewFlagSet("theseus")
	fs.SetOutput(io.Discard)

	opts, err := cli.ParseAlignArgs(fs, argv)
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
		fmt.Fprintln(outw, versionLine("theseus"))
		return flushOrFail(outw, stderr, ExitOK)
	}

	runID := uuid.New().String()

	gf, err := os.Open(opts.Graph)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return ExitInvalidInput
	}
	defer gf.Close()
	g, err := graph.LoadGFA(gf)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return ExitInvalidInput
	}

	qf, err := os.Open(opts.Query)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return ExitInvalidInput
	}
	defer qf.Close()
	queryID, query, err := fastaio.ReadOne(qf)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return ExitInvalidInput
	}

	start, ok := g.ID(opts.StartNode + "+")
	if !ok {
		fmt.Fprintf(stderr, "unknown start node %q: %v\n", opts.StartNode, graph.ErrInvalidGraph)
		return ExitInvalidInput
	}

	pen, err := penalty.NewAffine(
		int32(opts.Match), int32(opts.Mismatch), int32(opts.GapOpen), int32(opts.GapExtend),
	)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return ExitInvalidInput
	}

	cfg := align.Config{}
	if opts.Verbose {
		cfg.TraceEveryN = 1
		cfg.TraceWriter = stderr
		cmdutil.Debugf(stderr, true, "run=%s starting alignment of %q against %q", runID, queryID, opts.Graph)
	}

	aln, err := align.New(cfg).Align(g, pen, query, start, opts.StartOffset)
	if err != nil {
		fmt.Fprintln(stderr, err)
		if errors.Is(err, align.ErrUnalignableQuery) {
			return ExitUnalignable
		}
		return ExitInvalidInput
	}

	res := output.AlignResult{
		RunID: runID, QueryID: queryID, Query: query, Graph: g,
		StartNode: start, StartOffset: opts.StartOffset, Alignment: aln,
	}

	if opts.Verbose {
		rec := output.ToAlignmentV1(res, runID)
		if b, err := json.Marshal(rec); err == nil {
			cmdutil.Debugf(stderr, true, "run=%s result=%s", runID, b)
		}
	}

	dst, closeDst, err := openOutput(opts.Output, stdout)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return ExitOutput
	}
	defer closeDst()

	if err := output.WriteAlign(opts.Format, dst, res); err != nil {
		if output.IsBrokenPipe(err) {
			return ExitOK
		}
		fmt.Fprintln(stderr, err)
		return ExitOutput
	}
	return ExitOK
}

func flushOrFail(outw *bufio.Writer, stderr io.Writer, code int) int {
	if err := outw.Flush(); output.IsBrokenPipe(err) {
		return ExitOK
	} else if err != nil {
		fmt.Fprintln(stderr, err)
		return ExitOutput
	}
	return code
}

func openOutput(path string, stdout io.Writer) (io.Writer, func(), error) {
	if path == "" || path == "-" {
		return stdout, func() {}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, err
	}
	return f, func() { _ = f.Close() }, nil
}

func versionLine(name string) string {
	return fmt.Sprintf("%s version %s", name, versionString())
}
