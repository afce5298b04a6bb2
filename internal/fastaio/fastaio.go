// Package fastaio reads FASTA query sequences for the CLI binaries. It is
// a simplified single-pass reader built on the same bufio.Scanner idiom as
// the teacher's core/fasta/stream.go, without that package's chunking --
// Theseus holds each query whole in memory, never streaming a sequence in
// pieces.
package fastaio

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
)

// ErrNoRecords is returned by ReadOne when r contains no FASTA records.
var ErrNoRecords = errors.New("no FASTA records found")

const maxLine = 64 * 1024 * 1024

// ReadOne reads the first FASTA record from r and returns its id and
// sequence (whitespace-stripped, newlines removed).
func ReadOne(r io.Reader) (id string, sequence []byte, err error) {
	records, err := ReadAll(r)
	if err != nil {
		return "", nil, err
	}
	if len(records) == 0 {
		return "", nil, ErrNoRecords
	}
	return records[0].ID, records[0].Seq, nil
}

// Record is one parsed FASTA entry.
type Record struct {
	ID  string
	Seq []byte
}

// ReadAll reads every FASTA record from r, in file order.
func ReadAll(r io.Reader) ([]Record, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), maxLine)

	var records []Record
	var id string
	var seq []byte

	flush := func() {
		if id != "" || len(seq) > 0 {
			records = append(records, Record{ID: id, Seq: seq})
		}
	}

	for sc.Scan() {
		line := sc.Bytes()
		if len(line) == 0 {
			continue
		}
		if line[0] == '>' {
			flush()
			id = parseHeaderID(line[1:])
			seq = nil
			continue
		}
		seq = append(seq, bytes.TrimSpace(line)...)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("fastaio: scan: %w", err)
	}
	flush()
	return records, nil
}

func parseHeaderID(hdr []byte) string {
	hdr = bytes.TrimSpace(hdr)
	if i := bytes.IndexAny(hdr, " \t"); i >= 0 {
		return string(hdr[:i])
	}
	return string(hdr)
}
