package fastaio

import (
	"strings"
	"testing"
)

func TestReadAllMultipleRecords(t *testing.T) {
	const data = ">seq1 description here\nACGT\nACGT\n>seq2\nTTTT\n"
	records, err := ReadAll(strings.NewReader(data))
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("want 2 records, got %d", len(records))
	}
	if records[0].ID != "seq1" || string(records[0].Seq) != "ACGTACGT" {
		t.Errorf("record 0 = %+v", records[0])
	}
	if records[1].ID != "seq2" || string(records[1].Seq) != "TTTT" {
		t.Errorf("record 1 = %+v", records[1])
	}
}

func TestReadOneReturnsFirstRecord(t *testing.T) {
	id, seq, err := ReadOne(strings.NewReader(">a\nACGT\n>b\nTTTT\n"))
	if err != nil {
		t.Fatalf("ReadOne: %v", err)
	}
	if id != "a" || string(seq) != "ACGT" {
		t.Fatalf("ReadOne = (%q, %q)", id, seq)
	}
}

func TestReadOneEmptyInput(t *testing.T) {
	_, _, err := ReadOne(strings.NewReader(""))
	if err != ErrNoRecords {
		t.Fatalf("err = %v, want ErrNoRecords", err)
	}
}
