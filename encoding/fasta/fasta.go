// Package fasta parses FASTA-formatted nucleotide data. FASTA files consist
// of a number of named sequences that may be wrapped across lines. For
// example:
//
// >chr7
// ACGTAC
// GAGGAC
// GCG
// >chr8
// ACGT
//
// Note: Sequence names are defined to be the stretch of characters excluding
// spaces immediately after '>'.  Any text appearing after a space is
// ignored. For example, '>chr1 A viral sequence' becomes 'chr1'.
package fasta

import (
	"bufio"
	"io"
	"strings"

	"github.com/pkg/errors"
)

const (
	mib            = 1024 * 1024
	bufferInitSize = 300 * mib
)

// Record is one named sequence from a FASTA stream. Bases is the
// concatenation of all wrapped lines belonging to the record, uppercased;
// it is not yet validated against the IUPAC alphabet, which is
// orf.Container.Set's job.
type Record struct {
	Name  string
	Bases []byte
}

// ReadAll parses every record in r eagerly and returns them in file order.
func ReadAll(r io.Reader) ([]Record, error) {
	var records []Record
	err := ForEach(r, func(rec Record) error {
		records = append(records, rec)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return records, nil
}

// ForEach parses r one record at a time, calling fn as each record
// completes, so a caller can begin scanning before the whole file has been
// read. fn's error, if any, aborts the scan and is returned from ForEach.
//
// A stream with sequence data preceding any ">name" line is a hard parse
// error: a FASTA file with no header is malformed, not an input we
// silently tolerate.
func ForEach(r io.Reader, fn func(Record) error) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(nil, bufferInitSize)

	var name string
	var seq strings.Builder
	haveRecord := false

	flush := func() error {
		if !haveRecord {
			return nil
		}
		return fn(Record{Name: name, Bases: []byte(strings.ToUpper(seq.String()))})
	}

	for scanner.Scan() {
		line := scanner.Text()
		if len(line) == 0 {
			continue
		}
		if line[0] == '>' {
			if err := flush(); err != nil {
				return err
			}
			seq.Reset()
			name = strings.Split(line[1:], " ")[0]
			haveRecord = true
			continue
		}
		if !haveRecord {
			return errors.Errorf("malformed FASTA file: sequence data before any '>name' line")
		}
		seq.WriteString(line)
	}
	if err := scanner.Err(); err != nil {
		return errors.Wrap(err, "couldn't read FASTA data")
	}
	return flush()
}
