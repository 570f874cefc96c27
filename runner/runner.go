// Package runner fans ORF scanning out across many sequences concurrently.
package runner

import (
	"github.com/grailbio/base/traverse"
	"github.com/grailbio/seqorf/encoding/fasta"
	"github.com/grailbio/seqorf/orf"
)

// Result is the outcome of scanning one input sequence for open reading
// frames, in input order regardless of completion order.
type Result struct {
	SeqName   string
	SeqIndex  int
	Locations []orf.SequenceLocation
	Err       error
}

// FindAllConcurrent scans every record in records for ORFs matching opts,
// using up to parallelism goroutines. Each goroutine owns its own
// orf.Container, since a Container is not safe for concurrent mutation;
// results land in a pre-sized slice indexed by input position, so the
// returned order is deterministic regardless of scheduling.
func FindAllConcurrent(records []fasta.Record, opts orf.FindOpts, parallelism int) []Result {
	results := make([]Result, len(records))
	if len(records) == 0 {
		return results
	}
	if parallelism < 1 {
		parallelism = 1
	}
	if parallelism > len(records) {
		parallelism = len(records)
	}

	n := len(records)
	_ = traverse.Each(parallelism, func(jobIdx int) error {
		startIdx := (jobIdx * n) / parallelism
		endIdx := ((jobIdx + 1) * n) / parallelism

		var c orf.Container
		for i := startIdx; i < endIdx; i++ {
			rec := records[i]
			if !c.Set(rec.Bases) {
				results[i] = Result{SeqName: rec.Name, SeqIndex: i, Err: errShortOrInvalid(rec)}
				continue
			}
			results[i] = Result{
				SeqName:   rec.Name,
				SeqIndex:  i,
				Locations: c.FindAll(opts),
			}
		}
		return nil
	})
	return results
}

type shortOrInvalidError struct {
	name string
}

func (e *shortOrInvalidError) Error() string {
	return "runner: sequence " + e.name + " is too short or contains a non-IUPAC byte"
}

func errShortOrInvalid(rec fasta.Record) error {
	return &shortOrInvalidError{name: rec.Name}
}
