// Command seqorf finds, converts, and inspects open reading frames in
// nucleotide FASTA files.
package main

import (
	"github.com/grailbio/base/grail"
	"github.com/grailbio/seqorf/cmd/seqorf/cmd"
)

func main() {
	cleanup := grail.Init()
	defer cleanup()
	cmd.Run()
}
