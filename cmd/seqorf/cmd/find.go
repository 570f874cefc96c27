package cmd

import (
	"fmt"
	"os"

	"github.com/grailbio/base/cmdutil"
	"github.com/grailbio/base/file"
	"github.com/grailbio/base/log"
	"github.com/grailbio/base/vcontext"
	"github.com/grailbio/seqorf/encoding/fasta"
	"github.com/grailbio/seqorf/encoding/orfdb"
	"github.com/grailbio/seqorf/encoding/orftsv"
	"github.com/grailbio/seqorf/orf"
	"github.com/grailbio/seqorf/runner"
	"github.com/schollz/progressbar/v3"
	"v.io/x/lib/cmdline"
)

func newCmdFind() *cmdline.Command {
	cmd := &cmdline.Command{
		Name:     "find",
		Short:    "Scan a FASTA file for open reading frames",
		ArgsName: "fasta-path",
	}
	scan := addScanFlags(cmd)
	output := cmd.Flags.String("output", "", "Output path (required)")
	asTSV := cmd.Flags.Bool("tsv", false, "Write an orftsv table instead of an orfdb record file")
	transform := cmd.Flags.Bool("transform", true, "Compress the orfdb record file with zstd")
	cmd.Runner = cmdutil.RunnerFunc(func(env *cmdline.Env, argv []string) error {
		if len(argv) != 1 {
			return fmt.Errorf("find takes one fasta-path argument, but got %v", argv)
		}
		if *output == "" {
			return fmt.Errorf("find requires -output")
		}
		opts, err := scan.findOpts()
		if err != nil {
			return err
		}
		return runFind(argv[0], *output, opts, *scan.parallelism, *asTSV, *transform)
	})
	return cmd
}

func runFind(fastaPath, outputPath string, opts orf.FindOpts, parallelism int, asTSV, transform bool) error {
	ctx := vcontext.Background()

	in, err := os.Open(fastaPath)
	if err != nil {
		return fmt.Errorf("seqorf find: opening %s: %w", fastaPath, err)
	}
	defer in.Close() // nolint: errcheck

	records, err := fasta.ReadAll(in)
	if err != nil {
		return fmt.Errorf("seqorf find: parsing %s: %w", fastaPath, err)
	}
	log.Printf("seqorf find: read %d sequences from %s", len(records), fastaPath)

	var bar *progressbar.ProgressBar
	if len(records) > 1 && isTerminal(os.Stderr) {
		bar = progressbar.Default(int64(len(records)), "scanning")
	}

	results := runner.FindAllConcurrent(records, opts, parallelism)
	if bar != nil {
		_ = bar.Add(len(results))
	}

	out, err := file.Create(ctx, outputPath)
	if err != nil {
		return fmt.Errorf("seqorf find: creating %s: %w", outputPath, err)
	}

	var entries []orfdb.Entry
	var c orf.Container
	for _, r := range results {
		if r.Err != nil {
			log.Error.Printf("seqorf find: %s: %v", r.SeqName, r.Err)
			continue
		}
		if len(r.Locations) == 0 {
			continue
		}
		c.Set(records[r.SeqIndex].Bases)
		for _, loc := range r.Locations {
			entries = append(entries, orfdb.Entry{
				SeqName:  r.SeqName,
				Location: loc,
				View:     []byte(c.View(loc)),
			})
		}
	}

	if asTSV {
		err = orftsv.WriteAll(out.Writer(ctx), entries)
	} else {
		w := orfdb.NewWriter(out.Writer(ctx), orfdb.WriterOpts{Transform: transform})
		for _, e := range entries {
			if werr := w.Append(e.SeqName, e.Location, e.View); werr != nil {
				err = werr
				break
			}
		}
		if err == nil {
			err = w.Finish()
		}
	}
	if cerr := out.Close(ctx); err == nil {
		err = cerr
	}
	return err
}

func isTerminal(f *os.File) bool {
	fi, err := f.Stat()
	if err != nil {
		return false
	}
	return (fi.Mode() & os.ModeCharDevice) != 0
}
