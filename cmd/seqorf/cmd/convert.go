package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/grailbio/base/cmdutil"
	"github.com/grailbio/base/file"
	"github.com/grailbio/base/vcontext"
	"github.com/grailbio/seqorf/encoding/orfdb"
	"github.com/grailbio/seqorf/encoding/orftsv"
	"v.io/x/lib/cmdline"
)

type fileFormat int

const (
	formatUnknown fileFormat = iota
	formatOrfdb
	formatOrftsv
)

func guessFormat(path string) fileFormat {
	switch {
	case strings.HasSuffix(path, ".tsv"):
		return formatOrftsv
	case strings.HasSuffix(path, ".orfdb") || strings.HasSuffix(path, ".rio"):
		return formatOrfdb
	default:
		return formatUnknown
	}
}

func parseFormat(s string) fileFormat {
	switch s {
	case "orfdb":
		return formatOrfdb
	case "tsv", "orftsv":
		return formatOrftsv
	default:
		return formatUnknown
	}
}

func newCmdConvert() *cmdline.Command {
	cmd := &cmdline.Command{
		Name:     "convert",
		Short:    "Convert between orfdb and orftsv",
		ArgsName: "srcpath destpath",
	}
	formatFlag := cmd.Flags.String("format", "", `Output format, "orfdb" or "tsv". If empty, guessed from destpath's extension.`)
	transform := cmd.Flags.Bool("transform", true, "Compress an orfdb destination with zstd")
	cmd.Runner = cmdutil.RunnerFunc(func(env *cmdline.Env, argv []string) error {
		if len(argv) != 2 {
			return fmt.Errorf("convert takes srcpath destpath, but found %v", argv)
		}
		return runConvert(argv[0], argv[1], *formatFlag, *transform)
	})
	return cmd
}

func runConvert(srcPath, destPath, format string, transform bool) error {
	ctx := vcontext.Background()

	srcFormat := guessFormat(srcPath)
	if srcFormat == formatUnknown {
		return fmt.Errorf("seqorf convert: cannot determine format of %s", srcPath)
	}
	destFormat := parseFormat(format)
	if destFormat == formatUnknown {
		destFormat = guessFormat(destPath)
	}
	if destFormat == formatUnknown {
		return fmt.Errorf("seqorf convert: cannot determine format of %s", destPath)
	}
	if srcFormat == destFormat {
		return fmt.Errorf("seqorf convert: source and destination are already the same format")
	}

	entries, err := readEntries(ctx, srcPath, srcFormat)
	if err != nil {
		return err
	}
	return writeEntries(ctx, destPath, destFormat, entries, transform)
}

func readEntries(ctx context.Context, path string, format fileFormat) ([]orfdb.Entry, error) {
	in, err := file.Open(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("seqorf convert: opening %s: %w", path, err)
	}
	defer in.Close(ctx) // nolint: errcheck

	switch format {
	case formatOrftsv:
		return orftsv.ReadAll(in.Reader(ctx))
	default:
		r, err := orfdb.NewReader(in.Reader(ctx))
		if err != nil {
			return nil, err
		}
		var entries []orfdb.Entry
		for r.Scan() {
			entries = append(entries, r.Record())
		}
		return entries, r.Err()
	}
}

func writeEntries(ctx context.Context, path string, format fileFormat, entries []orfdb.Entry, transform bool) error {
	out, err := file.Create(ctx, path)
	if err != nil {
		return fmt.Errorf("seqorf convert: creating %s: %w", path, err)
	}

	switch format {
	case formatOrftsv:
		err = orftsv.WriteAll(out.Writer(ctx), entries)
	default:
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
