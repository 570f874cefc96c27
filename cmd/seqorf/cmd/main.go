// Package cmd implements the seqorf command tree.
package cmd

import (
	"fmt"
	"log"

	"github.com/grailbio/seqorf/orf"
	"v.io/x/lib/cmdline"
)

// scanFlags are the frame/filter flags shared by the find command.
type scanFlags struct {
	minLength   *int
	maxLength   *int
	maxGaps     *int
	forward     *bool
	reverse     *bool
	frames      *string
	extendStart *bool
	extendEnd   *bool
	parallelism *int
}

func addScanFlags(cmd *cmdline.Command) *scanFlags {
	return &scanFlags{
		minLength:   cmd.Flags.Int("min-length", 0, "Discard ORFs with length (in codons) <= this value"),
		maxLength:   cmd.Flags.Int("max-length", 0, "Discard ORFs with length (in codons) greater than this value; 0 means unbounded"),
		maxGaps:     cmd.Flags.Int("max-gaps", 0, "Discard ORFs containing more than this many gap/N codons"),
		forward:     cmd.Flags.Bool("forward", true, "Scan the forward strand"),
		reverse:     cmd.Flags.Bool("reverse", true, "Scan the reverse complement strand"),
		frames:      cmd.Flags.String("frames", "1,2,3", "Comma-separated reading frames to scan (subset of 1,2,3)"),
		extendStart: cmd.Flags.Bool("extend-start", false, "Open a new ORF only at an actual start codon"),
		extendEnd:   cmd.Flags.Bool("extend-end", false, "Skip a stop codon that would close too short an ORF"),
		parallelism: cmd.Flags.Int("parallelism", 4, "Number of sequences to scan concurrently"),
	}
}

func (f *scanFlags) frameMask() (int, error) {
	mask := 0
	for _, c := range *f.frames {
		switch c {
		case '1':
			mask |= orf.Frame1
		case '2':
			mask |= orf.Frame2
		case '3':
			mask |= orf.Frame3
		case ',':
			continue
		default:
			return 0, fmt.Errorf("seqorf: -frames must be a comma-separated subset of 1,2,3, got %q", *f.frames)
		}
	}
	return mask, nil
}

func (f *scanFlags) findOpts() (orf.FindOpts, error) {
	mask, err := f.frameMask()
	if err != nil {
		return orf.FindOpts{}, err
	}
	opts := orf.FindOpts{
		MinLength: *f.minLength,
		MaxLength: *f.maxLength,
		MaxGaps:   *f.maxGaps,
	}
	if *f.forward {
		opts.ForwardFrames = mask
	}
	if *f.reverse {
		opts.ReverseFrames = mask
	}
	if *f.extendStart {
		opts.Extend |= orf.ExtendStart
	}
	if *f.extendEnd {
		opts.Extend |= orf.ExtendEnd
	}
	return opts, nil
}

// Run parses the command line and dispatches to the selected subcommand.
func Run() {
	log.SetFlags(log.Ldate | log.Ltime | log.Lmicroseconds | log.Lshortfile)
	cmdline.HideGlobalFlagsExcept()
	cmdline.Main(&cmdline.Command{
		Name:     "seqorf",
		Short:    "Find and manipulate open reading frames in nucleotide sequences",
		LookPath: false,
		Children: []*cmdline.Command{
			newCmdFind(),
			newCmdConvert(),
			newCmdView(),
		},
	})
}
