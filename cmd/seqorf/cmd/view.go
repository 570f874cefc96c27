package cmd

import (
	"fmt"

	"github.com/grailbio/base/cmdutil"
	"github.com/grailbio/base/file"
	"github.com/grailbio/base/vcontext"
	"github.com/grailbio/seqorf/encoding/orfdb"
	"github.com/grailbio/seqorf/orf"
	"v.io/x/lib/cmdline"
)

func newCmdView() *cmdline.Command {
	cmd := &cmdline.Command{
		Name:     "view",
		Short:    "Print each record of an orfdb file as a header token and its sequence",
		ArgsName: "orfdb-path",
	}
	cmd.Runner = cmdutil.RunnerFunc(func(env *cmdline.Env, argv []string) error {
		if len(argv) != 1 {
			return fmt.Errorf("view takes one orfdb-path argument, but got %v", argv)
		}
		return runView(env, argv[0])
	})
	return cmd
}

func runView(env *cmdline.Env, path string) error {
	ctx := vcontext.Background()
	in, err := file.Open(ctx, path)
	if err != nil {
		return fmt.Errorf("seqorf view: opening %s: %w", path, err)
	}
	defer in.Close(ctx) // nolint: errcheck

	r, err := orfdb.NewReader(in.Reader(ctx))
	if err != nil {
		return err
	}
	for r.Scan() {
		e := r.Record()
		token := orf.EncodeHeaderToken(e.Location)
		fmt.Fprintf(env.Stdout, ">%s %s\n%s\n", e.SeqName, token, e.View)
	}
	return r.Err()
}
