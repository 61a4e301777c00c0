package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/kong"

	"github.com/robinvdvleuten/sintern/digest"
	"github.com/robinvdvleuten/sintern/telemetry"
)

type DigestCmd struct {
	File FileOrStdin `help:"Input filename (use '-' for stdin, or omit for stdin)." arg:"" optional:""`
	Hex  bool        `help:"Print the digest as 40 hex digits, like sha1sum."`
}

func (cmd *DigestCmd) Run(ctx *kong.Context, globals *Globals) error {
	if err := cmd.File.EnsureContents(); err != nil {
		return err
	}

	s := newSession(ctx, globals, "digest "+cmd.File.Filename)
	defer s.report()

	timer := telemetry.StartTimer(s.ctx, "digest.sum")
	state, err := cmd.sum()
	timer.End()
	if err != nil {
		return err
	}

	if cmd.Hex {
		_, _ = fmt.Fprintf(ctx.Stdout, "%x  %s\n", state.Bytes(), cmd.File.Filename)
		return nil
	}
	_, _ = fmt.Fprintf(ctx.Stdout, "%s  %s\n", state, cmd.File.Filename)
	return nil
}

// sum streams files through the digest rather than reading them whole.
func (cmd *DigestCmd) sum() (digest.State, error) {
	if cmd.File.IsStdin() {
		return digest.Sum(cmd.File.Contents), nil
	}

	f, err := os.Open(cmd.File.Filename)
	if err != nil {
		return digest.State{}, fmt.Errorf("failed to open file: %w", err)
	}
	defer func() { _ = f.Close() }()

	d := digest.New()
	if _, err := io.Copy(d, f); err != nil {
		return digest.State{}, fmt.Errorf("failed to read file: %w", err)
	}
	return d.Sum(), nil
}
