package cli

import (
	"fmt"

	"github.com/alecthomas/kong"

	"github.com/robinvdvleuten/sintern/keyword"
	"github.com/robinvdvleuten/sintern/output"
	"github.com/robinvdvleuten/sintern/scanner"
)

type LookupCmd struct {
	File          FileOrStdin `help:"Source file to scan (use '-' for stdin)." arg:""`
	Names         []string    `help:"Identifiers to look up." arg:""`
	CaseSensitive bool        `help:"Do not lower-case basic identifiers before interning."`
}

func (cmd *LookupCmd) Run(ctx *kong.Context, globals *Globals) error {
	if err := cmd.File.EnsureContents(); err != nil {
		return err
	}

	s := newSession(ctx, globals, fmt.Sprintf("lookup %d name(s)", len(cmd.Names)))
	defer s.report()

	var opts []scanner.Option
	if cmd.CaseSensitive {
		opts = append(opts, scanner.WithCaseSensitive())
	}
	if _, err := s.scan([]*FileOrStdin{&cmd.File}, opts...); err != nil {
		return err
	}

	styles := output.NewStyles(ctx.Stdout)
	missing := 0
	for _, name := range cmd.Names {
		spelling := name
		if !cmd.CaseSensitive {
			spelling = scanner.Fold(name)
		}

		id, ok := s.names.GetID(spelling)
		if !ok {
			missing++
			printError(ctx.Stdout, fmt.Sprintf("%s: not found", name))
			continue
		}

		kind := "identifier"
		if keyword.IsKeyword(id) {
			kind = styles.Keyword("keyword")
		}
		printInfof(ctx.Stdout, "%s: %s %s, %d occurrence(s)",
			styles.Name(name), kind, styles.Identifier(fmt.Sprintf("#%d", id)), s.names.Tag(id))
	}

	if missing > 0 {
		return NewCommandError(1)
	}
	return nil
}
