package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"

	"github.com/alecthomas/kong"
	"github.com/dustin/go-humanize"

	"github.com/robinvdvleuten/sintern/intern"
	"github.com/robinvdvleuten/sintern/keyword"
	"github.com/robinvdvleuten/sintern/output"
	"github.com/robinvdvleuten/sintern/scanner"
)

type ScanCmd struct {
	Files         []string `help:"Source files to scan (use '-' for stdin, or omit for stdin)." arg:"" optional:""`
	Tokens        bool     `help:"Print every token instead of a summary." short:"t"`
	CaseSensitive bool     `help:"Do not lower-case basic identifiers before interning."`
	Watch         bool     `help:"Rescan whenever one of the files changes." short:"w"`
}

func (cmd *ScanCmd) Run(ctx *kong.Context, globals *Globals) error {
	files, err := inputs(cmd.Files)
	if err != nil {
		return err
	}

	s := newSession(ctx, globals, fmt.Sprintf("scan %d file(s)", len(files)))
	defer s.report()

	if err := cmd.scanOnce(ctx, s, files); err != nil && !cmd.Watch {
		return err
	}

	if !cmd.Watch {
		return nil
	}

	var paths []string
	for _, f := range files {
		if !f.IsStdin() {
			paths = append(paths, f.GetAbsoluteFilename())
		}
	}
	if len(paths) == 0 {
		return fmt.Errorf("--watch needs at least one file")
	}

	runCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	printInfof(ctx.Stderr, "Watching %d file(s), press Ctrl+C to stop", len(paths))

	return watchFiles(runCtx, s.log, paths, func() {
		s.reset(globals.Capacity)
		_, _ = fmt.Fprintln(ctx.Stdout)
		// Errors were already rendered; keep watching.
		_ = cmd.scanOnce(ctx, s, files)
	})
}

func (cmd *ScanCmd) options() []scanner.Option {
	var opts []scanner.Option
	if cmd.CaseSensitive {
		opts = append(opts, scanner.WithCaseSensitive())
	}
	return opts
}

func (cmd *ScanCmd) scanOnce(ctx *kong.Context, s *session, files []*FileOrStdin) error {
	results, err := s.scan(files, cmd.options()...)
	if err != nil {
		return err
	}

	styles := output.NewStyles(ctx.Stdout)

	if cmd.Tokens {
		for _, r := range results {
			printTokens(ctx.Stdout, styles, s.names, r)
		}
		return nil
	}

	total := 0
	for _, r := range results {
		total += len(r.Tokens) - 1
		printInfof(ctx.Stdout, "%s: %s tokens, %s bytes",
			styles.FilePath(r.Filename),
			humanize.Comma(int64(len(r.Tokens)-1)),
			humanize.Bytes(uint64(len(r.Source))),
		)
	}

	identifiers := s.names.Len() - int(keyword.Last) - 1
	printSuccess(ctx.Stdout, fmt.Sprintf("Scanned %s tokens, %s distinct identifiers",
		humanize.Comma(int64(total)),
		humanize.Comma(int64(identifiers)),
	))

	return nil
}

// printTokens displays tokens in the format: TYPE line:col "content" #id "name".
func printTokens(w io.Writer, styles *output.Styles, names *intern.Interner, r scanned) {
	file := styles.FilePath(filepath.Base(r.Filename))

	for _, token := range r.Tokens {
		if token.Type == scanner.EOF {
			continue
		}

		kind := fmt.Sprintf("%-10s", token.Type.String())
		if token.Type == scanner.KEYWORD {
			kind = styles.Keyword(kind)
		}
		content := strconv.Quote(token.String(r.Source))

		if token.HasID() {
			_, _ = fmt.Fprintf(w, "%s:%s %d:%d    %s %s %s\n",
				file,
				kind,
				token.Line,
				token.Column,
				content,
				styles.Identifier(fmt.Sprintf("#%d", token.ID)),
				styles.Name(strconv.Quote(names.Lookup(token.ID))))
			continue
		}

		_, _ = fmt.Fprintf(w, "%s:%s %d:%d    %s\n",
			file,
			kind,
			token.Line,
			token.Column,
			content)
	}
}
