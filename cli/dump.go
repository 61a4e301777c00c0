package cli

import (
	"bufio"
	"cmp"
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/kong"
	"github.com/mattn/go-runewidth"
	"golang.org/x/exp/slices"

	"github.com/robinvdvleuten/sintern/intern"
	"github.com/robinvdvleuten/sintern/keyword"
	"github.com/robinvdvleuten/sintern/output"
)

type DumpCmd struct {
	Files    []string `help:"Source files to scan (use '-' for stdin, or omit for stdin)." arg:"" optional:""`
	Sort     string   `help:"Sort rows by id, name or count." enum:"id,name,count" default:"id"`
	Keywords bool     `help:"Include reserved words that occur in the input." short:"k"`
	Output   string   `help:"Write the table to this file instead of stdout." short:"o" type:"path"`
	Force    bool     `help:"Overwrite the output file without asking." short:"f"`
}

// identifierRow is one line of the dump table.
type identifierRow struct {
	ID    intern.ID
	Name  string
	Count uint32
}

func (cmd *DumpCmd) Run(ctx *kong.Context, globals *Globals) error {
	files, err := inputs(cmd.Files)
	if err != nil {
		return err
	}

	s := newSession(ctx, globals, fmt.Sprintf("dump %d file(s)", len(files)))
	defer s.report()

	if _, err := s.scan(files); err != nil {
		return err
	}

	rows := collectRows(s.names, cmd.Keywords)
	sortRows(rows, cmd.Sort)

	if cmd.Output == "" {
		return writeRows(ctx.Stdout, output.NewStyles(ctx.Stdout), rows)
	}

	if _, err := os.Stat(cmd.Output); err == nil && !cmd.Force {
		confirmed, err := promptYesNo(fmt.Sprintf("File %q already exists. Overwrite it?", cmd.Output))
		if err != nil {
			return fmt.Errorf("failed to read confirmation: %w", err)
		}
		if !confirmed {
			return fmt.Errorf("output file exists: %s (use --force to overwrite)", cmd.Output)
		}
	}

	out, err := os.Create(cmd.Output)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}

	if err := writeRows(out, output.NewStyles(out), rows); err != nil {
		_ = out.Close()
		return err
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}

	printSuccess(ctx.Stderr, fmt.Sprintf("Wrote %d identifiers to %s", len(rows), output.NewStyles(ctx.Stderr).FilePath(cmd.Output)))
	return nil
}

// collectRows lists interned identifiers. Reserved words are included only
// when keywords is set and they occurred at least once; internal names are
// never listed.
func collectRows(names *intern.Interner, keywords bool) []identifierRow {
	var rows []identifierRow
	for id, name := range names.All() {
		count := names.Tag(id)
		if keyword.IsReserved(id) {
			if !keywords || !keyword.IsKeyword(id) || count == 0 {
				continue
			}
		}
		rows = append(rows, identifierRow{ID: id, Name: name, Count: count})
	}
	return rows
}

func sortRows(rows []identifierRow, by string) {
	switch by {
	case "name":
		slices.SortFunc(rows, func(a, b identifierRow) int {
			return cmp.Compare(a.Name, b.Name)
		})
	case "count":
		slices.SortStableFunc(rows, func(a, b identifierRow) int {
			return cmp.Compare(b.Count, a.Count)
		})
	default:
		slices.SortFunc(rows, func(a, b identifierRow) int {
			return cmp.Compare(a.ID, b.ID)
		})
	}
}

// writeRows writes an aligned table. Names are padded by display width so
// that wide characters line up in a terminal; styling is applied after
// padding so escape sequences do not count towards the width.
func writeRows(w io.Writer, styles *output.Styles, rows []identifierRow) error {
	width := runewidth.StringWidth("NAME")
	for _, row := range rows {
		width = max(width, runewidth.StringWidth(row.Name))
	}

	bw := bufio.NewWriter(w)
	_, _ = fmt.Fprintln(bw, styles.Keyword(fmt.Sprintf("%s  %8s  %6s", runewidth.FillRight("NAME", width), "COUNT", "ID")))
	for _, row := range rows {
		name := runewidth.FillRight(row.Name, width)
		if keyword.IsKeyword(row.ID) {
			name = styles.Keyword(name)
		} else {
			name = styles.Name(name)
		}
		_, _ = fmt.Fprintf(bw, "%s  %8d  %s\n", name, row.Count, styles.Identifier(fmt.Sprintf("%6d", row.ID)))
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("failed to write identifiers: %w", err)
	}
	return nil
}
