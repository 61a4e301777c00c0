package cli

import (
	"fmt"

	"github.com/alecthomas/kong"
	"github.com/alecthomas/repr"
	"github.com/dustin/go-humanize"
)

type StatsCmd struct {
	Files []string `help:"Source files to scan (use '-' for stdin, or omit for stdin)." arg:"" optional:""`
	Raw   bool     `help:"Print the statistics as a Go value."`
}

func (cmd *StatsCmd) Run(ctx *kong.Context, globals *Globals) error {
	files, err := inputs(cmd.Files)
	if err != nil {
		return err
	}

	s := newSession(ctx, globals, fmt.Sprintf("stats %d file(s)", len(files)))
	defer s.report()

	if _, err := s.scan(files); err != nil {
		return err
	}

	stats := s.names.Stats()

	if cmd.Raw {
		_, _ = fmt.Fprintln(ctx.Stdout, repr.String(stats, repr.Indent("  ")))
		return nil
	}

	used := float64(0)
	if stats.BytesReserved > 0 {
		used = float64(stats.BytesUsed) / float64(stats.BytesReserved) * 100
	}

	_, _ = fmt.Fprintf(ctx.Stdout, "%-18s %s\n", "Identifiers", humanize.Comma(int64(stats.Entries)))
	_, _ = fmt.Fprintf(ctx.Stdout, "%-18s %s\n", "Registered", humanize.Comma(int64(stats.Registered)))
	_, _ = fmt.Fprintf(ctx.Stdout, "%-18s %d\n", "Buffers", stats.Buffers)
	_, _ = fmt.Fprintf(ctx.Stdout, "%-18s %s\n", "Current buffer", humanize.IBytes(uint64(stats.CurrentCapacity)))
	_, _ = fmt.Fprintf(ctx.Stdout, "%-18s %s of %s (%.1f%%)\n", "Arena bytes",
		humanize.IBytes(uint64(stats.BytesUsed)),
		humanize.IBytes(uint64(stats.BytesReserved)),
		used,
	)

	return nil
}
