package cli

import (
	"io"
	"log/slog"
)

// Version is the build version shown above telemetry reports. The sintern
// binary sets it at startup.
var Version = ""

// Globals defines global flags available to all commands.
type Globals struct {
	Telemetry bool   `help:"Show timing telemetry for operations."`
	LogLevel  string `help:"Log level for diagnostics on stderr." enum:"debug,info,warn,error,off" default:"off" env:"SINTERN_LOG_LEVEL"`
	Capacity  int    `help:"Size in bytes of the first string buffer of the interner." default:"4096" env:"SINTERN_CAPACITY"`
}

// Logger returns a text logger writing to w at the configured level.
func (g *Globals) Logger(w io.Writer) *slog.Logger {
	if g.LogLevel == "" || g.LogLevel == "off" {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(g.LogLevel)); err != nil {
		level = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

type Commands struct {
	Globals

	Scan   ScanCmd   `cmd:"" help:"Scan source files and intern their identifiers."`
	Dump   DumpCmd   `cmd:"" help:"List the identifiers of source files with their occurrence counts."`
	Stats  StatsCmd  `cmd:"" help:"Show interner memory statistics for source files."`
	Lookup LookupCmd `cmd:"" help:"Look up identifiers by name in a source file."`
	Digest DigestCmd `cmd:"" help:"Print the SHA-1 digest of a file as five 32-bit words."`
}
