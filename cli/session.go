package cli

import (
	"context"
	stdErrors "errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"sync"

	"github.com/alecthomas/kong"

	"github.com/robinvdvleuten/sintern/intern"
	"github.com/robinvdvleuten/sintern/output"
	"github.com/robinvdvleuten/sintern/scanner"
	"github.com/robinvdvleuten/sintern/telemetry"
)

// session holds what a command needs to scan its inputs: one interner
// shared by all files, a logger and the optional telemetry collector.
type session struct {
	ctx    context.Context
	names  *intern.Interner
	log    *slog.Logger
	stderr io.Writer

	collector telemetry.Collector
	root      telemetry.Timer
	once      sync.Once
}

func newSession(kctx *kong.Context, globals *Globals, name string) *session {
	s := &session{
		ctx:    context.Background(),
		log:    globals.Logger(kctx.Stderr),
		stderr: kctx.Stderr,
	}

	if globals.Telemetry {
		s.collector = telemetry.NewTimingCollector()
		s.ctx = telemetry.WithCollector(s.ctx, s.collector)

		s.root = s.collector.Start(name)
		s.ctx = telemetry.WithRootTimer(s.ctx, s.root)
	}

	s.reset(globals.Capacity)
	return s
}

// reset starts over with an empty interner.
func (s *session) reset(capacity int) {
	s.names = scanner.NewNames(capacity)
	s.log.Debug("interner created", "capacity", capacity)
}

// report ends the root timer and prints the timings, once.
func (s *session) report() {
	s.once.Do(func() {
		if s.collector != nil {
			s.root.End()
			styles := output.NewStyles(s.stderr)
			_, _ = fmt.Fprintln(s.stderr)
			if Version != "" {
				_, _ = fmt.Fprintln(s.stderr, styles.Dim("sintern "+Version))
			}
			s.collector.Report(s.stderr, styles)
		}
	})
}

// scanned is the outcome of scanning one input.
type scanned struct {
	Filename string
	Source   []byte
	Tokens   []scanner.Token
}

// scan tokenizes every input into the session's interner. Lexical errors
// are rendered with source context on stderr and reported as a
// CommandError.
func (s *session) scan(files []*FileOrStdin, opts ...scanner.Option) ([]scanned, error) {
	results := make([]scanned, 0, len(files))

	for _, f := range files {
		source, err := f.Read()
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", f.Filename, err)
		}

		before := s.names.Stats()
		tokens, err := scanner.ScanBytes(s.ctx, s.names, f.Filename, source, opts...)
		if err != nil {
			var scanErr *scanner.Error
			if stdErrors.As(err, &scanErr) {
				_, _ = fmt.Fprintln(s.stderr, NewErrorRenderer(source).Render(err))
				_, _ = fmt.Fprintln(s.stderr)
				printError(s.stderr, fmt.Sprintf("scan error in %s", filepath.Base(f.Filename)))
				return nil, NewCommandError(1)
			}
			return nil, err
		}

		after := s.names.Stats()
		s.log.Debug("scanned",
			"file", f.Filename,
			"tokens", len(tokens),
			"new_identifiers", after.Entries-before.Entries,
		)
		if after.Buffers > before.Buffers {
			s.log.Info("arena grew",
				"buffers", after.Buffers,
				"capacity", after.CurrentCapacity,
			)
		}

		results = append(results, scanned{Filename: f.Filename, Source: source, Tokens: tokens})
	}

	return results, nil
}
