// Package output provides styling helpers for terminal output.
package output

import (
	"io"

	"github.com/muesli/termenv"
)

// ANSI colour indices used by the styles.
const (
	yellow  = "3"
	magenta = "5"
	cyan    = "6"
)

// Styles renders text with ANSI styling when the writer supports it.
// Writers that are not terminals get the text unchanged.
type Styles struct {
	output *termenv.Output
}

// NewStyles creates a Styles instance for w. The colour profile is
// detected from w unless an option such as termenv.WithProfile sets it.
func NewStyles(w io.Writer, opts ...termenv.OutputOption) *Styles {
	return &Styles{
		output: termenv.NewOutput(w, opts...),
	}
}

func (s *Styles) colored(text, color string) termenv.Style {
	return s.output.String(text).Foreground(s.output.Color(color))
}

// FilePath styles the name of an input or output file.
func (s *Styles) FilePath(text string) string {
	return s.colored(text, cyan).String()
}

// Identifier styles an intern.ID.
func (s *Styles) Identifier(text string) string {
	return s.colored(text, magenta).String()
}

// Name styles an interned spelling.
func (s *Styles) Name(text string) string {
	return s.colored(text, yellow).String()
}

// Keyword styles a reserved word or a heading.
func (s *Styles) Keyword(text string) string {
	return s.output.String(text).Bold().String()
}

// Dim styles secondary information, such as tree lines.
func (s *Styles) Dim(text string) string {
	return s.output.String(text).Faint().String()
}

// Warning styles something that deserves attention, such as a slow timing.
func (s *Styles) Warning(text string) string {
	return s.colored(text, yellow).Bold().String()
}
