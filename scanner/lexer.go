// Package scanner tokenizes source text and interns every identifier it
// meets.
//
// The lexer is zero-copy: tokens store byte offsets into the source rather
// than strings. Identifier spellings go through the interner instead, so
// later phases compare identifiers by intern.ID. Basic identifiers are case
// insensitive and lower-cased before interning; extended identifiers
// (\Like This\) are kept verbatim.
//
// Keywords are recognised by identifier: the interner is expected to start
// with keyword.Reserve, so any interned spelling below keyword.Count is a
// reserved word. Each scanned identifier increments its intern tag, giving
// the host an occurrence count per name.
package scanner

import (
	"context"
	"fmt"
	"math"
	"path/filepath"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/dustin/go-humanize"

	"github.com/robinvdvleuten/sintern/intern"
	"github.com/robinvdvleuten/sintern/keyword"
	"github.com/robinvdvleuten/sintern/telemetry"
)

// Lexer tokenizes source code.
type Lexer struct {
	source   []byte
	filename string
	pos      int
	line     int
	column   int
	tokens   []Token

	names   *intern.Interner
	scratch []byte // lower-cased identifier being interned

	caseSensitive bool
	countTags     bool
}

// Option configures a Lexer.
type Option func(*Lexer)

// WithCaseSensitive interns basic identifiers as written instead of
// lower-casing them. Keywords are then only recognised in lower case.
func WithCaseSensitive() Option {
	return func(l *Lexer) {
		l.caseSensitive = true
	}
}

// WithoutTagCounting leaves intern tags untouched, for hosts that use the
// tag for something else.
func WithoutTagCounting() Option {
	return func(l *Lexer) {
		l.countTags = false
	}
}

// NewNames returns an interner with the keywords already reserved.
func NewNames(capacity int) *intern.Interner {
	in := intern.New(capacity)
	keyword.Reserve(in)
	return in
}

// NewLexer creates a lexer that interns identifiers into names. An empty
// interner gets the keywords reserved first; a non-empty one must already
// have them, or NewLexer panics.
func NewLexer(source []byte, filename string, names *intern.Interner, opts ...Option) *Lexer {
	if names.Len() == 0 {
		keyword.Reserve(names)
	} else if id, ok := names.GetID(keyword.Name(keyword.Begin)); !ok || id != keyword.Begin {
		panic("scanner: interner does not start with the reserved keywords")
	}

	// Empirically about one token per 6 bytes of source.
	estimatedTokens := len(source)/6 + 16

	l := &Lexer{
		source:    source,
		filename:  filename,
		line:      1,
		column:    1,
		tokens:    make([]Token, 0, estimatedTokens),
		names:     names,
		countTags: true,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Names returns the interner identifiers are recorded in.
func (l *Lexer) Names() *intern.Interner {
	return l.names
}

// ScanBytes tokenizes source, recording the work in the telemetry collector
// carried by ctx.
func ScanBytes(ctx context.Context, names *intern.Interner, filename string, source []byte, opts ...Option) ([]Token, error) {
	timer := telemetry.StartTimer(ctx, fmt.Sprintf("scanner.scan %s (%s)", filepath.Base(filename), humanize.Bytes(uint64(len(source)))))
	defer timer.End()

	return NewLexer(source, filename, names, opts...).ScanAll()
}

// ScanAll lexes the entire source and returns all tokens, terminated by an
// EOF token. On error it returns the tokens scanned so far.
func (l *Lexer) ScanAll() ([]Token, error) {
	for l.pos < len(l.source) {
		l.skipWhitespace()

		if l.pos >= len(l.source) {
			break
		}

		if l.peek() == '-' && l.peekAt(1) == '-' {
			l.skipComment()
			continue
		}

		tok, err := l.scanToken()
		if err != nil {
			return l.tokens, err
		}
		l.tokens = append(l.tokens, tok)
	}

	l.tokens = append(l.tokens, Token{
		Type:   EOF,
		Start:  l.pos,
		End:    l.pos,
		Line:   l.line,
		Column: l.column,
	})

	return l.tokens, nil
}

func (l *Lexer) scanToken() (Token, error) {
	start := l.pos
	line := l.line
	col := l.column

	ch := l.source[l.pos]

	switch {
	case isASCIILetter(ch):
		return l.scanIdentifier(start, line, col)

	case ch >= utf8.RuneSelf:
		r, size := utf8.DecodeRune(l.source[l.pos:])
		if r == utf8.RuneError && size <= 1 {
			return Token{}, l.errorf(ErrInvalidUTF8, "invalid UTF-8 byte 0x%02x", ch)
		}
		if unicode.IsLetter(r) {
			return l.scanIdentifier(start, line, col)
		}
		l.advanceN(size)
		return Token{Type: ILLEGAL, Start: start, End: l.pos, Line: line, Column: col}, nil

	case ch == '\\':
		return l.scanExtendedIdentifier(start, line, col)

	case isDigit(ch):
		return l.scanNumber(start, line, col), nil

	case ch == '"':
		return l.scanString(start, line, col)

	case ch == '\'' && l.peekAt(2) == '\'':
		l.advanceN(3)
		return Token{Type: CHAR, Start: start, End: l.pos, Line: line, Column: col}, nil
	}

	if n := delimiterLen(l.source[l.pos:]); n > 0 {
		l.advanceN(n)
		return Token{Type: DELIM, Start: start, End: l.pos, Line: line, Column: col}, nil
	}

	l.advance()
	return Token{Type: ILLEGAL, Start: start, End: l.pos, Line: line, Column: col}, nil
}

// scanIdentifier scans letter { [_] letter_or_digit } and interns it.
// Non-ASCII letters and digits are accepted.
func (l *Lexer) scanIdentifier(start, line, col int) (Token, error) {
	for l.pos < len(l.source) {
		ch := l.source[l.pos]
		if ch < utf8.RuneSelf {
			if !isASCIILetter(ch) && !isDigit(ch) && ch != '_' {
				break
			}
			l.advance()
			continue
		}

		r, size := utf8.DecodeRune(l.source[l.pos:])
		if r == utf8.RuneError && size <= 1 {
			return Token{}, l.errorf(ErrInvalidUTF8, "invalid UTF-8 byte 0x%02x in identifier", ch)
		}
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			break
		}
		l.advanceN(size)
	}

	word := l.source[start:l.pos]
	if !l.caseSensitive {
		word = l.fold(word)
	}
	id := l.record(word)

	typ := IDENT
	if keyword.IsKeyword(id) {
		typ = KEYWORD
	}
	return Token{Type: typ, Start: start, End: l.pos, Line: line, Column: col, ID: id}, nil
}

// scanExtendedIdentifier scans \text\ where a doubled backslash stands for
// one backslash. The spelling, delimiters included, is interned verbatim.
func (l *Lexer) scanExtendedIdentifier(start, line, col int) (Token, error) {
	if err := l.scanDelimited('\\'); err != nil {
		return Token{}, err
	}
	id := l.record(l.source[start:l.pos])
	return Token{Type: IDENT, Start: start, End: l.pos, Line: line, Column: col, ID: id}, nil
}

// scanString scans "text" where a doubled quote stands for one quote.
func (l *Lexer) scanString(start, line, col int) (Token, error) {
	if err := l.scanDelimited('"'); err != nil {
		return Token{}, err
	}
	return Token{Type: STRING, Start: start, End: l.pos, Line: line, Column: col}, nil
}

// scanDelimited consumes an opening quote and everything up to the matching
// closing quote.
func (l *Lexer) scanDelimited(quote byte) error {
	startPos := l.position()
	l.advance()

	for l.pos < len(l.source) {
		ch := l.source[l.pos]
		switch {
		case ch == quote && l.peekAt(1) == quote:
			l.advanceN(2)
		case ch == quote:
			l.advance()
			return nil
		case ch == '\n':
			return &Error{Pos: startPos, Message: fmt.Sprintf("%c literal is not closed on this line", quote), Err: ErrUnterminated}
		case ch >= utf8.RuneSelf:
			r, size := utf8.DecodeRune(l.source[l.pos:])
			if r == utf8.RuneError && size <= 1 {
				return l.errorf(ErrInvalidUTF8, "invalid UTF-8 byte 0x%02x in literal", ch)
			}
			l.advanceN(size)
		default:
			l.advance()
		}
	}

	return &Error{Pos: startPos, Message: fmt.Sprintf("%c literal is not closed before end of input", quote), Err: ErrUnterminated}
}

// scanNumber scans decimal and based literals:
//
//	123  1_000  3.14  1.0e-3  16#FF#  2#1010_1010#
func (l *Lexer) scanNumber(start, line, col int) Token {
	l.skipDigits()

	if l.peek() == '#' {
		l.advance()
		for l.pos < len(l.source) && (isHexDigit(l.source[l.pos]) || l.source[l.pos] == '_' || l.source[l.pos] == '.') {
			l.advance()
		}
		if l.peek() == '#' {
			l.advance()
		}
	} else if l.peek() == '.' && isDigit(l.peekAt(1)) {
		l.advance()
		l.skipDigits()
	}

	if ch := l.peek(); ch == 'e' || ch == 'E' {
		next := l.peekAt(1)
		if isDigit(next) {
			l.advance()
			l.skipDigits()
		} else if (next == '+' || next == '-') && isDigit(l.peekAt(2)) {
			l.advanceN(2)
			l.skipDigits()
		}
	}

	return Token{Type: NUMBER, Start: start, End: l.pos, Line: line, Column: col}
}

func (l *Lexer) skipDigits() {
	for l.pos < len(l.source) && (isDigit(l.source[l.pos]) || l.source[l.pos] == '_') {
		l.advance()
	}
}

// record interns word and bumps its occurrence count, which saturates at
// math.MaxUint32.
func (l *Lexer) record(word []byte) intern.ID {
	id := l.names.InternBytes(word)
	if l.countTags {
		if tag := l.names.Tag(id); tag < math.MaxUint32 {
			l.names.SetTag(id, tag+1)
		}
	}
	return id
}

// Fold returns name spelled the way the lexer interns it: basic
// identifiers are lower-cased, extended identifiers are kept as written.
func Fold(name string) string {
	if strings.HasPrefix(name, `\`) {
		return name
	}
	var l Lexer
	return string(l.fold([]byte(name)))
}

// fold lower-cases word into the scratch buffer. ASCII-only words, the
// common case, skip rune decoding.
func (l *Lexer) fold(word []byte) []byte {
	l.scratch = l.scratch[:0]
	for i := 0; i < len(word); {
		ch := word[i]
		if ch < utf8.RuneSelf {
			if 'A' <= ch && ch <= 'Z' {
				ch += 'a' - 'A'
			}
			l.scratch = append(l.scratch, ch)
			i++
			continue
		}
		r, size := utf8.DecodeRune(word[i:])
		l.scratch = utf8.AppendRune(l.scratch, unicode.ToLower(r))
		i += size
	}
	return l.scratch
}

// Two-byte delimiters are matched before single bytes.
var compoundDelimiters = [...]string{"=>", "**", ":=", "/=", ">=", "<=", "<>", "??"}

const simpleDelimiters = "&'()*+,-./:;<=>|[]?@`"

func delimiterLen(src []byte) int {
	if len(src) >= 2 {
		for _, d := range compoundDelimiters {
			if src[0] == d[0] && src[1] == d[1] {
				return 2
			}
		}
	}
	for i := 0; i < len(simpleDelimiters); i++ {
		if src[0] == simpleDelimiters[i] {
			return 1
		}
	}
	return 0
}

// skipWhitespace skips whitespace and updates line/column tracking.
func (l *Lexer) skipWhitespace() {
	for l.pos < len(l.source) {
		ch := l.source[l.pos]
		if ch != ' ' && ch != '\t' && ch != '\n' && ch != '\r' && ch != '\f' && ch != '\v' {
			break
		}
		l.advance()
	}
}

// skipComment skips a "--" comment up to and including the newline.
func (l *Lexer) skipComment() {
	for l.pos < len(l.source) && l.source[l.pos] != '\n' {
		l.pos++
	}
	if l.pos < len(l.source) {
		l.advance()
	}
}

// Helper methods

func (l *Lexer) peek() byte {
	return l.peekAt(0)
}

func (l *Lexer) peekAt(n int) byte {
	if l.pos+n >= len(l.source) {
		return 0
	}
	return l.source[l.pos+n]
}

func (l *Lexer) advance() byte {
	if l.pos >= len(l.source) {
		return 0
	}
	ch := l.source[l.pos]
	l.pos++
	if ch == '\n' {
		l.line++
		l.column = 1
	} else {
		l.column++
	}
	return ch
}

func (l *Lexer) advanceN(n int) {
	for i := 0; i < n; i++ {
		l.advance()
	}
}

func (l *Lexer) position() Position {
	return Position{Filename: l.filename, Offset: l.pos, Line: l.line, Column: l.column}
}

func (l *Lexer) errorf(kind error, format string, args ...any) *Error {
	return &Error{Pos: l.position(), Message: fmt.Sprintf(format, args...), Err: kind}
}

func isASCIILetter(ch byte) bool {
	return ('a' <= ch && ch <= 'z') || ('A' <= ch && ch <= 'Z')
}

func isDigit(ch byte) bool {
	return '0' <= ch && ch <= '9'
}

func isHexDigit(ch byte) bool {
	return isDigit(ch) || ('a' <= ch && ch <= 'f') || ('A' <= ch && ch <= 'F')
}
