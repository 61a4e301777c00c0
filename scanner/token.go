package scanner

import (
	"fmt"

	"github.com/robinvdvleuten/sintern/intern"
)

// TokenType represents the type of token scanned from the input.
type TokenType uint8

const (
	EOF TokenType = iota
	ILLEGAL

	KEYWORD // reserved word, ID set
	IDENT   // basic or extended identifier, ID set

	NUMBER // 42, 3.14, 16#FF#, 1.0e-3
	STRING // "text"
	CHAR   // 'c'
	DELIM  // ( ) ; := <= => ...
)

var tokenNames = map[TokenType]string{
	EOF:     "EOF",
	ILLEGAL: "ILLEGAL",
	KEYWORD: "KEYWORD",
	IDENT:   "IDENT",
	NUMBER:  "NUMBER",
	STRING:  "STRING",
	CHAR:    "CHAR",
	DELIM:   "DELIM",
}

func (t TokenType) String() string {
	if name, ok := tokenNames[t]; ok {
		return name
	}
	return "UNKNOWN"
}

// Token is a lexical token. The text is not copied: Start and End are byte
// offsets into the scanned source. Keywords and identifiers additionally
// carry their interned identifier.
type Token struct {
	Type   TokenType
	Start  int
	End    int
	Line   int
	Column int
	ID     intern.ID
}

// HasID reports whether ID is meaningful for this token.
func (t Token) HasID() bool {
	return t.Type == KEYWORD || t.Type == IDENT
}

// String materializes the token text from the source buffer.
func (t Token) String(source []byte) string {
	if t.Start >= len(source) || t.End > len(source) || t.Start > t.End {
		return ""
	}
	return string(source[t.Start:t.End])
}

// Bytes returns a zero-copy view of the token text.
func (t Token) Bytes(source []byte) []byte {
	if t.Start >= len(source) || t.End > len(source) || t.Start > t.End {
		return nil
	}
	return source[t.Start:t.End]
}

// Len returns the length of the token in bytes.
func (t Token) Len() int {
	return t.End - t.Start
}

// Position locates a byte in a source file.
type Position struct {
	Filename string
	Offset   int
	Line     int // 1-indexed
	Column   int // 1-indexed, in bytes
}

func (p Position) String() string {
	if p.Filename == "" {
		return fmt.Sprintf("%d:%d", p.Line, p.Column)
	}
	return fmt.Sprintf("%s:%d:%d", p.Filename, p.Line, p.Column)
}
