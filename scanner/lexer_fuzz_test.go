package scanner

import (
	"testing"

	"github.com/robinvdvleuten/sintern/intern"
	"github.com/robinvdvleuten/sintern/keyword"
)

func FuzzLexer(f *testing.F) {
	seeds := []string{
		// Delimiters
		"(", ")", ";", ":=", "<=", "=>", "/=", "**", "<>", "'",

		// Literals
		"0", "1_000", "3.14", "1.0e-3", "16#FF#", "'0'", `"text"`, `""""`,

		// Identifiers and keywords
		"clk", "Clk", "entity", "ENTITY", `\Ext Id\`, `\a\\b\`, "größe",

		// Comments and whitespace
		"-- comment", "a -- trailing", " ", "\t", "\r\n",

		// Errors
		"\xff", `"open`, `\open`, "a\xc3",
	}

	for _, seed := range seeds {
		f.Add([]byte(seed))
	}

	f.Fuzz(func(t *testing.T, data []byte) {
		names := intern.New(64)
		tokens, err := NewLexer(data, "fuzz", names).ScanAll()
		if err != nil {
			return
		}

		if len(tokens) == 0 || tokens[len(tokens)-1].Type != EOF {
			t.Fatalf("token stream must end with EOF")
		}

		prevEnd := 0
		for _, tok := range tokens {
			if tok.Start < prevEnd || tok.End < tok.Start || tok.End > len(data) {
				t.Fatalf("token %v out of order or bounds", tok)
			}
			prevEnd = tok.End

			if tok.HasID() {
				if tok.Type == KEYWORD && !keyword.IsKeyword(tok.ID) {
					t.Fatalf("keyword token with identifier %d", tok.ID)
				}
				if got := names.Lookup(tok.ID); len(got) == 0 {
					t.Fatalf("identifier %d has an empty spelling", tok.ID)
				}
			}
		}
	})
}
