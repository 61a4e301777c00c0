package cli

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/alecthomas/assert/v2"

	"github.com/robinvdvleuten/sintern/intern"
	"github.com/robinvdvleuten/sintern/scanner"
)

func TestErrorRenderer_RenderScanErrorWithSourceContext(t *testing.T) {
	sourceContent := `entity top is
  port (
    clk : in bit;
    name : in string := "unterminated
  );
end entity;`

	_, err := scanner.NewLexer([]byte(sourceContent), "top.vhd", intern.New(64)).ScanAll()
	assert.Error(t, err)

	renderer := NewErrorRenderer([]byte(sourceContent))
	output := renderer.Render(err)

	// Verify the output contains the filename and position
	assert.Contains(t, output, "top.vhd:4:25")

	// Verify the output contains source lines
	assert.Contains(t, output, "clk : in bit;")

	// Verify the caret is under the opening quote
	lines := strings.Split(output, "\n")
	for i, line := range lines {
		if strings.Contains(line, `"unterminated`) {
			assert.Equal(t, "   "+strings.Repeat(" ", 24)+"^", lines[i+1])
		}
	}
}

func TestErrorRenderer_RenderWrappedScanError(t *testing.T) {
	source := []byte("a \xff")
	_, err := scanner.NewLexer(source, "bad.vhd", intern.New(64)).ScanAll()
	assert.Error(t, err)

	output := NewErrorRenderer(source).Render(fmt.Errorf("scanning: %w", err))
	assert.Contains(t, output, "bad.vhd:1:3")
	assert.Contains(t, output, "^")
}

func TestErrorRenderer_RenderWithoutSource(t *testing.T) {
	scanErr := &scanner.Error{
		Pos:     scanner.Position{Filename: "test.vhd", Line: 6, Column: 49},
		Message: "unterminated string literal",
		Err:     scanner.ErrUnterminated,
	}

	output := NewErrorRenderer(nil).Render(scanErr)
	assert.Equal(t, "test.vhd:6:49: unterminated string literal", output)
}

func TestErrorRenderer_RenderPlainError(t *testing.T) {
	output := NewErrorRenderer([]byte("x")).Render(errors.New("boom"))
	assert.Equal(t, "boom", output)
}

func TestErrorRenderer_RenderWithSourceContext_BoundsChecking(t *testing.T) {
	sourceContent := `entity top is
end entity;`

	tests := []struct {
		name string
		pos  scanner.Position
		want string
	}{
		{name: "first line", pos: scanner.Position{Line: 1, Column: 1}, want: "entity top is"},
		{name: "last line", pos: scanner.Position{Line: 2, Column: 11}, want: "end entity;"},
		{name: "past the end", pos: scanner.Position{Line: 9, Column: 1}, want: "error"},
	}

	renderer := NewErrorRenderer([]byte(sourceContent))
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			output := renderer.renderWithSourceContext(tt.pos, "error", []byte(sourceContent))
			assert.Contains(t, output, tt.want)
		})
	}
}

func TestErrorRenderer_RenderAll(t *testing.T) {
	renderer := NewErrorRenderer(nil)

	assert.Equal(t, "", renderer.RenderAll(nil))
	assert.Equal(t, "one\n\ntwo", renderer.RenderAll([]error{errors.New("one"), errors.New("two")}))
}
