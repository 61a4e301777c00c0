package scanner

import "errors"

var (
	// ErrInvalidUTF8 is wrapped by errors for bytes that are not valid UTF-8.
	ErrInvalidUTF8 = errors.New("invalid UTF-8 encoding")
	// ErrUnterminated is wrapped by errors for strings, character literals
	// and extended identifiers that run into a newline or the end of input.
	ErrUnterminated = errors.New("unterminated literal")
)

// Error is a lexical error with its position.
type Error struct {
	Pos     Position
	Message string
	Err     error
}

func (e *Error) Error() string {
	return e.Pos.String() + ": " + e.Message
}

// GetPosition returns where the error occurred.
func (e *Error) GetPosition() Position {
	return e.Pos
}

func (e *Error) Unwrap() error {
	return e.Err
}
