package lexer

import (
	"fmt"

	"github.com/leapstack-labs/lualint/pkg/token"
)

// ErrorKind classifies tokenizer failures.
type ErrorKind int

// Tokenizer error kinds.
const (
	// MalformedLiteral is reported when a string or block comment is not terminated.
	MalformedLiteral ErrorKind = iota + 1
)

func (k ErrorKind) String() string {
	switch k {
	case MalformedLiteral:
		return "MalformedLiteral"
	default:
		return fmt.Sprintf("ErrorKind(%d)", int(k))
	}
}

// Error represents a lexical analysis error. Pos is the start of the offending literal.
type Error struct {
	Kind    ErrorKind
	Pos     token.Position
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("lexer error at line %d, column %d (offset %d): %s",
		e.Pos.Line, e.Pos.Column, e.Pos.Offset, e.Message)
}

// Common error messages
const (
	ErrUnterminatedString       = "unterminated string literal"
	ErrUnterminatedLongString   = "unterminated long string literal"
	ErrUnterminatedBlockComment = "unterminated block comment"
	ErrNewlineInString          = "unescaped newline in string literal"
)
