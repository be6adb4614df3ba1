package token

import "fmt"

// Position represents a location in the source code.
type Position struct {
	Offset int `json:"offset"` // 0-based byte offset
	Line   int `json:"line"`   // 1-based line number
	Column int `json:"column"` // 1-based byte column
}

// Start is the position of the first byte of any input.
var Start = Position{Offset: 0, Line: 1, Column: 1}

// IsValid returns true if the position is valid (line > 0).
func (p Position) IsValid() bool {
	return p.Line > 0
}

// Advance returns the position reached after consuming text from p.
func (p Position) Advance(text string) Position {
	for i := 0; i < len(text); i++ {
		p.Offset++
		if text[i] == '\n' {
			p.Line++
			p.Column = 1
		} else {
			p.Column++
		}
	}
	return p
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}
