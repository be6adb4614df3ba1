// Package scan provides structural helpers over a significant-token stream.
// Rules in pkg/lint/rules use it to find matching brackets and blocks without
// building a full syntax tree.
package scan

import (
	"github.com/leapstack-labs/lualint/pkg/token"
)

// FrameKind classifies the construct opened by a token.
type FrameKind int

// Frame kinds.
const (
	NoFrame FrameKind = iota
	Paren             // ( ... )
	Brace             // { ... }
	Bracket           // [ ... ]
	Block             // function/if/do/repeat ... end/until
)

// Structure records the nesting of a significant-token stream.
type Structure struct {
	Tokens []token.Token

	// Match holds the partner index of every opener and closer, or -1.
	Match []int

	// Enclosing holds the index of the innermost construct that is still open
	// around token i, or -1 at top level. Openers report their outer construct
	// and closers report the construct outside the one they close.
	Enclosing []int

	funcHeaderClose map[int]bool
}

// Build computes the structure of sig, which must contain no trivia tokens.
// Unbalanced closers are ignored rather than treated as errors.
func Build(sig []token.Token) *Structure {
	s := &Structure{
		Tokens:          sig,
		Match:           make([]int, len(sig)),
		Enclosing:       make([]int, len(sig)),
		funcHeaderClose: make(map[int]bool),
	}

	var stack []int
	top := func() int {
		if len(stack) == 0 {
			return -1
		}
		return stack[len(stack)-1]
	}

	for i, tok := range sig {
		s.Match[i] = -1
		s.Enclosing[i] = top()

		if kind := OpenerKind(tok); kind != NoFrame {
			stack = append(stack, i)
			continue
		}

		want := closerFor(tok)
		if want == NoFrame {
			continue
		}
		for j := len(stack) - 1; j >= 0; j-- {
			open := stack[j]
			if OpenerKind(sig[open]) != want || !closes(sig[open], tok) {
				continue
			}
			s.Match[i] = open
			s.Match[open] = i
			stack = stack[:j]
			s.Enclosing[i] = top()
			break
		}
	}

	for i, tok := range sig {
		if !tok.IsKeyword("function") {
			continue
		}
		for j := i + 1; j < len(sig); j++ {
			if sig[j].IsPunct("(") {
				if s.Match[j] >= 0 {
					s.funcHeaderClose[s.Match[j]] = true
				}
				break
			}
			if sig[j].Kind != token.Identifier && !sig[j].IsPunct(".") && !sig[j].IsPunct(":") {
				break
			}
		}
	}
	return s
}

// OpenerKind returns the frame a token opens, or NoFrame.
func OpenerKind(tok token.Token) FrameKind {
	switch {
	case tok.IsPunct("("):
		return Paren
	case tok.IsPunct("{"):
		return Brace
	case tok.IsPunct("["):
		return Bracket
	case tok.IsKeyword("function"), tok.IsKeyword("if"), tok.IsKeyword("do"), tok.IsKeyword("repeat"):
		return Block
	}
	return NoFrame
}

func closerFor(tok token.Token) FrameKind {
	switch {
	case tok.IsPunct(")"):
		return Paren
	case tok.IsPunct("}"):
		return Brace
	case tok.IsPunct("]"):
		return Bracket
	case tok.IsKeyword("end"), tok.IsKeyword("until"):
		return Block
	}
	return NoFrame
}

// closes reports whether closer ends the block opened by opener.
// "until" only closes "repeat"; "end" closes every other block.
func closes(opener, closer token.Token) bool {
	if closer.IsKeyword("until") {
		return opener.IsKeyword("repeat")
	}
	if closer.IsKeyword("end") {
		return !opener.IsKeyword("repeat")
	}
	return true
}

// Kind returns the frame kind opened at index i.
func (s *Structure) Kind(i int) FrameKind {
	if i < 0 || i >= len(s.Tokens) {
		return NoFrame
	}
	return OpenerKind(s.Tokens[i])
}

// InStatementContext reports whether token i sits directly inside a block
// (or at top level) rather than inside brackets.
func (s *Structure) InStatementContext(i int) bool {
	e := s.Enclosing[i]
	return e < 0 || s.Kind(e) == Block
}

// ClosesFunctionHeader reports whether token i is the ")" ending the
// parameter list of a function definition.
func (s *Structure) ClosesFunctionHeader(i int) bool {
	return s.funcHeaderClose[i]
}

// Prev returns the token before i, if any.
func (s *Structure) Prev(i int) (token.Token, bool) {
	if i <= 0 || i > len(s.Tokens) {
		return token.Token{}, false
	}
	return s.Tokens[i-1], true
}

// Next returns the token after i, if any.
func (s *Structure) Next(i int) (token.Token, bool) {
	if i < -1 || i+1 >= len(s.Tokens) {
		return token.Token{}, false
	}
	return s.Tokens[i+1], true
}

// FirstOnLine reports whether no significant token precedes i on its line.
func (s *Structure) FirstOnLine(i int) bool {
	prev, ok := s.Prev(i)
	return !ok || prev.End().Line < s.Tokens[i].Pos.Line
}

// LastOnLine reports whether no significant token follows i on its line.
func (s *Structure) LastOnLine(i int) bool {
	next, ok := s.Next(i)
	return !ok || next.Pos.Line > s.Tokens[i].End().Line
}
