// Package lexer turns Lua source text into a lossless token stream.
package lexer

import (
	"io"
	"strings"
	"unicode/utf8"

	"github.com/leapstack-labs/lualint/pkg/token"
)

// symbols lists multi-byte operators and punctuation, longest first.
var symbols = []string{
	"...", "..=", "//=",
	"..", "==", "~=", "<=", ">=", "<<", ">>", "//", "::",
	"+=", "-=", "*=", "/=", "%=", "^=",
}

var punctuation = map[string]bool{
	"(": true, ")": true, "{": true, "}": true, "[": true, "]": true,
	";": true, ":": true, ",": true, ".": true, "::": true, "...": true,
}

const singleSymbols = "+-*/%^#&~|<>=(){}[];:,."

// Lexer tokenizes Lua input.
type Lexer struct {
	input string
	pos   token.Position // position of the next unread byte
}

// New creates a new Lexer for the given input.
func New(input string) *Lexer {
	return &Lexer{input: input, pos: token.Start}
}

// Tokenize returns every token of src in order. Concatenating the Text of the
// returned tokens reproduces src exactly.
func Tokenize(src string) ([]token.Token, error) {
	l := New(src)
	// Average Lua token is a handful of bytes; avoid most regrowth.
	tokens := make([]token.Token, 0, len(src)/3+1)
	for {
		tok, err := l.NextToken()
		if err == io.EOF {
			return tokens, nil
		}
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, tok)
	}
}

// NextToken returns the next token, or io.EOF once the input is exhausted.
func (l *Lexer) NextToken() (token.Token, error) {
	off := l.pos.Offset
	if off >= len(l.input) {
		return token.Token{}, io.EOF
	}

	ch := l.input[off]
	switch {
	case off == 0 && ch == '#':
		return l.emitShebang(), nil
	case ch == '\n':
		return l.emit(token.Newline, 1), nil
	case ch == '\r' && l.peek(1) == '\n':
		return l.emit(token.Newline, 2), nil
	case isSpace(ch):
		n := 1
		for isSpace(l.peek(n)) && !(l.peek(n) == '\r' && l.peek(n+1) == '\n') {
			n++
		}
		return l.emit(token.Whitespace, n), nil
	case ch == '-' && l.peek(1) == '-':
		return l.readComment()
	case ch == '\'' || ch == '"':
		return l.readShortString(ch)
	case ch == '[' && l.longBracketLevel(0) >= 0:
		return l.readLongString()
	case isDigit(ch) || (ch == '.' && isDigit(l.peek(1))):
		return l.emit(token.Number, l.numberLength()), nil
	case isLetter(ch):
		n := 1
		for isLetter(l.peek(n)) || isDigit(l.peek(n)) {
			n++
		}
		kind := token.LookupIdent(l.input[off : off+n])
		return l.emit(kind, n), nil
	}

	rest := l.input[off:]
	for _, sym := range symbols {
		if strings.HasPrefix(rest, sym) {
			return l.emitSymbol(sym), nil
		}
	}
	if strings.IndexByte(singleSymbols, ch) >= 0 {
		return l.emitSymbol(rest[:1]), nil
	}

	_, size := utf8.DecodeRuneInString(rest)
	return l.emit(token.Illegal, size), nil
}

// peek returns the byte n positions ahead of the cursor, or 0 past the end.
func (l *Lexer) peek(n int) byte {
	i := l.pos.Offset + n
	if i >= len(l.input) {
		return 0
	}
	return l.input[i]
}

// emit consumes n bytes as a token of the given kind.
func (l *Lexer) emit(kind token.Kind, n int) token.Token {
	start := l.pos
	text := l.input[start.Offset : start.Offset+n]
	l.pos = start.Advance(text)
	return token.Token{Kind: kind, Text: text, Pos: start}
}

// emitShebang consumes a "#!" interpreter line at the very start of the
// input. Lua ignores it, so it is reported as a line comment.
func (l *Lexer) emitShebang() token.Token {
	n := strings.IndexByte(l.input, '\n')
	if n < 0 {
		n = len(l.input)
	}
	if n > 0 && l.input[n-1] == '\r' {
		n--
	}
	tok := l.emit(token.Comment, n)
	tok.CommentKind = token.LineComment
	return tok
}

func (l *Lexer) emitSymbol(sym string) token.Token {
	kind := token.Operator
	if punctuation[sym] {
		kind = token.Punctuation
	}
	return l.emit(kind, len(sym))
}

// longBracketLevel checks for an opening long bracket ([[, [=[, ...) starting
// n bytes ahead and returns its level, or -1 if there is none.
func (l *Lexer) longBracketLevel(n int) int {
	if l.peek(n) != '[' {
		return -1
	}
	level := 0
	for l.peek(n+1+level) == '=' {
		level++
	}
	if l.peek(n+1+level) != '[' {
		return -1
	}
	return level
}

// longBracketEnd returns the length of the long bracket body starting at
// offset from (exclusive of nothing) through its closing bracket, or -1.
func (l *Lexer) longBracketEnd(from, level int) int {
	closing := "]" + strings.Repeat("=", level) + "]"
	idx := strings.Index(l.input[from:], closing)
	if idx < 0 {
		return -1
	}
	return from + idx + len(closing)
}

func (l *Lexer) readComment() (token.Token, error) {
	start := l.pos.Offset

	if level := l.longBracketLevel(2); level >= 0 {
		bodyStart := start + 2 + level + 2
		end := l.longBracketEnd(bodyStart, level)
		if end < 0 {
			return token.Token{}, &Error{Kind: MalformedLiteral, Pos: l.pos, Message: ErrUnterminatedBlockComment}
		}
		tok := l.emit(token.Comment, end-start)
		tok.CommentKind = token.BlockComment
		return tok, nil
	}

	end := strings.IndexByte(l.input[start:], '\n')
	if end < 0 {
		end = len(l.input) - start
	} else if end > 0 && l.input[start+end-1] == '\r' {
		end--
	}
	tok := l.emit(token.Comment, end)
	tok.CommentKind = token.LineComment
	return tok, nil
}

func (l *Lexer) readShortString(quote byte) (token.Token, error) {
	n := 1
	for {
		c := l.peek(n)
		switch {
		case l.pos.Offset+n >= len(l.input):
			return token.Token{}, &Error{Kind: MalformedLiteral, Pos: l.pos, Message: ErrUnterminatedString}
		case c == '\\':
			n++
			if l.peek(n) == '\r' && l.peek(n+1) == '\n' {
				n++
			}
			if l.pos.Offset+n < len(l.input) {
				n++
			}
		case c == '\n' || c == '\r':
			return token.Token{}, &Error{Kind: MalformedLiteral, Pos: l.pos, Message: ErrNewlineInString}
		case c == quote:
			tok := l.emit(token.String, n+1)
			tok.Style = token.SingleQuoted
			if quote == '"' {
				tok.Style = token.DoubleQuoted
			}
			return tok, nil
		default:
			n++
		}
	}
}

func (l *Lexer) readLongString() (token.Token, error) {
	start := l.pos.Offset
	level := l.longBracketLevel(0)
	end := l.longBracketEnd(start+level+2, level)
	if end < 0 {
		return token.Token{}, &Error{Kind: MalformedLiteral, Pos: l.pos, Message: ErrUnterminatedLongString}
	}
	tok := l.emit(token.String, end-start)
	tok.Style = token.LongBracket
	return tok, nil
}

// numberLength returns the byte length of the numeric literal at the cursor.
func (l *Lexer) numberLength() int {
	n := 0
	if l.peek(0) == '0' && (l.peek(1) == 'x' || l.peek(1) == 'X') {
		n = 2
		for isHexDigit(l.peek(n)) || l.peek(n) == '.' {
			n++
		}
		if c := l.peek(n); c == 'p' || c == 'P' {
			n = l.exponentLength(n)
		}
		return n
	}

	for isDigit(l.peek(n)) {
		n++
	}
	if l.peek(n) == '.' && l.peek(n+1) != '.' {
		n++
		for isDigit(l.peek(n)) {
			n++
		}
	}
	if c := l.peek(n); c == 'e' || c == 'E' {
		n = l.exponentLength(n)
	}
	return n
}

// exponentLength consumes an exponent marker at n and returns the new length.
func (l *Lexer) exponentLength(n int) int {
	m := n + 1
	if c := l.peek(m); c == '+' || c == '-' {
		m++
	}
	if !isDigit(l.peek(m)) {
		return n
	}
	for isDigit(l.peek(m)) {
		m++
	}
	return m
}

func isSpace(ch byte) bool {
	return ch == ' ' || ch == '\t' || ch == '\f' || ch == '\v' || ch == '\r'
}

func isLetter(ch byte) bool {
	return 'a' <= ch && ch <= 'z' || 'A' <= ch && ch <= 'Z' || ch == '_'
}

func isDigit(ch byte) bool {
	return '0' <= ch && ch <= '9'
}

func isHexDigit(ch byte) bool {
	return isDigit(ch) || 'a' <= ch && ch <= 'f' || 'A' <= ch && ch <= 'F'
}
