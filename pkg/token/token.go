// Package token defines the lexical tokens produced by the Lua tokenizer.
//
// Every byte of a source file belongs to exactly one token, so whitespace,
// newlines and comments are first-class tokens next to identifiers and operators.
package token

import "fmt"

// Kind classifies a token.
type Kind int

const (
	// Illegal covers bytes that start no valid Lua token.
	Illegal Kind = iota

	Whitespace  // run of spaces, tabs, form feeds or vertical tabs
	Newline     // "\n" or "\r\n"
	Comment     // -- line comment or --[[ block comment ]]
	String      // 'single', "double" or [[long]]
	Number      // 42, 0x1F, 3.14e-2
	Identifier  // foo, _bar
	Keyword     // local, function, then ...
	Operator    // + - * / == ~= .. and so on
	Punctuation // ( ) { } [ ] ; : , . :: ...
)

var kindNames = map[Kind]string{
	Illegal:     "illegal",
	Whitespace:  "whitespace",
	Newline:     "newline",
	Comment:     "comment",
	String:      "string",
	Number:      "number",
	Identifier:  "identifier",
	Keyword:     "keyword",
	Operator:    "operator",
	Punctuation: "punctuation",
}

// String returns the lowercase name of the kind.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// IsTrivia reports whether tokens of this kind carry no syntax.
func (k Kind) IsTrivia() bool {
	return k == Whitespace || k == Newline || k == Comment
}

// keywords is the set of reserved Lua words.
var keywords = map[string]bool{
	"and":      true,
	"break":    true,
	"do":       true,
	"else":     true,
	"elseif":   true,
	"end":      true,
	"false":    true,
	"for":      true,
	"function": true,
	"goto":     true,
	"if":       true,
	"in":       true,
	"local":    true,
	"nil":      true,
	"not":      true,
	"or":       true,
	"repeat":   true,
	"return":   true,
	"then":     true,
	"true":     true,
	"until":    true,
	"while":    true,
}

// LookupIdent returns Keyword for reserved words and Identifier otherwise.
// Lua keywords are case-sensitive.
func LookupIdent(ident string) Kind {
	if keywords[ident] {
		return Keyword
	}
	return Identifier
}

// Token is a lexical token with its source position. Tokens are values and
// are never modified after the tokenizer returns them.
type Token struct {
	Kind Kind
	Text string   // raw source text, including quotes and comment markers
	Pos  Position // position of the first byte

	// Style and CommentKind are only meaningful for String and Comment tokens.
	Style       StringStyle
	CommentKind CommentKind
}

// End returns the position just past the token.
func (t Token) End() Position {
	return t.Pos.Advance(t.Text)
}

// Is reports whether the token has the given kind and text.
func (t Token) Is(kind Kind, text string) bool {
	return t.Kind == kind && t.Text == text
}

// IsKeyword reports whether the token is the given keyword.
func (t Token) IsKeyword(word string) bool {
	return t.Is(Keyword, word)
}

// IsPunct reports whether the token is the given punctuation.
func (t Token) IsPunct(p string) bool {
	return t.Is(Punctuation, p)
}

// StringStyle distinguishes the quoting of a string literal.
type StringStyle int

// String literal styles.
const (
	NotAString   StringStyle = iota
	SingleQuoted             // 'text'
	DoubleQuoted             // "text"
	LongBracket              // [[text]] or [==[text]==]
)

func (s StringStyle) String() string {
	switch s {
	case SingleQuoted:
		return "single"
	case DoubleQuoted:
		return "double"
	case LongBracket:
		return "long"
	default:
		return "none"
	}
}
