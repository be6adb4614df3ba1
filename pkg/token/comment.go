package token

// CommentKind distinguishes line vs block comments.
type CommentKind int

// Comment kinds.
const (
	NotAComment  CommentKind = iota
	LineComment              // -- comment
	BlockComment             // --[[ comment --]]
)

func (c CommentKind) String() string {
	switch c {
	case LineComment:
		return "line"
	case BlockComment:
		return "block"
	default:
		return "none"
	}
}

// IsLineComment returns true if the token is a line comment.
func (t Token) IsLineComment() bool {
	return t.Kind == Comment && t.CommentKind == LineComment
}

// IsBlockComment returns true if the token is a block comment.
func (t Token) IsBlockComment() bool {
	return t.Kind == Comment && t.CommentKind == BlockComment
}
