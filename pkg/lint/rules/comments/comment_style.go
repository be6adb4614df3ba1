package comments

import (
	"strings"

	"github.com/leapstack-labs/lualint/pkg/core"
	"github.com/leapstack-labs/lualint/pkg/lint"
	"github.com/leapstack-labs/lualint/pkg/token"
)

func init() {
	lint.Register(CommentStyle)
}

const commentStyleID = "comment-style"

// CommentStyle checks the markers of line and block comments.
var CommentStyle = lint.RuleDef{
	ID:          commentStyleID,
	Name:        "comments.style",
	Group:       "comments",
	Description: "Line comments start with '-- '; block comments close with '--]]'.",
	Severity:    core.SeverityInfo,
	Check:       checkCommentStyle,
	Rationale:   "A closing '--]]' lets a block comment be disabled by adding one '-' to its opening line.",
	BadExample:  "--no space\n--[[\n  text\n]]",
	GoodExample: "-- a space\n--[[\n  text\n--]]",
}

func checkCommentStyle(f *lint.File, _ map[string]any) []lint.Diagnostic {
	var diagnostics []lint.Diagnostic
	for _, tok := range f.Tokens {
		switch {
		case tok.IsLineComment():
			if d, ok := checkLineComment(tok); ok {
				diagnostics = append(diagnostics, d)
			}
		case tok.IsBlockComment():
			if d, ok := checkBlockComment(tok); ok {
				diagnostics = append(diagnostics, d)
			}
		}
	}
	return diagnostics
}

func checkLineComment(tok token.Token) (lint.Diagnostic, bool) {
	body, ok := strings.CutPrefix(tok.Text, "--")
	if !ok {
		return lint.Diagnostic{}, false // shebang line
	}
	if body == "" || body[0] == ' ' || body[0] == '\t' || body[0] == '-' {
		return lint.Diagnostic{}, false
	}
	return lint.Diag(commentStyleID, tok.Pos, "missing space after '--'"), true
}

func checkBlockComment(tok token.Token) (lint.Diagnostic, bool) {
	// "--[==[" opens a level-2 comment closed by "--]==]"
	open := tok.Text[2:]
	level := strings.IndexByte(open[1:], '[')
	if level < 0 {
		return lint.Diagnostic{}, false
	}
	closer := "--]" + strings.Repeat("=", level) + "]"
	if strings.HasSuffix(tok.Text, closer) {
		return lint.Diagnostic{}, false
	}
	return lint.Diag(commentStyleID, tok.Pos, "block comment should be closed with '"+closer+"'"), true
}
