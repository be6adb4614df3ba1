package lint

import (
	"sort"
	"strings"

	"github.com/leapstack-labs/lualint/pkg/lexer"
	"github.com/leapstack-labs/lualint/pkg/token"
)

// File is a tokenized source file shared by every rule that checks it.
// Rules must treat it as read-only.
type File struct {
	Path   string
	Source string
	Tokens []token.Token

	significant []token.Token
	lineStarts  []int
	lines       []string
	suppress    suppressions
}

// NewFile tokenizes src. A tokenizer failure is returned as *lexer.Error.
func NewFile(path, src string) (*File, error) {
	tokens, err := lexer.Tokenize(src)
	if err != nil {
		return nil, err
	}

	f := &File{Path: path, Source: src, Tokens: tokens}
	for _, tok := range tokens {
		if !tok.Kind.IsTrivia() {
			f.significant = append(f.significant, tok)
		}
	}

	f.lineStarts = []int{0}
	for i := 0; i < len(src); i++ {
		if src[i] == '\n' {
			f.lineStarts = append(f.lineStarts, i+1)
		}
	}
	for n := 1; n <= len(f.lineStarts); n++ {
		start, end := f.lineBounds(n)
		if n == len(f.lineStarts) && start == len(src) && n > 1 {
			break // nothing after the final newline
		}
		f.lines = append(f.lines, src[start:end])
	}

	f.suppress = parseSuppressions(tokens)
	return f, nil
}

// lineBounds returns the byte range of line n without its terminator.
func (f *File) lineBounds(n int) (int, int) {
	start := f.lineStarts[n-1]
	end := len(f.Source)
	if n < len(f.lineStarts) {
		end = f.lineStarts[n] - 1
	}
	if end > start && f.Source[end-1] == '\r' {
		end--
	}
	return start, end
}

// Significant returns the tokens that are not whitespace, newlines or comments.
func (f *File) Significant() []token.Token {
	return f.significant
}

// Lines returns the source lines without terminators. A newline at the very
// end of the file does not start another line.
func (f *File) Lines() []string {
	return f.lines
}

// LineStart returns the position of the first byte of line n (1-based).
func (f *File) LineStart(n int) token.Position {
	if n < 1 || n > len(f.lineStarts) {
		return token.Position{}
	}
	return token.Position{Offset: f.lineStarts[n-1], Line: n, Column: 1}
}

// PosAt converts a byte offset into a position.
func (f *File) PosAt(offset int) token.Position {
	if offset < 0 || offset > len(f.Source) {
		return token.Position{}
	}
	line := sort.Search(len(f.lineStarts), func(i int) bool { return f.lineStarts[i] > offset })
	return token.Position{Offset: offset, Line: line, Column: offset - f.lineStarts[line-1] + 1}
}

// Diag builds a diagnostic for a rule at pos. The analyzer fills in the
// severity from the rule default and the config.
func Diag(ruleID string, pos token.Position, message string) Diagnostic {
	return Diagnostic{RuleID: ruleID, Message: message, Pos: pos}
}

// =============================================================================
// Inline suppression
// =============================================================================

const directivePrefix = "lualint:"

// suppressions maps a line number to the rules silenced on it.
// An empty rule set silences every rule.
type suppressions map[int]map[string]bool

func (s suppressions) add(line int, rules []string) {
	set, ok := s[line]
	if ok && len(set) == 0 {
		return
	}
	if len(rules) == 0 {
		s[line] = map[string]bool{}
		return
	}
	if !ok {
		set = make(map[string]bool)
		s[line] = set
	}
	for _, r := range rules {
		set[r] = true
	}
}

// parseSuppressions reads "-- lualint: ignore [rules]" and
// "-- lualint: ignore-next-line [rules]" line comments.
func parseSuppressions(tokens []token.Token) suppressions {
	s := suppressions{}
	for _, tok := range tokens {
		if !tok.IsLineComment() {
			continue
		}
		body := strings.TrimSpace(strings.TrimPrefix(tok.Text, "--"))
		rest, ok := strings.CutPrefix(body, directivePrefix)
		if !ok {
			continue
		}
		fields := strings.Fields(rest)
		if len(fields) == 0 {
			continue
		}
		var rules []string
		if len(fields) > 1 {
			for _, r := range strings.Split(strings.Join(fields[1:], ""), ",") {
				if r != "" {
					rules = append(rules, r)
				}
			}
		}
		switch fields[0] {
		case "ignore":
			s.add(tok.Pos.Line, rules)
		case "ignore-next-line":
			s.add(tok.Pos.Line+1, rules)
		}
	}
	return s
}

// Suppressed reports whether an inline directive silences d.
func (f *File) Suppressed(d Diagnostic) bool {
	set, ok := f.suppress[d.Pos.Line]
	if !ok {
		return false
	}
	return len(set) == 0 || set[d.RuleID]
}
