package layout

import (
	"strings"

	"github.com/leapstack-labs/lualint/pkg/core"
	"github.com/leapstack-labs/lualint/pkg/lint"
)

func init() {
	lint.Register(EOFNewline)
}

const eofNewlineID = "eof-newline"

// EOFNewline requires a final newline.
var EOFNewline = lint.RuleDef{
	ID:          eofNewlineID,
	Name:        "layout.eof_newline",
	Group:       "layout",
	Description: "Files should end with a single newline.",
	Severity:    core.SeverityWarning,
	Check:       checkEOFNewline,
	Rationale:   "Tools that concatenate or diff files treat a missing final newline as a change to the last line.",
	BadExample:  "return M",
	GoodExample: "return M\n",
}

func checkEOFNewline(f *lint.File, _ map[string]any) []lint.Diagnostic {
	if f.Source == "" || strings.HasSuffix(f.Source, "\n") {
		return nil
	}
	return []lint.Diagnostic{
		lint.Diag(eofNewlineID, f.PosAt(len(f.Source)), "file does not end with a newline"),
	}
}
