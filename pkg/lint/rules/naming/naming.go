package naming

import (
	"fmt"
	"slices"
	"strings"

	"github.com/leapstack-labs/lualint/pkg/core"
	"github.com/leapstack-labs/lualint/pkg/lint"
	"github.com/leapstack-labs/lualint/pkg/lint/internal/scan"
	"github.com/leapstack-labs/lualint/pkg/token"
)

func init() {
	lint.Register(Naming)
}

const namingID = "naming"

// Naming checks identifier case against the role the identifier is declared in.
var Naming = lint.RuleDef{
	ID:    namingID,
	Name:  "naming.case",
	Group: "naming",
	Description: "Variables and functions use lowerCamelCase, constructors CapitalCase, " +
		"constants UPPER_SNAKE_CASE and private fields a leading underscore.",
	Severity:    core.SeverityWarning,
	ConfigKeys:  []string{"allow"},
	Check:       checkNaming,
	Validate:    validateNaming,
	Rationale:   "A consistent case convention tells the reader what kind of value a name holds.",
	BadExample:  "local my_value = 1\nlocal function Do_thing() end",
	GoodExample: "local myValue = 1\nlocal MAX_RETRIES = 3\nlocal function Person() end\nself._cache = {}",
	Fix:         "Rename the identifier, or list it under the allow option when it mirrors an external API.",
}

type namingOptions struct {
	Allow []string `mapstructure:"allow"`
}

func validateNaming(opts map[string]any) error {
	var o namingOptions
	return lint.DecodeOptions(opts, &o)
}

type role int

const (
	roleLocal role = iota
	roleFunction
	roleParam
	roleField
)

var roleNames = map[role]string{
	roleLocal:    "local",
	roleFunction: "function",
	roleParam:    "parameter",
	roleField:    "field",
}

// initKind describes the expression a local is initialized with.
type initKind int

const (
	initNone initKind = iota
	initValue
	initConstructor // function, table constructor, setmetatable(...) or require(...)
	initAmbiguous   // another name, a field or a call; may or may not yield a class
)

type declaration struct {
	tok  token.Token
	role role
	init initKind
}

func checkNaming(f *lint.File, opts map[string]any) []lint.Diagnostic {
	allow := lint.GetStringSliceOption(opts, "allow", nil)
	s := scan.Build(f.Significant())

	var diagnostics []lint.Diagnostic
	for _, d := range collectDeclarations(s) {
		name := d.tok.Text
		if slices.Contains(allow, name) {
			continue
		}
		if want, ok := classify(name, d.role, d.init); !ok {
			diagnostics = append(diagnostics, lint.Diag(namingID, d.tok.Pos,
				fmt.Sprintf("%s '%s' should be %s", roleNames[d.role], name, want)))
		}
	}
	return diagnostics
}

// classify applies the precedence metamethod, private, constant,
// constructor, lowerCamelCase. It returns the expected convention and false
// when name does not satisfy any convention allowed for its role.
func classify(name string, r role, init initKind) (string, bool) {
	if strings.HasPrefix(name, "__") {
		return "", true
	}
	if strings.HasPrefix(name, "_") {
		return "'_' followed by lowerCamelCase", IsPrivate(name)
	}

	switch r {
	case roleLocal:
		if IsUpperSnake(name) || IsLowerCamel(name) {
			return "", true
		}
		if IsCapital(name) {
			// only a literal initializer proves the name is not a class
			if init == initConstructor || init == initAmbiguous {
				return "", true
			}
			return "lowerCamelCase (CapitalCase is reserved for constructors and classes)", false
		}
		return "lowerCamelCase or UPPER_SNAKE_CASE", false
	case roleFunction:
		return "lowerCamelCase or CapitalCase", IsLowerCamel(name) || IsCapital(name)
	case roleParam:
		return "lowerCamelCase", IsLowerCamel(name)
	}
	// public fields are not checked
	return "", true
}

func collectDeclarations(s *scan.Structure) []declaration {
	toks := s.Tokens
	var decls []declaration

	for i, tok := range toks {
		switch {
		case tok.IsKeyword("function"):
			decls = append(decls, functionDecls(s, i)...)

		case tok.IsKeyword("local"):
			if i+1 < len(toks) && toks[i+1].IsKeyword("function") {
				continue // handled by the function case
			}
			decls = append(decls, localDecls(s, i)...)

		case tok.IsKeyword("for"):
			for j := i + 1; j < len(toks) && toks[j].Kind == token.Identifier; j += 2 {
				decls = append(decls, declaration{tok: toks[j], role: roleParam})
				if j+1 >= len(toks) || !toks[j+1].IsPunct(",") {
					break
				}
			}

		case tok.Kind == token.Identifier && strings.HasPrefix(tok.Text, "_"):
			if isFieldDefinition(s, i) {
				decls = append(decls, declaration{tok: tok, role: roleField})
			}
		}
	}
	return decls
}

// functionDecls returns the name and parameters of the function keyword at i.
func functionDecls(s *scan.Structure, i int) []declaration {
	toks := s.Tokens
	var decls []declaration

	j := i + 1
	var name *token.Token
	for j < len(toks) && toks[j].Kind == token.Identifier {
		name = &toks[j]
		if j+1 < len(toks) && (toks[j+1].IsPunct(".") || toks[j+1].IsPunct(":")) {
			j += 2
			continue
		}
		j++
		break
	}
	if name != nil {
		decls = append(decls, declaration{tok: *name, role: roleFunction})
	}

	if j >= len(toks) || !toks[j].IsPunct("(") {
		return decls
	}
	for k := j + 1; k < len(toks) && !toks[k].IsPunct(")"); k++ {
		if toks[k].Kind == token.Identifier {
			decls = append(decls, declaration{tok: toks[k], role: roleParam})
		}
	}
	return decls
}

// localDecls returns the names of the local statement at i with the kind of
// expression each is initialized with.
func localDecls(s *scan.Structure, i int) []declaration {
	toks := s.Tokens
	var decls []declaration

	j := i + 1
	for j < len(toks) && toks[j].Kind == token.Identifier {
		decls = append(decls, declaration{tok: toks[j], role: roleLocal})
		j++
		// Lua 5.4 attribute, e.g. <const>
		if j+2 < len(toks) && toks[j].Is(token.Operator, "<") && toks[j+2].Is(token.Operator, ">") {
			j += 3
		}
		if j < len(toks) && toks[j].IsPunct(",") {
			j++
			continue
		}
		break
	}

	if j < len(toks) && toks[j].Is(token.Operator, "=") {
		for n, start := range expressionStarts(s, j+1) {
			if n >= len(decls) {
				break
			}
			decls[n].init = initOf(toks, start)
		}
	}
	return decls
}

// expressionStarts returns the first token index of each comma-separated
// expression in the list beginning at i.
func expressionStarts(s *scan.Structure, i int) []int {
	if i >= len(s.Tokens) {
		return nil
	}
	starts := []int{i}
	for j := i; j < len(s.Tokens); j++ {
		if s.Enclosing[j] != s.Enclosing[i] || s.Tokens[j].IsPunct(";") {
			break
		}
		if s.Tokens[j].IsPunct(",") {
			starts = append(starts, j+1)
			continue
		}
		if m := s.Match[j]; m > j {
			j = m
		}
		if s.LastOnLine(j) {
			break
		}
	}
	return starts
}

func initOf(toks []token.Token, i int) initKind {
	if i >= len(toks) {
		return initNone
	}
	tok := toks[i]
	switch {
	case tok.IsKeyword("function"), tok.IsPunct("{"):
		return initConstructor
	case tok.Kind == token.Identifier && (tok.Text == "setmetatable" || tok.Text == "require"):
		if i+1 < len(toks) && (toks[i+1].IsPunct("(") || toks[i+1].Kind == token.String) {
			return initConstructor
		}
		return initAmbiguous
	case tok.Kind == token.Identifier:
		return initAmbiguous
	}
	return initValue
}

// isFieldDefinition reports "obj._name =" assignments and "_name =" keys in
// table constructors.
func isFieldDefinition(s *scan.Structure, i int) bool {
	next, ok := s.Next(i)
	if !ok || !next.Is(token.Operator, "=") {
		return false
	}
	prev, ok := s.Prev(i)
	if !ok {
		return false
	}
	if prev.IsPunct(".") {
		return true
	}
	inTable := s.Kind(s.Enclosing[i]) == scan.Brace
	return inTable && (prev.IsPunct("{") || prev.IsPunct(",") || prev.IsPunct(";"))
}
