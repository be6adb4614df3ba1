package naming

import "regexp"

var (
	lowerCamelRe = regexp.MustCompile(`^[a-z][a-zA-Z0-9]*$`)
	capitalRe    = regexp.MustCompile(`^[A-Z][a-zA-Z0-9]*[a-z][a-zA-Z0-9]*$`)
	upperSnakeRe = regexp.MustCompile(`^[A-Z][A-Z0-9]*(_[A-Z0-9]+)*$`)
)

// IsLowerCamel reports names like "fooBar" or "x".
func IsLowerCamel(name string) bool { return lowerCamelRe.MatchString(name) }

// IsCapital reports names like "FooBar". A run of capitals without any
// lowercase letter is a constant, not CapitalCase.
func IsCapital(name string) bool { return capitalRe.MatchString(name) }

// IsUpperSnake reports names like "MAX_SIZE" or "A".
func IsUpperSnake(name string) bool { return upperSnakeRe.MatchString(name) }

// IsPrivate reports "_" or "_" followed by lowerCamelCase or UPPER_SNAKE_CASE.
func IsPrivate(name string) bool {
	if name == "_" {
		return true
	}
	if len(name) < 2 || name[0] != '_' {
		return false
	}
	rest := name[1:]
	return IsLowerCamel(rest) || IsUpperSnake(rest)
}
