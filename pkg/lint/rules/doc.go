// Package rules provides the Lua style rule implementations for lualint.
//
// Rules are organized by group:
//   - style: quoting, trailing-comma, declaration-style, semicolon
//   - layout: indentation, spacing, eof-newline, blank-line-after-block,
//     line-length, trailing-whitespace
//   - naming: naming
//   - comments: comment-style
//
// To register all rules with the global lint registry, import this package
// with a blank identifier:
//
//	import _ "github.com/leapstack-labs/lualint/pkg/lint/rules"
//
// Individual groups can also be imported:
//
//	import _ "github.com/leapstack-labs/lualint/pkg/lint/rules/style"
package rules
