// Package naming provides the identifier case convention rule.
//
// Roles are inferred from local syntax only. Identifiers whose role cannot be
// determined (globals, plain table keys) are skipped.
package naming
