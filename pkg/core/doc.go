// Package core defines the shared vocabulary of lualint: diagnostic severities
// and the rule metadata exposed to tooling.
//
// The Golden Rule: pkg/core imports ONLY stdlib.
// All other packages depend on core, not the reverse.
package core
