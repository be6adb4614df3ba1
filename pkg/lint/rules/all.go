package rules

// Import all rule subpackages to register them with the global registry.
// This file triggers all init() functions in the rule packages.
import (
	// Import rule groups - each registers its rules via init()
	_ "github.com/leapstack-labs/lualint/pkg/lint/rules/comments"
	_ "github.com/leapstack-labs/lualint/pkg/lint/rules/layout"
	_ "github.com/leapstack-labs/lualint/pkg/lint/rules/naming"
	_ "github.com/leapstack-labs/lualint/pkg/lint/rules/style"
)
