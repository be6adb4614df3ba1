// Package style provides lint rules for Lua source style choices.
//
// Rules in this package:
//   - quoting: string literals use the configured quote character
//   - trailing-comma: comma placement in multi-line table constructors
//   - declaration-style: one local declaration per statement
//   - semicolon: simple statements end with ';' (or never do)
package style
