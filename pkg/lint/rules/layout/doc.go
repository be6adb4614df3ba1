// Package layout provides lint rules for whitespace and file layout.
//
// Rules in this package:
//   - indentation: leading whitespace is a multiple of the indent width
//   - spacing: one space around control keywords and opening braces
//   - eof-newline: files end with a newline
//   - blank-line-after-block: a blank line follows each block 'end'
//   - line-length: lines fit in the configured width
//   - trailing-whitespace: no whitespace before a line break
package layout
