// Package comments provides lint rules for comment markers.
package comments
