// Package validate provides input validation for rain's theme templates.
//
// Validation sits at the boundary between user input (CLI arguments, MCP
// tool calls) and the datasources. It rejects clearly dangerous inputs such
// as null bytes, path traversal and oversized content, and checks that a
// template lives in one of the theme directories.
//
// All validation errors wrap one of the sentinel errors defined in errors.go:
//
//	if errors.Is(err, validate.ErrInvalidPath) {
//	    // handle invalid path
//	}
package validate
