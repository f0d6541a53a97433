//go:build !windows

// path_unix.go provides Unix-specific path normalisation (Linux, macOS, etc).
//
// On Unix, backslashes are valid filename characters, so filepath.ToSlash
// leaves them alone. Windows-style paths from shared databases or fixtures
// are converted explicitly.

package path

import "strings"

// Normalise cleans and validates a template path. Any ".." component is
// rejected rather than resolved.
func Normalise(p string) (string, error) {
	if p == "" {
		return "", ErrInvalid
	}
	return clean(strings.ReplaceAll(p, "\\", "/"))
}
