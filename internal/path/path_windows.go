//go:build windows

// path_windows.go provides Windows-specific path normalisation.
//
// On Windows, backslashes are native path separators and filepath.ToSlash
// converts them.

package path

import "path/filepath"

// Normalise cleans and validates a template path. Any ".." component is
// rejected rather than resolved.
func Normalise(p string) (string, error) {
	if p == "" {
		return "", ErrInvalid
	}
	return clean(filepath.ToSlash(p))
}
