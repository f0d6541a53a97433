// Package glob matches template file names against glob patterns.
//
// Extends path.Match with ** for any number of path segments, so that
// "**/menu.htm" finds a partial at any nesting depth under its directory.
package glob

import (
	"path"
	"strings"
)

// Match reports whether name matches the glob pattern. Names use forward
// slashes ("nav/menu.htm"). A pattern without a slash also matches the last
// segment alone, so "menu*" finds "nav/menu.htm". Returns an error if the
// pattern is malformed.
func Match(pattern, name string) (bool, error) {
	if strings.Contains(pattern, "**") {
		parts := strings.SplitN(pattern, "**", 2)
		prefix := strings.TrimSuffix(parts[0], "/")
		suffix := strings.TrimPrefix(parts[1], "/")

		if prefix != "" && name != prefix && !strings.HasPrefix(name, prefix+"/") {
			return false, nil
		}
		if suffix == "" {
			return true, nil
		}
		segments := strings.Split(name, "/")
		for i := range segments {
			m, err := Match(suffix, strings.Join(segments[i:], "/"))
			if err != nil || m {
				return m, err
			}
		}
		return false, nil
	}

	matched, err := path.Match(pattern, name)
	if err != nil || matched {
		return matched, err
	}
	if strings.Contains(pattern, "/") {
		return false, nil
	}
	return path.Match(pattern, path.Base(name))
}
