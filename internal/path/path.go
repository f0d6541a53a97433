// Package path provides theme template path normalisation.
//
// Template paths have the form "dir/name.ext", where dir is one of the theme
// directories (pages, partials, layouts, content, meta) and name may itself
// contain slashes for nested templates ("partials/blog/card.htm").
//
// Normalisation rules:
//   - Paths use forward slashes
//   - No leading or trailing slashes
//   - No "." or ".." components
//   - Empty paths are rejected
package path

import (
	"errors"
	"strings"
)

// ErrInvalid indicates the provided template path is invalid.
var ErrInvalid = errors.New("invalid template path")

// DefaultExtension is used when a template path has no extension.
const DefaultExtension = "htm"

// Split breaks a normalised template path into its theme directory, name
// and extension. A missing extension yields DefaultExtension.
//
//	Split("partials/blog/card.htm") -> ("partials", "blog/card", "htm")
func Split(p string) (dir, name, ext string, err error) {
	dir, rest, ok := strings.Cut(p, "/")
	if !ok || dir == "" || rest == "" {
		return "", "", "", ErrInvalid
	}
	name, ext = rest, DefaultExtension
	base := rest[strings.LastIndex(rest, "/")+1:]
	if i := strings.LastIndex(base, "."); i > 0 {
		name = rest[:len(rest)-len(base)+i]
		ext = base[i+1:]
	}
	if name == "" || ext == "" {
		return "", "", "", ErrInvalid
	}
	return dir, name, ext, nil
}

// Join is the inverse of Split.
func Join(dir, name, ext string) string {
	if ext == "" {
		ext = DefaultExtension
	}
	return dir + "/" + name + "." + ext
}

// Direct reports whether path is a direct child of prefix.
// Both paths should use forward slashes. The prefix is normalised
// (backslashes converted, trailing slash removed) to handle raw user input.
//
// Examples (prefix="partials"):
//   - "partials/nav.htm" -> true
//   - "partials/blog/card.htm" -> false
func Direct(path, prefix string) bool {
	prefix = strings.ReplaceAll(prefix, "\\", "/")
	prefix = strings.TrimSuffix(prefix, "/")

	if path == prefix {
		return true
	}

	var remainder string
	if prefix == "" {
		remainder = path
	} else if strings.HasPrefix(path, prefix+"/") {
		remainder = path[len(prefix)+1:]
	} else {
		return false
	}
	return !strings.Contains(remainder, "/")
}

// clean applies the shared rules once separators are forward slashes.
func clean(p string) (string, error) {
	segs := strings.Split(p, "/")
	out := segs[:0]
	for _, seg := range segs {
		switch seg {
		case "", ".":
			continue
		case "..":
			return "", ErrInvalid
		}
		out = append(out, seg)
	}
	p = strings.Join(out, "/")
	if p == "" {
		return "", ErrInvalid
	}
	return p, nil
}
