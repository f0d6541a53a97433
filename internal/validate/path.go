package validate

import (
	"fmt"
	"slices"
	"strings"

	"github.com/jpl-au/rain/internal/path"
)

// Dirs are the theme directories templates may live in.
var Dirs = []string{"pages", "partials", "layouts", "content", "meta"}

// Path validates a template path and returns the normalised form.
//
// Validation rules:
//   - Empty paths rejected
//   - Null bytes rejected
//   - Max length enforced if maxLen > 0 (0 means no limit, used by reads)
//   - Normalisation via path.Normalise, which rejects ".." components
func Path(p string, maxLen int) (string, error) {
	if p == "" {
		return "", fmt.Errorf("%w: empty path", ErrInvalidPath)
	}
	if strings.ContainsRune(p, 0) {
		return "", fmt.Errorf("%w: null byte in path", ErrInvalidPath)
	}
	if maxLen > 0 && len(p) > maxLen {
		return "", ErrPathTooLong
	}

	norm, err := path.Normalise(p)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidPath, err)
	}
	return norm, nil
}

// TemplatePath is a validated template location.
type TemplatePath struct {
	Dir  string
	Name string
	Ext  string
}

// String returns the normalised "dir/name.ext" form.
func (t TemplatePath) String() string {
	return path.Join(t.Dir, t.Name, t.Ext)
}

// Template validates a full template path ("pages/home.htm"). The first
// segment must be one of Dirs; a missing extension defaults to htm.
func Template(p string, maxLen int) (TemplatePath, error) {
	norm, err := Path(p, maxLen)
	if err != nil {
		return TemplatePath{}, err
	}
	dir, name, ext, err := path.Split(norm)
	if err != nil {
		return TemplatePath{}, fmt.Errorf("%w: %s: expected dir/name.ext", ErrInvalidPath, norm)
	}
	if err := Dir(dir); err != nil {
		return TemplatePath{}, err
	}
	return TemplatePath{Dir: dir, Name: name, Ext: ext}, nil
}

// Dir checks that dir is a theme directory.
func Dir(dir string) error {
	if !slices.Contains(Dirs, dir) {
		return fmt.Errorf("%w: %q (valid: %s)", ErrUnknownDir, dir, strings.Join(Dirs, ", "))
	}
	return nil
}
