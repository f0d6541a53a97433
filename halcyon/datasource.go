package halcyon

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/jpl-au/rain/internal/glob"
)

var (
	// ErrNotFound is returned when a template does not exist.
	ErrNotFound = errors.New("template not found")
	// ErrExists is returned when creating or renaming onto an existing template.
	ErrExists = errors.New("template already exists")
	// ErrInvalidName is returned for directory, file or extension names that
	// could escape the theme or cannot be stored.
	ErrInvalidName = errors.New("invalid template name")
)

// MaxNesting is how many directories deep a template name may go.
const MaxNesting = 5

// Record is one stored template.
type Record struct {
	Dir     string    `json:"dir"`
	Name    string    `json:"name"` // may contain "/" for nested templates
	Ext     string    `json:"ext"`
	Content string    `json:"content,omitempty"`
	Size    int64     `json:"size"`
	MTime   time.Time `json:"mtime"`

	// Source names the datasource the record was read from.
	Source string `json:"source,omitempty"`
}

// FileName returns "name.ext".
func (r Record) FileName() string { return r.Name + "." + r.Ext }

// Path returns "dir/name.ext".
func (r Record) Path() string { return r.Dir + "/" + r.FileName() }

// SelectOptions filters Select.
type SelectOptions struct {
	// Extensions limits results to these extensions. Empty means any.
	Extensions []string
	// FileMatch is a glob applied to "name.ext". ** matches any number of
	// subdirectories.
	FileMatch string
	// SkipContent leaves Record.Content empty.
	SkipContent bool
}

func (o SelectOptions) match(name, ext string) bool {
	if len(o.Extensions) > 0 {
		found := false
		for _, e := range o.Extensions {
			if strings.EqualFold(e, ext) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if o.FileMatch != "" {
		ok, err := glob.Match(o.FileMatch, name+"."+ext)
		if err != nil || !ok {
			return false
		}
	}
	return true
}

// UpdateOptions describes a rename performed by Update. Empty fields mean
// the name or extension is unchanged.
type UpdateOptions struct {
	OldName string
	OldExt  string
}

// Datasource stores templates grouped by theme directory.
type Datasource interface {
	// Name identifies the datasource in listings and logs ("file", "db").
	Name() string
	SelectOne(ctx context.Context, dir, name, ext string) (*Record, error)
	Select(ctx context.Context, dir string, opts SelectOptions) ([]Record, error)
	Insert(ctx context.Context, dir, name, ext, content string) (*Record, error)
	Update(ctx context.Context, dir, name, ext, content string, opts UpdateOptions) (*Record, error)
	Delete(ctx context.Context, dir, name, ext string) error
	LastModified(ctx context.Context, dir, name, ext string) (time.Time, error)
}

// Tombstoner is implemented by datasources that can mark a template deleted
// without holding it, hiding it in the layers below.
type Tombstoner interface {
	Tombstone(ctx context.Context, dir, name, ext string) error
	// Tombstoned returns the "name.ext" of every tombstone in dir.
	Tombstoned(ctx context.Context, dir string) (map[string]bool, error)
}

var (
	dirNameRe  = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)
	fileNameRe = regexp.MustCompile(`^[A-Za-z0-9_./-]+$`)
	extRe      = regexp.MustCompile(`^[A-Za-z0-9]+$`)
)

// ValidateName checks a directory, name and extension triple.
func ValidateName(dir, name, ext string) error {
	if !dirNameRe.MatchString(dir) {
		return fmt.Errorf("%w: directory %q", ErrInvalidName, dir)
	}
	if !extRe.MatchString(ext) {
		return fmt.Errorf("%w: extension %q", ErrInvalidName, ext)
	}
	if !fileNameRe.MatchString(name) || strings.HasPrefix(name, "/") || strings.HasSuffix(name, "/") {
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	segs := strings.Split(name, "/")
	for _, seg := range segs {
		if seg == "" || seg == "." || seg == ".." {
			return fmt.Errorf("%w: %q", ErrInvalidName, name)
		}
	}
	if len(segs) > MaxNesting {
		return fmt.Errorf("%w: %q is nested more than %d levels", ErrInvalidName, name, MaxNesting)
	}
	return nil
}

func notFound(dir, name, ext string) error {
	return fmt.Errorf("%w: %s/%s.%s", ErrNotFound, dir, name, ext)
}

func exists(dir, name, ext string) error {
	return fmt.Errorf("%w: %s/%s.%s", ErrExists, dir, name, ext)
}

// resolve returns the name and extension an update moves from.
func (o UpdateOptions) resolve(name, ext string) (string, string) {
	oldName, oldExt := o.OldName, o.OldExt
	if oldName == "" {
		oldName = name
	}
	if oldExt == "" {
		oldExt = ext
	}
	return oldName, oldExt
}
