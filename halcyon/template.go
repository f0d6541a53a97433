package halcyon

import (
	"context"
	"errors"
	"time"
)

// compoundDirs hold templates made of sections. Files in any other
// directory are kept as raw content.
var compoundDirs = map[string]bool{
	"pages":    true,
	"partials": true,
	"layouts":  true,
}

// IsCompound reports whether templates in dir are split into sections.
func IsCompound(dir string) bool { return compoundDirs[dir] }

// Template is a theme file with its parsed sections.
type Template struct {
	Dir      string    `json:"dir"`
	Name     string    `json:"name"`
	Ext      string    `json:"ext"`
	Compound bool      `json:"compound"`
	Sections Sections  `json:"sections"`
	Content  string    `json:"content"`
	MTime    time.Time `json:"mtime"`
	Source   string    `json:"source,omitempty"`

	// stored is the name the template was loaded under, so Save can
	// rename it.
	stored *Record
}

// NewTemplate returns an unsaved template.
func NewTemplate(dir, name, ext string) *Template {
	return &Template{Dir: dir, Name: name, Ext: ext, Compound: IsCompound(dir)}
}

// FromRecord parses a stored record.
func FromRecord(r *Record) *Template {
	t := NewTemplate(r.Dir, r.Name, r.Ext)
	t.Content = r.Content
	t.MTime = r.MTime
	t.Source = r.Source
	if t.Compound {
		t.Sections = Parse(r.Content)
	}
	stored := *r
	t.stored = &stored
	return t
}

// Load reads and parses a template.
func Load(ctx context.Context, ds Datasource, dir, name, ext string) (*Template, error) {
	r, err := ds.SelectOne(ctx, dir, name, ext)
	if err != nil {
		return nil, err
	}
	return FromRecord(r), nil
}

// Path returns "dir/name.ext".
func (t *Template) Path() string { return t.Dir + "/" + t.Name + "." + t.Ext }

// Render returns the content to store: the rendered sections of a compound
// template, the raw content otherwise.
func (t *Template) Render(opts RenderOptions) string {
	if !t.Compound {
		return t.Content
	}
	return Render(t.Sections, opts)
}

// Save writes the template, inserting it when it was not loaded from ds
// and renaming it when Name or Ext changed since Load.
func (t *Template) Save(ctx context.Context, ds Datasource, opts RenderOptions) error {
	content := t.Render(opts)

	var (
		r   *Record
		err error
	)
	if t.stored == nil {
		r, err = ds.Insert(ctx, t.Dir, t.Name, t.Ext, content)
	} else {
		r, err = ds.Update(ctx, t.Dir, t.Name, t.Ext, content, UpdateOptions{
			OldName: t.stored.Name,
			OldExt:  t.stored.Ext,
		})
	}
	if err != nil {
		return err
	}
	*t = *FromRecord(r)
	return nil
}

// Delete removes the template from ds.
func (t *Template) Delete(ctx context.Context, ds Datasource) error {
	name, ext := t.Name, t.Ext
	if t.stored != nil {
		name, ext = t.stored.Name, t.stored.Ext
	}
	if err := ds.Delete(ctx, t.Dir, name, ext); err != nil {
		return err
	}
	t.stored = nil
	return nil
}

// Exists reports whether ds holds the template.
func Exists(ctx context.Context, ds Datasource, dir, name, ext string) (bool, error) {
	_, err := ds.SelectOne(ctx, dir, name, ext)
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	return err == nil, err
}
