package halcyon

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// FileDatasource stores templates as files under a theme directory:
// <base>/<dir>/<name>.<ext>.
type FileDatasource struct {
	base string
}

var _ Datasource = (*FileDatasource)(nil)

// NewFileDatasource returns a datasource rooted at base. The directory need
// not exist until the first write.
func NewFileDatasource(base string) *FileDatasource {
	return &FileDatasource{base: base}
}

// Name returns "file".
func (d *FileDatasource) Name() string { return "file" }

// Base returns the theme directory.
func (d *FileDatasource) Base() string { return d.base }

// FilePath returns the filesystem path of a template.
func (d *FileDatasource) FilePath(dir, name, ext string) string {
	return filepath.Join(d.base, dir, filepath.FromSlash(name)+"."+ext)
}

// SelectOne reads one template.
func (d *FileDatasource) SelectOne(ctx context.Context, dir, name, ext string) (*Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := ValidateName(dir, name, ext); err != nil {
		return nil, err
	}
	return d.read(dir, name, ext, false)
}

func (d *FileDatasource) read(dir, name, ext string, skipContent bool) (*Record, error) {
	p := d.FilePath(dir, name, ext)
	info, err := os.Stat(p)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, notFound(dir, name, ext)
	}
	if err != nil {
		return nil, fmt.Errorf("stat template: %w", err)
	}
	if info.IsDir() {
		return nil, notFound(dir, name, ext)
	}

	r := &Record{Dir: dir, Name: name, Ext: ext, Size: info.Size(), MTime: info.ModTime(), Source: d.Name()}
	if !skipContent {
		data, err := os.ReadFile(p)
		if err != nil {
			return nil, fmt.Errorf("read template: %w", err)
		}
		r.Content = string(data)
	}
	return r, nil
}

// Select lists the templates in dir, including nested ones, sorted by name.
func (d *FileDatasource) Select(ctx context.Context, dir string, opts SelectOptions) ([]Record, error) {
	if !dirNameRe.MatchString(dir) {
		return nil, fmt.Errorf("%w: directory %q", ErrInvalidName, dir)
	}
	root := filepath.Join(d.base, dir)

	var out []Record
	err := filepath.WalkDir(root, func(p string, e fs.DirEntry, err error) error {
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) && p == root {
				return fs.SkipDir
			}
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if e.IsDir() {
			return nil
		}

		rel, err := filepath.Rel(root, p)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		ext := strings.TrimPrefix(filepath.Ext(rel), ".")
		name := strings.TrimSuffix(rel, "."+ext)
		if ext == "" || ValidateName(dir, name, ext) != nil || !opts.match(name, ext) {
			return nil
		}

		r, err := d.read(dir, name, ext, opts.SkipContent)
		if err != nil {
			return err
		}
		out = append(out, *r)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("select %s: %w", dir, err)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].FileName() < out[j].FileName() })
	return out, nil
}

// Insert creates a template. It fails with ErrExists when the file is
// already there.
func (d *FileDatasource) Insert(ctx context.Context, dir, name, ext, content string) (*Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := ValidateName(dir, name, ext); err != nil {
		return nil, err
	}
	p := d.FilePath(dir, name, ext)
	if _, err := os.Stat(p); err == nil {
		return nil, exists(dir, name, ext)
	}
	if err := d.write(p, content); err != nil {
		return nil, err
	}
	return d.read(dir, name, ext, false)
}

// Update rewrites a template, renaming it first when opts names a
// different old name or extension.
func (d *FileDatasource) Update(ctx context.Context, dir, name, ext, content string, opts UpdateOptions) (*Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := ValidateName(dir, name, ext); err != nil {
		return nil, err
	}
	oldName, oldExt := opts.resolve(name, ext)
	if err := ValidateName(dir, oldName, oldExt); err != nil {
		return nil, err
	}

	oldPath := d.FilePath(dir, oldName, oldExt)
	newPath := d.FilePath(dir, name, ext)
	if _, err := os.Stat(oldPath); err != nil {
		return nil, notFound(dir, oldName, oldExt)
	}
	if oldPath != newPath {
		if _, err := os.Stat(newPath); err == nil {
			return nil, exists(dir, name, ext)
		}
		if err := os.MkdirAll(filepath.Dir(newPath), 0755); err != nil {
			return nil, fmt.Errorf("create template directory: %w", err)
		}
		if err := os.Rename(oldPath, newPath); err != nil {
			return nil, fmt.Errorf("rename template: %w", err)
		}
	}
	if err := d.write(newPath, content); err != nil {
		return nil, err
	}
	return d.read(dir, name, ext, false)
}

// Delete removes a template.
func (d *FileDatasource) Delete(ctx context.Context, dir, name, ext string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := ValidateName(dir, name, ext); err != nil {
		return err
	}
	err := os.Remove(d.FilePath(dir, name, ext))
	if errors.Is(err, fs.ErrNotExist) {
		return notFound(dir, name, ext)
	}
	if err != nil {
		return fmt.Errorf("delete template: %w", err)
	}
	return nil
}

// LastModified returns the template's modification time.
func (d *FileDatasource) LastModified(ctx context.Context, dir, name, ext string) (time.Time, error) {
	if err := ctx.Err(); err != nil {
		return time.Time{}, err
	}
	if err := ValidateName(dir, name, ext); err != nil {
		return time.Time{}, err
	}
	r, err := d.read(dir, name, ext, true)
	if err != nil {
		return time.Time{}, err
	}
	return r.MTime, nil
}

func (d *FileDatasource) write(p, content string) error {
	if err := os.MkdirAll(filepath.Dir(p), 0755); err != nil {
		return fmt.Errorf("create template directory: %w", err)
	}
	if err := os.WriteFile(p, []byte(content), 0644); err != nil {
		return fmt.Errorf("write template: %w", err)
	}
	return nil
}
