// Package theme opens the datasource a theme's templates are stored in and
// offers the path-based operations commands and MCP tools share.
//
// Template paths have the form "dir/name.ext" where dir is one of the theme
// directories (pages, partials, layouts, content, meta). A missing extension
// defaults to htm.
package theme

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/jpl-au/rain/halcyon"
	"github.com/jpl-au/rain/internal/config"
	"github.com/jpl-au/rain/internal/validate"
)

// ErrUnknownLayer is returned by Layer for a name the service does not use.
var ErrUnknownLayer = errors.New("unknown datasource layer")

// Options override configuration when opening a theme.
type Options struct {
	Path       string // theme directory, overrides theme.path
	Datasource string // file, db or auto, overrides theme.datasource
	Logger     *slog.Logger
}

// Service reads and writes the templates of one theme.
type Service struct {
	base       string
	kind       string
	ds         halcyon.Datasource
	cache      *halcyon.CachedDatasource
	layers     []halcyon.Datasource
	closers    []io.Closer
	watcher    *halcyon.Watcher
	log        *slog.Logger
	maxPath    int
	maxContent int64
	render     halcyon.RenderOptions
}

// Open builds the datasource chosen by cfg. Always call Close when done.
func Open(cfg *config.Config, opts Options) (*Service, error) {
	base := opts.Path
	if base == "" {
		base = cfg.ThemePath()
	}
	kind := opts.Datasource
	if kind == "" {
		kind = cfg.Datasource()
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	s := &Service{
		base:       base,
		kind:       kind,
		log:        logger,
		maxPath:    cfg.MaxPath(),
		maxContent: cfg.MaxContent(),
		render:     halcyon.RenderOptions{BareCode: cfg.BareCode()},
	}

	file := halcyon.NewFileDatasource(base)
	openDB := func() (*halcyon.DBDatasource, error) {
		p := cfg.DBPath()
		if opts.Path != "" && cfg.Theme.DB == "" {
			p = filepath.Join(base, config.DefaultDBPath)
		}
		if err := os.MkdirAll(filepath.Dir(p), 0755); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
		db, err := halcyon.OpenDB(p, halcyon.DefaultSource)
		if err != nil {
			return nil, err
		}
		s.closers = append(s.closers, db)
		return db, nil
	}

	switch kind {
	case config.DatasourceFile:
		s.layers = []halcyon.Datasource{file}
	case config.DatasourceDB:
		db, err := openDB()
		if err != nil {
			return nil, err
		}
		s.layers = []halcyon.Datasource{db}
	case config.DatasourceAuto:
		db, err := openDB()
		if err != nil {
			return nil, err
		}
		s.layers = []halcyon.Datasource{db, file}
	default:
		return nil, fmt.Errorf("%w: datasource must be file, db or auto, got %q", config.ErrInvalidValue, kind)
	}

	var ds halcyon.Datasource = s.layers[0]
	if len(s.layers) > 1 {
		auto, err := halcyon.NewAutoDatasource(s.layers...)
		if err != nil {
			s.Close()
			return nil, err
		}
		ds = auto
	}
	s.cache = halcyon.NewCachedDatasource(ds)
	s.ds = s.cache

	if cfg.Watch() && kind != config.DatasourceDB {
		w, err := halcyon.WatchCache(base, s.cache, logger)
		if err != nil {
			logger.Warn("theme watch disabled", "path", base, "error", err)
		} else {
			s.watcher = w
		}
	}
	return s, nil
}

// Close stops the watcher and closes any database.
func (s *Service) Close() error {
	var errs []error
	if s.watcher != nil {
		errs = append(errs, s.watcher.Close())
		s.watcher = nil
	}
	for _, c := range s.closers {
		errs = append(errs, c.Close())
	}
	s.closers = nil
	return errors.Join(errs...)
}

// Base returns the theme directory.
func (s *Service) Base() string { return s.base }

// Kind returns the datasource kind: file, db or auto.
func (s *Service) Kind() string { return s.kind }

// Datasource returns the cached datasource every operation goes through.
func (s *Service) Datasource() halcyon.Datasource { return s.ds }

// Cache returns the template cache.
func (s *Service) Cache() *halcyon.CachedDatasource { return s.cache }

// Watching reports whether filesystem changes invalidate the cache.
func (s *Service) Watching() bool { return s.watcher != nil }

// RenderOptions returns how compound templates are rendered on save.
func (s *Service) RenderOptions() halcyon.RenderOptions { return s.render }

// Layers returns the datasources in use, top first. The auto datasource
// has a db and a file layer; file and db have one.
func (s *Service) Layers() []halcyon.Datasource {
	return append([]halcyon.Datasource(nil), s.layers...)
}

// Layer returns the layer with the given name ("db" or "file"). The file
// layer is available for every theme so that a db theme can be synced
// from files on disk.
func (s *Service) Layer(name string) (halcyon.Datasource, error) {
	for _, l := range s.layers {
		if l.Name() == name {
			return l, nil
		}
	}
	if name == "file" {
		return halcyon.NewFileDatasource(s.base), nil
	}
	return nil, fmt.Errorf("%w: %q (datasource %s)", ErrUnknownLayer, name, s.kind)
}

// Parse validates a template path ("pages/home.htm") against the
// configured path limit.
func (s *Service) Parse(p string) (validate.TemplatePath, error) {
	return validate.Template(p, s.maxPath)
}

// List returns the templates in a theme directory without their content.
func (s *Service) List(ctx context.Context, dir string, opts halcyon.SelectOptions) ([]halcyon.Record, error) {
	if err := validate.Dir(dir); err != nil {
		return nil, err
	}
	return s.ds.Select(ctx, dir, opts)
}

// Get loads and parses a template.
func (s *Service) Get(ctx context.Context, p string) (*halcyon.Template, error) {
	tp, err := validate.Template(p, 0)
	if err != nil {
		return nil, err
	}
	return halcyon.Load(ctx, s.ds, tp.Dir, tp.Name, tp.Ext)
}

// Put writes raw content to a template, creating it when absent. The
// returned bool reports whether the template was created.
func (s *Service) Put(ctx context.Context, p, content string) (*halcyon.Template, bool, error) {
	tp, err := s.Parse(p)
	if err != nil {
		return nil, false, err
	}
	if err := validate.Content(content, s.maxContent); err != nil {
		return nil, false, err
	}

	created := false
	r, err := s.ds.Update(ctx, tp.Dir, tp.Name, tp.Ext, content, halcyon.UpdateOptions{})
	if errors.Is(err, halcyon.ErrNotFound) {
		created = true
		r, err = s.ds.Insert(ctx, tp.Dir, tp.Name, tp.Ext, content)
	}
	if err != nil {
		return nil, false, err
	}
	s.log.Debug("template written", "path", tp.String(), "created", created, "source", r.Source)
	return halcyon.FromRecord(r), created, nil
}

// Save renders a template with the theme's options and stores it.
func (s *Service) Save(ctx context.Context, t *halcyon.Template) error {
	if _, err := s.Parse(t.Path()); err != nil {
		return err
	}
	if err := validate.Content(t.Render(s.render), s.maxContent); err != nil {
		return err
	}
	return t.Save(ctx, s.ds, s.render)
}

// Move renames a template within its directory.
func (s *Service) Move(ctx context.Context, from, to string) (*halcyon.Template, error) {
	src, err := validate.Template(from, 0)
	if err != nil {
		return nil, err
	}
	dst, err := s.Parse(to)
	if err != nil {
		return nil, err
	}
	if src.Dir != dst.Dir {
		return nil, fmt.Errorf("%w: cannot move %s to another directory (%s)", validate.ErrInvalidPath, src, dst.Dir)
	}
	t, err := halcyon.Load(ctx, s.ds, src.Dir, src.Name, src.Ext)
	if err != nil {
		return nil, err
	}
	r, err := s.ds.Update(ctx, dst.Dir, dst.Name, dst.Ext, t.Content, halcyon.UpdateOptions{
		OldName: src.Name,
		OldExt:  src.Ext,
	})
	if err != nil {
		return nil, err
	}
	return halcyon.FromRecord(r), nil
}

// Delete removes a template.
func (s *Service) Delete(ctx context.Context, p string) error {
	tp, err := validate.Template(p, 0)
	if err != nil {
		return err
	}
	return s.ds.Delete(ctx, tp.Dir, tp.Name, tp.Ext)
}
