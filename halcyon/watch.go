package halcyon

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
)

// Change describes a template modified on disk.
type Change struct {
	Op   string `json:"op"` // create, write, remove or rename
	Dir  string `json:"dir"`
	Name string `json:"name"`
	Ext  string `json:"ext"`
}

// Watcher follows a theme directory and reports template changes. It is
// used to drop stale cache entries when files are edited outside rain.
type Watcher struct {
	base    string
	watcher *fsnotify.Watcher
	log     *slog.Logger
	notify  func(Change)

	stopCh    chan struct{}
	doneCh    chan struct{}
	closeOnce sync.Once
}

// Watch starts watching base and every directory beneath it. notify is
// called from the watcher goroutine for each template change.
func Watch(base string, logger *slog.Logger, notify func(Change)) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.Default()
	}
	w := &Watcher{
		base:    base,
		watcher: fw,
		log:     logger.With("component", "watcher"),
		notify:  notify,
		stopCh:  make(chan struct{}),
		doneCh:  make(chan struct{}),
	}
	if err := w.addTree(base); err != nil {
		fw.Close()
		return nil, err
	}
	go w.run()
	return w, nil
}

// WatchCache drops entries from c when their files change.
func WatchCache(base string, c *CachedDatasource, logger *slog.Logger) (*Watcher, error) {
	return Watch(base, logger, func(ch Change) {
		c.Invalidate(ch.Dir, ch.Name, ch.Ext)
	})
}

func (w *Watcher) addTree(root string) error {
	return filepath.WalkDir(root, func(p string, e os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !e.IsDir() {
			return nil
		}
		if p != root && strings.HasPrefix(e.Name(), ".") {
			return filepath.SkipDir
		}
		return w.watcher.Add(p)
	})
}

// Close stops the watcher and waits for its goroutine to exit.
func (w *Watcher) Close() error {
	var err error
	w.closeOnce.Do(func() {
		close(w.stopCh)
		<-w.doneCh
		err = w.watcher.Close()
	})
	return err
}

func (w *Watcher) run() {
	defer close(w.doneCh)
	for {
		select {
		case <-w.stopCh:
			return
		case ev, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handle(ev)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.log.Warn("watch error", "error", err)
		}
	}
}

func (w *Watcher) handle(ev fsnotify.Event) {
	var op string
	switch {
	case ev.Has(fsnotify.Create):
		op = "create"
		if info, err := os.Stat(ev.Name); err == nil && info.IsDir() {
			if err := w.addTree(ev.Name); err != nil {
				w.log.Warn("watch directory", "path", ev.Name, "error", err)
			}
			return
		}
	case ev.Has(fsnotify.Write):
		op = "write"
	case ev.Has(fsnotify.Remove):
		op = "remove"
	case ev.Has(fsnotify.Rename):
		op = "rename"
	default:
		return
	}

	ch, ok := w.change(ev.Name)
	if !ok {
		return
	}
	ch.Op = op
	w.log.Debug("template changed", "op", op, "path", ch.Dir+"/"+ch.Name+"."+ch.Ext)
	if w.notify != nil {
		w.notify(ch)
	}
}

// change maps a filesystem path to the template it holds.
func (w *Watcher) change(p string) (Change, bool) {
	rel, err := filepath.Rel(w.base, p)
	if err != nil {
		return Change{}, false
	}
	dir, file, ok := strings.Cut(filepath.ToSlash(rel), "/")
	if !ok {
		return Change{}, false
	}
	ext := strings.TrimPrefix(filepath.Ext(file), ".")
	name := strings.TrimSuffix(file, "."+ext)
	if ext == "" || ValidateName(dir, name, ext) != nil {
		return Change{}, false
	}
	return Change{Dir: dir, Name: name, Ext: ext}, true
}
