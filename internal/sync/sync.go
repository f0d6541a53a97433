// Package sync copies templates between datasource layers, for example
// from the theme files on disk into the database layer and back.
package sync

import (
	"context"
	"fmt"
	"io"

	"github.com/jpl-au/rain/halcyon"
	"github.com/jpl-au/rain/internal/progress"
)

// Options configures a sync operation.
type Options struct {
	DryRun bool     // Show what would be synced without syncing
	Dirs   []string // Theme directories to sync
}

// Result contains the outcome of a sync operation.
type Result struct {
	Updated int `json:"updated"`
	Added   int `json:"added"`
}

// Changes lists the templates whose content differs between two layers.
type Changes struct {
	Changed []halcyon.Record // present in both, content differs
	Added   []halcyon.Record // missing from the destination
}

// Empty returns true if there are no changes.
func (c Changes) Empty() bool {
	return len(c.Changed) == 0 && len(c.Added) == 0
}

// Total returns the total number of changes.
func (c Changes) Total() int {
	return len(c.Changed) + len(c.Added)
}

// Run copies every changed or missing template from src into dst. Progress
// lines go to w.
func Run(ctx context.Context, w io.Writer, src, dst halcyon.Datasource, opts Options) (Result, error) {
	var result Result

	changes, err := Detect(ctx, src, dst, opts.Dirs)
	if err != nil {
		return result, err
	}
	if changes.Empty() {
		return result, nil
	}

	prog := progress.New("Syncing", changes.Total())
	defer prog.Done()

	for _, r := range changes.Changed {
		if opts.DryRun {
			fmt.Fprintf(w, "Would update: %s\n", r.Path())
		} else {
			if _, err := dst.Update(ctx, r.Dir, r.Name, r.Ext, r.Content, halcyon.UpdateOptions{}); err != nil {
				return result, fmt.Errorf("updating %s: %w", r.Path(), err)
			}
			fmt.Fprintf(w, "Updated: %s\n", r.Path())
			result.Updated++
		}
		prog.Increment()
		prog.Print()
	}

	for _, r := range changes.Added {
		if opts.DryRun {
			fmt.Fprintf(w, "Would add: %s\n", r.Path())
		} else {
			if _, err := dst.Insert(ctx, r.Dir, r.Name, r.Ext, r.Content); err != nil {
				return result, fmt.Errorf("adding %s: %w", r.Path(), err)
			}
			fmt.Fprintf(w, "Added: %s\n", r.Path())
			result.Added++
		}
		prog.Increment()
		prog.Print()
	}

	return result, nil
}
