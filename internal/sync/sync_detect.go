// sync_detect.go compares two datasource layers directory by directory.
// Templates only present in the destination are left alone: sync never
// deletes.

package sync

import (
	"context"
	"errors"
	"fmt"

	"github.com/jpl-au/rain/halcyon"
)

// Detect returns the templates in dirs that dst is missing or holds with
// different content.
func Detect(ctx context.Context, src, dst halcyon.Datasource, dirs []string) (Changes, error) {
	var changes Changes

	for _, dir := range dirs {
		recs, err := src.Select(ctx, dir, halcyon.SelectOptions{})
		if err != nil {
			return changes, fmt.Errorf("reading %s from %s: %w", dir, src.Name(), err)
		}
		for _, r := range recs {
			have, err := dst.SelectOne(ctx, r.Dir, r.Name, r.Ext)
			switch {
			case errors.Is(err, halcyon.ErrNotFound):
				changes.Added = append(changes.Added, r)
			case err != nil:
				return changes, fmt.Errorf("reading %s from %s: %w", r.Path(), dst.Name(), err)
			case have.Content != r.Content:
				changes.Changed = append(changes.Changed, r)
			}
		}
	}
	return changes, nil
}
