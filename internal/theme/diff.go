package theme

import (
	"context"
	"errors"

	"github.com/jpl-au/rain/halcyon"
	"github.com/jpl-au/rain/internal/diff"
)

// Diff compares two templates read through the theme's datasource.
func (s *Service) Diff(ctx context.Context, p1, p2 string) (diff.Result, error) {
	t1, err := s.Get(ctx, p1)
	if err != nil {
		return diff.Result{}, err
	}
	t2, err := s.Get(ctx, p2)
	if err != nil {
		return diff.Result{}, err
	}
	return diff.Compute(t1.Content, t2.Content, t1.Path(), t2.Path()), nil
}

// DiffLayers compares the copies of one template held by two layers, given
// as a pair like "db:file". A layer without the template compares as empty.
func (s *Service) DiffLayers(ctx context.Context, p, layers string) (diff.Result, error) {
	a, b, err := diff.ParseLayers(layers)
	if err != nil {
		return diff.Result{}, err
	}
	tp, err := s.Parse(p)
	if err != nil {
		return diff.Result{}, err
	}

	read := func(name string) (content, label string, err error) {
		ds, err := s.Layer(name)
		if err != nil {
			return "", "", err
		}
		label = name + ":" + tp.String()
		r, err := ds.SelectOne(ctx, tp.Dir, tp.Name, tp.Ext)
		if errors.Is(err, halcyon.ErrNotFound) {
			return "", label + " (missing)", nil
		}
		if err != nil {
			return "", "", err
		}
		return r.Content, label, nil
	}

	oldContent, oldLabel, err := read(a)
	if err != nil {
		return diff.Result{}, err
	}
	newContent, newLabel, err := read(b)
	if err != nil {
		return diff.Result{}, err
	}
	return diff.Compute(oldContent, newContent, oldLabel, newLabel), nil
}
