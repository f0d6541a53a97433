package halcyon

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"
)

// AutoDatasource stacks datasources. Layer 0 is the top: it receives every
// write and its records shadow the layers below. A tombstone in a layer
// hides the template in every layer beneath it.
type AutoDatasource struct {
	layers []Datasource
}

var _ Datasource = (*AutoDatasource)(nil)

// NewAutoDatasource returns a layered datasource, top layer first.
func NewAutoDatasource(layers ...Datasource) (*AutoDatasource, error) {
	if len(layers) == 0 {
		return nil, errors.New("auto datasource needs at least one layer")
	}
	return &AutoDatasource{layers: layers}, nil
}

// Name returns "auto".
func (a *AutoDatasource) Name() string { return "auto" }

// Layers returns the datasources, top first.
func (a *AutoDatasource) Layers() []Datasource {
	return append([]Datasource(nil), a.layers...)
}

func (a *AutoDatasource) top() Datasource { return a.layers[0] }

// tombstoned reports whether layer i hides name.ext.
func tombstoned(ctx context.Context, ds Datasource, dir, file string) (bool, error) {
	t, ok := ds.(Tombstoner)
	if !ok {
		return false, nil
	}
	set, err := t.Tombstoned(ctx, dir)
	if err != nil {
		return false, err
	}
	return set[file], nil
}

// find returns the first layer holding a live record and its index. A
// tombstone reached first ends the search with ErrNotFound.
func (a *AutoDatasource) find(ctx context.Context, dir, name, ext string) (*Record, int, error) {
	for i, ds := range a.layers {
		r, err := ds.SelectOne(ctx, dir, name, ext)
		if err == nil {
			return r, i, nil
		}
		if !errors.Is(err, ErrNotFound) {
			return nil, -1, err
		}
		hidden, err := tombstoned(ctx, ds, dir, name+"."+ext)
		if err != nil {
			return nil, -1, err
		}
		if hidden {
			break
		}
	}
	return nil, -1, notFound(dir, name, ext)
}

// SelectOne reads from the highest layer holding the template.
func (a *AutoDatasource) SelectOne(ctx context.Context, dir, name, ext string) (*Record, error) {
	r, _, err := a.find(ctx, dir, name, ext)
	return r, err
}

// Select merges every layer. Higher layers win on name collisions and their
// tombstones drop the name from lower layers.
func (a *AutoDatasource) Select(ctx context.Context, dir string, opts SelectOptions) ([]Record, error) {
	seen := make(map[string]bool)
	var out []Record
	for _, ds := range a.layers {
		recs, err := ds.Select(ctx, dir, opts)
		if err != nil {
			return nil, fmt.Errorf("%s layer: %w", ds.Name(), err)
		}
		for _, r := range recs {
			if seen[r.FileName()] {
				continue
			}
			seen[r.FileName()] = true
			out = append(out, r)
		}
		if t, ok := ds.(Tombstoner); ok {
			dead, err := t.Tombstoned(ctx, dir)
			if err != nil {
				return nil, fmt.Errorf("%s layer: %w", ds.Name(), err)
			}
			for f := range dead {
				seen[f] = true
			}
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].FileName() < out[j].FileName() })
	return out, nil
}

// Insert writes to the top layer. It fails when any layer already shows
// the template.
func (a *AutoDatasource) Insert(ctx context.Context, dir, name, ext, content string) (*Record, error) {
	_, _, err := a.find(ctx, dir, name, ext)
	if err == nil {
		return nil, exists(dir, name, ext)
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, err
	}
	return a.top().Insert(ctx, dir, name, ext, content)
}

// Update copies the template into the top layer when it lives lower down.
// A rename hides the old name in the lower layers.
func (a *AutoDatasource) Update(ctx context.Context, dir, name, ext, content string, opts UpdateOptions) (*Record, error) {
	oldName, oldExt := opts.resolve(name, ext)
	_, layer, err := a.find(ctx, dir, oldName, oldExt)
	if err != nil {
		return nil, err
	}
	renamed := oldName != name || oldExt != ext
	if renamed {
		if _, _, err := a.find(ctx, dir, name, ext); err == nil {
			return nil, exists(dir, name, ext)
		} else if !errors.Is(err, ErrNotFound) {
			return nil, err
		}
	}

	top := a.top()
	var r *Record
	if layer == 0 {
		r, err = top.Update(ctx, dir, name, ext, content, opts)
	} else {
		r, err = top.Insert(ctx, dir, name, ext, content)
	}
	if err != nil {
		return nil, err
	}

	if renamed && a.below(ctx, dir, oldName, oldExt) {
		if err := a.hide(ctx, dir, oldName, oldExt); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Delete removes the template from the top layer and tombstones it when a
// lower layer still holds it.
func (a *AutoDatasource) Delete(ctx context.Context, dir, name, ext string) error {
	_, layer, err := a.find(ctx, dir, name, ext)
	if err != nil {
		return err
	}
	if layer == 0 {
		if err := a.top().Delete(ctx, dir, name, ext); err != nil {
			return err
		}
	}
	if a.below(ctx, dir, name, ext) {
		return a.hide(ctx, dir, name, ext)
	}
	return nil
}

// below reports whether a layer under the top holds a live record.
func (a *AutoDatasource) below(ctx context.Context, dir, name, ext string) bool {
	for _, ds := range a.layers[1:] {
		if _, err := ds.SelectOne(ctx, dir, name, ext); err == nil {
			return true
		}
	}
	return false
}

func (a *AutoDatasource) hide(ctx context.Context, dir, name, ext string) error {
	t, ok := a.top().(Tombstoner)
	if !ok {
		return fmt.Errorf("%s layer cannot hide %s/%s.%s", a.top().Name(), dir, name, ext)
	}
	return t.Tombstone(ctx, dir, name, ext)
}

// LastModified returns the modification time from the layer that wins.
func (a *AutoDatasource) LastModified(ctx context.Context, dir, name, ext string) (time.Time, error) {
	_, layer, err := a.find(ctx, dir, name, ext)
	if err != nil {
		return time.Time{}, err
	}
	return a.layers[layer].LastModified(ctx, dir, name, ext)
}
