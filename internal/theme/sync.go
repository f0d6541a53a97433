package theme

import (
	"context"
	"fmt"
	"io"

	"github.com/jpl-au/rain/internal/sync"
	"github.com/jpl-au/rain/internal/validate"
)

// Sync copies templates from one layer to another. Empty opts.Dirs means
// every theme directory. The cache is flushed after a real sync because
// layer writes bypass it.
func (s *Service) Sync(ctx context.Context, w io.Writer, from, to string, opts sync.Options) (sync.Result, error) {
	if from == to {
		return sync.Result{}, fmt.Errorf("source and destination are both %s", from)
	}
	if len(opts.Dirs) == 0 {
		opts.Dirs = validate.Dirs
	}
	for _, d := range opts.Dirs {
		if err := validate.Dir(d); err != nil {
			return sync.Result{}, err
		}
	}
	src, err := s.Layer(from)
	if err != nil {
		return sync.Result{}, err
	}
	dst, err := s.Layer(to)
	if err != nil {
		return sync.Result{}, err
	}

	res, err := sync.Run(ctx, w, src, dst, opts)
	if !opts.DryRun {
		s.cache.Flush()
	}
	if err != nil {
		return res, err
	}
	s.log.Debug("layers synced", "from", from, "to", to, "updated", res.Updated, "added", res.Added)
	return res, nil
}
