package halcyon

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countingDatasource counts the reads that reach the wrapped datasource.
type countingDatasource struct {
	Datasource
	reads int
}

func (c *countingDatasource) SelectOne(ctx context.Context, dir, name, ext string) (*Record, error) {
	c.reads++
	return c.Datasource.SelectOne(ctx, dir, name, ext)
}

func TestCachedDatasource(t *testing.T) {
	ctx := context.Background()
	file := newFileDS(t)
	inner := &countingDatasource{Datasource: file}
	c := NewCachedDatasource(inner)

	_, err := c.Insert(ctx, "pages", "home", "htm", "v1")
	require.NoError(t, err)

	t.Run("second read is cached", func(t *testing.T) {
		for range 3 {
			r, err := c.SelectOne(ctx, "pages", "home", "htm")
			require.NoError(t, err)
			assert.Equal(t, "v1", r.Content)
		}
		assert.Equal(t, 1, inner.reads)
		assert.Equal(t, 1, c.Len())
	})

	t.Run("external edit is noticed", func(t *testing.T) {
		p := file.FilePath("pages", "home", "htm")
		require.NoError(t, os.WriteFile(p, []byte("v2"), 0644))
		later := time.Now().Add(time.Hour)
		require.NoError(t, os.Chtimes(p, later, later))

		r, err := c.SelectOne(ctx, "pages", "home", "htm")
		require.NoError(t, err)
		assert.Equal(t, "v2", r.Content)
		assert.Equal(t, 2, inner.reads)
	})

	t.Run("writes invalidate", func(t *testing.T) {
		_, err := c.Update(ctx, "pages", "home", "htm", "v3", UpdateOptions{})
		require.NoError(t, err)
		assert.Equal(t, 0, c.Len())

		r, err := c.SelectOne(ctx, "pages", "home", "htm")
		require.NoError(t, err)
		assert.Equal(t, "v3", r.Content)

		require.NoError(t, c.Delete(ctx, "pages", "home", "htm"))
		_, err = c.SelectOne(ctx, "pages", "home", "htm")
		assert.ErrorIs(t, err, ErrNotFound)
		assert.Equal(t, 0, c.Len())
	})

	t.Run("flush", func(t *testing.T) {
		_, err := c.Insert(ctx, "pages", "about", "htm", "x")
		require.NoError(t, err)
		_, err = c.SelectOne(ctx, "pages", "about", "htm")
		require.NoError(t, err)
		assert.Equal(t, 1, c.Len())

		c.Flush()
		assert.Equal(t, 0, c.Len())
		assert.Same(t, inner, c.Unwrap())
	})
}
