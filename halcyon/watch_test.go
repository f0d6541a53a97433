package halcyon

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestWatcher(t *testing.T) {
	defer goleak.VerifyNone(t)

	base := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(base, "pages"), 0755))

	changes := make(chan Change, 64)
	w, err := Watch(base, nil, func(ch Change) {
		select {
		case changes <- ch:
		default:
		}
	})
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(base, "pages", "home.htm"), []byte("x"), 0644))
	assert.Equal(t, Change{Dir: "pages", Name: "home", Ext: "htm"}, waitChange(t, changes))

	// Directories created after the watch started are followed too.
	require.NoError(t, os.MkdirAll(filepath.Join(base, "partials", "nav"), 0755))
	require.Eventually(t, func() bool {
		p := filepath.Join(base, "partials", "nav", "menu.htm")
		if err := os.WriteFile(p, []byte(time.Now().String()), 0644); err != nil {
			return false
		}
		for {
			select {
			case ch := <-changes:
				if ch.Dir == "partials" && ch.Name == "nav/menu" {
					return true
				}
			default:
				return false
			}
		}
	}, 5*time.Second, 50*time.Millisecond)

	require.NoError(t, w.Close())
	require.NoError(t, w.Close(), "close is idempotent")
}

// waitChange returns the next change with its Op cleared.
func waitChange(t *testing.T, changes <-chan Change) Change {
	t.Helper()
	select {
	case ch := <-changes:
		ch.Op = ""
		return ch
	case <-time.After(5 * time.Second):
		t.Fatal("no change reported")
		return Change{}
	}
}

func TestWatchCache(t *testing.T) {
	defer goleak.VerifyNone(t)
	ctx := context.Background()

	file := newFileDS(t)
	c := NewCachedDatasource(file)
	_, err := c.Insert(ctx, "pages", "home", "htm", "v1")
	require.NoError(t, err)
	_, err = c.SelectOne(ctx, "pages", "home", "htm")
	require.NoError(t, err)
	require.Equal(t, 1, c.Len())

	w, err := WatchCache(file.Base(), c, nil)
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, os.WriteFile(file.FilePath("pages", "home", "htm"), []byte("v2"), 0644))
	assert.Eventually(t, func() bool { return c.Len() == 0 }, 5*time.Second, 20*time.Millisecond)
}

func TestWatcher_IgnoresOtherFiles(t *testing.T) {
	w := &Watcher{base: "/theme"}

	_, ok := w.change("/theme/readme.md")
	assert.False(t, ok, "files in the theme root are not templates")
	_, ok = w.change("/theme/pages/noext")
	assert.False(t, ok)
	ch, ok := w.change("/theme/pages/blog/post.htm")
	assert.True(t, ok)
	assert.Equal(t, Change{Dir: "pages", Name: "blog/post", Ext: "htm"}, ch)
}
