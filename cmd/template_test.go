package cmd

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrite(t *testing.T) {
	t.Run("stdin creates then updates", func(t *testing.T) {
		env := newTestEnv(t)

		out := env.runStdin(homePage, "write", "pages/home.htm")
		env.equals(out, "Created pages/home.htm")
		assert.FileExists(t, filepath.Join(env.dir, "pages", "home.htm"))

		out = env.runStdin(homePage, "write", "pages/home")
		env.equals(out, "Updated pages/home.htm")
	})

	t.Run("content argument", func(t *testing.T) {
		env := newTestEnv(t)
		env.run("write", "partials/nav.htm", "<nav></nav>")
		env.equals(env.run("cat", "partials/nav.htm"), "<nav></nav>")
	})

	t.Run("from file", func(t *testing.T) {
		env := newTestEnv(t)
		src := filepath.Join(t.TempDir(), "layout.htm")
		require.NoError(t, os.WriteFile(src, []byte("{% page %}"), 0644))

		env.run("write", "layouts/default.htm", "-f", src)
		env.equals(env.run("cat", "layouts/default.htm"), "{% page %}")
	})

	t.Run("json", func(t *testing.T) {
		env := newTestEnv(t)
		out := env.run("write", "content/intro.md", "# Intro", "-o", "json")

		var got map[string]any
		require.NoError(t, json.Unmarshal([]byte(out), &got))
		assert.Equal(t, "content/intro.md", got["path"])
		assert.Equal(t, true, got["created"])
		assert.Equal(t, "file", got["source"])
	})

	t.Run("rejects unknown directory", func(t *testing.T) {
		env := newTestEnv(t)
		out, err := env.runErr("write", "assets/app.js", "x")
		assert.Error(t, err)
		env.contains(out, "unknown theme directory")
	})

	t.Run("rejects path traversal", func(t *testing.T) {
		env := newTestEnv(t)
		_, err := env.runErr("write", "pages/../../etc.htm", "x")
		assert.Error(t, err)
	})

	t.Run("content limit", func(t *testing.T) {
		env := newTestEnv(t)
		env.run("config", "limits.max_content", "4")
		out, err := env.runErr("write", "pages/big.htm", "12345")
		assert.Error(t, err)
		env.contains(out, "content too large")
	})
}

func TestCat(t *testing.T) {
	env := newTestEnv(t)
	env.runStdin(homePage, "write", "pages/home.htm")

	t.Run("whole template", func(t *testing.T) {
		env.equals(env.run("cat", "pages/home.htm"), homePage)
	})

	t.Run("default extension", func(t *testing.T) {
		env.equals(env.run("cat", "pages/home"), homePage)
	})

	t.Run("sections", func(t *testing.T) {
		env.equals(env.run("cat", "pages/home", "--section", "settings"), "title = \"Home\"\nurl = \"/\"")
		env.equals(env.run("cat", "pages/home", "--section", "code"), "function onStart() {}")
		env.equals(env.run("cat", "pages/home", "--section", "markup"), "<h1>{{ this.page.title }}</h1>")

		_, err := env.runErr("cat", "pages/home", "--section", "body")
		assert.Error(t, err)
	})

	t.Run("json includes sections", func(t *testing.T) {
		out := env.run("cat", "pages/home.htm", "-o", "json")
		var doc struct {
			Path     string `json:"path"`
			Content  string `json:"content"`
			Sections struct {
				Code   string `json:"code"`
				Markup string `json:"markup"`
			} `json:"sections"`
		}
		require.NoError(t, json.Unmarshal([]byte(out), &doc))
		assert.Equal(t, "pages/home.htm", doc.Path)
		assert.Equal(t, homePage, doc.Content)
		assert.Equal(t, "function onStart() {}", doc.Sections.Code)
	})

	t.Run("content templates are not split", func(t *testing.T) {
		env.run("write", "content/notes.md", "a\n==\nb")
		env.equals(env.run("cat", "content/notes.md"), "a\n==\nb")

		_, err := env.runErr("cat", "content/notes.md", "--section", "markup")
		assert.Error(t, err)
	})

	t.Run("missing", func(t *testing.T) {
		out, err := env.runErr("cat", "pages/nope.htm")
		assert.Error(t, err)
		env.contains(out, "not found")
	})
}

func TestLs(t *testing.T) {
	env := newTestEnv(t)
	env.run("write", "pages/home.htm", "home")
	env.run("write", "pages/blog-post.htm", "post")
	env.run("write", "partials/nav.htm", "nav")
	env.run("write", "content/intro.md", "intro")

	t.Run("all directories", func(t *testing.T) {
		out := env.run("ls")
		for _, p := range []string{"pages/home.htm", "pages/blog-post.htm", "partials/nav.htm", "content/intro.md"} {
			env.contains(out, p)
		}
	})

	t.Run("one directory", func(t *testing.T) {
		out := env.run("ls", "partials")
		env.equals(out, "partials/nav.htm")
	})

	t.Run("filters", func(t *testing.T) {
		env.equals(env.run("ls", "--ext", "md"), "content/intro.md")
		env.equals(env.run("ls", "pages", "--match", "blog-*"), "pages/blog-post.htm")
	})

	t.Run("long", func(t *testing.T) {
		out := env.run("ls", "partials", "-l")
		env.contains(out, "file")
		env.contains(out, "partials/nav.htm")
	})

	t.Run("tree", func(t *testing.T) {
		out := env.run("ls", "pages", "partials", "--tree")
		env.contains(out, "├── pages/")
		env.contains(out, "│   ├── blog-post.htm")
		env.contains(out, "└── partials/")
		env.contains(out, "    └── nav.htm")
	})

	t.Run("since", func(t *testing.T) {
		old := time.Now().Add(-48 * time.Hour)
		require.NoError(t, os.Chtimes(filepath.Join(env.dir, "pages", "home.htm"), old, old))
		out := env.run("ls", "pages", "--since", "1d")
		env.equals(out, "pages/blog-post.htm")

		_, err := env.runErr("ls", "--since", "soon")
		assert.Error(t, err)
	})

	t.Run("json", func(t *testing.T) {
		var entries []struct {
			Path string `json:"path"`
			Size int64  `json:"size"`
		}
		require.NoError(t, json.Unmarshal([]byte(env.run("ls", "meta", "-o", "json")), &entries))
		assert.Empty(t, entries)

		require.NoError(t, json.Unmarshal([]byte(env.run("ls", "partials", "-o", "json")), &entries))
		require.Len(t, entries, 1)
		assert.Equal(t, int64(3), entries[0].Size)
	})

	t.Run("unknown directory", func(t *testing.T) {
		_, err := env.runErr("ls", "assets")
		assert.Error(t, err)
	})
}

func TestMv(t *testing.T) {
	env := newTestEnv(t)
	env.run("write", "pages/about.htm", "about")

	out := env.run("mv", "pages/about.htm", "pages/about-us.htm")
	env.equals(out, "Moved pages/about.htm -> pages/about-us.htm")
	env.equals(env.run("cat", "pages/about-us.htm"), "about")

	_, err := env.runErr("cat", "pages/about.htm")
	assert.Error(t, err)

	_, err = env.runErr("mv", "pages/about-us.htm", "partials/about.htm")
	assert.Error(t, err, "templates stay in their directory")
}

func TestRm(t *testing.T) {
	env := newTestEnv(t)
	env.run("write", "pages/a.htm", "a")
	env.run("write", "pages/b.htm", "b")

	out := env.run("rm", "pages/a.htm", "pages/b")
	env.contains(out, "Removed pages/a.htm")
	env.contains(out, "Removed pages/b")
	env.equals(env.run("ls", "pages"), "")

	_, err := env.runErr("rm", "pages/a.htm")
	assert.Error(t, err)
}

func TestAutoDatasource(t *testing.T) {
	env := newAutoEnv(t)
	env.file("pages/home.htm", "disk")

	t.Run("reads fall through to files", func(t *testing.T) {
		env.equals(env.run("cat", "pages/home.htm"), "disk")
	})

	t.Run("writes go to the database", func(t *testing.T) {
		env.run("write", "pages/home.htm", "database")
		env.equals(env.run("cat", "pages/home.htm"), "database")

		data, err := os.ReadFile(filepath.Join(env.dir, "pages", "home.htm"))
		require.NoError(t, err)
		assert.Equal(t, "disk", string(data))
		assert.FileExists(t, filepath.Join(env.dir, ".rain", "rain.db"))
	})

	t.Run("delete hides the file copy", func(t *testing.T) {
		env.run("rm", "pages/home.htm")
		_, err := env.runErr("cat", "pages/home.htm")
		assert.Error(t, err)
		assert.FileExists(t, filepath.Join(env.dir, "pages", "home.htm"))

		env.run("write", "pages/home.htm", "revived")
		env.equals(env.run("cat", "pages/home.htm"), "revived")
	})

	t.Run("datasource flag overrides config", func(t *testing.T) {
		env.equals(env.run("cat", "pages/home.htm", "--datasource", "file"), "disk")
	})
}
