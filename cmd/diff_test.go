package cmd

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiff_Layers(t *testing.T) {
	env := newAutoEnv(t)
	env.file("pages/home.htm", "<h1>Disk</h1>")

	t.Run("database copy missing", func(t *testing.T) {
		out := env.run("diff", "pages/home.htm")
		env.contains(out, "--- db:pages/home.htm (missing)")
		env.contains(out, "+++ file:pages/home.htm")
		env.contains(out, "+ <h1>Disk</h1>")
	})

	t.Run("database edit", func(t *testing.T) {
		env.run("write", "pages/home.htm", "<h1>Database</h1>")
		out := env.run("diff", "pages/home.htm", "--layers", "file:db")
		env.contains(out, "- <h1>Disk</h1>")
		env.contains(out, "+ <h1>Database</h1>")
	})

	t.Run("json", func(t *testing.T) {
		var r struct {
			Old  string `json:"old"`
			New  string `json:"new"`
			Diff string `json:"diff"`
		}
		require.NoError(t, json.Unmarshal([]byte(env.run("diff", "pages/home", "-o", "json")), &r))
		assert.Equal(t, "db:pages/home.htm", r.Old)
		assert.Contains(t, r.Diff, "- <h1>Database</h1>")
	})

	t.Run("invalid pair", func(t *testing.T) {
		_, err := env.runErr("diff", "pages/home.htm", "--layers", "db:db")
		assert.Error(t, err)
	})
}

func TestDiff_Templates(t *testing.T) {
	env := newTestEnv(t)
	env.run("write", "partials/a.htm", "one\ntwo")
	env.run("write", "partials/b.htm", "one\nthree")

	out := env.run("diff", "partials/a.htm", "partials/b.htm")
	env.contains(out, "--- partials/a.htm")
	env.contains(out, "  one")
	env.contains(out, "- two")
	env.contains(out, "+ three")

	_, err := env.runErr("diff", "partials/a.htm")
	assert.Error(t, err, "file themes have a single layer")

	_, err = env.runErr("diff", "partials/a.htm", "partials/b.htm", "--layers", "db:file")
	assert.Error(t, err)
}
