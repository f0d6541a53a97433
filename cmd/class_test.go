package cmd

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const manifestYAML = `classes:
  - name: Acme.Blog.Post
    implement: [Rain.Behavior.Section, "@Acme.Optional"]
  - name: Acme.Blog.Featured
    parent: Acme.Blog.Post
`

func TestClassCheck(t *testing.T) {
	env := newTestEnv(t)

	t.Run("yaml", func(t *testing.T) {
		p := env.file("classes.yaml", manifestYAML)
		out := env.run("class", "check", p)
		env.contains(out, `ok Acme\Blog\Post`)
		env.contains(out, `ok Acme\Blog\Featured`)
		env.contains(out, "parseSections")
	})

	t.Run("toml", func(t *testing.T) {
		p := env.file("classes.toml", `[[classes]]
name = "Acme.Page"
implement = "Rain.Behavior.Template, Rain.Behavior.Section"
`)
		var reports []struct {
			Class    string   `json:"class"`
			Attached []string `json:"attached"`
			Error    string   `json:"error"`
		}
		require.NoError(t, json.Unmarshal([]byte(env.run("class", "check", p, "-o", "json")), &reports))
		require.Len(t, reports, 1)
		assert.Empty(t, reports[0].Error)
		assert.Equal(t, []string{`Rain\Behavior\Template`, `Rain\Behavior\Section`}, reports[0].Attached)
	})

	t.Run("unknown behavior fails", func(t *testing.T) {
		p := env.file("broken.yaml", "classes:\n  - name: Acme.Broken\n    implement: Acme.Missing\n")
		out, err := env.runErr("class", "check", p)
		assert.Error(t, err)
		env.contains(out, `FAIL Acme\Broken`)
		env.contains(out, "1 of 1 classes failed")
	})

	t.Run("invalid manifest", func(t *testing.T) {
		p := env.file("bad.yaml", "classes:\n  - name: Acme.Bad\n    implement: {a: b}\n")
		_, err := env.runErr("class", "check", p)
		assert.Error(t, err)
	})
}

func TestClassLs(t *testing.T) {
	env := newTestEnv(t)

	out := env.run("class", "ls")
	env.contains(out, `Rain\Behavior\Section`)
	env.contains(out, `Rain\Behavior\Template`)
	env.contains(out, `Rain\Cli implements`)

	p := env.file("classes.yaml", manifestYAML)
	var listing struct {
		Classes []struct {
			Name   string `json:"name"`
			Parent string `json:"parent"`
		} `json:"classes"`
	}
	require.NoError(t, json.Unmarshal([]byte(env.run("class", "ls", p, "-o", "json")), &listing))
	require.Len(t, listing.Classes, 2)
	assert.Equal(t, `Acme\Blog\Featured`, listing.Classes[1].Name)
	assert.Equal(t, `Acme\Blog\Post`, listing.Classes[1].Parent)
}
