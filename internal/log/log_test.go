package log

import (
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// useTempDB points the logger at a fresh database for the test.
func useTempDB(t *testing.T) {
	t.Helper()
	tmpDir := t.TempDir()
	orig := dbPathFunc
	dbPathFunc = func() string {
		return filepath.Join(tmpDir, "log", "test.db")
	}
	t.Cleanup(func() {
		Close()
		dbPathFunc = orig
	})
}

func openDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", DBPath())
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestLogger(t *testing.T) {
	useTempDB(t)

	t.Run("open creates the database", func(t *testing.T) {
		require.NoError(t, Open())
		defer Close()
		assert.FileExists(t, DBPath())
	})

	t.Run("log entry", func(t *testing.T) {
		require.NoError(t, Open())
		defer Close()
		SetProject("/srv/themes/demo")

		Log(Entry{
			Source:     "template:cat",
			Author:     "test-user",
			Action:     "read",
			Path:       "pages/home.htm",
			Datasource: "file",
			Success:    true,
		})

		var source, action, path, ds, project string
		var success int
		err := openDB(t).QueryRow("SELECT source, action, path, datasource, project, success FROM log ORDER BY id DESC LIMIT 1").
			Scan(&source, &action, &path, &ds, &project, &success)
		require.NoError(t, err)
		assert.Equal(t, "template:cat", source)
		assert.Equal(t, "read", action)
		assert.Equal(t, "pages/home.htm", path)
		assert.Equal(t, "file", ds)
		assert.Equal(t, hash("/srv/themes/demo"), project)
		assert.Equal(t, 1, success)
	})

	t.Run("log without logger is noop", func(t *testing.T) {
		Close()
		Log(Entry{Source: "test:cmd", Action: "test", Success: true})
	})

	t.Run("open is idempotent", func(t *testing.T) {
		require.NoError(t, Open())
		require.NoError(t, Open())
		Close()
	})
}

func TestBuilder(t *testing.T) {
	useTempDB(t)

	t.Run("success", func(t *testing.T) {
		require.NoError(t, Open())
		defer Close()

		Event("template:write", "write").
			Author("test-user").
			Path("partials/nav").
			Resolved("partials/nav.htm").
			Write(nil)

		var author, resolved string
		var success int
		err := openDB(t).QueryRow("SELECT author, resolved_path, success FROM log ORDER BY id DESC LIMIT 1").
			Scan(&author, &resolved, &success)
		require.NoError(t, err)
		assert.Equal(t, "test-user", author)
		assert.Equal(t, "partials/nav.htm", resolved)
		assert.Equal(t, 1, success)
	})

	t.Run("error", func(t *testing.T) {
		require.NoError(t, Open())
		defer Close()

		Event("template:cat", "read").Path("pages/missing.htm").Write(errors.New("template not found"))

		var success int
		var msg string
		err := openDB(t).QueryRow("SELECT success, error FROM log ORDER BY id DESC LIMIT 1").Scan(&success, &msg)
		require.NoError(t, err)
		assert.Equal(t, 0, success)
		assert.Equal(t, "template not found", msg)
	})

	t.Run("detail", func(t *testing.T) {
		require.NoError(t, Open())
		defer Close()

		Event("section:parse", "parse").Detail("sections", 3).Detail("invalid_settings", true).Write(nil)

		var detail string
		err := openDB(t).QueryRow("SELECT detail FROM log ORDER BY id DESC LIMIT 1").Scan(&detail)
		require.NoError(t, err)
		assert.JSONEq(t, `{"sections":3,"invalid_settings":true}`, detail)
	})
}

func TestHash(t *testing.T) {
	h1 := hash("/home/user/theme")
	h2 := hash("/home/user/theme")
	h3 := hash("/home/user/other")

	assert.Equal(t, h1, h2)
	assert.NotEqual(t, h1, h3)
	assert.Len(t, h1, 16, "BLAKE2b-64 should produce 16 hex chars")
}

func TestDBPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	orig := dbPathFunc
	dbPathFunc = defaultDBPath
	defer func() { dbPathFunc = orig }()

	assert.Equal(t, filepath.Join(home, ".rain", "log", "rain-log.db"), DBPath())
}
