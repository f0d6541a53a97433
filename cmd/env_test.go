// The cmd package is tested through the built binary: each test runs rain
// against a temporary theme directory with its own HOME, so the user's
// configuration and audit log are never touched.
//
// Packages such as internal/validate and internal/sync have unit tests of
// their own; the tests here check that commands wire them together.

package cmd

import (
	"bytes"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	binaryPath string
	buildOnce  sync.Once
	buildErr   error
)

// buildBinary compiles the rain binary once for all tests.
func buildBinary(t *testing.T) string {
	t.Helper()

	buildOnce.Do(func() {
		tmpDir, err := os.MkdirTemp("", "rain-test-bin-*")
		if err != nil {
			buildErr = err
			return
		}

		binaryName := "rain"
		if os.PathSeparator == '\\' {
			binaryName = "rain.exe"
		}
		binaryPath = filepath.Join(tmpDir, binaryName)

		// Project root is the parent of cmd/.
		projectRoot := filepath.Dir(mustGetwd())

		cmd := exec.Command("go", "build", "-o", binaryPath, ".")
		cmd.Dir = projectRoot
		if out, err := cmd.CombinedOutput(); err != nil {
			buildErr = &buildError{err: err, output: string(out)}
			return
		}
	})

	if buildErr != nil {
		t.Fatalf("failed to build binary: %v", buildErr)
	}
	return binaryPath
}

type buildError struct {
	err    error
	output string
}

func (e *buildError) Error() string {
	return e.err.Error() + "\n" + e.output
}

func mustGetwd() string {
	dir, err := os.Getwd()
	if err != nil {
		panic(err)
	}
	return dir
}

// testEnv holds test environment state.
type testEnv struct {
	t      *testing.T
	dir    string // theme directory and working directory
	home   string
	binary string
	extra  []string // additional environment
}

// newTestEnv creates an empty theme using the file datasource.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	return &testEnv{t: t, dir: t.TempDir(), home: t.TempDir(), binary: buildBinary(t)}
}

// newAutoEnv creates an empty theme configured for the auto datasource.
func newAutoEnv(t *testing.T) *testEnv {
	t.Helper()
	env := newTestEnv(t)
	env.run("config", "theme.datasource", "auto")
	return env
}

func (e *testEnv) command(args ...string) *exec.Cmd {
	cmd := exec.Command(e.binary, args...)
	cmd.Dir = e.dir
	cmd.Env = append(os.Environ(), "HOME="+e.home, "USERPROFILE="+e.home, "RAIN_DEBUG=")
	cmd.Env = append(cmd.Env, e.extra...)
	return cmd
}

// run executes rain with the given args and returns stdout.
func (e *testEnv) run(args ...string) string {
	e.t.Helper()
	out, err := e.runErr(args...)
	if err != nil {
		e.t.Fatalf("rain %v failed: %v\noutput: %s", args, err, out)
	}
	return out
}

// runErr executes rain and returns stdout and any error. On error the
// output includes stderr.
func (e *testEnv) runErr(args ...string) (string, error) {
	e.t.Helper()
	return e.exec(e.command(args...))
}

// runStdin executes rain with stdin input.
func (e *testEnv) runStdin(input string, args ...string) string {
	e.t.Helper()
	out, err := e.runStdinErr(input, args...)
	if err != nil {
		e.t.Fatalf("rain %v failed: %v\noutput: %s", args, err, out)
	}
	return out
}

// runStdinErr executes rain with stdin input and returns any error.
func (e *testEnv) runStdinErr(input string, args ...string) (string, error) {
	e.t.Helper()
	cmd := e.command(args...)
	cmd.Stdin = strings.NewReader(input)
	return e.exec(cmd)
}

// runStderr executes rain and returns stdout and stderr separately.
func (e *testEnv) runStderr(args ...string) (string, string) {
	e.t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := e.command(args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		e.t.Fatalf("rain %v failed: %v\nstderr: %s", args, err, stderr.String())
	}
	return stdout.String(), stderr.String()
}

func (e *testEnv) exec(cmd *exec.Cmd) (string, error) {
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := cmd.Run()
	if err != nil {
		return stdout.String() + stderr.String(), err
	}
	return stdout.String(), nil
}

// file writes a file relative to the theme directory.
func (e *testEnv) file(rel, content string) string {
	e.t.Helper()
	p := filepath.Join(e.dir, filepath.FromSlash(rel))
	require.NoError(e.t, os.MkdirAll(filepath.Dir(p), 0755))
	require.NoError(e.t, os.WriteFile(p, []byte(content), 0644))
	return p
}

// contains checks if output contains expected string.
func (e *testEnv) contains(output, expected string) {
	e.t.Helper()
	assert.Contains(e.t, output, expected)
}

// equals checks if output equals expected string (trimmed).
func (e *testEnv) equals(output, expected string) {
	e.t.Helper()
	assert.Equal(e.t, strings.TrimSpace(expected), strings.TrimSpace(output))
}

// homePage is a three section page used across tests.
const homePage = `title = "Home"
url = "/"
==
<?php
function onStart() {}
?>
==
<h1>{{ this.page.title }}</h1>`
