// Package log provides centralised audit logging for rain operations.
// Logs are stored in ~/.rain/log/rain-log.db and track every CLI command
// and MCP tool invocation across themes.
//
// # Fluent API
//
// Use the fluent builder API to construct and write log entries:
//
//	log.Event("template:cat", "read").
//		Author(cmd.Author()).
//		Path(p).
//		Datasource(layer).
//		Write(err)
//
//	log.Event("section:parse", "parse").
//		Author(cmd.Author()).
//		Detail("sections", n).
//		Write(err)
//
// The source parameter follows the format "{behavior}:{command}" for CLI
// commands or "mcp:{tool}" for MCP tools. Examples: "template:cat",
// "section:render", "mcp:rain_write".
package log

import (
	"database/sql"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

var (
	global *Logger
	mu     sync.Mutex
)

// Entry represents a single log entry.
type Entry struct {
	Source     string // e.g., "template:cat", "mcp:rain_read"
	Author     string // who performed the action
	Action     string // verb: read, write, delete, parse, render
	Path       string // input: template path requested
	Datasource string // datasource kind or layer that served the request

	// ResolvedPath is the canonical path when it differs from the input,
	// such as after a rename or extension defaulting.
	ResolvedPath string

	Start int64 // unix timestamp when Event() called
	End   int64 // unix timestamp when Write() called

	Success bool
	Error   string
	Detail  map[string]any
}

// Builder constructs a log entry using a fluent API.
// Create with [Event], chain methods to set fields, then call [Builder.Write].
type Builder struct {
	entry Entry
}

// Event creates a new log entry builder for an operation.
//
// The source identifies where the operation originated:
//   - CLI commands: "{behavior}:{command}" (e.g., "template:ls", "class:check")
//   - MCP tools: "mcp:{tool}" (e.g., "mcp:rain_parse")
func Event(source, action string) *Builder {
	return &Builder{
		entry: Entry{
			Source: source,
			Action: action,
			Start:  time.Now().Unix(),
		},
	}
}

// Author sets who performed the operation. MCP tools use "mcp".
func (b *Builder) Author(author string) *Builder {
	b.entry.Author = author
	return b
}

// Path sets the template path this operation affects.
func (b *Builder) Path(path string) *Builder {
	b.entry.Path = path
	return b
}

// Datasource records which datasource served the operation.
func (b *Builder) Datasource(name string) *Builder {
	b.entry.Datasource = name
	return b
}

// Resolved sets the resolved/canonical path (output).
func (b *Builder) Resolved(path string) *Builder {
	b.entry.ResolvedPath = path
	return b
}

// Detail adds a key-value pair to the entry's detail map. Can be called
// multiple times.
func (b *Builder) Detail(key string, value any) *Builder {
	if b.entry.Detail == nil {
		b.entry.Detail = make(map[string]any)
	}
	b.entry.Detail[key] = value
	return b
}

// Write writes the log entry, deriving success/failure from err.
//
//	tpl, err := svc.Get(ctx, p)
//	log.Event("template:cat", "read").Path(p).Write(err)
//	if err != nil {
//		return err
//	}
func (b *Builder) Write(err error) {
	b.entry.End = time.Now().Unix()
	b.entry.Success = err == nil
	if err != nil {
		b.entry.Error = err.Error()
	}
	Log(b.entry)
}

// Open initialises the global logger. Safe to call multiple times.
// Errors are returned but callers may choose to ignore them (best-effort logging).
func Open() error {
	mu.Lock()
	defer mu.Unlock()

	if global != nil {
		return nil
	}

	p := dbPath()
	if err := os.MkdirAll(filepath.Dir(p), 0755); err != nil {
		return err
	}

	db, err := sql.Open("sqlite", p)
	if err != nil {
		return err
	}

	if err := migrate(db); err != nil {
		db.Close()
		return err
	}

	global = &Logger{db: db}
	return nil
}

// SetProject sets the project identifier for subsequent log entries.
// The dir should be the absolute path of the theme directory.
func SetProject(dir string) {
	mu.Lock()
	defer mu.Unlock()
	if global != nil {
		global.project = hash(dir)
	}
}

// Log writes an entry. Safe to call if logger not initialised (no-op).
func Log(e Entry) {
	mu.Lock()
	l := global
	mu.Unlock()

	if l == nil {
		return
	}
	l.log(e)
}

// Close closes the global logger.
func Close() {
	mu.Lock()
	defer mu.Unlock()
	if global != nil {
		global.db.Close()
		global = nil
	}
}
