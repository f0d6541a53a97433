// Package mcp implements the Model Context Protocol server, exposing theme
// templates and rain behaviors to LLMs over stdio.
package mcp

import (
	"context"
	"errors"
	"log/slog"

	"github.com/jpl-au/rain/behavior"
	"github.com/jpl-au/rain/internal/theme"
	"github.com/jpl-au/rain/internal/version"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// Options configures the server.
type Options struct {
	Context behavior.Context     // theme, config and application host
	Tools   []behavior.MCPTool   // tools contributed by behaviors
	Fire    func(behavior.Event) // delivers template events, may be nil
	Logger  *slog.Logger
}

// handlers provides MCP request handlers with access to the open theme.
type handlers struct {
	bctx behavior.Context
	fire func(behavior.Event)
	log  *slog.Logger
}

func newHandlers(opts Options) *handlers {
	h := &handlers{bctx: opts.Context, fire: opts.Fire, log: opts.Logger}
	if h.fire == nil {
		h.fire = func(behavior.Event) {}
	}
	if h.log == nil {
		h.log = slog.New(slog.DiscardHandler)
	}
	return h
}

func (h *handlers) svc() *theme.Service { return h.bctx.Theme() }

// NewServer builds the MCP server with the built-in template tools and the
// tools behaviors contribute.
func NewServer(opts Options) *server.MCPServer {
	h := newHandlers(opts)

	s := server.NewMCPServer(
		"rain",
		version.Short(),
		server.WithResourceCapabilities(true, false),
		server.WithToolCapabilities(true),
	)

	registerResources(s, h)
	registerTools(s, h)

	for _, t := range opts.Tools {
		s.AddTool(t.Tool, h.bind(t))
	}
	return s
}

// bind adapts a behavior tool to the server's handler signature.
func (h *handlers) bind(t behavior.MCPTool) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return t.Handler(ctx, h.bctx, req)
	}
}

// Serve runs the server over stdio until the client disconnects.
// Logging goes to opts.Logger; stdout is reserved for JSON-RPC messages.
func Serve(opts Options) error {
	s := NewServer(opts)
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	logger.Info("rain MCP server ready", "version", version.Short(), "transport", "stdio",
		"theme", opts.Context.Theme().Base(), "tools", len(opts.Tools))

	err := server.ServeStdio(s)
	if errors.Is(err, context.Canceled) {
		logger.Info("server stopped")
		return nil
	}
	return err
}

func registerResources(s *server.MCPServer, h *handlers) {
	s.AddResourceTemplate(
		mcp.NewResourceTemplate(
			"rain://templates/{path}",
			"Template",
			mcp.WithTemplateDescription("Read a theme template by path, e.g. rain://templates/pages/home.htm"),
			mcp.WithTemplateMIMEType("text/plain"),
		),
		h.readTemplate,
	)
}

// registerTools exposes template operations as MCP tools.
func registerTools(s *server.MCPServer, h *handlers) {
	s.AddTool(
		mcp.NewTool("rain_list",
			mcp.WithDescription("List templates in the theme"),
			mcp.WithString("dir", mcp.Description("Theme directory (pages, partials, layouts, content, meta) or empty for all")),
			mcp.WithString("ext", mcp.Description("Only this extension, e.g. htm")),
			mcp.WithString("match", mcp.Description("Glob applied to name.ext, e.g. blog-* or nav/**")),
			mcp.WithString("since", mcp.Description("Only templates modified within this age: 12h, 7d, 4w or 3m")),
		),
		h.listTemplates,
	)

	s.AddTool(
		mcp.NewTool("rain_read",
			mcp.WithDescription("Read a template. Compound templates include their settings, code and markup sections"),
			mcp.WithString("path", mcp.Required(), mcp.Description("Template path, e.g. pages/home.htm")),
			mcp.WithBoolean("offsets", mcp.Description("Include the line each section starts on")),
		),
		h.readTemplateTool,
	)

	s.AddTool(
		mcp.NewTool("rain_write",
			mcp.WithDescription("Write a template (create or replace)"),
			mcp.WithString("path", mcp.Required(), mcp.Description("Template path")),
			mcp.WithString("content", mcp.Required(), mcp.Description("Full template content, sections separated by == lines")),
			mcp.WithString("author", mcp.Description("Author attribution for the log")),
		),
		h.writeTemplate,
	)

	s.AddTool(
		mcp.NewTool("rain_delete",
			mcp.WithDescription("Delete a template"),
			mcp.WithString("path", mcp.Required(), mcp.Description("Template path")),
			mcp.WithString("author", mcp.Description("Author attribution for the log")),
		),
		h.deleteTemplate,
	)

	s.AddTool(
		mcp.NewTool("rain_move",
			mcp.WithDescription("Rename a template within its directory"),
			mcp.WithString("from", mcp.Required(), mcp.Description("Source path")),
			mcp.WithString("to", mcp.Required(), mcp.Description("Destination path")),
			mcp.WithString("author", mcp.Description("Author attribution for the log")),
		),
		h.moveTemplate,
	)

	s.AddTool(
		mcp.NewTool("rain_diff",
			mcp.WithDescription("Compare two templates, or one template across datasource layers"),
			mcp.WithString("path", mcp.Required(), mcp.Description("Template path")),
			mcp.WithString("path2", mcp.Description("Second template path")),
			mcp.WithString("layers", mcp.Description("Layer pair for one path, e.g. db:file (default for auto themes)")),
		),
		h.diffTemplates,
	)

	s.AddTool(
		mcp.NewTool("rain_sync",
			mcp.WithDescription("Copy missing or changed templates from one datasource layer to another. Never deletes"),
			mcp.WithString("from", mcp.Description("Source layer: file or db (default file)")),
			mcp.WithString("to", mcp.Description("Destination layer: file or db (default db)")),
			mcp.WithString("dirs", mcp.Description("Comma separated theme directories (default all)")),
			mcp.WithBoolean("dry_run", mcp.Description("Report what would be synced without syncing")),
		),
		h.syncLayers,
	)

	s.AddTool(
		mcp.NewTool("rain_config_get",
			mcp.WithDescription("Get a configuration value"),
			mcp.WithString("key", mcp.Description("Config key (theme.path, theme.datasource, halcyon.bare_code, ...) or empty for all")),
		),
		h.configGet,
	)

	s.AddTool(
		mcp.NewTool("rain_config_set",
			mcp.WithDescription("Set a configuration value. Theme settings apply on the next start"),
			mcp.WithString("key", mcp.Required(), mcp.Description("Config key")),
			mcp.WithString("value", mcp.Required(), mcp.Description("Value to set")),
		),
		h.configSet,
	)

	s.AddTool(
		mcp.NewTool("rain_guide",
			mcp.WithDescription("Get guide content for rain commands and concepts"),
			mcp.WithString("topic", mcp.Description("Guide topic (e.g. 'sections', 'behaviors') or empty for index")),
		),
		h.getGuide,
	)
}
