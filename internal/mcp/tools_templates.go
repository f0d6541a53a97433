// tools_templates.go implements the template tools: list, read, write,
// delete and move. They mirror the ls, cat, write, rm and mv commands but
// always answer in JSON.

package mcp

import (
	"context"
	"time"

	"github.com/jpl-au/rain/behavior"
	"github.com/jpl-au/rain/halcyon"
	"github.com/jpl-au/rain/internal/duration"
	"github.com/jpl-au/rain/internal/log"
	"github.com/jpl-au/rain/internal/validate"
	"github.com/mark3labs/mcp-go/mcp"
)

type entry struct {
	Path   string    `json:"path"`
	Size   int64     `json:"size"`
	MTime  time.Time `json:"mtime"`
	Source string    `json:"source"`
}

type document struct {
	Path     string            `json:"path"`
	Content  string            `json:"content"`
	Sections *halcyon.Sections `json:"sections,omitempty"`
	Offsets  *halcyon.Offsets  `json:"offsets,omitempty"`
	MTime    time.Time         `json:"mtime"`
	Source   string            `json:"source"`
}

// listTemplates handles rain_list tool calls.
func (h *handlers) listTemplates(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	dir := req.GetString("dir", "")
	opts := halcyon.SelectOptions{FileMatch: req.GetString("match", ""), SkipContent: true}
	if ext := req.GetString("ext", ""); ext != "" {
		opts.Extensions = []string{ext}
	}

	dirs := validate.Dirs
	if dir != "" {
		dirs = []string{dir}
	}
	cutoff, err := duration.Cutoff(req.GetString("since", ""), time.Now())
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil //nolint:nilerr
	}

	l := log.Event("mcp:rain_list", "list").Author("mcp").Path(dir).Datasource(h.svc().Kind())
	defer func() { l.Write(err) }()

	entries := []entry{}
	for _, d := range dirs {
		var recs []halcyon.Record
		recs, err = h.svc().List(ctx, d, opts)
		if err != nil {
			return errorResult(err)
		}
		for _, r := range recs {
			if !cutoff.IsZero() && !r.MTime.After(cutoff) {
				continue
			}
			entries = append(entries, entry{Path: r.Path(), Size: r.Size, MTime: r.MTime, Source: r.Source})
		}
	}
	l.Detail("count", len(entries))
	return jsonResult(entries)
}

// readTemplateTool handles rain_read tool calls. Offsets come from the
// application host so that a behavior overriding sectionOffsets is honoured.
func (h *handlers) readTemplateTool(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	p, err := req.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError("path is required"), nil //nolint:nilerr
	}

	l := log.Event("mcp:rain_read", "read").Author("mcp").Path(p).Datasource(h.svc().Kind())
	defer func() { l.Write(err) }()

	t, err := h.svc().Get(ctx, p)
	if err != nil {
		return errorResult(err)
	}
	l.Resolved(t.Source)

	doc := document{Path: t.Path(), Content: t.Content, MTime: t.MTime, Source: t.Source}
	if t.Compound {
		s := t.Sections
		doc.Sections = &s
	}
	if req.GetBool("offsets", false) && t.Compound {
		app := h.bctx.App()
		if app == nil || !app.MethodExists("sectionOffsets") {
			o := halcyon.ParseOffset(t.Content)
			doc.Offsets = &o
		} else {
			var v any
			v, err = app.Call("sectionOffsets", t.Content)
			if err != nil {
				return errorResult(err)
			}
			if o, ok := v.(halcyon.Offsets); ok {
				doc.Offsets = &o
			}
		}
	}
	return jsonResult(doc)
}

// writeTemplate handles rain_write tool calls.
func (h *handlers) writeTemplate(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	p, err := req.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError("path is required"), nil //nolint:nilerr
	}
	content, err := req.RequireString("content")
	if err != nil {
		return mcp.NewToolResultError("content is required"), nil //nolint:nilerr
	}
	who := author(req)

	l := log.Event("mcp:rain_write", "write").Author(who).Path(p).Datasource(h.svc().Kind())
	defer func() { l.Write(err) }()

	t, created, err := h.svc().Put(ctx, p, content)
	if err != nil {
		return errorResult(err)
	}
	l.Resolved(t.Path()).Detail("created", created).Detail("bytes", len(content))
	h.fire(behavior.TemplateWriteEvent{Path: t.Path(), Content: content, Created: created, Source: t.Source})

	return jsonResult(map[string]any{
		"path":    t.Path(),
		"created": created,
		"source":  t.Source,
	})
}

// deleteTemplate handles rain_delete tool calls.
func (h *handlers) deleteTemplate(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	p, err := req.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError("path is required"), nil //nolint:nilerr
	}

	err = h.svc().Delete(ctx, p)
	log.Event("mcp:rain_delete", "delete").Author(author(req)).Path(p).Datasource(h.svc().Kind()).Write(err)
	if err != nil {
		return errorResult(err)
	}
	h.fire(behavior.TemplateDeleteEvent{Path: p})
	return jsonResult(map[string]string{"removed": p})
}

// moveTemplate handles rain_move tool calls.
func (h *handlers) moveTemplate(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	from, err := req.RequireString("from")
	if err != nil {
		return mcp.NewToolResultError("from is required"), nil //nolint:nilerr
	}
	to, err := req.RequireString("to")
	if err != nil {
		return mcp.NewToolResultError("to is required"), nil //nolint:nilerr
	}

	t, err := h.svc().Move(ctx, from, to)
	log.Event("mcp:rain_move", "move").Author(author(req)).Path(from).Resolved(to).Datasource(h.svc().Kind()).Write(err)
	if err != nil {
		return errorResult(err)
	}
	h.fire(behavior.TemplateMoveEvent{From: from, To: t.Path()})
	return jsonResult(map[string]string{"from": from, "to": t.Path()})
}
