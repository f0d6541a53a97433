// tools_diff.go implements rain_diff. One path compares datasource layers,
// two paths compare templates, matching the diff command.

package mcp

import (
	"context"
	"fmt"

	"github.com/jpl-au/rain/internal/config"
	"github.com/jpl-au/rain/internal/diff"
	"github.com/jpl-au/rain/internal/log"
	"github.com/mark3labs/mcp-go/mcp"
)

// diffTemplates handles rain_diff tool calls.
func (h *handlers) diffTemplates(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	p, err := req.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError("path is required"), nil //nolint:nilerr
	}
	p2 := req.GetString("path2", "")
	layers := req.GetString("layers", "")

	var r diff.Result
	l := log.Event("mcp:rain_diff", "diff").Author("mcp").Path(p).Datasource(h.svc().Kind())
	defer func() { l.Write(err) }()

	switch {
	case p2 != "" && layers != "":
		err = fmt.Errorf("layers compares one template, not two")
		return errorResult(err)
	case p2 != "":
		l.Resolved(p2)
		r, err = h.svc().Diff(ctx, p, p2)
	default:
		if layers == "" {
			if h.svc().Kind() != config.DatasourceAuto {
				err = fmt.Errorf("datasource %s has one layer: give path2 or layers", h.svc().Kind())
				return errorResult(err)
			}
			layers = "db:file"
		}
		l.Detail("layers", layers)
		r, err = h.svc().DiffLayers(ctx, p, layers)
	}
	if err != nil {
		return errorResult(err)
	}

	l.Detail("changed", r.Changed())
	return jsonResult(map[string]any{
		"old":     r.Old,
		"new":     r.New,
		"changed": r.Changed(),
		"diff":    r.Diff,
	})
}
