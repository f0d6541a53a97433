// tools_sync.go implements rain_sync, copying templates between the file
// and database layers.

package mcp

import (
	"bytes"
	"context"
	"strings"

	"github.com/jpl-au/rain/behavior"
	"github.com/jpl-au/rain/internal/log"
	"github.com/jpl-au/rain/internal/sync"
	"github.com/mark3labs/mcp-go/mcp"
)

// syncLayers handles rain_sync tool calls.
func (h *handlers) syncLayers(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	from := req.GetString("from", "file")
	to := req.GetString("to", "db")
	opts := sync.Options{DryRun: req.GetBool("dry_run", false), Dirs: getList(req, "dirs")}

	var buf bytes.Buffer
	result, err := h.svc().Sync(ctx, &buf, from, to, opts)

	log.Event("mcp:rain_sync", "sync").Author("mcp").Datasource(h.svc().Kind()).
		Detail("from", from).Detail("to", to).Detail("dry_run", opts.DryRun).
		Detail("updated", result.Updated).Detail("added", result.Added).Write(err)

	if err != nil {
		return errorResult(err)
	}
	if !opts.DryRun {
		h.fire(behavior.SyncEvent{From: from, To: to, Updated: result.Updated, Added: result.Added})
	}

	lines := []string{}
	for _, s := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if s != "" {
			lines = append(lines, s)
		}
	}
	return jsonResult(map[string]any{
		"updated": result.Updated,
		"added":   result.Added,
		"dry_run": opts.DryRun,
		"changes": lines,
	})
}
