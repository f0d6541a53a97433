// tools_config.go implements the configuration tools.
//
// Both tools work on the configuration the server started with. Set saves
// it back to the file it was loaded from. Theme settings take effect on the
// next start because the theme is already open.

package mcp

import (
	"context"
	"fmt"

	"github.com/jpl-au/rain/internal/log"
	"github.com/mark3labs/mcp-go/mcp"
)

// configGet handles rain_config_get tool calls.
func (h *handlers) configGet(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) { //nolint:revive // ctx for future use
	cfg := h.bctx.Config()

	key := req.GetString("key", "")
	if key == "" {
		log.Event("mcp:rain_config_get", "list").Author("mcp").Write(nil)
		return jsonResult(cfg.All())
	}

	v, err := cfg.Get(key)
	log.Event("mcp:rain_config_get", "get").Author("mcp").Detail("key", key).Write(err)
	if err != nil {
		return errorResult(err)
	}
	return jsonResult(map[string]string{key: v})
}

// configSet handles rain_config_set tool calls.
func (h *handlers) configSet(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) { //nolint:revive // ctx for future use
	key, err := req.RequireString("key")
	if err != nil {
		return mcp.NewToolResultError("key is required"), nil //nolint:nilerr
	}
	value, err := req.RequireString("value")
	if err != nil {
		return mcp.NewToolResultError("value is required"), nil //nolint:nilerr
	}

	l := log.Event("mcp:rain_config_set", "set").Author("mcp").Detail("key", key).Detail("value", value)
	defer func() { l.Write(err) }()

	cfg := h.bctx.Config()
	if err = cfg.Set(key, value); err != nil {
		return errorResult(err)
	}
	if err = cfg.Save(); err != nil {
		return errorResult(err)
	}

	// The section behavior keeps its own copy of the bare code setting.
	if key == "halcyon.bare_code" {
		if app := h.bctx.App(); app != nil {
			app.Set("bareCode", cfg.BareCode())
		}
	}
	return mcp.NewToolResultText(fmt.Sprintf("%s = %s", key, value)), nil
}
