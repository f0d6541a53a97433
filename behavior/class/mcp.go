// mcp.go contributes the class manifest tool to "rain serve".

package class

import (
	"context"
	"encoding/json"

	"github.com/jpl-au/rain/behavior"
	"github.com/jpl-au/rain/extension"
	"github.com/jpl-au/rain/internal/log"
	"github.com/mark3labs/mcp-go/mcp"
)

// MCPTools returns rain_class_check.
func (b *Behavior) MCPTools() []behavior.MCPTool {
	return []behavior.MCPTool{{
		Tool: mcp.NewTool("rain_class_check",
			mcp.WithDescription("Check a class manifest: build a host of every class and report attached behaviors, methods and errors"),
			mcp.WithString("manifest", mcp.Required(), mcp.Description("Manifest content")),
			mcp.WithString("format", mcp.Description("yaml (default) or toml")),
		),
		Handler: b.checkTool,
	}}
}

func (b *Behavior) checkTool(_ context.Context, bctx behavior.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	data, err := req.RequireString("manifest")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	format := req.GetString("format", "yaml")

	var reports []Report
	l := log.Event("mcp:rain_class_check", "check").Author("mcp").Detail("format", format)
	defer func() { l.Write(err) }()

	m, err := extension.ParseManifest([]byte(data), format)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	reports, err = Check(m, bctx.App().Registry())
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	out, err := json.MarshalIndent(reports, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(string(out)), nil
}
