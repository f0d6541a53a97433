// mcp.go contributes the section tools to "rain serve".

package section

import (
	"context"
	"encoding/json"

	"github.com/jpl-au/rain/behavior"
	"github.com/jpl-au/rain/halcyon"
	"github.com/jpl-au/rain/internal/log"
	"github.com/mark3labs/mcp-go/mcp"
)

// MCPTools returns rain_parse, rain_render and rain_offsets.
func (b *Behavior) MCPTools() []behavior.MCPTool {
	return []behavior.MCPTool{
		{
			Tool: mcp.NewTool("rain_parse",
				mcp.WithDescription("Split template content into settings, code and markup sections"),
				mcp.WithString("content", mcp.Required(), mcp.Description("Template content")),
			),
			Handler: b.parseTool,
		},
		{
			Tool: mcp.NewTool("rain_render",
				mcp.WithDescription("Assemble template content from settings, code and markup"),
				mcp.WithString("settings", mcp.Description("INI settings section")),
				mcp.WithString("code", mcp.Description("Code section, with or without <?php ?> tags")),
				mcp.WithString("markup", mcp.Description("Markup section")),
				mcp.WithBoolean("bare_code", mcp.Description("Omit <?php ?> tags around code (default from halcyon.bare_code)")),
			),
			Handler: b.renderTool,
		},
		{
			Tool: mcp.NewTool("rain_offsets",
				mcp.WithDescription("Report the line each template section starts on (0 when absent)"),
				mcp.WithString("content", mcp.Required(), mcp.Description("Template content")),
			),
			Handler: b.offsetsTool,
		},
	}
}

func (b *Behavior) parseTool(_ context.Context, _ behavior.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	content, err := req.RequireString("content")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	r := parse("", content)
	log.Event("mcp:rain_parse", "parse").Author("mcp").Detail("sections", r.Count).Write(nil)
	return jsonResult(r)
}

func (b *Behavior) renderTool(_ context.Context, _ behavior.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	s := halcyon.Sections{
		Settings: halcyon.ParseSettings(req.GetString("settings", "")),
		Code:     req.GetString("code", ""),
		Markup:   req.GetString("markup", ""),
	}
	bare := req.GetBool("bare_code", b.BareCode())
	rendered := halcyon.Render(s, halcyon.RenderOptions{BareCode: bare})
	log.Event("mcp:rain_render", "render").Author("mcp").Detail("bare_code", bare).Write(nil)
	return mcp.NewToolResultText(rendered), nil
}

func (b *Behavior) offsetsTool(_ context.Context, _ behavior.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	content, err := req.RequireString("content")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	log.Event("mcp:rain_offsets", "parse").Author("mcp").Write(nil)
	return jsonResult(halcyon.ParseOffset(content))
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}
