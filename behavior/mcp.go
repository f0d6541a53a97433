// mcp.go defines types for MCP tool registration by behaviors.

package behavior

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
)

// MCPTool pairs an MCP tool definition with its handler.
type MCPTool struct {
	Tool    mcp.Tool
	Handler MCPHandler
}

// MCPHandler processes MCP tool requests. The Context gives access to the
// theme service and the application host.
type MCPHandler func(ctx context.Context, bctx Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error)
