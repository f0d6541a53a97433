// tools_guide.go implements rain_guide, giving clients the embedded guide
// pages without shelling out to the CLI.

package mcp

import (
	"context"
	"fmt"

	"github.com/jpl-au/rain/guide"
	"github.com/jpl-au/rain/internal/log"
	"github.com/mark3labs/mcp-go/mcp"
)

// getGuide handles rain_guide tool calls.
func (h *handlers) getGuide(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) { //nolint:revive // ctx for future use
	topic := req.GetString("topic", "")

	content, err := guide.Get(topic)
	log.Event("mcp:rain_guide", "read").Author("mcp").Detail("topic", topic).Write(err)

	if err != nil {
		// Unknown topic: answer with the topics that exist.
		topics, listErr := guide.List()
		if listErr != nil {
			return nil, fmt.Errorf("listing guides: %w", listErr)
		}
		return jsonResult(map[string]any{
			"error":            err.Error(),
			"available_topics": topics,
		})
	}
	return mcp.NewToolResultText(content), nil
}
