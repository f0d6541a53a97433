// tools_util.go holds parameter helpers shared by the tool handlers.
//
// Optional parameters are read permissively: a missing or mistyped value
// yields the default rather than an error.

package mcp

import (
	"encoding/json"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
)

// author returns the attribution for a call, defaulting to "mcp".
func author(req mcp.CallToolRequest) string {
	return req.GetString("author", "mcp")
}

// getList splits a comma separated parameter, dropping empty items.
func getList(req mcp.CallToolRequest, name string) []string {
	var out []string
	for _, s := range strings.Split(req.GetString(name, ""), ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// jsonResult serialises v as indented JSON. Marshal failures become tool
// errors so the client always gets a readable result.
func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}

func errorResult(err error) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultError(err.Error()), nil
}
