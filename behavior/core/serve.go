// serve.go implements the "rain serve" command for MCP server operation.
//
// Serve blocks, handling MCP requests over stdio until the client
// disconnects. It uses the shared theme opened during behavior init and
// collects tools from every behavior that provides them.

package core

import (
	"github.com/jpl-au/rain/behavior"
	"github.com/jpl-au/rain/cmd"
	"github.com/jpl-au/rain/internal/mcp"
	"github.com/spf13/cobra"
)

func newServeCmd(b *Behavior) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start MCP server",
		Long: `Start an MCP (Model Context Protocol) server over stdio.

The server exposes the theme's templates as tools and as resources
(rain://templates/{path}). Use --theme and --datasource to choose the theme:
  rain serve --theme themes/demo --datasource auto`,
		Args: cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			var tools []behavior.MCPTool
			for _, bh := range b.Host().Behaviors() {
				if p, ok := bh.(behavior.ToolProvider); ok {
					tools = append(tools, p.MCPTools()...)
				}
			}
			return mcp.Serve(mcp.Options{
				Context: b.ctx,
				Tools:   tools,
				Fire:    cmd.Fire,
				Logger:  cmd.Logger(),
			})
		},
	}
}
