// Package behavior defines the optional capabilities of rain CLI behaviors.
//
// Every CLI bundle is an extension behavior attached to the application
// host (class Rain.Cli). Beyond the methods it exports to the host, a
// behavior opts into CLI features by implementing the interfaces below;
// cmd discovers them by type assertion on the attached instances.
package behavior

import (
	"github.com/spf13/cobra"
)

// AppClass is the host class of the rain application. Its implement list
// holds every registered CLI behavior in registration order.
const AppClass = "Rain.Cli"

// Commander behaviors contribute top-level CLI commands.
type Commander interface {
	Commands() []*cobra.Command
}

// Initializable behaviors receive the shared Context before the first
// command that needs the theme runs.
type Initializable interface {
	Init(ctx Context) error
}

// Storeless is implemented by behaviors with commands that work without
// opening the theme datasource. Commands returned by NoThemeCommands() do
// not trigger initialisation in PersistentPreRunE.
//
// Use cases:
//  1. Commands that only read their arguments or stdin (parse, render)
//  2. Configuration and documentation commands
//  3. Commands that inspect class manifests rather than templates
type Storeless interface {
	NoThemeCommands() []string
}

// ToolProvider behaviors contribute MCP tools to "rain serve".
type ToolProvider interface {
	MCPTools() []MCPTool
}
