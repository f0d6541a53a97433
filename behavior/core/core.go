// Package core provides the core behavior of rain.
// It registers commands: config, version, guide, serve, methods.
package core

import (
	"github.com/jpl-au/rain/behavior"
	"github.com/jpl-au/rain/cmd"
	"github.com/jpl-au/rain/extension"
	"github.com/jpl-au/rain/guide"
	"github.com/spf13/cobra"
)

// Name is the behavior class name.
const Name = "Rain.Behavior.Core"

func init() {
	cmd.RegisterBehavior(extension.BehaviorClass{
		Name: Name,
		New: func(_ *extension.Host) (any, error) {
			return &Behavior{}, nil
		},
		Static: map[string]extension.StaticMethod{
			"guideTopics": func(_ extension.StaticCall, _ ...any) (any, error) {
				return guide.List()
			},
		},
	})
}

// Behavior implements the core behavior.
type Behavior struct {
	extension.Base
	ctx behavior.Context
}

// Compile-time interface compliance.
var (
	_ extension.Behavior     = (*Behavior)(nil)
	_ behavior.Commander     = (*Behavior)(nil)
	_ behavior.Initializable = (*Behavior)(nil)
	_ behavior.Storeless     = (*Behavior)(nil)
)

// Commands returns the core CLI commands.
func (b *Behavior) Commands() []*cobra.Command {
	return []*cobra.Command{
		newConfigCmd(),
		newVersionCmd(),
		newGuideCmd(),
		newServeCmd(b),
		newMethodsCmd(b),
	}
}

// Init keeps the context for serve.
func (b *Behavior) Init(ctx behavior.Context) error {
	b.ctx = ctx
	return nil
}

// NoThemeCommands returns commands that never touch templates.
// config: must work when the configured theme is broken.
// version, guide: static output.
func (b *Behavior) NoThemeCommands() []string {
	return []string{"config", "version", "guide"}
}

// Methods exports guide lookup to the application host.
func (b *Behavior) Methods() map[string]extension.Method {
	return map[string]extension.Method{
		"guide": func(args ...any) (any, error) {
			name := ""
			if len(args) > 0 {
				name, _ = args[0].(string)
			}
			return guide.Get(name)
		},
	}
}
