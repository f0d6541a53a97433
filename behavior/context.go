// context.go defines the Context handed to behaviors during Init.
//
// Behaviors receive Context during Init(), not at construction, because
// they are constructed when the application host is built, before the
// theme datasource is opened.

package behavior

import (
	"github.com/jpl-au/rain/extension"
	"github.com/jpl-au/rain/internal/config"
	"github.com/jpl-au/rain/internal/theme"
)

// Context provides behaviors controlled access to shared resources.
type Context interface {
	// Theme returns the template service for the configured theme.
	Theme() *theme.Service

	// Config returns user configuration.
	Config() *config.Config

	// App returns the application host, for calling methods exported by
	// other behaviors.
	App() *extension.Host
}

type behaviorContext struct {
	theme *theme.Service
	cfg   *config.Config
	app   *extension.Host
}

// NewContext creates a behavior context.
func NewContext(svc *theme.Service, cfg *config.Config, app *extension.Host) Context {
	return &behaviorContext{theme: svc, cfg: cfg, app: app}
}

func (c *behaviorContext) Theme() *theme.Service  { return c.theme }
func (c *behaviorContext) Config() *config.Config { return c.cfg }
func (c *behaviorContext) App() *extension.Host   { return c.app }
