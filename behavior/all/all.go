// Package all imports all built-in rain behaviors.
// Import this package to register all built-in commands.
//
// Packages initialise in import path order, so the application host
// implements class, core, section and template in that order.
package all

import (
	// Built-in behaviors - each registers itself via init()
	_ "github.com/jpl-au/rain/behavior/class"
	_ "github.com/jpl-au/rain/behavior/core"
	_ "github.com/jpl-au/rain/behavior/section"
	_ "github.com/jpl-au/rain/behavior/template"
)
