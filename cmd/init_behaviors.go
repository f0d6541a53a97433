/*
Copyright © 2026 James Lawson (jpl-au) <hello@caelisco.net>
*/

// init_behaviors.go builds the application host and initialises behaviors.
//
// Separated from root.go to isolate the initialisation logic that loads
// config, opens the theme, and wires up behaviors.
//
// Design: the rain application is itself an extension host of class
// Rain.Cli. Behavior packages register their classes during init(); the
// host is built once before the command runs and implements every
// registered behavior in registration order. Behaviors aren't initialised
// until a command needs the theme. This two-phase pattern lets behaviors
// declare commands before any theme is opened.

package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"sync"

	"github.com/jpl-au/rain/behavior"
	"github.com/jpl-au/rain/extension"
	"github.com/jpl-au/rain/internal/config"
	"github.com/jpl-au/rain/internal/log"
	"github.com/jpl-au/rain/internal/theme"
	"github.com/jpl-au/rain/internal/version"
)

var logger = newLogger()

// newLogger writes operational records to stderr. RAIN_DEBUG enables
// debug records such as soft-skipped behaviors.
func newLogger() *slog.Logger {
	level := slog.LevelWarn
	if os.Getenv("RAIN_DEBUG") != "" {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// Logger returns the operational logger shared by behaviors.
func Logger() *slog.Logger { return logger }

var registry = extension.NewRegistry(extension.WithLogger(logger))

// Registry returns the registry holding the rain host and behavior classes.
func Registry() *extension.Registry { return registry }

// RegisterBehavior adds a CLI behavior. Call it from a behavior package's
// init function; the application host implements behaviors in the order
// they were registered.
func RegisterBehavior(bc extension.BehaviorClass) {
	registry.RegisterBehavior(bc)
}

// noThemeCommands lists commands that bypass theme initialisation.
// Built from bootstrap commands plus behavior-declared storeless commands.
var noThemeCommands map[string]bool

// buildNoThemeCommands creates the set of commands that skip theme
// initialisation.
//
// Most commands need the theme datasource, but some must work without it:
// "rain guide" shouldn't fail because the theme database is unwritable,
// and "rain parse" reads a file or stdin rather than a template path.
//
// When adding a new command: if it's a core bootstrap command, add it here.
// Otherwise, implement behavior.Storeless in your behavior.
func buildNoThemeCommands(app *extension.Host) map[string]bool {
	cmds := map[string]bool{
		"help":       true,
		"completion": true,
	}
	for _, b := range app.Behaviors() {
		if s, ok := b.(behavior.Storeless); ok {
			for _, name := range s.NoThemeCommands() {
				cmds[name] = true
			}
		}
	}
	return cmds
}

// appOwner answers property reads the host and its behaviors cannot:
// configuration keys such as "theme.datasource".
type appOwner struct{}

func (appOwner) FallbackGet(name string) (any, bool) {
	if !config.IsValidKey(name) {
		return nil, false
	}
	v, err := appConfig().Get(name)
	if err != nil {
		return nil, false
	}
	return v, true
}

// appConfig returns the configuration behaviors were initialised with, or
// a freshly loaded one before initialisation.
func appConfig() *config.Config {
	if bctx != nil {
		return bctx.Config()
	}
	cfg, err := config.Load()
	if err != nil {
		return &config.Config{}
	}
	return cfg
}

// appClass is the host class of the application.
func appClass(implement []string) *extension.Class {
	return &extension.Class{
		Name:      behavior.AppClass,
		Implement: implement,
		Methods: map[string]extension.NativeMethod{
			"version": func(_ *extension.Host, _ ...any) (any, error) {
				return version.Short(), nil
			},
			"behaviors": func(h *extension.Host, _ ...any) (any, error) {
				return h.BehaviorNames(), nil
			},
		},
		Properties: map[string]any{"name": "rain"},
	}
}

var (
	app      *extension.Host
	bctx     behavior.Context
	themeSvc *theme.Service
	initOnce sync.Once
	initErr  error
	appOnce  sync.Once
	appErr   error
)

// App returns the application host, or nil before Execute builds it.
func App() *extension.Host { return app }

// Context returns the behavior context, or nil before initialisation.
func Context() behavior.Context { return bctx }

// registerBehaviors builds the application host and adds the commands of
// every attached Commander. Called once before Execute runs.
func registerBehaviors() error {
	appOnce.Do(func() {
		registry.RegisterClass(appClass(registry.BehaviorNames()))
		h, err := registry.New(behavior.AppClass, appOwner{})
		if err != nil {
			appErr = fmt.Errorf("build application: %w", err)
			return
		}
		app = h

		for _, b := range app.Behaviors() {
			if c, ok := b.(behavior.Commander); ok {
				for _, cmd := range c.Commands() {
					rootCmd.AddCommand(cmd)
				}
			}
		}
		noThemeCommands = buildNoThemeCommands(app)
	})
	return appErr
}

// initBehaviors opens the theme and injects the shared context into
// behaviors.
//
// Why sync.Once: opening the theme may open a SQLite database and start a
// filesystem watcher, and every behavior must share the same service.
func initBehaviors() error {
	initOnce.Do(func() {
		cfg, err := config.Load()
		if err != nil {
			initErr = err
			return
		}
		svc, err := theme.Open(cfg, theme.Options{
			Path:       Theme(),
			Datasource: Datasource(),
			Logger:     logger,
		})
		if err != nil {
			initErr = fmt.Errorf("open theme: %w", err)
			return
		}
		themeSvc = svc

		log.SetProject(svc.Base())

		bctx = behavior.NewContext(svc, cfg, app)
		app.Set("bareCode", cfg.BareCode())

		for _, b := range app.Behaviors() {
			if init, ok := b.(behavior.Initializable); ok {
				if err := init.Init(bctx); err != nil {
					initErr = fmt.Errorf("init behavior %s: %w", nameOf(b), err)
					return
				}
			}
		}
	})
	return initErr
}

// Fire delivers an event to every behavior that handles events. Handler
// errors are logged; the change that raised the event already happened.
func Fire(e behavior.Event) {
	if app == nil || bctx == nil {
		return
	}
	for _, b := range app.Behaviors() {
		h, ok := b.(behavior.EventHandler)
		if !ok {
			continue
		}
		if err := h.HandleEvent(bctx, e); err != nil {
			logger.Warn("event handler failed", "behavior", nameOf(b), "event", e.EventType(), "path", e.EventPath(), "error", err)
		}
	}
}

func nameOf(b extension.Behavior) string {
	if n, ok := b.(interface{ BehaviorName() string }); ok {
		return n.BehaviorName()
	}
	return fmt.Sprintf("%T", b)
}
