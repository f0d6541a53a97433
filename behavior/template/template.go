// Package template provides the template behavior for managing the theme's
// templates through the configured datasource.
// Registers commands: ls, cat, write, rm, mv, diff, sync.
//
// These commands mirror Unix filesystem utilities. Paths have the form
// "dir/name.ext" where dir is a theme directory (pages, partials, layouts,
// content, meta); a missing extension defaults to htm.
package template

import (
	"context"
	"errors"
	"fmt"

	"github.com/jpl-au/rain/behavior"
	"github.com/jpl-au/rain/cmd"
	"github.com/jpl-au/rain/extension"
	"github.com/jpl-au/rain/internal/theme"
	"github.com/spf13/cobra"
)

// Name is the behavior class name.
const Name = "Rain.Behavior.Template"

// ErrNoTheme is returned by exported methods called before the theme is open.
var ErrNoTheme = errors.New("theme not open")

func init() {
	cmd.RegisterBehavior(extension.BehaviorClass{
		Name: Name,
		New: func(_ *extension.Host) (any, error) {
			return &Behavior{}, nil
		},
	})
}

// Behavior implements the template behavior.
type Behavior struct {
	extension.Base
	svc *theme.Service
}

// Compile-time interface compliance.
var (
	_ extension.Behavior     = (*Behavior)(nil)
	_ behavior.Commander     = (*Behavior)(nil)
	_ behavior.Initializable = (*Behavior)(nil)
)

// Init connects to the shared theme service.
func (b *Behavior) Init(ctx behavior.Context) error {
	b.svc = ctx.Theme()
	return nil
}

// Commands returns the template commands.
func (b *Behavior) Commands() []*cobra.Command {
	return []*cobra.Command{
		b.newLsCmd(),
		b.newCatCmd(),
		b.newWriteCmd(),
		b.newRmCmd(),
		b.newMvCmd(),
		b.newDiffCmd(),
		b.newSyncCmd(),
	}
}

// Methods exports template access to the application host.
//
//	readTemplate(path string) string
//	writeTemplate(path, content string) bool (created)
func (b *Behavior) Methods() map[string]extension.Method {
	return map[string]extension.Method{
		"readTemplate": func(args ...any) (any, error) {
			if b.svc == nil {
				return nil, ErrNoTheme
			}
			p, err := stringArg("readTemplate", args, 0)
			if err != nil {
				return nil, err
			}
			t, err := b.svc.Get(context.Background(), p)
			if err != nil {
				return nil, err
			}
			return t.Content, nil
		},
		"writeTemplate": func(args ...any) (any, error) {
			if b.svc == nil {
				return nil, ErrNoTheme
			}
			p, err := stringArg("writeTemplate", args, 0)
			if err != nil {
				return nil, err
			}
			content, err := stringArg("writeTemplate", args, 1)
			if err != nil {
				return nil, err
			}
			t, created, err := b.svc.Put(context.Background(), p, content)
			if err != nil {
				return nil, err
			}
			cmd.Fire(behavior.TemplateWriteEvent{Path: t.Path(), Content: content, Created: created, Source: t.Source})
			return created, nil
		},
	}
}

func stringArg(method string, args []any, i int) (string, error) {
	if len(args) <= i {
		return "", fmt.Errorf("%s: missing argument %d", method, i+1)
	}
	s, ok := args[i].(string)
	if !ok {
		return "", fmt.Errorf("%s: argument %d must be a string, got %T", method, i+1, args[i])
	}
	return s, nil
}
