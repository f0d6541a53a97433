// diff.go implements the "rain diff" command.
//
// Design: With one path, diff compares the template as stored in two
// datasource layers, by default the database and file layers of an auto
// theme. With two paths, it compares two templates through the configured
// datasource. Output is coloured on a terminal.

package template

import (
	"errors"
	"fmt"
	"os"

	"github.com/jpl-au/rain/behavior"
	"github.com/jpl-au/rain/cmd"
	"github.com/jpl-au/rain/internal/config"
	"github.com/jpl-au/rain/internal/diff"
	"github.com/jpl-au/rain/internal/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// defaultLayers is compared when diff gets one path.
const defaultLayers = "db:file"

func (b *Behavior) newDiffCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "diff <path> [path2]",
		Short: "Compare templates or datasource layers",
		Long: `Show the differences between two templates, or between the copies of one
template held by two datasource layers.

  rain diff pages/home.htm                   # database copy vs file on disk
  rain diff pages/home.htm --layers file:db  # reverse direction
  rain diff pages/home.htm pages/index.htm   # two templates`,
		Args: cobra.RangeArgs(1, 2),
		RunE: b.runDiff,
	}
	c.Flags().String(behavior.FlagLayers, "", "Layer pair to compare, e.g. db:file")
	return c
}

func (b *Behavior) runDiff(c *cobra.Command, args []string) error {
	ctx := c.Context()
	layers, _ := c.Flags().GetString(behavior.FlagLayers)

	var (
		r   diff.Result
		err error
	)
	l := log.Event("template:diff", "diff").Author(cmd.Author()).Path(args[0]).Datasource(b.svc.Kind())
	defer func() { l.Write(err) }()

	switch {
	case len(args) == 2:
		if layers != "" {
			err = errors.New("--layers compares one template, not two")
			return cmd.PrintJSONError(err)
		}
		l.Resolved(args[1])
		r, err = b.svc.Diff(ctx, args[0], args[1])
	default:
		if layers == "" {
			if b.svc.Kind() != config.DatasourceAuto {
				err = fmt.Errorf("datasource %s has one layer: give two paths or --layers", b.svc.Kind())
				return cmd.PrintJSONError(err)
			}
			layers = defaultLayers
		}
		l.Detail("layers", layers)
		r, err = b.svc.DiffLayers(ctx, args[0], layers)
	}
	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("diff: %w", err))
	}

	l.Detail("changed", r.Changed())
	if cmd.JSON() {
		return cmd.PrintJSON(r)
	}
	colour := term.IsTerminal(int(os.Stdout.Fd()))
	fmt.Fprint(cmd.Out(), r.Format(colour))
	return nil
}
