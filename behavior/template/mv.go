// mv.go implements the "rain mv" command for renaming templates within
// their theme directory.

package template

import (
	"fmt"

	"github.com/jpl-au/rain/behavior"
	"github.com/jpl-au/rain/cmd"
	"github.com/jpl-au/rain/internal/log"
	"github.com/spf13/cobra"
)

func (b *Behavior) newMvCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mv <from> <to>",
		Short: "Rename a template",
		Long: `Rename a template. Both paths must be in the same theme directory.

  rain mv pages/about.htm pages/about-us.htm`,
		Args: cobra.ExactArgs(2),
		RunE: b.runMv,
	}
}

func (b *Behavior) runMv(c *cobra.Command, args []string) error {
	from, to := args[0], args[1]
	t, err := b.svc.Move(c.Context(), from, to)
	l := log.Event("template:mv", "move").Author(cmd.Author()).Path(from).Datasource(b.svc.Kind())
	if t != nil {
		l.Resolved(t.Path())
	}
	l.Write(err)
	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("mv %q %q: %w", from, to, err))
	}

	cmd.Fire(behavior.TemplateMoveEvent{From: from, To: t.Path()})

	if cmd.JSON() {
		return cmd.PrintJSON(map[string]string{"from": from, "to": t.Path()})
	}
	fmt.Fprintf(cmd.Out(), "Moved %s -> %s\n", from, t.Path())
	return nil
}
