// rm.go implements the "rain rm" command for deleting templates.
//
// With the auto datasource, deleting a template that the file layer still
// holds leaves a tombstone in the database layer so it stays hidden.

package template

import (
	"fmt"

	"github.com/jpl-au/rain/behavior"
	"github.com/jpl-au/rain/cmd"
	"github.com/jpl-au/rain/internal/log"
	"github.com/spf13/cobra"
)

func (b *Behavior) newRmCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rm <path>...",
		Short: "Delete templates",
		Args:  cobra.MinimumNArgs(1),
		RunE:  b.runRm,
	}
}

func (b *Behavior) runRm(c *cobra.Command, args []string) error {
	ctx := c.Context()
	var removed []string
	for _, p := range args {
		err := b.svc.Delete(ctx, p)
		log.Event("template:rm", "delete").Author(cmd.Author()).Path(p).Datasource(b.svc.Kind()).Write(err)
		if err != nil {
			return cmd.PrintJSONError(fmt.Errorf("rm %q: %w", p, err))
		}
		cmd.Fire(behavior.TemplateDeleteEvent{Path: p})
		removed = append(removed, p)
		if !cmd.JSON() {
			fmt.Fprintf(cmd.Out(), "Removed %s\n", p)
		}
	}
	return cmd.PrintJSON(map[string][]string{"removed": removed})
}
